package engine

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/reoring/schematic/jsonschema"
)

// Registry is the per-call definitions table. It is not safe for concurrent
// use; every top-level derivation owns one.
type Registry struct {
	entries *orderedmap.OrderedMap[string, *entry]
	log     *zap.Logger
}

type entry struct {
	owner any
	node  jsonschema.Node // nil while the definition is being derived
	hits  int
}

// NewRegistry returns an empty registry. A nil logger disables logging.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{entries: orderedmap.New[string, *entry](), log: log}
}

// RegisterIfAbsent returns a reference to key, deriving and storing the
// definition on first use. The key is reserved before derive runs, so a
// recursive visit of the same type from inside derive observes it and gets a
// reference instead of looping.
//
// owner must be comparable. A key reused by a different owner fails with
// *CollisionError.
func (r *Registry) RegisterIfAbsent(key string, owner any, derive func() (jsonschema.Node, error)) (jsonschema.Node, error) {
	if e, ok := r.entries.Get(key); ok {
		if e.owner != owner {
			return nil, &CollisionError{Key: key}
		}
		e.hits++
		r.log.Debug("definition reused", zap.String("key", key), zap.Bool("pending", e.node == nil))
		return &jsonschema.Ref{Key: key}, nil
	}
	e := &entry{owner: owner}
	r.entries.Set(key, e)
	r.log.Debug("definition registered", zap.String("key", key), zap.Int("position", r.entries.Len()))
	n, err := derive()
	if err != nil {
		return nil, err
	}
	e.node = n
	return &jsonschema.Ref{Key: key}, nil
}

// Len returns the number of registered keys, pending ones included.
func (r *Registry) Len() int { return r.entries.Len() }

// Hits returns how many times key was resolved after its registration.
func (r *Registry) Hits(key string) int {
	if e, ok := r.entries.Get(key); ok {
		return e.hits
	}
	return 0
}

// Snapshot returns the completed definitions in first-insertion order.
func (r *Registry) Snapshot() *jsonschema.Definitions {
	defs := jsonschema.NewDefinitions()
	for p := r.entries.Oldest(); p != nil; p = p.Next() {
		if p.Value.node != nil {
			defs.Set(p.Key, p.Value.node)
		}
	}
	return defs
}
