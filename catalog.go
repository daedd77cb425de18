package schematic

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	js "github.com/reoring/schematic/jsonschema"
	"github.com/reoring/schematic/shape"
)

// Entry is one root type registered in a Catalog.
type Entry struct {
	Name  string // file stem and CLI selector, e.g. "app-config"
	Title string // document title
	Type  reflect.Type
	Shape shape.Type // set for descriptor-built entries; Type is nil then
}

// Catalog is an ordered set of root types to generate schemas for. It is
// safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[string]int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog { return &Catalog{index: map[string]int{}} }

// Register adds T under name. Registering a name twice fails.
func Register[T any](c *Catalog, name, title string) error {
	return c.Add(Entry{Name: name, Title: title, Type: TypeOf[T]()})
}

// MustRegister is Register that panics on error.
func MustRegister[T any](c *Catalog, name, title string) {
	if err := Register[T](c, name, title); err != nil {
		panic(err)
	}
}

// Add appends e. Exactly one of e.Type and e.Shape must be set.
func (c *Catalog) Add(e Entry) error {
	if e.Name == "" {
		return fmt.Errorf("schematic: catalog entry needs a name")
	}
	if (e.Type == nil) == (e.Shape == nil) {
		return fmt.Errorf("schematic: catalog entry %q needs exactly one of Type and Shape", e.Name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.index[e.Name]; dup {
		return fmt.Errorf("schematic: catalog entry %q already registered", e.Name)
	}
	c.index[e.Name] = len(c.entries)
	c.entries = append(c.entries, e)
	return nil
}

// Entries returns the registered entries in registration order.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Entry(nil), c.entries...)
}

// Lookup returns the entry registered under name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Select returns the entries with the given names, in the given order. No
// names selects every entry.
func (c *Catalog) Select(names ...string) ([]Entry, error) {
	if len(names) == 0 {
		return c.Entries(), nil
	}
	out := make([]Entry, 0, len(names))
	for _, n := range names {
		e, ok := c.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("schematic: no catalog entry named %q", n)
		}
		out = append(out, e)
	}
	return out, nil
}

// Generate derives the entry's document.
func (e Entry) Generate(opts ...Option) (*js.Document, error) {
	if e.Shape != nil {
		return GenerateShape(e.Title, e.Shape, opts...)
	}
	return GenerateType(e.Type, e.Title, opts...)
}

// Result pairs an entry with its generated document.
type Result struct {
	Entry    Entry
	Document *js.Document
}

// GenerateAll derives the documents of entries concurrently, each with its
// own registry. Results keep the order of entries. The first failure cancels
// the roots not yet started and is returned wrapped with the entry name.
func GenerateAll(ctx context.Context, entries []Entry, opts ...Option) ([]Result, error) {
	o := buildOpts(opts)
	out := make([]Result, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	if o.Workers > 0 {
		g.SetLimit(o.Workers)
	}
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := e.Generate(opts...)
			if err != nil {
				return &EntryError{Name: e.Name, Err: err}
			}
			o.Logger.Debug("schema generated", zap.String("name", e.Name), zap.Int("definitions", doc.Defs.Len()))
			out[i] = Result{Entry: e, Document: doc}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// EntryError attributes a generation failure to a catalog entry.
type EntryError struct {
	Name string
	Err  error
}

func (e *EntryError) Error() string { return e.Name + ": " + e.Err.Error() }
func (e *EntryError) Unwrap() error { return e.Err }
