package engine

import (
	"go.uber.org/zap"

	"github.com/reoring/schematic/jsonschema"
	"github.com/reoring/schematic/shape"
)

// Assemble combines the derived root and the registry contents into a
// document. A root that is itself a promoted type is written in place; its
// $defs entry survives only when something inside the document refers back
// to it.
func Assemble(title string, root jsonschema.Node, reg *Registry) *jsonschema.Document {
	defs := reg.Snapshot()
	if ref, ok := root.(*jsonschema.Ref); ok {
		if n, found := defs.Get(ref.Key); found {
			root = n
			if reg.Hits(ref.Key) == 0 {
				defs.Delete(ref.Key)
			}
		}
	}
	return &jsonschema.Document{Title: title, Root: root, Defs: defs}
}

// Generate runs one complete derivation of t with a fresh registry.
func Generate(title string, t shape.Type, log *zap.Logger) (*jsonschema.Document, error) {
	if log == nil {
		log = zap.NewNop()
	}
	reg := NewRegistry(log)
	root, err := NewDeriver(reg, log).Derive(t)
	if err != nil {
		return nil, err
	}
	doc := Assemble(title, root, reg)
	log.Debug("schema assembled", zap.String("title", title), zap.Int("definitions", doc.Defs.Len()))
	return doc, nil
}
