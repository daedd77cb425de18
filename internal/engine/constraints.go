package engine

import (
	"github.com/reoring/schematic/jsonschema"
	"github.com/reoring/schematic/shape"
)

// Attach builds the leaf node for p with the facets of c that apply to its
// kind. Facets meant for other kinds are dropped without error.
func Attach(p *shape.Primitive, c shape.Constraints) jsonschema.Node {
	switch p.Of {
	case shape.String:
		s := &jsonschema.String{
			MinLength: clone(c.MinLength),
			MaxLength: clone(c.MaxLength),
			Pattern:   clone(c.Pattern),
			Format:    clone(c.Format),
		}
		if s.Format == nil && p.Format != "" {
			f := p.Format
			s.Format = &f
		}
		return s
	case shape.Number:
		return &jsonschema.Number{
			Minimum:          clone(c.Minimum),
			Maximum:          clone(c.Maximum),
			MultipleOf:       clone(c.MultipleOf),
			ExclusiveMinimum: clone(c.ExclusiveMinimum),
			ExclusiveMaximum: clone(c.ExclusiveMaximum),
		}
	case shape.Boolean:
		return &jsonschema.Boolean{}
	default:
		return &jsonschema.Null{}
	}
}

// AttachItems applies item-count facets to a. Set facets replace existing
// bounds.
func AttachItems(a *jsonschema.Array, c shape.Constraints) {
	if c.MinItems != nil {
		a.MinItems = clone(c.MinItems)
	}
	if c.MaxItems != nil {
		a.MaxItems = clone(c.MaxItems)
	}
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
