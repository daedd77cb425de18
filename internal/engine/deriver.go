package engine

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/reoring/schematic/jsonschema"
	"github.com/reoring/schematic/shape"
)

// Deriver turns shape descriptors into schema nodes. It recurses depth-first
// and consults the registry at every promoted type. A Deriver belongs to one
// top-level call.
type Deriver struct {
	reg    *Registry
	log    *zap.Logger
	active map[shape.Type]struct{}
	path   pathStack
}

// NewDeriver returns a deriver writing promoted types into reg.
func NewDeriver(reg *Registry, log *zap.Logger) *Deriver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Deriver{reg: reg, log: log, active: map[shape.Type]struct{}{}}
}

// Derive returns the node for t. Promoted types come back as references;
// their definitions are in the registry.
func (d *Deriver) Derive(t shape.Type) (jsonschema.Node, error) {
	return d.derive(t, shape.Constraints{})
}

func (d *Deriver) derive(t shape.Type, c shape.Constraints) (jsonschema.Node, error) {
	if t == nil {
		return nil, d.fail(CodeUnsupportedShape, "<nil>", "missing type descriptor")
	}
	def := t.Declaration().Definition
	if def == nil {
		return d.deriveShape(t, c)
	}
	key := def.CanonicalKey()
	if key == "" {
		return nil, d.fail(CodeUnsupportedShape, shape.TypeName(t), "a definition needs a type name or an explicit key")
	}
	if !c.IsZero() {
		d.log.Debug("field constraints ignored on promoted type", zap.String("key", key), zap.String("path", d.path.pointer()))
	}
	n, err := d.reg.RegisterIfAbsent(key, def.Owner, func() (jsonschema.Node, error) {
		return d.deriveShape(t, shape.Constraints{})
	})
	if ce, ok := err.(*CollisionError); ok {
		return nil, d.fail(CodeDefinitionCollision, shape.TypeName(t), ce.Error())
	}
	return n, err
}

func (d *Deriver) deriveShape(t shape.Type, c shape.Constraints) (jsonschema.Node, error) {
	if p, ok := t.(*shape.Primitive); ok {
		return Attach(p, c), nil
	}
	if _, busy := d.active[t]; busy {
		return nil, d.fail(CodeRecursiveType, shape.TypeName(t), "recursive type is not marked as a definition")
	}
	d.active[t] = struct{}{}
	defer delete(d.active, t)

	switch s := t.(type) {
	case *shape.Object:
		return d.object(s.Fields, s.AdditionalProperties)
	case *shape.Union:
		return d.union(s)
	case *shape.Tuple:
		return d.tuple(s.Items, false)
	case *shape.Sequence:
		return d.sequence(s, c)
	case *shape.Map:
		return d.mapping(s)
	}
	return nil, d.fail(CodeUnsupportedShape, shape.TypeName(t), fmt.Sprintf("unknown descriptor %T", t))
}

func (d *Deriver) object(fields []shape.Field, additional bool) (jsonschema.Node, error) {
	props := jsonschema.NewProperties()
	var required []string
	for _, f := range fields {
		if _, dup := props.Get(f.Name); dup {
			return nil, d.fail(CodeDuplicateProperty, shape.TypeName(f.Type), "property "+strconv.Quote(f.Name)+" is declared twice")
		}
		d.path.push("properties", f.Name)
		n, err := d.derive(f.Type, f.Constraints)
		d.path.pop(2)
		if err != nil {
			return nil, err
		}
		p := &jsonschema.Property{Schema: n}
		if f.Meta != nil {
			title := f.Meta.Title
			p.Title = &title
			p.Description = clone(f.Meta.Description)
		}
		props.Set(f.Name, p)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return &jsonschema.Object{
		Properties:           props,
		Required:             required,
		AdditionalProperties: jsonschema.Allow(additional),
	}, nil
}

func (d *Deriver) union(u *shape.Union) (jsonschema.Node, error) {
	if len(u.Variants) == 0 {
		return nil, d.fail(CodeUnsupportedShape, shape.TypeName(u), "union has no variants")
	}
	out := make([]jsonschema.Node, 0, len(u.Variants))
	for i, v := range u.Variants {
		d.path.push("anyOf", strconv.Itoa(i))
		n, err := d.variant(u, v)
		d.path.pop(2)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return &jsonschema.AnyOf{Variants: out}, nil
}

// variant derives one union arm. Unit variants become a string enum over the
// variant name; an empty tuple variant stays an array of zero items.
func (d *Deriver) variant(u *shape.Union, v shape.Variant) (jsonschema.Node, error) {
	switch v.Kind {
	case shape.VariantUnit:
		return &jsonschema.String{Enum: []string{v.Name}}, nil
	case shape.VariantNewtype:
		if len(v.Items) != 1 {
			return nil, d.fail(CodeUnsupportedShape, shape.TypeName(u), "newtype variant "+strconv.Quote(v.Name)+" needs exactly one payload type")
		}
		payload := v.Items[0]
		if payload != nil && payload.Kind() == shape.KindUnion {
			return nil, d.fail(CodeNestedUnion, shape.TypeName(u),
				"variant "+strconv.Quote(v.Name)+" wraps union "+shape.TypeName(payload))
		}
		// Untagged: the payload's own representation stands for the variant.
		return d.derive(payload, shape.Constraints{})
	case shape.VariantTuple:
		return d.tuple(v.Items, true)
	case shape.VariantStruct:
		return d.object(v.Fields, v.AdditionalProperties)
	}
	return nil, d.fail(CodeUnsupportedShape, shape.TypeName(u), "variant "+strconv.Quote(v.Name)+" has unknown kind "+v.Kind.String())
}

func (d *Deriver) tuple(items []shape.Type, sized bool) (jsonschema.Node, error) {
	out := make(jsonschema.Tuple, 0, len(items))
	for i, it := range items {
		d.path.push("items", strconv.Itoa(i))
		n, err := d.derive(it, shape.Constraints{})
		d.path.pop(2)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	a := &jsonschema.Array{Items: out}
	if sized {
		n := uint64(len(items))
		AttachItems(a, shape.Constraints{MinItems: &n, MaxItems: &n})
	}
	return a, nil
}

func (d *Deriver) sequence(s *shape.Sequence, c shape.Constraints) (jsonschema.Node, error) {
	d.path.push("items")
	elem, err := d.derive(s.Elem, shape.Constraints{})
	d.path.pop(1)
	if err != nil {
		return nil, err
	}
	a := &jsonschema.Array{Items: jsonschema.List{Schema: elem}}
	if s.Len >= 0 {
		n := uint64(s.Len)
		AttachItems(a, shape.Constraints{MinItems: &n, MaxItems: &n})
	}
	AttachItems(a, c)
	return a, nil
}

func (d *Deriver) mapping(m *shape.Map) (jsonschema.Node, error) {
	d.path.push("additionalProperties")
	v, err := d.derive(m.Value, shape.Constraints{})
	d.path.pop(1)
	if err != nil {
		return nil, err
	}
	return &jsonschema.Object{
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.ValuesOf(v),
	}, nil
}

func (d *Deriver) fail(code, typ, detail string) *Error {
	return &Error{Path: d.path.pointer(), Code: code, Type: typ, Detail: detail}
}
