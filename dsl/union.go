package dsl

import (
	"strconv"

	"github.com/reoring/schematic"
	"github.com/reoring/schematic/shape"
)

// unionBuilder is the builder for tagged unions. Variants keep the order in
// which they are added.
type unionBuilder struct {
	u   *shape.Union
	pkg string
}

// Union starts a union descriptor.
func Union(name string) *unionBuilder {
	return &unionBuilder{u: &shape.Union{Decl: shape.Decl{Name: name}}}
}

// Unit adds a payload-less variant, rendered as a one-value string enum.
func (b *unionBuilder) Unit(name string) *unionBuilder {
	b.u.Variants = append(b.u.Variants, shape.Variant{Name: name, Kind: shape.VariantUnit})
	return b
}

// Newtype adds a variant wrapping a single payload.
func (b *unionBuilder) Newtype(name string, payload shape.Type) *unionBuilder {
	b.u.Variants = append(b.u.Variants, shape.Variant{Name: name, Kind: shape.VariantNewtype, Items: []shape.Type{payload}})
	return b
}

// Tuple adds a positional variant.
func (b *unionBuilder) Tuple(name string, items ...shape.Type) *unionBuilder {
	b.u.Variants = append(b.u.Variants, shape.Variant{Name: name, Kind: shape.VariantTuple, Items: items})
	return b
}

// Struct adds a variant with the fields of obj. The fields are copied, so
// obj must be complete.
func (b *unionBuilder) Struct(name string, obj *shape.Object) *unionBuilder {
	v := shape.Variant{Name: name, Kind: shape.VariantStruct}
	if obj != nil {
		v.Fields = append([]shape.Field(nil), obj.Fields...)
		v.AdditionalProperties = obj.AdditionalProperties
	}
	b.u.Variants = append(b.u.Variants, v)
	return b
}

// Package sets the qualifier used for the definition key when Defs is given
// no explicit key.
func (b *unionBuilder) Package(path string) *unionBuilder {
	b.pkg = path
	if d := b.u.Definition; d != nil {
		d.Qualified = qualify(path, b.u.Name)
	}
	return b
}

// Defs marks the union for promotion into $defs under "<package>.<name>".
func (b *unionBuilder) Defs() *unionBuilder { return b.DefsAs("") }

// DefsAs marks the union for promotion into $defs under key.
func (b *unionBuilder) DefsAs(key string) *unionBuilder {
	b.u.Definition = &shape.Definition{Key: key, Qualified: qualify(b.pkg, b.u.Name), Owner: b.u}
	return b
}

// Shape returns the descriptor under construction.
func (b *unionBuilder) Shape() *shape.Union { return b.u }

// Build validates and returns the descriptor.
func (b *unionBuilder) Build() (*shape.Union, error) {
	if iss := checkDecl("", &b.u.Decl); len(iss) > 0 {
		return nil, iss
	}
	if len(b.u.Variants) == 0 {
		return nil, schematic.Issues{issue("/", schematic.CodeUnsupportedShape, b.u.Name, "union has no variants")}
	}
	var iss schematic.Issues
	for i, v := range b.u.Variants {
		base := pointer("", "anyOf", strconv.Itoa(i))
		switch v.Kind {
		case shape.VariantNewtype, shape.VariantTuple:
			for _, it := range v.Items {
				if it == nil {
					iss = append(iss, issue(base, schematic.CodeUnsupportedShape, b.u.Name, "variant "+strconv.Quote(v.Name)+" has a nil payload"))
					break
				}
			}
		case shape.VariantStruct:
			iss = append(iss, checkFields(base, b.u.Name, v.Fields)...)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return b.u, nil
}

// MustBuild is like Build but panics on error.
func (b *unionBuilder) MustBuild() *shape.Union {
	u, err := b.Build()
	if err != nil {
		panic(err)
	}
	return u
}
