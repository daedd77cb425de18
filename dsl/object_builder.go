package dsl

import (
	"strconv"

	"github.com/reoring/schematic"
	"github.com/reoring/schematic/i18n"
	js "github.com/reoring/schematic/jsonschema"
	"github.com/reoring/schematic/shape"
)

// objectBuilder is the builder for object descriptors.
type objectBuilder struct {
	obj *shape.Object
	pkg string
}

// Object starts an object descriptor. name identifies it in error reports
// and, with Defs, forms its definition key.
func Object(name string) *objectBuilder {
	return &objectBuilder{obj: &shape.Object{Decl: shape.Decl{Name: name}}}
}

// Field appends a property in declaration order. The returned step sets the
// property's facets and chains back into the builder.
func (b *objectBuilder) Field(name string, t shape.Type) *fieldStep {
	b.obj.Fields = append(b.obj.Fields, shape.Field{Name: name, Type: t})
	return &fieldStep{b: b, i: len(b.obj.Fields) - 1}
}

// AdditionalProperties controls whether undeclared properties are allowed.
// The default is false.
func (b *objectBuilder) AdditionalProperties(allow bool) *objectBuilder {
	b.obj.AdditionalProperties = allow
	return b
}

// Package sets the qualifier used for the definition key when Defs is given
// no explicit key.
func (b *objectBuilder) Package(path string) *objectBuilder {
	b.pkg = path
	if d := b.obj.Definition; d != nil {
		d.Qualified = qualify(path, b.obj.Name)
	}
	return b
}

// Defs marks the object for promotion into $defs under "<package>.<name>".
func (b *objectBuilder) Defs() *objectBuilder { return b.DefsAs("") }

// DefsAs marks the object for promotion into $defs under key.
func (b *objectBuilder) DefsAs(key string) *objectBuilder {
	b.obj.Definition = &shape.Definition{Key: key, Qualified: qualify(b.pkg, b.obj.Name), Owner: b.obj}
	return b
}

// Shape returns the descriptor under construction. It lets fields refer back
// to the object before Build.
func (b *objectBuilder) Shape() *shape.Object { return b.obj }

// Build validates and returns the descriptor.
func (b *objectBuilder) Build() (*shape.Object, error) {
	if iss := checkDecl("", &b.obj.Decl); len(iss) > 0 {
		return nil, iss
	}
	if iss := checkFields("", b.obj.Name, b.obj.Fields); len(iss) > 0 {
		return nil, iss
	}
	return b.obj, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() *shape.Object {
	o, err := b.Build()
	if err != nil {
		panic(err)
	}
	return o
}

// fieldStep configures the most recently added field. It also re-exposes
// the builder methods so definitions read as one chain.
type fieldStep struct {
	b *objectBuilder
	i int
}

func (s *fieldStep) field() *shape.Field { return &s.b.obj.Fields[s.i] }

func (s *fieldStep) meta() *shape.FieldMeta {
	f := s.field()
	if f.Meta == nil {
		f.Meta = &shape.FieldMeta{}
	}
	return f.Meta
}

// Title sets the property title.
func (s *fieldStep) Title(title string) *fieldStep { s.meta().Title = title; return s }

// Description sets the property description.
func (s *fieldStep) Description(text string) *fieldStep {
	s.meta().Description = &text
	return s
}

// Required lists the property under required.
func (s *fieldStep) Required() *fieldStep { s.field().Required = true; return s }

// MinLength sets the string minLength.
func (s *fieldStep) MinLength(n uint64) *fieldStep { s.field().Constraints.MinLength = &n; return s }

// MaxLength sets the string maxLength.
func (s *fieldStep) MaxLength(n uint64) *fieldStep { s.field().Constraints.MaxLength = &n; return s }

// Pattern sets the string pattern.
func (s *fieldStep) Pattern(re string) *fieldStep { s.field().Constraints.Pattern = &re; return s }

// Format sets the string format, overriding a leaf's default.
func (s *fieldStep) Format(f string) *fieldStep { s.field().Constraints.Format = &f; return s }

// Minimum sets the number minimum.
func (s *fieldStep) Minimum(v float64) *fieldStep { s.field().Constraints.Minimum = &v; return s }

// Maximum sets the number maximum.
func (s *fieldStep) Maximum(v float64) *fieldStep { s.field().Constraints.Maximum = &v; return s }

// MultipleOf sets the number multipleOf.
func (s *fieldStep) MultipleOf(v float64) *fieldStep { s.field().Constraints.MultipleOf = &v; return s }

// ExclusiveMinimum makes the minimum exclusive.
func (s *fieldStep) ExclusiveMinimum() *fieldStep {
	t := true
	s.field().Constraints.ExclusiveMinimum = &t
	return s
}

// ExclusiveMaximum makes the maximum exclusive.
func (s *fieldStep) ExclusiveMaximum() *fieldStep {
	t := true
	s.field().Constraints.ExclusiveMaximum = &t
	return s
}

// MinItems sets the array minItems.
func (s *fieldStep) MinItems(n uint64) *fieldStep { s.field().Constraints.MinItems = &n; return s }

// MaxItems sets the array maxItems.
func (s *fieldStep) MaxItems(n uint64) *fieldStep { s.field().Constraints.MaxItems = &n; return s }

// Field re-exposes objectBuilder.Field.
func (s *fieldStep) Field(name string, t shape.Type) *fieldStep { return s.b.Field(name, t) }

// AdditionalProperties re-exposes objectBuilder.AdditionalProperties.
func (s *fieldStep) AdditionalProperties(allow bool) *objectBuilder {
	return s.b.AdditionalProperties(allow)
}

// Shape re-exposes objectBuilder.Shape.
func (s *fieldStep) Shape() *shape.Object { return s.b.Shape() }

// Build re-exposes objectBuilder.Build.
func (s *fieldStep) Build() (*shape.Object, error) { return s.b.Build() }

// MustBuild re-exposes objectBuilder.MustBuild.
func (s *fieldStep) MustBuild() *shape.Object { return s.b.MustBuild() }

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func issue(path, code, typ, hint string) schematic.Issue {
	return schematic.Issue{
		Path:    path,
		Code:    code,
		Type:    typ,
		Hint:    hint,
		Message: i18n.T(code, map[string]string{"type": typ}),
	}
}

func pointer(base string, tokens ...string) string {
	for _, t := range tokens {
		base += "/" + js.EscapePointer(t)
	}
	if base == "" {
		return "/"
	}
	return base
}

func checkDecl(base string, d *shape.Decl) schematic.Issues {
	if d.Definition != nil && d.Definition.CanonicalKey() == "" {
		return schematic.Issues{issue(pointer(base), schematic.CodeUnsupportedShape, d.Name, "definition needs a name or an explicit key")}
	}
	return nil
}

// checkFields reports duplicate names and missing types among fields.
func checkFields(base, owner string, fields []shape.Field) schematic.Issues {
	var iss schematic.Issues
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		p := pointer(base, "properties", f.Name)
		switch {
		case seen[f.Name]:
			iss = append(iss, issue(p, schematic.CodeDuplicateProperty, owner, "property "+strconv.Quote(f.Name)+" declared twice"))
		case f.Type == nil:
			iss = append(iss, issue(p, schematic.CodeUnsupportedShape, owner, "field "+strconv.Itoa(i)+" has no type"))
		}
		seen[f.Name] = true
	}
	return iss
}
