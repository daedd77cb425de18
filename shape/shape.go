// Package shape defines the type descriptors that schema derivation consumes.
//
// Descriptors are produced by an introspection front end (reflection over Go
// types in the root package, or the builders in dsl/) and may form cyclic
// graphs through pointers: a recursive type is described once and referenced
// from its own fields.
package shape

// Kind identifies a descriptor shape. The set is closed.
type Kind int

const (
	KindPrimitive Kind = iota
	KindObject
	KindUnion
	KindTuple
	KindSequence
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindObject:
		return "object"
	case KindUnion:
		return "union"
	case KindTuple:
		return "tuple"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	}
	return "unknown"
}

// Type is implemented by every descriptor in this package.
type Type interface {
	Kind() Kind
	Declaration() *Decl
}

// Decl holds declaration facts shared by all shapes.
type Decl struct {
	// Name is the declared type name, used in error reports. Empty for
	// anonymous types.
	Name string
	// Definition marks the type for promotion into $defs.
	Definition *Definition
}

func (d *Decl) Declaration() *Decl { return d }

// Definition marks a type as definition-worthy.
type Definition struct {
	// Key is an explicit override of the definition key.
	Key string
	// Qualified is the derived package-qualified name.
	Qualified string
	// Owner identifies the underlying type. Two definitions with the same key
	// and different owners collide.
	Owner any
}

// CanonicalKey returns Key when set, else Qualified.
func (d *Definition) CanonicalKey() string {
	if d.Key != "" {
		return d.Key
	}
	return d.Qualified
}

// PrimitiveKind enumerates leaf types.
type PrimitiveKind int

const (
	String PrimitiveKind = iota
	Number
	Boolean
	Null
)

func (p PrimitiveKind) String() string {
	switch p {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Null:
		return "null"
	}
	return "unknown"
}

// Primitive is a leaf. Format is a default string format (for example
// "date-time" for timestamps); a field-level format overrides it.
type Primitive struct {
	Decl
	Of     PrimitiveKind
	Format string
}

func (*Primitive) Kind() Kind { return KindPrimitive }

// FieldMeta is field-level documentation. Its presence alone makes the
// property carry a title, even an empty one.
type FieldMeta struct {
	Title       string
	Description *string
}

// Field is a named member of an object or struct variant.
type Field struct {
	Name        string
	Meta        *FieldMeta
	Required    bool
	Constraints Constraints
	Type        Type
}

// Object is a record with named fields.
type Object struct {
	Decl
	Fields               []Field
	AdditionalProperties bool
}

func (*Object) Kind() Kind { return KindObject }

// VariantKind enumerates union variant payload forms.
type VariantKind int

const (
	VariantUnit VariantKind = iota
	VariantNewtype
	VariantTuple
	VariantStruct
)

func (v VariantKind) String() string {
	switch v {
	case VariantUnit:
		return "unit"
	case VariantNewtype:
		return "newtype"
	case VariantTuple:
		return "tuple"
	case VariantStruct:
		return "struct"
	}
	return "unknown"
}

// Variant is one alternative of a Union.
//
// Items holds the payload of newtype (exactly one) and tuple variants;
// Fields and AdditionalProperties apply to struct variants.
type Variant struct {
	Name                 string
	Kind                 VariantKind
	Items                []Type
	Fields               []Field
	AdditionalProperties bool
}

// Union is a tagged union (enum) with variants in declaration order.
type Union struct {
	Decl
	Variants []Variant
}

func (*Union) Kind() Kind { return KindUnion }

// Tuple is a fixed, heterogeneous, positional sequence.
type Tuple struct {
	Decl
	Items []Type
}

func (*Tuple) Kind() Kind { return KindTuple }

// Sequence is a homogeneous list. Len is the fixed length of Go arrays and
// -1 for slices.
type Sequence struct {
	Decl
	Elem Type
	Len  int
}

func (*Sequence) Kind() Kind { return KindSequence }

// Map is a string-keyed map with homogeneous values.
type Map struct {
	Decl
	Value Type
}

func (*Map) Kind() Kind { return KindMap }

// TypeName returns a printable name for t.
func TypeName(t Type) string {
	if t == nil {
		return "<nil>"
	}
	if n := t.Declaration().Name; n != "" {
		return n
	}
	if p, ok := t.(*Primitive); ok {
		return p.Of.String()
	}
	return t.Kind().String()
}
