package jsonschema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the concrete type of a Node.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindNull
	KindArray
	KindObject
	KindAnyOf
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindAnyOf:
		return "anyOf"
	case KindRef:
		return "$ref"
	}
	return "unknown"
}

// Node is one schema fragment. The set of implementations is closed; see the
// Kind constants.
type Node interface {
	Kind() Kind
	members(d Dialect) []member
}

// String is a "string" leaf. Enum is only populated for unit variants.
type String struct {
	MinLength *uint64
	MaxLength *uint64
	Pattern   *string
	Format    *string
	Enum      []string
}

func (*String) Kind() Kind { return KindString }

// Number is a "number" leaf. The exclusivity flags qualify Minimum/Maximum,
// they are not bounds of their own.
type Number struct {
	Minimum          *float64
	Maximum          *float64
	MultipleOf       *float64
	ExclusiveMinimum *bool
	ExclusiveMaximum *bool
}

func (*Number) Kind() Kind { return KindNumber }

type Boolean struct{}

func (*Boolean) Kind() Kind { return KindBoolean }

type Null struct{}

func (*Null) Kind() Kind { return KindNull }

// Items is either List (homogeneous) or Tuple (positional).
type Items interface {
	isItems()
}

// List describes arrays whose elements all share Schema.
type List struct {
	Schema Node
}

// Tuple describes arrays with one schema per position.
type Tuple []Node

func (List) isItems()  {}
func (Tuple) isItems() {}

// Array is an "array" node.
type Array struct {
	Items    Items
	MinItems *uint64
	MaxItems *uint64
}

func (*Array) Kind() Kind { return KindArray }

// Property is a named member of an object node.
type Property struct {
	// Title is nil when the field carried no metadata. A non-nil empty title
	// is still written.
	Title       *string
	Description *string
	Schema      Node
}

// Properties keeps object members in declaration order.
type Properties = orderedmap.OrderedMap[string, *Property]

// NewProperties returns an empty ordered property table.
func NewProperties() *Properties { return orderedmap.New[string, *Property]() }

// AdditionalProperties is either a boolean or a value schema. A non-nil
// Schema takes precedence over Allowed.
type AdditionalProperties struct {
	Allowed bool
	Schema  Node
}

// Allow returns the boolean form of additionalProperties.
func Allow(b bool) AdditionalProperties { return AdditionalProperties{Allowed: b} }

// ValuesOf returns the schema form of additionalProperties used for maps.
func ValuesOf(n Node) AdditionalProperties { return AdditionalProperties{Schema: n} }

// Object is an "object" node.
type Object struct {
	Properties           *Properties
	Required             []string
	AdditionalProperties AdditionalProperties
}

func (*Object) Kind() Kind { return KindObject }

// AnyOf models a tagged union.
type AnyOf struct {
	Variants []Node
}

func (*AnyOf) Kind() Kind { return KindAnyOf }

// Ref points at an entry of the document's $defs table.
type Ref struct {
	Key string
}

func (*Ref) Kind() Kind { return KindRef }

// Pointer returns the local JSON Pointer of the referenced definition.
func (r *Ref) Pointer() string { return "#/$defs/" + EscapePointer(r.Key) }

// Definitions is the ordered $defs table.
type Definitions = orderedmap.OrderedMap[string, Node]

// NewDefinitions returns an empty ordered definitions table.
func NewDefinitions() *Definitions { return orderedmap.New[string, Node]() }
