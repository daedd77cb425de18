package schematic

import (
	"reflect"

	"github.com/reoring/schematic/shape"
)

// Enum is implemented by types that stand for a tagged union. Variants are
// reported in declaration order. The method is called on the zero value
// (or on a pointer to it for pointer receivers) and must not depend on state.
type Enum interface {
	SchemaVariants() []Variant
}

// Definer marks a type for promotion into $defs. An empty key selects the
// package-qualified type name. Structs can use the `defs` container option
// instead.
type Definer interface {
	SchemaDefinition() string
}

// Variant is one alternative of an Enum. Build it with UnitVariant,
// NewtypeVariant, TupleVariant or StructVariant.
type Variant struct {
	name  string
	kind  shape.VariantKind
	types []reflect.Type
}

// Name returns the variant name.
func (v Variant) Name() string { return v.name }

// UnitVariant is a variant without payload.
func UnitVariant(name string) Variant {
	return Variant{name: name, kind: shape.VariantUnit}
}

// NewtypeVariant wraps a single value of type T.
func NewtypeVariant[T any](name string) Variant {
	return Variant{name: name, kind: shape.VariantNewtype, types: []reflect.Type{TypeOf[T]()}}
}

// TupleVariant carries positional values. With no types it is the empty
// tuple variant.
func TupleVariant(name string, types ...reflect.Type) Variant {
	return Variant{name: name, kind: shape.VariantTuple, types: types}
}

// StructVariant carries the named fields of struct type T. T's container
// options (additionalProperties, renameAll) apply to the variant.
func StructVariant[T any](name string) Variant {
	return Variant{name: name, kind: shape.VariantStruct, types: []reflect.Type{TypeOf[T]()}}
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

var (
	enumType    = TypeOf[Enum]()
	definerType = TypeOf[Definer]()
)

// methodValue returns a value of t on which iface's methods can be called,
// trying the zero value first and a new pointer second.
func methodValue(t, iface reflect.Type) (reflect.Value, bool) {
	if t.Kind() == reflect.Interface {
		return reflect.Value{}, false
	}
	if t.Implements(iface) {
		return reflect.Zero(t), true
	}
	if reflect.PointerTo(t).Implements(iface) {
		return reflect.New(t), true
	}
	return reflect.Value{}, false
}

func enumVariants(t reflect.Type) ([]Variant, bool) {
	v, ok := methodValue(t, enumType)
	if !ok {
		return nil, false
	}
	return v.Interface().(Enum).SchemaVariants(), true
}

func definitionKey(t reflect.Type) (string, bool) {
	v, ok := methodValue(t, definerType)
	if !ok {
		return "", false
	}
	return v.Interface().(Definer).SchemaDefinition(), true
}
