package dsl

import "github.com/reoring/schematic/shape"

// String returns a string leaf.
func String() *shape.Primitive { return &shape.Primitive{Of: shape.String} }

// DateTime returns a string leaf with the date-time format.
func DateTime() *shape.Primitive {
	return &shape.Primitive{Of: shape.String, Format: "date-time"}
}

// Number returns a number leaf. JSON Schema output does not distinguish
// integers.
func Number() *shape.Primitive { return &shape.Primitive{Of: shape.Number} }

// Bool returns a boolean leaf.
func Bool() *shape.Primitive { return &shape.Primitive{Of: shape.Boolean} }

// Null returns the null leaf.
func Null() *shape.Primitive { return &shape.Primitive{Of: shape.Null} }

// Array returns a variable-length sequence of elem.
func Array(elem shape.Type) *shape.Sequence { return &shape.Sequence{Elem: elem, Len: -1} }

// FixedArray returns a sequence of exactly n elements.
func FixedArray(elem shape.Type, n int) *shape.Sequence {
	if n < 0 {
		n = 0
	}
	return &shape.Sequence{Elem: elem, Len: n}
}

// Map returns a string-keyed map of value.
func Map(value shape.Type) *shape.Map { return &shape.Map{Value: value} }

// Tuple returns a positional sequence of items.
func Tuple(items ...shape.Type) *shape.Tuple { return &shape.Tuple{Items: items} }

// Define marks t for promotion into $defs under key and returns it. The
// descriptor pointer is the definition owner, so reusing t elsewhere shares
// the entry while a different descriptor under the same key collides.
func Define[T shape.Type](key string, t T) T {
	d := t.Declaration()
	if d.Name == "" {
		d.Name = key
	}
	d.Definition = &shape.Definition{Key: key, Qualified: key, Owner: t}
	return t
}
