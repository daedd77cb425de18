package engine

import (
	"fmt"
	"strings"

	"github.com/reoring/schematic/jsonschema"
)

// Structural error codes.
const (
	CodeNestedUnion         = "nested_union"
	CodeDefinitionCollision = "definition_collision"
	CodeUnsupportedShape    = "unsupported_shape"
	CodeRecursiveType       = "recursive_type"
	CodeDuplicateProperty   = "duplicate_property"
)

// Error is a structural derivation failure. Path is the JSON Pointer of the
// schema location being derived when the failure occurred.
type Error struct {
	Path   string
	Code   string
	Type   string
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s (%s): %s", e.Code, e.Path, e.Type, e.Detail)
}

// CollisionError is returned by the registry when a key is claimed by a
// second, distinct owner.
type CollisionError struct {
	Key string
}

func (e *CollisionError) Error() string {
	return "definition key " + e.Key + " is used by two distinct types"
}

type pathStack []string

func (p *pathStack) push(tokens ...string) {
	for _, t := range tokens {
		*p = append(*p, jsonschema.EscapePointer(t))
	}
}

func (p *pathStack) pop(n int) { *p = (*p)[:len(*p)-n] }

func (p pathStack) pointer() string {
	if len(p) == 0 {
		return "/"
	}
	return "/" + strings.Join(p, "/")
}
