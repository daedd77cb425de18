package schematic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/schematic/i18n"
	"github.com/reoring/schematic/internal/engine"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeNestedUnion         = engine.CodeNestedUnion
	CodeDefinitionCollision = engine.CodeDefinitionCollision
	CodeUnsupportedShape    = engine.CodeUnsupportedShape
	CodeRecursiveType       = engine.CodeRecursiveType
	CodeDuplicateProperty   = engine.CodeDuplicateProperty
	// Introspection (struct tag and option parsing)
	CodeInvalidTag = "invalid_tag"
)

// Issue is a single structural failure found while deriving a schema.
type Issue struct {
	Path    string // JSON Pointer of the schema location, e.g. /properties/items/items.
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: what went wrong in detail.
	Type    string // Offending type name, when known.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of derivation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. recursive_type at /properties/next (example.Node)
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Type != "" {
			fmt.Fprintf(b, " (%s)", it.Type)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

func newIssue(path, code, typ, hint string) Issue {
	return Issue{
		Path:    path,
		Code:    code,
		Type:    typ,
		Hint:    hint,
		Message: i18n.T(code, map[string]string{"type": typ}),
	}
}

// toIssues maps engine failures onto the public error model. Errors of other
// kinds are returned unchanged.
func toIssues(err error) error {
	if err == nil {
		return nil
	}
	var de *engine.Error
	if errors.As(err, &de) {
		it := newIssue(de.Path, de.Code, de.Type, de.Detail)
		it.Cause = err
		return Issues{it}
	}
	return err
}
