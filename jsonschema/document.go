package jsonschema

import "strings"

// Dialect selects how keywords whose meaning changed between JSON Schema
// drafts are written.
type Dialect int

const (
	// DialectClassic writes tuples as an "items" array and exclusivity as
	// booleans next to minimum/maximum.
	DialectClassic Dialect = iota
	// Dialect2020 writes "$schema", tuples as "prefixItems" and exclusive
	// bounds as numbers.
	Dialect2020
)

// Draft2020URL is written as "$schema" in Dialect2020.
const Draft2020URL = "https://json-schema.org/draft/2020-12/schema"

func (d Dialect) String() string {
	if d == Dialect2020 {
		return "2020-12"
	}
	return "classic"
}

// ParseDialect accepts "classic" and "2020"/"2020-12". Empty means classic.
func ParseDialect(s string) (Dialect, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classic":
		return DialectClassic, true
	case "2020", "2020-12":
		return Dialect2020, true
	}
	return DialectClassic, false
}

// Document is an assembled schema: the root node, its title and the
// definitions it references.
type Document struct {
	Title string
	Root  Node
	Defs  *Definitions
}

func (doc *Document) members(d Dialect) []member {
	var ms []member
	if d == Dialect2020 {
		ms = append(ms, member{"$schema", Draft2020URL})
	}
	ms = append(ms, member{"title", doc.Title})
	if doc.Root != nil {
		ms = append(ms, doc.Root.members(d)...)
	}
	if doc.Defs != nil && doc.Defs.Len() > 0 {
		defs := make([]member, 0, doc.Defs.Len())
		for p := doc.Defs.Oldest(); p != nil; p = p.Next() {
			defs = append(defs, member{p.Key, p.Value})
		}
		ms = append(ms, member{"$defs", defs})
	}
	return ms
}

// Lookup returns the definition stored under key.
func (doc *Document) Lookup(key string) (Node, bool) {
	if doc.Defs == nil {
		return nil, false
	}
	return doc.Defs.Get(key)
}

// EscapePointer escapes a reference token per RFC 6901 ('~' -> "~0", '/' -> "~1").
func EscapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
