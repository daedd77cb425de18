package jsonschema

import (
	"io"
	"strings"
)

// Format is an output serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml". Empty means JSON.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	}
	return FormatJSON, false
}

// Ext returns the file extension used for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// EncodeOptions controls Encode. Indent is the number of spaces per level;
// zero selects compact JSON (YAML always uses at least its default indent).
type EncodeOptions struct {
	Format  Format
	Dialect Dialect
	Indent  int
}

// Encode writes doc to w followed by a newline.
func Encode(w io.Writer, doc *Document, o EncodeOptions) error {
	var (
		b   []byte
		err error
	)
	switch o.Format {
	case FormatYAML:
		b, err = MarshalYAMLDialect(doc, o.Dialect, o.Indent)
	default:
		if o.Indent > 0 {
			b, err = MarshalIndent(doc, o.Dialect, "", strings.Repeat(" ", o.Indent))
		} else {
			b, err = Marshal(doc, o.Dialect)
		}
		if err == nil {
			b = append(b, '\n')
		}
	}
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
