package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// EncodeError reports a failure to serialize an assembled document. It is
// kept apart from derivation errors: the schema itself was built.
type EncodeError struct {
	Format string
	Err    error
}

func (e *EncodeError) Error() string { return "jsonschema: encode " + e.Format + ": " + e.Err.Error() }
func (e *EncodeError) Unwrap() error { return e.Err }

var errNilNode = errors.New("nil schema node")

// MarshalJSON encodes the document compactly in DialectClassic.
func (doc *Document) MarshalJSON() ([]byte, error) { return Marshal(doc, DialectClassic) }

// Marshal encodes doc as compact JSON.
func Marshal(doc *Document, d Dialect) ([]byte, error) {
	w := &jsonWriter{d: d}
	if err := w.object(doc.members(d)); err != nil {
		return nil, &EncodeError{Format: "json", Err: err}
	}
	return w.buf.Bytes(), nil
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent(doc *Document, d Dialect, prefix, indent string) ([]byte, error) {
	b, err := Marshal(doc, d)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, prefix, indent); err != nil {
		return nil, &EncodeError{Format: "json", Err: err}
	}
	return out.Bytes(), nil
}

// MarshalNode encodes a single node compactly.
func MarshalNode(n Node, d Dialect) ([]byte, error) {
	w := &jsonWriter{d: d}
	if err := w.value(n); err != nil {
		return nil, &EncodeError{Format: "json", Err: err}
	}
	return w.buf.Bytes(), nil
}

type jsonWriter struct {
	buf bytes.Buffer
	d   Dialect
}

func (w *jsonWriter) object(ms []member) error {
	w.buf.WriteByte('{')
	for i, m := range ms {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		if err := w.str(m.Key); err != nil {
			return err
		}
		w.buf.WriteByte(':')
		if err := w.value(m.Value); err != nil {
			return fmt.Errorf("%s: %w", m.Key, err)
		}
	}
	w.buf.WriteByte('}')
	return nil
}

func (w *jsonWriter) value(v any) error {
	switch t := v.(type) {
	case string:
		return w.str(t)
	case bool:
		w.buf.WriteString(strconv.FormatBool(t))
	case uint64:
		w.buf.WriteString(strconv.FormatUint(t, 10))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("unsupported number %v", t)
		}
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		w.buf.Write(b)
	case []string:
		w.buf.WriteByte('[')
		for i, s := range t {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := w.str(s); err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')
	case Node:
		if t == nil {
			return errNilNode
		}
		return w.object(t.members(w.d))
	case []Node:
		w.buf.WriteByte('[')
		for i, n := range t {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if n == nil {
				return errNilNode
			}
			if err := w.object(n.members(w.d)); err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')
	case []member:
		return w.object(t)
	case nil:
		return errNilNode
	default:
		return fmt.Errorf("unsupported value %T", v)
	}
	return nil
}

func (w *jsonWriter) str(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("invalid UTF-8 in %q", s)
	}
	b, err := json.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	w.buf.Write(b)
	return nil
}
