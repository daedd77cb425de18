package schematic

import (
	"bytes"
	"reflect"

	"go.uber.org/zap"

	js "github.com/reoring/schematic/jsonschema"
	"github.com/reoring/schematic/internal/engine"
	"github.com/reoring/schematic/shape"
)

// Generate derives the schema document of T. Structural problems are
// reported as Issues and no partial document is returned.
func Generate[T any](title string, opts ...Option) (*js.Document, error) {
	return GenerateType(TypeOf[T](), title, opts...)
}

// GenerateType is Generate for a reflect.Type known only at run time.
func GenerateType(t reflect.Type, title string, opts ...Option) (*js.Document, error) {
	s, err := Describe(t)
	if err != nil {
		return nil, err
	}
	return GenerateShape(title, s, opts...)
}

// GenerateShape derives the document of an explicit descriptor, such as one
// built with the dsl package. Each call uses its own definitions registry.
func GenerateShape(title string, s shape.Type, opts ...Option) (*js.Document, error) {
	o := buildOpts(opts)
	doc, err := engine.Generate(title, s, o.Logger)
	if err != nil {
		o.Logger.Debug("schema derivation failed", zap.String("title", title), zap.Error(err))
		return nil, toIssues(err)
	}
	return doc, nil
}

// MarshalJSON generates the schema of T and encodes it as JSON, indented by
// two spaces unless WithIndent says otherwise.
func MarshalJSON[T any](title string, opts ...Option) ([]byte, error) {
	return marshal[T](title, js.FormatJSON, opts)
}

// MarshalYAML generates the schema of T and encodes it as YAML.
func MarshalYAML[T any](title string, opts ...Option) ([]byte, error) {
	return marshal[T](title, js.FormatYAML, opts)
}

func marshal[T any](title string, f js.Format, opts []Option) ([]byte, error) {
	doc, err := Generate[T](title, opts...)
	if err != nil {
		return nil, err
	}
	o := buildOpts(opts)
	var buf bytes.Buffer
	if err := js.Encode(&buf, doc, js.EncodeOptions{Format: f, Dialect: o.Dialect, Indent: o.Indent}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
