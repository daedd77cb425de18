package jsonschema_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/schematic/jsonschema"
)

func ptr[T any](v T) *T { return &v }

func sampleDoc() *jsonschema.Document {
	props := jsonschema.NewProperties()
	props.Set("name", &jsonschema.Property{Title: ptr("Application name"), Schema: &jsonschema.String{MinLength: ptr[uint64](1)}})
	props.Set("ratio", &jsonschema.Property{Schema: &jsonschema.Number{
		Minimum: ptr(0.0), Maximum: ptr(1.0), ExclusiveMaximum: ptr(true),
	}})
	props.Set("pair", &jsonschema.Property{Schema: &jsonschema.Array{
		Items: jsonschema.Tuple{&jsonschema.Boolean{}, &jsonschema.Null{}},
	}})
	props.Set("node", &jsonschema.Property{Schema: &jsonschema.Ref{Key: "a/b~c"}})

	defs := jsonschema.NewDefinitions()
	defs.Set("a/b~c", &jsonschema.AnyOf{Variants: []jsonschema.Node{
		&jsonschema.String{Enum: []string{"Unit"}},
		&jsonschema.Array{Items: jsonschema.Tuple{}, MinItems: ptr[uint64](0), MaxItems: ptr[uint64](0)},
	}})
	return &jsonschema.Document{
		Title: "Sample",
		Root:  &jsonschema.Object{Properties: props, Required: []string{"name"}, AdditionalProperties: jsonschema.Allow(false)},
		Defs:  defs,
	}
}

func TestMarshal_Classic(t *testing.T) {
	b, err := jsonschema.Marshal(sampleDoc(), jsonschema.DialectClassic)
	require.NoError(t, err)
	want := `{"title":"Sample","type":"object","properties":{` +
		`"name":{"title":"Application name","type":"string","minLength":1},` +
		`"ratio":{"type":"number","minimum":0,"maximum":1,"exclusiveMaximum":true},` +
		`"pair":{"type":"array","items":[{"type":"boolean"},{"type":"null"}]},` +
		`"node":{"$ref":"#/$defs/a~1b~0c"}},` +
		`"required":["name"],"additionalProperties":false,` +
		`"$defs":{"a/b~c":{"anyOf":[{"type":"string","enum":["Unit"]},{"type":"array","items":[],"minItems":0,"maxItems":0}]}}}`
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Fatalf("classic output mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_Dialect2020(t *testing.T) {
	b, err := jsonschema.Marshal(sampleDoc(), jsonschema.Dialect2020)
	require.NoError(t, err)
	want := `{"$schema":"https://json-schema.org/draft/2020-12/schema","title":"Sample","type":"object","properties":{` +
		`"name":{"title":"Application name","type":"string","minLength":1},` +
		`"ratio":{"type":"number","minimum":0,"exclusiveMaximum":1},` +
		`"pair":{"type":"array","prefixItems":[{"type":"boolean"},{"type":"null"}]},` +
		`"node":{"$ref":"#/$defs/a~1b~0c"}},` +
		`"required":["name"],"additionalProperties":false,` +
		`"$defs":{"a/b~c":{"anyOf":[{"type":"string","enum":["Unit"]},{"type":"array","minItems":0,"maxItems":0}]}}}`
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Fatalf("2020 output mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_OmitsEmptyDefs(t *testing.T) {
	doc := &jsonschema.Document{Title: "Flag", Root: &jsonschema.Boolean{}, Defs: jsonschema.NewDefinitions()}
	b, err := jsonschema.Marshal(doc, jsonschema.DialectClassic)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Flag","type":"boolean"}`, string(b))

	doc.Defs = nil
	b, err = doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Flag","type":"boolean"}`, string(b))
}

func TestMarshal_DoesNotEscapeHTML(t *testing.T) {
	doc := &jsonschema.Document{Title: "<a & b>", Root: &jsonschema.String{Pattern: ptr("^<.+>$")}}
	b, err := jsonschema.Marshal(doc, jsonschema.DialectClassic)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"<a & b>","type":"string","pattern":"^<.+>$"}`, string(b))
}

func TestMarshalIndent(t *testing.T) {
	props := jsonschema.NewProperties()
	props.Set("tags", &jsonschema.Property{Schema: &jsonschema.Array{Items: jsonschema.List{Schema: &jsonschema.String{}}}})
	doc := &jsonschema.Document{
		Title: "Indented",
		Root:  &jsonschema.Object{Properties: props, AdditionalProperties: jsonschema.ValuesOf(&jsonschema.Number{})},
	}
	b, err := jsonschema.MarshalIndent(doc, jsonschema.DialectClassic, "", "  ")
	require.NoError(t, err)
	want := `{
  "title": "Indented",
  "type": "object",
  "properties": {
    "tags": {
      "type": "array",
      "items": {
        "type": "string"
      }
    }
  },
  "additionalProperties": {
    "type": "number"
  }
}`
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Fatalf("indented output mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_EncodeErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  *jsonschema.Document
	}{
		{"nan", &jsonschema.Document{Title: "x", Root: &jsonschema.Number{Minimum: ptr(math.NaN())}}},
		{"inf", &jsonschema.Document{Title: "x", Root: &jsonschema.Number{MultipleOf: ptr(math.Inf(1))}}},
		{"invalid utf8", &jsonschema.Document{Title: "bad\xff", Root: &jsonschema.Null{}}},
		{"nil items", &jsonschema.Document{Title: "x", Root: &jsonschema.AnyOf{Variants: []jsonschema.Node{nil}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := jsonschema.Marshal(tc.doc, jsonschema.DialectClassic)
			var ee *jsonschema.EncodeError
			require.True(t, errors.As(err, &ee), "got %v", err)
			assert.Equal(t, "json", ee.Format)

			_, err = jsonschema.MarshalYAMLDialect(tc.doc, jsonschema.DialectClassic, 2)
			require.True(t, errors.As(err, &ee), "got %v", err)
			assert.Equal(t, "yaml", ee.Format)
		})
	}
}

func TestMarshalYAML(t *testing.T) {
	b, err := jsonschema.MarshalYAMLDialect(sampleDoc(), jsonschema.DialectClassic, 2)
	require.NoError(t, err)
	want := `title: Sample
type: object
properties:
  name:
    title: Application name
    type: string
    minLength: 1
  ratio:
    type: number
    minimum: 0
    maximum: 1
    exclusiveMaximum: true
  pair:
    type: array
    items:
      - type: boolean
      - type: "null"
  node:
    $ref: '#/$defs/a~1b~0c'
required:
  - name
additionalProperties: false
$defs:
  a/b~c:
    anyOf:
      - type: string
        enum:
          - Unit
      - type: array
        items: []
        minItems: 0
        maxItems: 0
`
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Fatalf("yaml output mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode(t *testing.T) {
	doc := &jsonschema.Document{Title: "Flag", Root: &jsonschema.Boolean{}}

	var buf bytes.Buffer
	require.NoError(t, jsonschema.Encode(&buf, doc, jsonschema.EncodeOptions{}))
	assert.Equal(t, "{\"title\":\"Flag\",\"type\":\"boolean\"}\n", buf.String())

	buf.Reset()
	require.NoError(t, jsonschema.Encode(&buf, doc, jsonschema.EncodeOptions{Indent: 2}))
	assert.Equal(t, "{\n  \"title\": \"Flag\",\n  \"type\": \"boolean\"\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, jsonschema.Encode(&buf, doc, jsonschema.EncodeOptions{Format: jsonschema.FormatYAML}))
	assert.Equal(t, "title: Flag\ntype: boolean\n", buf.String())
}

func TestParseFormatAndDialect(t *testing.T) {
	f, ok := jsonschema.ParseFormat("YML")
	assert.True(t, ok)
	assert.Equal(t, jsonschema.FormatYAML, f)
	assert.Equal(t, ".yaml", f.Ext())
	_, ok = jsonschema.ParseFormat("toml")
	assert.False(t, ok)

	d, ok := jsonschema.ParseDialect("2020-12")
	assert.True(t, ok)
	assert.Equal(t, jsonschema.Dialect2020, d)
	d, ok = jsonschema.ParseDialect("")
	assert.True(t, ok)
	assert.Equal(t, jsonschema.DialectClassic, d)
	_, ok = jsonschema.ParseDialect("draft-04")
	assert.False(t, ok)
}

func TestEscapePointer(t *testing.T) {
	assert.Equal(t, "a~1b~0c", jsonschema.EscapePointer("a/b~c"))
	assert.Equal(t, "#/$defs/pkg.Type", (&jsonschema.Ref{Key: "pkg.Type"}).Pointer())
}
