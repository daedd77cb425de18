package schematic_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/schematic"
	js "github.com/reoring/schematic/jsonschema"
)

func pretty(t *testing.T, doc *js.Document) string {
	t.Helper()
	b, err := js.MarshalIndent(doc, js.DialectClassic, "", "  ")
	require.NoError(t, err)
	return string(b)
}

func assertGolden(t *testing.T, want, got string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

type Data struct {
	TestFlag bool     `json:"test_flag" schematic:"title=Test flag,description=The flag whether for test."`
	_        struct{} `schematic:"additionalProperties"`
}

type AppConfig struct {
	Name      string `json:"name" schematic:"title=Application name,required"`
	Version   string `json:"version" schematic:"title=Application version,required,pattern='^(0|[1-9][0-9]*)\\.(0|[1-9][0-9]*)\\.(0|[1-9][0-9]*)$'"`
	OtherData Data   `json:"other_data" schematic:"title=Application data,description=This property is optional."`
}

func TestGenerate_AppConfig(t *testing.T) {
	doc, err := schematic.Generate[AppConfig]("Application Config")
	require.NoError(t, err)
	assertGolden(t, `{
  "title": "Application Config",
  "type": "object",
  "properties": {
    "name": {
      "title": "Application name",
      "type": "string"
    },
    "version": {
      "title": "Application version",
      "type": "string",
      "pattern": "^(0|[1-9][0-9]*)\\.(0|[1-9][0-9]*)\\.(0|[1-9][0-9]*)$"
    },
    "other_data": {
      "title": "Application data",
      "description": "This property is optional.",
      "type": "object",
      "properties": {
        "test_flag": {
          "title": "Test flag",
          "description": "The flag whether for test.",
          "type": "boolean"
        }
      },
      "additionalProperties": true
    }
  },
  "required": [
    "name",
    "version"
  ],
  "additionalProperties": false
}`, pretty(t, doc))
}

type structVariant struct {
	Value int32 `json:"value" schematic:"title=i32"`
}

type Enum struct{}

func (Enum) SchemaVariants() []schematic.Variant {
	return []schematic.Variant{
		schematic.UnitVariant("UnitVariant"),
		schematic.TupleVariant("EmptyTupleVariant"),
		schematic.TupleVariant("TupleVariant", schematic.TypeOf[int32](), schematic.TypeOf[string]()),
		schematic.StructVariant[structVariant]("StructVariant"),
	}
}

func TestGenerate_UnionVariantsInDeclarationOrder(t *testing.T) {
	doc, err := schematic.Generate[Enum]("Enum")
	require.NoError(t, err)
	b, err := js.Marshal(doc, js.DialectClassic)
	require.NoError(t, err)
	assertGolden(t, `{"title":"Enum","anyOf":[`+
		`{"type":"string","enum":["UnitVariant"]},`+
		`{"type":"array","items":[],"minItems":0,"maxItems":0},`+
		`{"type":"array","items":[{"type":"number"},{"type":"string"}],"minItems":2,"maxItems":2},`+
		`{"type":"object","properties":{"value":{"title":"i32","type":"number"}},"additionalProperties":false}]}`,
		string(b))
}

type HashMapProperty struct {
	PropHashmapSingle  map[string]uint32 `json:"prop_hashmap_single" schematic:"title=map[string]uint32"`
	PropHashmapComplex map[string]Enum   `json:"prop_hashmap_complex" schematic:"title=map[string]Enum"`
}

func TestGenerate_HashMapProperty(t *testing.T) {
	doc, err := schematic.Generate[HashMapProperty]("HashMap Property")
	require.NoError(t, err)
	assertGolden(t, `{
  "title": "HashMap Property",
  "type": "object",
  "properties": {
    "prop_hashmap_single": {
      "title": "map[string]uint32",
      "type": "object",
      "properties": {},
      "additionalProperties": {
        "type": "number"
      }
    },
    "prop_hashmap_complex": {
      "title": "map[string]Enum",
      "type": "object",
      "properties": {},
      "additionalProperties": {
        "anyOf": [
          {
            "type": "string",
            "enum": [
              "UnitVariant"
            ]
          },
          {
            "type": "array",
            "items": [],
            "minItems": 0,
            "maxItems": 0
          },
          {
            "type": "array",
            "items": [
              {
                "type": "number"
              },
              {
                "type": "string"
              }
            ],
            "minItems": 2,
            "maxItems": 2
          },
          {
            "type": "object",
            "properties": {
              "value": {
                "title": "i32",
                "type": "number"
              }
            },
            "additionalProperties": false
          }
        ]
      }
    }
  },
  "additionalProperties": false
}`, pretty(t, doc))
}

type defNested struct {
	PropValue int32    `json:"prop_value"`
	_         struct{} `schematic:"defs"`
}

type defStruct struct {
	PropValue        int32     `json:"prop_value"`
	PropNestedStruct defNested `json:"prop_nested_struct"`
	_                struct{}  `schematic:"defs"`
}

type defNamed struct {
	PropValue int32    `json:"prop_value"`
	_         struct{} `schematic:"defs=CustomDefinition"`
}

type defEnumStruct struct {
	Value int32 `json:"value"`
}

type defEnum struct{}

func (defEnum) SchemaDefinition() string { return "" }

func (defEnum) SchemaVariants() []schematic.Variant {
	return []schematic.Variant{
		schematic.TupleVariant("EmptyTupleVariant"),
		schematic.NewtypeVariant[int32]("NewTypeVariant"),
		schematic.TupleVariant("TupleVariant", schematic.TypeOf[string](), schematic.TypeOf[bool]()),
		schematic.StructVariant[defEnumStruct]("StructVariant"),
	}
}

type definitions struct {
	PropStruct          defStruct  `json:"prop_struct"`
	PropNamedDefsStruct defNamed   `json:"prop_named_defs_struct"`
	PropVecEnum         []defEnum  `json:"prop_vec_enum"`
	PropAgain           *defStruct `json:"prop_again"`
}

func TestGenerate_Definitions(t *testing.T) {
	doc, err := schematic.Generate[definitions]("Definitions")
	require.NoError(t, err)

	pkg := reflect.TypeOf(definitions{}).PkgPath()
	want := strings.NewReplacer("PTR", js.EscapePointer(pkg), "PKG", pkg).Replace(`{
  "title": "Definitions",
  "type": "object",
  "properties": {
    "prop_struct": {
      "$ref": "#/$defs/PTR.defStruct"
    },
    "prop_named_defs_struct": {
      "$ref": "#/$defs/CustomDefinition"
    },
    "prop_vec_enum": {
      "type": "array",
      "items": {
        "$ref": "#/$defs/PTR.defEnum"
      }
    },
    "prop_again": {
      "$ref": "#/$defs/PTR.defStruct"
    }
  },
  "additionalProperties": false,
  "$defs": {
    "PKG.defStruct": {
      "type": "object",
      "properties": {
        "prop_value": {
          "type": "number"
        },
        "prop_nested_struct": {
          "$ref": "#/$defs/PTR.defNested"
        }
      },
      "additionalProperties": false
    },
    "PKG.defNested": {
      "type": "object",
      "properties": {
        "prop_value": {
          "type": "number"
        }
      },
      "additionalProperties": false
    },
    "CustomDefinition": {
      "type": "object",
      "properties": {
        "prop_value": {
          "type": "number"
        }
      },
      "additionalProperties": false
    },
    "PKG.defEnum": {
      "anyOf": [
        {
          "type": "array",
          "items": [],
          "minItems": 0,
          "maxItems": 0
        },
        {
          "type": "number"
        },
        {
          "type": "array",
          "items": [
            {
              "type": "string"
            },
            {
              "type": "boolean"
            }
          ],
          "minItems": 2,
          "maxItems": 2
        },
        {
          "type": "object",
          "properties": {
            "value": {
              "type": "number"
            }
          },
          "additionalProperties": false
        }
      ]
    }
  }
}`)
	assertGolden(t, want, pretty(t, doc))
	assert.Equal(t, 4, doc.Defs.Len())
}

type treeNode struct {
	Value    float64    `json:"value" schematic:"required"`
	Children []treeNode `json:"children"`
	_        struct{}   `schematic:"defs=Tree"`
}

func TestGenerate_SelfReferenceTerminates(t *testing.T) {
	doc, err := schematic.Generate[treeNode]("Tree")
	require.NoError(t, err)
	b, err := js.Marshal(doc, js.DialectClassic)
	require.NoError(t, err)
	assertGolden(t, `{"title":"Tree","type":"object","properties":{`+
		`"value":{"title":"","type":"number"},`+
		`"children":{"type":"array","items":{"$ref":"#/$defs/Tree"}}},`+
		`"required":["value"],"additionalProperties":false,`+
		`"$defs":{"Tree":{"type":"object","properties":{`+
		`"value":{"title":"","type":"number"},`+
		`"children":{"type":"array","items":{"$ref":"#/$defs/Tree"}}},`+
		`"required":["value"],"additionalProperties":false}}}`,
		string(b))
	require.NoError(t, schematic.Check(doc))
}

func TestGenerate_Deterministic(t *testing.T) {
	var outputs []string
	for i := 0; i < 5; i++ {
		doc, err := schematic.Generate[definitions]("Definitions")
		require.NoError(t, err)
		outputs = append(outputs, pretty(t, doc))
	}
	for _, o := range outputs[1:] {
		assert.Equal(t, outputs[0], o)
	}
}

type looping struct {
	Next []looping `json:"next"`
}

type innerUnion struct{}

func (innerUnion) SchemaVariants() []schematic.Variant {
	return []schematic.Variant{schematic.UnitVariant("A")}
}

type outerUnion struct{}

func (outerUnion) SchemaVariants() []schematic.Variant {
	return []schematic.Variant{
		schematic.UnitVariant("Plain"),
		schematic.NewtypeVariant[innerUnion]("Nested"),
	}
}

type collideA struct {
	V int      `json:"v"`
	_ struct{} `schematic:"defs=Same"`
}

type collideB struct {
	V string   `json:"v"`
	_ struct{} `schematic:"defs=Same"`
}

func TestGenerate_StructuralErrors(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		code string
		path string
	}{
		{"recursion without defs", schematic.TypeOf[looping](), schematic.CodeRecursiveType, "/properties/next/items"},
		{"nested union", schematic.TypeOf[outerUnion](), schematic.CodeNestedUnion, "/anyOf/1"},
		{"definition collision", schematic.TypeOf[struct {
			A collideA `json:"a"`
			B collideB `json:"b"`
		}](), schematic.CodeDefinitionCollision, "/properties/b"},
		{"unsupported kind", schematic.TypeOf[struct {
			Ch chan int `json:"ch"`
		}](), schematic.CodeUnsupportedShape, "/properties/ch"},
		{"interface", schematic.TypeOf[struct {
			Any any `json:"any"`
		}](), schematic.CodeUnsupportedShape, "/properties/any"},
		{"map key", schematic.TypeOf[map[float64]string](), schematic.CodeUnsupportedShape, "/"},
		{"bad tag", schematic.TypeOf[struct {
			Bad string `json:"bad" schematic:"minLength=-1"`
		}](), schematic.CodeInvalidTag, "/properties/bad"},
		{"duplicate property", schematic.TypeOf[struct {
			A string `json:"a"`
			B string `json:"a"`
		}](), schematic.CodeDuplicateProperty, "/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := schematic.GenerateType(tc.typ, "Broken")
			require.Error(t, err)
			assert.Nil(t, doc)
			iss, ok := schematic.AsIssues(err)
			require.True(t, ok, "got %T: %v", err, err)
			require.Len(t, iss, 1)
			assert.Equal(t, tc.code, iss[0].Code)
			assert.Equal(t, tc.path, iss[0].Path)
			assert.NotEmpty(t, iss[0].Message)
			assert.True(t, schematic.HasCode(err, tc.code))
		})
	}
}

func TestMarshalHelpers(t *testing.T) {
	b, err := schematic.MarshalJSON[Data]("Data", schematic.WithIndent(0))
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Data","type":"object","properties":{"test_flag":{"title":"Test flag","description":"The flag whether for test.","type":"boolean"}},"additionalProperties":true}`, string(b))

	y, err := schematic.MarshalYAML[Data]("Data")
	require.NoError(t, err)
	assert.Equal(t, `title: Data
type: object
properties:
  test_flag:
    title: Test flag
    description: The flag whether for test.
    type: boolean
additionalProperties: true`, string(y))

	_, err = schematic.MarshalJSON[looping]("Loop")
	assert.True(t, schematic.HasCode(err, schematic.CodeRecursiveType))
}
