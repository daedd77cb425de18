package schematic

import (
	"bytes"
	"fmt"

	sjs "github.com/santhosh-tekuri/jsonschema/v6"

	js "github.com/reoring/schematic/jsonschema"
)

// Check compiles doc with an independent JSON Schema 2020-12 implementation.
// It catches dangling references and malformed keywords; it does not
// validate any instance data.
func Check(doc *js.Document) error {
	b, err := js.Marshal(doc, js.Dialect2020)
	if err != nil {
		return err
	}
	v, err := sjs.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("schematic: check %q: decoding: %w", doc.Title, err)
	}
	c := sjs.NewCompiler()
	c.DefaultDraft(sjs.Draft2020)
	if err := c.AddResource("schema.json", v); err != nil {
		return fmt.Errorf("schematic: check %q: adding resource: %w", doc.Title, err)
	}
	if _, err := c.Compile("schema.json"); err != nil {
		return fmt.Errorf("schematic: check %q: %w", doc.Title, err)
	}
	return nil
}
