// Package schematic derives JSON Schema documents from Go types.
//
// - Records, tagged unions (Enum), tuples, slices, arrays, maps and leaves
// - Field constraints and metadata through `schematic` struct tags
// - Explicitly marked types factored into a deduplicated $defs table
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put the derivation engine under internal/.
// - Place the descriptor builder under dsl/, the schema model and encoders under jsonschema/,
//   and the CLI under cli/ and cmd/schematic.
// - Output is deterministic: deriving the same type twice yields identical bytes.
//
// Typical usage:
//
//	type AppConfig struct {
//		Name string `json:"name" schematic:"title=Application name,required"`
//		_    struct{} `schematic:"additionalProperties=false"`
//	}
//
//	doc, err := schematic.Generate[AppConfig]("Application Config")
//	b, err := jsonschema.MarshalIndent(doc, jsonschema.DialectClassic, "", "  ")
//
//	c := schematic.NewCatalog()
//	schematic.MustRegister[AppConfig](c, "app-config", "Application Config")
//	results, err := schematic.GenerateAll(ctx, c.Entries(), schematic.WithWorkers(4))
package schematic
