// Package dsl builds shape descriptors by hand, for schemas that have no Go
// type behind them (configuration formats owned by another tool, wire
// messages described in data, generated catalogs).
//
// Overview
//   - Object/Union return builders; leaf constructors (String, Number, Bool,
//     Null) and containers (Array, FixedArray, Map, Tuple) return descriptors
//     directly.
//   - Build validates the descriptor and returns schematic.Issues on failure;
//     MustBuild panics instead.
//   - Shape exposes a descriptor before Build so a graph can refer to itself.
//     Recursive graphs must pass through an object or union marked with Defs.
//
// Entry points
//   - Object(name)  -> *objectBuilder (Field, AdditionalProperties, Defs, Build)
//   - Union(name)   -> *unionBuilder (Unit, Newtype, Tuple, Struct, Build)
//   - Define(key, t) marks any descriptor for promotion into $defs.
//
// Example
//
//	node := dsl.Object("Node").DefsAs("Node")
//	node.Field("value", dsl.Number()).Required().
//	    Field("children", dsl.Array(node.Shape()))
//	doc, _ := schematic.GenerateShape("Tree", node.MustBuild())
//	_ = doc // root inlined, children items -> {"$ref":"#/$defs/Node"}
//
// Field facets
//
//	dsl.Object("User").
//	    Field("name", dsl.String()).Title("Name").Required().MinLength(1).
//	    Field("age", dsl.Number()).Minimum(0).
//	    Field("tags", dsl.Array(dsl.String())).MaxItems(8).
//	    MustBuild()
//
// Facets that do not match the field's kind are ignored during derivation,
// the same way struct tags behave.
package dsl
