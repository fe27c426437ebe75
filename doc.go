// Package avrand generates random values for Avro schemas, steered by
// per-node annotations stored under the "arg.properties" schema property.
//
// What is avrand?
//
//	A deterministic, seedable fixture generator that brings together:
//		• Bounded lengths for strings, bytes, arrays and maps
//		• Numeric ranges and weighted booleans
//		• Regex-shaped strings
//		• Option pools, inline or decoded from Avro binary/JSON files
//		• Map key policies
//		• Cyclic iteration sequences in place of randomness
//
// Under the hood the work is split across these packages:
//
//	schema/     - preprocessing of a hamba/avro schema into an ID-keyed node tree
//	constraint/ - annotation parsing and validation, ConfigError taxonomy
//	iterate/    - integral, decimal and boolean sequences with wraparound
//	options/    - option pool resolution and literal wrapping
//	value/      - generated value tree and its codec-native form
//	generator/  - the Engine: recursive generation and per-node caches
//	cmd/avrand  - command-line front end (json, binary and OCF output)
//
// Quick start:
//
//	s, _ := schema.Parse(`{"type": "int", "arg.properties": {"range": {"min": 1, "max": 7}}}`)
//	e, _ := generator.New(s, generator.WithSeed(42))
//	v, _ := e.Generate()
//	fmt.Println(v.Long) // a die roll
//
// Same seed, same schema, same values: two engines built alike produce
// identical sequences.
package avrand
