// SPDX-License-Identifier: MIT
// Package: avrand/generator
//
// errors.go - sentinel errors for the generator package.
//
// Error policy:
//   - Annotation problems surface as *constraint.ConfigError (see package constraint).
//   - The sentinels below cover misuse of the Engine API itself.
//   - Public methods prefix errors with their name via generatorErrorf and keep
//     the chain intact for errors.Is.

package generator

import (
	"errors"
	"fmt"
)

// ErrNilSchema indicates New was called without a schema.
var ErrNilSchema = errors.New("generator: nil schema")

// ErrForeignNode indicates a node that does not belong to the engine's schema.
var ErrForeignNode = errors.New("generator: node does not belong to this schema")

// Method tokens used as error prefixes.
const (
	methodNew          = "New"
	methodGenerate     = "Generate"
	methodGenerateNode = "GenerateNode"
)

// generatorErrorf returns "<method>: <message>" keeping %w chains.
func generatorErrorf(method, format string, args ...any) error {
	return fmt.Errorf("%s: %w", method, fmt.Errorf(format, args...))
}
