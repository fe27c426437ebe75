// SPDX-License-Identifier: MIT
// Package: avrand/constraint
//
// errors.go - configuration error taxonomy.
//
// Policy:
//   - Every annotation failure is a *ConfigError carrying the node path and the
//     offending property; its Err field is one of the sentinels below (possibly
//     wrapped with more context).
//   - errors.Is(err, ErrConfiguration) matches any ConfigError.
//   - Iteration sentinels are re-exported from package iterate so callers need
//     only this package to classify failures.

package constraint

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/avrand/iterate"
)

// ErrConfiguration is the umbrella sentinel matched by every *ConfigError.
var ErrConfiguration = errors.New("constraint: invalid configuration")

var (
	// ErrConflict indicates two annotations that cannot be combined on one node.
	ErrConflict = errors.New("constraint: conflicting annotations")

	// ErrInapplicable indicates an annotation that has no meaning for the node's type.
	ErrInapplicable = errors.New("constraint: annotation not applicable to node type")

	// ErrUnknownProperty indicates an unrecognized annotation or sub-field name.
	ErrUnknownProperty = errors.New("constraint: unknown property")

	// ErrWrongType indicates a literal of the wrong shape (e.g. string where a number is required).
	ErrWrongType = errors.New("constraint: wrong literal type")

	// ErrOutOfRange indicates a numeric literal outside the bounds of its target.
	ErrOutOfRange = errors.New("constraint: value out of range")

	// ErrMissingField indicates a required sub-field is absent.
	ErrMissingField = errors.New("constraint: missing required field")

	// ErrEmptyOptions indicates an option pool with no candidates.
	ErrEmptyOptions = errors.New("constraint: option pool is empty")

	// ErrInvalidOption indicates an option literal that does not conform to the node's type.
	ErrInvalidOption = errors.New("constraint: option does not match schema")

	// ErrBadEncoding indicates an option file encoding other than binary or json.
	ErrBadEncoding = errors.New("constraint: unsupported option file encoding")

	// ErrOptionsFile indicates the option file could not be read or decoded.
	ErrOptionsFile = errors.New("constraint: option file unreadable")

	// ErrBadPattern indicates a regex annotation that does not compile.
	ErrBadPattern = errors.New("constraint: invalid regular expression")

	// ErrPatternWindow indicates no string matching the pattern fits the length window.
	ErrPatternWindow = errors.New("constraint: pattern cannot satisfy length window")
)

// Iteration sentinels.
var (
	ErrZeroStep      = iterate.ErrZeroStep
	ErrEqualBounds   = iterate.ErrEqualBounds
	ErrStepDirection = iterate.ErrStepDirection
)

// ConfigError reports a malformed or conflicting annotation on one node.
type ConfigError struct {
	// Node is the diagnostic path of the offending schema node.
	Node string
	// Property is the dotted annotation property, e.g. "length.min".
	Property string
	// Err is the cause; it wraps one of the package sentinels.
	Err error
}

// Error implements error.
func (e *ConfigError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("%s: %v", e.Node, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Node, e.Property, e.Err)
}

// Unwrap returns the cause.
func (e *ConfigError) Unwrap() error { return e.Err }

// Is matches the umbrella sentinel.
func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

// Errorf builds a *ConfigError whose cause is formatted with fmt.Errorf, so
// %w verbs keep the sentinel chain intact.
func Errorf(node, property, format string, args ...any) error {
	return &ConfigError{Node: node, Property: property, Err: fmt.Errorf(format, args...)}
}
