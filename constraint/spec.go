// SPDX-License-Identifier: MIT
// Package: avrand/constraint
//
// spec.go - the parsed, validated annotation of one node.

package constraint

import "github.com/katalvlaran/avrand/iterate"

// DefaultAnnotationKey is the metadata property holding a node's annotation.
const DefaultAnnotationKey = "arg.properties"

// Annotation property names.
const (
	PropLength    = "length"
	PropRegex     = "regex"
	PropOptions   = "options"
	PropKeys      = "keys"
	PropRange     = "range"
	PropOdds      = "odds"
	PropIteration = "iteration"
)

// Sub-field names.
const (
	FieldMin      = "min"
	FieldMax      = "max"
	FieldFile     = "file"
	FieldEncoding = "encoding"
	FieldStart    = "start"
	FieldRestart  = "restart"
	FieldStep     = "step"
)

// Encoding is the wire encoding of an option file.
type Encoding string

// Option file encodings.
const (
	EncodingBinary Encoding = "binary"
	EncodingJSON   Encoding = "json"
)

// Spec is the validated annotation of one node. Fields that do not apply are
// nil; Length always holds a window (the default one when not annotated).
type Spec struct {
	Length    LengthBounds
	Pattern   *string
	Options   *OptionsSpec
	Keys      *KeysSpec
	IntRange  *Bounds[int64]
	Range     *Bounds[float64]
	Odds      *float64
	Iteration *IterationSpec
}

// Annotated reports whether any annotation was present.
func (s Spec) Annotated() bool {
	return s.Length.Explicit || s.Pattern != nil || s.Options != nil || s.Keys != nil ||
		s.IntRange != nil || s.Range != nil || s.Odds != nil || s.Iteration != nil
}

// OptionsSpec names where an option pool comes from: an inline list or a file.
type OptionsSpec struct {
	Inline   []Raw
	File     string
	Encoding Encoding
}

// FromFile reports whether the pool is loaded from a file.
func (o *OptionsSpec) FromFile() bool { return o.File != "" }

// KeysSpec controls map key generation. Options, when set, supplies the key
// pool; otherwise keys are random ASCII strings with a length drawn from Length.
type KeysSpec struct {
	Options *OptionsSpec
	Length  LengthBounds
}

// IterationSpec holds resolved iteration parameters; exactly one field is set,
// chosen by the node type.
type IterationSpec struct {
	Integral *iterate.Params[int64]
	Decimal  *iterate.Params[float64]
	Boolean  *bool
}
