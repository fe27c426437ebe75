// SPDX-License-Identifier: MIT
// Package: avrand/value
//
// value.go - the generated value tree.
//
// Design:
//   - Value is a tagged union keyed by Node.Type; only the payload field matching
//     the tag is meaningful.
//   - For a value generated under a union, Node is the chosen branch, so the
//     runtime type of the value is always observable.
//   - Values handed out by option pools share backing arrays with the pool;
//     treat every Value as read-only.

package value

import (
	"bytes"

	"github.com/katalvlaran/avrand/schema"
)

// Value is one generated datum.
type Value struct {
	// Node is the concrete schema node the value conforms to.
	Node *schema.Node

	// Bool holds boolean values.
	Bool bool
	// Long holds int and long values.
	Long int64
	// Double holds float and double values.
	Double float64
	// Bytes holds bytes and fixed values.
	Bytes []byte
	// Str holds string values and enum symbols.
	Str string
	// Items holds array elements in order.
	Items []Value
	// Entries holds map entries.
	Entries map[string]Value
	// Fields holds record field values aligned with Node.Fields.
	Fields []Value
}

// Type returns the value's type tag.
func (v Value) Type() schema.Type {
	if v.Node == nil {
		return ""
	}
	return v.Node.Type
}

// Field returns the value of the named record field.
func (v Value) Field(name string) (Value, bool) {
	if v.Node == nil || v.Node.Type != schema.Record {
		return Value{}, false
	}
	for i, f := range v.Node.Fields {
		if f.Name == name && i < len(v.Fields) {
			return v.Fields[i], true
		}
	}
	return Value{}, false
}

// Equal reports whether a and b hold the same datum of the same type.
//
// Complexity: O(size of a).
func Equal(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a.Type() {
	case schema.Null:
		return true
	case schema.Boolean:
		return a.Bool == b.Bool
	case schema.Int, schema.Long:
		return a.Long == b.Long
	case schema.Float, schema.Double:
		return a.Double == b.Double
	case schema.Bytes, schema.Fixed:
		return bytes.Equal(a.Bytes, b.Bytes)
	case schema.String, schema.Enum:
		return a.Str == b.Str
	case schema.Array:
		return equalSlices(a.Items, b.Items)
	case schema.Record:
		return a.Node.Name == b.Node.Name && equalSlices(a.Fields, b.Fields)
	case schema.Map:
		if len(a.Entries) != len(b.Entries) {
			return false
		}
		for k, av := range a.Entries {
			bv, ok := b.Entries[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
