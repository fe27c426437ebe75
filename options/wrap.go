// SPDX-License-Identifier: MIT
// Package: avrand/options
//
// wrap.go - coercion of loosely-typed literals into schema-exact values.
//
// Contract (strict):
//   - Wrap is total over constraint.Raw: every literal either converts to a Value
//     conforming to the node or yields an error wrapping constraint.ErrInvalidOption
//     that names the literal, its shape and the expected type.
//   - Coercions accepted: string→bytes, string→fixed (exact size), string→enum
//     symbol, integer→float/double, integral decimal→int/long, list→array,
//     object→map, object→record (missing fields filled from schema defaults).
//   - Unions accept null, the single-key {"<branch>": v} form, or a bare literal
//     matched against branches in declaration order.

package options

import (
	"fmt"
	"math"

	"github.com/katalvlaran/avrand/constraint"
	"github.com/katalvlaran/avrand/schema"
	"github.com/katalvlaran/avrand/value"
)

// Wrap converts r into a value of node's type.
//
// Complexity: O(size of r).
func Wrap(node *schema.Node, r constraint.Raw) (value.Value, error) {
	v := value.Value{Node: node}
	switch node.Type {
	case schema.Null:
		if r.IsNull() {
			return v, nil
		}
	case schema.Boolean:
		if b, ok := r.Bool(); ok {
			v.Bool = b
			return v, nil
		}
	case schema.Int:
		if i, ok := r.Int(); ok && i >= math.MinInt32 && i <= math.MaxInt32 {
			v.Long = i
			return v, nil
		}
	case schema.Long:
		if i, ok := r.Int(); ok {
			v.Long = i
			return v, nil
		}
	case schema.Float:
		if f, ok := r.Float(); ok && !math.IsInf(f, 0) && math.Abs(f) <= math.MaxFloat32 {
			v.Double = float64(float32(f))
			return v, nil
		}
	case schema.Double:
		if f, ok := r.Float(); ok {
			v.Double = f
			return v, nil
		}
	case schema.String:
		if s, ok := r.Str(); ok {
			v.Str = s
			return v, nil
		}
	case schema.Bytes:
		if b, ok := bytesOf(r); ok {
			v.Bytes = b
			return v, nil
		}
	case schema.Fixed:
		if b, ok := bytesOf(r); ok {
			if len(b) != node.Size {
				return value.Value{}, mismatch(r, fmt.Sprintf("fixed of %d bytes, got %d", node.Size, len(b)))
			}
			v.Bytes = b
			return v, nil
		}
	case schema.Enum:
		if s, ok := r.Str(); ok {
			for _, sym := range node.Symbols {
				if sym == s {
					v.Str = s
					return v, nil
				}
			}
			return value.Value{}, mismatch(r, fmt.Sprintf("one of enum symbols %v", node.Symbols))
		}
	case schema.Array:
		return wrapArray(node, r)
	case schema.Map:
		return wrapMap(node, r)
	case schema.Record:
		return wrapRecord(node, r)
	case schema.Union:
		return wrapUnion(node, r)
	}
	return value.Value{}, mismatch(r, string(node.Type))
}

func wrapArray(node *schema.Node, r constraint.Raw) (value.Value, error) {
	items, ok := r.List()
	if !ok {
		return value.Value{}, mismatch(r, "array")
	}
	v := value.Value{Node: node, Items: make([]value.Value, len(items))}
	for i, item := range items {
		w, err := Wrap(node.Items, item)
		if err != nil {
			return value.Value{}, fmt.Errorf("[%d]: %w", i, err)
		}
		v.Items[i] = w
	}
	return v, nil
}

func wrapMap(node *schema.Node, r constraint.Raw) (value.Value, error) {
	obj, ok := r.Object()
	if !ok {
		return value.Value{}, mismatch(r, "map")
	}
	v := value.Value{Node: node, Entries: make(map[string]value.Value, len(obj))}
	for k, e := range obj {
		w, err := Wrap(node.Values, e)
		if err != nil {
			return value.Value{}, fmt.Errorf("{%s}: %w", k, err)
		}
		v.Entries[k] = w
	}
	return v, nil
}

func wrapRecord(node *schema.Node, r constraint.Raw) (value.Value, error) {
	obj, ok := r.Object()
	if !ok {
		return value.Value{}, mismatch(r, "record "+node.Name)
	}
	known := make(map[string]bool, len(node.Fields))
	v := value.Value{Node: node, Fields: make([]value.Value, len(node.Fields))}
	for i, f := range node.Fields {
		known[f.Name] = true
		lit, present := obj[f.Name]
		if !present {
			if !f.HasDefault {
				return value.Value{}, fmt.Errorf("%w: record %s: field %q missing and has no default", constraint.ErrInvalidOption, node.Name, f.Name)
			}
			def, err := constraint.FromAny(f.Default)
			if err != nil {
				return value.Value{}, fmt.Errorf("%w: record %s: default of %q: %w", constraint.ErrInvalidOption, node.Name, f.Name, err)
			}
			lit = def
		}
		w, err := Wrap(f.Type, lit)
		if err != nil {
			return value.Value{}, fmt.Errorf(".%s: %w", f.Name, err)
		}
		v.Fields[i] = w
	}
	for k := range obj {
		if !known[k] {
			return value.Value{}, fmt.Errorf("%w: record %s has no field %q", constraint.ErrInvalidOption, node.Name, k)
		}
	}
	return v, nil
}

func wrapUnion(node *schema.Node, r constraint.Raw) (value.Value, error) {
	if r.IsNull() {
		for _, b := range node.Branches {
			if b.Type == schema.Null {
				return value.Value{Node: b}, nil
			}
		}
		return value.Value{}, mismatch(r, "a union with a null branch")
	}
	if obj, ok := r.Object(); ok && len(obj) == 1 {
		for name, inner := range obj {
			for _, b := range node.Branches {
				if b.TypeName() == name {
					return Wrap(b, inner)
				}
			}
		}
	}
	for _, b := range node.Branches {
		if w, err := Wrap(b, r); err == nil {
			return w, nil
		}
	}
	return value.Value{}, mismatch(r, "any union branch")
}

// bytesOf accepts bytes literals and strings (UTF-8 encoded).
func bytesOf(r constraint.Raw) ([]byte, bool) {
	if b, ok := r.Bytes(); ok {
		return b, true
	}
	if s, ok := r.Str(); ok {
		return []byte(s), true
	}
	return nil, false
}

func mismatch(r constraint.Raw, want string) error {
	return fmt.Errorf("%w: %s is %s, want %s", constraint.ErrInvalidOption, r, r.Describe(), want)
}
