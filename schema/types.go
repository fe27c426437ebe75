// SPDX-License-Identifier: MIT
// Package: avrand/schema
//
// types.go - node model produced by the preprocessing pass.
//
// Design:
//   - A Node is immutable after Parse/FromAvro returns; the engine never mutates it.
//   - Node.ID is dense (0..Len()-1) and stable for the lifetime of the Schema, so
//     derived state can be kept in slices/maps keyed by ID instead of pointers.
//   - Named types (record/enum/fixed) appear once in the tree even when referenced
//     from several places; recursive references point back to the same *Node.

package schema

import (
	"github.com/hamba/avro/v2"
)

// Type is the type tag of a schema node.
type Type string

// Type tags understood by the generator.
const (
	Array   Type = "array"
	Boolean Type = "boolean"
	Bytes   Type = "bytes"
	Double  Type = "double"
	Enum    Type = "enum"
	Fixed   Type = "fixed"
	Float   Type = "float"
	Int     Type = "int"
	Long    Type = "long"
	Map     Type = "map"
	Null    Type = "null"
	Record  Type = "record"
	String  Type = "string"
	Union   Type = "union"
)

// SyntheticID marks nodes that do not belong to a parsed Schema (see NewPrimitive).
const SyntheticID = -1

// Field is one declared record field.
type Field struct {
	// Name is the field name as declared.
	Name string
	// Type is the field's schema node.
	Type *Node
	// HasDefault reports whether the schema declares a default for this field.
	HasDefault bool
	// Default is the declared default in the schema library's generic form.
	// It is nil both for "no default" and for a null default; use HasDefault.
	Default any
}

// Node is one typed element of the schema tree.
type Node struct {
	// ID is the dense identifier assigned during preprocessing.
	ID int
	// Type is the node's type tag.
	Type Type
	// Name is the full name of named types (record, enum, fixed); empty otherwise.
	Name string
	// Path locates the node for diagnostics, e.g. "example.User.tags[]".
	Path string

	// Items is the element type of an array node.
	Items *Node
	// Values is the value type of a map node.
	Values *Node
	// Fields are the record fields in declaration order.
	Fields []Field
	// Symbols are the declared enum symbols.
	Symbols []string
	// Size is the declared byte size of a fixed node.
	Size int
	// Branches are the union member types in declaration order.
	Branches []*Node

	// Props is the node's metadata property bag (never nil).
	Props map[string]any

	// source is the schema library's node, used to build codecs.
	source avro.Schema
}

// TypeName returns the name the wire codec uses for this node inside a union:
// the full name for named types, the type tag otherwise.
func (n *Node) TypeName() string {
	if n.Name != "" {
		return n.Name
	}
	return string(n.Type)
}

// Prop returns a metadata property and whether it was present.
func (n *Node) Prop(key string) (any, bool) {
	v, ok := n.Props[key]
	return v, ok
}

// Source returns the schema library's node (nil for synthetic nodes).
func (n *Node) Source() avro.Schema { return n.source }

// Synthetic reports whether the node was created outside a parsed Schema.
func (n *Node) Synthetic() bool { return n.ID == SyntheticID }

// NewPrimitive returns a standalone primitive node that is not part of any
// Schema. The generator uses it to type map-key option pools.
func NewPrimitive(t Type, path string) *Node {
	return &Node{ID: SyntheticID, Type: t, Path: path, Props: map[string]any{}}
}

// IsPrimitive reports whether t has no children and no declared attributes.
func IsPrimitive(t Type) bool {
	switch t {
	case Boolean, Bytes, Double, Float, Int, Long, Null, String:
		return true
	default:
		return false
	}
}
