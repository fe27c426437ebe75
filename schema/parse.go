// SPDX-License-Identifier: MIT
// Package: avrand/schema
//
// parse.go - schema loading and the one-time preprocessing pass.
//
// Contract:
//   - Parsing is delegated to hamba/avro; this package never reads schema syntax.
//   - Every Parse* call uses its own name cache, so two schemas declaring the same
//     record name do not leak definitions into each other.
//   - The preprocessing pass visits each distinct node once (named types by full
//     name) and assigns IDs in depth-first, declaration order.

package schema

import (
	"fmt"
	"io"
	"os"

	"github.com/hamba/avro/v2"
)

// Schema is a preprocessed, immutable schema tree.
type Schema struct {
	root  *Node
	nodes []*Node
}

// Root returns the top-level node.
func (s *Schema) Root() *Node { return s.root }

// Len returns the number of distinct nodes in the tree.
func (s *Schema) Len() int { return len(s.nodes) }

// Node returns the node with the given ID, or nil when id is out of range.
func (s *Schema) Node(id int) *Node {
	if id < 0 || id >= len(s.nodes) {
		return nil
	}
	return s.nodes[id]
}

// Nodes returns all nodes ordered by ID. The slice is a copy.
func (s *Schema) Nodes() []*Node {
	out := make([]*Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Owns reports whether n belongs to this schema tree.
func (s *Schema) Owns(n *Node) bool {
	return n != nil && s.Node(n.ID) == n
}

// Parse parses a schema from its JSON text.
func Parse(text string) (*Schema, error) {
	src, err := avro.ParseWithCache(text, "", &avro.SchemaCache{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FromAvro(src)
}

// ParseBytes parses a schema from raw JSON bytes.
func ParseBytes(b []byte) (*Schema, error) {
	src, err := avro.ParseBytesWithCache(b, "", &avro.SchemaCache{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FromAvro(src)
}

// ParseReader consumes r fully and parses its content as a schema.
func ParseReader(r io.Reader) (*Schema, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", ErrParse, err)
	}
	return ParseBytes(b)
}

// ParseFile parses the schema stored at path.
func ParseFile(path string) (*Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	return ParseBytes(b)
}

// FromAvro runs the preprocessing pass over an already parsed hamba/avro schema.
//
// Complexity: O(V) time and space in distinct schema nodes.
func FromAvro(src avro.Schema) (*Schema, error) {
	if src == nil {
		return nil, ErrNilSchema
	}
	w := &walker{named: make(map[string]*Node)}
	root, err := w.visit(src, rootPath(src))
	if err != nil {
		return nil, err
	}
	return &Schema{root: root, nodes: w.nodes}, nil
}

// walker carries the state of one preprocessing pass.
type walker struct {
	nodes []*Node
	named map[string]*Node
}

func (w *walker) visit(src avro.Schema, path string) (*Node, error) {
	if ref, ok := src.(*avro.RefSchema); ok {
		src = ref.Schema()
	}
	if named, ok := src.(avro.NamedSchema); ok {
		if n, seen := w.named[named.FullName()]; seen {
			return n, nil
		}
	}

	n := &Node{ID: len(w.nodes), Path: path, Props: propsOf(src), source: src}
	w.nodes = append(w.nodes, n)

	switch s := src.(type) {
	case *avro.RecordSchema:
		n.Type, n.Name = Record, s.FullName()
		// register before descending so recursive references resolve to n
		w.named[n.Name] = n
		n.Fields = make([]Field, 0, len(s.Fields()))
		for _, f := range s.Fields() {
			child, err := w.visit(f.Type(), path+"."+f.Name())
			if err != nil {
				return nil, err
			}
			n.Fields = append(n.Fields, Field{
				Name:       f.Name(),
				Type:       child,
				HasDefault: f.HasDefault(),
				Default:    f.Default(),
			})
		}
	case *avro.EnumSchema:
		n.Type, n.Name = Enum, s.FullName()
		w.named[n.Name] = n
		n.Symbols = append([]string(nil), s.Symbols()...)
	case *avro.FixedSchema:
		n.Type, n.Name = Fixed, s.FullName()
		w.named[n.Name] = n
		n.Size = s.Size()
	case *avro.ArraySchema:
		n.Type = Array
		items, err := w.visit(s.Items(), path+"[]")
		if err != nil {
			return nil, err
		}
		n.Items = items
	case *avro.MapSchema:
		n.Type = Map
		values, err := w.visit(s.Values(), path+"{}")
		if err != nil {
			return nil, err
		}
		n.Values = values
	case *avro.UnionSchema:
		n.Type = Union
		for _, member := range s.Types() {
			branch, err := w.visit(member, path+"|"+memberName(member))
			if err != nil {
				return nil, err
			}
			n.Branches = append(n.Branches, branch)
		}
	default:
		t, ok := primitiveType(src.Type())
		if !ok {
			return nil, fmt.Errorf("%w: %s at %s", ErrUnsupportedType, src.Type(), path)
		}
		n.Type = t
	}
	return n, nil
}

// propsOf copies the schema's custom properties; the result is never nil.
func propsOf(src avro.Schema) map[string]any {
	out := make(map[string]any)
	p, ok := src.(interface{ Props() map[string]any })
	if !ok {
		return out
	}
	for k, v := range p.Props() {
		out[k] = v
	}
	return out
}

func primitiveType(t avro.Type) (Type, bool) {
	switch t {
	case avro.Boolean:
		return Boolean, true
	case avro.Bytes:
		return Bytes, true
	case avro.Double:
		return Double, true
	case avro.Float:
		return Float, true
	case avro.Int:
		return Int, true
	case avro.Long:
		return Long, true
	case avro.Null:
		return Null, true
	case avro.String:
		return String, true
	default:
		return "", false
	}
}

func rootPath(src avro.Schema) string {
	if named, ok := src.(avro.NamedSchema); ok {
		return named.FullName()
	}
	return string(src.Type())
}

func memberName(src avro.Schema) string {
	if ref, ok := src.(*avro.RefSchema); ok {
		return ref.Schema().FullName()
	}
	if named, ok := src.(avro.NamedSchema); ok {
		return named.FullName()
	}
	return string(src.Type())
}
