// SPDX-License-Identifier: MIT
// Package: avrand/schema
//
// canonical.go - self-contained schema text per node.
//
// Contract:
//   - The text follows parsing canonical form: full names, attributes limited
//     to name/type/fields/symbols/items/values/size, no props, no defaults.
//   - Every named type reachable from the node is defined at its first
//     occurrence and referenced by full name afterwards, so a node that only
//     references a type declared elsewhere in the tree still builds a codec.
//
// Complexity: O(V) in the nodes reachable from n.

package schema

import (
	"strconv"
	"strings"
)

// Canonical returns a self-contained schema for values of n, suitable for
// building a wire codec.
func (n *Node) Canonical() string {
	var b strings.Builder
	writeCanonical(&b, n, make(map[string]bool))
	return b.String()
}

func writeCanonical(b *strings.Builder, n *Node, defined map[string]bool) {
	if n.Name != "" {
		if defined[n.Name] {
			b.WriteString(strconv.Quote(n.Name))
			return
		}
		defined[n.Name] = true
	}

	switch n.Type {
	case Record:
		b.WriteString(`{"name":` + strconv.Quote(n.Name) + `,"type":"record","fields":[`)
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(`{"name":` + strconv.Quote(f.Name) + `,"type":`)
			writeCanonical(b, f.Type, defined)
			b.WriteByte('}')
		}
		b.WriteString("]}")
	case Enum:
		b.WriteString(`{"name":` + strconv.Quote(n.Name) + `,"type":"enum","symbols":[`)
		for i, sym := range n.Symbols {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(sym))
		}
		b.WriteString("]}")
	case Fixed:
		b.WriteString(`{"name":` + strconv.Quote(n.Name) + `,"type":"fixed","size":` + strconv.Itoa(n.Size) + `}`)
	case Array:
		b.WriteString(`{"type":"array","items":`)
		writeCanonical(b, n.Items, defined)
		b.WriteByte('}')
	case Map:
		b.WriteString(`{"type":"map","values":`)
		writeCanonical(b, n.Values, defined)
		b.WriteByte('}')
	case Union:
		b.WriteByte('[')
		for i, br := range n.Branches {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, br, defined)
		}
		b.WriteByte(']')
	default:
		b.WriteString(strconv.Quote(string(n.Type)))
	}
}
