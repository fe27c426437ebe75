// SPDX-License-Identifier: MIT
// Package: avrand/value
//
// native.go - conversion to the goavro generic form.

package value

import (
	"github.com/katalvlaran/avrand/schema"
)

// Native converts v into the generic form accepted by goavro codecs built from
// declared's schema: records and maps become map[string]any, arrays []any,
// int int32, float float32, and a value declared as a union is wrapped as
// {"<branch type name>": datum} unless it is null.
//
// Complexity: O(size of v).
func Native(declared *schema.Node, v Value) any {
	if declared != nil && declared.Type == schema.Union {
		if v.Type() == schema.Null {
			return nil
		}
		return map[string]any{v.Node.TypeName(): native(v)}
	}
	return native(v)
}

func native(v Value) any {
	switch v.Type() {
	case schema.Boolean:
		return v.Bool
	case schema.Int:
		return int32(v.Long)
	case schema.Long:
		return v.Long
	case schema.Float:
		return float32(v.Double)
	case schema.Double:
		return v.Double
	case schema.Bytes, schema.Fixed:
		return v.Bytes
	case schema.String, schema.Enum:
		return v.Str
	case schema.Array:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = Native(v.Node.Items, item)
		}
		return out
	case schema.Map:
		out := make(map[string]any, len(v.Entries))
		for k, e := range v.Entries {
			out[k] = Native(v.Node.Values, e)
		}
		return out
	case schema.Record:
		out := make(map[string]any, len(v.Fields))
		for i, f := range v.Node.Fields {
			out[f.Name] = Native(f.Type, v.Fields[i])
		}
		return out
	default:
		return nil
	}
}
