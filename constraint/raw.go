// SPDX-License-Identifier: MIT
// Package: avrand/constraint
//
// raw.go - loosely-typed configuration literals.
//
// Annotation values and option literals arrive as generic JSON-like data from
// the schema library or the wire codec. Raw normalizes them once into a small
// tagged union; every consumer then asks for the shape it needs through the
// typed accessors below instead of running its own type-switch chain.

package constraint

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind is the shape of a Raw literal.
type Kind uint8

// Raw literal shapes.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindList
	KindObject
)

// String returns the shape name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "decimal"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Raw is one configuration literal.
type Raw struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	bytes []byte
	list  []Raw
	obj   map[string]Raw
}

// FromAny converts generic decoded data into a Raw. Accepted inputs are the
// forms produced by encoding/json, hamba/avro props and goavro native values.
func FromAny(v any) (Raw, error) {
	switch x := v.(type) {
	case nil:
		return Raw{kind: KindNull}, nil
	case Raw:
		return x, nil
	case bool:
		return Raw{kind: KindBool, b: x}, nil
	case int:
		return Raw{kind: KindInt, i: int64(x)}, nil
	case int8:
		return Raw{kind: KindInt, i: int64(x)}, nil
	case int16:
		return Raw{kind: KindInt, i: int64(x)}, nil
	case int32:
		return Raw{kind: KindInt, i: int64(x)}, nil
	case int64:
		return Raw{kind: KindInt, i: x}, nil
	case uint8:
		return Raw{kind: KindInt, i: int64(x)}, nil
	case uint16:
		return Raw{kind: KindInt, i: int64(x)}, nil
	case uint32:
		return Raw{kind: KindInt, i: int64(x)}, nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return Raw{}, fmt.Errorf("%w: unsigned %d overflows int64", ErrWrongType, x)
		}
		return Raw{kind: KindInt, i: int64(x)}, nil
	case uint64:
		if x > math.MaxInt64 {
			return Raw{}, fmt.Errorf("%w: unsigned %d overflows int64", ErrWrongType, x)
		}
		return Raw{kind: KindInt, i: int64(x)}, nil
	case float32:
		return Raw{kind: KindFloat, f: float64(x)}, nil
	case float64:
		return Raw{kind: KindFloat, f: x}, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Raw{kind: KindInt, i: i}, nil
		}
		f, err := x.Float64()
		if err != nil {
			return Raw{}, fmt.Errorf("%w: number %q: %w", ErrWrongType, x.String(), err)
		}
		return Raw{kind: KindFloat, f: f}, nil
	case string:
		return Raw{kind: KindString, s: x}, nil
	case []byte:
		return Raw{kind: KindBytes, bytes: append([]byte(nil), x...)}, nil
	case []any:
		out := Raw{kind: KindList, list: make([]Raw, len(x))}
		for i, e := range x {
			r, err := FromAny(e)
			if err != nil {
				return Raw{}, fmt.Errorf("[%d]: %w", i, err)
			}
			out.list[i] = r
		}
		return out, nil
	case []string:
		out := Raw{kind: KindList, list: make([]Raw, len(x))}
		for i, e := range x {
			out.list[i] = Raw{kind: KindString, s: e}
		}
		return out, nil
	case map[string]any:
		out := Raw{kind: KindObject, obj: make(map[string]Raw, len(x))}
		for k, e := range x {
			r, err := FromAny(e)
			if err != nil {
				return Raw{}, fmt.Errorf("%s: %w", k, err)
			}
			out.obj[k] = r
		}
		return out, nil
	default:
		return Raw{}, fmt.Errorf("%w: unsupported literal of Go type %T", ErrWrongType, v)
	}
}

// Kind returns the literal's shape.
func (r Raw) Kind() Kind { return r.kind }

// Describe names the literal's shape for error messages. Decimals holding an
// integral value read as "integer", since decoders deliver every JSON number
// as float64.
func (r Raw) Describe() string {
	if r.kind == KindFloat && r.f == math.Trunc(r.f) && !math.IsInf(r.f, 0) {
		return KindInt.String()
	}
	return r.kind.String()
}

// IsNull reports whether the literal is null.
func (r Raw) IsNull() bool { return r.kind == KindNull }

// Bool returns the boolean value.
func (r Raw) Bool() (bool, bool) { return r.b, r.kind == KindBool }

// Int returns the literal as an integer. Decimal literals with an integral
// value are accepted: JSON decoders commonly deliver every number as float64.
func (r Raw) Int() (int64, bool) {
	switch r.kind {
	case KindInt:
		return r.i, true
	case KindFloat:
		if r.f != math.Trunc(r.f) || r.f < math.MinInt64 || r.f >= math.MaxInt64 {
			return 0, false
		}
		return int64(r.f), true
	default:
		return 0, false
	}
}

// Float returns the literal as a decimal; integers convert.
func (r Raw) Float() (float64, bool) {
	switch r.kind {
	case KindFloat:
		return r.f, true
	case KindInt:
		return float64(r.i), true
	default:
		return 0, false
	}
}

// Str returns the string value.
func (r Raw) Str() (string, bool) { return r.s, r.kind == KindString }

// Bytes returns the bytes value.
func (r Raw) Bytes() ([]byte, bool) { return r.bytes, r.kind == KindBytes }

// List returns the list elements.
func (r Raw) List() ([]Raw, bool) { return r.list, r.kind == KindList }

// Object returns the object entries.
func (r Raw) Object() (map[string]Raw, bool) { return r.obj, r.kind == KindObject }

// String renders the literal compactly for diagnostics.
func (r Raw) String() string {
	switch r.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(r.b)
	case KindInt:
		return strconv.FormatInt(r.i, 10)
	case KindFloat:
		return strconv.FormatFloat(r.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(r.s)
	case KindBytes:
		return fmt.Sprintf("bytes(%x)", r.bytes)
	case KindList:
		parts := make([]string, len(r.list))
		for i, e := range r.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case KindObject:
		keys := make([]string, 0, len(r.obj))
		for k := range r.obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = strconv.Quote(k) + ":" + r.obj[k].String()
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return "?"
	}
}
