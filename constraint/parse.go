// SPDX-License-Identifier: MIT
// Package: avrand/constraint
//
// parse.go - annotation parser and validator.
//
// Contract (strict):
//   - Parse never coerces an invalid shape; every failure is a *ConfigError naming
//     the node path and the offending property.
//   - Check order: unknown names, conflicts, applicability, then per-property values.
//     Within a step properties are visited in sorted order so the reported
//     error is stable.
//   - options and iteration exclude every other annotation; regex combines
//     with length, which then bounds the pattern's output.
//   - Numeric literals are range-checked against the target type's width.

package constraint

import (
	"errors"
	"fmt"
	"math"
	"regexp/syntax"
	"sort"

	"github.com/katalvlaran/avrand/iterate"
	"github.com/katalvlaran/avrand/schema"
)

// applicable lists the node types each annotation is meaningful for; nil means any type.
var applicable = map[string][]schema.Type{
	PropLength:    {schema.String, schema.Bytes, schema.Array, schema.Map},
	PropRegex:     {schema.String},
	PropOptions:   nil,
	PropKeys:      {schema.Map},
	PropRange:     {schema.Int, schema.Long, schema.Float, schema.Double},
	PropOdds:      {schema.Boolean},
	PropIteration: {schema.Int, schema.Long, schema.Float, schema.Double, schema.Boolean},
}

// exclusive annotations must be alone on their node.
var exclusive = []string{PropOptions, PropIteration}

// Parse reads and validates the annotation stored under key in n's property bag.
// A node without the property yields a Spec with only the default length window.
//
// Complexity: O(k log k) in annotation properties plus inline option lists.
func Parse(n *schema.Node, key string) (Spec, error) {
	spec := Spec{Length: DefaultLength()}
	v, ok := n.Prop(key)
	if !ok {
		return spec, nil
	}
	raw, err := FromAny(v)
	if err != nil {
		return Spec{}, &ConfigError{Node: n.Path, Property: key, Err: err}
	}
	props, ok := raw.Object()
	if !ok {
		return Spec{}, Errorf(n.Path, key, "%w: must be an object, got %s", ErrWrongType, raw.Describe())
	}

	p := parser{node: n}
	names := sortedKeys(props)
	if err = p.checkNames(names); err != nil {
		return Spec{}, err
	}

	for _, name := range names {
		r := props[name]
		switch name {
		case PropLength:
			spec.Length, err = p.length(PropLength, r)
		case PropRegex:
			spec.Pattern, err = p.regex(r)
		case PropOptions:
			spec.Options, err = p.options(PropOptions, r)
		case PropKeys:
			spec.Keys, err = p.keys(r)
		case PropRange:
			err = p.rangeOf(r, &spec)
		case PropOdds:
			spec.Odds, err = p.odds(r)
		case PropIteration:
			spec.Iteration, err = p.iteration(r)
		}
		if err != nil {
			return Spec{}, err
		}
	}
	return spec, nil
}

type parser struct {
	node *schema.Node
}

func (p parser) fail(property string, err error) error {
	return &ConfigError{Node: p.node.Path, Property: property, Err: err}
}

func (p parser) failf(property, format string, args ...any) error {
	return Errorf(p.node.Path, property, format, args...)
}

func (p parser) checkNames(names []string) error {
	for _, name := range names {
		if _, known := applicable[name]; !known {
			return p.failf(name, "%w: %q", ErrUnknownProperty, name)
		}
	}
	if len(names) > 1 {
		for _, ex := range exclusive {
			for _, name := range names {
				if name != ex && contains(names, ex) {
					return p.failf(ex, "%w: %s cannot be combined with %s", ErrConflict, ex, name)
				}
			}
		}
	}
	for _, name := range names {
		types := applicable[name]
		if types != nil && !containsType(types, p.node.Type) {
			return p.failf(name, "%w: %s on %s node", ErrInapplicable, name, p.node.Type)
		}
	}
	return nil
}

// length accepts an exact integer n ([n, n+1)) or an object with min and/or max.
func (p parser) length(property string, r Raw) (LengthBounds, error) {
	if r.Kind() == KindObject {
		obj, _ := r.Object()
		if err := p.onlyFields(property, obj, FieldMin, FieldMax); err != nil {
			return LengthBounds{}, err
		}
		min, err := p.intField(property, obj, FieldMin, 0, math.MaxInt32-1)
		if err != nil {
			return LengthBounds{}, err
		}
		max, err := p.intField(property, obj, FieldMax, 1, math.MaxInt32)
		if err != nil {
			return LengthBounds{}, err
		}
		if min == nil && max == nil {
			return LengthBounds{}, p.failf(property, "%w: object form needs %s or %s", ErrMissingField, FieldMin, FieldMax)
		}
		lo, hi := int64(0), int64(math.MaxInt32)
		if min != nil {
			lo = *min
		}
		if max != nil {
			hi = *max
		}
		b, err := NewLength(int(lo), int(hi))
		if err != nil {
			return LengthBounds{}, p.fail(property, err)
		}
		return b, nil
	}

	n, err := p.intValue(property, r, 0, math.MaxInt32-1)
	if err != nil {
		return LengthBounds{}, err
	}
	b, err := ExactLength(int(n))
	if err != nil {
		return LengthBounds{}, p.fail(property, err)
	}
	return b, nil
}

func (p parser) regex(r Raw) (*string, error) {
	expr, ok := r.Str()
	if !ok {
		return nil, p.failf(PropRegex, "%w: must be a string, got %s", ErrWrongType, r.Describe())
	}
	if _, err := syntax.Parse(expr, syntax.Perl); err != nil {
		return nil, p.failf(PropRegex, "%w: %w", ErrBadPattern, err)
	}
	return &expr, nil
}

// options accepts a non-empty inline list or a {file, encoding} reference.
func (p parser) options(property string, r Raw) (*OptionsSpec, error) {
	switch r.Kind() {
	case KindList:
		items, _ := r.List()
		if len(items) == 0 {
			return nil, p.fail(property, ErrEmptyOptions)
		}
		return &OptionsSpec{Inline: items}, nil
	case KindObject:
		obj, _ := r.Object()
		if err := p.onlyFields(property, obj, FieldFile, FieldEncoding); err != nil {
			return nil, err
		}
		file, err := p.stringField(property, obj, FieldFile)
		if err != nil {
			return nil, err
		}
		enc, err := p.stringField(property, obj, FieldEncoding)
		if err != nil {
			return nil, err
		}
		switch Encoding(enc) {
		case EncodingBinary, EncodingJSON:
		default:
			return nil, p.failf(property+"."+FieldEncoding, "%w: %q (want %q or %q)", ErrBadEncoding, enc, EncodingBinary, EncodingJSON)
		}
		if file == "" {
			return nil, p.failf(property+"."+FieldFile, "%w: empty path", ErrMissingField)
		}
		return &OptionsSpec{File: file, Encoding: Encoding(enc)}, nil
	default:
		return nil, p.failf(property, "%w: must be a list or an object, got %s", ErrWrongType, r.Describe())
	}
}

func (p parser) keys(r Raw) (*KeysSpec, error) {
	obj, ok := r.Object()
	if !ok {
		return nil, p.failf(PropKeys, "%w: must be an object, got %s", ErrWrongType, r.Describe())
	}
	if err := p.onlyFields(PropKeys, obj, PropOptions, PropLength); err != nil {
		return nil, err
	}
	opts, hasOpts := obj[PropOptions]
	length, hasLength := obj[PropLength]
	if hasOpts && hasLength {
		return nil, p.failf(PropKeys, "%w: %s cannot be combined with %s", ErrConflict, PropOptions, PropLength)
	}

	ks := &KeysSpec{Length: DefaultLength()}
	var err error
	if hasOpts {
		ks.Options, err = p.options(PropKeys+"."+PropOptions, opts)
	}
	if hasLength {
		ks.Length, err = p.length(PropKeys+"."+PropLength, length)
	}
	if err != nil {
		return nil, err
	}
	return ks, nil
}

// rangeOf fills IntRange or Range depending on the node's numeric width.
func (p parser) rangeOf(r Raw, spec *Spec) error {
	obj, ok := r.Object()
	if !ok {
		return p.failf(PropRange, "%w: must be an object, got %s", ErrWrongType, r.Describe())
	}
	if err := p.onlyFields(PropRange, obj, FieldMin, FieldMax); err != nil {
		return err
	}

	switch p.node.Type {
	case schema.Int, schema.Long:
		lo, hi := intLimits(p.node.Type)
		min, err := p.intField(PropRange, obj, FieldMin, lo, hi)
		if err != nil {
			return err
		}
		max, err := p.intField(PropRange, obj, FieldMax, lo, hi)
		if err != nil {
			return err
		}
		b, err := NewBounds(orDefault(min, lo), orDefault(max, hi))
		if err != nil {
			return p.fail(PropRange, err)
		}
		spec.IntRange = &b
	default:
		lo, hi := floatLimits(p.node.Type)
		min, err := p.floatField(PropRange, obj, FieldMin, lo, hi)
		if err != nil {
			return err
		}
		max, err := p.floatField(PropRange, obj, FieldMax, lo, hi)
		if err != nil {
			return err
		}
		lo, hi = orDefault(min, lo), orDefault(max, hi)
		if p.node.Type == schema.Float {
			// float values are float32 on the wire; an interval holding no
			// float32 is empty
			lo, hi = float64(float32(lo)), float64(float32(hi))
		}
		b, err := NewBounds(lo, hi)
		if err != nil {
			return p.fail(PropRange, err)
		}
		spec.Range = &b
	}
	return nil
}

func (p parser) odds(r Raw) (*float64, error) {
	f, ok := r.Float()
	if !ok {
		return nil, p.failf(PropOdds, "%w: must be a number, got %s", ErrWrongType, r.Describe())
	}
	if math.IsNaN(f) || f < 0 || f > 1 {
		return nil, p.failf(PropOdds, "%w: %v not in [0, 1]", ErrOutOfRange, f)
	}
	return &f, nil
}

func (p parser) iteration(r Raw) (*IterationSpec, error) {
	obj, ok := r.Object()
	if !ok {
		return nil, p.failf(PropIteration, "%w: must be an object, got %s", ErrWrongType, r.Describe())
	}
	if err := p.onlyFields(PropIteration, obj, FieldStart, FieldRestart, FieldStep); err != nil {
		return nil, err
	}
	startRaw, ok := obj[FieldStart]
	if !ok {
		return nil, p.failf(PropIteration+"."+FieldStart, "%w", ErrMissingField)
	}

	switch p.node.Type {
	case schema.Boolean:
		for _, f := range []string{FieldRestart, FieldStep} {
			if _, set := obj[f]; set {
				return nil, p.failf(PropIteration+"."+f, "%w: boolean iteration only takes %s", ErrInapplicable, FieldStart)
			}
		}
		start, ok := startRaw.Bool()
		if !ok {
			return nil, p.failf(PropIteration+"."+FieldStart, "%w: must be a boolean, got %s", ErrWrongType, startRaw.Describe())
		}
		return &IterationSpec{Boolean: &start}, nil

	case schema.Int, schema.Long:
		lo, hi := intLimits(p.node.Type)
		start, err := p.intValue(PropIteration+"."+FieldStart, startRaw, lo, hi)
		if err != nil {
			return nil, err
		}
		restart, err := p.intField(PropIteration, obj, FieldRestart, lo, hi)
		if err != nil {
			return nil, err
		}
		step, err := p.intField(PropIteration, obj, FieldStep, lo, hi)
		if err != nil {
			return nil, err
		}
		params, err := iterate.Resolve(start, restart, step, lo, hi)
		if err != nil {
			return nil, p.fail(PropIteration, err)
		}
		return &IterationSpec{Integral: &params}, nil

	default:
		lo, hi := floatLimits(p.node.Type)
		start, err := p.floatValue(PropIteration+"."+FieldStart, startRaw, lo, hi)
		if err != nil {
			return nil, err
		}
		restart, err := p.floatField(PropIteration, obj, FieldRestart, lo, hi)
		if err != nil {
			return nil, err
		}
		step, err := p.floatField(PropIteration, obj, FieldStep, lo, hi)
		if err != nil {
			return nil, err
		}
		params, err := iterate.Resolve(start, restart, step, lo, hi)
		if err != nil {
			return nil, p.fail(PropIteration, err)
		}
		return &IterationSpec{Decimal: &params}, nil
	}
}

// onlyFields rejects sub-fields outside allowed.
func (p parser) onlyFields(property string, obj map[string]Raw, allowed ...string) error {
	for _, name := range sortedKeys(obj) {
		if !contains(allowed, name) {
			return p.failf(property+"."+name, "%w: %q", ErrUnknownProperty, name)
		}
	}
	return nil
}

func (p parser) intField(property string, obj map[string]Raw, name string, lo, hi int64) (*int64, error) {
	r, ok := obj[name]
	if !ok {
		return nil, nil
	}
	v, err := p.intValue(property+"."+name, r, lo, hi)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (p parser) intValue(property string, r Raw, lo, hi int64) (int64, error) {
	v, ok := r.Int()
	if !ok {
		return 0, p.failf(property, "%w: must be an integer, got %s", ErrWrongType, r)
	}
	if v < lo || v > hi {
		return 0, p.failf(property, "%w: %d not in [%d, %d]", ErrOutOfRange, v, lo, hi)
	}
	return v, nil
}

func (p parser) floatField(property string, obj map[string]Raw, name string, lo, hi float64) (*float64, error) {
	r, ok := obj[name]
	if !ok {
		return nil, nil
	}
	v, err := p.floatValue(property+"."+name, r, lo, hi)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (p parser) floatValue(property string, r Raw, lo, hi float64) (float64, error) {
	v, ok := r.Float()
	if !ok {
		return 0, p.failf(property, "%w: must be a number, got %s", ErrWrongType, r)
	}
	if math.IsNaN(v) || v < lo || v > hi {
		return 0, p.failf(property, "%w: %v not in [%v, %v]", ErrOutOfRange, v, lo, hi)
	}
	return v, nil
}

func (p parser) stringField(property string, obj map[string]Raw, name string) (string, error) {
	r, ok := obj[name]
	if !ok {
		return "", p.failf(property+"."+name, "%w", ErrMissingField)
	}
	s, ok := r.Str()
	if !ok {
		return "", p.failf(property+"."+name, "%w: must be a string, got %s", ErrWrongType, r.Describe())
	}
	return s, nil
}

func intLimits(t schema.Type) (int64, int64) {
	if t == schema.Int {
		return math.MinInt32, math.MaxInt32
	}
	return math.MinInt64, math.MaxInt64
}

func floatLimits(t schema.Type) (float64, float64) {
	if t == schema.Float {
		return -math.MaxFloat32, math.MaxFloat32
	}
	return -math.MaxFloat64, math.MaxFloat64
}

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

func sortedKeys(m map[string]Raw) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}

func containsType(list []schema.Type, t schema.Type) bool {
	for _, e := range list {
		if e == t {
			return true
		}
	}
	return false
}

// IsConfigError reports whether err carries a *ConfigError and returns it.
func IsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// String renders the parsed annotation for debug logs.
func (s Spec) String() string {
	switch {
	case s.Options != nil:
		if s.Options.FromFile() {
			return fmt.Sprintf("options(file=%s,%s)", s.Options.File, s.Options.Encoding)
		}
		return fmt.Sprintf("options(%d inline)", len(s.Options.Inline))
	case s.Iteration != nil:
		return "iteration"
	case s.Pattern != nil:
		return fmt.Sprintf("regex(%q,[%d,%d))", *s.Pattern, s.Length.Min, s.Length.Max)
	default:
		return fmt.Sprintf("length[%d,%d)", s.Length.Min, s.Length.Max)
	}
}
