// SPDX-License-Identifier: MIT
// Package: avrand/generator
//
// generate.go - the recursive schema-to-value dispatcher.
//
// Contract (strict):
//   - An options annotation overrides type-directed generation for its node,
//     composites included.
//   - An iteration annotation replaces randomness for numeric and boolean nodes.
//   - Otherwise the node type selects the generator; composites recurse in
//     declaration order, so the draw sequence depends only on the schema and
//     the seed.

package generator

import (
	"math"

	"github.com/katalvlaran/avrand/constraint"
	"github.com/katalvlaran/avrand/iterate"
	"github.com/katalvlaran/avrand/options"
	"github.com/katalvlaran/avrand/schema"
	"github.com/katalvlaran/avrand/value"
)

func (e *Engine) generate(n *schema.Node) (value.Value, error) {
	spec := &e.specs[n.ID]

	if spec.Options != nil {
		pool, err := e.pools.get(n.ID, func() (*options.Pool, error) {
			return e.resolvePool(n, spec.Options, constraint.PropOptions)
		})
		if err != nil {
			return value.Value{}, err
		}
		return pool.Pick(e.cfg.rng), nil
	}
	if spec.Iteration != nil {
		return e.nextInSequence(n, spec.Iteration), nil
	}

	rng := e.cfg.rng
	v := value.Value{Node: n}
	switch n.Type {
	case schema.Null:
	case schema.Boolean:
		if spec.Odds != nil {
			v.Bool = rng.Float64() < *spec.Odds
		} else {
			v.Bool = rng.Intn(2) == 1
		}
	case schema.Int:
		if spec.IntRange != nil {
			v.Long = sampleInt(rng, *spec.IntRange)
		} else {
			v.Long = int64(int32(rng.Uint32()))
		}
	case schema.Long:
		if spec.IntRange != nil {
			v.Long = sampleInt(rng, *spec.IntRange)
		} else {
			v.Long = int64(rng.Uint64())
		}
	case schema.Float:
		lo, hi := -math.MaxFloat32, math.MaxFloat32
		if spec.Range != nil {
			lo, hi = spec.Range.Min, spec.Range.Max
		}
		v.Double = narrowFloat(sampleFloat(rng, lo, hi), lo, hi)
	case schema.Double:
		lo, hi := -math.MaxFloat64, math.MaxFloat64
		if spec.Range != nil {
			lo, hi = spec.Range.Min, spec.Range.Max
		}
		v.Double = sampleFloat(rng, lo, hi)
	case schema.Bytes:
		v.Bytes = randomBytes(rng, spec.Length.Sample(rng))
	case schema.Fixed:
		v.Bytes = randomBytes(rng, n.Size)
	case schema.String:
		if spec.Pattern != nil {
			s, err := e.patternString(n, spec)
			if err != nil {
				return value.Value{}, err
			}
			v.Str = s
		} else {
			v.Str = randomASCII(rng, spec.Length.Sample(rng))
		}
	case schema.Enum:
		v.Str = n.Symbols[rng.Intn(len(n.Symbols))]
	case schema.Array:
		size := spec.Length.Sample(rng)
		v.Items = make([]value.Value, 0, size)
		for i := 0; i < size; i++ {
			item, err := e.generate(n.Items)
			if err != nil {
				return value.Value{}, err
			}
			v.Items = append(v.Items, item)
		}
	case schema.Map:
		entries, err := e.generateMap(n, spec)
		if err != nil {
			return value.Value{}, err
		}
		v.Entries = entries
	case schema.Record:
		v.Fields = make([]value.Value, len(n.Fields))
		for i, f := range n.Fields {
			fv, err := e.generate(f.Type)
			if err != nil {
				return value.Value{}, err
			}
			v.Fields[i] = fv
		}
	case schema.Union:
		return e.generate(n.Branches[rng.Intn(len(n.Branches))])
	}
	return v, nil
}

// generateMap draws the entry count, then key and value per entry. Keys drawn
// from an option pool may repeat; duplicates collapse.
func (e *Engine) generateMap(n *schema.Node, spec *constraint.Spec) (map[string]value.Value, error) {
	rng := e.cfg.rng
	size := spec.Length.Sample(rng)
	entries := make(map[string]value.Value, size)

	var keyPool *options.Pool
	keyLen := 1
	if spec.Keys != nil {
		if spec.Keys.Options != nil {
			var err error
			keyPool, err = e.keyPools.get(n.ID, func() (*options.Pool, error) {
				keyNode := schema.NewPrimitive(schema.String, n.Path+"{key}")
				return e.resolvePool(keyNode, spec.Keys.Options, constraint.PropKeys+"."+constraint.PropOptions)
			})
			if err != nil {
				return nil, err
			}
		} else {
			keyLen = spec.Keys.Length.Sample(rng)
		}
	}

	for i := 0; i < size; i++ {
		var key string
		if keyPool != nil {
			key = keyPool.Pick(rng).Str
		} else {
			key = randomASCII(rng, keyLen)
		}
		v, err := e.generate(n.Values)
		if err != nil {
			return nil, err
		}
		entries[key] = v
	}
	return entries, nil
}

func (e *Engine) resolvePool(n *schema.Node, spec *constraint.OptionsSpec, property string) (*options.Pool, error) {
	pool, err := e.loader.Resolve(n, spec, property)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("option pool resolved", "node", n.Path, "property", property, "size", pool.Len(), "file", spec.File)
	return pool, nil
}

// nextInSequence advances the node's sequence; the iterator is created on first use.
func (e *Engine) nextInSequence(n *schema.Node, it *constraint.IterationSpec) value.Value {
	v := value.Value{Node: n}
	switch {
	case it.Boolean != nil:
		seq := e.boolean.ensure(n.ID, func() *iterate.Boolean {
			e.logger.Debug("iterator started", "node", n.Path, "start", *it.Boolean)
			return iterate.NewBoolean(*it.Boolean)
		})
		v.Bool = seq.Next()
	case it.Integral != nil:
		seq := e.integral.ensure(n.ID, func() *iterate.Integral {
			e.logger.Debug("iterator started", "node", n.Path, "start", it.Integral.Start, "restart", it.Integral.Restart, "step", it.Integral.Step)
			return iterate.NewIntegral(*it.Integral)
		})
		v.Long = seq.Next()
	case it.Decimal != nil:
		seq := e.decimal.ensure(n.ID, func() *iterate.Decimal {
			e.logger.Debug("iterator started", "node", n.Path, "start", it.Decimal.Start, "restart", it.Decimal.Restart, "step", it.Decimal.Step)
			return iterate.NewDecimal(*it.Decimal)
		})
		v.Double = seq.Next()
		if n.Type == schema.Float {
			v.Double = float64(float32(v.Double))
		}
	}
	return v
}
