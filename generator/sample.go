// SPDX-License-Identifier: MIT
// Package: avrand/generator
//
// sample.go - seeded draws for primitive types.

package generator

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/avrand/constraint"
)

// sampleInt returns min + floor(u*(max-min)) computed on unsigned distances,
// exact over the whole int64 domain.
//
// Complexity: O(1).
func sampleInt(rng *rand.Rand, b constraint.Bounds[int64]) int64 {
	span := uint64(b.Max) - uint64(b.Min)
	offset := uint64(rng.Float64() * float64(span))
	if offset >= span {
		offset = span - 1
	}
	return int64(uint64(b.Min) + offset)
}

// sampleFloat returns a draw in [lo, hi). Spans wider than float64 can hold
// are evaluated in an order that stays finite.
//
// Complexity: O(1).
func sampleFloat(rng *rand.Rand, lo, hi float64) float64 {
	u := rng.Float64()
	x := lo + u*(hi-lo)
	if math.IsInf(hi-lo, 0) {
		x = (lo + u*hi) - u*lo
	}
	if x >= hi {
		x = math.Nextafter(hi, lo)
	}
	if x < lo {
		x = lo
	}
	return x
}

// narrowFloat rounds x to float32 precision while staying inside [lo, hi).
//
// Complexity: O(1).
func narrowFloat(x, lo, hi float64) float64 {
	f := float32(x)
	if float64(f) >= hi {
		f = math.Nextafter32(f, float32(math.Inf(-1)))
	}
	if float64(f) < lo {
		f = math.Nextafter32(f, float32(math.Inf(1)))
	}
	return float64(f)
}

func randomBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	rng.Read(b)
	return b
}

// randomASCII returns n bytes drawn from 0..127.
//
// Complexity: O(n) time and space.
func randomASCII(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.Intn(128))
	}
	return string(b)
}
