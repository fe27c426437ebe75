// SPDX-License-Identifier: MIT
// Package: avrand/constraint
//
// bounds.go - interval arithmetic shared by length and numeric ranges.

package constraint

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrEmptyInterval indicates min >= max for a half-open interval.
var ErrEmptyInterval = errors.New("constraint: min must be strictly less than max")

// Default length window for strings, bytes, arrays and maps.
const (
	DefaultMinLength = 8
	DefaultMaxLength = 16
)

// Ordered is the set of bound domains.
type Ordered interface {
	~int | ~int64 | ~float64
}

// Bounds is a half-open interval [Min, Max) with Min < Max.
type Bounds[T Ordered] struct {
	Min T
	Max T
}

// NewBounds validates min < max.
//
// Complexity: O(1).
func NewBounds[T Ordered](min, max T) (Bounds[T], error) {
	if min >= max {
		return Bounds[T]{}, fmt.Errorf("%w: got [%v, %v)", ErrEmptyInterval, min, max)
	}
	return Bounds[T]{Min: min, Max: max}, nil
}

// Contains reports min <= v < max.
func (b Bounds[T]) Contains(v T) bool { return v >= b.Min && v < b.Max }

// LengthBounds is the length window of a string, bytes, array or map node.
type LengthBounds struct {
	Bounds[int]
	// Explicit is false when the default window applies.
	Explicit bool
}

// DefaultLength returns the [8, 16) window used when no length is annotated.
func DefaultLength() LengthBounds {
	return LengthBounds{Bounds: Bounds[int]{Min: DefaultMinLength, Max: DefaultMaxLength}}
}

// NewLength validates a [min, max) length window; min must be non-negative.
//
// Complexity: O(1).
func NewLength(min, max int) (LengthBounds, error) {
	if min < 0 {
		return LengthBounds{}, fmt.Errorf("%w: length min must be ≥ 0, got %d", ErrOutOfRange, min)
	}
	b, err := NewBounds(min, max)
	if err != nil {
		return LengthBounds{}, err
	}
	return LengthBounds{Bounds: b, Explicit: true}, nil
}

// ExactLength returns the [n, n+1) window.
func ExactLength(n int) (LengthBounds, error) {
	return NewLength(n, n+1)
}

// Sample draws a length uniformly from the window.
//
// Complexity: O(1).
func (l LengthBounds) Sample(rng *rand.Rand) int {
	return l.Min + rng.Intn(l.Max-l.Min)
}
