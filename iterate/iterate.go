// SPDX-License-Identifier: MIT
// Package: avrand/iterate
//
// iterate.go - deterministic, infinite, cyclic sequences.
//
// Contract (strict):
//   - Next emits the current value and advances; there is no terminal state.
//   - Positive step cycles through [Start, Restart); negative step through (Restart, Start].
//   - When advancing would reach or cross Restart, the overshoot wraps back into the
//     interval with a sign-correct modulo, so any step size (even larger than the
//     interval) keeps the sequence inside it.
//   - Integral arithmetic is exact over the full int64 domain (no overflow on wrap).
//   - Not goroutine-safe; callers serialize access.

package iterate

import "math"

// Integral steps through int64 values.
type Integral struct {
	p       Params[int64]
	current int64
}

// NewIntegral returns a sequence positioned at p.Start. p must come from Resolve.
func NewIntegral(p Params[int64]) *Integral {
	return &Integral{p: p, current: p.Start}
}

// Next returns the current value and advances the sequence.
//
// Complexity: O(1).
func (it *Integral) Next() int64 {
	out := it.current
	it.current = advanceIntegral(it.p, it.current)
	return out
}

// Params returns the resolved parameters.
func (it *Integral) Params() Params[int64] { return it.p }

// advanceIntegral works on unsigned distances: the invariant keeps current on the
// Start side of Restart, so every difference below is non-negative and fits in uint64.
func advanceIntegral(p Params[int64], current int64) int64 {
	if p.Step > 0 {
		dist := uint64(p.Restart) - uint64(current)
		if dist > uint64(p.Step) {
			return current + p.Step
		}
		over := uint64(p.Step) - dist
		span := uint64(p.Restart) - uint64(p.Start)
		return int64(uint64(p.Start) + over%span)
	}

	mag := uint64(-p.Step) // MinInt64 negates to itself; uint64 of it is still 2^63
	dist := uint64(current) - uint64(p.Restart)
	if dist > mag {
		return current + p.Step
	}
	over := mag - dist
	span := uint64(p.Start) - uint64(p.Restart)
	return int64(uint64(p.Start) - over%span)
}

// Decimal steps through float64 values. Float nodes narrow the output at the
// call site; the arithmetic itself always runs in float64.
type Decimal struct {
	p       Params[float64]
	current float64
}

// NewDecimal returns a sequence positioned at p.Start. p must come from Resolve.
func NewDecimal(p Params[float64]) *Decimal {
	return &Decimal{p: p, current: p.Start}
}

// Next returns the current value and advances the sequence.
//
// Complexity: O(1).
func (it *Decimal) Next() float64 {
	out := it.current
	it.current = advanceDecimal(it.p, it.current)
	return out
}

// Params returns the resolved parameters.
func (it *Decimal) Params() Params[float64] { return it.p }

func advanceDecimal(p Params[float64], current float64) float64 {
	wrap := (p.Step > 0 && current >= p.Restart-p.Step) ||
		(p.Step < 0 && current <= p.Restart-p.Step)
	if !wrap {
		return current + p.Step
	}
	span := p.Restart - p.Start
	if math.IsInf(span, 0) {
		// interval wider than float64 can express: start the cycle over
		return p.Start
	}
	return p.Start + signedMod(p.Step-(p.Restart-current), span)
}

// signedMod returns a mod b with the sign of b.
func signedMod(a, b float64) float64 {
	return math.Mod(math.Mod(a, b)+b, b)
}

// Boolean alternates between true and false, starting at the configured value.
type Boolean struct {
	current bool
}

// NewBoolean returns a toggle positioned at start.
func NewBoolean(start bool) *Boolean {
	return &Boolean{current: start}
}

// Next returns the current value and toggles.
func (it *Boolean) Next() bool {
	out := it.current
	it.current = !it.current
	return out
}
