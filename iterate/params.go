// SPDX-License-Identifier: MIT
// Package: avrand/iterate
//
// params.go - iteration parameters: defaults and validation.

package iterate

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroStep indicates a step of zero.
	ErrZeroStep = errors.New("iterate: step cannot be zero")

	// ErrEqualBounds indicates start equals restart after defaults are applied.
	ErrEqualBounds = errors.New("iterate: start and restart cannot be equal")

	// ErrStepDirection indicates the step's sign points away from restart.
	ErrStepDirection = errors.New("iterate: step sign disagrees with start→restart direction")
)

// Number is the set of numeric domains a sequence can run over.
type Number interface {
	~int64 | ~float64
}

// Params are resolved, validated sequence parameters.
type Params[T Number] struct {
	Start   T
	Restart T
	Step    T
}

// Resolve fills omitted fields and validates the result. lo and hi are the
// extremes of the target type; an omitted restart defaults to the extreme in
// the step's direction, an omitted step to +1/-1 toward restart.
//
// Errors: ErrZeroStep, ErrEqualBounds, ErrStepDirection.
//
// Complexity: O(1).
func Resolve[T Number](start T, restart, step *T, lo, hi T) (Params[T], error) {
	p := Params[T]{Start: start}
	switch {
	case restart == nil && step == nil:
		p.Restart, p.Step = hi, 1
	case restart == nil:
		p.Step = *step
		switch {
		case p.Step > 0:
			p.Restart = hi
		case p.Step < 0:
			p.Restart = lo
		default:
			return p, ErrZeroStep
		}
	case step == nil:
		p.Restart = *restart
		switch {
		case p.Restart > start:
			p.Step = 1
		case p.Restart < start:
			p.Step = -1
		default:
			return p, ErrEqualBounds
		}
	default:
		p.Restart, p.Step = *restart, *step
		if p.Step == 0 {
			return p, ErrZeroStep
		}
		if p.Restart > start && p.Step < 0 {
			return p, fmt.Errorf("%w: restart %v > start %v needs a positive step, got %v", ErrStepDirection, p.Restart, start, p.Step)
		}
		if p.Restart < start && p.Step > 0 {
			return p, fmt.Errorf("%w: restart %v < start %v needs a negative step, got %v", ErrStepDirection, p.Restart, start, p.Step)
		}
	}
	if p.Start == p.Restart {
		return p, ErrEqualBounds
	}
	return p, nil
}
