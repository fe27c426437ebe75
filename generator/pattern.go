// SPDX-License-Identifier: MIT
// Package: avrand/generator
//
// pattern.go - regex-shaped strings.
//
// Contract:
//   - A Matcher is compiled once per node and seeded from the engine's source,
//     so pattern output is reproducible with the rest of the session.
//   - The length window [min, max) counts runes. Candidates are drawn until one
//     fits, up to patternAttempts. With an explicit length annotation a miss is
//     constraint.ErrPatternWindow; with the default window the closest candidate
//     is returned.

package generator

import (
	"unicode/utf8"

	"github.com/lucasjones/reggen"

	"github.com/katalvlaran/avrand/constraint"
	"github.com/katalvlaran/avrand/schema"
)

// Matcher produces random strings matching a compiled pattern. limit bounds
// the repetition count of unbounded quantifiers (*, +, {n,}).
type Matcher interface {
	Generate(limit int) string
}

// PatternCompiler compiles expr into a Matcher seeded with seed.
type PatternCompiler func(expr string, seed int64) (Matcher, error)

// reggenCompiler is the default PatternCompiler.
func reggenCompiler(expr string, seed int64) (Matcher, error) {
	g, err := reggen.NewGenerator(expr)
	if err != nil {
		return nil, err
	}
	g.SetSeed(seed)
	return g, nil
}

// patternString draws a string for n's regex annotation within spec.Length.
func (e *Engine) patternString(n *schema.Node, spec *constraint.Spec) (string, error) {
	m, err := e.matchers.get(n.ID, func() (Matcher, error) {
		m, err := e.cfg.compile(*spec.Pattern, deriveSeed(e.cfg.rng.Int63(), uint64(n.ID)))
		if err != nil {
			return nil, constraint.Errorf(n.Path, constraint.PropRegex, "%w: %w", constraint.ErrBadPattern, err)
		}
		e.logger.Debug("pattern compiled", "node", n.Path, "regex", *spec.Pattern)
		return m, nil
	})
	if err != nil {
		return "", err
	}

	lo, hi := spec.Length.Min, spec.Length.Max
	limit := hi - 1
	if limit > lo+patternSlack {
		limit = lo + patternSlack
	}

	best, bestGap := "", -1
	for i := 0; i < e.cfg.patternAttempts; i++ {
		s := m.Generate(limit)
		l := utf8.RuneCountInString(s)
		if l >= lo && l < hi {
			return s, nil
		}
		gap := lo - l
		if l >= hi {
			gap = l - hi + 1
		}
		if bestGap < 0 || gap < bestGap {
			best, bestGap = s, gap
		}
	}

	if spec.Length.Explicit {
		return "", constraint.Errorf(n.Path, constraint.PropRegex,
			"%w: %q gave no string with length in [%d, %d) after %d attempts",
			constraint.ErrPatternWindow, *spec.Pattern, lo, hi, e.cfg.patternAttempts)
	}
	return best, nil
}
