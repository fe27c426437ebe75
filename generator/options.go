// SPDX-License-Identifier: MIT
// Package: avrand/generator
//
// options.go - functional options for Engine.
//
// Contract (strict):
//   - Options are functional (type Option func(*engineConfig)).
//   - Option constructors validate and panic on meaningless inputs; the engine
//     itself never panics.
//   - Determinism is explicit: seeding is done via WithSeed or WithRand.

package generator

import (
	"log/slog"
	"math/rand"
)

// Option customizes an Engine before its annotation table is built.
type Option func(*engineConfig)

// WithSeed seeds the engine's random source. Seed 0 selects the default seed,
// so the zero value stays reproducible.
func WithSeed(seed int64) Option {
	return func(c *engineConfig) {
		c.rng = rngFromSeed(seed)
	}
}

// WithRand supplies the random source. The engine draws from it under its own
// lock; do not share r with other goroutines. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("generator: WithRand(nil)")
	}
	return func(c *engineConfig) {
		c.rng = r
	}
}

// WithLogger routes engine diagnostics to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("generator: WithLogger(nil)")
	}
	return func(c *engineConfig) {
		c.logger = l
	}
}

// WithPatternCompiler replaces the regex-driven string generator. Panics on nil.
func WithPatternCompiler(fn PatternCompiler) Option {
	if fn == nil {
		panic("generator: WithPatternCompiler(nil)")
	}
	return func(c *engineConfig) {
		c.compile = fn
	}
}

// WithPatternAttempts bounds how many candidates are drawn per regex string
// while looking for one inside the length window. Panics if n < 1.
func WithPatternAttempts(n int) Option {
	if n < 1 {
		panic("generator: WithPatternAttempts(n<1)")
	}
	return func(c *engineConfig) {
		c.patternAttempts = n
	}
}

// WithAnnotationKey changes the metadata property holding annotations.
// Panics on an empty key.
func WithAnnotationKey(key string) Option {
	if key == "" {
		panic(`generator: WithAnnotationKey("")`)
	}
	return func(c *engineConfig) {
		c.annotationKey = key
	}
}
