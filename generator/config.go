// SPDX-License-Identifier: MIT
// Package: avrand/generator
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - rng             = seeded with defaultSeed
//   - logger          = discards everything
//   - compile         = reggenCompiler
//   - patternAttempts = defaultPatternAttempts
//   - annotationKey   = constraint.DefaultAnnotationKey

package generator

import (
	"io"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/avrand/constraint"
)

type engineConfig struct {
	rng             *rand.Rand
	logger          *slog.Logger
	compile         PatternCompiler
	patternAttempts int
	annotationKey   string
}

const (
	defaultSeed            int64 = 1
	defaultPatternAttempts       = 64
	// patternSlack caps unbounded regex repetition above the window's minimum
	// when the window itself is (near) unbounded.
	patternSlack = 64
)

// newEngineConfig applies opts over the defaults; later options win.
func newEngineConfig(opts ...Option) engineConfig {
	cfg := engineConfig{
		rng:             rngFromSeed(defaultSeed),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		compile:         reggenCompiler,
		patternAttempts: defaultPatternAttempts,
		annotationKey:   constraint.DefaultAnnotationKey,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
