// SPDX-License-Identifier: MIT
// Package: avrand/generator
//
// engine.go - the generation session.
//
// Design:
//   - New validates every node's annotation up front and stores the parsed
//     constraint.Spec in a slice indexed by node ID.
//   - Derived state (option pools, key pools, matchers, iterators) lives in
//     memo caches keyed by node ID and owned by this Engine only.
//   - A single mutex serializes Generate calls: *rand.Rand and the caches are
//     not goroutine-safe, and the draw order defines reproducibility.

package generator

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/avrand/constraint"
	"github.com/katalvlaran/avrand/iterate"
	"github.com/katalvlaran/avrand/options"
	"github.com/katalvlaran/avrand/schema"
	"github.com/katalvlaran/avrand/value"
)

// Engine generates values for one schema.
type Engine struct {
	mu sync.Mutex

	cfg     engineConfig
	schema  *schema.Schema
	specs   []constraint.Spec
	session string
	logger  *slog.Logger
	loader  *options.Loader

	pools    *memo[int, *options.Pool]
	keyPools *memo[int, *options.Pool]
	matchers *memo[int, Matcher]
	integral *memo[int, *iterate.Integral]
	decimal  *memo[int, *iterate.Decimal]
	boolean  *memo[int, *iterate.Boolean]
}

// New builds an engine for s, validating every annotation in the tree.
//
// Errors: ErrNilSchema; *constraint.ConfigError for malformed annotations.
//
// Complexity: O(V) in schema nodes.
func New(s *schema.Schema, opts ...Option) (*Engine, error) {
	if s == nil {
		return nil, generatorErrorf(methodNew, "%w", ErrNilSchema)
	}
	cfg := newEngineConfig(opts...)

	specs := make([]constraint.Spec, s.Len())
	for _, n := range s.Nodes() {
		spec, err := constraint.Parse(n, cfg.annotationKey)
		if err != nil {
			return nil, generatorErrorf(methodNew, "%w", err)
		}
		specs[n.ID] = spec
	}

	session := uuid.NewString()
	logger := cfg.logger.With("session", session)
	logger.Debug("engine ready", "root", s.Root().Path, "nodes", s.Len())

	return &Engine{
		cfg:      cfg,
		schema:   s,
		specs:    specs,
		session:  session,
		logger:   logger,
		loader:   options.NewLoader(logger),
		pools:    newMemo[int, *options.Pool](),
		keyPools: newMemo[int, *options.Pool](),
		matchers: newMemo[int, Matcher](),
		integral: newMemo[int, *iterate.Integral](),
		decimal:  newMemo[int, *iterate.Decimal](),
		boolean:  newMemo[int, *iterate.Boolean](),
	}, nil
}

// Schema returns the schema the engine generates for.
func (e *Engine) Schema() *schema.Schema { return e.schema }

// Session returns the identifier tagging this engine's log records.
func (e *Engine) Session() string { return e.session }

// Spec returns the parsed annotation of n, or false when n is foreign.
func (e *Engine) Spec(n *schema.Node) (constraint.Spec, bool) {
	if !e.schema.Owns(n) {
		return constraint.Spec{}, false
	}
	return e.specs[n.ID], true
}

// Generate produces one value for the schema root.
//
// Complexity: O(size of the generated value) plus one-time per-node setup.
func (e *Engine) Generate() (value.Value, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, err := e.generate(e.schema.Root())
	if err != nil {
		return value.Value{}, generatorErrorf(methodGenerate, "%w", err)
	}
	return v, nil
}

// GenerateNode produces one value for n, which must belong to the engine's schema.
func (e *Engine) GenerateNode(n *schema.Node) (value.Value, error) {
	if !e.schema.Owns(n) {
		return value.Value{}, generatorErrorf(methodGenerateNode, "%w", ErrForeignNode)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	v, err := e.generate(n)
	if err != nil {
		return value.Value{}, generatorErrorf(methodGenerateNode, "%w", err)
	}
	return v, nil
}

// GenerateN produces count values for the schema root.
func (e *Engine) GenerateN(count int) ([]value.Value, error) {
	out := make([]value.Value, 0, count)
	for i := 0; i < count; i++ {
		v, err := e.Generate()
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}
