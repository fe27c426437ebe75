// SPDX-License-Identifier: MIT
// Package: avrand/options
//
// pool.go - option pool resolution.
//
// Contract:
//   - Resolve turns an OptionsSpec into a non-empty Pool of schema-typed values,
//     or fails with a *constraint.ConfigError.
//   - Inline literals are wrapped one by one; the first bad literal aborts.
//   - Files are read whole and decoded back-to-back with goavro using the node's
//     own schema; json files are split into documents first. Input that runs
//     out mid-record after at least one complete record is a truncated tail:
//     it is logged at Warn and ends the pool. Any other decode failure, a
//     failure on the first record, or a file with no records is an error.
//   - Resolve does not cache; the engine calls it at most once per node.

package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/linkedin/goavro/v2"

	"github.com/katalvlaran/avrand/constraint"
	"github.com/katalvlaran/avrand/schema"
	"github.com/katalvlaran/avrand/value"
)

// Pool is a resolved, non-empty, ordered list of candidate values.
type Pool struct {
	node  *schema.Node
	items []value.Value
}

// Node returns the node the pool's values conform to.
func (p *Pool) Node() *schema.Node { return p.node }

// Len returns the number of candidates.
func (p *Pool) Len() int { return len(p.items) }

// Items returns a copy of the candidate list.
func (p *Pool) Items() []value.Value {
	out := make([]value.Value, len(p.items))
	copy(out, p.items)
	return out
}

// Pick selects one candidate uniformly, with replacement.
func (p *Pool) Pick(rng *rand.Rand) value.Value {
	return p.items[rng.Intn(len(p.items))]
}

// Loader resolves option pools.
type Loader struct {
	logger *slog.Logger
}

// NewLoader returns a Loader logging to logger; nil discards.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{logger: logger}
}

// Resolve builds the pool for node. property names the annotation for error
// reports ("options" or "keys.options").
//
// Complexity: O(n) in literals or file bytes; performs file I/O for the file form.
func (l *Loader) Resolve(node *schema.Node, spec *constraint.OptionsSpec, property string) (*Pool, error) {
	if spec == nil {
		return nil, &constraint.ConfigError{Node: node.Path, Property: property, Err: constraint.ErrEmptyOptions}
	}
	if spec.FromFile() {
		return l.fromFile(node, spec, property)
	}
	return fromInline(node, spec.Inline, property)
}

func fromInline(node *schema.Node, literals []constraint.Raw, property string) (*Pool, error) {
	if len(literals) == 0 {
		return nil, &constraint.ConfigError{Node: node.Path, Property: property, Err: constraint.ErrEmptyOptions}
	}
	pool := &Pool{node: node, items: make([]value.Value, 0, len(literals))}
	for i, lit := range literals {
		v, err := Wrap(node, lit)
		if err != nil {
			return nil, constraint.Errorf(node.Path, fmt.Sprintf("%s[%d]", property, i), "%w", err)
		}
		pool.items = append(pool.items, v)
	}
	return pool, nil
}

func (l *Loader) fromFile(node *schema.Node, spec *constraint.OptionsSpec, property string) (*Pool, error) {
	fail := func(format string, args ...any) error {
		return constraint.Errorf(node.Path, property, format, args...)
	}

	codec, err := goavro.NewCodec(node.Canonical())
	if err != nil {
		return nil, fail("%w: codec for %s: %w", constraint.ErrOptionsFile, node.TypeName(), err)
	}
	data, err := os.ReadFile(spec.File)
	if err != nil {
		return nil, fail("%w: %w", constraint.ErrOptionsFile, err)
	}

	var records recordReader
	if spec.Encoding == constraint.EncodingJSON {
		records = &jsonRecords{codec: codec, dec: json.NewDecoder(bytes.NewReader(data))}
	} else {
		records = &binaryRecords{codec: codec, buf: data}
	}

	pool := &Pool{node: node}
	for {
		native, err := records.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, errTruncated) && len(pool.items) > 0 {
			l.logger.Warn("option file ends mid-record; keeping complete records",
				"node", node.Path, "file", spec.File, "records", len(pool.items), "error", err)
			break
		}
		if err != nil {
			return nil, fail("%w: %s: record %d: %w", constraint.ErrOptionsFile, spec.File, len(pool.items), err)
		}

		raw, err := constraint.FromAny(native)
		if err != nil {
			return nil, fail("%w: %s: record %d: %w", constraint.ErrInvalidOption, spec.File, len(pool.items), err)
		}
		v, err := Wrap(node, raw)
		if err != nil {
			return nil, fail("%s: record %d: %w", spec.File, len(pool.items), err)
		}
		pool.items = append(pool.items, v)
	}

	if len(pool.items) == 0 {
		return nil, fail("%w: %s holds no records", constraint.ErrEmptyOptions, spec.File)
	}
	return pool, nil
}

// errTruncated marks input that stops inside a record.
var errTruncated = errors.New("input ends mid-record")

// recordReader yields the decoded records of an option file, then io.EOF.
type recordReader interface {
	next() (any, error)
}

// binaryRecords decodes Avro binary records laid back to back.
type binaryRecords struct {
	codec *goavro.Codec
	buf   []byte
}

func (r *binaryRecords) next() (any, error) {
	if len(r.buf) == 0 {
		return nil, io.EOF
	}
	native, rest, err := r.codec.NativeFromBinary(r.buf)
	if err != nil {
		if shortBuffer(err) {
			return nil, fmt.Errorf("%w: %w", errTruncated, err)
		}
		return nil, err
	}
	if len(rest) == len(r.buf) {
		// zero-width records (null) never consume input
		rest = nil
	}
	r.buf = rest
	return native, nil
}

// shortBuffer reports whether goavro ran out of input. goavro formats
// io.ErrShortBuffer into most messages with %s, so the chain alone is not enough.
func shortBuffer(err error) bool {
	return errors.Is(err, io.ErrShortBuffer) || strings.Contains(err.Error(), io.ErrShortBuffer.Error())
}

// jsonRecords splits a stream of JSON documents and decodes each one with the
// codec's Avro JSON rules. Only an unterminated final document is a truncation.
type jsonRecords struct {
	codec *goavro.Codec
	dec   *json.Decoder
}

func (r *jsonRecords) next() (any, error) {
	var doc json.RawMessage
	if err := r.dec.Decode(&doc); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %w", errTruncated, err)
		}
		return nil, err
	}
	native, rest, err := r.codec.NativeFromTextual(doc)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(rest)) > 0 {
		return nil, fmt.Errorf("trailing data after record: %q", rest)
	}
	return native, nil
}
