// Package generator produces random values for a preprocessed schema, steered
// by per-node annotations stored under the "arg.properties" metadata key.
//
// The package offers the following key components:
//
//   - Engine: owns the random source, the per-node annotation table built by
//     New, and the identity-keyed caches of derived state (option pools,
//     compiled patterns, iterator state). One Engine is one generation session.
//   - Option: functional options resolved into an immutable engineConfig:
//     WithSeed, WithRand, WithLogger, WithPatternCompiler, WithPatternAttempts,
//     WithAnnotationKey.
//   - PatternCompiler / Matcher: the seam to the regex-driven string generator
//     (github.com/lucasjones/reggen by default).
//
// Guarantees:
//
//   - Malformed annotations are rejected by New, before any value is produced;
//     errors are *constraint.ConfigError and match constraint.ErrConfiguration.
//   - Two engines built with the same seed over the same schema produce
//     identical value sequences.
//   - Derived state is built lazily, at most once per node and engine, and is
//     never shared between engines.
//   - Engine methods are safe for concurrent use; calls are serialized.
//
// Annotation reference (value of the "arg.properties" object):
//
//	length     int | {min, max}          string, bytes, array, map
//	regex      string                     string (combines with length)
//	options    [literal...] | {file, encoding: binary|json}   any type, alone
//	keys       {options} | {length}       map
//	range      {min, max}                 int, long, float, double
//	odds       number in [0, 1]           boolean
//	iteration  {start, restart, step}     int, long, float, double, boolean; alone
package generator
