// cmd/avrand/options.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/avrand/constraint"
)

// Output formats.
const (
	FormatJSON   = "json"
	FormatBinary = "binary"
	FormatOCF    = "ocf"
)

// Options holds all CLI flags.
type Options struct {
	// Schema input (exactly one)
	SchemaFile string
	Schema     string

	// Generation
	Count         int
	Seed          int64
	SeedSet       bool // false: seed from the clock
	AnnotationKey string

	// Output
	Format string
	Pretty bool
	Output string // "-" or empty writes to stdout

	Config  string
	Verbose bool
}

// Profile is the YAML run profile read with -config. Zero fields are ignored.
type Profile struct {
	SchemaFile    string `yaml:"schema_file,omitempty"`
	Schema        string `yaml:"schema,omitempty"`
	Count         int    `yaml:"count,omitempty"`
	Seed          *int64 `yaml:"seed,omitempty"`
	AnnotationKey string `yaml:"annotation_key,omitempty"`
	Format        string `yaml:"format,omitempty"`
	Pretty        bool   `yaml:"pretty,omitempty"`
	Output        string `yaml:"output,omitempty"`
	Verbose       bool   `yaml:"verbose,omitempty"`
}

// NewFlagSet returns a configured FlagSet with custom usage.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `%s: random values for an Avro schema

Annotate schema nodes with an "arg.properties" object to steer generation
(length, regex, options, keys, range, odds, iteration).

Usage of %s:
`, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, merges the optional YAML profile
// (flags set on the command line win) and validates the result.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.SchemaFile, "schema-file", "", "file holding the Avro schema [*]")
	fs.StringVar(&opt.Schema, "schema", "", "Avro schema given inline [*]")

	fs.IntVar(&opt.Count, "count", 1, "number of values to generate [1]")
	fs.Int64Var(&opt.Seed, "seed", 0, "random seed (omit for a clock-based seed)")
	fs.StringVar(&opt.AnnotationKey, "annotation-key", constraint.DefaultAnnotationKey, "schema property holding annotations ["+constraint.DefaultAnnotationKey+"]")

	fs.StringVar(&opt.Format, "format", FormatJSON, "output format: json | binary | ocf [json]")
	fs.BoolVar(&opt.Pretty, "pretty", false, "indent JSON output [false]")
	fs.StringVar(&opt.Output, "output", "-", "output file, '-' for stdout [-]")

	fs.StringVar(&opt.Config, "config", "", "YAML run profile; command-line flags override it")
	fs.BoolVar(&opt.Verbose, "v", false, "debug logging to stderr [false]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	opt.SeedSet = set["seed"]

	if opt.Config != "" {
		p, err := LoadProfile(opt.Config)
		if err != nil {
			return opt, err
		}
		opt.merge(p, set)
	}

	switch {
	case opt.SchemaFile != "" && opt.Schema != "":
		return opt, errors.New("-schema-file conflicts with -schema")
	case opt.SchemaFile == "" && opt.Schema == "":
		return opt, errors.New("provide -schema-file or -schema")
	}
	if opt.Count < 1 {
		return opt, errors.New("-count must be ≥ 1")
	}
	if opt.AnnotationKey == "" {
		return opt, errors.New("-annotation-key must not be empty")
	}
	switch opt.Format {
	case FormatJSON, FormatBinary, FormatOCF:
	default:
		return opt, fmt.Errorf("invalid -format %q", opt.Format)
	}
	if opt.Pretty && opt.Format != FormatJSON {
		return opt, errors.New("-pretty only applies to -format json")
	}
	return opt, nil
}

// LoadProfile reads a YAML run profile.
func LoadProfile(path string) (Profile, error) {
	var p Profile
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

// merge copies profile values into fields whose flag was not set explicitly.
func (o *Options) merge(p Profile, set map[string]bool) {
	if !set["schema-file"] && !set["schema"] {
		if p.SchemaFile != "" {
			o.SchemaFile = p.SchemaFile
		}
		if p.Schema != "" {
			o.Schema = p.Schema
		}
	}
	if !set["count"] && p.Count != 0 {
		o.Count = p.Count
	}
	if !set["seed"] && p.Seed != nil {
		o.Seed, o.SeedSet = *p.Seed, true
	}
	if !set["annotation-key"] && p.AnnotationKey != "" {
		o.AnnotationKey = p.AnnotationKey
	}
	if !set["format"] && p.Format != "" {
		o.Format = p.Format
	}
	if !set["pretty"] && p.Pretty {
		o.Pretty = true
	}
	if !set["output"] && p.Output != "" {
		o.Output = p.Output
	}
	if !set["v"] && p.Verbose {
		o.Verbose = true
	}
}
