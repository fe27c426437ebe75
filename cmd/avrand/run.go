// cmd/avrand/run.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/linkedin/goavro/v2"

	"github.com/katalvlaran/avrand/generator"
	"github.com/katalvlaran/avrand/schema"
	"github.com/katalvlaran/avrand/value"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitBadUsage = 2
)

// run executes one CLI invocation and returns the process exit code.
func run(argv []string, stdout, stderr io.Writer) int {
	fs := NewFlagSet("avrand")
	fs.SetOutput(stderr)
	opt, err := ParseArgs(fs, argv)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "avrand:", err)
		return exitBadUsage
	}

	level := slog.LevelWarn
	if opt.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := generate(opt, stdout, logger); err != nil {
		fmt.Fprintln(stderr, "avrand:", err)
		return exitFailure
	}
	return exitOK
}

func generate(opt Options, stdout io.Writer, logger *slog.Logger) (err error) {
	var s *schema.Schema
	if opt.SchemaFile != "" {
		s, err = schema.ParseFile(opt.SchemaFile)
	} else {
		s, err = schema.Parse(opt.Schema)
	}
	if err != nil {
		return err
	}

	seed := opt.Seed
	if !opt.SeedSet {
		seed = time.Now().UnixNano()
	}
	engine, err := generator.New(s,
		generator.WithSeed(seed),
		generator.WithLogger(logger),
		generator.WithAnnotationKey(opt.AnnotationKey),
	)
	if err != nil {
		return err
	}
	logger.Debug("generating", "session", engine.Session(), "count", opt.Count, "seed", seed, "format", opt.Format)

	codec, err := goavro.NewCodec(s.Root().Canonical())
	if err != nil {
		return fmt.Errorf("codec: %w", err)
	}

	w := stdout
	if opt.Output != "" && opt.Output != "-" {
		f, ferr := os.Create(opt.Output)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	enc, err := newEncoder(opt.Format, opt.Pretty, w, codec)
	if err != nil {
		return err
	}
	for i := 0; i < opt.Count; i++ {
		v, err := engine.Generate()
		if err != nil {
			return err
		}
		if err := enc.Encode(value.Native(s.Root(), v)); err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
	}
	return enc.Close()
}
