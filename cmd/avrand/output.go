// cmd/avrand/output.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/linkedin/goavro/v2"
)

// encoder writes codec-native values in one output format.
type encoder interface {
	Encode(native any) error
	Close() error
}

func newEncoder(format string, pretty bool, w io.Writer, codec *goavro.Codec) (encoder, error) {
	switch format {
	case FormatJSON:
		return &jsonEncoder{w: w, codec: codec, pretty: pretty}, nil
	case FormatBinary:
		return &binaryEncoder{w: w, codec: codec}, nil
	case FormatOCF:
		ocf, err := goavro.NewOCFWriter(goavro.OCFConfig{W: w, Codec: codec})
		if err != nil {
			return nil, fmt.Errorf("ocf writer: %w", err)
		}
		return &ocfEncoder{ocf: ocf}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// jsonEncoder writes the Avro JSON encoding, one value per line.
type jsonEncoder struct {
	w      io.Writer
	codec  *goavro.Codec
	pretty bool
	buf    []byte
}

func (e *jsonEncoder) Encode(native any) error {
	text, err := e.codec.TextualFromNative(e.buf[:0], native)
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	e.buf = text
	if e.pretty {
		var out bytes.Buffer
		if err := json.Indent(&out, text, "", "  "); err != nil {
			return fmt.Errorf("json indent: %w", err)
		}
		text = out.Bytes()
	}
	if _, err := e.w.Write(append(text, '\n')); err != nil {
		return err
	}
	return nil
}

func (e *jsonEncoder) Close() error { return nil }

// binaryEncoder writes bare Avro binary records back to back, the layout
// read by "options": {"file": ..., "encoding": "binary"}.
type binaryEncoder struct {
	w     io.Writer
	codec *goavro.Codec
	buf   []byte
}

func (e *binaryEncoder) Encode(native any) error {
	bin, err := e.codec.BinaryFromNative(e.buf[:0], native)
	if err != nil {
		return fmt.Errorf("binary encode: %w", err)
	}
	e.buf = bin
	_, err = e.w.Write(bin)
	return err
}

func (e *binaryEncoder) Close() error { return nil }

// ocfEncoder writes an Avro object container file.
type ocfEncoder struct {
	ocf     *goavro.OCFWriter
	pending []any
}

const ocfBlockSize = 256

func (e *ocfEncoder) Encode(native any) error {
	e.pending = append(e.pending, native)
	if len(e.pending) >= ocfBlockSize {
		return e.flush()
	}
	return nil
}

func (e *ocfEncoder) flush() error {
	if len(e.pending) == 0 {
		return nil
	}
	if err := e.ocf.Append(e.pending); err != nil {
		return fmt.Errorf("ocf append: %w", err)
	}
	e.pending = e.pending[:0]
	return nil
}

func (e *ocfEncoder) Close() error { return e.flush() }
