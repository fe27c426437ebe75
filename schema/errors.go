package schema

import "errors"

var (
	// ErrParse indicates the schema library rejected the schema description.
	ErrParse = errors.New("schema: parse failed")

	// ErrNilSchema indicates a nil schema was passed to FromAvro.
	ErrNilSchema = errors.New("schema: nil schema")

	// ErrUnsupportedType indicates a node type outside the supported tag set.
	ErrUnsupportedType = errors.New("schema: unsupported node type")
)
