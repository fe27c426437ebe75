// Package schema adapts a parsed Avro schema into the immutable node tree the
// generator walks.
//
// Parsing itself belongs to hamba/avro. This package runs a single
// preprocessing pass over the parsed schema that:
//
//   - assigns every distinct node a dense integer ID (Node.ID), which the
//     generator uses as the identity key for its per-node caches;
//   - records a diagnostic path for each node ("ns.User.tags[]", "ns.User.meta{}",
//     "ns.User.contact|string") so configuration errors can name the offending node;
//   - copies the node's metadata property bag, where constraint annotations live;
//   - resolves named references so recursive records share one *Node.
//
// Entry points:
//
//	Parse(text)        - JSON schema text
//	ParseBytes(b)      - JSON schema bytes
//	ParseReader(r)     - a stream, read to EOF
//	ParseFile(path)    - a file on disk
//	FromAvro(s)        - an already parsed hamba/avro schema
//
// Errors are sentinels (ErrParse, ErrNilSchema, ErrUnsupportedType); branch on
// them with errors.Is.
package schema
