package options_test

import (
	"bytes"
	"io/fs"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/linkedin/goavro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/avrand/constraint"
	"github.com/katalvlaran/avrand/options"
	"github.com/katalvlaran/avrand/schema"
	"github.com/katalvlaran/avrand/value"
)

func root(t *testing.T, text string) *schema.Node {
	t.Helper()
	s, err := schema.Parse(text)
	require.NoError(t, err)
	return s.Root()
}

func raw(t *testing.T, v any) constraint.Raw {
	t.Helper()
	r, err := constraint.FromAny(v)
	require.NoError(t, err)
	return r
}

func TestWrap_Primitives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		schema string
		lit    any
		check  func(t *testing.T, v value.Value)
		bad    bool
	}{
		{"int from float", `"int"`, 12.0, func(t *testing.T, v value.Value) { assert.Equal(t, int64(12), v.Long) }, false},
		{"int overflow", `"int"`, 3e9, nil, true},
		{"int fraction", `"int"`, 1.5, nil, true},
		{"long", `"long"`, int64(1) << 40, func(t *testing.T, v value.Value) { assert.Equal(t, int64(1)<<40, v.Long) }, false},
		{"float from int", `"float"`, 3, func(t *testing.T, v value.Value) { assert.Equal(t, 3.0, v.Double) }, false},
		{"float overflow", `"float"`, 1e300, nil, true},
		{"double", `"double"`, 2.5, func(t *testing.T, v value.Value) { assert.Equal(t, 2.5, v.Double) }, false},
		{"boolean", `"boolean"`, true, func(t *testing.T, v value.Value) { assert.True(t, v.Bool) }, false},
		{"boolean from string", `"boolean"`, "true", nil, true},
		{"null", `"null"`, nil, func(t *testing.T, v value.Value) { assert.Equal(t, schema.Null, v.Type()) }, false},
		{"string", `"string"`, "hi", func(t *testing.T, v value.Value) { assert.Equal(t, "hi", v.Str) }, false},
		{"string from number", `"string"`, 5, nil, true},
		{"bytes from string", `"bytes"`, "ab", func(t *testing.T, v value.Value) { assert.Equal(t, []byte("ab"), v.Bytes) }, false},
		{"fixed exact", `{"type":"fixed","name":"F","size":2}`, "ab", func(t *testing.T, v value.Value) { assert.Equal(t, []byte("ab"), v.Bytes) }, false},
		{"fixed wrong size", `{"type":"fixed","name":"F","size":2}`, "abc", nil, true},
		{"enum", `{"type":"enum","name":"E","symbols":["A","B"]}`, "B", func(t *testing.T, v value.Value) { assert.Equal(t, "B", v.Str) }, false},
		{"enum unknown", `{"type":"enum","name":"E","symbols":["A","B"]}`, "C", nil, true},
		{"array", `{"type":"array","items":"long"}`, []any{1, 2}, func(t *testing.T, v value.Value) { require.Len(t, v.Items, 2) }, false},
		{"array bad item", `{"type":"array","items":"long"}`, []any{1, "x"}, nil, true},
		{"map", `{"type":"map","values":"string"}`, map[string]any{"a": "b"}, func(t *testing.T, v value.Value) { assert.Equal(t, "b", v.Entries["a"].Str) }, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v, err := options.Wrap(root(t, tc.schema), raw(t, tc.lit))
			if tc.bad {
				require.ErrorIs(t, err, constraint.ErrInvalidOption)
				return
			}
			require.NoError(t, err)
			tc.check(t, v)
		})
	}
}

const personSchema = `{
  "type": "record", "name": "Person",
  "fields": [
    {"name": "name", "type": "string"},
    {"name": "age", "type": "int", "default": 30},
    {"name": "nick", "type": ["null", "string"], "default": null}
  ]
}`

func TestWrap_RecordDefaults(t *testing.T) {
	t.Parallel()

	n := root(t, personSchema)

	v, err := options.Wrap(n, raw(t, map[string]any{"name": "ann"}))
	require.NoError(t, err)
	age, _ := v.Field("age")
	assert.Equal(t, int64(30), age.Long)
	nick, _ := v.Field("nick")
	assert.Equal(t, schema.Null, nick.Type())

	_, err = options.Wrap(n, raw(t, map[string]any{"age": 4}))
	require.ErrorIs(t, err, constraint.ErrInvalidOption)
	assert.Contains(t, err.Error(), `"name"`)

	_, err = options.Wrap(n, raw(t, map[string]any{"name": "x", "email": "y"}))
	require.ErrorIs(t, err, constraint.ErrInvalidOption)
	assert.Contains(t, err.Error(), `"email"`)
}

func TestWrap_Union(t *testing.T) {
	t.Parallel()

	n := root(t, `["null", "int", "string"]`)

	v, err := options.Wrap(n, raw(t, nil))
	require.NoError(t, err)
	assert.Equal(t, schema.Null, v.Type())

	v, err = options.Wrap(n, raw(t, map[string]any{"string": "s"}))
	require.NoError(t, err)
	assert.Equal(t, schema.String, v.Type())

	v, err = options.Wrap(n, raw(t, 7))
	require.NoError(t, err)
	assert.Equal(t, schema.Int, v.Type())

	v, err = options.Wrap(n, raw(t, "free"))
	require.NoError(t, err)
	assert.Equal(t, "free", v.Str)

	_, err = options.Wrap(n, raw(t, true))
	require.ErrorIs(t, err, constraint.ErrInvalidOption)

	_, err = options.Wrap(root(t, `["int", "string"]`), raw(t, nil))
	require.ErrorIs(t, err, constraint.ErrInvalidOption)
}

func TestLoader_Inline(t *testing.T) {
	t.Parallel()

	n := root(t, `"string"`)
	spec := &constraint.OptionsSpec{Inline: []constraint.Raw{raw(t, "a"), raw(t, "b"), raw(t, "c")}}
	pool, err := options.NewLoader(nil).Resolve(n, spec, constraint.PropOptions)
	require.NoError(t, err)
	require.Equal(t, 3, pool.Len())
	assert.Same(t, n, pool.Node())

	rng := rand.New(rand.NewSource(1))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[pool.Pick(rng).Str] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, seen)

	bad := &constraint.OptionsSpec{Inline: []constraint.Raw{raw(t, "a"), raw(t, 9)}}
	_, err = options.NewLoader(nil).Resolve(n, bad, constraint.PropOptions)
	require.ErrorIs(t, err, constraint.ErrInvalidOption)
	require.ErrorIs(t, err, constraint.ErrConfiguration)
	ce, ok := constraint.IsConfigError(err)
	require.True(t, ok)
	assert.Equal(t, "options[1]", ce.Property)
	assert.Contains(t, err.Error(), "9 is integer, want string")

	_, err = options.NewLoader(nil).Resolve(n, &constraint.OptionsSpec{}, constraint.PropOptions)
	require.ErrorIs(t, err, constraint.ErrEmptyOptions)
}

// writeRecords encodes natives with codec into a temp file and returns its path.
func writeRecords(t *testing.T, codec *goavro.Codec, enc constraint.Encoding, tail []byte, natives ...any) string {
	t.Helper()
	var buf []byte
	for _, n := range natives {
		var err error
		if enc == constraint.EncodingJSON {
			buf, err = codec.TextualFromNative(buf, n)
			buf = append(buf, '\n')
		} else {
			buf, err = codec.BinaryFromNative(buf, n)
		}
		require.NoError(t, err)
	}
	buf = append(buf, tail...)
	path := filepath.Join(t.TempDir(), "pool."+string(enc))
	require.NoError(t, os.WriteFile(path, buf, 0o600))
	return path
}

func TestLoader_File(t *testing.T) {
	t.Parallel()

	n := root(t, personSchema)
	codec, err := goavro.NewCodec(n.Canonical())
	require.NoError(t, err)

	records := []any{
		map[string]any{"name": "ann", "age": int32(31), "nick": nil},
		map[string]any{"name": "bob", "age": int32(42), "nick": map[string]any{"string": "b"}},
	}

	for _, enc := range []constraint.Encoding{constraint.EncodingBinary, constraint.EncodingJSON} {
		enc := enc
		t.Run(string(enc), func(t *testing.T) {
			t.Parallel()
			path := writeRecords(t, codec, enc, nil, records...)
			pool, err := options.NewLoader(nil).Resolve(n, &constraint.OptionsSpec{File: path, Encoding: enc}, constraint.PropOptions)
			require.NoError(t, err)
			require.Equal(t, 2, pool.Len())

			bob := pool.Items()[1]
			name, _ := bob.Field("name")
			nick, _ := bob.Field("nick")
			assert.Equal(t, "bob", name.Str)
			assert.Equal(t, "b", nick.Str)
		})
	}
}

func TestLoader_FileReusedNamedType(t *testing.T) {
	t.Parallel()

	s, err := schema.Parse(`{
	  "type": "record", "name": "A",
	  "fields": [
	    {"name": "b", "type": {"type": "record", "name": "B", "fields": [{"name": "x", "type": "int"}]}},
	    {"name": "c", "type": {"type": "array", "items": "B"}}
	  ]
	}`)
	require.NoError(t, err)
	c := s.Root().Fields[1].Type

	codec, err := goavro.NewCodec(c.Canonical())
	require.NoError(t, err)
	path := writeRecords(t, codec, constraint.EncodingBinary, nil,
		[]any{map[string]any{"x": int32(1)}},
		[]any{map[string]any{"x": int32(2)}, map[string]any{"x": int32(3)}},
	)

	pool, err := options.NewLoader(nil).Resolve(c, &constraint.OptionsSpec{File: path, Encoding: constraint.EncodingBinary}, constraint.PropOptions)
	require.NoError(t, err)
	require.Equal(t, 2, pool.Len())
	second := pool.Items()[1]
	require.Len(t, second.Items, 2)
	x, _ := second.Items[1].Field("x")
	assert.Equal(t, int64(3), x.Long)
}

func TestLoader_FileTruncatedTail(t *testing.T) {
	t.Parallel()

	n := root(t, `"string"`)
	codec, err := goavro.NewCodec(n.Canonical())
	require.NoError(t, err)

	tests := []struct {
		name string
		enc  constraint.Encoding
		tail []byte
	}{
		// length prefix 3 followed by a single byte
		{"binary", constraint.EncodingBinary, []byte{0x06, 'a'}},
		{"json unterminated string", constraint.EncodingJSON, []byte(`"ab`)},
		{"json unterminated object", constraint.EncodingJSON, []byte(`{"str`)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeRecords(t, codec, tc.enc, tc.tail, "xy", "zz")

			var logs bytes.Buffer
			loader := options.NewLoader(slog.New(slog.NewTextHandler(&logs, nil)))
			pool, err := loader.Resolve(n, &constraint.OptionsSpec{File: path, Encoding: tc.enc}, constraint.PropOptions)
			require.NoError(t, err)
			assert.Equal(t, 2, pool.Len())
			assert.Contains(t, logs.String(), "mid-record")
		})
	}
}

func TestLoader_FileCorruptRecord(t *testing.T) {
	t.Parallel()

	writeRaw := func(t *testing.T, name string, data []byte) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.WriteFile(path, data, 0o600))
		return path
	}

	tests := []struct {
		name   string
		schema string
		enc    constraint.Encoding
		data   []byte
	}{
		{"json wrong type in the middle", `"string"`, constraint.EncodingJSON, []byte("\"a\"\n5\n\"b\"\n")},
		{"json garbage in the middle", `"string"`, constraint.EncodingJSON, []byte("\"a\"\n}\n\"b\"\n")},
		// null, then union index 4, then null
		{"binary bad union index", `["null", "string"]`, constraint.EncodingBinary, []byte{0x00, 0x08, 0x00}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			n := root(t, tc.schema)
			path := writeRaw(t, "pool."+string(tc.enc), tc.data)

			var logs bytes.Buffer
			loader := options.NewLoader(slog.New(slog.NewTextHandler(&logs, nil)))
			_, err := loader.Resolve(n, &constraint.OptionsSpec{File: path, Encoding: tc.enc}, constraint.PropOptions)
			require.ErrorIs(t, err, constraint.ErrOptionsFile)
			require.ErrorIs(t, err, constraint.ErrConfiguration)
			assert.Contains(t, err.Error(), "record 1")
			assert.Empty(t, logs.String())
		})
	}
}

func TestLoader_FileErrors(t *testing.T) {
	t.Parallel()

	n := root(t, `"string"`)
	codec, err := goavro.NewCodec(n.Canonical())
	require.NoError(t, err)
	loader := options.NewLoader(nil)

	_, err = loader.Resolve(n, &constraint.OptionsSpec{File: filepath.Join(t.TempDir(), "missing"), Encoding: constraint.EncodingBinary}, constraint.PropOptions)
	require.ErrorIs(t, err, constraint.ErrOptionsFile)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.ErrorIs(t, err, constraint.ErrConfiguration)

	empty := writeRecords(t, codec, constraint.EncodingBinary, nil)
	_, err = loader.Resolve(n, &constraint.OptionsSpec{File: empty, Encoding: constraint.EncodingBinary}, constraint.PropOptions)
	require.ErrorIs(t, err, constraint.ErrEmptyOptions)

	broken := writeRecords(t, codec, constraint.EncodingBinary, []byte{0x06, 'a'})
	_, err = loader.Resolve(n, &constraint.OptionsSpec{File: broken, Encoding: constraint.EncodingBinary}, constraint.PropOptions)
	require.ErrorIs(t, err, constraint.ErrOptionsFile)

	// decodes as an int, which the string node rejects
	intCodec, err := goavro.NewCodec(`"int"`)
	require.NoError(t, err)
	wrong := writeRecords(t, intCodec, constraint.EncodingJSON, nil, int32(5))
	_, err = loader.Resolve(n, &constraint.OptionsSpec{File: wrong, Encoding: constraint.EncodingJSON}, constraint.PropOptions)
	require.Error(t, err)
	require.ErrorIs(t, err, constraint.ErrConfiguration)
}
