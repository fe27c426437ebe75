package schema_test

import (
	"testing"

	"github.com/linkedin/goavro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/avrand/schema"
)

const sharedSchema = `{
  "type": "record", "name": "Order", "namespace": "shop",
  "fields": [
    {"name": "first", "type": {"type": "record", "name": "Line", "fields": [
      {"name": "sku", "type": {"type": "fixed", "name": "Sku", "size": 3}},
      {"name": "unit", "type": {"type": "enum", "name": "Unit", "symbols": ["PC", "KG"]}}
    ]}},
    {"name": "rest", "type": {"type": "array", "items": "Line"}},
    {"name": "byUnit", "type": {"type": "map", "values": ["null", "Unit"]}}
  ]
}`

func TestCanonical_SelfContained(t *testing.T) {
	t.Parallel()

	s, err := schema.Parse(sharedSchema)
	require.NoError(t, err)
	root := s.Root()

	rest := root.Fields[1].Type
	assert.Equal(t,
		`{"type":"array","items":{"name":"shop.Line","type":"record","fields":[`+
			`{"name":"sku","type":{"name":"shop.Sku","type":"fixed","size":3}},`+
			`{"name":"unit","type":{"name":"shop.Unit","type":"enum","symbols":["PC","KG"]}}]}}`,
		rest.Canonical())

	// every node builds a codec on its own, references included
	for _, n := range s.Nodes() {
		_, err := goavro.NewCodec(n.Canonical())
		require.NoError(t, err, "%s: %s", n.Path, n.Canonical())
	}

	codec, err := goavro.NewCodec(rest.Canonical())
	require.NoError(t, err)
	line := map[string]any{"sku": []byte("abc"), "unit": "KG"}
	bin, err := codec.BinaryFromNative(nil, []any{line})
	require.NoError(t, err)
	back, _, err := codec.NativeFromBinary(bin)
	require.NoError(t, err)
	assert.Len(t, back, 1)
}

func TestCanonical_Recursive(t *testing.T) {
	t.Parallel()

	s, err := schema.Parse(userSchema)
	require.NoError(t, err)

	text := s.Root().Canonical()
	assert.NotContains(t, text, "arg.properties")
	assert.Contains(t, text, `["null","example.User"]`)
	_, err = goavro.NewCodec(text)
	require.NoError(t, err)
}
