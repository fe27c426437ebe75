package generator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/avrand/constraint"
)

func TestSampleInt_FullDomain(t *testing.T) {
	t.Parallel()

	rng := rngFromSeed(7)
	full := constraint.Bounds[int64]{Min: math.MinInt64, Max: math.MaxInt64}
	one := constraint.Bounds[int64]{Min: 5, Max: 6}
	for i := 0; i < 1000; i++ {
		v := sampleInt(rng, full)
		require.Less(t, v, int64(math.MaxInt64))
		require.Equal(t, int64(5), sampleInt(rng, one))
	}
}

func TestSampleFloat_StaysFinite(t *testing.T) {
	t.Parallel()

	rng := rngFromSeed(7)
	for i := 0; i < 1000; i++ {
		x := sampleFloat(rng, -math.MaxFloat64, math.MaxFloat64)
		require.False(t, math.IsInf(x, 0) || math.IsNaN(x))
		require.Less(t, x, math.MaxFloat64)

		f := narrowFloat(sampleFloat(rng, 0, 1), 0, 1)
		require.True(t, f >= 0 && f < 1)
	}
	// rounding up to the bound is pulled back below it
	assert.Less(t, narrowFloat(math.Nextafter(1, 0), 0, 1), 1.0)
}

func TestRandomASCII(t *testing.T) {
	t.Parallel()

	s := randomASCII(rngFromSeed(3), 256)
	require.Len(t, s, 256)
	for i := 0; i < len(s); i++ {
		require.Less(t, s[i], byte(128))
	}
}

func TestMemo_BuildsOnce(t *testing.T) {
	t.Parallel()

	m := newMemo[int, string]()
	builds := 0
	build := func() (string, error) {
		builds++
		return "v", nil
	}
	for i := 0; i < 3; i++ {
		v, err := m.get(1, build)
		require.NoError(t, err)
		assert.Equal(t, "v", v)
	}
	assert.Equal(t, 1, builds)

	boom := errors.New("boom")
	_, err := m.get(2, func() (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.len(), "failed builds are not stored")

	n := 0
	for i := 0; i < 3; i++ {
		assert.Equal(t, "w", m.ensure(3, func() string { n++; return "w" }))
	}
	assert.Equal(t, 1, n)
	assert.Equal(t, "v", m.ensure(1, func() string { return "other" }))
}

func TestDeriveSeed_Decorrelates(t *testing.T) {
	t.Parallel()

	assert.Equal(t, deriveSeed(1, 2), deriveSeed(1, 2))
	assert.NotEqual(t, deriveSeed(1, 2), deriveSeed(1, 3))
	assert.NotEqual(t, deriveSeed(1, 2), deriveSeed(2, 2))
	assert.Equal(t, rngFromSeed(0).Int63(), rngFromSeed(defaultSeed).Int63())
}
