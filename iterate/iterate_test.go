package iterate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/avrand/iterate"
)

func ptr[T any](v T) *T { return &v }

func takeInts(it *iterate.Integral, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = it.Next()
	}
	return out
}

// TestIntegral_Sequences pins the wraparound arithmetic, including overshoot
// larger than the interval and negative steps.
func TestIntegral_Sequences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    iterate.Params[int64]
		want []int64
	}{
		{"step 2 over [0,5)", iterate.Params[int64]{Start: 0, Restart: 5, Step: 2}, []int64{0, 2, 4, 1, 3, 0, 2, 4}},
		{"unit step", iterate.Params[int64]{Start: 3, Restart: 6, Step: 1}, []int64{3, 4, 5, 3, 4, 5}},
		{"step larger than span", iterate.Params[int64]{Start: 0, Restart: 3, Step: 7}, []int64{0, 1, 2, 0, 1}},
		{"negative step", iterate.Params[int64]{Start: 0, Restart: -5, Step: -2}, []int64{0, -2, -4, -1, -3, 0, -2}},
		{"negative offset interval", iterate.Params[int64]{Start: -10, Restart: -7, Step: 1}, []int64{-10, -9, -8, -10}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			it := iterate.NewIntegral(tc.p)
			assert.Equal(t, tc.want, takeInts(it, len(tc.want)))
		})
	}
}

// TestIntegral_Extremes walks across the int64 edges where naive differences overflow.
func TestIntegral_Extremes(t *testing.T) {
	t.Parallel()

	up := iterate.NewIntegral(iterate.Params[int64]{Start: math.MinInt64, Restart: math.MaxInt64, Step: math.MaxInt64})
	assert.Equal(t, []int64{math.MinInt64, -1, math.MaxInt64 - 1, math.MinInt64 + math.MaxInt64 - 1}, takeInts(up, 4))

	down := iterate.NewIntegral(iterate.Params[int64]{Start: 1, Restart: math.MinInt64, Step: math.MinInt64})
	for i := 0; i < 16; i++ {
		v := down.Next()
		require.Truef(t, v <= 1 && v > math.MinInt64, "value %d escaped (MinInt64, 1]", v)
	}
}

// TestDecimal_Sequences mirrors the integral cases for float64.
func TestDecimal_Sequences(t *testing.T) {
	t.Parallel()

	it := iterate.NewDecimal(iterate.Params[float64]{Start: 0, Restart: 1, Step: 0.5})
	assert.Equal(t, []float64{0, 0.5, 0, 0.5}, []float64{it.Next(), it.Next(), it.Next(), it.Next()})

	neg := iterate.NewDecimal(iterate.Params[float64]{Start: 0, Restart: -5, Step: -2})
	got := []float64{neg.Next(), neg.Next(), neg.Next(), neg.Next(), neg.Next(), neg.Next()}
	assert.Equal(t, []float64{0, -2, -4, -1, -3, 0}, got)

	wide := iterate.NewDecimal(iterate.Params[float64]{Start: -math.MaxFloat64, Restart: math.MaxFloat64, Step: math.MaxFloat64})
	for i := 0; i < 6; i++ {
		v := wide.Next()
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "value %v must stay finite", v)
	}
}

// TestBoolean_Toggle checks the toggle starts at the configured value.
func TestBoolean_Toggle(t *testing.T) {
	t.Parallel()

	it := iterate.NewBoolean(false)
	assert.Equal(t, []bool{false, true, false, true}, []bool{it.Next(), it.Next(), it.Next(), it.Next()})
}

// TestResolve covers default inference and every validation sentinel.
func TestResolve(t *testing.T) {
	t.Parallel()

	const lo, hi = int64(math.MinInt32), int64(math.MaxInt32)
	tests := []struct {
		name    string
		start   int64
		restart *int64
		step    *int64
		want    iterate.Params[int64]
		wantErr error
	}{
		{"both omitted", 4, nil, nil, iterate.Params[int64]{Start: 4, Restart: hi, Step: 1}, nil},
		{"step omitted up", 0, ptr[int64](9), nil, iterate.Params[int64]{Start: 0, Restart: 9, Step: 1}, nil},
		{"step omitted down", 0, ptr[int64](-9), nil, iterate.Params[int64]{Start: 0, Restart: -9, Step: -1}, nil},
		{"restart omitted positive", 0, nil, ptr[int64](3), iterate.Params[int64]{Start: 0, Restart: hi, Step: 3}, nil},
		{"restart omitted negative", 0, nil, ptr[int64](-3), iterate.Params[int64]{Start: 0, Restart: lo, Step: -3}, nil},
		{"explicit", 0, ptr[int64](5), ptr[int64](2), iterate.Params[int64]{Start: 0, Restart: 5, Step: 2}, nil},
		{"zero step", 0, ptr[int64](5), ptr[int64](0), iterate.Params[int64]{}, iterate.ErrZeroStep},
		{"zero step no restart", 0, nil, ptr[int64](0), iterate.Params[int64]{}, iterate.ErrZeroStep},
		{"equal explicit", 0, ptr[int64](0), ptr[int64](1), iterate.Params[int64]{}, iterate.ErrEqualBounds},
		{"equal inferred", 0, ptr[int64](0), nil, iterate.Params[int64]{}, iterate.ErrEqualBounds},
		{"start at extreme", hi, nil, nil, iterate.Params[int64]{}, iterate.ErrEqualBounds},
		{"wrong sign up", 0, ptr[int64](5), ptr[int64](-1), iterate.Params[int64]{}, iterate.ErrStepDirection},
		{"wrong sign down", 0, ptr[int64](-5), ptr[int64](1), iterate.Params[int64]{}, iterate.ErrStepDirection},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := iterate.Resolve(tc.start, tc.restart, tc.step, lo, hi)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestResolve_Decimal checks the float instantiation uses the supplied extremes.
func TestResolve_Decimal(t *testing.T) {
	t.Parallel()

	p, err := iterate.Resolve(1.5, nil, ptr(-0.5), -math.MaxFloat32, math.MaxFloat32)
	require.NoError(t, err)
	assert.Equal(t, -math.MaxFloat32, p.Restart)
	assert.Equal(t, -0.5, p.Step)
}
