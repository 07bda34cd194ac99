package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio_ZeroOrMissingTargetShortCircuits(t *testing.T) {
	for _, target := range []float64{0, -1, -2000, math.NaN()} {
		assert.Zero(t, Ratio(500, target))
		assert.Zero(t, Ratio(0, target))
		assert.Zero(t, Ratio(-10, target))
	}
}

func TestRatio_ClampedToUnitInterval(t *testing.T) {
	cases := []struct {
		name          string
		value, target float64
		want          float64
	}{
		{"half way", 1000, 2000, 0.5},
		{"exactly on target", 2000, 2000, 1},
		{"over target clamps to 1", 3500, 2000, 1},
		{"negative value clamps to 0", -100, 2000, 0},
		{"zero value", 0, 2000, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Ratio(tc.value, tc.target), 1e-9)
		})
	}
}

func TestRatio_IsTotal(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, 1e18} {
		got := Ratio(v, 2000)
		assert.False(t, math.IsNaN(got))
		assert.False(t, math.IsInf(got, 0))
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 50, Percent(1000, 2000))
	assert.Equal(t, 100, Percent(2500, 2000))
	assert.Equal(t, 0, Percent(1200, 0))
	assert.Equal(t, 63, Percent(1255, 2000)) // 62.75 → 63
}
