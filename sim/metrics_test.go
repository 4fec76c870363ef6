package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDistribution_Summary(t *testing.T) {
	// GIVEN unsorted waiting times
	d := NewDistribution(Int64s([]int64{12, 0, 7}))

	// THEN order statistics come from the sorted sample
	assert.Equal(t, 3, d.Count)
	assert.InDelta(t, 19.0/3.0, d.Mean, 1e-9)
	assert.Equal(t, 0.0, d.Min)
	assert.Equal(t, 12.0, d.Max)
	assert.GreaterOrEqual(t, d.P95, d.P50)
	assert.LessOrEqual(t, d.P95, d.Max)
}

func TestNewDistribution_Empty_ZeroValue(t *testing.T) {
	assert.Equal(t, Distribution{}, NewDistribution(nil))
}

func TestSafeRatioAndPercent_ZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, SafeRatio(5, 0))
	assert.Equal(t, 0.0, Percent(5, 0))
	assert.Equal(t, 0.5, SafeRatio(1, 2))
	assert.InDelta(t, 155.5556, Percent(70, 45), 1e-4)
}
