package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-9)
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{540, 540, 540}))
	// population, not sample, deviation
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	// 08:00, 14:00, 20:00
	assert.InDelta(t, 293.94, StdDev([]float64{480, 840, 1200}), 0.01)
}

func TestSaturate(t *testing.T) {
	tests := []struct {
		samples, full, want float64
	}{
		{0, 10, 0},
		{-1, 10, 0},
		{3, 10, 0.3},
		{10, 10, 1},
		{25, 10, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Saturate(tt.samples, tt.full), 1e-9, "Saturate(%v, %v)", tt.samples, tt.full)
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 2.3, RoundTo(2.3333, 1))
	assert.Equal(t, 2.4, RoundTo(2.35, 1))
	assert.Equal(t, 3.0, RoundTo(2.96, 1))
	assert.Equal(t, 45.0, RoundTo(44.6, 0))
}
