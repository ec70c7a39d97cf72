package filter

import (
	"errors"
	"testing"

	"github.com/ecopia-map/icocloud/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distinctPoints(n int) []data.Point {
	points := make([]data.Point, n)
	for i := range points {
		points[i] = data.NewPoint(float64(i), float64(i*2), float64(-i))
	}
	return points
}

func TestTargetCount(t *testing.T) {
	for _, tc := range []struct {
		count  int
		ratio  float64
		target int
	}{
		{1000, 0.25, 250},
		{1000, 0.1, 100},
		{1000, 1, 1000},
		{1000, 1.5, 1000},
		{7, 0.5, 3},
		{10, 0.01, 1},
		{0, 0.5, 1},
	} {
		assert.Equal(t, tc.target, TargetCount(tc.count, tc.ratio), "%d x %v", tc.count, tc.ratio)
	}
}

func TestSamplerSubsetWithoutDuplicates(t *testing.T) {
	points := distinctPoints(1000)
	original := append([]data.Point(nil), points...)

	sampled, err := NewSampler(0.25).Filter(points)
	require.NoError(t, err)
	require.Len(t, sampled, 250)

	input := make(map[data.Point]bool, len(points))
	for _, p := range points {
		input[p] = true
	}
	seen := make(map[data.Point]bool, len(sampled))
	for _, p := range sampled {
		assert.True(t, input[p], "sampled point %v not in input", p)
		assert.False(t, seen[p], "point %v sampled twice", p)
		seen[p] = true
	}
	assert.Equal(t, original, points)
}

func TestSamplerKeepAll(t *testing.T) {
	points := distinctPoints(10)

	sampled, err := NewSampler(1.0).Filter(points)
	require.NoError(t, err)
	assert.Equal(t, points, sampled)
}

func TestSamplerKeepsAtLeastOne(t *testing.T) {
	sampled, err := NewSampler(0.001).Filter(distinctPoints(10))
	require.NoError(t, err)
	assert.Len(t, sampled, 1)
}

func TestSeededSamplerIsReproducible(t *testing.T) {
	points := distinctPoints(500)

	a, err := NewSeededSampler(0.1, 42).Filter(points)
	require.NoError(t, err)
	b, err := NewSeededSampler(0.1, 42).Filter(points)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSamplerEmptyInput(t *testing.T) {
	for _, ratio := range []float64{0.5, 1} {
		_, err := NewSampler(ratio).Filter(nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyResult))
	}
}

func TestSamplerInvalidRatio(t *testing.T) {
	_, err := NewSampler(0).Filter(distinctPoints(3))
	assert.Error(t, err)
	_, err = NewSampler(-0.5).Filter(distinctPoints(3))
	assert.Error(t, err)
}
