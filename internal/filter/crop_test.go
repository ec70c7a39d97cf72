package filter

import (
	"errors"
	"testing"

	"github.com/ecopia-map/icocloud/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 {
	return &v
}

func yPoints(values ...float64) []data.Point {
	points := make([]data.Point, len(values))
	for i, v := range values {
		points[i] = data.NewPoint(float64(i), v, -v)
	}
	return points
}

func TestCropFilterInclusiveBounds(t *testing.T) {
	points := yPoints(0, 5, 10, 15)

	kept, err := NewCropFilter(data.AxisY, float(5), float(10)).Filter(points)
	require.NoError(t, err)
	assert.Equal(t, []data.Point{points[1], points[2]}, kept)
}

func TestCropFilterDefaultsToExtent(t *testing.T) {
	points := yPoints(3, -2, 8, 0)

	f := NewCropFilter(data.AxisY, nil, nil)
	lower, upper := f.Bounds(points)
	assert.Equal(t, -2.0, lower)
	assert.Equal(t, 8.0, upper)

	kept, err := f.Filter(points)
	require.NoError(t, err)
	assert.Equal(t, points, kept)
}

func TestCropFilterSingleBound(t *testing.T) {
	points := yPoints(3, -2, 8, 0)

	kept, err := NewCropFilter(data.AxisY, float(0), nil).Filter(points)
	require.NoError(t, err)
	assert.Equal(t, []data.Point{points[0], points[2], points[3]}, kept)

	kept, err = NewCropFilter(data.AxisZ, nil, float(-3)).Filter(points)
	require.NoError(t, err)
	assert.Equal(t, []data.Point{points[0], points[2]}, kept)
}

func TestCropFilterPreservesOrderAndInput(t *testing.T) {
	points := yPoints(9, 1, 7, 3, 5)
	original := append([]data.Point(nil), points...)

	kept, err := NewCropFilter(data.AxisY, float(3), float(7)).Filter(points)
	require.NoError(t, err)
	assert.Equal(t, []data.Point{points[2], points[3], points[4]}, kept)
	assert.Equal(t, original, points)
}

func TestCropFilterEmptyResult(t *testing.T) {
	_, err := NewCropFilter(data.AxisY, float(100), float(200)).Filter(yPoints(0, 5, 10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyResult))

	_, err = NewCropFilter(data.AxisY, nil, nil).Filter(nil)
	assert.True(t, errors.Is(err, ErrEmptyResult))
}

func TestApplyStopsAtFirstError(t *testing.T) {
	points := yPoints(0, 5, 10, 15)

	kept, err := Apply(points, NewCropFilter(data.AxisY, float(5), nil), NewSampler(1))
	require.NoError(t, err)
	assert.Len(t, kept, 3)

	_, err = Apply(points, NewCropFilter(data.AxisY, float(50), nil), NewSampler(0.5))
	assert.True(t, errors.Is(err, ErrEmptyResult))
}
