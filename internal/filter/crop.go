package filter

import (
	"github.com/ecopia-map/icocloud/internal/data"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// CropFilter keeps the points whose coordinate along Axis lies in [Lower, Upper].
// A nil bound defaults to the observed extent of the axis.
type CropFilter struct {
	Axis  data.Axis
	Lower *float64
	Upper *float64
}

func NewCropFilter(axis data.Axis, lower, upper *float64) *CropFilter {
	return &CropFilter{
		Axis:  axis,
		Lower: lower,
		Upper: upper,
	}
}

// Bounds resolves the inclusive range applied to points.
func (f *CropFilter) Bounds(points []data.Point) (lower, upper float64) {
	lower, upper, _ = data.Extent(points, f.Axis)
	if f.Lower != nil {
		lower = *f.Lower
	}
	if f.Upper != nil {
		upper = *f.Upper
	}
	return lower, upper
}

func (f *CropFilter) Filter(points []data.Point) ([]data.Point, error) {
	lower, upper := f.Bounds(points)

	kept := lo.Filter(points, func(p data.Point, _ int) bool {
		v := data.Component(p, f.Axis)
		return lower <= v && v <= upper
	})

	if len(kept) == 0 {
		return nil, errors.Wrapf(ErrEmptyResult, "no point with %s in [%g, %g]", f.Axis, lower, upper)
	}
	return kept, nil
}
