package filter

import (
	"github.com/ecopia-map/icocloud/internal/data"
	"github.com/pkg/errors"
)

// ErrEmptyResult is returned when a filter leaves no point to synthesize.
var ErrEmptyResult = errors.New("empty result")

// Filter is a stage that reduces a point sequence. Implementations never modify
// the input slice.
type Filter interface {
	Filter(points []data.Point) ([]data.Point, error)
}

// Apply runs the filters in order, stopping at the first error.
func Apply(points []data.Point, filters ...Filter) ([]data.Point, error) {
	var err error
	for _, f := range filters {
		if points, err = f.Filter(points); err != nil {
			return nil, err
		}
	}
	return points, nil
}
