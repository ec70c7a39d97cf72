package converters

import (
	"github.com/ecopia-map/icocloud/internal/data"
	"github.com/pkg/errors"
)

// ErrNonFiniteCoordinate is returned when a converted point holds a NaN or infinite coordinate.
var ErrNonFiniteCoordinate = errors.New("non-finite coordinate")

// CoordinateConverter remaps point coordinates into the frame expected by the output.
type CoordinateConverter interface {
	// Converts a single point
	Convert(p data.Point) data.Point
	// Axis that points up once the conversion is applied
	UpAxis() data.Axis
	Preset() Preset
}

// ConvertAll returns a new slice holding every point converted. It fails on the first
// converted point that cannot be written out as a finite number.
func ConvertAll(converter CoordinateConverter, points []data.Point) ([]data.Point, error) {
	out := make([]data.Point, len(points))
	for i, p := range points {
		c := converter.Convert(p)
		if !data.IsFinite(c) {
			return nil, errors.Wrapf(ErrNonFiniteCoordinate, "point %d (%v, %v, %v)", i, p.X, p.Y, p.Z)
		}
		out[i] = c
	}
	return out, nil
}
