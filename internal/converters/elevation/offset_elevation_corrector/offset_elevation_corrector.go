package offset_elevation_corrector

import (
	"github.com/ecopia-map/icocloud/internal/converters"
	"github.com/ecopia-map/icocloud/internal/data"
)

// OffsetElevationCorrector shifts the points produced by another converter along its
// up axis.
type OffsetElevationCorrector struct {
	converters.CoordinateConverter
	Offset float64
}

// NewOffsetElevationCorrector wraps converter. A zero offset returns converter itself.
func NewOffsetElevationCorrector(converter converters.CoordinateConverter, offset float64) converters.CoordinateConverter {
	if offset == 0 {
		return converter
	}
	return &OffsetElevationCorrector{
		CoordinateConverter: converter,
		Offset:              offset,
	}
}

func (c *OffsetElevationCorrector) Convert(p data.Point) data.Point {
	p = c.CoordinateConverter.Convert(p)
	switch c.UpAxis() {
	case data.AxisX:
		p.X += c.Offset
	case data.AxisY:
		p.Y += c.Offset
	default:
		p.Z += c.Offset
	}
	return p
}
