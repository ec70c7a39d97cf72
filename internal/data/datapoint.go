package data

import (
	"math"

	"github.com/golang/geo/r3"
)

// Point is a decoded point cloud position, always held in double precision
// regardless of the numeric kind it was stored with.
type Point = r3.Vector

// Axis identifies a coordinate component of a Point.
type Axis int

const (
	AxisX Axis = 0
	AxisY Axis = 1
	AxisZ Axis = 2
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// NewPoint builds a Point from its three coordinates
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// IsFinite reports whether no coordinate of p is NaN or infinite.
func IsFinite(p Point) bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Component returns the coordinate of p along the given axis.
func Component(p Point, axis Axis) float64 {
	switch axis {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// Extent returns the min and max of the given axis over all points.
// ok is false when points is empty.
func Extent(points []Point, axis Axis) (min, max float64, ok bool) {
	if len(points) == 0 {
		return 0, 0, false
	}
	min = Component(points[0], axis)
	max = min
	for _, p := range points[1:] {
		v := Component(p, axis)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, true
}
