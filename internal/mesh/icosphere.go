package mesh

import (
	"math"

	"github.com/golang/geo/r3"
)

const (
	// IcosphereVertices is the number of vertices emitted per marker.
	IcosphereVertices = 12
	// IcosphereFaces is the number of triangles emitted per marker.
	IcosphereFaces = 20
)

// Icosphere is a unit icosahedron: vertices on the unit sphere and triangles indexing
// them, zero based.
type Icosphere struct {
	Vertices [IcosphereVertices]r3.Vector
	Faces    [IcosphereFaces][3]int
}

var template = newIcosphere()

// Template returns the shared icosahedron. Arrays are copied, so callers cannot alter it.
func Template() Icosphere {
	return template
}

func newIcosphere() Icosphere {
	t := (1 + math.Sqrt(5)) / 2

	raw := [IcosphereVertices]r3.Vector{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	}

	ico := Icosphere{
		Faces: [IcosphereFaces][3]int{
			{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
			{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
			{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
			{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
		},
	}
	for i, v := range raw {
		// divide component-wise, multiplying by the reciprocal rounds differently
		length := v.Norm()
		ico.Vertices[i] = r3.Vector{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
	}
	return ico
}
