package io

import (
	"github.com/ecopia-map/icocloud/internal/data"
)

// Contains the minimal data needed to format a contiguous run of markers. Offset is
// the global index of the first vertex the run emits, so every unit can be formatted
// independently of the others.
type WorkUnit struct {
	Index  int
	Points []data.Point
	Offset int

	// receives the formatted bytes, buffered so consumers never block on it
	Result chan []byte
}

func newWorkUnit(index int, points []data.Point, offset int) *WorkUnit {
	return &WorkUnit{
		Index:  index,
		Points: points,
		Offset: offset,
		Result: make(chan []byte, 1),
	}
}
