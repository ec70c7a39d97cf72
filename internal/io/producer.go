package io

import (
	"sync"

	"github.com/ecopia-map/icocloud/internal/data"
)

type StandardProducer struct {
	chunkSize        int
	verticesPerPoint int
}

func NewStandardProducer(chunkSize int, verticesPerPoint int) *StandardProducer {
	if chunkSize < 1 {
		chunkSize = 1
	}
	return &StandardProducer{
		chunkSize:        chunkSize,
		verticesPerPoint: verticesPerPoint,
	}
}

// Splits points in WorkUnits and submits each of them both to the work channel, where
// consumers pick them up, and to the ordered channel, which preserves the point order
// for the writer. Closes both channels when all work is submitted.
func (p *StandardProducer) Produce(work chan<- *WorkUnit, ordered chan<- *WorkUnit, wg *sync.WaitGroup, points []data.Point) {
	for index, start := 0, 0; start < len(points); index, start = index+1, start+p.chunkSize {
		end := start + p.chunkSize
		if end > len(points) {
			end = len(points)
		}
		unit := newWorkUnit(index, points[start:end], start*p.verticesPerPoint)
		ordered <- unit
		work <- unit
	}
	close(work)
	close(ordered)
	wg.Done()
}
