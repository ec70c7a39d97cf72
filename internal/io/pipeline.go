package io

import (
	"sync"

	"github.com/ecopia-map/icocloud/internal/data"
)

// Sink receives formatted chunks in point order.
type Sink func(unit *WorkUnit, chunk []byte) error

// RunOrdered formats points with numConsumers goroutines and hands the chunks to sink in
// the order of points. After the first sink error the remaining chunks are drained
// without being passed to sink, and that error is returned.
func RunOrdered(points []data.Point, chunkSize, verticesPerPoint, numConsumers int, formatter Formatter, sink Sink) error {
	if numConsumers < 1 {
		numConsumers = 1
	}

	// buffers 5 times greater than the number of consumers
	workChannel := make(chan *WorkUnit, numConsumers*5)
	orderedChannel := make(chan *WorkUnit, numConsumers*5)

	var waitGroup sync.WaitGroup

	waitGroup.Add(1)
	producer := NewStandardProducer(chunkSize, verticesPerPoint)
	go producer.Produce(workChannel, orderedChannel, &waitGroup, points)

	for i := 0; i < numConsumers; i++ {
		waitGroup.Add(1)
		consumer := NewStandardConsumer(formatter)
		go consumer.Consume(workChannel, &waitGroup)
	}

	var sinkErr error
	for unit := range orderedChannel {
		chunk := <-unit.Result
		if sinkErr != nil {
			continue
		}
		sinkErr = sink(unit, chunk)
	}

	waitGroup.Wait()
	return sinkErr
}
