package io

import (
	"sync"
)

// Formatter renders the markers of a WorkUnit, appending to dst.
type Formatter interface {
	Format(dst []byte, unit *WorkUnit) []byte
}

type StandardConsumer struct {
	formatter Formatter
}

func NewStandardConsumer(formatter Formatter) *StandardConsumer {
	return &StandardConsumer{
		formatter: formatter,
	}
}

// Continually consumes WorkUnits submitted to a work channel, publishing the formatted
// bytes on each unit's Result channel. Continues working until the work channel is closed.
func (c *StandardConsumer) Consume(workchan <-chan *WorkUnit, waitGroup *sync.WaitGroup) {
	for work := range workchan {
		work.Result <- c.formatter.Format(nil, work)
	}

	// signal waitgroup finished work
	waitGroup.Done()
}
