package io

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/ecopia-map/icocloud/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// renders "<offset>:<x>" per point
type offsetFormatter struct{}

func (offsetFormatter) Format(dst []byte, unit *WorkUnit) []byte {
	for i, p := range unit.Points {
		dst = strconv.AppendInt(dst, int64(unit.Offset+i*2), 10)
		dst = append(dst, ':')
		dst = strconv.AppendFloat(dst, p.X, 'f', -1, 64)
		dst = append(dst, ' ')
	}
	return dst
}

func linePoints(n int) []data.Point {
	points := make([]data.Point, n)
	for i := range points {
		points[i] = data.NewPoint(float64(i), 0, 0)
	}
	return points
}

func TestProducerSplitsInChunks(t *testing.T) {
	work := make(chan *WorkUnit, 10)
	ordered := make(chan *WorkUnit, 10)
	var wg sync.WaitGroup
	wg.Add(1)

	NewStandardProducer(4, 12).Produce(work, ordered, &wg, linePoints(10))
	wg.Wait()

	var units []*WorkUnit
	for unit := range ordered {
		units = append(units, unit)
	}
	require.Len(t, units, 3)
	assert.Equal(t, []int{0, 48, 96}, []int{units[0].Offset, units[1].Offset, units[2].Offset})
	assert.Len(t, units[2].Points, 2)
	assert.Equal(t, 2, units[2].Index)

	n := 0
	for range work {
		n++
	}
	assert.Equal(t, 3, n)
}

func TestRunOrderedKeepsPointOrder(t *testing.T) {
	points := linePoints(101)

	var want []byte
	want = offsetFormatter{}.Format(want, &WorkUnit{Points: points})

	for _, consumers := range []int{1, 2, 7} {
		var got []byte
		var indices []int
		err := RunOrdered(points, 3, 2, consumers, offsetFormatter{}, func(unit *WorkUnit, chunk []byte) error {
			indices = append(indices, unit.Index)
			got = append(got, chunk...)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), "consumers %d", consumers)
		for i, index := range indices {
			assert.Equal(t, i, index)
		}
	}
}

func TestRunOrderedStopsSinkAfterError(t *testing.T) {
	calls := 0
	err := RunOrdered(linePoints(50), 5, 1, 4, offsetFormatter{}, func(unit *WorkUnit, chunk []byte) error {
		calls++
		if unit.Index == 2 {
			return errors.New("sink closed")
		}
		return nil
	})
	require.EqualError(t, err, "sink closed")
	assert.Equal(t, 3, calls)
}

func TestRunOrderedNoPoints(t *testing.T) {
	err := RunOrdered(nil, 5, 12, 3, offsetFormatter{}, func(unit *WorkUnit, chunk []byte) error {
		t.Fatal("sink called without points")
		return nil
	})
	assert.NoError(t, err)
}
