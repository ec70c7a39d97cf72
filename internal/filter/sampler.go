package filter

import (
	"math"
	"math/rand/v2"

	"github.com/ecopia-map/icocloud/internal/data"
	"github.com/pkg/errors"
)

// Sampler keeps a uniformly drawn subset of KeepRatio of the points, without replacement.
type Sampler struct {
	KeepRatio float64
	rnd       *rand.Rand
}

// NewSampler builds a sampler drawing from the process-wide random source.
func NewSampler(keepRatio float64) *Sampler {
	return &Sampler{KeepRatio: keepRatio}
}

// NewSeededSampler builds a sampler whose draws are reproducible for a given seed.
func NewSeededSampler(keepRatio float64, seed uint64) *Sampler {
	return &Sampler{
		KeepRatio: keepRatio,
		rnd:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// TargetCount is the number of points kept out of count: floor(count*ratio), at least 1.
func TargetCount(count int, keepRatio float64) int {
	if keepRatio >= 1 {
		return count
	}
	target := int(math.Floor(float64(count) * keepRatio))
	if target < 1 {
		target = 1
	}
	return target
}

// Filter fails with ErrEmptyResult on empty input and returns points unchanged when
// KeepRatio is at least 1. Otherwise it returns a new slice of TargetCount points
// picked by a partial Fisher-Yates shuffle; their order is not the input order.
func (s *Sampler) Filter(points []data.Point) ([]data.Point, error) {
	n := len(points)
	if n == 0 {
		return nil, errors.Wrap(ErrEmptyResult, "nothing to sample from")
	}
	if s.KeepRatio >= 1 {
		return points, nil
	}
	if !(s.KeepRatio > 0) {
		return nil, errors.Errorf("keep ratio %v outside (0, 1]", s.KeepRatio)
	}

	target := TargetCount(n, s.KeepRatio)

	pool := make([]data.Point, n)
	copy(pool, points)
	for i := 0; i < target; i++ {
		j := i + s.intN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:target:target], nil
}

func (s *Sampler) intN(n int) int {
	if s.rnd != nil {
		return s.rnd.IntN(n)
	}
	return rand.IntN(n)
}
