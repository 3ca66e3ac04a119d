package matrix

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Default fill range for random operands, inclusive on both ends.
const (
	DefaultMin int64 = 0
	DefaultMax int64 = 10
)

// Generator fills matrices with integers drawn uniformly from [Min, Max].
// A Generator is not safe for concurrent use.
type Generator struct {
	min, max int64
	seed     uint64
	rng      *rand.Rand
}

// NewGenerator returns a generator for the closed range [min, max].
// A zero seed selects a time-based seed; Seed reports the one in use.
func NewGenerator(min, max int64, seed uint64) (*Generator, error) {
	if min > max {
		return nil, fmt.Errorf("%w: min %d > max %d", ErrInvalidRange, min, max)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		min:  min,
		max:  max,
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Seed returns the seed the generator was built with.
func (g *Generator) Seed() uint64 { return g.seed }

// Range returns the configured inclusive bounds.
func (g *Generator) Range() (min, max int64) { return g.min, g.max }

// Next returns one value from the configured range.
func (g *Generator) Next() int64 {
	span := uint64(g.max - g.min)
	if span == ^uint64(0) {
		return int64(g.rng.Uint64())
	}
	return g.min + int64(g.rng.Uint64N(span+1))
}

// Random returns a new matrix of the given order filled from the generator.
func (g *Generator) Random(order int) (*Matrix, error) {
	m, err := New(order)
	if err != nil {
		return nil, err
	}
	for i := range m.data {
		m.data[i] = g.Next()
	}
	return m, nil
}

// Pair returns two independently filled matrices of the same order.
func (g *Generator) Pair(order int) (a, b *Matrix, err error) {
	if a, err = g.Random(order); err != nil {
		return nil, nil, err
	}
	if b, err = g.Random(order); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
