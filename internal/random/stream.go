// Package random provides the seeded pseudo-random streams shared by every
// field and transformer in a generation run.
//
// All consumers draw from one primary Stream in plan order, so a fixed seed
// reproduces a dataset exactly. Distribution samplers and the fake-value
// provider use secondary sources derived from the same seed.
package random

import (
	"fmt"
	"math/rand"
	"time"
)

// Stream is a seeded pseudo-random source.
//
// Thread-safety: not safe for concurrent use. Row generation is strictly
// sequential and owns the stream.
type Stream struct {
	seed int64
	r    *rand.Rand
}

// New creates a stream seeded with seed.
func New(seed int64) *Stream {
	return &Stream{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// NewUnseeded creates a stream seeded from the wall clock.
func NewUnseeded() *Stream {
	return New(time.Now().UnixNano())
}

// Seed returns the seed the stream was created with or last reseeded to.
func (s *Stream) Seed() int64 {
	return s.seed
}

// Reseed restarts the stream from seed.
func (s *Stream) Reseed(seed int64) {
	s.seed = seed
	s.r = rand.New(rand.NewSource(seed))
}

// Float64 returns a uniform draw in [0, 1).
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// Intn returns a uniform draw in [0, n). Panics if n <= 0.
func (s *Stream) Intn(n int) int {
	return s.r.Intn(n)
}

// IntRange returns a uniform draw in the half-open range [min, max).
func (s *Stream) IntRange(min, max int) (int, error) {
	if max <= min {
		return 0, fmt.Errorf("empty range for randrange (%d, %d)", min, max)
	}
	return min + s.r.Intn(max-min), nil
}

// Read fills p with pseudo-random bytes, making the stream usable as an
// io.Reader for seeded UUID generation.
func (s *Stream) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Derive returns a seed for a secondary stream. Distinct salts give
// independent streams; the result is never zero.
func Derive(seed int64, salt int64) int64 {
	mixed := uint64(seed)*0x9E3779B97F4A7C15 ^ uint64(salt)*0xBF58476D1CE4E5B9
	mixed ^= mixed >> 31
	return int64(mixed | 1)
}
