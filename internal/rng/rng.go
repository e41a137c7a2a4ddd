// Package rng provides the seeded random source used by maze generation.
package rng

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInvalidArgument is returned when a bound is not positive.
var ErrInvalidArgument = errors.New("invalid argument")

// Source is a deterministic integer generator. The same seed always yields
// the same sequence of values for the same sequence of calls.
//
// A Source is not safe for concurrent use.
type Source struct {
	seed int64
	r    *rand.Rand
}

// New creates a source seeded with seed.
func New(seed int64) *Source {
	return &Source{
		seed: seed,
		r:    rand.New(rand.NewSource(seed)),
	}
}

// NewFromTime creates a source seeded from the wall clock.
// This is the only non-deterministic way to obtain a Source.
func NewFromTime() *Source {
	return New(time.Now().UnixNano())
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Intn returns a uniformly distributed integer in [0, bound).
func (s *Source) Intn(bound int) (int, error) {
	if bound <= 0 {
		return 0, fmt.Errorf("rng: bound %d: %w", bound, ErrInvalidArgument)
	}
	return s.r.Intn(bound), nil
}

// MustIntn is like Intn but panics if bound is not positive.
func (s *Source) MustIntn(bound int) int {
	n, err := s.Intn(bound)
	if err != nil {
		panic(err)
	}
	return n
}
