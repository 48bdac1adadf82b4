// Package random provides the injectable random source shared by every
// probabilistic gameplay component.
//
// A Source is stateful and not safe for concurrent use. The simulation is
// single-threaded, so one Source is shared by the session, the spawner, the
// NPC behaviors, the reaction engine and the social simulator.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is the random number generator consumed by gameplay code.
type Source interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// Range returns a value in [min,max). It returns min when max <= min.
	Range(min, max float64) float64
	// IntRange returns a value in [min,max], inclusive on both ends.
	// It returns min when max < min.
	IntRange(min, max int) int
	// Intn returns a value in [0,n). It returns 0 when n <= 0.
	Intn(n int) int
}

// Rand is a Source backed by math/rand.
type Rand struct {
	rng  *rand.Rand
	seed int64
}

// New returns a deterministic Source for the given seed.
func New(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// NewSeeded draws a seed from crypto/rand when seed is 0, otherwise uses it as is.
func NewSeeded(seed int64) (*Rand, error) {
	if seed != 0 {
		return New(seed), nil
	}
	s, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return New(s), nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Seed returns the seed the source was created with.
func (r *Rand) Seed() int64 { return r.seed }

func (r *Rand) Float64() float64 { return r.rng.Float64() }

func (r *Rand) Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.rng.Float64()*(max-min)
}

func (r *Rand) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}
