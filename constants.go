package genetic_tsp

import (
	"math"
	"math/rand"
	"time"
)

const (
	DEBUG = false

	// DefaultMutationChance is the probability that a child gets one swap.
	DefaultMutationChance = 0.25

	// DegenerateFitness stands in for 1/0 when a valid tour has zero length
	// (a single point, or every point at the same coordinates).
	DegenerateFitness = math.MaxFloat32
)

// RNG is the randomness the engine consumes. *rand.Rand satisfies it; tests
// can substitute scripted sources.
type RNG interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRNG returns a seeded source. If seed is 0, the current time is used
// (non-deterministic). A non-zero seed gives reproducible runs.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
