package genetic_tsp

import (
	"math"
	"math/rand"
	"sort"
	test "testing"
)

func unitSquare() []Point {
	return []Point{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 1, Y: 0},
		{ID: 3, X: 1, Y: 1},
		{ID: 4, X: 0, Y: 1},
	}
}

// pentagon returns the corners of a regular pentagon with circumradius r,
// listed in perimeter order.
func pentagon(r float64) []Point {
	pts := make([]Point, 5)
	for i := range pts {
		th := 2 * math.Pi * float64(i) / 5
		pts[i] = Point{ID: i + 1, X: r * math.Cos(th), Y: r * math.Sin(th)}
	}
	return pts
}

func randomPoints(rng *rand.Rand, n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{ID: 100 + i, X: rng.Float64() * 1000, Y: rng.Float64() * 1000}
	}
	return pts
}

func sortedIDs(t Tour) []int {
	ids := t.IDs()
	sort.Ints(ids)
	return ids
}

func sameIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sameCycle reports whether two id sequences describe the same closed tour,
// allowing any rotation and either direction.
func sameCycle(a, b []int) bool {
	n := len(a)
	if n != len(b) {
		return false
	}
	if n == 0 {
		return true
	}
	start := -1
	for i, id := range b {
		if id == a[0] {
			start = i
			break
		}
	}
	if start == -1 {
		return false
	}
	forward, backward := true, true
	for i := 0; i < n; i++ {
		if a[i] != b[(start+i)%n] {
			forward = false
		}
		if a[i] != b[(start-i+n)%n] {
			backward = false
		}
	}
	return forward || backward
}

// scriptedRNG replays fixed values. It fails the test if the script runs dry.
type scriptedRNG struct {
	t      *test.T
	ints   []int
	floats []float64
}

func (s *scriptedRNG) Intn(n int) int {
	if len(s.ints) == 0 {
		s.t.Fatalf("scriptedRNG: Intn(%d) called with no ints left", n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scriptedRNG: scripted %d is outside [0, %d)", v, n)
	}
	return v
}

func (s *scriptedRNG) Float64() float64 {
	if len(s.floats) == 0 {
		s.t.Fatalf("scriptedRNG: Float64 called with no floats left")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRNG) Shuffle(n int, swap func(i, j int)) {}
