package genetic_tsp

import (
	"math"
	test "testing"
)

func TestSelectorPicksByRunningSum(t *test.T) {
	fm := FitnessMap{1, 1, 1}
	cases := []struct {
		draw     float64
		expected int
	}{
		{0, 0},
		{0.3, 0},
		{0.34, 1},
		{0.5, 1},
		{0.9, 2},
	}
	for _, c := range cases {
		s := NewSelector(&scriptedRNG{t: t, floats: []float64{c.draw}})
		if got := s.Pick(fm); got != c.expected {
			t.Errorf("Pick() with draw %v = %d, expected %d", c.draw, got, c.expected)
		}
	}
}

func TestSelectorNeverPicksZeroFitness(t *test.T) {
	fm := FitnessMap{0, 1, 0}
	for _, draw := range []float64{0, 0.25, 0.5, 0.999} {
		s := NewSelector(&scriptedRNG{t: t, floats: []float64{draw}})
		if got := s.Pick(fm); got != 1 {
			t.Errorf("Pick() with draw %v = %d, expected 1", draw, got)
		}
	}
}

func TestSelectorClampsToLastIndex(t *test.T) {
	// The running sum never passes the draw; the walk falls off the end.
	fm := FitnessMap{0, 0, 0}
	s := NewSelector(&scriptedRNG{t: t, floats: []float64{0.5}})
	if got := s.Pick(fm); got != 2 {
		t.Errorf("Pick() = %d, expected the last index 2", got)
	}
}

func TestSelectorDistribution(t *test.T) {
	s := NewSelector(NewRNG(2024))
	fm := FitnessMap{1, 3}
	const draws = 40000
	counts := make([]int, len(fm))
	for i := 0; i < draws; i++ {
		idx := s.Pick(fm)
		if idx < 0 || idx >= len(fm) {
			t.Fatalf("Pick() = %d is out of range", idx)
		}
		counts[idx]++
	}
	share := float64(counts[1]) / draws
	if math.Abs(share-0.75) > 0.02 {
		t.Errorf("Index 1 drawn %.3f of the time, expected about 0.75", share)
	}
}
