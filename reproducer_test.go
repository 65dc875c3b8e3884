package genetic_tsp

import (
	test "testing"
)

func lineTour(ids ...int) Tour {
	t := make(Tour, len(ids))
	for i, id := range ids {
		t[i] = Point{ID: id, X: float64(id), Y: 0}
	}
	return t
}

func TestCrossoverAt(t *test.T) {
	a := lineTour(1, 2, 3, 4, 5, 6, 7, 8)
	b := lineTour(8, 6, 4, 2, 7, 5, 3, 1)

	child := CrossoverAt(a, b, 2, 4)
	expected := []int{8, 6, 3, 4, 5, 2, 7, 1}
	if !sameIDs(child.IDs(), expected) {
		t.Errorf("CrossoverAt() = %v, expected %v", child.IDs(), expected)
	}
}

func TestCrossoverAtFullBlock(t *test.T) {
	a := lineTour(1, 2, 3)
	b := lineTour(3, 2, 1)
	if child := CrossoverAt(a, b, 0, 2); !sameIDs(child.IDs(), a.IDs()) {
		t.Errorf("A block covering the tour should reproduce parent A, got %v", child.IDs())
	}
}

func TestCrossoverUsesDrawnCutPoints(t *test.T) {
	a := lineTour(1, 2, 3, 4, 5)
	b := lineTour(5, 4, 3, 2, 1)
	// start = 0, end = 0 + 1 + 1 = 2
	r := NewReproducer(0, &scriptedRNG{t: t, ints: []int{0, 1}})

	child := r.Crossover(a, b)
	expected := []int{1, 2, 3, 5, 4}
	if !sameIDs(child.IDs(), expected) {
		t.Errorf("Crossover() = %v, expected %v", child.IDs(), expected)
	}
}

func TestCrossoverProducesPermutations(t *test.T) {
	rng := NewRNG(99)
	points := randomPoints(rng, 20)
	r := NewReproducer(0, rng)

	for i := 0; i < 500; i++ {
		a := Tour(points).Clone()
		b := Tour(points).Clone()
		rng.Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
		rng.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })

		child := r.Crossover(a, b)
		if err := ValidatePermutation(child, points); err != nil {
			t.Fatalf("Iteration %d: child is not a permutation: %v", i, err)
		}
	}
}

func TestCrossoverPreservesBlock(t *test.T) {
	a := lineTour(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	b := lineTour(10, 9, 8, 7, 6, 5, 4, 3, 2, 1)
	for start := 0; start < len(a)-1; start++ {
		for end := start + 1; end < len(a); end++ {
			child := CrossoverAt(a, b, start, end)
			for i := start; i <= end; i++ {
				if child[i].ID != a[i].ID {
					t.Fatalf("[%d, %d]: child[%d] = %d, expected %d", start, end, i, child[i].ID, a[i].ID)
				}
			}
			if !sameIDs(sortedIDs(child), sortedIDs(a)) {
				t.Fatalf("[%d, %d]: child %v is not a permutation", start, end, child.IDs())
			}
		}
	}
}

func TestCrossoverSinglePoint(t *test.T) {
	a := lineTour(4)
	r := NewReproducer(1, &scriptedRNG{t: t})
	if child := r.Crossover(a, a); len(child) != 1 || child[0].ID != 4 {
		t.Errorf("Crossover() of a single point = %v", child.IDs())
	}
}

func TestMutateNeverWithZeroChance(t *test.T) {
	r := NewReproducer(0, NewRNG(5))
	orig := lineTour(1, 2, 3, 4, 5, 6)
	for i := 0; i < 100; i++ {
		out := r.Mutate(orig)
		if !sameIDs(out.IDs(), orig.IDs()) {
			t.Fatalf("Mutate() with chance 0 changed the tour: %v", out.IDs())
		}
		out[0] = Point{ID: 42}
		if orig[0].ID != 1 {
			t.Fatalf("Mutate() returned an alias of its input")
		}
	}
}

func TestMutateSwapsTwoPositions(t *test.T) {
	r := NewReproducer(1, &scriptedRNG{t: t, floats: []float64{0.5}, ints: []int{0, 3}})
	orig := lineTour(1, 2, 3, 4, 5)
	out := r.Mutate(orig)
	expected := []int{4, 2, 3, 1, 5}
	if !sameIDs(out.IDs(), expected) {
		t.Errorf("Mutate() = %v, expected %v", out.IDs(), expected)
	}
	if orig[0].ID != 1 {
		t.Errorf("Mutate() changed its input")
	}
}

func TestMutateSamePositionIsNoOp(t *test.T) {
	r := NewReproducer(1, &scriptedRNG{t: t, floats: []float64{0}, ints: []int{2, 2}})
	orig := lineTour(1, 2, 3)
	if out := r.Mutate(orig); !sameIDs(out.IDs(), orig.IDs()) {
		t.Errorf("Mutate() = %v, expected no change", out.IDs())
	}
}

func TestMutateSkipsAboveChance(t *test.T) {
	// A draw equal to the chance does not mutate.
	r := NewReproducer(0.25, &scriptedRNG{t: t, floats: []float64{0.25}})
	orig := lineTour(1, 2, 3)
	if out := r.Mutate(orig); !sameIDs(out.IDs(), orig.IDs()) {
		t.Errorf("Mutate() = %v, expected no change", out.IDs())
	}
}

func TestBreedOfIdenticalParents(t *test.T) {
	rng := NewRNG(8)
	points := randomPoints(rng, 12)
	parent := Tour(points)
	r := NewReproducer(0, rng)
	for i := 0; i < 50; i++ {
		if child := r.Breed(parent, parent); !sameIDs(child.IDs(), parent.IDs()) {
			t.Fatalf("Breed() of identical parents without mutation = %v", child.IDs())
		}
	}
}
