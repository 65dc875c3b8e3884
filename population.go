package genetic_tsp

import "fmt"

type Population struct {
	Tours []Tour
}

// NewPopulation builds size random tours over points. Every member starts as
// its own copy of points and is shuffled after copying, so members never
// share backing arrays and the caller's slice keeps its order.
func NewPopulation(points []Point, size int, rng RNG) (*Population, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: population size must be at least 1, got %d", ErrConfiguration, size)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points to tour", ErrConfiguration)
	}

	tours := make([]Tour, size)
	for i := range tours {
		t := Tour(points).Clone()
		rng.Shuffle(len(t), func(a, b int) { t[a], t[b] = t[b], t[a] })
		tours[i] = t
	}
	return &Population{Tours: tours}, nil
}

func (p *Population) Size() int {
	return len(p.Tours)
}
