package genetic_tsp

// Selector does roulette-wheel sampling: an index is drawn with probability
// proportional to its share of the total fitness.
type Selector struct {
	rng RNG
}

func NewSelector(rng RNG) *Selector {
	return &Selector{rng: rng}
}

// Pick walks fm in index order until the running sum passes a uniform draw on
// [0, total). Rounding can leave the walk short of the draw; the last index
// absorbs that case.
func (s *Selector) Pick(fm FitnessMap) int {
	last := len(fm) - 1
	r := s.rng.Float64() * fm.Total()
	running := 0.0
	for i, f := range fm {
		running += f
		if running > r {
			return i
		}
	}
	return last
}
