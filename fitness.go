package genetic_tsp

// FitnessMap is index-aligned with Population.Tours: FitnessMap[i] scores
// Tours[i]. Higher is better.
type FitnessMap []float64

// Fitness is the reciprocal of a tour length. Zero-length tours are only
// legal when every point coincides; they get DegenerateFitness instead of a
// division by zero.
func Fitness(length float64) float64 {
	if length == 0 {
		return DegenerateFitness
	}
	return 1 / length
}

func (fm FitnessMap) Total() float64 {
	total := 0.0
	for _, f := range fm {
		total += f
	}
	return total
}

// GlobalBest is the shortest tour seen so far in a run. The zero value is
// "no record yet".
type GlobalBest struct {
	Length     float64
	Tour       Tour
	Generation int
	set        bool
}

func (gb *GlobalBest) IsSet() bool {
	return gb.set
}

// offer replaces the record only if it is unset or length is strictly
// shorter, so ties keep the earlier tour. It reports whether it replaced.
func (gb *GlobalBest) offer(length float64, t Tour, generation int) bool {
	if gb.set && length >= gb.Length {
		return false
	}
	gb.Length = length
	gb.Tour = t.Clone()
	gb.Generation = generation
	gb.set = true
	return true
}
