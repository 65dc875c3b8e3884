package genetic_tsp

import (
	"math"
	"strconv"
	"strings"
)

// PopulationMetrics holds aggregate tour lengths for one generation.
type PopulationMetrics struct {
	Size          int
	BestLength    float64
	MeanLength    float64
	WorstLength   float64
	DistinctTours int
}

// ComputeMetrics summarises a generation from its evaluated lengths and tours.
// Lengths and tours are index-aligned.
func ComputeMetrics(lengths []float64, tours []Tour) PopulationMetrics {
	m := PopulationMetrics{Size: len(lengths)}
	if len(lengths) == 0 {
		return m
	}

	m.BestLength = math.Inf(1)
	m.WorstLength = math.Inf(-1)
	sum := 0.0
	for _, l := range lengths {
		sum += l
		if l < m.BestLength {
			m.BestLength = l
		}
		if l > m.WorstLength {
			m.WorstLength = l
		}
	}
	m.MeanLength = sum / float64(len(lengths))
	m.DistinctTours = countDistinct(tours)
	return m
}

func countDistinct(tours []Tour) int {
	seen := make(map[string]struct{}, len(tours))
	var sb strings.Builder
	for _, t := range tours {
		sb.Reset()
		for _, p := range t {
			sb.WriteString(strconv.Itoa(p.ID))
			sb.WriteByte(',')
		}
		seen[sb.String()] = struct{}{}
	}
	return len(seen)
}
