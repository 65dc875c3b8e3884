package genetic_tsp

import (
	"fmt"
	"math"
)

// An Evaluator scores whole generations. It owns the reference point set so
// that every tour it sees can be checked against it before it is trusted.
type Evaluator struct {
	index pointIndex
}

func NewEvaluator(points []Point) *Evaluator {
	return &Evaluator{index: newPointIndex(points)}
}

// Evaluation is the outcome of scoring one generation.
type Evaluation struct {
	Fitness  FitnessMap
	Lengths  []float64
	BestIdx  int
	Improved bool
}

// Evaluate scores every tour of pop and offers the generation's shortest tour
// to best. The first tour with the minimum length represents the generation;
// best only moves on a strictly shorter length.
//
// A tour that is not a permutation of the reference points aborts the
// evaluation with ErrInvariantViolation.
func (e *Evaluator) Evaluate(pop *Population, best *GlobalBest, generation int) (*Evaluation, error) {
	if pop == nil || pop.Size() == 0 {
		return nil, fmt.Errorf("%w: empty population in generation %d", ErrInvariantViolation, generation)
	}

	eval := &Evaluation{
		Fitness: make(FitnessMap, pop.Size()),
		Lengths: make([]float64, pop.Size()),
	}

	for i, t := range pop.Tours {
		if err := e.index.validate(t); err != nil {
			return nil, fmt.Errorf("generation %d, tour %d: %w", generation, i, err)
		}
		length := TourLength(t)
		if math.IsNaN(length) || math.IsInf(length, 0) || length < 0 {
			return nil, fmt.Errorf("%w: generation %d, tour %d has length %v", ErrInvariantViolation, generation, i, length)
		}
		eval.Lengths[i] = length
		eval.Fitness[i] = Fitness(length)
		if length < eval.Lengths[eval.BestIdx] {
			eval.BestIdx = i
		}
	}

	eval.Improved = best.offer(eval.Lengths[eval.BestIdx], pop.Tours[eval.BestIdx], generation)
	return eval, nil
}
