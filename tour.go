package genetic_tsp

import "fmt"

// Tour is one candidate solution: every input point exactly once, read as a
// cycle.
type Tour []Point

// Clone returns an independently owned copy. Children and the global best
// never alias a tour from another generation.
func (t Tour) Clone() Tour {
	if t == nil {
		return nil
	}
	out := make(Tour, len(t))
	copy(out, t)
	return out
}

// IDs lists the point ids in visiting order.
func (t Tour) IDs() []int {
	ids := make([]int, len(t))
	for i, p := range t {
		ids[i] = p.ID
	}
	return ids
}

func (t Tour) Length() float64 {
	return TourLength(t)
}

// pointIndex maps a point id to its position in the original input.
type pointIndex map[int]int

func newPointIndex(points []Point) pointIndex {
	idx := make(pointIndex, len(points))
	for i, p := range points {
		idx[p.ID] = i
	}
	return idx
}

// ValidatePermutation reports whether t visits every id of the reference set
// exactly once.
func ValidatePermutation(t Tour, points []Point) error {
	return newPointIndex(points).validate(t)
}

func (idx pointIndex) validate(t Tour) error {
	if len(t) != len(idx) {
		return fmt.Errorf("%w: tour has %d points, expected %d", ErrInvariantViolation, len(t), len(idx))
	}
	seen := make([]bool, len(idx))
	for pos, p := range t {
		i, ok := idx[p.ID]
		if !ok {
			return fmt.Errorf("%w: unknown point %d at position %d", ErrInvariantViolation, p.ID, pos)
		}
		if seen[i] {
			return fmt.Errorf("%w: point %d visited twice", ErrInvariantViolation, p.ID)
		}
		seen[i] = true
	}
	return nil
}
