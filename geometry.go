package genetic_tsp

import "math"

// Point is a labelled city. Only X and Y take part in distances; ID is what
// gets written out.
type Point struct {
	ID int
	X  float64
	Y  float64
}

func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// TourLength sums the edges of t as a closed cycle, last point back to the
// first. A single point has no edges and length 0.
func TourLength(t Tour) float64 {
	n := len(t)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n-1; i++ {
		total += Distance(t[i], t[i+1])
	}
	return total + Distance(t[n-1], t[0])
}
