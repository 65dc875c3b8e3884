package genetic_tsp

// Reproducer builds children: order crossover (OX1) followed by a chance of a
// single swap mutation.
type Reproducer struct {
	MutationChance float64
	rng            RNG
}

func NewReproducer(mutationChance float64, rng RNG) *Reproducer {
	return &Reproducer{
		MutationChance: mutationChance,
		rng:            rng,
	}
}

// Breed is one full reproduction step for a pair of parents.
func (r *Reproducer) Breed(a, b Tour) Tour {
	return r.Mutate(r.Crossover(a, b))
}

// Crossover picks cut points start in [0, N-2] and end in [start+1, N-1] and
// hands off to CrossoverAt. Single point tours have no cut points and come
// back as a copy of a.
func (r *Reproducer) Crossover(a, b Tour) Tour {
	n := len(a)
	if n < 2 {
		return a.Clone()
	}
	start := r.rng.Intn(n - 1)
	end := start + 1 + r.rng.Intn(n-1-start)
	return CrossoverAt(a, b, start, end)
}

// CrossoverAt copies a[start..end] (inclusive) into the same positions of the
// child and fills the remaining slots, left to right, with the points of b
// that are not in that block, in b's order.
func CrossoverAt(a, b Tour, start, end int) Tour {
	child := make(Tour, len(a))
	inBlock := make(map[int]bool, end-start+1)
	for i := start; i <= end; i++ {
		child[i] = a[i]
		inBlock[a[i].ID] = true
	}

	pos := 0
	for _, p := range b {
		if inBlock[p.ID] {
			continue
		}
		if pos == start {
			pos = end + 1
		}
		child[pos] = p
		pos++
	}
	return child
}

// Mutate returns a copy of t. With probability MutationChance two positions
// are drawn with replacement and swapped; drawing the same position twice is
// a no-op.
func (r *Reproducer) Mutate(t Tour) Tour {
	out := t.Clone()
	if len(out) == 0 || r.rng.Float64() >= r.MutationChance {
		return out
	}
	i := r.rng.Intn(len(out))
	j := r.rng.Intn(len(out))
	out[i], out[j] = out[j], out[i]
	return out
}
