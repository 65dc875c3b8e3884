package genetic_tsp

// Processor turns one scored generation into the next. Parents are drawn
// against the finished fitness map of the current generation only.
type Processor struct {
	Selector   *Selector
	Reproducer *Reproducer
}

func NewProcessor(selector *Selector, reproducer *Reproducer) *Processor {
	return &Processor{
		Selector:   selector,
		Reproducer: reproducer,
	}
}

// NextGeneration builds a population of the same size as pop. Each child
// gets two independent picks, which may land on the same parent.
func (p *Processor) NextGeneration(pop *Population, fm FitnessMap) *Population {
	next := &Population{Tours: make([]Tour, 0, pop.Size())}
	for i := 0; i < pop.Size(); i++ {
		parent1 := pop.Tours[p.Selector.Pick(fm)]
		parent2 := pop.Tours[p.Selector.Pick(fm)]
		next.Tours = append(next.Tours, p.Reproducer.Breed(parent1, parent2))
	}
	return next
}
