package genetic_tsp

import "context"

// GenerationReport is what observers see after each evaluated generation.
// Generation 0 is the random starting population.
type GenerationReport struct {
	Generation int
	Metrics    PopulationMetrics
	BestLength float64
	Improved   bool
	Population *Population
}

// A GenerationObserver is called synchronously after every generation. A
// returned error stops the run.
type GenerationObserver interface {
	ObserveGeneration(ctx context.Context, report *GenerationReport) error
}

// ObserverFunc adapts a plain function to GenerationObserver.
type ObserverFunc func(ctx context.Context, report *GenerationReport) error

func (f ObserverFunc) ObserveGeneration(ctx context.Context, report *GenerationReport) error {
	return f(ctx, report)
}
