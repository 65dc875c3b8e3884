package genetic_tsp

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

type EngineConfig struct {
	PopulationSize int
	Generations    int
	MutationChance float64
	// LogInterval is how many generations pass between progress lines at
	// info level. Zero disables them.
	LogInterval int
}

func (c *EngineConfig) validate() error {
	if c.PopulationSize < 1 {
		return fmt.Errorf("%w: population size must be at least 1, got %d", ErrConfiguration, c.PopulationSize)
	}
	if c.Generations < 0 {
		return fmt.Errorf("%w: generation count must not be negative, got %d", ErrConfiguration, c.Generations)
	}
	if c.MutationChance < 0 || c.MutationChance > 1 {
		return fmt.Errorf("%w: mutation chance must be within [0, 1], got %v", ErrConfiguration, c.MutationChance)
	}
	if c.LogInterval < 0 {
		return fmt.Errorf("%w: log interval must not be negative, got %d", ErrConfiguration, c.LogInterval)
	}
	return nil
}

// GenerationEngine runs the evolution loop: a random generation 0, then a
// fixed number of select/cross/mutate/evaluate rounds. It is single threaded;
// use one engine per goroutine.
type GenerationEngine struct {
	Points    []Point
	Config    EngineConfig
	Evaluator *Evaluator
	Processor *Processor
	Observers []GenerationObserver

	rng RNG
	log logrus.FieldLogger
}

func NewGenerationEngine(points []Point, config EngineConfig, rng RNG, log logrus.FieldLogger, observers ...GenerationObserver) (*GenerationEngine, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points to tour", ErrConfiguration)
	}
	seen := make(map[int]bool, len(points))
	for _, p := range points {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate point id %d", ErrConfiguration, p.ID)
		}
		seen[p.ID] = true
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &GenerationEngine{
		Points:    points,
		Config:    config,
		Evaluator: NewEvaluator(points),
		Processor: NewProcessor(NewSelector(rng), NewReproducer(config.MutationChance, rng)),
		Observers: observers,
		rng:       rng,
		log:       log,
	}, nil
}

// Result is the outcome of a run.
type Result struct {
	Best GlobalBest
	// Generations counts completed transitions after generation 0.
	Generations int
}

// Run executes the loop to completion. ctx is only consulted between
// generations; on cancellation Run returns the best tour found so far along
// with ctx.Err().
func (ge *GenerationEngine) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	pop, err := NewPopulation(ge.Points, ge.Config.PopulationSize, ge.rng)
	if err != nil {
		return nil, err
	}
	eval, err := ge.evaluate(ctx, pop, &result.Best, 0)
	if err != nil {
		return nil, err
	}

	for gen := 1; gen <= ge.Config.Generations; gen++ {
		select {
		case <-ctx.Done():
			ge.log.WithField("generation", gen-1).Warn("Run cancelled")
			return result, ctx.Err()
		default:
		}

		next := ge.Processor.NextGeneration(pop, eval.Fitness)
		if eval, err = ge.evaluate(ctx, next, &result.Best, gen); err != nil {
			return nil, err
		}
		pop = next
		result.Generations = gen
	}

	ge.log.WithFields(logrus.Fields{
		"generations": result.Generations,
		"best":        result.Best.Length,
		"found_at":    result.Best.Generation,
	}).Info("Evolution finished")
	return result, nil
}

func (ge *GenerationEngine) evaluate(ctx context.Context, pop *Population, best *GlobalBest, gen int) (*Evaluation, error) {
	eval, err := ge.Evaluator.Evaluate(pop, best, gen)
	if err != nil {
		return nil, err
	}

	report := &GenerationReport{
		Generation: gen,
		Metrics:    ComputeMetrics(eval.Lengths, pop.Tours),
		BestLength: best.Length,
		Improved:   eval.Improved,
		Population: pop,
	}
	ge.logReport(report)

	for _, o := range ge.Observers {
		if err := o.ObserveGeneration(ctx, report); err != nil {
			return nil, fmt.Errorf("observer failed at generation %d: %w", gen, err)
		}
	}
	return eval, nil
}

func (ge *GenerationEngine) logReport(r *GenerationReport) {
	entry := ge.log.WithFields(logrus.Fields{
		"generation": r.Generation,
		"best":       r.BestLength,
		"gen_best":   r.Metrics.BestLength,
		"mean":       r.Metrics.MeanLength,
		"distinct":   r.Metrics.DistinctTours,
	})
	interval := ge.Config.LogInterval
	switch {
	case r.Improved:
		entry.Info("New best tour")
	case interval > 0 && r.Generation%interval == 0:
		entry.Info("Progress")
	default:
		entry.Debug("Generation evaluated")
	}
}
