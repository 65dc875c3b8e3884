package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	gt "nickandperla.net/genetic_tsp"
	"nickandperla.net/genetic_tsp/tsplib"
)

type options struct {
	configPath string
	dbPath     string
	cpuProfile string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "solve:", err)
		os.Exit(1)
	}
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Search for a short closed tour through the points of an EUC_2D file",
		Long: `solve evolves a population of random tours with roulette-wheel selection,
order crossover and swap mutation. The best length is printed to stdout and
the best tour is written one point id per line.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags(), opts, args[0], stdout)
		},
	}

	fs := cmd.Flags()
	fs.IntP("population", "p", 0, "Number of tours per generation (required)")
	fs.IntP("generations", "g", 0, "Number of generations after the initial one (required)")
	fs.IntP("fitness", "f", 0, "Number of generations after the initial one")
	fs.MarkDeprecated("fitness", "use --generations instead")
	fs.Int64("seed", 0, "Random seed, 0 picks one from the clock")
	fs.Float64("mutation-chance", gt.DefaultMutationChance, "Probability that a child gets a swap mutation")
	fs.StringP("output", "o", "solution.csv", "Where to write the best tour")
	fs.Int("log-interval", 0, "Generations between progress lines, 0 disables them")
	fs.StringVarP(&opts.configPath, "config", "c", "", "Tool config file (.toml, .yaml)")
	fs.StringVar(&opts.dbPath, "db", "", "SQLite file to record the run in")
	fs.StringVar(&opts.cpuProfile, "cpuprofile", "", "Directory to write a CPU profile to")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&opts.logFormat, "log-format", "", "text or json")
	return cmd
}

func run(ctx context.Context, fs *pflag.FlagSet, opts *options, input string, stdout io.Writer) error {
	tc := &gt.ToolConfig{}
	if opts.configPath != "" {
		loaded, err := gt.LoadToolConfig(opts.configPath)
		if err != nil {
			return err
		}
		tc = loaded
	}

	overrides, err := runOverrides(fs)
	if err != nil {
		return err
	}
	if err := tc.Run.Merge(overrides); err != nil {
		return fmt.Errorf("%w: %v", gt.ErrConfiguration, err)
	}
	if tc.Run.Output == "" {
		tc.Run.Output = "solution.csv"
	}
	if opts.logLevel != "" {
		tc.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		tc.Log.Format = opts.logFormat
	}
	if opts.dbPath != "" {
		tc.Persistence = &gt.PersistenceConfig{
			Path: filepath.Dir(opts.dbPath),
			Name: filepath.Base(opts.dbPath),
		}
	}

	log, err := gt.NewLogger(tc.Log)
	if err != nil {
		return err
	}
	engineConfig, err := tc.Run.EngineConfig()
	if err != nil {
		return err
	}

	if opts.cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opts.cpuProfile), profile.Quiet).Stop()
	}

	inst, err := tsplib.ReadFile(input)
	if err != nil {
		return err
	}
	if t := inst.Header.EdgeWeightType; t != "" && t != "EUC_2D" {
		log.WithField("edge_weight_type", t).Warn("Input is not EUC_2D, using Euclidean distances anyway")
	}

	seed := tc.Run.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.WithFields(logrus.Fields{
		"input":       input,
		"points":      len(inst.Points),
		"population":  engineConfig.PopulationSize,
		"generations": engineConfig.Generations,
		"seed":        seed,
	}).Info("Starting evolution")

	var observers []gt.GenerationObserver
	var persist *gt.Persistence
	var record *gt.Run
	var recorder *gt.Recorder
	if tc.Persistence != nil {
		if persist, err = gt.NewPersistence(tc.Persistence, log); err != nil {
			return fmt.Errorf("failed to open run history: %w", err)
		}
		defer func() {
			if err := persist.Shutdown(); err != nil {
				log.WithError(err).Warn("Failed to close run history")
			}
		}()
		if record, err = persist.StartRun(input, len(inst.Points), engineConfig, seed); err != nil {
			return err
		}
		recorder = persist.NewRecorder(record, 100)
		observers = append(observers, recorder)
	}

	engine, err := gt.NewGenerationEngine(inst.Points, engineConfig, gt.NewRNG(seed), log, observers...)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	result, runErr := engine.Run(ctx)

	if persist != nil {
		if err := recorder.Flush(); err != nil && runErr == nil {
			runErr = err
		}
		if err := persist.FinishRun(record, result, runErr); err != nil {
			log.WithError(err).Error("Failed to record run result")
		} else {
			log.WithField("run", record.ID).Info("Run recorded")
		}
	}
	if runErr != nil {
		if errors.Is(runErr, gt.ErrInvariantViolation) {
			log.WithError(runErr).Error("Aborting without writing a solution")
		}
		return runErr
	}

	if err := tsplib.WriteTourFile(tc.Run.Output, result.Best.Tour); err != nil {
		return fmt.Errorf("failed to write solution: %w", err)
	}
	_, err = io.WriteString(stdout, strconv.FormatFloat(result.Best.Length, 'f', -1, 64))
	return err
}

// runOverrides collects only the flags the user actually set, so that file
// values survive wherever the command line is silent.
func runOverrides(fs *pflag.FlagSet) (*gt.RunConfig, error) {
	over := &gt.RunConfig{}

	over.Population = changedInt(fs, "population")
	over.Generations = changedInt(fs, "generations")
	if legacy := changedInt(fs, "fitness"); legacy != nil {
		if over.Generations != nil && *over.Generations != *legacy {
			return nil, fmt.Errorf("%w: --fitness and --generations disagree", gt.ErrConfiguration)
		}
		over.Generations = legacy
	}
	if fs.Changed("seed") {
		over.Seed, _ = fs.GetInt64("seed")
	}
	if fs.Changed("mutation-chance") {
		chance, _ := fs.GetFloat64("mutation-chance")
		over.MutationChance = &chance
	}
	if fs.Changed("output") {
		over.Output, _ = fs.GetString("output")
	}
	if fs.Changed("log-interval") {
		over.LogInterval, _ = fs.GetInt("log-interval")
	}
	return over, nil
}

func changedInt(fs *pflag.FlagSet, name string) *int {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetInt(name)
	if err != nil {
		return nil
	}
	return &v
}
