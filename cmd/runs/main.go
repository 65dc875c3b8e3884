package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	gt "nickandperla.net/genetic_tsp"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "runs:", err)
		os.Exit(1)
	}
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	var dbPath, configPath string

	open := func() (*gt.Persistence, error) {
		var pc *gt.PersistenceConfig
		if configPath != "" {
			tc, err := gt.LoadToolConfig(configPath)
			if err != nil {
				return nil, err
			}
			pc = tc.Persistence
		}
		if dbPath != "" {
			pc = &gt.PersistenceConfig{Path: filepath.Dir(dbPath), Name: filepath.Base(dbPath)}
		}
		if pc == nil {
			return nil, fmt.Errorf("%w: no run history configured, pass --db or --config", gt.ErrConfiguration)
		}
		log, err := gt.NewLogger(gt.LogConfig{Level: "warn"})
		if err != nil {
			return nil, err
		}
		return gt.NewPersistence(pc, log)
	}

	root := &cobra.Command{
		Use:           "runs",
		Short:         "Inspect recorded solve runs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite file holding the run history")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Tool config file (.toml, .yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			persist, err := open()
			if err != nil {
				return err
			}
			defer persist.Shutdown()

			runs, err := persist.ListRuns()
			if err != nil {
				return err
			}
			return printRuns(stdout, runs)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show generation statistics and the best tour of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			persist, err := open()
			if err != nil {
				return err
			}
			defer persist.Shutdown()

			run, stats, tour, err := persist.LoadRun(args[0])
			if err != nil {
				return err
			}
			return printRun(stdout, run, stats, tour)
		},
	})

	var keep int
	var dryRun bool
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			persist, err := open()
			if err != nil {
				return err
			}
			defer persist.Shutdown()

			result, err := persist.PruneRuns(keep, dryRun)
			if err != nil {
				return err
			}
			return printPrune(stdout, result, dryRun)
		},
	}
	prune.Flags().IntVar(&keep, "keep", 10, "Number of newest runs to keep")
	prune.Flags().BoolVar(&dryRun, "dry-run", false, "Preview what would be deleted without actually deleting")
	root.AddCommand(prune)

	return root
}

func printPrune(w io.Writer, result *gt.PruneResult, dryRun bool) error {
	state := "complete"
	if dryRun {
		state = "(dry run)"
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "prune %s:\n", state)
	fmt.Fprintf(tw, "  Total runs:\t%d\n", result.TotalRuns)
	fmt.Fprintf(tw, "  Runs kept:\t%d\n", result.KeptRuns)
	fmt.Fprintf(tw, "  Runs deleted:\t%d\n", result.DeletedRuns)
	fmt.Fprintf(tw, "  Generation stats deleted:\t%d\n", result.DeletedStats)
	fmt.Fprintf(tw, "  Tour stops deleted:\t%d\n", result.DeletedStops)
	return tw.Flush()
}

func printRuns(w io.Writer, runs []gt.Run) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tPOINTS\tPOP\tGENS\tBEST\tSTATUS")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d/%d\t%.4f\t%s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.PointCount, r.PopulationSize,
			r.CompletedGenerations, r.Generations, r.BestLength, r.Status)
	}
	return tw.Flush()
}

func printRun(w io.Writer, run *gt.Run, stats []gt.GenerationStat, tour []int) error {
	fmt.Fprintf(w, "run %s (%s)\n", run.ID, run.Status)
	fmt.Fprintf(w, "input=%s points=%d population=%d generations=%d seed=%d mutation=%.2f\n",
		run.Input, run.PointCount, run.PopulationSize, run.Generations, run.Seed, run.MutationChance)
	fmt.Fprintf(w, "best=%.4f found at generation %d\n", run.BestLength, run.BestGeneration)
	if run.Error != "" {
		fmt.Fprintf(w, "error: %s\n", run.Error)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GEN\tBEST\tMEAN\tWORST\tGLOBAL\tDISTINCT\t")
	for _, s := range stats {
		marker := ""
		if s.Improved {
			marker = "*"
		}
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\t%.4f\t%d\t%s\n",
			s.Generation, s.BestLength, s.MeanLength, s.WorstLength, s.GlobalBest, s.DistinctTours, marker)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "tour:")
	for _, id := range tour {
		fmt.Fprintln(w, id)
	}
	return nil
}
