package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/env"
	"github.com/vovakirdan/tui-tetris/internal/rollout"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagPolicy   string
	flagEpisodes int
	flagWorkers  int
	flagBaseSeed int64
	flagMaxSteps int
	flagCSV      string
	flagSave     bool
)

var rolloutCmd = &cobra.Command{
	Use:   "rollout",
	Short: "Run headless episodes and summarize them",
	Long: `Play a batch of episodes without a UI. Episode i uses seed base+i,
so two runs with the same flags produce the same results regardless of the
number of workers.

Policies:
  random     - Uniformly random actions
  heuristic  - Placement search scored by the configured weights

Examples:
  tetris rollout
  tetris rollout --policy random --episodes 500 --max-steps 2000
  tetris rollout --csv episodes.csv --save`,
	Run: runRollout,
}

func init() {
	rolloutCmd.Flags().StringVar(&flagPolicy, "policy", "", "Policy to play (default from config)")
	rolloutCmd.Flags().IntVar(&flagEpisodes, "episodes", 0, "Number of episodes (default from config)")
	rolloutCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel workers (default from config)")
	rolloutCmd.Flags().Int64Var(&flagBaseSeed, "base-seed", 0, "Seed of the first episode (default from config)")
	rolloutCmd.Flags().IntVar(&flagMaxSteps, "max-steps", -1, "Truncate episodes after this many steps (0 = never)")
	rolloutCmd.Flags().StringVar(&flagCSV, "csv", "", "Write per-episode results to this CSV file")
	rolloutCmd.Flags().BoolVar(&flagSave, "save", false, "Store episodes in the scores database")
}

func runRollout(cmd *cobra.Command, _ []string) {
	logger, err := newLogger("rollout")
	if err != nil {
		fail("%v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if flagPolicy != "" {
		cfg.Rollout.Policy = flagPolicy
	}
	if flagEpisodes > 0 {
		cfg.Rollout.Episodes = flagEpisodes
	}
	if flagWorkers > 0 {
		cfg.Rollout.Workers = flagWorkers
	}
	if cmd.Flags().Changed("base-seed") {
		cfg.Rollout.BaseSeed = flagBaseSeed
	}
	if flagMaxSteps >= 0 {
		cfg.Env.MaxSteps = flagMaxSteps
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := rollout.NewRunner(env.OptionsFromConfig(cfg), logger)
	job := rollout.Job{
		Policy:    cfg.Rollout.Policy,
		NewPolicy: rollout.NamedPolicy(cfg.Rollout.Policy, cfg.Agent.Weights),
		Episodes:  cfg.Rollout.Episodes,
		Workers:   cfg.Rollout.Workers,
		BaseSeed:  cfg.Rollout.BaseSeed,
	}

	start := time.Now()
	results, err := runner.Run(ctx, job)
	if err != nil {
		fail("rollout: %v", err)
	}
	logger.Info("rollout finished", "episodes", len(results), "elapsed", time.Since(start).Round(time.Millisecond))

	printSummary(job.Policy, rollout.Summarize(results))

	if flagCSV != "" {
		if err := writeResultsCSV(flagCSV, results); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Wrote %d episodes to %s\n", len(results), flagCSV)
	}

	if flagSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fail("opening scores database: %v", err)
		}
		defer store.Close()
		if err := store.SaveEpisodes(ctx, episodeRecords(results)); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Saved %d episodes to %s\n", len(results), flagDBPath)
	}
}

func printSummary(policy string, s rollout.Summary) {
	fmt.Printf("Policy: %s\n", policy)
	fmt.Println()
	fmt.Printf("  %-10s  %d\n", "Episodes", s.Episodes)
	fmt.Printf("  %-10s  %.2f ± %.2f\n", "Return", s.MeanReturn, s.StdReturn)
	fmt.Printf("  %-10s  %.2f ± %.2f (max %d)\n", "Lines", s.MeanLines, s.StdLines, s.MaxLines)
	fmt.Printf("  %-10s  %.1f\n", "Steps", s.MeanSteps)
	fmt.Printf("  %-10s  %d\n", "Truncated", s.Truncated)
}

func writeResultsCSV(path string, results []rollout.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := rollout.WriteCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func episodeRecords(results []rollout.Result) []storage.EpisodeRecord {
	records := make([]storage.EpisodeRecord, len(results))
	for i, r := range results {
		records[i] = storage.EpisodeRecord{
			Policy:      r.Policy,
			Seed:        r.Seed,
			Steps:       r.Steps,
			Lines:       r.Lines,
			Score:       r.Score,
			TotalReward: r.Return,
			Truncated:   r.Truncated,
		}
	}
	return records
}
