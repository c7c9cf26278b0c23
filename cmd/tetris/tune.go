package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/env"
	"github.com/vovakirdan/tui-tetris/internal/tuner"
)

var (
	flagEvals    int
	flagTuneOut  string
	flagTuneSeed int
)

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Tune heuristic weights with CMA-ES",
	Long: `Search the heuristic agent's weights. Each candidate plays the same
seeded episodes and is scored by the mean number of lines it clears. The
configured weights are evaluated first, so the result is never worse.

The best weights are written as a full config file that can be passed back
with --config.

Examples:
  tetris tune
  tetris tune --evals 100 --seeds 8 --out tuned.yaml
  tetris --config tuned.yaml play tetris_bot`,
	Run: runTune,
}

func init() {
	tuneCmd.Flags().IntVar(&flagEvals, "evals", 0, "Maximum evaluations (default from config)")
	tuneCmd.Flags().IntVar(&flagTuneSeed, "seeds", 0, "Episodes per evaluation (default from config)")
	tuneCmd.Flags().StringVar(&flagTuneOut, "out", "tetris-tuned.yaml", "Write the tuned config here")
}

func runTune(_ *cobra.Command, _ []string) {
	logger, err := newLogger("tune")
	if err != nil {
		fail("%v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if flagEvals > 0 {
		cfg.Tuner.MaxEvals = flagEvals
	}
	if flagTuneSeed > 0 {
		cfg.Tuner.Seeds = flagTuneSeed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := tuner.New(tuner.OptionsFromConfig(cfg), env.OptionsFromConfig(cfg), logger)
	best := -1.0
	t.OnEval = func(ev tuner.Evaluation) {
		if ev.MeanLines > best {
			best = ev.MeanLines
			fmt.Printf("  eval %4d  best %.2f lines\n", ev.Eval, best)
		}
	}

	res, err := t.Run(ctx, cfg.Agent.Weights)
	if err != nil {
		fail("tune: %v", err)
	}

	fmt.Printf("Evaluations: %d\n", res.Evaluations)
	fmt.Printf("Initial: %.2f lines  %+v\n", res.InitLines, res.Initial)
	fmt.Printf("Best:    %.2f lines  %+v\n", res.BestLines, res.Best)

	cfg.Agent.Weights = res.Best
	if err := cfg.WriteYAML(flagTuneOut); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s\n", flagTuneOut)
}
