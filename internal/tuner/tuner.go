// Package tuner searches heuristic weights with CMA-ES, scoring each
// candidate by the mean lines it clears over a fixed set of seeds.
package tuner

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/optimize"

	"github.com/vovakirdan/tui-tetris/internal/agent"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/env"
	"github.com/vovakirdan/tui-tetris/internal/rollout"
)

// Options controls the search.
type Options struct {
	MaxEvals     int     // function evaluations
	Population   int     // 0 lets CMA-ES choose
	Seeds        int     // episodes per evaluation
	MaxSteps     int     // step cap per episode
	InitStepSize float64 // 0 lets CMA-ES choose
	Workers      int
	BaseSeed     int64
}

// OptionsFromConfig maps the tuner section of a config.
func OptionsFromConfig(cfg config.TetrisConfig) Options {
	return Options{
		MaxEvals:     cfg.Tuner.MaxEvals,
		Population:   cfg.Tuner.Population,
		Seeds:        cfg.Tuner.Seeds,
		MaxSteps:     cfg.Tuner.MaxSteps,
		InitStepSize: cfg.Tuner.InitStepSize,
		Workers:      cfg.Rollout.Workers,
		BaseSeed:     cfg.Rollout.BaseSeed,
	}
}

// Evaluation is one scored candidate.
type Evaluation struct {
	Eval      int
	MeanLines float64
	Weights   config.HeuristicWeights
}

// Result is the outcome of a search.
type Result struct {
	Best        config.HeuristicWeights
	BestLines   float64
	Initial     config.HeuristicWeights
	InitLines   float64
	Evaluations int
}

// Tuner runs the search. Not safe for concurrent use.
type Tuner struct {
	opts   Options
	runner *rollout.Runner
	logger *log.Logger

	// OnEval, when set, is called after every evaluation.
	OnEval func(Evaluation)
}

// New creates a tuner. The env options' MaxSteps is replaced by opts.MaxSteps.
func New(opts Options, envOpts env.Options, logger *log.Logger) *Tuner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	envOpts.MaxSteps = opts.MaxSteps
	return &Tuner{
		opts:   opts,
		runner: rollout.NewRunner(envOpts, logger),
		logger: logger,
	}
}

// Evaluate returns the mean lines cleared by the heuristic with w.
func (t *Tuner) Evaluate(ctx context.Context, w config.HeuristicWeights) (float64, error) {
	results, err := t.runner.Run(ctx, rollout.Job{
		Policy:    agent.PolicyHeuristic,
		NewPolicy: rollout.NamedPolicy(agent.PolicyHeuristic, w),
		Episodes:  t.opts.Seeds,
		Workers:   t.opts.Workers,
		BaseSeed:  t.opts.BaseSeed,
	})
	if err != nil {
		return 0, err
	}
	return rollout.Summarize(results).MeanLines, nil
}

// Run searches from initial and returns the best weights seen, which is never
// worse than initial.
func (t *Tuner) Run(ctx context.Context, initial config.HeuristicWeights) (Result, error) {
	if t.opts.Seeds < 1 {
		return Result{}, fmt.Errorf("tuner: seeds must be positive, got %d", t.opts.Seeds)
	}

	initLines, err := t.Evaluate(ctx, initial)
	if err != nil {
		return Result{}, fmt.Errorf("tuner: evaluating initial weights: %w", err)
	}
	res := Result{
		Best:        initial,
		BestLines:   initLines,
		Initial:     initial,
		InitLines:   initLines,
		Evaluations: 1,
	}
	t.report(Evaluation{Eval: 1, MeanLines: initLines, Weights: initial})

	var evalErr error
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if evalErr != nil {
				return math.Inf(1)
			}
			w := config.WeightsFromVector(x)
			lines, err := t.Evaluate(ctx, w)
			if err != nil {
				evalErr = err
				return math.Inf(1)
			}
			res.Evaluations++
			if lines > res.BestLines {
				res.Best = w
				res.BestLines = lines
			}
			t.report(Evaluation{Eval: res.Evaluations, MeanLines: lines, Weights: w})
			return -lines
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: max(t.opts.MaxEvals-1, 1),
		Concurrent:      0,
	}
	method := &optimize.CmaEsChol{
		InitStepSize: t.opts.InitStepSize,
		Population:   t.opts.Population,
	}

	t.logger.Info("tuning started", "evals", t.opts.MaxEvals, "seeds", t.opts.Seeds, "max_steps", t.opts.MaxSteps, "initial_lines", initLines)
	if _, err := optimize.Minimize(problem, initial.Vector(), settings, method); err != nil {
		t.logger.Warn("optimization ended", "err", err)
	}
	if evalErr != nil {
		return res, fmt.Errorf("tuner: %w", evalErr)
	}

	t.logger.Info("tuning finished", "evals", res.Evaluations, "best_lines", res.BestLines)
	return res, nil
}

func (t *Tuner) report(ev Evaluation) {
	t.logger.Debug("evaluation", "eval", ev.Eval, "mean_lines", ev.MeanLines)
	if t.OnEval != nil {
		t.OnEval(ev)
	}
}
