package tuner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/env"
)

func smallOptions() Options {
	return Options{
		MaxEvals:     6,
		Population:   4,
		Seeds:        2,
		MaxSteps:     200,
		InitStepSize: 0.3,
		Workers:      2,
		BaseSeed:     1,
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	opts := OptionsFromConfig(cfg)

	assert.Equal(t, cfg.Tuner.MaxEvals, opts.MaxEvals)
	assert.Equal(t, cfg.Tuner.Seeds, opts.Seeds)
	assert.Equal(t, cfg.Tuner.MaxSteps, opts.MaxSteps)
	assert.Equal(t, cfg.Rollout.BaseSeed, opts.BaseSeed)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	tu := New(smallOptions(), env.DefaultOptions(), nil)
	w := config.DefaultTetrisConfig().Agent.Weights

	a, err := tu.Evaluate(context.Background(), w)
	require.NoError(t, err)
	b, err := tu.Evaluate(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunNeverWorseThanInitial(t *testing.T) {
	tu := New(smallOptions(), env.DefaultOptions(), nil)

	var evals []Evaluation
	tu.OnEval = func(ev Evaluation) { evals = append(evals, ev) }

	initial := config.DefaultTetrisConfig().Agent.Weights
	res, err := tu.Run(context.Background(), initial)
	require.NoError(t, err)

	assert.Equal(t, initial, res.Initial)
	assert.GreaterOrEqual(t, res.BestLines, res.InitLines)
	assert.Equal(t, len(evals), res.Evaluations)
	require.NotEmpty(t, evals)
	assert.Equal(t, initial, evals[0].Weights)

	for _, ev := range evals {
		assert.LessOrEqual(t, ev.MeanLines, res.BestLines)
	}
}

func TestRunRejectsZeroSeeds(t *testing.T) {
	opts := smallOptions()
	opts.Seeds = 0
	_, err := New(opts, env.DefaultOptions(), nil).Run(context.Background(), config.HeuristicWeights{})
	assert.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(smallOptions(), env.DefaultOptions(), nil).Run(ctx, config.DefaultTetrisConfig().Agent.Weights)
	assert.ErrorIs(t, err, context.Canceled)
}
