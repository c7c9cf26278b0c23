package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate points the user and local search paths at empty directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg TetrisConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML(), &cfg))
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadTetrisEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Reward.Lines)
	assert.Equal(t, 2.0, cfg.Reward.Holes)
	assert.Equal(t, 1.5, cfg.Reward.Height)
	assert.Equal(t, 0.01, cfg.Env.RewardOffset)
}

func TestLoadTetrisCustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env:\n  max_steps: 250\nrollout:\n  workers: 3\n"), 0o600))

	cfg, err := LoadTetris(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Env.MaxSteps)
	assert.Equal(t, 3, cfg.Rollout.Workers)
	// Unspecified sections keep their defaults.
	assert.Equal(t, 10.0, cfg.Reward.Lines)
}

func TestLoadTetrisMissingCustomPath(t *testing.T) {
	isolate(t)
	_, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoadTetrisLocalDirectory(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile("configs/tetris.yaml", []byte("play:\n  gravity_ticks: 7\n"), 0o600))

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Play.GravityTicks)
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TETRIS_ROLLOUT_EPISODES", "12")
	t.Setenv("TETRIS_AGENT_WEIGHTS_HOLES", "-1.25")
	t.Setenv("TETRIS_ENV_REWARD_OFFSET", "0")

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Rollout.Episodes)
	assert.Equal(t, -1.25, cfg.Agent.Weights.Holes)
	assert.Equal(t, 0.0, cfg.Env.RewardOffset)
	assert.Equal(t, -0.510066, cfg.Agent.Weights.AggregateHeight)
}

func TestApplyEnvError(t *testing.T) {
	cfg := DefaultTetrisConfig()
	t.Setenv("TETRIS_ROLLOUT_WORKERS", "many")
	err := ApplyEnv(&cfg)
	assert.ErrorContains(t, err, "parse env:")
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	isolate(t)
	cfg := DefaultTetrisConfig()
	cfg.Agent.Weights.Bumpiness = -0.5
	path := filepath.Join(t.TempDir(), "out", "tuned.yaml")

	require.NoError(t, cfg.WriteYAML(path))
	loaded, err := LoadTetris(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWeightsVector(t *testing.T) {
	w := HeuristicWeights{Lines: 1, Holes: 2, AggregateHeight: 3, Bumpiness: 4, Height: 5}
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, w.Vector())
	assert.Equal(t, w, WeightsFromVector(w.Vector()))
	assert.Equal(t, HeuristicWeights{Lines: 9}, WeightsFromVector([]float64{9}))
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultTetrisConfig()
	ApplyPreset(&cfg, DifficultyHard)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 0.7, cfg.Difficulty.InitialLevel)
	assert.Equal(t, 15, cfg.Play.GravityTicks)

	ApplyPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)

	before := cfg
	ApplyPreset(&cfg, "")
	assert.Equal(t, before, cfg)
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultTetrisConfig().Difficulty
	d := NewDifficultyManager(cfg)

	assert.Equal(t, 0.0, d.Level(0, 0))
	assert.Equal(t, 0.5, d.Level(50, 0))
	assert.Equal(t, 1.0, d.Level(500, 0))

	assert.Equal(t, 30, d.GravityTicks(30, 0, 0))
	assert.Equal(t, 6, d.GravityTicks(30, 100, 0)) // 30 / (1 + 4)
	assert.Equal(t, 1, d.GravityTicks(0, 100, 0))

	cfg.Enabled = false
	fixed := NewDifficultyManager(cfg)
	fixed.SetInitialLevel(0.25)
	assert.False(t, fixed.IsEnabled())
	assert.Equal(t, 0.25, fixed.Level(100, 100))
}
