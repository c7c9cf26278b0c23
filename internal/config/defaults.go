package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Reward: RewardConfig{
			Lines:  10,
			Holes:  2,
			Height: 1.5,
		},
		Env: EnvConfig{
			RewardOffset: 0.01,
			MaxSteps:     0,
		},
		Play: PlayConfig{
			GravityTicks: 30,
			BotTicks:     4,
		},
		Agent: AgentConfig{
			Weights: HeuristicWeights{
				Lines:           0.760666,
				Holes:           -0.35663,
				AggregateHeight: -0.510066,
				Bumpiness:       -0.184483,
				Height:          0,
			},
		},
		Rollout: RolloutConfig{
			Policy:   "heuristic",
			Workers:  0, // GOMAXPROCS
			Episodes: 100,
			BaseSeed: 1,
		},
		Tuner: TunerConfig{
			MaxEvals:     200,
			Population:   0,
			Seeds:        4,
			MaxSteps:     5000,
			InitStepSize: 0.3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "lines",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 4.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultTetrisYAML
}
