// Package config provides YAML-based configuration loading, environment
// overrides and difficulty management for the tetris engine and its frontends.
package config

// TetrisConfig contains all tunable parameters.
type TetrisConfig struct {
	Reward     RewardConfig     `yaml:"reward" envPrefix:"REWARD_"`
	Env        EnvConfig        `yaml:"env" envPrefix:"ENV_"`
	Play       PlayConfig       `yaml:"play" envPrefix:"PLAY_"`
	Agent      AgentConfig      `yaml:"agent" envPrefix:"AGENT_"`
	Rollout    RolloutConfig    `yaml:"rollout" envPrefix:"ROLLOUT_"`
	Tuner      TunerConfig      `yaml:"tuner" envPrefix:"TUNER_"`
	Difficulty DifficultyConfig `yaml:"difficulty" envPrefix:"DIFFICULTY_"`
}

// RewardConfig holds the shaped reward coefficients applied on every lock.
type RewardConfig struct {
	Lines  float64 `yaml:"lines" env:"LINES"`
	Holes  float64 `yaml:"holes" env:"HOLES"`
	Height float64 `yaml:"height" env:"HEIGHT"`
}

// EnvConfig defines the agent-facing environment wrapper.
type EnvConfig struct {
	RewardOffset float64 `yaml:"reward_offset" env:"REWARD_OFFSET"` // Added to every step reward
	MaxSteps     int     `yaml:"max_steps" env:"MAX_STEPS"`         // 0 = no truncation
}

// PlayConfig defines timing for interactive play.
type PlayConfig struct {
	GravityTicks int `yaml:"gravity_ticks" env:"GRAVITY_TICKS"` // Ticks between gravity steps
	BotTicks     int `yaml:"bot_ticks" env:"BOT_TICKS"`         // Ticks between bot decisions
}

// AgentConfig holds heuristic policy parameters.
type AgentConfig struct {
	Weights HeuristicWeights `yaml:"weights" envPrefix:"WEIGHTS_"`
}

// HeuristicWeights score a board after a simulated placement.
type HeuristicWeights struct {
	Lines           float64 `yaml:"lines" env:"LINES"`
	Holes           float64 `yaml:"holes" env:"HOLES"`
	AggregateHeight float64 `yaml:"aggregate_height" env:"AGGREGATE_HEIGHT"`
	Bumpiness       float64 `yaml:"bumpiness" env:"BUMPINESS"`
	Height          float64 `yaml:"height" env:"HEIGHT"`
}

// Vector returns the weights in a fixed order for optimizers.
func (w HeuristicWeights) Vector() []float64 {
	return []float64{w.Lines, w.Holes, w.AggregateHeight, w.Bumpiness, w.Height}
}

// WeightsFromVector is the inverse of Vector. Missing entries are left zero.
func WeightsFromVector(v []float64) HeuristicWeights {
	var w HeuristicWeights
	fields := []*float64{&w.Lines, &w.Holes, &w.AggregateHeight, &w.Bumpiness, &w.Height}
	for i := range fields {
		if i < len(v) {
			*fields[i] = v[i]
		}
	}
	return w
}

// RolloutConfig defines batch evaluation defaults.
type RolloutConfig struct {
	Policy   string `yaml:"policy" env:"POLICY"` // "random" or "heuristic"
	Workers  int    `yaml:"workers" env:"WORKERS"`
	Episodes int    `yaml:"episodes" env:"EPISODES"`
	BaseSeed int64  `yaml:"base_seed" env:"BASE_SEED"`
}

// TunerConfig defines CMA-ES search over heuristic weights.
type TunerConfig struct {
	MaxEvals     int     `yaml:"max_evals" env:"MAX_EVALS"`
	Population   int     `yaml:"population" env:"POPULATION"` // 0 = auto
	Seeds        int     `yaml:"seeds" env:"SEEDS"`           // Episodes per evaluation
	MaxSteps     int     `yaml:"max_steps" env:"MAX_STEPS"`   // Step cap per episode
	InitStepSize float64 `yaml:"init_step_size" env:"INIT_STEP_SIZE"`
}

// DifficultyConfig defines how gravity speeds up during play.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" env:"ENABLED"`
	InitialLevel float64           `yaml:"initial_level" env:"INITIAL_LEVEL"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" envPrefix:"PROGRESSION_"`
	Scaling      ScalingConfig     `yaml:"scaling" envPrefix:"SCALING_"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type" env:"TYPE"`     // "lines", "time", or "none"
	MaxAt int    `yaml:"max_at" env:"MAX_AT"` // Lines/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" env:"SPEED_MULTIPLIER"` // Added to gravity speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
