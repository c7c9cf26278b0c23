// Package env wraps the engine in an episode-oriented interface for agents:
// reset with an optional seed, step with a reward offset, and time-limit
// truncation with per-episode bookkeeping.
package env

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// ObservationSize is the length of a flattened observation.
const ObservationSize = tetris.Rows * tetris.Cols

// ErrInvalidAction is returned by ParseAction for values outside the action space.
var ErrInvalidAction = errors.New("env: invalid action")

// ParseAction converts an integer from an external caller into an action.
func ParseAction(v int) (tetris.Action, error) {
	a := tetris.Action(v)
	if !a.Valid() {
		return tetris.DoNothing, fmt.Errorf("%w: %d", ErrInvalidAction, v)
	}
	return a, nil
}

// Options configures an Env.
type Options struct {
	RewardOffset float64              // added to every step reward
	MaxSteps     int                  // 0 disables truncation
	Weights      tetris.RewardWeights // engine reward weights
}

// DefaultOptions returns the offset and weights of the default config.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultTetrisConfig())
}

// OptionsFromConfig extracts env options from a loaded config.
func OptionsFromConfig(cfg config.TetrisConfig) Options {
	return Options{
		RewardOffset: cfg.Env.RewardOffset,
		MaxSteps:     cfg.Env.MaxSteps,
		Weights: tetris.RewardWeights{
			Lines:  cfg.Reward.Lines,
			Holes:  cfg.Reward.Holes,
			Height: cfg.Reward.Height,
		},
	}
}

// EpisodeStats summarizes a finished episode.
type EpisodeStats struct {
	Seed      int64
	Return    float64
	Length    int
	Lines     int
	Score     int
	Pieces    int
	Truncated bool
}

// Info carries diagnostics alongside each transition.
type Info struct {
	Steps   int
	Pieces  int
	Score   int
	Cleared int // lines cleared by this step
	// Episode is set on the step that ends the episode.
	Episode *EpisodeStats
}

// Env is a single-episode-at-a-time environment. Not safe for concurrent use.
type Env struct {
	opts   Options
	engine *tetris.Engine

	seed      int64
	ret       float64
	length    int
	done      bool
	truncated bool
}

// New creates an environment with an episode already started from seed 0.
// Call Reset to choose the seed.
func New(opts Options) *Env {
	return &Env{
		opts:   opts,
		engine: tetris.New(0, tetris.WithRewardWeights(opts.Weights)),
	}
}

// Reset starts a new episode. A nil seed draws a fresh one from crypto/rand.
func (e *Env) Reset(seed *int64) (tetris.Observation, Info, error) {
	s := int64(0)
	if seed != nil {
		s = *seed
	} else {
		var err error
		if s, err = NewSeed(); err != nil {
			return tetris.Observation{}, Info{}, err
		}
	}

	e.seed = s
	e.ret = 0
	e.length = 0
	e.done = false
	e.truncated = false
	obs := e.engine.Reset(s)
	return obs, e.info(), nil
}

// Step advances the episode by one action. Once the episode has ended, Step
// returns the final observation with zero reward until Reset.
func (e *Env) Step(a tetris.Action) (obs tetris.Observation, reward float64, terminated, truncated bool, info Info) {
	if e.done {
		return e.engine.Observe(), 0, e.engine.Terminated(), e.truncated, e.info()
	}

	r, term := e.engine.Step(a)
	reward = r + e.opts.RewardOffset
	e.ret += reward
	e.length++

	if !term && e.opts.MaxSteps > 0 && e.length >= e.opts.MaxSteps {
		e.truncated = true
	}

	info = e.info()
	info.Cleared = e.engine.LastCleared()
	if term || e.truncated {
		e.done = true
		stats := e.Stats()
		info.Episode = &stats
	}
	return e.engine.Observe(), reward, term, e.truncated, info
}

// Stats returns the bookkeeping of the current or last episode.
func (e *Env) Stats() EpisodeStats {
	return EpisodeStats{
		Seed:      e.seed,
		Return:    e.ret,
		Length:    e.length,
		Lines:     e.engine.Score(),
		Score:     e.engine.Score(),
		Pieces:    e.engine.Pieces(),
		Truncated: e.truncated,
	}
}

// Done reports whether the current episode has ended.
func (e *Env) Done() bool { return e.done }

// Seed returns the seed of the current episode.
func (e *Env) Seed() int64 { return e.seed }

// Engine exposes the underlying engine for read-only inspection.
func (e *Env) Engine() *tetris.Engine { return e.engine }

func (e *Env) info() Info {
	return Info{
		Steps:  e.engine.Steps(),
		Pieces: e.engine.Pieces(),
		Score:  e.engine.Score(),
	}
}

// Flatten converts an observation into a row-major vector of cell values.
func Flatten(obs tetris.Observation) []float64 {
	out := make([]float64, 0, ObservationSize)
	for y := range obs {
		for x := range obs[y] {
			out = append(out, float64(obs[y][x]))
		}
	}
	return out
}
