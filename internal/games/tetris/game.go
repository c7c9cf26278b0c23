// Package tetris adapts the turn-based engine to the real-time terminal
// frontend: key presses and gravity ticks become engine steps.
package tetris

import (
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/agent"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Mode selects who controls the piece.
type Mode string

const (
	ModeHuman Mode = "tetris"
	ModeBot   Mode = "tetris_bot"
)

// Game implements registry.Game on top of the engine.
type Game struct {
	mode       Mode
	cfg        config.TetrisConfig
	engine     *engine.Engine
	bot        agent.Policy
	difficulty *config.DifficultyManager

	tick          uint64
	gravityTicker int
	botTicker     int
	totalReward   float64

	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

var (
	settingsMu sync.RWMutex
	settings   = config.DefaultTetrisConfig()
)

// SetConfig sets the configuration used by games created through the registry.
func SetConfig(cfg config.TetrisConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

func currentConfig() config.TetrisConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// New creates a game in the given mode.
func New(mode Mode, cfg config.TetrisConfig) *Game {
	return &Game{mode: mode, cfg: cfg}
}

func init() {
	registry.Register(string(ModeHuman), func() registry.Game {
		return New(ModeHuman, currentConfig())
	})
	registry.Register(string(ModeBot), func() registry.Game {
		return New(ModeBot, currentConfig())
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return string(g.mode) }

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeBot {
		return "Tetris (Bot)"
	}
	return "Tetris"
}

// Reset starts a new game with the seed from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	weights := engine.RewardWeights{
		Lines:  g.cfg.Reward.Lines,
		Holes:  g.cfg.Reward.Holes,
		Height: g.cfg.Reward.Height,
	}
	g.engine = engine.New(cfg.Seed, engine.WithRewardWeights(weights))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	if g.mode == ModeBot {
		g.bot = agent.NewHeuristic(g.cfg.Agent.Weights)
	}

	g.tick = 0
	g.gravityTicker = 0
	g.botTicker = 0
	g.totalReward = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Step advances one frontend tick. In human mode a movement key steps the
// engine right away; otherwise gravity steps it every GravityTicks ticks.
// In bot mode the policy steps the engine every BotTicks ticks.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && !g.engine.Terminated() {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall || g.engine.Terminated() {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	var (
		action engine.Action
		acted  bool
	)
	if g.mode == ModeBot {
		g.botTicker++
		if g.botTicker >= max(g.cfg.Play.BotTicks, 1) {
			g.botTicker = 0
			action, acted = g.bot.Act(agent.ViewOf(g.engine)), true
		}
	} else {
		action, acted = actionFromInput(in)
		if !acted {
			g.gravityTicker++
			if g.gravityTicker >= g.GravityTicks() {
				action, acted = engine.DoNothing, true
			}
		}
	}

	if !acted {
		return core.StepResult{State: g.State()}
	}

	g.gravityTicker = 0
	reward, _ := g.engine.Step(action)
	g.totalReward += reward
	return core.StepResult{
		State:  g.State(),
		Reward: reward,
		Locked: g.engine.Phase() == engine.PhaseCleared,
	}
}

// actionFromInput picks the engine action for this tick's keys. Down requests
// an immediate gravity step.
func actionFromInput(in core.InputFrame) (engine.Action, bool) {
	switch {
	case in.Has(core.ActionLeft):
		return engine.MoveLeft, true
	case in.Has(core.ActionRight):
		return engine.MoveRight, true
	case in.Has(core.ActionRotateCW):
		return engine.RotateCW, true
	case in.Has(core.ActionRotateCCW):
		return engine.RotateCCW, true
	case in.Has(core.ActionDown):
		return engine.DoNothing, true
	}
	return engine.DoNothing, false
}

// GravityTicks returns the number of idle ticks between gravity steps at the
// current difficulty.
func (g *Game) GravityTicks() int {
	return g.difficulty.GravityTicks(g.cfg.Play.GravityTicks, g.engine.Score(), int(g.tick))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.Terminated(),
		Paused:   g.paused,
	}
}

// Engine exposes the underlying engine for inspection.
func (g *Game) Engine() *engine.Engine { return g.engine }

// Resize updates the screen dimensions without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}
