// Package agent provides policies that choose engine actions from the
// observable game state.
package agent

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// View is what a policy sees before choosing an action.
type View struct {
	Board  tetris.Board
	Active tetris.Piece
}

// ViewOf captures the current view of an engine.
func ViewOf(e *tetris.Engine) View {
	return View{Board: e.Board(), Active: e.Active()}
}

// Policy chooses the next action. Implementations may keep internal state
// and are not safe for concurrent use.
type Policy interface {
	Name() string
	Act(v View) tetris.Action
}

// Policy names accepted by New.
const (
	PolicyRandom    = "random"
	PolicyHeuristic = "heuristic"
)

// New builds a policy by name. seed drives the random policy.
func New(name string, seed int64, weights config.HeuristicWeights) (Policy, error) {
	switch name {
	case PolicyRandom:
		return NewRandom(seed), nil
	case PolicyHeuristic:
		return NewHeuristic(weights), nil
	default:
		return nil, fmt.Errorf("agent: unknown policy %q", name)
	}
}
