package agent

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Random picks uniformly among the five actions.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random policy with its own seeded source.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Name returns the policy identifier.
func (r *Random) Name() string { return PolicyRandom }

// Act ignores the view and returns a uniformly drawn action.
func (r *Random) Act(View) tetris.Action {
	return tetris.Action(r.rng.Intn(tetris.ActionCount))
}
