package tetris

import "math/rand"

// Phase is the state the engine reached at the end of the last step.
type Phase int

const (
	PhaseFalling Phase = iota
	PhaseLocking
	PhaseCleared
	PhaseTerminal
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseCleared:
		return "cleared"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Observation is the board with the active piece overlaid as Moving cells.
type Observation [Rows][Cols]Cell

// Option configures an Engine.
type Option func(*Engine)

// WithRewardWeights overrides the reward coefficients.
func WithRewardWeights(w RewardWeights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// Engine owns the board, the active piece, and the score of one game.
// An Engine is not safe for concurrent use; run one instance per goroutine.
type Engine struct {
	rng     *rand.Rand
	seed    int64
	weights RewardWeights

	board  Board
	active Piece
	score  int
	phase  Phase

	steps       int
	pieces      int
	lastCleared int
	lastReward  float64
}

// New creates an engine and resets it with seed.
func New(seed int64, opts ...Option) *Engine {
	e := &Engine{weights: DefaultRewardWeights()}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset(seed)
	return e
}

// Reset clears the board and score and draws the first piece. The same seed
// always yields the same piece sequence.
func (e *Engine) Reset(seed int64) Observation {
	e.rng = rand.New(rand.NewSource(seed))
	e.seed = seed
	e.board = Board{}
	e.score = 0
	e.phase = PhaseFalling
	e.steps = 0
	e.pieces = 0
	e.lastCleared = 0
	e.lastReward = 0
	e.spawn()
	return e.Observe()
}

// spawn draws a kind uniformly and places it at the spawn anchor.
func (e *Engine) spawn() {
	e.active = Spawn(Kind(e.rng.Intn(KindCount)))
}

// Step applies the action, then gravity. It returns the shaped reward (non-zero
// only when a piece locks) and whether the game is over.
//
// Unrecognized actions behave like DoNothing. Once terminated, Step leaves the
// state untouched and keeps returning (0, true) until Reset.
func (e *Engine) Step(a Action) (reward float64, terminated bool) {
	if e.phase == PhaseTerminal {
		return 0, true
	}
	e.steps++
	e.lastCleared = 0
	e.lastReward = 0

	next, blocked := Advance(&e.board, e.active, a)
	e.active = next
	if !blocked {
		e.phase = PhaseFalling
		return 0, false
	}

	e.phase = PhaseLocking
	if !e.board.CanLock(next) {
		e.phase = PhaseTerminal
		return 0, true
	}
	e.board.Lock(next)
	e.pieces++

	n := e.board.ClearLines()
	e.score += n
	e.lastCleared = n
	e.spawn()
	e.phase = PhaseCleared

	e.lastReward = e.weights.BoardReward(&e.board, n)
	return e.lastReward, false
}

// Observe returns a snapshot of the board with the active piece drawn as
// Moving. Cells above the visible board are clipped.
func (e *Engine) Observe() Observation {
	obs := Observation(e.board)
	for _, c := range e.active.Cells() {
		if c.Y < 0 || c.Y >= Rows || c.X < 0 || c.X >= Cols {
			continue
		}
		obs[c.Y][c.X] = Moving
	}
	return obs
}

// Score is the total number of lines cleared since the last reset.
func (e *Engine) Score() int { return e.score }

// Board returns a copy of the settled cells.
func (e *Engine) Board() Board { return e.board }

// Active returns the falling piece.
func (e *Engine) Active() Piece { return e.active }

// Terminated reports whether the game is over.
func (e *Engine) Terminated() bool { return e.phase == PhaseTerminal }

// Phase returns the state reached by the last step.
func (e *Engine) Phase() Phase { return e.phase }

// Steps is the number of Step calls since reset that advanced the game.
func (e *Engine) Steps() int { return e.steps }

// Pieces is the number of pieces locked since reset.
func (e *Engine) Pieces() int { return e.pieces }

// LastCleared is the number of lines cleared by the last step.
func (e *Engine) LastCleared() int { return e.lastCleared }

// LastReward is the reward returned by the last step.
func (e *Engine) LastReward() float64 { return e.lastReward }

// Seed returns the seed passed to the last Reset.
func (e *Engine) Seed() int64 { return e.seed }

// Weights returns the reward coefficients in use.
func (e *Engine) Weights() RewardWeights { return e.weights }

// HoleCount counts buried empty cells on the settled board.
func (e *Engine) HoleCount() int { return e.board.HoleCount() }

// StackHeight is the height of the settled stack.
func (e *Engine) StackHeight() int { return e.board.StackHeight() }
