package tetris

// Snapshot captures the board, piece and counters for determinism testing.
// The position of the random source is not part of it.
type Snapshot struct {
	Seed   int64
	Steps  int
	Pieces int
	Score  int
	Phase  Phase
	Board  Board
	Active Piece
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Seed:   e.seed,
		Steps:  e.steps,
		Pieces: e.pieces,
		Score:  e.score,
		Phase:  e.phase,
		Board:  e.board,
		Active: e.active,
	}
}

// Load restores board, active piece, seed and counters from a snapshot. The
// random source keeps its current position.
func (e *Engine) Load(s Snapshot) {
	e.seed = s.Seed
	e.steps = s.Steps
	e.pieces = s.Pieces
	e.score = s.Score
	e.phase = s.Phase
	e.board = s.Board
	e.active = s.Active
	e.lastCleared = 0
	e.lastReward = 0
}
