package agent

import (
	"math"
	"sort"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Placement is one reachable landing spot for the active piece.
type Placement struct {
	// Actions is the rotation and shift prefix; DoNothing follows until lock.
	Actions  []tetris.Action
	Piece    tetris.Piece // where the piece locks
	Lines    int
	Score    float64
	Terminal bool // locking here ends the game
}

// Heuristic evaluates every rotation and shift of the active piece and
// steers toward the best-scoring landing spot. It replans on every call.
type Heuristic struct {
	weights config.HeuristicWeights
	seen    *intmap.Map[int64, struct{}]
}

// NewHeuristic creates a heuristic policy with the given feature weights.
func NewHeuristic(w config.HeuristicWeights) *Heuristic {
	return &Heuristic{
		weights: w,
		seen:    intmap.New[int64, struct{}](64),
	}
}

// Name returns the policy identifier.
func (h *Heuristic) Name() string { return PolicyHeuristic }

// Weights returns the feature weights in use.
func (h *Heuristic) Weights() config.HeuristicWeights { return h.weights }

// Act returns the first action of the best plan.
func (h *Heuristic) Act(v View) tetris.Action {
	best, ok := h.Plan(v)
	if !ok || len(best.Actions) == 0 {
		return tetris.DoNothing
	}
	return best.Actions[0]
}

// Plan returns the best placement. Ties keep the earliest candidate in
// enumeration order: rotations 0, CW, CW+CW, CCW, each with shifts from
// far left to far right.
func (h *Heuristic) Plan(v View) (Placement, bool) {
	var (
		best  Placement
		found bool
	)
	for _, p := range h.Placements(v) {
		if !found || p.Score > best.Score {
			best = p
			found = true
		}
	}
	return best, found
}

// Placements enumerates the distinct landing spots reachable with a
// rotation prefix followed by horizontal shifts.
func (h *Heuristic) Placements(v View) []Placement {
	h.seen.Clear()

	var out []Placement
	for _, rot := range rotationPrefixes {
		for dx := -tetris.Cols; dx <= tetris.Cols; dx++ {
			prefix := make([]tetris.Action, 0, len(rot)+abs(dx))
			prefix = append(prefix, rot...)
			shift := tetris.MoveRight
			if dx < 0 {
				shift = tetris.MoveLeft
			}
			for range abs(dx) {
				prefix = append(prefix, shift)
			}

			landed := drop(&v.Board, v.Active, prefix)
			key := cellsKey(landed)
			if _, dup := h.seen.Get(key); dup {
				continue
			}
			h.seen.Put(key, struct{}{})

			out = append(out, h.evaluate(&v.Board, landed, prefix))
		}
	}
	return out
}

func (h *Heuristic) evaluate(b *tetris.Board, p tetris.Piece, prefix []tetris.Action) Placement {
	pl := Placement{Actions: prefix, Piece: p}
	if !b.CanLock(p) {
		pl.Terminal = true
		pl.Score = math.Inf(-1)
		return pl
	}
	next := *b
	next.Lock(p)
	pl.Lines = next.ClearLines()
	pl.Score = h.Score(&next, pl.Lines)
	return pl
}

// Score rates a board after a lock that cleared lines rows.
func (h *Heuristic) Score(b *tetris.Board, lines int) float64 {
	w := h.weights
	return w.Lines*float64(lines) +
		w.Holes*float64(b.HoleCount()) +
		w.AggregateHeight*float64(b.AggregateHeight()) +
		w.Bumpiness*float64(b.Bumpiness()) +
		w.Height*float64(b.StackHeight())
}

var rotationPrefixes = [][]tetris.Action{
	nil,
	{tetris.RotateCW},
	{tetris.RotateCW, tetris.RotateCW},
	{tetris.RotateCCW},
}

// drop plays prefix and then DoNothing until the piece is blocked, using the
// same turn rules as the engine.
func drop(b *tetris.Board, p tetris.Piece, prefix []tetris.Action) tetris.Piece {
	for _, a := range prefix {
		next, blocked := tetris.Advance(b, p, a)
		if blocked {
			return next
		}
		p = next
	}
	for {
		next, blocked := tetris.Advance(b, p, tetris.DoNothing)
		if blocked {
			return next
		}
		p = next
	}
}

// cellsKey packs the sorted absolute cells of p into one integer so that
// orientations covering the same cells compare equal.
func cellsKey(p tetris.Piece) int64 {
	var idx [4]int
	for i, c := range p.Cells() {
		// Rows above the board go down to -4.
		idx[i] = (c.Y+4)*tetris.Cols + c.X
	}
	sort.Ints(idx[:])
	var key int64
	for _, v := range idx {
		key = key<<8 | int64(v&0xff)
	}
	return key
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
