package tetris

import (
	"math/rand"
	"testing"
)

// withActive loads a snapshot of e with a custom board and active piece.
func withActive(e *Engine, b Board, p Piece) {
	s := e.Snapshot()
	s.Board = b
	s.Active = p
	s.Phase = PhaseFalling
	e.Load(s)
}

func TestResetState(t *testing.T) {
	e := New(1)
	obs := e.Reset(7)

	if e.Score() != 0 || e.Steps() != 0 || e.Pieces() != 0 {
		t.Errorf("Reset counters = score %d steps %d pieces %d, want zeros", e.Score(), e.Steps(), e.Pieces())
	}
	if e.Board() != (Board{}) {
		t.Error("Reset should clear the board")
	}
	p := e.Active()
	if p.X != SpawnX || p.Y != SpawnY {
		t.Errorf("active anchor = (%d, %d), want (%d, %d)", p.X, p.Y, SpawnX, SpawnY)
	}
	if p.Shape != ShapeOf(p.Kind) {
		t.Errorf("active shape = %v, want catalog shape %v", p.Shape, ShapeOf(p.Kind))
	}
	if obs != e.Observe() {
		t.Error("Reset should return the current observation")
	}
	if e.Seed() != 7 {
		t.Errorf("Seed() = %d, want 7", e.Seed())
	}
}

func TestRotateFourTimesOnEmptyBoard(t *testing.T) {
	for _, k := range allKinds() {
		e := New(1)
		start := Spawn(k).Moved(0, 8)
		withActive(e, Board{}, start)

		for range 4 {
			e.Step(RotateCW)
		}

		p := e.Active()
		if p.Shape != start.Shape {
			t.Errorf("%s: shape after 4 rotations = %v, want %v", k, p.Shape, start.Shape)
		}
		if p.X != start.X || p.Y != start.Y+4 {
			t.Errorf("%s: anchor = (%d, %d), want (%d, %d)", k, p.X, p.Y, start.X, start.Y+4)
		}
	}
}

func TestIllegalMoveIgnored(t *testing.T) {
	e := New(1)
	start := Spawn(KindO).Moved(-4, 2) // cells in columns 0 and 1
	withActive(e, Board{}, start)

	_, term := e.Step(MoveLeft)
	if term {
		t.Fatal("illegal move should not terminate")
	}
	p := e.Active()
	if p.X != start.X {
		t.Errorf("X after blocked MoveLeft = %d, want %d", p.X, start.X)
	}
	if p.Y != start.Y+1 {
		t.Errorf("gravity should still apply: Y = %d, want %d", p.Y, start.Y+1)
	}
}

func TestDoNothingFallsStraightUntilLock(t *testing.T) {
	e := New(99)
	start := e.Active()
	prev := start

	for i := 0; i < Rows+5; i++ {
		reward, term := e.Step(DoNothing)
		if term {
			t.Fatal("game should not end on an empty board")
		}
		if e.Pieces() == 1 {
			if reward == 0 {
				t.Error("lock on a non-empty board should carry a height penalty")
			}
			return
		}
		if reward != 0 {
			t.Errorf("step %d: reward = %v before lock, want 0", i, reward)
		}
		cur := e.Active()
		if cur.X != start.X {
			t.Fatalf("step %d: X = %d, want %d", i, cur.X, start.X)
		}
		if cur.Y != prev.Y+1 {
			t.Fatalf("step %d: Y = %d, want %d", i, cur.Y, prev.Y+1)
		}
		prev = cur
	}
	t.Fatal("piece never locked")
}

func TestLockRewardWithoutClear(t *testing.T) {
	e := New(3)
	withActive(e, Board{}, Spawn(KindO))

	var reward float64
	for e.Pieces() == 0 {
		reward, _ = e.Step(DoNothing)
	}

	b := e.Board()
	if b[18][4] != Settled || b[19][5] != Settled {
		t.Error("O piece should lock on the floor in columns 4-5")
	}
	// height 2, no holes
	if reward != -3 {
		t.Errorf("reward = %v, want -3", reward)
	}
	if e.Score() != 0 {
		t.Errorf("Score() = %d, want 0", e.Score())
	}
	if e.Phase() != PhaseCleared {
		t.Errorf("Phase() = %s, want cleared", e.Phase())
	}
	a := e.Active()
	if a.X != SpawnX || a.Y != SpawnY {
		t.Error("a new piece should spawn after lock")
	}
}

func TestLineClearThroughStep(t *testing.T) {
	var b Board
	for _, y := range []int{18, 19} {
		for x := range Cols {
			if x != 4 && x != 5 {
				b[y][x] = Settled
			}
		}
	}
	e := New(5)
	withActive(e, b, Spawn(KindO))

	var reward float64
	for e.Pieces() == 0 {
		var term bool
		reward, term = e.Step(DoNothing)
		if term {
			t.Fatal("unexpected termination")
		}
	}

	if e.LastCleared() != 2 {
		t.Errorf("LastCleared() = %d, want 2", e.LastCleared())
	}
	if e.Score() != 2 {
		t.Errorf("Score() = %d, want 2", e.Score())
	}
	if e.Board() != (Board{}) {
		t.Error("board should be empty after clearing both rows")
	}
	if reward != 20 {
		t.Errorf("reward = %v, want 20", reward)
	}
}

func TestRewardFormula(t *testing.T) {
	w := DefaultRewardWeights()
	if got := w.Reward(2, 3, 4); got != 8.0 {
		t.Errorf("Reward(2, 3, 4) = %v, want 8", got)
	}
	if got := w.Reward(0, 0, 0); got != 0 {
		t.Errorf("Reward(0, 0, 0) = %v, want 0", got)
	}

	custom := RewardWeights{Lines: 1, Holes: 0, Height: 0}
	e := New(1, WithRewardWeights(custom))
	if e.Weights() != custom {
		t.Errorf("Weights() = %+v, want %+v", e.Weights(), custom)
	}
}

func TestTerminationOnSpawnOverlap(t *testing.T) {
	var b Board
	for y := range Rows {
		for x := 1; x < Cols; x++ {
			b[y][x] = Settled
		}
	}
	e := New(11)
	withActive(e, b, Spawn(KindO))
	before := e.Snapshot()

	reward, term := e.Step(DoNothing)
	if !term {
		t.Fatal("colliding spawn should terminate")
	}
	if reward != 0 {
		t.Errorf("reward = %v, want 0", reward)
	}
	if e.Score() != before.Score || e.Pieces() != before.Pieces {
		t.Error("termination must not advance score or pieces")
	}
	if e.Board() != b {
		t.Error("termination must not write into the board")
	}
	if e.Active() != before.Active {
		t.Error("termination must not spawn a new piece")
	}
	if !e.Terminated() || e.Phase() != PhaseTerminal {
		t.Error("engine should report terminal phase")
	}
}

func TestTerminationAboveBoard(t *testing.T) {
	var b Board
	for y := 3; y < Rows; y++ {
		b[y][4] = Settled
	}
	e := New(2)
	withActive(e, b, Spawn(KindI)) // occupies rows -1..2 in column 4

	reward, term := e.Step(DoNothing)
	if !term || reward != 0 {
		t.Errorf("Step() = (%v, %v), want (0, true)", reward, term)
	}
	if e.Board() != b {
		t.Error("board changed on termination")
	}
}

func TestStepAfterTermination(t *testing.T) {
	var b Board
	for y := range Rows {
		for x := 1; x < Cols; x++ {
			b[y][x] = Settled
		}
	}
	e := New(11)
	withActive(e, b, Spawn(KindO))
	e.Step(DoNothing)
	snap := e.Snapshot()

	for _, a := range []Action{DoNothing, MoveLeft, RotateCW} {
		reward, term := e.Step(a)
		if !term || reward != 0 {
			t.Errorf("Step(%s) after game over = (%v, %v), want (0, true)", a, reward, term)
		}
	}
	if e.Snapshot() != snap {
		t.Error("state changed after termination")
	}

	e.Reset(11)
	if e.Terminated() {
		t.Error("Reset should leave the terminal state")
	}
}

func TestInvalidActionIsDoNothing(t *testing.T) {
	a := New(21)
	b := New(21)

	for i := range 60 {
		ra, ta := a.Step(Action(99))
		rb, tb := b.Step(DoNothing)
		if ra != rb || ta != tb {
			t.Fatalf("step %d: invalid action diverged from DoNothing", i)
		}
		if a.Observe() != b.Observe() {
			t.Fatalf("step %d: observations diverged", i)
		}
	}
	if Action(-1).Valid() || Action(5).Valid() {
		t.Error("out-of-range actions should not be valid")
	}
}

func TestSeededReproducibility(t *testing.T) {
	actions := rand.New(rand.NewSource(7))
	seq := make([]Action, 20000)
	for i := range seq {
		seq[i] = Action(actions.Intn(ActionCount))
	}

	run := func() ([]Observation, int) {
		e := New(42)
		var obs []Observation
		for i, a := range seq {
			_, term := e.Step(a)
			obs = append(obs, e.Observe())
			if term {
				return obs, i
			}
		}
		return obs, -1
	}

	obs1, end1 := run()
	obs2, end2 := run()

	if end1 != end2 {
		t.Fatalf("terminal step = %d vs %d", end1, end2)
	}
	if end1 < 0 {
		t.Fatal("random play should end within 20000 steps")
	}
	for i := range obs1 {
		if obs1[i] != obs2[i] {
			t.Fatalf("observation %d differs", i)
		}
	}
}

func TestResetSameSeedSamePieces(t *testing.T) {
	kinds := func(seed int64) []Kind {
		e := New(seed)
		var out []Kind
		for len(out) < 5 {
			out = append(out, e.Active().Kind)
			start := e.Pieces()
			for e.Pieces() == start && !e.Terminated() {
				e.Step(DoNothing)
			}
		}
		return out
	}

	a, b := kinds(1234), kinds(1234)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("piece %d: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestObserveIsSnapshot(t *testing.T) {
	e := New(8)
	obs := e.Observe()

	moving := 0
	for y := range Rows {
		for x := range Cols {
			if obs[y][x] == Moving {
				moving++
			}
		}
	}
	// I, S and Z spawn with one cell above the board.
	if moving < 3 || moving > 4 {
		t.Errorf("Moving cells = %d, want 3 or 4", moving)
	}

	obs[19][0] = Settled
	if e.Observe()[19][0] != Empty {
		t.Error("mutating an observation must not affect the engine")
	}
	if e.Board()[19][0] != Empty {
		t.Error("mutating an observation must not affect the board")
	}
}

func TestObserveOverlay(t *testing.T) {
	var b Board
	b[19][0] = Settled
	e := New(1)
	withActive(e, b, Spawn(KindO).Moved(0, 5))

	obs := e.Observe()
	if obs[19][0] != Settled {
		t.Errorf("obs[19][0] = %d, want Settled", obs[19][0])
	}
	for _, c := range []Offset{{4, 5}, {4, 6}, {5, 5}, {5, 6}} {
		if obs[c.Y][c.X] != Moving {
			t.Errorf("obs[%d][%d] = %d, want Moving", c.Y, c.X, obs[c.Y][c.X])
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	e := New(77)
	for range 30 {
		e.Step(MoveRight)
	}
	snap := e.Snapshot()

	other := New(1)
	other.Load(snap)
	if got := other.Snapshot(); got != snap {
		t.Errorf("Load(Snapshot()) = %+v, want %+v", got, snap)
	}
}

func TestAdvanceMatchesStep(t *testing.T) {
	e := New(5)
	for range 10 {
		b := e.Board()
		want, blocked := Advance(&b, e.Active(), MoveLeft)
		e.Step(MoveLeft)
		if blocked {
			break
		}
		if e.Active() != want {
			t.Fatalf("Advance = %+v, Step produced %+v", want, e.Active())
		}
	}
}

func TestSpawnCoversCatalogEvenly(t *testing.T) {
	const want = 1400
	var counts [KindCount]int
	total := 0

	// Drop pieces straight down, restarting with the next seed on game over,
	// and record every piece the engine spawns.
	for seed := int64(1); total < want; seed++ {
		e := New(seed)
		counts[e.Active().Kind]++
		total++
		for total < want {
			pieces := e.Pieces()
			if _, terminated := e.Step(DoNothing); terminated {
				break
			}
			if e.Pieces() != pieces {
				counts[e.Active().Kind]++
				total++
			}
		}
	}

	expected := total / KindCount
	for k, n := range counts {
		if n < expected*6/10 || n > expected*14/10 {
			t.Errorf("kind %v spawned %d times out of %d, want about %d", Kind(k), n, total, expected)
		}
	}
}
