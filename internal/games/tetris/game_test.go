package tetris

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

func newGame(mode Mode, seed int64) *Game {
	g := New(mode, config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"tetris", "tetris_bot"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(ModeHuman, 12345)
	g2 := newGame(ModeHuman, 12345)

	for i := 0; i < 600; i++ {
		var in core.InputFrame
		switch i % 7 {
		case 1:
			in = frame(core.ActionLeft)
		case 3:
			in = frame(core.ActionRotateCW)
		case 5:
			in = frame(core.ActionRight)
		default:
			in = frame()
		}
		g1.Step(in)
		g2.Step(in)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("Snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestKeyStepsImmediately(t *testing.T) {
	g := newGame(ModeHuman, 1)
	start := g.Engine().Active()

	g.Step(frame(core.ActionLeft))

	if g.Engine().Steps() != 1 {
		t.Fatalf("Steps() = %d, expected 1", g.Engine().Steps())
	}
	got := g.Engine().Active()
	if got.X != start.X-1 || got.Y != start.Y+1 {
		t.Errorf("Active at (%d, %d), expected (%d, %d)", got.X, got.Y, start.X-1, start.Y+1)
	}
}

func TestGravity(t *testing.T) {
	g := newGame(ModeHuman, 1)
	ticks := g.GravityTicks()
	if ticks < 1 {
		t.Fatalf("GravityTicks() = %d, expected at least 1", ticks)
	}

	for i := 0; i < ticks-1; i++ {
		g.Step(frame())
	}
	if g.Engine().Steps() != 0 {
		t.Fatalf("Steps() = %d before gravity fired, expected 0", g.Engine().Steps())
	}

	g.Step(frame())
	if g.Engine().Steps() != 1 {
		t.Errorf("Steps() = %d after %d idle ticks, expected 1", g.Engine().Steps(), ticks)
	}
}

func TestPause(t *testing.T) {
	g := newGame(ModeHuman, 1)

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("Expected game to be paused")
	}

	g.Step(frame(core.ActionLeft))
	if g.Engine().Steps() != 0 {
		t.Errorf("Paused game stepped the engine %d times", g.Engine().Steps())
	}

	res = g.Step(frame(core.ActionPause))
	if res.State.Paused {
		t.Error("Expected game to resume")
	}
}

func TestBotSteps(t *testing.T) {
	g := newGame(ModeBot, 2)
	botTicks := config.DefaultTetrisConfig().Play.BotTicks

	for i := 0; i < botTicks*10; i++ {
		g.Step(frame(core.ActionLeft)) // ignored in bot mode
	}

	if g.Engine().Steps() != 10 {
		t.Errorf("Steps() = %d, expected 10", g.Engine().Steps())
	}
}

func TestGameOverStopsStepping(t *testing.T) {
	g := newGame(ModeHuman, 3)
	for i := 0; i < 5000 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionDown))
	}
	if !g.State().GameOver {
		t.Fatal("Dropping every piece should end the game")
	}

	steps := g.Engine().Steps()
	g.Step(frame(core.ActionDown))
	if g.Engine().Steps() != steps {
		t.Error("Steps after game over should be ignored")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("Expected GAME OVER overlay")
	}
}

func TestRender(t *testing.T) {
	g := newGame(ModeHuman, 4)
	g.Step(frame(core.ActionDown))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "Lines:  0") {
		t.Errorf("HUD missing lines counter:\n%s", out)
	}

	color := KindColor(g.Engine().Active().Kind)
	found := false
	for y := 0; y < screen.Height() && !found; y++ {
		for x := 0; x < screen.Width(); x++ {
			c := screen.GetCell(x, y)
			if c.Rune == '█' && c.Color == color {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("Active piece should be drawn in its kind color")
	}
}

func TestTooSmall(t *testing.T) {
	g := New(ModeHuman, config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	g.Step(frame(core.ActionLeft))
	if g.Engine().Steps() != 0 {
		t.Error("Game should not advance while the window is too small")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("Expected too-small overlay")
	}

	g.Resize(80, 24)
	g.Step(frame(core.ActionLeft))
	if g.Engine().Steps() != 1 {
		t.Error("Game should resume after resize")
	}
}

func TestKindColors(t *testing.T) {
	seen := map[core.Color]bool{}
	for k := engine.Kind(0); int(k) < engine.KindCount; k++ {
		c := KindColor(k)
		if c == core.ColorDefault || seen[c] {
			t.Errorf("KindColor(%v) = %v, expected a distinct color", k, c)
		}
		seen[c] = true
	}
}
