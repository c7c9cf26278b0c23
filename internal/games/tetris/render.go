package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

const (
	cellW      = 2 // screen columns per board cell
	boardW     = engine.Cols*cellW + 2
	boardH     = engine.Rows + 2
	hudW       = 18
	minScreenW = boardW + 1 + hudW
	minScreenH = boardH
)

var kindColors = [engine.KindCount]core.Color{
	engine.KindI: core.ColorCyan,
	engine.KindO: core.ColorYellow,
	engine.KindL: core.ColorOrange,
	engine.KindJ: core.ColorBlue,
	engine.KindS: core.ColorGreen,
	engine.KindZ: core.ColorRed,
	engine.KindT: core.ColorMagenta,
}

// KindColor returns the display color of a piece kind.
func KindColor(k engine.Kind) core.Color {
	if k < 0 || int(k) >= engine.KindCount {
		return core.ColorDefault
	}
	return kindColors[k]
}

// Render draws the board, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	x0 := core.Clamp((g.screenW-minScreenW)/2, 0, g.screenW)
	y0 := core.Clamp((g.screenH-minScreenH)/2, 0, g.screenH)

	g.renderBoard(dst, x0, y0)
	g.renderHUD(dst, x0+boardW+1, y0)

	switch {
	case g.engine.Terminated():
		g.renderOverlay(dst, "GAME OVER", "R restart  Q quit")
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "P to resume")
	}
}

func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	dst.DrawBox(core.NewRect(x0, y0, boardW, boardH))

	obs := g.engine.Observe()
	color := KindColor(g.engine.Active().Kind)
	for y := range obs {
		for x := range obs[y] {
			sx := x0 + 1 + x*cellW
			sy := y0 + 1 + y
			switch obs[y][x] {
			case engine.Settled:
				dst.DrawTextColored(sx, sy, "██", core.ColorGray)
			case engine.Moving:
				dst.DrawTextColored(sx, sy, "██", color)
			default:
				dst.DrawTextColored(sx, sy, " .", core.ColorGray)
			}
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen, x, y int) {
	lines := []string{
		g.Title(),
		"",
		fmt.Sprintf("Lines:  %d", g.engine.Score()),
		fmt.Sprintf("Pieces: %d", g.engine.Pieces()),
		fmt.Sprintf("Steps:  %d", g.engine.Steps()),
		fmt.Sprintf("Reward: %.1f", g.engine.LastReward()),
		fmt.Sprintf("Total:  %.1f", g.totalReward),
		fmt.Sprintf("Holes:  %d", g.engine.HoleCount()),
		fmt.Sprintf("Height: %d", g.engine.StackHeight()),
		"",
		fmt.Sprintf("Piece:  %s", g.engine.Active().Kind),
	}
	for i, l := range lines {
		dst.DrawText(x, y+i, l)
	}
	dst.DrawTextColored(x+8, y+len(lines)-1, g.engine.Active().Kind.String(), KindColor(g.engine.Active().Kind))

	if g.mode == ModeHuman {
		help := []string{"←/→ move", "↑/x rotate  z ccw", "↓ drop one", "p pause  q quit"}
		for i, h := range help {
			dst.DrawTextColored(x, y+len(lines)+1+i, h, core.ColorGray)
		}
	}
}

func (g *Game) renderOverlay(dst *core.Screen, title, hint string) {
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, title)
	dst.DrawTextCentered(y, hint)
}
