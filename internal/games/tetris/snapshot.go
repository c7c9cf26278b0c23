package tetris

import (
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Snapshot captures the frontend and engine state for determinism testing.
type Snapshot struct {
	Tick         uint64
	Mode         string
	Paused       bool
	GravityTicks int
	TotalReward  float64
	Engine       engine.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:         g.tick,
		Mode:         string(g.mode),
		Paused:       g.paused,
		GravityTicks: g.GravityTicks(),
		TotalReward:  g.totalReward,
		Engine:       g.engine.Snapshot(),
	}
}
