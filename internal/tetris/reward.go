package tetris

// RewardWeights are the coefficients of the shaped reward computed on every lock.
type RewardWeights struct {
	Lines  float64
	Holes  float64
	Height float64
}

// DefaultRewardWeights returns the standard shaping: 10 per line, -2 per hole,
// -1.5 per row of stack height.
func DefaultRewardWeights() RewardWeights {
	return RewardWeights{Lines: 10, Holes: 2, Height: 1.5}
}

// Reward combines a line-clear count with the hole and height penalties.
func (w RewardWeights) Reward(lines, holes, height int) float64 {
	return w.Lines*float64(lines) - w.Holes*float64(holes) - w.Height*float64(height)
}

// BoardReward evaluates the reward for a post-clear board.
func (w RewardWeights) BoardReward(b *Board, lines int) float64 {
	return w.Reward(lines, b.HoleCount(), b.StackHeight())
}
