package tetris

// Action is one of the five discrete inputs accepted by Step.
type Action int

const (
	DoNothing Action = iota
	MoveRight
	MoveLeft
	RotateCW
	RotateCCW
)

// ActionCount is the size of the action space.
const ActionCount = 5

// Valid reports whether a is one of the recognized actions.
func (a Action) Valid() bool {
	return a >= DoNothing && a <= RotateCCW
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case DoNothing:
		return "DoNothing"
	case MoveRight:
		return "MoveRight"
	case MoveLeft:
		return "MoveLeft"
	case RotateCW:
		return "RotateCW"
	case RotateCCW:
		return "RotateCCW"
	default:
		return "Unknown"
	}
}

// Apply returns p after attempting a. Illegal moves and unrecognized actions
// leave p unchanged.
func Apply(b *Board, p Piece, a Action) Piece {
	var next Piece
	switch a {
	case MoveRight:
		next = p.Moved(1, 0)
	case MoveLeft:
		next = p.Moved(-1, 0)
	case RotateCW:
		next = p.WithShape(p.Shape.RotateCW())
	case RotateCCW:
		next = p.WithShape(p.Shape.RotateCCW())
	default:
		return p
	}
	if !b.Fits(next) {
		return p
	}
	return next
}

// Advance performs one turn for p: the action is attempted, then gravity moves
// the piece one row down. blocked is true when the downward move was illegal,
// in which case next is the position the piece must lock at.
func Advance(b *Board, p Piece, a Action) (next Piece, blocked bool) {
	p = Apply(b, p, a)
	down := p.Moved(0, 1)
	if b.Fits(down) {
		return down, false
	}
	return p, true
}
