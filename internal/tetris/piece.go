// Package tetris implements a deterministic, turn-based falling-block engine
// with a step interface meant to be driven by agents or a terminal frontend.
package tetris

// Offset is a cell position relative to a piece anchor.
type Offset struct {
	X, Y int
}

// Shape is the ordered set of four cells making up a tetromino.
type Shape [4]Offset

// Kind identifies one of the seven catalog shapes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindL
	KindJ
	KindS
	KindZ
	KindT
)

// KindCount is the size of the piece catalog.
const KindCount = 7

// String returns the conventional letter for the piece.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindL:
		return "L"
	case KindJ:
		return "J"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindT:
		return "T"
	default:
		return "?"
	}
}

// catalog holds the spawn orientation of every shape, indexed by Kind.
var catalog = [KindCount]Shape{
	KindI: {{0, 0}, {0, 1}, {0, 2}, {0, -1}},
	KindO: {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	KindL: {{0, 0}, {0, 1}, {0, 2}, {1, 0}},
	KindJ: {{0, 0}, {0, 1}, {0, 2}, {-1, 0}},
	KindS: {{0, 0}, {0, 1}, {1, 0}, {1, -1}},
	KindZ: {{0, 0}, {0, 1}, {-1, 0}, {-1, -1}},
	KindT: {{0, 0}, {0, 1}, {1, 0}, {-1, 0}},
}

// ShapeOf returns the spawn orientation for a kind.
// The returned value is a copy; the catalog cannot be modified through it.
func ShapeOf(k Kind) Shape {
	if k < 0 || int(k) >= KindCount {
		return Shape{}
	}
	return catalog[k]
}

// RotateCW maps every offset (x, y) to (y, -x).
func (s Shape) RotateCW() Shape {
	var r Shape
	for i, o := range s {
		r[i] = Offset{X: o.Y, Y: -o.X}
	}
	return r
}

// RotateCCW maps every offset (x, y) to (-y, x).
func (s Shape) RotateCCW() Shape {
	var r Shape
	for i, o := range s {
		r[i] = Offset{X: -o.Y, Y: o.X}
	}
	return r
}

// Piece is a shape placed at an anchor on the board.
type Piece struct {
	Kind  Kind
	Shape Shape
	X, Y  int
}

// SpawnX and SpawnY are the anchor coordinates of every new piece.
const (
	SpawnX = 4
	SpawnY = 0
)

// Spawn returns a piece of the given kind at the spawn anchor.
func Spawn(k Kind) Piece {
	return Piece{Kind: k, Shape: ShapeOf(k), X: SpawnX, Y: SpawnY}
}

// Cells returns the absolute board coordinates occupied by the piece.
func (p Piece) Cells() [4]Offset {
	var cells [4]Offset
	for i, o := range p.Shape {
		cells[i] = Offset{X: p.X + o.X, Y: p.Y + o.Y}
	}
	return cells
}

// Moved returns a copy displaced by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// WithShape returns a copy using a different orientation.
func (p Piece) WithShape(s Shape) Piece {
	p.Shape = s
	return p
}
