package tetris

// Board dimensions.
const (
	Rows = 20
	Cols = 10
)

// Cell is the content of a board or observation cell.
type Cell uint8

const (
	Empty   Cell = 0
	Settled Cell = 1
	Moving  Cell = 2
)

// Board is the settled-cell grid. Row 0 is the spawn side, row Rows-1 the floor.
// It is a value type: assigning a Board copies it.
type Board [Rows][Cols]Cell

// Fits reports whether every cell of p is inside the columns, above the floor,
// and, when on the visible board, on an empty cell. Rows above the board are
// always legal.
func (b *Board) Fits(p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= Cols || c.Y >= Rows {
			return false
		}
		if c.Y >= 0 && b[c.Y][c.X] != Empty {
			return false
		}
	}
	return true
}

// CanLock reports whether p can be written into the board: all of its cells
// must be on the visible board and on empty cells.
func (b *Board) CanLock(p Piece) bool {
	for _, c := range p.Cells() {
		if c.Y < 0 || c.Y >= Rows || c.X < 0 || c.X >= Cols {
			return false
		}
		if b[c.Y][c.X] != Empty {
			return false
		}
	}
	return true
}

// Lock writes the cells of p as Settled. Callers must check CanLock first.
func (b *Board) Lock(p Piece) {
	for _, c := range p.Cells() {
		b[c.Y][c.X] = Settled
	}
}

// rowFull reports whether every cell in row y is settled.
func (b *Board) rowFull(y int) bool {
	for x := range Cols {
		if b[y][x] != Settled {
			return false
		}
	}
	return true
}

// ClearLines removes every full row, shifts the remaining rows down and fills
// the top with empty rows. Returns the number of rows removed.
func (b *Board) ClearLines() int {
	// Compact bottom-up: write is the next destination row.
	write := Rows - 1
	cleared := 0
	for y := Rows - 1; y >= 0; y-- {
		if b.rowFull(y) {
			cleared++
			continue
		}
		if write != y {
			b[write] = b[y]
		}
		write--
	}
	for y := write; y >= 0; y-- {
		b[y] = [Cols]Cell{}
	}
	return cleared
}

// FullRows returns the indices of full rows, bottom to top.
func (b *Board) FullRows() []int {
	var rows []int
	for y := Rows - 1; y >= 0; y-- {
		if b.rowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// topRow returns the index of the topmost row holding a settled cell, or Rows
// when the board is empty.
func (b *Board) topRow() int {
	for y := range Rows {
		for x := range Cols {
			if b[y][x] == Settled {
				return y
			}
		}
	}
	return Rows
}

// StackHeight is the distance from the floor to the topmost settled row.
// An empty board has height 0.
func (b *Board) StackHeight() int {
	return Rows - b.topRow()
}

// ColumnHeights returns, per column, the distance from the floor to the
// topmost settled cell in that column.
func (b *Board) ColumnHeights() [Cols]int {
	var heights [Cols]int
	for x := range Cols {
		for y := range Rows {
			if b[y][x] == Settled {
				heights[x] = Rows - y
				break
			}
		}
	}
	return heights
}

// HoleCount counts empty cells lying below the topmost settled cell of their
// column. Columns without settled cells contribute nothing.
func (b *Board) HoleCount() int {
	holes := 0
	for x := range Cols {
		seen := false
		for y := range Rows {
			switch {
			case b[y][x] == Settled:
				seen = true
			case seen:
				holes++
			}
		}
	}
	return holes
}

// AggregateHeight is the sum of all column heights.
func (b *Board) AggregateHeight() int {
	total := 0
	for _, h := range b.ColumnHeights() {
		total += h
	}
	return total
}

// Bumpiness is the sum of absolute height differences between adjacent columns.
func (b *Board) Bumpiness() int {
	heights := b.ColumnHeights()
	bump := 0
	for x := 1; x < Cols; x++ {
		d := heights[x] - heights[x-1]
		if d < 0 {
			d = -d
		}
		bump += d
	}
	return bump
}
