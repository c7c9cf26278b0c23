package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorCyan)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorCyan {
		t.Errorf("GetCell(5, 5) = %+v, expected X in cyan", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 1, '#', ColorRed)
	s.Clear()

	if c := s.GetCell(1, 1); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("After Clear, cell = %+v, expected uncolored space", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawText(2, 1, "Lines: 4")
	if got := s.Row(1); !strings.HasPrefix(got, "  Lines: 4") {
		t.Errorf("Row(1) = %q", got)
	}

	s.DrawTextColored(18, 0, "abc", ColorYellow)
	if s.Get(18, 0) != 'a' || s.Get(19, 0) != 'b' {
		t.Error("text should be drawn up to the edge")
	}
	if s.GetCell(19, 0).Color != ColorYellow {
		t.Error("colored text should keep its color")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "ab")
	if s.Get(4, 0) != 'a' || s.Get(5, 0) != 'b' {
		t.Errorf("centered text row = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4))

	expected := []string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(0, 0, 'X')
	s.Resize(8, 3)

	if s.Width() != 8 || s.Height() != 3 {
		t.Errorf("Resize dimensions = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	if len(s.String()) != 8*3+2 {
		t.Errorf("String() length = %d, expected %d", len(s.String()), 8*3+2)
	}
}

func TestRectAndClamp(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	if r.Right() != 6 || r.Bottom() != 8 {
		t.Errorf("Right/Bottom = %d/%d, expected 6/8", r.Right(), r.Bottom())
	}
	if !r.Contains(2, 3) || r.Contains(6, 3) {
		t.Error("Contains should include top-left and exclude right edge")
	}

	tests := []struct{ val, min, max, expected int }{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
