package tetris

import "testing"

func allKinds() []Kind {
	return []Kind{KindI, KindO, KindL, KindJ, KindS, KindZ, KindT}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, k := range allKinds() {
		t.Run(k.String(), func(t *testing.T) {
			s := ShapeOf(k)
			r := s.RotateCW().RotateCW().RotateCW().RotateCW()
			if r != s {
				t.Errorf("RotateCW x4 = %v, want %v", r, s)
			}
			r = s.RotateCCW().RotateCCW().RotateCCW().RotateCCW()
			if r != s {
				t.Errorf("RotateCCW x4 = %v, want %v", r, s)
			}
		})
	}
}

func TestRotateInverse(t *testing.T) {
	for _, k := range allKinds() {
		s := ShapeOf(k)
		if got := s.RotateCW().RotateCCW(); got != s {
			t.Errorf("%s: RotateCCW(RotateCW(s)) = %v, want %v", k, got, s)
		}
		if got := s.RotateCCW().RotateCW(); got != s {
			t.Errorf("%s: RotateCW(RotateCCW(s)) = %v, want %v", k, got, s)
		}
	}
}

func TestRotateMapping(t *testing.T) {
	s := Shape{{1, 2}, {0, 0}, {-3, 1}, {2, -1}}

	cw := s.RotateCW()
	wantCW := Shape{{2, -1}, {0, 0}, {1, 3}, {-1, -2}}
	if cw != wantCW {
		t.Errorf("RotateCW = %v, want %v", cw, wantCW)
	}

	ccw := s.RotateCCW()
	wantCCW := Shape{{-2, 1}, {0, 0}, {-1, -3}, {1, 2}}
	if ccw != wantCCW {
		t.Errorf("RotateCCW = %v, want %v", ccw, wantCCW)
	}
}

func TestRotateDoesNotMutateCatalog(t *testing.T) {
	before := ShapeOf(KindT)
	s := ShapeOf(KindT)
	s[0] = Offset{X: 9, Y: 9}
	_ = s.RotateCW()

	if after := ShapeOf(KindT); after != before {
		t.Errorf("catalog changed: got %v, want %v", after, before)
	}
}

func TestShapeOfUnknownKind(t *testing.T) {
	if got := ShapeOf(Kind(42)); got != (Shape{}) {
		t.Errorf("ShapeOf(42) = %v, want zero shape", got)
	}
}

func TestPieceCells(t *testing.T) {
	p := Spawn(KindI)
	cells := p.Cells()
	want := [4]Offset{{4, 0}, {4, 1}, {4, 2}, {4, -1}}
	if cells != want {
		t.Errorf("Cells() = %v, want %v", cells, want)
	}

	moved := p.Moved(2, 3)
	if moved.X != 6 || moved.Y != 3 {
		t.Errorf("Moved(2, 3) anchor = (%d, %d), want (6, 3)", moved.X, moved.Y)
	}
	if p.X != SpawnX || p.Y != SpawnY {
		t.Error("Moved should not modify the receiver")
	}
}
