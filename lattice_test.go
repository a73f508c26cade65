package twistycube

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

const testTol = 1e-9

func sameVec(a, b mgl64.Vec3) bool {
	return floats.EqualApprox(a[:], b[:], testTol)
}

func sameLattice(t *testing.T, got, want *Lattice) {
	t.Helper()
	for i := 0; i < want.Len(); i++ {
		g, w := got.Cubie(i), want.Cubie(i)
		if !sameVec(g.Position, w.Position) {
			t.Errorf("cubie %v: position %v, want %v", w.Home, g.Position, w.Position)
		}
		if !SameRotation(g.Orientation, w.Orientation, 1e-6) {
			t.Errorf("cubie %v: orientation %v, want %v", w.Home, g.Orientation, w.Orientation)
		}
	}
}

func TestNewLatticeIsSolved(t *testing.T) {
	l := NewLattice(DefaultGeometry())
	if l.Len() != 26 {
		t.Errorf("Expected 26 cubies, got %d", l.Len())
	}
	if !l.IsSolved() {
		t.Error("New lattice should be solved")
		t.Log(l.Facelets().String())
	}
}

func TestNewLatticeNoInteriorCubie(t *testing.T) {
	l := NewLattice(DefaultGeometry())
	for _, c := range l.Cubies() {
		if c.Home == [3]int{1, 1, 1} {
			t.Fatal("Interior cubie should not exist")
		}
		if c.Grid(l.Geometry()) != c.Home {
			t.Errorf("Cubie %v reports grid %v", c.Home, c.Grid(l.Geometry()))
		}
	}
}

// layerSize is 9 for an outer layer and 8 for the middle slice, which
// has no interior cubie.
func layerSize(layer int) int {
	if layer == 1 {
		return 8
	}
	return 9
}

func checkLayerSizes(t *testing.T, l *Lattice) {
	t.Helper()
	for axis := AxisX; axis <= AxisZ; axis++ {
		for layer := 0; layer < 3; layer++ {
			if got, want := len(l.SelectLayer(axis, layer)), layerSize(layer); got != want {
				t.Errorf("SelectLayer(%s, %d) = %d cubies, want %d", axis, layer, got, want)
			}
		}
	}
}

func TestSelectLayerSizes(t *testing.T) {
	checkLayerSizes(t, NewLattice(DefaultGeometry()))
}

func TestSelectLayerAfterTwist(t *testing.T) {
	l := NewLattice(DefaultGeometry())
	l.ApplyMoves([]Move{R, U, F})
	checkLayerSizes(t, l)

	l.ApplyMoves([]Move{M, E, S, MPrime, EPrime, SPrime})
	checkLayerSizes(t, l)
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	l := NewLattice(DefaultGeometry())
	l.Apply(R)
	if l.IsSolved() {
		t.Error("Lattice should not be solved after R move")
	}
}

func TestRMoveFacelets(t *testing.T) {
	l := NewLattice(DefaultGeometry())
	l.Apply(R)
	f := l.Facelets()

	// The front right column comes up from D, the top right column from F.
	for _, i := range []int{2, 5, 8} {
		if got := f.Stickers[CubeFaceF][i]; got != Yellow {
			t.Errorf("F[%d] = %s, want Y", i, got)
		}
		if got := f.Stickers[CubeFaceU][i]; got != Green {
			t.Errorf("U[%d] = %s, want G", i, got)
		}
	}
	for _, face := range []CubeFace{CubeFaceR, CubeFaceL} {
		for i := 0; i < 9; i++ {
			if f.Stickers[face][i] != faceToSolvedColor(face) {
				t.Errorf("%s face should stay uniform after R", face)
				t.Log(f.String())
				break
			}
		}
	}
}

func TestFourQuarterTurnsAreIdentity(t *testing.T) {
	for axis := AxisX; axis <= AxisZ; axis++ {
		for layer := 0; layer < 3; layer++ {
			for _, dir := range []Direction{Positive, Negative} {
				m := Move{Axis: axis, Layer: layer, Direction: dir}
				l := NewLattice(DefaultGeometry())
				for i := 0; i < 4; i++ {
					l.Apply(m)
				}
				sameLattice(t, l, NewLattice(DefaultGeometry()))
			}
		}
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	l := NewLattice(DefaultGeometry())
	for i := 0; i < 6; i++ {
		l.ApplyMoves(SexyMove)
	}
	if !l.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(l.Facelets().String())
	}
}

func TestTPermTwiceReturnsToSolved(t *testing.T) {
	l := NewLattice(DefaultGeometry())
	l.ApplyMoves(TPerm)
	if l.IsSolved() {
		t.Error("T-perm should not leave the cube solved")
	}
	l.ApplyMoves(TPerm)
	if !l.IsSolved() {
		t.Error("T-perm x 2 should return to solved")
		t.Log(l.Facelets().String())
	}
}

func TestInvertSequenceRestoresLattice(t *testing.T) {
	moves, err := ParseMoves("R U2 F' M E S' L D' B")
	if err != nil {
		t.Fatal(err)
	}

	l := NewLattice(DefaultGeometry())
	l.Apply(R)
	before := l.Clone()

	l.ApplyMoves(moves)
	l.ApplyMoves(InvertSequence(moves))
	sameLattice(t, l, before)
}

func TestCompletedMovesStayOnGrid(t *testing.T) {
	allowed := []float64{0, 0.5, math.Sqrt2 / 2, 1}
	moves, _ := ParseMoves("R U F' L2 D B' M S E' R' U2")

	for _, mode := range []SnapMode{SnapMatrix, SnapComponents} {
		l := NewLattice(DefaultGeometry())
		for _, m := range moves {
			l.ApplyWith(m, mode)
		}

		step := l.Geometry().Step()
		seen := make(map[[3]int]bool)
		for _, c := range l.Cubies() {
			for _, v := range c.Position {
				if !scalar.EqualWithinAbs(v/step, math.Round(v/step), testTol) {
					t.Errorf("%s: position %v is off the grid", mode, c.Position)
				}
			}
			q := c.Orientation
			for _, comp := range []float64{q.W, q.V[0], q.V[1], q.V[2]} {
				ok := false
				for _, a := range allowed {
					if scalar.EqualWithinAbs(math.Abs(comp), a, 1e-9) {
						ok = true
					}
				}
				if !ok {
					t.Errorf("%s: orientation component %f is not quantized", mode, comp)
				}
			}
			cell := c.Grid(l.Geometry())
			if seen[cell] {
				t.Errorf("%s: two cubies share cell %v", mode, cell)
			}
			seen[cell] = true
		}
	}
}

func TestResetMatchesNewLattice(t *testing.T) {
	l := NewLattice(DefaultGeometry())
	l.ApplyMoves(TPerm)
	l.Reset()
	sameLattice(t, l, NewLattice(DefaultGeometry()))
	if !l.IsSolved() {
		t.Error("Reset lattice should be solved")
	}
}

func TestCubieSticker(t *testing.T) {
	l := NewLattice(DefaultGeometry())
	l.Apply(R)
	for _, c := range l.Cubies() {
		if c.Home != [3]int{2, 0, 2} {
			continue
		}
		// The D-F-R corner now sits at U-F-R with its yellow sticker facing front.
		if got := c.Sticker(CubeFaceF); got != Yellow {
			t.Errorf("Sticker(F) = %s, want Y", got)
		}
		if got := c.Sticker(CubeFaceU); got != Green {
			t.Errorf("Sticker(U) = %s, want G", got)
		}
		if got := c.Sticker(CubeFaceL); got != Neutral {
			t.Errorf("Sticker(L) = %s, want -", got)
		}
	}
}

func TestFaceletsString(t *testing.T) {
	net := NewLattice(DefaultGeometry()).Facelets().String()
	want := "      W W W \n" +
		"      W W W \n" +
		"      W W W \n" +
		"O O O G G G R R R B B B \n" +
		"O O O G G G R R R B B B \n" +
		"O O O G G G R R R B B B \n" +
		"      Y Y Y \n" +
		"      Y Y Y \n" +
		"      Y Y Y \n"
	if net != want {
		t.Errorf("unexpected net:\n%s", net)
	}
}

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name string
		geom Geometry
		ok   bool
	}{
		{"default", DefaultGeometry(), true},
		{"no gap", Geometry{Size: 1, Gap: 0, Tolerance: 0.2}, true},
		{"zero tolerance", Geometry{Size: 1, Gap: 0.1, Tolerance: 0}, false},
		{"tolerance half step", Geometry{Size: 1, Gap: 0.1, Tolerance: 0.55}, false},
		{"negative gap", Geometry{Size: 1, Gap: -0.1, Tolerance: 0.1}, false},
		{"zero size", Geometry{Size: 0, Gap: 0.1, Tolerance: 0.01}, false},
	}

	for _, tt := range tests {
		err := tt.geom.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("%s: Validate() = %v, want ok=%v", tt.name, err, tt.ok)
		}
	}

	if _, err := NewGeometry(1, 0.1, 1); err == nil {
		t.Error("NewGeometry should reject a tolerance past half a step")
	}
}

func TestMaskKeepsOnlyLayerStickers(t *testing.T) {
	l := NewLattice(DefaultGeometry())
	members := make(map[int]bool)
	for _, i := range l.SelectLayer(AxisY, 2) {
		members[i] = true
	}
	l.Mask(func(i int) bool { return members[i] })

	f := l.Facelets()
	for i, c := range f.Stickers[CubeFaceU] {
		if c != White {
			t.Errorf("U[%d] = %s, want W", i, c)
		}
	}
	for i, c := range f.Stickers[CubeFaceD] {
		if c != Neutral {
			t.Errorf("D[%d] = %s, want hidden", i, c)
		}
	}
	// Only the top row of each side face belongs to the U layer.
	for i, c := range f.Stickers[CubeFaceF] {
		if (c != Neutral) != (i < 3) {
			t.Errorf("F[%d] = %s", i, c)
		}
	}
}
