package twistycube

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

// Cubie is one of the 26 visible sub-cubes. Position and Orientation are
// expressed in the cube's local frame; Stickers never change, so colors
// travel with the cubie rather than with the grid slot.
type Cubie struct {
	Home        [3]int     // grid cell at creation
	Position    mgl64.Vec3 // current local offset
	Orientation mgl64.Quat // composed quarter turns
	Stickers    [6]Color   // indexed by the cubie's own CubeFace
}

// Grid returns the grid cell the cubie currently occupies.
func (c Cubie) Grid(g Geometry) [3]int {
	return g.Cell(c.Position)
}

// Sticker returns the color the cubie shows toward the given local face,
// or Neutral if that side is hidden.
func (c Cubie) Sticker(face CubeFace) Color {
	own := faceFromNormal(c.Orientation.Inverse().Rotate(face.Normal()))
	return c.Stickers[own]
}

// Lattice is the logical model of the cube: 26 positioned, oriented cubies.
type Lattice struct {
	geom   Geometry
	cubies []Cubie
}

// NewLattice creates a solved lattice. The geometry is not validated here;
// New does that for controllers.
func NewLattice(geom Geometry) *Lattice {
	l := &Lattice{geom: geom}
	l.Reset()
	return l
}

// Reset discards every cubie and recreates the solved, identity-oriented set.
func (l *Lattice) Reset() {
	l.cubies = createCubies(l.geom)
}

func createCubies(geom Geometry) []Cubie {
	cubies := make([]Cubie, 0, 26)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				if x == 1 && y == 1 && z == 1 {
					continue
				}
				cell := [3]int{x, y, z}
				cubies = append(cubies, Cubie{
					Home:        cell,
					Position:    geom.Offset(cell),
					Orientation: mgl64.QuatIdent(),
					Stickers:    exteriorStickers(cell),
				})
			}
		}
	}
	return cubies
}

// exteriorStickers colors only the sides that face out of the cube.
func exteriorStickers(cell [3]int) [6]Color {
	var s [6]Color
	for i := range s {
		s[i] = Neutral
	}
	if cell[0] == 2 {
		s[CubeFaceR] = faceToSolvedColor(CubeFaceR)
	}
	if cell[0] == 0 {
		s[CubeFaceL] = faceToSolvedColor(CubeFaceL)
	}
	if cell[1] == 2 {
		s[CubeFaceU] = faceToSolvedColor(CubeFaceU)
	}
	if cell[1] == 0 {
		s[CubeFaceD] = faceToSolvedColor(CubeFaceD)
	}
	if cell[2] == 2 {
		s[CubeFaceF] = faceToSolvedColor(CubeFaceF)
	}
	if cell[2] == 0 {
		s[CubeFaceB] = faceToSolvedColor(CubeFaceB)
	}
	return s
}

// Geometry returns the lattice geometry.
func (l *Lattice) Geometry() Geometry {
	return l.geom
}

// Len returns the number of cubies (always 26).
func (l *Lattice) Len() int {
	return len(l.cubies)
}

// Cubie returns a copy of the i-th cubie.
func (l *Lattice) Cubie(i int) Cubie {
	return l.cubies[i]
}

// Cubies returns a copy of every cubie.
func (l *Lattice) Cubies() []Cubie {
	out := make([]Cubie, len(l.cubies))
	copy(out, l.cubies)
	return out
}

// Clone creates a deep copy of the lattice.
func (l *Lattice) Clone() *Lattice {
	return &Lattice{geom: l.geom, cubies: l.Cubies()}
}

// SelectLayer returns the indices of the cubies currently occupying the
// given slice. Membership is decided on the local coordinate along axis,
// within the geometry tolerance.
func (l *Lattice) SelectLayer(axis Axis, layer int) []int {
	want := l.geom.LayerCoord(layer)
	var indices []int
	for i, c := range l.cubies {
		if scalar.EqualWithinAbs(c.Position[axis], want, l.geom.Tolerance) {
			indices = append(indices, i)
		}
	}
	return indices
}

// Apply performs m instantly, without animation.
func (l *Lattice) Apply(m Move) {
	l.ApplyWith(m, SnapMatrix)
}

// ApplyWith performs m instantly using the given snap mode.
func (l *Lattice) ApplyWith(m Move, mode SnapMode) {
	indices := l.SelectLayer(m.Axis, m.Layer)
	l.turn(indices, l.poses(indices), m, mode)
}

// ApplyMoves applies a sequence of moves instantly.
func (l *Lattice) ApplyMoves(moves []Move) {
	for _, m := range moves {
		l.Apply(m)
	}
}

type pose struct {
	position    mgl64.Vec3
	orientation mgl64.Quat
}

func (l *Lattice) poses(indices []int) []pose {
	out := make([]pose, len(indices))
	for k, i := range indices {
		out[k] = pose{position: l.cubies[i].Position, orientation: l.cubies[i].Orientation}
	}
	return out
}

// turn lands a quarter turn: the final pose of every participant is computed
// from its pre-turn pose in one step, then snapped back onto the grid.
func (l *Lattice) turn(indices []int, from []pose, m Move, mode SnapMode) {
	q := quarterTurn(m.Axis, m.Angle())
	step := l.geom.Step()
	for k, i := range indices {
		c := &l.cubies[i]
		c.Position = snapPosition(q.Rotate(from[k].position), step)
		c.Orientation = snapOrientation(q.Mul(from[k].orientation), mode)
	}
}

// Facelets projects the lattice onto the six-face sticker net.
func (l *Lattice) Facelets() *Facelets {
	f := &Facelets{}
	for face := CubeFace(0); face < 6; face++ {
		for i := range f.Stickers[face] {
			f.Stickers[face][i] = Neutral
		}
	}

	for _, c := range l.cubies {
		cell := l.geom.Cell(c.Position)
		for own, color := range c.Stickers {
			if color == Neutral {
				continue
			}
			face := faceFromNormal(c.Orientation.Rotate(CubeFace(own).Normal()))
			f.Stickers[face][stickerIndex(face, cell)] = color
		}
	}
	return f
}

// Mask hides the stickers of every cubie for which keep returns false.
// It rewrites sticker colors, so call it on a Clone used for display,
// never on a lattice that is still being turned.
func (l *Lattice) Mask(keep func(i int) bool) {
	for i := range l.cubies {
		if keep(i) {
			continue
		}
		for face := range l.cubies[i].Stickers {
			l.cubies[i].Stickers[face] = Neutral
		}
	}
}

// IsSolved returns true if every face shows a single color.
func (l *Lattice) IsSolved() bool {
	return l.Facelets().IsSolved()
}
