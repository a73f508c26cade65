package twistycube

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Color represents a sticker color.
type Color byte

const (
	White   Color = 0 // Up face when solved
	Yellow  Color = 1 // Down face when solved
	Green   Color = 2 // Front face when solved
	Blue    Color = 3 // Back face when solved
	Red     Color = 4 // Right face when solved
	Orange  Color = 5 // Left face when solved
	Neutral Color = 6 // Hidden, interior-facing side of a cubie
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	case Neutral:
		return "-"
	default:
		return "?"
	}
}

// CubeFace names one of the six face directions of the cube's local frame.
// Cubie stickers are indexed by CubeFace too, in the cubie's own frame.
type CubeFace int

const (
	CubeFaceU CubeFace = 0 // +Y (White)
	CubeFaceD CubeFace = 1 // -Y (Yellow)
	CubeFaceF CubeFace = 2 // +Z (Green)
	CubeFaceB CubeFace = 3 // -Z (Blue)
	CubeFaceR CubeFace = 4 // +X (Red)
	CubeFaceL CubeFace = 5 // -X (Orange)
)

func (f CubeFace) String() string {
	switch f {
	case CubeFaceU:
		return "U"
	case CubeFaceD:
		return "D"
	case CubeFaceF:
		return "F"
	case CubeFaceB:
		return "B"
	case CubeFaceR:
		return "R"
	case CubeFaceL:
		return "L"
	default:
		return "?"
	}
}

// Normal returns the outward unit vector of the face.
func (f CubeFace) Normal() mgl64.Vec3 {
	switch f {
	case CubeFaceU:
		return mgl64.Vec3{0, 1, 0}
	case CubeFaceD:
		return mgl64.Vec3{0, -1, 0}
	case CubeFaceF:
		return mgl64.Vec3{0, 0, 1}
	case CubeFaceB:
		return mgl64.Vec3{0, 0, -1}
	case CubeFaceR:
		return mgl64.Vec3{1, 0, 0}
	case CubeFaceL:
		return mgl64.Vec3{-1, 0, 0}
	default:
		return mgl64.Vec3{}
	}
}

// faceToSolvedColor returns the color of a face when solved.
func faceToSolvedColor(f CubeFace) Color {
	switch f {
	case CubeFaceU:
		return White
	case CubeFaceD:
		return Yellow
	case CubeFaceF:
		return Green
	case CubeFaceB:
		return Blue
	case CubeFaceR:
		return Red
	case CubeFaceL:
		return Orange
	default:
		return Neutral
	}
}

// NearestFace returns the face whose outward normal is closest to v.
// Exact ties prefer U/D, then F/B.
func NearestFace(v mgl64.Vec3) CubeFace {
	return faceFromNormal(v)
}

func faceFromNormal(v mgl64.Vec3) CubeFace {
	ax, ay, az := math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])

	switch {
	case ay >= ax && ay >= az:
		if v[1] > 0 {
			return CubeFaceU
		}
		return CubeFaceD
	case az >= ax:
		if v[2] > 0 {
			return CubeFaceF
		}
		return CubeFaceB
	default:
		if v[0] > 0 {
			return CubeFaceR
		}
		return CubeFaceL
	}
}

// Facelets is the sticker view of a lattice. Each face has 9 facelets
// indexed as seen from outside the cube:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// U is seen with B at the top, D with F at the top, and the four side faces
// with U at the top.
type Facelets struct {
	// Stickers[face][position] = color
	Stickers [6][9]Color
}

// stickerIndex maps a grid cell on the given face to its facelet index.
func stickerIndex(face CubeFace, cell [3]int) int {
	x, y, z := cell[0], cell[1], cell[2]
	var row, col int
	switch face {
	case CubeFaceU:
		row, col = z, x
	case CubeFaceD:
		row, col = 2-z, x
	case CubeFaceF:
		row, col = 2-y, x
	case CubeFaceB:
		row, col = 2-y, 2-x
	case CubeFaceR:
		row, col = 2-y, 2-z
	case CubeFaceL:
		row, col = 2-y, z
	}
	return row*3 + col
}

// IsSolved returns true if every face shows a single color.
func (f *Facelets) IsSolved() bool {
	for face := CubeFace(0); face < 6; face++ {
		first := f.Stickers[face][0]
		if first == Neutral {
			return false
		}
		for i := 1; i < 9; i++ {
			if f.Stickers[face][i] != first {
				return false
			}
		}
	}
	return true
}

// Center returns the color of a face's center facelet.
func (f *Facelets) Center(face CubeFace) Color {
	return f.Stickers[face][4]
}

// String returns the unfolded net:
//
//	      U
//	L F R B
//	      D
func (f *Facelets) String() string {
	var b strings.Builder

	writeRow := func(face CubeFace, row int) {
		for col := 0; col < 3; col++ {
			b.WriteString(f.Stickers[face][row*3+col].String())
			b.WriteString(" ")
		}
	}

	// U face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(CubeFaceU, row)
		b.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []CubeFace{CubeFaceL, CubeFaceF, CubeFaceR, CubeFaceB} {
			writeRow(face, row)
		}
		b.WriteString("\n")
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(CubeFaceD, row)
		b.WriteString("\n")
	}

	return b.String()
}
