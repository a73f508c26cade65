package twistycube

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry describes the physical layout of the 3x3x3 lattice.
type Geometry struct {
	Size      float64 // cubie edge length
	Gap       float64 // space between neighbouring cubies
	Tolerance float64 // layer membership tolerance along the turn axis
}

// DefaultGeometry returns unit cubies with a 0.1 gap.
func DefaultGeometry() Geometry {
	return Geometry{Size: 1, Gap: 0.1, Tolerance: 0.1}
}

// NewGeometry returns a validated geometry.
func NewGeometry(size, gap, tolerance float64) (Geometry, error) {
	g := Geometry{Size: size, Gap: gap, Tolerance: tolerance}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// Step returns the centre-to-centre spacing of neighbouring cubies.
func (g Geometry) Step() float64 {
	return g.Size + g.Gap
}

// Validate checks that layers can be told apart. The tolerance has to stay
// below half a step or a selection would leak into the neighbouring layer.
func (g Geometry) Validate() error {
	if g.Size <= 0 || g.Gap < 0 {
		return fmt.Errorf("%w: size %.3f gap %.3f", ErrInvalidGeometry, g.Size, g.Gap)
	}
	if g.Tolerance <= 1e-9 || g.Tolerance >= g.Step()/2 {
		return fmt.Errorf("%w: tolerance %.3f outside (0, %.3f)", ErrInvalidGeometry, g.Tolerance, g.Step()/2)
	}
	return nil
}

// LayerCoord returns the local coordinate of a layer along its axis.
func (g Geometry) LayerCoord(layer int) float64 {
	return float64(layer-1) * g.Step()
}

// Offset returns the local position of a grid cell.
func (g Geometry) Offset(cell [3]int) mgl64.Vec3 {
	return mgl64.Vec3{g.LayerCoord(cell[0]), g.LayerCoord(cell[1]), g.LayerCoord(cell[2])}
}

// Cell returns the grid cell nearest to a local position.
func (g Geometry) Cell(p mgl64.Vec3) [3]int {
	var cell [3]int
	for i := range cell {
		cell[i] = int(math.Round(p[i]/g.Step())) + 1
	}
	return cell
}
