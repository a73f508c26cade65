package twistycube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SnapMode selects how a cubie orientation is re-quantized after a twist.
type SnapMode int

const (
	// SnapMatrix rounds every entry of the rotation matrix to -1, 0 or 1.
	// Any product of quarter turns is a signed permutation matrix, so the
	// rounding recovers it exactly.
	SnapMatrix SnapMode = iota

	// SnapComponents rounds each quaternion component to a multiple of 0.5
	// and renormalizes, which restores components of ±√½ from ±0.5.
	SnapComponents
)

func (m SnapMode) String() string {
	switch m {
	case SnapMatrix:
		return "matrix"
	case SnapComponents:
		return "components"
	default:
		return "unknown"
	}
}

// quarterTurn returns the rotation of a layer by angle about axis.
func quarterTurn(axis Axis, angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, axis.Unit())
}

func snapPosition(p mgl64.Vec3, step float64) mgl64.Vec3 {
	for i := range p {
		p[i] = math.Round(p[i]/step) * step
	}
	return p
}

func snapOrientation(q mgl64.Quat, mode SnapMode) mgl64.Quat {
	if mode == SnapComponents {
		return snapComponents(q)
	}
	return snapMatrix(q)
}

func snapMatrix(q mgl64.Quat) mgl64.Quat {
	m := q.Normalize().Mat4()
	snapped := mgl64.Ident4()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			snapped.Set(row, col, math.Round(m.At(row, col)))
		}
	}
	return canonical(mgl64.Mat4ToQuat(snapped).Normalize())
}

func snapComponents(q mgl64.Quat) mgl64.Quat {
	half := func(v float64) float64 { return math.Round(v*2) / 2 }
	snapped := mgl64.Quat{
		W: half(q.W),
		V: mgl64.Vec3{half(q.V[0]), half(q.V[1]), half(q.V[2])},
	}
	return canonical(snapped.Normalize())
}

// canonical picks the representative with a non-negative leading component,
// so equal rotations compare equal component-wise.
func canonical(q mgl64.Quat) mgl64.Quat {
	const eps = 1e-9
	for _, c := range [4]float64{q.W, q.V[0], q.V[1], q.V[2]} {
		if c > eps {
			return q
		}
		if c < -eps {
			return q.Scale(-1)
		}
	}
	return q
}

// angleBetween returns the rotation angle separating two orientations.
func angleBetween(a, b mgl64.Quat) float64 {
	dot := math.Abs(a.Normalize().Dot(b.Normalize()))
	if dot > 1 {
		dot = 1
	}
	return 2 * math.Acos(dot)
}

// SameRotation reports whether two quaternions describe the same rotation
// within tol radians.
func SameRotation(a, b mgl64.Quat, tol float64) bool {
	return angleBetween(a, b) <= tol
}
