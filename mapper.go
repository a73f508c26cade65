package twistycube

import (
	"math"
	"unicode"

	"github.com/go-gl/mathgl/mgl64"
)

// FaceKey is a screen-relative face letter. U always means "the face that
// currently points up", whatever the cube's orientation.
type FaceKey byte

const (
	KeyU FaceKey = 'U'
	KeyD FaceKey = 'D'
	KeyL FaceKey = 'L'
	KeyR FaceKey = 'R'
	KeyF FaceKey = 'F'
	KeyB FaceKey = 'B'
)

// FaceKeys lists the six face keys.
var FaceKeys = []FaceKey{KeyU, KeyD, KeyL, KeyR, KeyF, KeyB}

func (k FaceKey) String() string {
	return string(rune(k))
}

// Vector returns the fixed world-space direction of the key.
func (k FaceKey) Vector() (mgl64.Vec3, bool) {
	switch k {
	case KeyU:
		return mgl64.Vec3{0, 1, 0}, true
	case KeyD:
		return mgl64.Vec3{0, -1, 0}, true
	case KeyL:
		return mgl64.Vec3{-1, 0, 0}, true
	case KeyR:
		return mgl64.Vec3{1, 0, 0}, true
	case KeyF:
		return mgl64.Vec3{0, 0, 1}, true
	case KeyB:
		return mgl64.Vec3{0, 0, -1}, true
	}
	return mgl64.Vec3{}, false
}

// ParseFaceKey interprets a typed character. Lower case is a plain twist,
// upper case is the shifted (reverse) twist.
func ParseFaceKey(r rune) (key FaceKey, reverse bool, ok bool) {
	upper := unicode.ToUpper(r)
	if upper > unicode.MaxASCII {
		return 0, false, false
	}
	key = FaceKey(upper)
	if _, valid := key.Vector(); !valid {
		return 0, false, false
	}
	return key, unicode.IsUpper(r), true
}

// MapFace turns a screen-relative face key into a move in the cube's local
// frame, given the cube's orientation. The key's world vector is carried
// into the local frame and its dominant component picks the axis.
func MapFace(key FaceKey, reverse bool, orientation mgl64.Quat) (Move, error) {
	world, ok := key.Vector()
	if !ok {
		return Move{}, ErrUnknownKey
	}
	local := orientation.Normalize().Inverse().Rotate(world)
	axis := dominantAxis(local)

	layer, dir := 0, Positive
	if local[axis] > 0 {
		layer, dir = 2, Negative
	}
	if reverse {
		dir = -dir
	}
	return Move{Axis: axis, Layer: layer, Direction: dir}, nil
}

// dominantAxis returns the axis of the largest absolute component. Exact
// ties go to x, then y.
func dominantAxis(v mgl64.Vec3) Axis {
	axis := AxisX
	best := math.Abs(v[0])
	if a := math.Abs(v[1]); a > best {
		axis, best = AxisY, a
	}
	if a := math.Abs(v[2]); a > best {
		axis = AxisZ
	}
	return axis
}
