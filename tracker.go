package twistycube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Tracker owns the whole-cube orientation. While the user drags, the group
// orientation follows the pointer freely. On release it locks onto the
// nearest grid-aligned orientation and Step eases it there.
type Tracker struct {
	group  mgl64.Quat
	lock   mgl64.Quat
	locked bool

	dragging     bool
	lastX, lastY float64

	right, up   mgl64.Vec3
	sensitivity float64
	damping     float64
	epsilon     float64

	lockCallback func(locked bool)
}

// NewTracker creates a locked tracker at the identity orientation.
func NewTracker(opts ...Option) *Tracker {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return newTracker(cfg)
}

func newTracker(cfg *config) *Tracker {
	t := &Tracker{
		right:       cfg.cameraRight,
		up:          cfg.cameraUp,
		sensitivity: cfg.dragSensitivity,
		damping:     cfg.damping,
		epsilon:     cfg.epsilon,
	}
	t.Reset()
	return t
}

// SetLockCallback sets a callback that fires whenever the locked flag flips.
func (t *Tracker) SetLockCallback(cb func(locked bool)) {
	t.lockCallback = cb
}

// Reset returns both orientations to identity and forces the locked state.
func (t *Tracker) Reset() {
	wasLocked := t.locked
	t.group = mgl64.QuatIdent()
	t.lock = mgl64.QuatIdent()
	t.locked = true
	t.dragging = false
	if !wasLocked && t.lockCallback != nil {
		t.lockCallback(true)
	}
}

// BeginDrag starts a free rotation at the given pointer position.
func (t *Tracker) BeginDrag(x, y float64) {
	t.dragging = true
	t.lastX, t.lastY = x, y
	t.setLocked(false)
}

// Drag rotates the group by the pointer travel since the previous call.
// Horizontal travel turns about the camera's up axis, vertical travel about
// its right axis. Calls without an active drag are ignored.
func (t *Tracker) Drag(x, y float64) {
	if !t.dragging {
		return
	}
	dx, dy := x-t.lastX, y-t.lastY
	t.lastX, t.lastY = x, y

	qx := mgl64.QuatRotate(dy*t.sensitivity, t.right)
	qy := mgl64.QuatRotate(dx*t.sensitivity, t.up)
	t.group = qy.Mul(qx.Mul(t.group)).Normalize()
}

// EndDrag finishes a drag and locks onto the nearest orthogonal orientation.
// It is safe to call without an active drag.
func (t *Tracker) EndDrag() {
	if !t.dragging {
		return
	}
	t.dragging = false
	t.lock = SnapOrthogonal(t.group)
	t.setLocked(true)
}

func (t *Tracker) setLocked(locked bool) {
	if t.locked == locked {
		return
	}
	t.locked = locked
	if t.lockCallback != nil {
		t.lockCallback(locked)
	}
}

// Step advances the settle animation by one frame.
func (t *Tracker) Step() {
	if !t.locked || t.Settled() {
		return
	}
	if angleBetween(t.group, t.lock) <= t.epsilon {
		t.group = t.lock
		return
	}

	// QuatSlerp does not pick the short way round on its own.
	target := t.lock
	if t.group.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	t.group = mgl64.QuatSlerp(t.group, target, t.damping).Normalize()
	if angleBetween(t.group, t.lock) <= t.epsilon {
		t.group = t.lock
	}
}

// Settled reports whether the group orientation sits exactly on the lock.
func (t *Tracker) Settled() bool {
	return t.group == t.lock
}

// Locked reports whether the cube is accepting twists.
func (t *Tracker) Locked() bool {
	return t.locked
}

// Dragging reports whether a drag is in progress.
func (t *Tracker) Dragging() bool {
	return t.dragging
}

// Group returns the live orientation of the whole cube.
func (t *Tracker) Group() mgl64.Quat {
	return t.group
}

// Lock returns the grid-aligned orientation the cube settles onto.
func (t *Tracker) Lock() mgl64.Quat {
	return t.lock
}

// ScreenFaces returns which local faces currently point at the screen's up
// and front directions.
func (t *Tracker) ScreenFaces() (up, front CubeFace) {
	inv := t.group.Inverse()
	up = faceFromNormal(inv.Rotate(mgl64.Vec3{0, 1, 0}))
	front = faceFromNormal(inv.Rotate(mgl64.Vec3{0, 0, 1}))
	return up, front
}

// SnapOrthogonal returns the grid-aligned orientation nearest to q, found by
// rounding each XYZ Euler angle to a multiple of 90 degrees.
func SnapOrthogonal(q mgl64.Quat) mgl64.Quat {
	x, y, z := eulerXYZ(q)
	x, y, z = roundQuarter(x), roundQuarter(y), roundQuarter(z)
	snapped := mgl64.QuatRotate(x, mgl64.Vec3{1, 0, 0}).
		Mul(mgl64.QuatRotate(y, mgl64.Vec3{0, 1, 0})).
		Mul(mgl64.QuatRotate(z, mgl64.Vec3{0, 0, 1}))
	return snapMatrix(snapped)
}

func roundQuarter(angle float64) float64 {
	return math.Round(angle/(math.Pi/2)) * (math.Pi / 2)
}

// eulerXYZ decomposes q into intrinsic X, then Y, then Z angles.
func eulerXYZ(q mgl64.Quat) (x, y, z float64) {
	m := q.Normalize().Mat4()
	m02 := mgl64.Clamp(m.At(0, 2), -1, 1)
	y = math.Asin(m02)
	if math.Abs(m02) < 0.9999999 {
		x = math.Atan2(-m.At(1, 2), m.At(2, 2))
		z = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		x = math.Atan2(m.At(2, 1), m.At(1, 1))
		z = 0
	}
	return x, y, z
}
