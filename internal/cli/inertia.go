package cli

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Arrow keys spin the cube like a flick of the mouse: each press adds
// pointer velocity, and a critically damped spring bleeds it off.
const (
	arrowImpulse     = 12.0 // pointer units per frame added by one key press
	inertiaRestSpeed = 0.05 // below this the drag is released
)

// inertiaAxis tracks velocity for one pointer axis with spring decay.
type inertiaAxis struct {
	velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating velocity toward 0)
}

func newInertiaAxis(fps int) inertiaAxis {
	return inertiaAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// step returns this frame's travel and decays the velocity.
func (a *inertiaAxis) step() float64 {
	d := a.velocity
	a.velocity, a.velAccel = a.velSpring.Update(a.velocity, a.velAccel, 0)
	return d
}

// inertia drives a virtual pointer for keyboard rotation.
type inertia struct {
	x, y   inertiaAxis
	px, py float64 // virtual pointer position
	active bool
}

func newInertia(fps int) *inertia {
	return &inertia{x: newInertiaAxis(fps), y: newInertiaAxis(fps)}
}

// push adds velocity. It reports whether a new drag has to begin at the
// returned pointer position.
func (in *inertia) push(dx, dy float64) (begin bool, x, y float64) {
	in.x.velocity += dx * arrowImpulse
	in.y.velocity += dy * arrowImpulse
	if in.active {
		return false, in.px, in.py
	}
	in.active = true
	in.px, in.py = 0, 0
	return true, in.px, in.py
}

// step advances one frame. It returns the new pointer position and whether
// the drag should end because the cube has come to rest.
func (in *inertia) step() (x, y float64, release bool) {
	if !in.active {
		return 0, 0, false
	}
	in.px += in.x.step()
	in.py += in.y.step()

	if math.Abs(in.x.velocity) < inertiaRestSpeed && math.Abs(in.y.velocity) < inertiaRestSpeed {
		in.stop()
		return in.px, in.py, true
	}
	return in.px, in.py, false
}

// stop drops all velocity.
func (in *inertia) stop() {
	in.active = false
	in.x.velocity, in.x.velAccel = 0, 0
	in.y.velocity, in.y.velAccel = 0, 0
}
