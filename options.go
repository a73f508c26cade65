package twistycube

import (
	"io"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// Default tuning values. They reproduce the feel of the browser widget the
// engine was first written for.
const (
	DefaultTurnStep        = 0.09  // radians advanced per frame
	DefaultDamping         = 0.1   // slerp fraction per frame while settling
	DefaultSettleEpsilon   = 0.001 // radians
	DefaultDragSensitivity = 0.01  // radians per pointer unit
	DefaultScrambleLength  = 25
)

// Option configures a Controller.
type Option func(*config)

type config struct {
	geometry        Geometry
	turnStep        float64
	damping         float64
	epsilon         float64
	dragSensitivity float64
	scrambleLength  int
	snapMode        SnapMode
	cameraRight     mgl64.Vec3
	cameraUp        mgl64.Vec3
	rng             *rand.Rand
	logger          logrus.FieldLogger
}

func defaultConfig() *config {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	return &config{
		geometry:        DefaultGeometry(),
		turnStep:        DefaultTurnStep,
		damping:         DefaultDamping,
		epsilon:         DefaultSettleEpsilon,
		dragSensitivity: DefaultDragSensitivity,
		scrambleLength:  DefaultScrambleLength,
		snapMode:        SnapMatrix,
		cameraRight:     mgl64.Vec3{1, 0, 0},
		cameraUp:        mgl64.Vec3{0, 1, 0},
		rng:             rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:          quiet,
	}
}

// WithGeometry sets the cubie size, gap and layer-selection tolerance.
func WithGeometry(g Geometry) Option {
	return func(c *config) {
		c.geometry = g
	}
}

// WithTurnStep sets how many radians a twist advances per Tick.
// Non-positive values are ignored.
func WithTurnStep(radians float64) Option {
	return func(c *config) {
		if radians > 0 {
			c.turnStep = radians
		}
	}
}

// WithDamping sets the fraction of the remaining arc covered per Tick while
// the cube settles onto its lock orientation. Values outside (0, 1] are ignored.
func WithDamping(fraction float64) Option {
	return func(c *config) {
		if fraction > 0 && fraction <= 1 {
			c.damping = fraction
		}
	}
}

// WithDragSensitivity sets the rotation in radians per unit of pointer travel.
func WithDragSensitivity(radiansPerUnit float64) Option {
	return func(c *config) {
		if radiansPerUnit > 0 {
			c.dragSensitivity = radiansPerUnit
		}
	}
}

// WithScrambleLength sets the number of random quarter turns Scramble enqueues.
func WithScrambleLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.scrambleLength = n
		}
	}
}

// WithSnapMode selects how orientations are re-quantized after each twist.
func WithSnapMode(mode SnapMode) Option {
	return func(c *config) {
		c.snapMode = mode
	}
}

// WithCamera sets the camera's right and up vectors in world space. Drags
// rotate about these axes.
func WithCamera(right, up mgl64.Vec3) Option {
	return func(c *config) {
		if right.Len() > 0 && up.Len() > 0 {
			c.cameraRight = right.Normalize()
			c.cameraUp = up.Normalize()
		}
	}
}

// WithRand sets the random source used by Scramble.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithSeed is a convenience for a reproducible scramble sequence.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
