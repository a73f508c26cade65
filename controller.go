package twistycube

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// Controller is the single owner of a cube: its lattice, whole-cube
// orientation and rotation engine. All calls are expected from one goroutine,
// typically a UI loop that also calls Tick once per frame.
type Controller struct {
	cfg     *config
	lattice *Lattice
	tracker *Tracker
	engine  *rotationEngine
	rng     *rand.Rand
	log     logrus.FieldLogger

	solved bool

	moveCallback   func(MoveEvent)
	solvedCallback func()
	lockCallback   func(locked bool)
}

// New creates a controller holding a solved cube at identity orientation.
func New(opts ...Option) (*Controller, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.geometry.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:     cfg,
		lattice: NewLattice(cfg.geometry),
		tracker: newTracker(cfg),
		rng:     cfg.rng,
		log:     cfg.logger,
		solved:  true,
	}
	c.engine = newRotationEngine(c.lattice, cfg)
	c.engine.onMove = c.handleMove
	c.tracker.SetLockCallback(c.handleLock)
	return c, nil
}

// OnMove sets a callback that fires after every completed quarter turn.
func (c *Controller) OnMove(cb func(MoveEvent)) {
	c.moveCallback = cb
}

// OnSolved sets a callback that fires when a completed move leaves the cube
// solved after it was not.
func (c *Controller) OnSolved(cb func()) {
	c.solvedCallback = cb
}

// OnLockChange sets a callback that fires when the lock status flips.
func (c *Controller) OnLockChange(cb func(locked bool)) {
	c.lockCallback = cb
}

func (c *Controller) handleMove(ev MoveEvent) {
	if c.moveCallback != nil {
		c.moveCallback(ev)
	}

	solved := c.lattice.IsSolved()
	if solved && !c.solved {
		c.log.WithField("moves", ev.Index).Info("Cube solved")
		if c.solvedCallback != nil {
			c.solvedCallback()
		}
	}
	c.solved = solved
}

func (c *Controller) handleLock(locked bool) {
	c.log.WithField("status", lockStatus(locked)).Debug("Lock status changed")
	if c.lockCallback != nil {
		c.lockCallback(locked)
	}
}

// ready checks the shared precondition of every user command.
func (c *Controller) ready(op string) error {
	var err error
	switch {
	case c.engine.state == Rotating:
		err = ErrRotating
	case !c.tracker.Locked():
		err = ErrUnlocked
	}
	if err != nil {
		c.log.WithError(err).WithField("op", op).Debug("Command rejected")
	}
	return err
}

// Scramble clears the history and enqueues random outer-layer quarter turns.
// It returns the generated moves. Requires Idle and locked.
func (c *Controller) Scramble() ([]Move, error) {
	if err := c.ready("scramble"); err != nil {
		return nil, err
	}

	moves := make([]Move, c.cfg.scrambleLength)
	for i := range moves {
		dir := Positive
		if c.rng.IntN(2) == 1 {
			dir = Negative
		}
		moves[i] = Move{
			Axis:      Axis(c.rng.IntN(3)),
			Layer:     c.rng.IntN(2) * 2,
			Direction: dir,
		}
	}

	c.engine.history = nil
	for _, m := range moves {
		c.engine.enqueue(m, SourceScramble)
	}

	c.log.WithField("moves", FormatMoves(moves)).Info("Scramble started")
	return moves, nil
}

// Solve replays the history backwards with every direction inverted.
// The replay itself is not recorded. Requires Idle and locked; an empty
// history makes it a no-op.
func (c *Controller) Solve() error {
	if err := c.ready("solve"); err != nil {
		return err
	}
	if len(c.engine.history) == 0 {
		return nil
	}

	c.engine.solving = true
	replay := InvertSequence(c.engine.history)
	c.engine.history = nil
	for _, m := range replay {
		c.engine.enqueue(m, SourceSolve)
	}

	c.log.WithField("moves", len(replay)).Info("Solve started")
	return nil
}

// Reset discards the queue and history, recreates a solved lattice and
// returns the orientation to identity, locked. Requires Idle only.
func (c *Controller) Reset() error {
	if c.engine.state == Rotating {
		c.log.WithError(ErrRotating).WithField("op", "reset").Debug("Command rejected")
		return ErrRotating
	}

	c.engine.reset()
	c.lattice.Reset()
	c.tracker.Reset()
	c.solved = true

	c.log.Info("Cube reset")
	return nil
}

// Key handles a typed face letter; upper case reverses the twist.
func (c *Controller) Key(r rune) error {
	key, reverse, ok := ParseFaceKey(r)
	if !ok {
		return ErrUnknownKey
	}
	return c.Twist(key, reverse)
}

// Twist turns the face that currently points toward key on screen.
// Requires Idle and locked.
func (c *Controller) Twist(key FaceKey, reverse bool) error {
	if err := c.ready("twist"); err != nil {
		return err
	}
	m, err := MapFace(key, reverse, c.tracker.Lock())
	if err != nil {
		return err
	}
	c.engine.enqueue(m, SourceInput)
	return nil
}

// Enqueue queues a move expressed in the cube's own frame. Unlike Twist it
// is not gated: moves arriving while a turn is in flight wait their turn.
func (c *Controller) Enqueue(m Move) error {
	if !m.Valid() {
		return ErrInvalidMove
	}
	c.engine.enqueue(m, SourceExternal)
	return nil
}

// PointerDown starts a free rotation of the whole cube.
func (c *Controller) PointerDown(x, y float64) {
	c.tracker.BeginDrag(x, y)
}

// PointerMove drags the whole cube.
func (c *Controller) PointerMove(x, y float64) {
	c.tracker.Drag(x, y)
}

// PointerUp ends a drag. Extra calls, e.g. on pointer leave, are harmless.
func (c *Controller) PointerUp() {
	c.tracker.EndDrag()
}

// Tick advances one animation frame.
func (c *Controller) Tick() {
	c.tracker.Step()
	c.engine.advance()
}

// State returns the engine state.
func (c *Controller) State() State {
	return c.engine.state
}

// Locked reports whether the cube is lock-oriented.
func (c *Controller) Locked() bool {
	return c.tracker.Locked()
}

// LockStatus returns the status text shown to the user.
func (c *Controller) LockStatus() string {
	return lockStatus(c.tracker.Locked())
}

func lockStatus(locked bool) string {
	if locked {
		return "LOCKED"
	}
	return "UNLOCKED"
}

// QueueLen returns the number of moves waiting behind the in-flight one.
func (c *Controller) QueueLen() int {
	return len(c.engine.queue)
}

// History returns a copy of the recorded moves.
func (c *Controller) History() []Move {
	out := make([]Move, len(c.engine.history))
	copy(out, c.engine.history)
	return out
}

// Solving reports whether a solve replay is in progress.
func (c *Controller) Solving() bool {
	return c.engine.solving
}

// InFlight returns the move currently animating, if any.
func (c *Controller) InFlight() (Move, bool) {
	return c.engine.inFlight()
}

// Progress returns the completed fraction of the in-flight move.
func (c *Controller) Progress() float64 {
	return c.engine.progress()
}

// GroupOrientation returns the live whole-cube orientation.
func (c *Controller) GroupOrientation() mgl64.Quat {
	return c.tracker.Group()
}

// LockOrientation returns the grid-aligned orientation the cube settles on.
func (c *Controller) LockOrientation() mgl64.Quat {
	return c.tracker.Lock()
}

// ScreenFaces returns which local faces point at the screen's up and front.
func (c *Controller) ScreenFaces() (up, front CubeFace) {
	return c.tracker.ScreenFaces()
}

// Cubies returns every cubie with its pose for this frame, including the
// partial rotation of an in-flight layer.
func (c *Controller) Cubies() []Cubie {
	out := c.lattice.Cubies()
	for i := range out {
		out[i].Position, out[i].Orientation = c.engine.pose(i)
	}
	return out
}

// Lattice returns a snapshot of the logical lattice.
func (c *Controller) Lattice() *Lattice {
	return c.lattice.Clone()
}

// Facelets returns the sticker net of the logical lattice.
func (c *Controller) Facelets() *Facelets {
	return c.lattice.Facelets()
}

// IsSolved reports whether the logical lattice is solved.
func (c *Controller) IsSolved() bool {
	return c.lattice.IsSolved()
}

// Geometry returns the lattice geometry.
func (c *Controller) Geometry() Geometry {
	return c.cfg.geometry
}
