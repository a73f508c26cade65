package twistycube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// State is the rotation engine state.
type State int

const (
	Idle State = iota
	Rotating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rotating:
		return "rotating"
	default:
		return "unknown"
	}
}

// MoveSource records where a move came from.
type MoveSource int

const (
	SourceInput    MoveSource = iota // keyboard or face key
	SourceScramble                   // generated by Scramble
	SourceSolve                      // replayed by Solve
	SourceExternal                   // pushed through Enqueue, e.g. a physical cube
)

func (s MoveSource) String() string {
	switch s {
	case SourceInput:
		return "input"
	case SourceScramble:
		return "scramble"
	case SourceSolve:
		return "solve"
	case SourceExternal:
		return "external"
	default:
		return "unknown"
	}
}

// MoveEvent is emitted after a quarter turn lands on the grid.
type MoveEvent struct {
	Move   Move
	Source MoveSource
	Index  int // 1-based count of completed moves since the engine was created or reset
}

type queuedMove struct {
	move   Move
	source MoveSource
}

// activeTurn is the move currently animating.
type activeTurn struct {
	move         Move
	source       MoveSource
	participants []int
	members      map[int]int // cubie index -> position in participants
	start        []pose
	angle        float64 // unsigned, 0..pi/2
}

// rotationEngine animates queued quarter turns one at a time.
type rotationEngine struct {
	lattice *Lattice
	step    float64
	snap    SnapMode
	log     logrus.FieldLogger

	state     State
	queue     []queuedMove
	history   []Move
	solving   bool
	active    *activeTurn
	completed int

	onMove func(MoveEvent)
}

func newRotationEngine(lattice *Lattice, cfg *config) *rotationEngine {
	return &rotationEngine{
		lattice: lattice,
		step:    cfg.turnStep,
		snap:    cfg.snapMode,
		log:     cfg.logger,
		state:   Idle,
	}
}

// enqueue starts m right away when idle, otherwise appends it to the queue.
// Moves are never dropped.
func (e *rotationEngine) enqueue(m Move, source MoveSource) {
	if e.state == Rotating {
		e.queue = append(e.queue, queuedMove{move: m, source: source})
		return
	}
	e.state = Rotating
	e.begin(queuedMove{move: m, source: source})
}

func (e *rotationEngine) begin(q queuedMove) {
	// A solve replay is never recorded; moves from any other source are,
	// even when they interleave with a replay.
	if q.source != SourceSolve {
		e.history = append(e.history, q.move)
	}

	participants := e.lattice.SelectLayer(q.move.Axis, q.move.Layer)
	members := make(map[int]int, len(participants))
	for k, i := range participants {
		members[i] = k
	}
	e.active = &activeTurn{
		move:         q.move,
		source:       q.source,
		participants: participants,
		members:      members,
		start:        e.lattice.poses(participants),
	}

	e.log.WithFields(logrus.Fields{
		"move":   q.move.Notation(),
		"source": q.source.String(),
		"cubies": len(participants),
		"queued": len(e.queue),
	}).Debug("Move started")
}

// advance moves the in-flight turn forward by one frame.
func (e *rotationEngine) advance() {
	if e.state != Rotating || e.active == nil {
		return
	}

	remaining := math.Pi/2 - e.active.angle
	if e.step >= remaining {
		e.active.angle = math.Pi / 2
		e.finish()
		return
	}
	e.active.angle += e.step
}

func (e *rotationEngine) finish() {
	done := e.active
	e.lattice.turn(done.participants, done.start, done.move, e.snap)
	e.active = nil
	e.completed++
	event := MoveEvent{Move: done.move, Source: done.source, Index: e.completed}

	if len(e.queue) > 0 {
		next := e.queue[0]
		e.queue = e.queue[1:]
		e.begin(next)
	} else {
		e.state = Idle
	}
	if e.solving && !e.replaying() {
		e.solving = false
	}

	e.log.WithFields(logrus.Fields{
		"move":  done.move.Notation(),
		"index": event.Index,
	}).Debug("Move completed")

	if e.onMove != nil {
		e.onMove(event)
	}
}

// replaying reports whether a solve move is in flight or still queued.
func (e *rotationEngine) replaying() bool {
	if e.active != nil && e.active.source == SourceSolve {
		return true
	}
	for _, q := range e.queue {
		if q.source == SourceSolve {
			return true
		}
	}
	return false
}

// reset discards the queue, the history and any in-flight turn. The lattice
// itself is left to the caller.
func (e *rotationEngine) reset() {
	e.state = Idle
	e.queue = nil
	e.history = nil
	e.solving = false
	e.active = nil
	e.completed = 0
}

// progress returns the fraction of the in-flight turn already covered.
func (e *rotationEngine) progress() float64 {
	if e.active == nil {
		return 0
	}
	return e.active.angle / (math.Pi / 2)
}

// pose returns cubie i as it should be drawn this frame.
func (e *rotationEngine) pose(i int) (mgl64.Vec3, mgl64.Quat) {
	c := e.lattice.cubies[i]
	if e.active == nil {
		return c.Position, c.Orientation
	}
	k, ok := e.active.members[i]
	if !ok {
		return c.Position, c.Orientation
	}
	q := quarterTurn(e.active.move.Axis, float64(e.active.move.Direction)*e.active.angle)
	from := e.active.start[k]
	return q.Rotate(from.position), q.Mul(from.orientation)
}

// inFlight returns the move currently animating.
func (e *rotationEngine) inFlight() (Move, bool) {
	if e.active == nil {
		return Move{}, false
	}
	return e.active.move, true
}
