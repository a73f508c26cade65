package twistycube

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis is one of the three grid axes of the cube's local frame.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Unit returns the positive unit vector along the axis.
func (a Axis) Unit() mgl64.Vec3 {
	var v mgl64.Vec3
	v[a] = 1
	return v
}

// Direction is the sign of a quarter turn about its axis (right-hand rule).
type Direction int

const (
	Positive Direction = 1
	Negative Direction = -1
)

// Move is a quarter-turn request: rotate the given layer along Axis by 90
// degrees in Direction. Layer 0 is the negative side, 2 the positive side.
type Move struct {
	Axis      Axis
	Layer     int
	Direction Direction
}

// Valid reports whether every field is in range.
func (m Move) Valid() bool {
	return m.Axis >= AxisX && m.Axis <= AxisZ &&
		m.Layer >= 0 && m.Layer <= 2 &&
		(m.Direction == Positive || m.Direction == Negative)
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	inv := m
	inv.Direction = -m.Direction
	return inv
}

// Angle returns the signed target angle of the move in radians.
func (m Move) Angle() float64 {
	return float64(m.Direction) * math.Pi / 2
}

// notation maps every (axis, layer) slice to its face letter and the
// direction that letter turns in the identity frame (clockwise when looking
// at the face, M/E/S following L/D/F).
var notation = [3][3]struct {
	face byte
	dir  Direction
}{
	AxisX: {{'L', Positive}, {'M', Positive}, {'R', Negative}},
	AxisY: {{'D', Positive}, {'E', Positive}, {'U', Negative}},
	AxisZ: {{'B', Positive}, {'S', Negative}, {'F', Negative}},
}

// Notation returns standard cube notation for the move as seen in the
// cube's own frame. Examples: R, R', M, E'.
func (m Move) Notation() string {
	if !m.Valid() {
		return fmt.Sprintf("?%s%d", m.Axis, m.Layer)
	}
	entry := notation[m.Axis][m.Layer]
	if m.Direction == entry.dir {
		return string(entry.face)
	}
	return string(entry.face) + "'"
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// ParseMove parses a single quarter turn such as R, R' or M.
// Half turns are only accepted by ParseMoves.
func ParseMove(s string) (Move, error) {
	moves, err := parseToken(s)
	if err != nil {
		return Move{}, err
	}
	if len(moves) != 1 {
		return Move{}, fmt.Errorf("%w: %q is not a quarter turn", ErrInvalidNotation, s)
	}
	return moves[0], nil
}

// ParseMoves parses a space-separated sequence of moves.
// A half turn such as R2 expands into two quarter turns.
// Example: "R U R' U'"
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		parsed, err := parseToken(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, parsed...)
	}

	return moves, nil
}

func parseToken(s string) ([]Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return nil, ErrInvalidNotation
	}

	face := s[0]
	if face >= 'a' && face <= 'z' {
		face -= 'a' - 'A'
	}

	var base Move
	found := false
	for axis := range notation {
		for layer, entry := range notation[axis] {
			if entry.face == face {
				base = Move{Axis: Axis(axis), Layer: layer, Direction: entry.dir}
				found = true
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	switch s[1:] {
	case "":
		return []Move{base}, nil
	case "'", "`":
		return []Move{base.Inverse()}, nil
	case "2", "2'", "2`":
		return []Move{base, base}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// CompactMoves formats moves with adjacent turns of the same layer merged.
// For example: R R becomes R2, R R R becomes R', R R' cancels out.
func CompactMoves(moves []Move) string {
	type run struct {
		base     Move
		quarters int
	}

	var runs []run
	for _, m := range moves {
		if !m.Valid() {
			runs = append(runs, run{base: m, quarters: 1})
			continue
		}

		base := Move{Axis: m.Axis, Layer: m.Layer, Direction: notation[m.Axis][m.Layer].dir}
		q := 1
		if m.Direction != base.Direction {
			q = 3
		}

		if n := len(runs); n > 0 && runs[n-1].base == base {
			runs[n-1].quarters = (runs[n-1].quarters + q) % 4
			if runs[n-1].quarters == 0 {
				// Moves cancelled out - remove the run
				runs = runs[:n-1]
			}
			continue
		}
		runs = append(runs, run{base: base, quarters: q})
	}

	parts := make([]string, len(runs))
	for i, r := range runs {
		switch r.quarters {
		case 2:
			parts[i] = r.base.Notation() + "2"
		case 3:
			parts[i] = r.base.Inverse().Notation()
		default:
			parts[i] = r.base.Notation()
		}
	}
	return strings.Join(parts, " ")
}

// InvertSequence returns the sequence that undoes moves: reversed order,
// every direction inverted.
func InvertSequence(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}
