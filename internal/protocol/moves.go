package protocol

import (
	"fmt"

	"github.com/SeamusWaldron/twistycube"
)

// colorToMove maps a GoCube center color to the clockwise outer-layer turn
// of that face, assuming white up and green front.
var colorToMove = map[string]twistycube.Move{
	"white":  twistycube.U,
	"yellow": twistycube.D,
	"green":  twistycube.F,
	"blue":   twistycube.B,
	"red":    twistycube.R,
	"orange": twistycube.L,
}

// RotationMove converts a GoCube rotation into a move in the cube's own frame.
func RotationMove(rot RotationEvent) (twistycube.Move, error) {
	m, ok := colorToMove[rot.Color]
	if !ok {
		return twistycube.Move{}, fmt.Errorf("%w: color %q", twistycube.ErrInvalidMove, rot.Color)
	}
	if !rot.Clockwise {
		m = m.Inverse()
	}
	return m, nil
}

// DecodeMoves parses a raw notification and returns the moves it carries.
func DecodeMoves(data []byte) ([]twistycube.Move, error) {
	msg, err := ParseMessage(data)
	if err != nil {
		return nil, err
	}
	return MessageMoves(msg)
}

// MessageMoves returns the moves carried by a parsed message.
// Non-rotation messages yield no moves and no error.
func MessageMoves(msg *Message) ([]twistycube.Move, error) {
	if msg.Type != MsgTypeRotation {
		return nil, nil
	}

	rotations, err := DecodeRotation(msg.Payload)
	if err != nil {
		return nil, err
	}

	moves := make([]twistycube.Move, 0, len(rotations))
	for _, rot := range rotations {
		m, err := RotationMove(rot)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
