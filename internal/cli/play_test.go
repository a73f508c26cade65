package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/twistycube"
	"github.com/SeamusWaldron/twistycube/internal/protocol"
)

func newTestModel(t *testing.T) *playModel {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	ctrl, err := twistycube.New(twistycube.WithSeed(7), twistycube.WithScrambleLength(4), twistycube.WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	return newPlayModel(ctrl, 60, log)
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func frames(m *playModel, n int) {
	for i := 0; i < n; i++ {
		m.Update(frameMsg(time.Now()))
	}
}

func TestPlayTwistFromKeyboard(t *testing.T) {
	m := newTestModel(t)

	m.Update(key('r'))
	if m.ctrl.State() != twistycube.Rotating {
		t.Fatal("r should start a twist")
	}
	if !strings.Contains(m.View(), "rotating") {
		t.Error("view should show the rotating state")
	}

	frames(m, 20)
	if got := twistycube.FormatMoves(m.ctrl.History()); got != "R" {
		t.Errorf("history = %q, want R", got)
	}

	m.Update(key('R'))
	frames(m, 20)
	if !m.ctrl.IsSolved() {
		t.Error("R then R' should leave the cube solved")
	}
}

func TestPlayRejectsTwistWhileRotating(t *testing.T) {
	m := newTestModel(t)

	m.Update(key('u'))
	m.Update(key('f'))
	if m.err == nil {
		t.Error("a second twist during rotation should report an error")
	}
	if m.ctrl.QueueLen() != 0 {
		t.Errorf("queue = %d, want 0", m.ctrl.QueueLen())
	}
}

func TestPlayScrambleAndSolve(t *testing.T) {
	m := newTestModel(t)

	m.Update(key('s'))
	frames(m, 4*18+5)
	if m.ctrl.IsSolved() {
		t.Skip("scramble happened to leave the cube solved")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	frames(m, 4*18+5)
	if !m.ctrl.IsSolved() {
		t.Error("solve should restore the cube")
	}
	if m.solves < 1 {
		t.Error("solving should be counted")
	}
}

func TestPlayArrowSpinSettlesLocked(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	frames(m, 2)
	if m.ctrl.Locked() {
		t.Fatal("spinning should unlock the cube")
	}

	frames(m, 600)
	if !m.ctrl.Locked() {
		t.Error("cube should settle and lock once the spin dies out")
	}
	if m.spin.active {
		t.Error("spin should have come to rest")
	}
}

func TestPlayMouseDrag(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionMotion})
	if m.ctrl.Locked() {
		t.Error("dragging should unlock the cube")
	}

	m.Update(key('r'))
	if m.ctrl.State() != twistycube.Idle {
		t.Error("twists must be refused while unlocked")
	}

	m.Update(tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionRelease})
	frames(m, 600)
	if !m.ctrl.Locked() {
		t.Error("cube should lock after release")
	}
}

func TestPlayQuit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(key('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if m.View() != "Goodbye!\n" {
		t.Errorf("unexpected view %q", m.View())
	}
}

func message(t *testing.T, msgType byte, payload []byte) *protocol.Message {
	t.Helper()
	frame, err := protocol.EncodeMessage(msgType, payload)
	if err != nil {
		t.Fatal(err)
	}
	msg, err := protocol.ParseMessage(frame)
	if err != nil {
		t.Fatal(err)
	}
	return msg
}

func TestPlayDecodeGoCubeMessages(t *testing.T) {
	m := newTestModel(t)

	out := m.decodeMessage(message(t, protocol.MsgTypeRotation, []byte{0x08, 0x00}))
	moves, ok := out.(gocubeMovesMsg)
	if !ok || twistycube.FormatMoves(moves.moves) != "R" {
		t.Errorf("rotation decoded to %#v", out)
	}

	out = m.decodeMessage(message(t, protocol.MsgTypeOrientation, []byte("0#0#0#1000")))
	held, ok := out.(gocubeOrientationMsg)
	if !ok || held.up != twistycube.CubeFaceU || held.front != twistycube.CubeFaceF {
		t.Errorf("orientation decoded to %#v", out)
	}

	out = m.decodeMessage(message(t, protocol.MsgTypeCubeType, []byte{0x01}))
	if info, ok := out.(gocubeInfoMsg); !ok || info.text != "edge" {
		t.Errorf("cube type decoded to %#v", out)
	}

	if out := m.decodeMessage(message(t, protocol.MsgTypeBattery, []byte{80})); out != nil {
		t.Errorf("battery should not reach the TUI, got %#v", out)
	}
}

func TestPlayMirrorsGoCubeMoves(t *testing.T) {
	m := newTestModel(t)

	// Physical moves are queued even while a twist is in flight.
	m.Update(key('u'))
	m.Update(gocubeMovesMsg{moves: []twistycube.Move{twistycube.R, twistycube.RPrime}})
	if m.ctrl.QueueLen() != 2 {
		t.Fatalf("queue = %d, want 2", m.ctrl.QueueLen())
	}

	frames(m, 3*18+5)
	if got := twistycube.FormatMoves(m.ctrl.History()); got != "U R R'" {
		t.Errorf("history = %q, want U R R'", got)
	}
}

func TestPlayListenerStopsAfterConnectError(t *testing.T) {
	m := newTestModel(t)

	done := make(chan tea.Msg, 1)
	go func() { done <- m.listenForMessages()() }()

	m.Update(gocubeErrMsg{err: errors.New("no adapter")})
	if m.err == nil {
		t.Error("connect error should be shown")
	}

	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("listener returned %T, want nil", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("listener still blocked after the connect error")
	}

	// A second stop is harmless.
	m.Update(key('q'))
}
