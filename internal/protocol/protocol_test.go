package protocol

import (
	"errors"
	"math"
	"testing"

	"github.com/SeamusWaldron/twistycube"
)

func TestEncodeParseRoundTrip(t *testing.T) {
	payload := []byte{0x08, 0x00, 0x05, 0x03}
	frame, err := EncodeMessage(MsgTypeRotation, payload)
	if err != nil {
		t.Fatal(err)
	}
	if frame[0] != FramePrefix || frame[len(frame)-2] != FrameSuffix1 || frame[len(frame)-1] != FrameSuffix2 {
		t.Fatalf("bad frame % X", frame)
	}

	msg, err := ParseMessage(frame)
	if err != nil {
		t.Fatal(err)
	}
	if msg.Type != MsgTypeRotation || msg.TypeName() != "rotation" {
		t.Errorf("Type = 0x%02X (%s)", msg.Type, msg.TypeName())
	}
	if string(msg.Payload) != string(payload) {
		t.Errorf("Payload = % X, want % X", msg.Payload, payload)
	}
}

func TestParseMessageErrors(t *testing.T) {
	good, _ := EncodeMessage(MsgTypeBattery, []byte{80})

	badPrefix := append([]byte{}, good...)
	badPrefix[0] = 0x00

	badChecksum := append([]byte{}, good...)
	badChecksum[len(badChecksum)-3]++

	badSuffix := append([]byte{}, good...)
	badSuffix[len(badSuffix)-1] = 0x00

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", []byte{FramePrefix, 0x01}, ErrMessageTooShort},
		{"prefix", badPrefix, ErrInvalidPrefix},
		{"checksum", badChecksum, ErrInvalidChecksum},
		{"suffix", badSuffix, ErrInvalidSuffix},
		{"truncated", good[:len(good)-1], ErrInvalidLength},
	}

	for _, tt := range tests {
		if _, err := ParseMessage(tt.data); !errors.Is(err, tt.want) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestBuildCommand(t *testing.T) {
	cmd := BuildCommand(CmdRequestBattery)
	want := []byte{0x2A, 0x01, 0x32, 0x5D, 0x0D, 0x0A}
	if string(cmd) != string(want) {
		t.Errorf("BuildCommand = % X, want % X", cmd, want)
	}
}

func TestDecodeRotation(t *testing.T) {
	events, err := DecodeRotation([]byte{0x04, 0x00, 0x09, 0x03})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Color != "white" || !events[0].Clockwise {
		t.Errorf("event 0 = %+v, want white clockwise", events[0])
	}
	if events[1].Color != "red" || events[1].Clockwise || events[1].CenterOrientation != 0x03 {
		t.Errorf("event 1 = %+v, want red counter-clockwise", events[1])
	}

	if _, err := DecodeRotation([]byte{0x04}); err == nil {
		t.Error("odd payload should fail")
	}
	if _, err := DecodeRotation([]byte{0x0C, 0x00}); err == nil {
		t.Error("unknown color should fail")
	}
}

func TestRotationMove(t *testing.T) {
	tests := []struct {
		code byte
		want twistycube.Move
	}{
		{0x00, twistycube.B},
		{0x01, twistycube.BPrime},
		{0x02, twistycube.F},
		{0x04, twistycube.U},
		{0x07, twistycube.DPrime},
		{0x08, twistycube.R},
		{0x0B, twistycube.LPrime},
	}

	for _, tt := range tests {
		events, err := DecodeRotation([]byte{tt.code, 0x00})
		if err != nil {
			t.Fatal(err)
		}
		got, err := RotationMove(events[0])
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("code 0x%02X -> %v, want %v", tt.code, got, tt.want)
		}
	}

	if _, err := RotationMove(RotationEvent{Color: "purple"}); !errors.Is(err, twistycube.ErrInvalidMove) {
		t.Errorf("unknown color error = %v", err)
	}
}

func TestDecodeMoves(t *testing.T) {
	frame, _ := EncodeMessage(MsgTypeRotation, []byte{0x08, 0x00, 0x06, 0x00})
	moves, err := DecodeMoves(frame)
	if err != nil {
		t.Fatal(err)
	}
	if twistycube.FormatMoves(moves) != "R D" {
		t.Errorf("DecodeMoves = %s, want R D", twistycube.FormatMoves(moves))
	}

	battery, _ := EncodeMessage(MsgTypeBattery, []byte{90})
	moves, err = DecodeMoves(battery)
	if err != nil || len(moves) != 0 {
		t.Errorf("battery frame gave %v, %v", moves, err)
	}
}

func TestDecodeOrientation(t *testing.T) {
	// Identity, with a trailing checksum byte on w.
	ev, err := DecodeOrientation([]byte("0#0#0#1000\x7f"))
	if err != nil {
		t.Fatal(err)
	}
	if ev.UpFace != twistycube.CubeFaceU || ev.FrontFace != twistycube.CubeFaceF {
		t.Errorf("identity faces = %s/%s, want U/F", ev.UpFace, ev.FrontFace)
	}

	// Half a turn about X puts D up and B in front.
	ev, err = DecodeOrientation([]byte("1000#0#0#0"))
	if err != nil {
		t.Fatal(err)
	}
	if ev.UpFace != twistycube.CubeFaceD || ev.FrontFace != twistycube.CubeFaceB {
		t.Errorf("flipped faces = %s/%s, want D/B", ev.UpFace, ev.FrontFace)
	}
	if math.Abs(ev.Quat.Len()-1) > 1e-12 {
		t.Errorf("quaternion not normalized: %v", ev.Quat)
	}

	if _, err := DecodeOrientation([]byte("1#2#3")); err == nil {
		t.Error("three parts should fail")
	}
	if _, err := DecodeOrientation([]byte("0#0#0#0")); err == nil {
		t.Error("zero quaternion should fail")
	}
}

func TestDecodeOfflineStats(t *testing.T) {
	ev, err := DecodeOfflineStats([]byte("120#300#4"))
	if err != nil {
		t.Fatal(err)
	}
	if ev.Moves != 120 || ev.Time != 300 || ev.Solves != 4 {
		t.Errorf("got %+v", ev)
	}
	if _, err := DecodeOfflineStats([]byte("1#x#2")); err == nil {
		t.Error("non-numeric field should fail")
	}
}
