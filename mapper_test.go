package twistycube

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestMapFaceIdentity(t *testing.T) {
	ident := mgl64.QuatIdent()
	tests := []struct {
		key     FaceKey
		reverse bool
		want    Move
	}{
		{KeyU, false, U},
		{KeyD, false, D},
		{KeyL, false, L},
		{KeyR, false, R},
		{KeyF, false, F},
		{KeyB, false, B},
		{KeyU, true, UPrime},
		{KeyR, true, RPrime},
	}

	for _, tt := range tests {
		got, err := MapFace(tt.key, tt.reverse, ident)
		if err != nil {
			t.Errorf("MapFace(%s) error: %v", tt.key, err)
			continue
		}
		if got != tt.want {
			t.Errorf("MapFace(%s, %v) = %v, want %v", tt.key, tt.reverse, got, tt.want)
		}
	}
}

func TestMapFaceUpsideDown(t *testing.T) {
	// Flipped about X, the screen's up face is the cube's D layer.
	flipped := mgl64.QuatRotate(math.Pi, mgl64.Vec3{1, 0, 0})

	got, err := MapFace(KeyU, false, flipped)
	if err != nil {
		t.Fatal(err)
	}
	atIdentity, _ := MapFace(KeyD, false, mgl64.QuatIdent())
	if got.Axis != atIdentity.Axis || got.Layer != atIdentity.Layer {
		t.Errorf("U when flipped = %v, want the layer of D (%v)", got, atIdentity)
	}
	if got != D {
		t.Errorf("U when flipped = %v, want D", got)
	}
}

func TestMapFaceTurnedAround(t *testing.T) {
	// Half a turn about the vertical axis swaps front and back, left and right.
	turned := mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 1, 0})
	tests := []struct {
		key  FaceKey
		want Move
	}{
		{KeyF, B},
		{KeyB, F},
		{KeyR, L},
		{KeyL, R},
		{KeyU, U},
	}

	for _, tt := range tests {
		got, err := MapFace(tt.key, false, turned)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("MapFace(%s) turned = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestMapFaceQuarterTurn(t *testing.T) {
	// A quarter turn about Y brings the cube's L face to the front of the screen.
	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	got, err := MapFace(KeyF, false, q)
	if err != nil {
		t.Fatal(err)
	}
	up, front := (&Tracker{group: q}).ScreenFaces()
	if front != CubeFaceL {
		t.Fatalf("ScreenFaces front = %s, want L", front)
	}
	if up != CubeFaceU {
		t.Errorf("ScreenFaces up = %s, want U", up)
	}
	if got != L {
		t.Errorf("MapFace(F) = %v, want L", got)
	}
}

func TestDominantAxisTieBreak(t *testing.T) {
	h := math.Sqrt2 / 2
	tests := []struct {
		v    mgl64.Vec3
		want Axis
	}{
		{mgl64.Vec3{h, -h, 0}, AxisX},
		{mgl64.Vec3{0, h, h}, AxisY},
		{mgl64.Vec3{-0.5, 0.5, 0.5}, AxisX},
		{mgl64.Vec3{0.1, 0.2, -0.9}, AxisZ},
		{mgl64.Vec3{0.1, -0.9, 0.2}, AxisY},
	}

	for _, tt := range tests {
		if got := dominantAxis(tt.v); got != tt.want {
			t.Errorf("dominantAxis(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestMapFaceUnknownKey(t *testing.T) {
	if _, err := MapFace(FaceKey('Q'), false, mgl64.QuatIdent()); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("MapFace(Q) error = %v, want ErrUnknownKey", err)
	}
}

func TestParseFaceKey(t *testing.T) {
	tests := []struct {
		r       rune
		key     FaceKey
		reverse bool
		ok      bool
	}{
		{'u', KeyU, false, true},
		{'U', KeyU, true, true},
		{'f', KeyF, false, true},
		{'B', KeyB, true, true},
		{'x', 0, false, false},
		{'1', 0, false, false},
		{'Ŕ', 0, false, false},
	}

	for _, tt := range tests {
		key, reverse, ok := ParseFaceKey(tt.r)
		if ok != tt.ok || key != tt.key || reverse != tt.reverse {
			t.Errorf("ParseFaceKey(%q) = (%v, %v, %v), want (%v, %v, %v)",
				tt.r, key, reverse, ok, tt.key, tt.reverse, tt.ok)
		}
	}
}
