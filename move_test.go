package twistycube

import (
	"errors"
	"testing"
)

func TestMoveNotation(t *testing.T) {
	tests := []struct {
		move Move
		want string
	}{
		{R, "R"},
		{RPrime, "R'"},
		{L, "L"},
		{U, "U"},
		{DPrime, "D'"},
		{F, "F"},
		{BPrime, "B'"},
		{M, "M"},
		{EPrime, "E'"},
		{S, "S"},
		{Move{Axis: AxisX, Layer: 2, Direction: Positive}, "R'"},
	}

	for _, tt := range tests {
		if got := tt.move.Notation(); got != tt.want {
			t.Errorf("%+v.Notation() = %s, want %s", tt.move, got, tt.want)
		}
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		input   string
		want    Move
		wantErr bool
	}{
		{"R", R, false},
		{"R'", RPrime, false},
		{"r", R, false},
		{"U`", UPrime, false},
		{"M", M, false},
		{"S'", SPrime, false},
		{"R2", Move{}, true},
		{"X", Move{}, true},
		{"", Move{}, true},
		{"R''", Move{}, true},
	}

	for _, tt := range tests {
		got, err := ParseMove(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMove(%q) should fail", tt.input)
			} else if !errors.Is(err, ErrInvalidNotation) {
				t.Errorf("ParseMove(%q) error = %v, want ErrInvalidNotation", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMove(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("R U R' U'")
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 4 {
		t.Fatalf("Expected 4 moves, got %d", len(moves))
	}
	for i, want := range SexyMove {
		if moves[i] != want {
			t.Errorf("move %d = %v, want %v", i, moves[i], want)
		}
	}

	half, err := ParseMoves("F2")
	if err != nil {
		t.Fatal(err)
	}
	if len(half) != 2 || half[0] != F || half[1] != F {
		t.Errorf("F2 should expand to F F, got %v", half)
	}

	if _, err := ParseMoves("R Q"); err == nil {
		t.Error("ParseMoves should reject an unknown face")
	}
}

func TestFormatMovesRoundTrip(t *testing.T) {
	input := "R U R' U' M E' S"
	moves, err := ParseMoves(input)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatMoves(moves); got != input {
		t.Errorf("FormatMoves = %q, want %q", got, input)
	}
	if FormatMoves(nil) != "" {
		t.Error("FormatMoves(nil) should be empty")
	}
}

func TestInvertSequence(t *testing.T) {
	got := FormatMoves(InvertSequence(SexyMove))
	if got != "U R U' R'" {
		t.Errorf("InvertSequence(R U R' U') = %s, want U R U' R'", got)
	}
	if len(InvertSequence(nil)) != 0 {
		t.Error("InvertSequence(nil) should be empty")
	}
}

func TestMoveValid(t *testing.T) {
	if !R.Valid() {
		t.Error("R should be valid")
	}
	invalid := []Move{
		{Axis: 3, Layer: 0, Direction: Positive},
		{Axis: AxisX, Layer: 3, Direction: Positive},
		{Axis: AxisX, Layer: 0, Direction: 0},
	}
	for _, m := range invalid {
		if m.Valid() {
			t.Errorf("%+v should be invalid", m)
		}
	}
}

func TestCompactMoves(t *testing.T) {
	tests := []struct {
		name  string
		moves []Move
		want  string
	}{
		{"empty", nil, ""},
		{"single", []Move{R}, "R"},
		{"double", []Move{R, R}, "R2"},
		{"double prime", []Move{RPrime, RPrime}, "R2"},
		{"triple", []Move{R, R, R}, "R'"},
		{"cancel", []Move{R, RPrime}, ""},
		{"cancel then merge", []Move{R, U, UPrime, R}, "R2"},
		{"slice", []Move{M, M}, "M2"},
		{"different layers", []Move{R, L, R}, "R L R"},
	}

	for _, tt := range tests {
		if got := CompactMoves(tt.moves); got != tt.want {
			t.Errorf("%s: CompactMoves() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCompactMovesParsesBack(t *testing.T) {
	moves := append(append([]Move{}, TPerm...), SexyMove...)

	parsed, err := ParseMoves(CompactMoves(moves))
	if err != nil {
		t.Fatal(err)
	}

	want := NewLattice(DefaultGeometry())
	want.ApplyMoves(moves)
	got := NewLattice(DefaultGeometry())
	got.ApplyMoves(parsed)
	if got.Facelets().String() != want.Facelets().String() {
		t.Errorf("compacted sequence lands elsewhere:\n%s\nwant:\n%s", got.Facelets(), want.Facelets())
	}
}
