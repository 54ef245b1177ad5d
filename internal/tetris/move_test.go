package tetris

import (
	"errors"
	"testing"
)

func TestTranslate(t *testing.T) {
	start := Position{X: 3, Y: 5}

	tests := []struct {
		dir      Direction
		expected Position
	}{
		{DirLeft, Position{X: 2, Y: 5}},
		{DirRight, Position{X: 4, Y: 5}},
		{DirDown, Position{X: 3, Y: 6}},
	}

	for _, tc := range tests {
		t.Run(string(tc.dir), func(t *testing.T) {
			if got := start.Translate(tc.dir); got != tc.expected {
				t.Errorf("Translate(%s) = %+v, expected %+v", tc.dir, got, tc.expected)
			}
		})
	}
}

func TestTranslateIsTotal(t *testing.T) {
	// Leaving the board is the board's business, not the transform's.
	p := Position{X: 0, Y: 0}.Translate(DirLeft)
	if p.X != -1 {
		t.Errorf("Translate left from column 0 = %d, expected -1", p.X)
	}
}

func TestParseDirection(t *testing.T) {
	for _, in := range []string{"izquierda", "Derecha", "abajo"} {
		if _, err := ParseDirection(in); err != nil {
			t.Errorf("ParseDirection(%q) failed: %v", in, err)
		}
	}
	for _, in := range []string{"", "arriba", "left"} {
		if _, err := ParseDirection(in); !errors.Is(err, ErrInvalidDirection) {
			t.Errorf("ParseDirection(%q) error = %v, expected ErrInvalidDirection", in, err)
		}
	}
}
