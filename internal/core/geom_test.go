package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left corner", 10, 10, true},
		{"inside", 15, 15, true},
		{"last cell", 29, 24, true},
		{"right edge", 30, 15, false},
		{"bottom edge", 15, 25, false},
		{"left of", 9, 15, false},
		{"above", 15, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 10, 10, 15)

	if r.Right() != 20 {
		t.Errorf("Right() = %d, expected 20", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInner(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		expected Rect
	}{
		{"board", NewRect(0, 0, 22, 22), NewRect(1, 1, 20, 20)},
		{"offset", NewRect(3, 2, 4, 4), NewRect(4, 3, 2, 2)},
		{"degenerate", NewRect(3, 2, 1, 4), NewRect(3, 2, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Inner(); got != tt.expected {
				t.Errorf("Inner() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.lo, tt.hi, got, tt.expected)
		}
	}
}

func TestActionGameplay(t *testing.T) {
	tests := []struct {
		action   Action
		expected bool
	}{
		{ActionLeft, true},
		{ActionRotateLeft, true},
		{ActionNewPiece, true},
		{ActionRestart, false},
		{ActionQuit, false},
		{ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			if got := tt.action.Gameplay(); got != tt.expected {
				t.Errorf("Gameplay() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
