package tetris

import (
	"fmt"
	"strings"
)

// Direction is a one-cell translation.
type Direction string

const (
	DirLeft  Direction = "izquierda"
	DirRight Direction = "derecha"
	DirDown  Direction = "abajo"
)

// ParseDirection accepts the wire names.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case DirLeft, DirRight, DirDown:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Position is the grid coordinate of a shape matrix's top-left corner.
// X is the column, Y the row; rows grow downwards.
type Position struct {
	X, Y int
}

// Translate returns the position shifted one cell in the given direction.
func (p Position) Translate(d Direction) Position {
	switch d {
	case DirLeft:
		return Position{X: p.X - 1, Y: p.Y}
	case DirRight:
		return Position{X: p.X + 1, Y: p.Y}
	case DirDown:
		return Position{X: p.X, Y: p.Y + 1}
	default:
		return p
	}
}
