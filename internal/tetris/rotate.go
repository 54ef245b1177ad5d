package tetris

import (
	"fmt"
	"strings"
)

// Rotation is a quarter-turn direction.
type Rotation string

const (
	RotateRight Rotation = "derecha"   // clockwise
	RotateLeft  Rotation = "izquierda" // counter-clockwise
)

// ParseRotation accepts the wire names. An empty string means RotateRight.
func ParseRotation(s string) (Rotation, error) {
	switch Rotation(strings.ToLower(strings.TrimSpace(s))) {
	case "", RotateRight:
		return RotateRight, nil
	case RotateLeft:
		return RotateLeft, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRotation, s)
	}
}

// Rotate turns a matrix 90 degrees and returns the result.
//
// Clockwise:         out[i][j] = in[n-1-j][i]
// Counter-clockwise: out[i][j] = in[j][n-1-i]
func Rotate(in Matrix, r Rotation) Matrix {
	const n = MatrixSize
	var out Matrix
	for i := range n {
		for j := range n {
			if r == RotateLeft {
				out[i][j] = in[j][n-1-i]
			} else {
				out[i][j] = in[n-1-j][i]
			}
		}
	}
	return out
}
