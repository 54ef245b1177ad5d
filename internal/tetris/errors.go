package tetris

import "errors"

// Validation errors. Callers at the wire boundary check these with errors.Is
// to tell malformed input apart from upstream failures.
var (
	ErrInvalidMatrix    = errors.New("tetris: matrix must be 4x4 with 0/1 cells")
	ErrInvalidType      = errors.New("tetris: unknown shape type")
	ErrInvalidDirection = errors.New("tetris: unknown direction")
	ErrInvalidRotation  = errors.New("tetris: unknown rotation")
)

// IsValidation reports whether err is one of the input validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidMatrix) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidDirection) ||
		errors.Is(err, ErrInvalidRotation)
}
