package tetris

import (
	"fmt"
	"strings"
)

// MatrixSize is the side of every shape matrix.
const MatrixSize = 4

// Matrix is a 4x4 occupancy matrix. Row index first, then column.
type Matrix [MatrixSize][MatrixSize]int

// Type labels one of the seven tetromino shapes.
type Type string

const (
	TypeI Type = "I"
	TypeO Type = "O"
	TypeT Type = "T"
	TypeS Type = "S"
	TypeZ Type = "Z"
	TypeJ Type = "J"
	TypeL Type = "L"
)

// Types lists every shape type in catalog order.
var Types = []Type{TypeI, TypeO, TypeT, TypeS, TypeZ, TypeJ, TypeL}

// Shape is an immutable tetromino: a type tag plus its current matrix.
// Rotating a shape yields a new value; the receiver is never modified.
type Shape struct {
	Type   Type
	Matrix Matrix
}

// catalog holds the spawn orientation of every shape.
var catalog = map[Type]Matrix{
	TypeI: {
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	},
	TypeO: {
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 0},
	},
	TypeT: {
		{0, 0, 0, 0},
		{0, 1, 0, 0},
		{1, 1, 1, 0},
		{0, 0, 0, 0},
	},
	TypeS: {
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 0, 0},
	},
	TypeZ: {
		{0, 0, 0, 0},
		{1, 1, 0, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 0},
	},
	TypeJ: {
		{0, 0, 0, 0},
		{1, 0, 0, 0},
		{1, 1, 1, 0},
		{0, 0, 0, 0},
	},
	TypeL: {
		{0, 0, 0, 0},
		{0, 0, 1, 0},
		{1, 1, 1, 0},
		{0, 0, 0, 0},
	},
}

// Catalog returns all seven shapes in spawn orientation, in Types order.
func Catalog() []Shape {
	shapes := make([]Shape, 0, len(Types))
	for _, t := range Types {
		shapes = append(shapes, Shape{Type: t, Matrix: catalog[t]})
	}
	return shapes
}

// Lookup returns the spawn orientation of the given type.
func Lookup(t Type) (Shape, bool) {
	m, ok := catalog[t]
	if !ok {
		return Shape{}, false
	}
	return Shape{Type: t, Matrix: m}, true
}

// ParseType converts a type letter (case-insensitive) into a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := catalog[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

// ParseMatrix converts a decoded [][]int into a Matrix.
// Anything other than exactly 4 rows of 4 cells holding 0 or 1, with at
// least one occupied cell, is rejected.
func ParseMatrix(rows [][]int) (Matrix, error) {
	var m Matrix
	if len(rows) != MatrixSize {
		return m, fmt.Errorf("%w: got %d rows", ErrInvalidMatrix, len(rows))
	}
	for i, row := range rows {
		if len(row) != MatrixSize {
			return m, fmt.Errorf("%w: row %d has %d columns", ErrInvalidMatrix, i, len(row))
		}
		copy(m[i][:], row)
	}
	if err := m.Validate(); err != nil {
		return Matrix{}, err
	}
	return m, nil
}

// Validate checks that every cell is 0 or 1 and at least one is occupied.
func (m Matrix) Validate() error {
	occupied := 0
	for i := range MatrixSize {
		for j := range MatrixSize {
			v := m[i][j]
			if v != 0 && v != 1 {
				return fmt.Errorf("%w: cell (%d,%d) = %d", ErrInvalidMatrix, i, j, v)
			}
			occupied += v
		}
	}
	if occupied == 0 {
		return fmt.Errorf("%w: no occupied cells", ErrInvalidMatrix)
	}
	return nil
}

// Rows returns the matrix as a slice of slices, ready for encoding.
func (m Matrix) Rows() [][]int {
	rows := make([][]int, MatrixSize)
	for i := range MatrixSize {
		rows[i] = append([]int(nil), m[i][:]...)
	}
	return rows
}

// Cells returns the offsets of the occupied cells relative to the matrix
// top-left corner, scanning row by row.
func (m Matrix) Cells() []Position {
	cells := make([]Position, 0, 4)
	for i := range MatrixSize {
		for j := range MatrixSize {
			if m[i][j] == 1 {
				cells = append(cells, Position{X: j, Y: i})
			}
		}
	}
	return cells
}

// Rotated returns a copy of the shape rotated 90 degrees.
func (s Shape) Rotated(r Rotation) Shape {
	return Shape{Type: s.Type, Matrix: Rotate(s.Matrix, r)}
}

// Validate checks the type tag and the matrix.
func (s Shape) Validate() error {
	if _, ok := catalog[s.Type]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidType, s.Type)
	}
	return s.Matrix.Validate()
}
