// Package tetris holds the board authority and the pure piece arithmetic it
// relies on: the shape catalog, rotation and movement.
//
// The Board is the single source of truth for the grid of locked cells and
// the falling piece. Everything else in this package is a pure function over
// values.
package tetris
