package tetris

import "sync"

// Board is the authority over the grid of locked cells and the falling piece.
//
// Every method runs under the board mutex, so a TryPlace that locks a piece
// and clears rows is observed by other callers as a single step. The active
// piece is never written into the grid until it locks; Snapshot overlays it
// on a copy.
type Board struct {
	mu     sync.Mutex
	grid   Grid
	active *Piece
}

// NewBoard returns an empty board with no active piece.
func NewBoard() *Board {
	return &Board{}
}

// Reset clears the grid and drops the active piece.
func (b *Board) Reset() Grid {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.grid = Grid{}
	b.active = nil
	return b.grid
}

// Snapshot returns the grid with the active piece overlaid.
func (b *Board) Snapshot() Grid {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := b.grid
	if b.active != nil {
		snap.stamp(*b.active)
	}
	return snap
}

// Active returns the falling piece, if any.
func (b *Board) Active() (Piece, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active == nil {
		return Piece{}, false
	}
	return *b.active, true
}

// State reports whether a piece is currently falling.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active == nil {
		return StateEmpty
	}
	return StatePieceActive
}

// TryPlace is the only transition. It spawns a piece when none is active,
// otherwise it replaces the active piece with the proposed one.
//
// A failed placement leaves the board untouched, except when the proposal is
// lower than the active piece: then the active piece locks where it is, full
// rows are cleared and the result carries ReasonLocked. A failed spawn at the
// spawn row is reported as ReasonGameOver.
//
// The shape matrix is expected to be validated; only cells equal to 1 count.
func (b *Board) TryPlace(shape Shape, x, y int) PlacementResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	reason := b.grid.check(shape.Matrix, x, y)

	if b.active == nil {
		if reason != "" {
			if y == SpawnRow {
				return PlacementResult{Reason: ReasonGameOver}
			}
			return PlacementResult{Reason: reason}
		}
		return b.activate(shape, x, y)
	}

	if reason == "" {
		return b.activate(shape, x, y)
	}

	if y <= b.active.Position.Y {
		return PlacementResult{Reason: reason}
	}

	locked := *b.active
	b.grid.stamp(locked)
	cleared := b.grid.clearLines()
	b.active = nil

	return PlacementResult{
		Reason:       ReasonLocked,
		Locked:       &locked,
		LinesCleared: cleared,
	}
}

// activate must be called with the mutex held.
func (b *Board) activate(shape Shape, x, y int) PlacementResult {
	p := Piece{Shape: shape, Position: Position{X: x, Y: y}}
	b.active = &p
	out := p
	return PlacementResult{OK: true, Piece: &out}
}
