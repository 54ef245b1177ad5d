package tetris

// Reason explains why a placement did not succeed.
type Reason string

const (
	ReasonCollision  Reason = "COLISION"
	ReasonOutOfRange Reason = "FUERA_DE_RANGO"
	ReasonLocked     Reason = "FIJADA"
	ReasonGameOver   Reason = "GAME_OVER"
)

// State is the board's lifecycle state. Game over is reported through
// ReasonGameOver and never stored.
type State string

const (
	StateEmpty       State = "EMPTY_NO_PIECE"
	StatePieceActive State = "PIECE_ACTIVE"
)

// Piece is a shape anchored on the grid.
type Piece struct {
	Shape    Shape
	Position Position
}

// Cells returns the absolute grid coordinates of the piece's occupied cells.
func (p Piece) Cells() []Position {
	cells := p.Shape.Matrix.Cells()
	for i := range cells {
		cells[i].X += p.Position.X
		cells[i].Y += p.Position.Y
	}
	return cells
}

// PlacementResult is the outcome of Board.TryPlace.
type PlacementResult struct {
	OK     bool
	Reason Reason

	// Piece is the active piece after a successful placement.
	Piece *Piece

	// Locked and LinesCleared describe a lock event (Reason == ReasonLocked).
	Locked       *Piece
	LinesCleared int
}
