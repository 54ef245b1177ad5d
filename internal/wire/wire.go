// Package wire defines the JSON bodies exchanged between the services and
// converts them to and from the domain types in package tetris.
//
// Decoding is strict: a shape whose matrix is not 4x4 binary, or whose type
// is not in the catalog, is rejected with a tetris validation error before
// any service acts on it.
package wire

import (
	"fmt"

	"github.com/vovakirdan/tetris-net/internal/tetris"
)

// Shape is a tetromino on the wire.
type Shape struct {
	Tipo   string  `json:"tipo"`
	Matriz [][]int `json:"matriz"`
}

// FromShape encodes a domain shape.
func FromShape(s tetris.Shape) *Shape {
	return &Shape{Tipo: string(s.Type), Matriz: s.Matrix.Rows()}
}

// DecodeShape validates and converts a wire shape. A nil shape is rejected.
func DecodeShape(s *Shape) (tetris.Shape, error) {
	if s == nil {
		return tetris.Shape{}, fmt.Errorf("%w: tetramino is required", tetris.ErrInvalidMatrix)
	}
	typ, err := tetris.ParseType(s.Tipo)
	if err != nil {
		return tetris.Shape{}, err
	}
	m, err := tetris.ParseMatrix(s.Matriz)
	if err != nil {
		return tetris.Shape{}, err
	}
	return tetris.Shape{Type: typ, Matrix: m}, nil
}

// BoardState carries a full grid snapshot.
type BoardState struct {
	Estado tetris.Grid `json:"estado"`
}

// ActivePiece is a shape plus its anchor. It is also the body of a placement
// request.
type ActivePiece struct {
	Tetramino *Shape `json:"tetramino"`
	X         *int   `json:"x"`
	Y         *int   `json:"y"`
}

// FromPiece encodes a domain piece.
func FromPiece(p tetris.Piece) *ActivePiece {
	return &ActivePiece{
		Tetramino: FromShape(p.Shape),
		X:         Int(p.Position.X),
		Y:         Int(p.Position.Y),
	}
}

// Decode validates the shape and requires both coordinates.
func (a *ActivePiece) Decode() (tetris.Piece, error) {
	if a == nil {
		return tetris.Piece{}, fmt.Errorf("%w: tetramino is required", tetris.ErrInvalidMatrix)
	}
	shape, err := DecodeShape(a.Tetramino)
	if err != nil {
		return tetris.Piece{}, err
	}
	if a.X == nil || a.Y == nil {
		return tetris.Piece{}, fmt.Errorf("%w: x and y are required", tetris.ErrInvalidMatrix)
	}
	return tetris.Piece{Shape: shape, Position: tetris.Position{X: *a.X, Y: *a.Y}}, nil
}

// PlaceResponse is the board's answer to a placement.
type PlaceResponse struct {
	Exito  bool   `json:"exito"`
	Motivo string `json:"motivo,omitempty"`
	Lineas int    `json:"lineas,omitempty"`
}

// FromPlacement encodes a placement result.
func FromPlacement(res tetris.PlacementResult) PlaceResponse {
	return PlaceResponse{
		Exito:  res.OK,
		Motivo: string(res.Reason),
		Lineas: res.LinesCleared,
	}
}

// ShapeResponse is returned by the generator and the rotator.
type ShapeResponse struct {
	Exito     bool   `json:"exito"`
	Motivo    string `json:"motivo,omitempty"`
	Tetramino *Shape `json:"tetramino,omitempty"`
}

// RotateRequest asks the rotator to turn a shape. An empty direction means
// clockwise.
type RotateRequest struct {
	Tetramino *Shape `json:"tetramino"`
	Direccion string `json:"direccion"`
}

// MoveRequest asks the mover to translate a position.
type MoveRequest struct {
	X         *int   `json:"x"`
	Y         *int   `json:"y"`
	Direccion string `json:"direccion"`
}

// Decode validates the direction and requires both coordinates.
func (m MoveRequest) Decode() (tetris.Position, tetris.Direction, error) {
	dir, err := tetris.ParseDirection(m.Direccion)
	if err != nil {
		return tetris.Position{}, "", err
	}
	if m.X == nil || m.Y == nil {
		return tetris.Position{}, "", fmt.Errorf("%w: x and y are required", tetris.ErrInvalidDirection)
	}
	return tetris.Position{X: *m.X, Y: *m.Y}, dir, nil
}

// MoveResponse is the mover's answer.
type MoveResponse struct {
	Exito  bool   `json:"exito"`
	Motivo string `json:"motivo,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// PieceResponse is the mover's answer when it translates a whole piece.
type PieceResponse struct {
	Exito     bool   `json:"exito"`
	Tetramino *Shape `json:"tetramino"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// GameRequest is the body of the gateway's rotate and move endpoints.
// In orchestrated mode the caller may pass the piece to transform; when it
// is omitted the gateway reads the active piece from the board.
type GameRequest struct {
	Direccion string `json:"direccion"`
	Tetramino *Shape `json:"tetramino,omitempty"`
	X         *int   `json:"x,omitempty"`
	Y         *int   `json:"y,omitempty"`
}

// Piece returns the piece carried by the request, if any.
func (g GameRequest) Piece() (*tetris.Piece, error) {
	if g.Tetramino == nil {
		return nil, nil
	}
	p, err := (&ActivePiece{Tetramino: g.Tetramino, X: g.X, Y: g.Y}).Decode()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GameResponse is the gateway's aggregate answer.
type GameResponse struct {
	Exito     bool         `json:"exito"`
	Motivo    string       `json:"motivo,omitempty"`
	Modo      string       `json:"modo"`
	Tetramino *Shape       `json:"tetramino,omitempty"`
	X         *int         `json:"x,omitempty"`
	Y         *int         `json:"y,omitempty"`
	Tablero   *tetris.Grid `json:"tablero,omitempty"`
	Lineas    int          `json:"lineas,omitempty"`
}

// Failure is the body of every 4xx/5xx reply.
type Failure struct {
	Exito  bool   `json:"exito"`
	Motivo string `json:"motivo"`
}

// Health is the body of GET /healthz.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Frame is one message on the gateway's observer websocket.
type Frame struct {
	Tablero tetris.Grid  `json:"tablero"`
	Activo  *ActivePiece `json:"activo,omitempty"`
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
