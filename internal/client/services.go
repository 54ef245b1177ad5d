package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vovakirdan/tetris-net/internal/tetris"
	"github.com/vovakirdan/tetris-net/internal/wire"
)

// Board talks to the board authority service.
type Board struct{ base }

// NewBoard returns a client for the board service at url.
func NewBoard(url string, opts ...Option) *Board {
	return &Board{newBase(url, opts)}
}

func (c *Board) Reset(ctx context.Context) (tetris.Grid, error) {
	var out wire.BoardState
	if err := c.do(ctx, http.MethodPost, "/tablero/iniciar", nil, &out); err != nil {
		return tetris.Grid{}, err
	}
	return out.Estado, nil
}

func (c *Board) Snapshot(ctx context.Context) (tetris.Grid, error) {
	var out wire.BoardState
	if err := c.do(ctx, http.MethodGet, "/tablero", nil, &out); err != nil {
		return tetris.Grid{}, err
	}
	return out.Estado, nil
}

// Active returns nil when the board reports no falling piece.
func (c *Board) Active(ctx context.Context) (*tetris.Piece, error) {
	var out *wire.ActivePiece
	if err := c.do(ctx, http.MethodGet, "/tablero/activo", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	p, err := out.Decode()
	if err != nil {
		return nil, fmt.Errorf("client: active piece: %w", err)
	}
	return &p, nil
}

func (c *Board) Place(ctx context.Context, p tetris.Piece) (tetris.PlacementResult, error) {
	var out wire.PlaceResponse
	if err := c.do(ctx, http.MethodPost, "/tablero/colocar", wire.FromPiece(p), &out); err != nil {
		return tetris.PlacementResult{}, err
	}
	res := tetris.PlacementResult{
		OK:           out.Exito,
		Reason:       tetris.Reason(out.Motivo),
		LinesCleared: out.Lineas,
	}
	if res.OK {
		res.Piece = &p
	}
	return res, nil
}

// Generator talks to the generator service.
type Generator struct{ base }

// NewGenerator returns a client for the generator service at url.
func NewGenerator(url string, opts ...Option) *Generator {
	return &Generator{newBase(url, opts)}
}

func (c *Generator) Next(ctx context.Context) (tetris.Shape, error) {
	var out wire.ShapeResponse
	if err := c.do(ctx, http.MethodPost, "/tetramino", nil, &out); err != nil {
		return tetris.Shape{}, err
	}
	return decodeShapeResponse(out)
}

// Rotator talks to the rotation service.
type Rotator struct{ base }

// NewRotator returns a client for the rotation service at url.
func NewRotator(url string, opts ...Option) *Rotator {
	return &Rotator{newBase(url, opts)}
}

func (c *Rotator) Rotate(ctx context.Context, s tetris.Shape, r tetris.Rotation) (tetris.Shape, error) {
	var out wire.ShapeResponse
	in := wire.RotateRequest{Tetramino: wire.FromShape(s), Direccion: string(r)}
	if err := c.do(ctx, http.MethodPost, "/rotar", in, &out); err != nil {
		return tetris.Shape{}, err
	}
	return decodeShapeResponse(out)
}

// Mover talks to the movement service.
type Mover struct{ base }

// NewMover returns a client for the movement service at url.
func NewMover(url string, opts ...Option) *Mover {
	return &Mover{newBase(url, opts)}
}

func (c *Mover) Move(ctx context.Context, p tetris.Position, d tetris.Direction) (tetris.Position, error) {
	var out wire.MoveResponse
	in := wire.MoveRequest{X: wire.Int(p.X), Y: wire.Int(p.Y), Direccion: string(d)}
	if err := c.do(ctx, http.MethodPost, "/deslizar", in, &out); err != nil {
		return tetris.Position{}, err
	}
	if !out.Exito {
		return tetris.Position{}, fmt.Errorf("client: move: %s", out.Motivo)
	}
	return tetris.Position{X: out.X, Y: out.Y}, nil
}

func decodeShapeResponse(out wire.ShapeResponse) (tetris.Shape, error) {
	if !out.Exito {
		return tetris.Shape{}, fmt.Errorf("client: %s", out.Motivo)
	}
	s, err := wire.DecodeShape(out.Tetramino)
	if err != nil {
		return tetris.Shape{}, fmt.Errorf("client: decode shape: %w", err)
	}
	return s, nil
}
