package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vovakirdan/tetris-net/internal/gateway"
	"github.com/vovakirdan/tetris-net/internal/tetris"
	"github.com/vovakirdan/tetris-net/internal/wire"
)

// Gateway talks to the gateway service. It offers the same operations as
// gateway.Gateway so the presentation client can use either.
type Gateway struct{ base }

// NewGateway returns a client for the gateway at url.
func NewGateway(url string, opts ...Option) *Gateway {
	return &Gateway{newBase(url, opts)}
}

// URL returns the gateway base URL.
func (c *Gateway) URL() string { return c.url }

func (c *Gateway) Start(ctx context.Context) (gateway.Outcome, error) {
	return c.call(ctx, http.MethodPost, "/juego/iniciar", nil)
}

func (c *Gateway) NewPiece(ctx context.Context) (gateway.Outcome, error) {
	return c.call(ctx, http.MethodPost, "/juego/tetramino", nil)
}

func (c *Gateway) Rotate(ctx context.Context, r tetris.Rotation, from *tetris.Piece) (gateway.Outcome, error) {
	return c.call(ctx, http.MethodPost, "/juego/girar", request(string(r), from))
}

func (c *Gateway) Move(ctx context.Context, d tetris.Direction, from *tetris.Piece) (gateway.Outcome, error) {
	return c.call(ctx, http.MethodPost, "/juego/deslizar", request(string(d), from))
}

func (c *Gateway) Place(ctx context.Context, p tetris.Piece) (gateway.Outcome, error) {
	return c.call(ctx, http.MethodPost, "/juego/colocar", wire.FromPiece(p))
}

func (c *Gateway) Board(ctx context.Context) (gateway.Outcome, error) {
	return c.call(ctx, http.MethodGet, "/juego/tablero", nil)
}

func (c *Gateway) Active(ctx context.Context) (gateway.Outcome, error) {
	return c.call(ctx, http.MethodGet, "/juego/activo", nil)
}

func request(dir string, from *tetris.Piece) wire.GameRequest {
	req := wire.GameRequest{Direccion: dir}
	if from != nil {
		req.Tetramino = wire.FromShape(from.Shape)
		req.X = wire.Int(from.Position.X)
		req.Y = wire.Int(from.Position.Y)
	}
	return req
}

func (c *Gateway) call(ctx context.Context, method, path string, in any) (gateway.Outcome, error) {
	var out wire.GameResponse
	if err := c.do(ctx, method, path, in, &out); err != nil {
		return gateway.Outcome{Reason: err.Error()}, err
	}
	return DecodeOutcome(out)
}

// DecodeOutcome converts a gateway reply back into an Outcome.
func DecodeOutcome(r wire.GameResponse) (gateway.Outcome, error) {
	out := gateway.Outcome{
		OK:           r.Exito,
		Reason:       r.Motivo,
		Mode:         gateway.Mode(r.Modo),
		Board:        r.Tablero,
		LinesCleared: r.Lineas,
	}
	if r.Tetramino != nil {
		p, err := (&wire.ActivePiece{Tetramino: r.Tetramino, X: r.X, Y: r.Y}).Decode()
		if err != nil {
			return out, fmt.Errorf("client: gateway piece: %w", err)
		}
		out.Piece = &p
	}
	return out, nil
}

// EncodeOutcome is the inverse of DecodeOutcome.
func EncodeOutcome(o gateway.Outcome) wire.GameResponse {
	r := wire.GameResponse{
		Exito:   o.OK,
		Motivo:  o.Reason,
		Modo:    string(o.Mode),
		Tablero: o.Board,
		Lineas:  o.LinesCleared,
	}
	if o.Piece != nil {
		ap := wire.FromPiece(*o.Piece)
		r.Tetramino, r.X, r.Y = ap.Tetramino, ap.X, ap.Y
	}
	return r
}
