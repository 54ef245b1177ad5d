// Package mover serves the movement transform over HTTP.
package mover

import (
	"fmt"
	"net/http"

	"github.com/vovakirdan/tetris-net/internal/platform/server"
	"github.com/vovakirdan/tetris-net/internal/registry"
	"github.com/vovakirdan/tetris-net/internal/tetris"
	"github.com/vovakirdan/tetris-net/internal/wire"
)

// Name is the registry name of the service.
const Name = "mover"

func init() {
	registry.Register(Name, "Movement Transform", func(env registry.Env) (registry.Service, error) {
		return registry.Service{Name: Name, Addr: env.Config.Mover.Addr, Handler: NewHandler()}, nil
	})
}

// NewHandler returns the stateless movement handler.
func NewHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /deslizar", move)
	mux.HandleFunc("POST /deslizar/tetramino", movePiece)
	mux.HandleFunc("GET /healthz", server.Health(Name))
	return mux
}

func move(w http.ResponseWriter, r *http.Request) {
	var body wire.MoveRequest
	if err := server.ReadJSON(r, &body); err != nil {
		server.FailErr(w, err)
		return
	}
	pos, dir, err := body.Decode()
	if err != nil {
		server.FailErr(w, err)
		return
	}

	next := pos.Translate(dir)
	//nolint:errcheck // Best-effort write.
	server.WriteJSON(w, http.StatusOK, wire.MoveResponse{Exito: true, X: next.X, Y: next.Y})
}

// movePiece translates a shape with its anchor and echoes the shape back.
func movePiece(w http.ResponseWriter, r *http.Request) {
	var body wire.GameRequest
	if err := server.ReadJSON(r, &body); err != nil {
		server.FailErr(w, err)
		return
	}
	dir, err := tetris.ParseDirection(body.Direccion)
	if err != nil {
		server.FailErr(w, err)
		return
	}
	p, err := body.Piece()
	if err != nil {
		server.FailErr(w, err)
		return
	}
	if p == nil {
		server.FailErr(w, fmt.Errorf("%w: tetramino is required", tetris.ErrInvalidMatrix))
		return
	}

	next := p.Position.Translate(dir)
	//nolint:errcheck // Best-effort write.
	server.WriteJSON(w, http.StatusOK, wire.PieceResponse{
		Exito:     true,
		Tetramino: wire.FromShape(p.Shape),
		X:         next.X,
		Y:         next.Y,
	})
}
