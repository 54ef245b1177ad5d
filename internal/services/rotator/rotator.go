// Package rotator serves the rotation transform over HTTP.
package rotator

import (
	"net/http"

	"github.com/vovakirdan/tetris-net/internal/platform/server"
	"github.com/vovakirdan/tetris-net/internal/registry"
	"github.com/vovakirdan/tetris-net/internal/tetris"
	"github.com/vovakirdan/tetris-net/internal/wire"
)

// Name is the registry name of the service.
const Name = "rotator"

func init() {
	registry.Register(Name, "Rotation Transform", func(env registry.Env) (registry.Service, error) {
		return registry.Service{Name: Name, Addr: env.Config.Rotator.Addr, Handler: NewHandler()}, nil
	})
}

// NewHandler returns the stateless rotation handler.
func NewHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /rotar", rotate)
	mux.HandleFunc("GET /healthz", server.Health(Name))
	return mux
}

func rotate(w http.ResponseWriter, r *http.Request) {
	var body wire.RotateRequest
	if err := server.ReadJSON(r, &body); err != nil {
		server.FailErr(w, err)
		return
	}
	s, err := wire.DecodeShape(body.Tetramino)
	if err != nil {
		server.FailErr(w, err)
		return
	}
	rot, err := tetris.ParseRotation(body.Direccion)
	if err != nil {
		server.FailErr(w, err)
		return
	}

	//nolint:errcheck // Best-effort write.
	server.WriteJSON(w, http.StatusOK, wire.ShapeResponse{Exito: true, Tetramino: wire.FromShape(s.Rotated(rot))})
}
