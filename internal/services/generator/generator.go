// Package generator serves random tetrominoes over HTTP.
package generator

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-net/internal/generator"
	"github.com/vovakirdan/tetris-net/internal/platform/server"
	"github.com/vovakirdan/tetris-net/internal/registry"
	"github.com/vovakirdan/tetris-net/internal/wire"
)

// Name is the registry name of the service.
const Name = "generator"

func init() {
	registry.Register(Name, "Piece Generator", func(env registry.Env) (registry.Service, error) {
		h := NewHandler(generator.New(env.Config.Generator.Seed), env.Logger)
		return registry.Service{Name: Name, Addr: env.Config.Generator.Addr, Handler: h}, nil
	})
}

// NewHandler serves shapes drawn from gen.
func NewHandler(gen *generator.Generator, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tetramino", func(w http.ResponseWriter, _ *http.Request) {
		s, err := gen.Next()
		if err != nil {
			logger.Error("generator produced an invalid shape", "error", err)
			server.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}
		//nolint:errcheck // Best-effort write.
		server.WriteJSON(w, http.StatusOK, wire.ShapeResponse{Exito: true, Tetramino: wire.FromShape(s)})
	})
	mux.HandleFunc("GET /healthz", server.Health(Name))
	return mux
}
