// Package gateway serves the orchestration gateway over HTTP, plus a
// websocket that streams board changes to observers.
package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-net/internal/client"
	"github.com/vovakirdan/tetris-net/internal/gateway"
	"github.com/vovakirdan/tetris-net/internal/generator"
	"github.com/vovakirdan/tetris-net/internal/platform/server"
	"github.com/vovakirdan/tetris-net/internal/registry"
	"github.com/vovakirdan/tetris-net/internal/tetris"
	"github.com/vovakirdan/tetris-net/internal/wire"
)

// Name is the registry name of the service.
const Name = "gateway"

func init() {
	registry.Register(Name, "Orchestration Gateway", func(env registry.Env) (registry.Service, error) {
		cfg := env.Config
		opt := client.WithTimeout(cfg.Gateway.RequestTimeout)

		opts := gateway.Options{Logger: env.Logger}
		if cfg.Generator.RandomRotations {
			opts.PreRotations = generator.New(cfg.Generator.Seed).RandomRotations
		}

		gw, err := gateway.New(cfg.GatewayMode(), gateway.Deps{
			Board:     client.NewBoard(cfg.Gateway.BoardURL, opt),
			Generator: client.NewGenerator(cfg.Gateway.GeneratorURL, opt),
			Rotator:   client.NewRotator(cfg.Gateway.RotatorURL, opt),
			Mover:     client.NewMover(cfg.Gateway.MoverURL, opt),
		}, opts)
		if err != nil {
			return registry.Service{}, err
		}

		h := NewHandler(gw, cfg.Gateway.WatchInterval, env.Logger)
		return registry.Service{Name: Name, Addr: cfg.Gateway.Addr, Handler: h}, nil
	})
}

// Handler exposes a gateway.
type Handler struct {
	gw            *gateway.Gateway
	watchInterval time.Duration
	logger        *log.Logger
	mux           *http.ServeMux
}

// NewHandler serves gw. watchInterval paces the observer websocket.
func NewHandler(gw *gateway.Gateway, watchInterval time.Duration, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	if watchInterval <= 0 {
		watchInterval = 250 * time.Millisecond
	}
	h := &Handler{gw: gw, watchInterval: watchInterval, logger: logger, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /juego/iniciar", h.simple(gw.Start))
	h.mux.HandleFunc("POST /juego/tetramino", h.simple(gw.NewPiece))
	h.mux.HandleFunc("POST /juego/girar", h.rotate)
	h.mux.HandleFunc("POST /juego/deslizar", h.move)
	h.mux.HandleFunc("POST /juego/colocar", h.place)
	h.mux.HandleFunc("GET /juego/tablero", h.simple(gw.Board))
	h.mux.HandleFunc("GET /juego/activo", h.simple(gw.Active))
	h.mux.HandleFunc("GET /juego/observar", h.observe)
	h.mux.HandleFunc("GET /healthz", server.Health(Name))
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) simple(op func(context.Context) (gateway.Outcome, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := op(r.Context())
		h.respond(w, out, err)
	}
}

func (h *Handler) rotate(w http.ResponseWriter, r *http.Request) {
	var body wire.GameRequest
	if err := server.ReadJSON(r, &body); err != nil {
		h.invalid(w, err)
		return
	}
	rot, err := tetris.ParseRotation(body.Direccion)
	if err != nil {
		h.invalid(w, err)
		return
	}
	from, err := body.Piece()
	if err != nil {
		h.invalid(w, err)
		return
	}

	out, err := h.gw.Rotate(r.Context(), rot, from)
	h.respond(w, out, err)
}

func (h *Handler) move(w http.ResponseWriter, r *http.Request) {
	var body wire.GameRequest
	if err := server.ReadJSON(r, &body); err != nil {
		h.invalid(w, err)
		return
	}
	dir, err := tetris.ParseDirection(body.Direccion)
	if err != nil {
		h.invalid(w, err)
		return
	}
	from, err := body.Piece()
	if err != nil {
		h.invalid(w, err)
		return
	}

	out, err := h.gw.Move(r.Context(), dir, from)
	h.respond(w, out, err)
}

func (h *Handler) place(w http.ResponseWriter, r *http.Request) {
	var body wire.ActivePiece
	if err := server.ReadJSON(r, &body); err != nil {
		h.invalid(w, err)
		return
	}
	p, err := body.Decode()
	if err != nil {
		h.invalid(w, err)
		return
	}

	out, err := h.gw.Place(r.Context(), p)
	h.respond(w, out, err)
}

func (h *Handler) invalid(w http.ResponseWriter, err error) {
	//nolint:errcheck // Best-effort write.
	server.WriteJSON(w, server.StatusFor(err), wire.GameResponse{
		Motivo: err.Error(),
		Modo:   string(h.gw.Mode()),
	})
}

// respond maps upstream failures to 502, except input a collaborator
// rejected as invalid, which stays 400. Game-level failures (collision,
// lock, game over) are 200 with exito=false.
func (h *Handler) respond(w http.ResponseWriter, out gateway.Outcome, err error) {
	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
		if client.IsStatus(err, http.StatusBadRequest) {
			status = http.StatusBadRequest
		}
		out.OK = false
		out.Reason = err.Error()
	}
	out.Mode = h.gw.Mode()
	//nolint:errcheck // Best-effort write.
	server.WriteJSON(w, status, client.EncodeOutcome(out))
}
