// Package board serves the board authority over HTTP.
package board

import (
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tetris-net/internal/journal"
	"github.com/vovakirdan/tetris-net/internal/platform/server"
	"github.com/vovakirdan/tetris-net/internal/registry"
	"github.com/vovakirdan/tetris-net/internal/tetris"
	"github.com/vovakirdan/tetris-net/internal/wire"
)

// Name is the registry name of the service.
const Name = "board"

func init() {
	registry.Register(Name, "Board Authority", func(env registry.Env) (registry.Service, error) {
		var rec Recorder
		if env.Journal != nil {
			rec = env.Journal
		}
		h := NewHandler(tetris.NewBoard(), rec, env.Logger)
		return registry.Service{Name: Name, Addr: env.Config.Board.Addr, Handler: h}, nil
	})
}

// Recorder receives board events. *journal.Journal satisfies it.
type Recorder interface {
	Record(e journal.Event) (int64, error)
}

// Handler exposes one board.
type Handler struct {
	board   *tetris.Board
	journal Recorder
	logger  *log.Logger
	mux     *http.ServeMux

	mu   sync.Mutex
	game string
}

// NewHandler serves b. rec may be nil.
func NewHandler(b *tetris.Board, rec Recorder, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	h := &Handler{
		board:   b,
		journal: rec,
		logger:  logger,
		mux:     http.NewServeMux(),
		game:    uuid.NewString(),
	}
	h.mux.HandleFunc("POST /tablero/iniciar", h.reset)
	h.mux.HandleFunc("GET /tablero", h.snapshot)
	h.mux.HandleFunc("GET /tablero/activo", h.active)
	h.mux.HandleFunc("POST /tablero/colocar", h.place)
	h.mux.HandleFunc("GET /healthz", server.Health(Name))
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	grid := h.board.Reset()

	h.mu.Lock()
	h.game = uuid.NewString()
	game := h.game
	h.mu.Unlock()

	h.logger.Info("board reset", "game", game)
	h.record(r, journal.Event{Game: game, Kind: journal.KindReset})

	//nolint:errcheck // Best-effort write.
	server.WriteJSON(w, http.StatusOK, wire.BoardState{Estado: grid})
}

func (h *Handler) snapshot(w http.ResponseWriter, _ *http.Request) {
	//nolint:errcheck // Best-effort write.
	server.WriteJSON(w, http.StatusOK, wire.BoardState{Estado: h.board.Snapshot()})
}

// active answers null when no piece is falling.
func (h *Handler) active(w http.ResponseWriter, _ *http.Request) {
	var body *wire.ActivePiece
	if p, ok := h.board.Active(); ok {
		body = wire.FromPiece(p)
	}
	//nolint:errcheck // Best-effort write.
	server.WriteJSON(w, http.StatusOK, body)
}

func (h *Handler) place(w http.ResponseWriter, r *http.Request) {
	var body wire.ActivePiece
	if err := server.ReadJSON(r, &body); err != nil {
		server.FailErr(w, err)
		return
	}
	p, err := body.Decode()
	if err != nil {
		server.FailErr(w, err)
		return
	}

	res := h.board.TryPlace(p.Shape, p.Position.X, p.Position.Y)

	switch res.Reason {
	case tetris.ReasonLocked:
		h.logger.Info("piece locked",
			"type", res.Locked.Shape.Type,
			"x", res.Locked.Position.X,
			"y", res.Locked.Position.Y,
			"lines", res.LinesCleared,
		)
		h.record(r, journal.Event{
			Game:  h.currentGame(),
			Kind:  journal.KindLock,
			Piece: string(res.Locked.Shape.Type),
			X:     res.Locked.Position.X,
			Y:     res.Locked.Position.Y,
			Lines: res.LinesCleared,
		})
	case tetris.ReasonGameOver:
		h.logger.Info("game over", "type", p.Shape.Type)
		h.record(r, journal.Event{
			Game:  h.currentGame(),
			Kind:  journal.KindGameOver,
			Piece: string(p.Shape.Type),
			X:     p.Position.X,
			Y:     p.Position.Y,
		})
	}

	//nolint:errcheck // Best-effort write.
	server.WriteJSON(w, http.StatusOK, wire.FromPlacement(res))
}

func (h *Handler) currentGame() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.game
}

// record journals e. Failures are logged and never reach the caller.
func (h *Handler) record(r *http.Request, e journal.Event) {
	if h.journal == nil {
		return
	}
	e.RequestID = server.RequestIDFrom(r.Context())
	if _, err := h.journal.Record(e); err != nil {
		h.logger.Warn("journal write failed", "kind", e.Kind, "error", err)
	}
}
