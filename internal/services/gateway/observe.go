package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tetris-net/internal/tetris"
	"github.com/vovakirdan/tetris-net/internal/wire"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// observe streams a frame whenever the board or the active piece changes.
func (h *Handler) observe(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Observers never send; reading only detects the close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.logger.Debug("observer connected", "remote", r.RemoteAddr)
	defer h.logger.Debug("observer disconnected", "remote", r.RemoteAddr)

	ticker := time.NewTicker(h.watchInterval)
	defer ticker.Stop()

	var (
		last    tetris.Grid
		lastAct *tetris.Piece
		sent    bool
	)
	for {
		grid, active, err := h.gw.Frame(ctx)
		switch {
		case err != nil:
			h.logger.Debug("observer poll failed", "error", err)
		case !sent || grid != last || !samePiece(active, lastAct):
			frame := wire.Frame{Tablero: grid}
			if active != nil {
				frame.Activo = wire.FromPiece(*active)
			}
			//nolint:errcheck // A failed deadline surfaces as a write error.
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
			last, lastAct, sent = grid, active, true
		}

		select {
		case <-ctx.Done():
			//nolint:errcheck // Peer may already be gone.
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case <-ticker.C:
		}
	}
}

func samePiece(a, b *tetris.Piece) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
