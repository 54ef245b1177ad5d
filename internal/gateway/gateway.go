// Package gateway coordinates the generator, rotator, mover and board.
//
// The gateway holds no game state. Its mode is resolved once at
// construction: in coordinated mode it applies every transform to the board
// itself, in orchestrated mode it only computes the transformed piece and
// leaves placement to the caller.
package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-net/internal/tetris"
)

// Mode selects who submits placements to the board.
type Mode string

const (
	Coordinated  Mode = "coordinada"
	Orchestrated Mode = "orquestada"
)

// ParseMode accepts the configured mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Coordinated, Orchestrated:
		return m, nil
	default:
		return "", fmt.Errorf("gateway: unknown mode %q", s)
	}
}

// ReasonNoActivePiece is reported when rotating or moving with nothing on
// the board.
const ReasonNoActivePiece = "SIN_PIEZA_ACTIVA"

// Board is the board authority as seen by the gateway.
type Board interface {
	Reset(ctx context.Context) (tetris.Grid, error)
	Snapshot(ctx context.Context) (tetris.Grid, error)
	// Active returns nil when no piece is falling.
	Active(ctx context.Context) (*tetris.Piece, error)
	Place(ctx context.Context, p tetris.Piece) (tetris.PlacementResult, error)
}

// Generator hands out fresh shapes.
type Generator interface {
	Next(ctx context.Context) (tetris.Shape, error)
}

// Rotator turns a shape.
type Rotator interface {
	Rotate(ctx context.Context, s tetris.Shape, r tetris.Rotation) (tetris.Shape, error)
}

// Mover translates a position.
type Mover interface {
	Move(ctx context.Context, p tetris.Position, d tetris.Direction) (tetris.Position, error)
}

// Deps are the gateway's collaborators.
type Deps struct {
	Board     Board
	Generator Generator
	Rotator   Rotator
	Mover     Mover
}

// Options tune the gateway.
type Options struct {
	// Spawn is where coordinated new pieces are placed. Zero means tetris.Spawn.
	Spawn *tetris.Position

	// PreRotations returns how many clockwise turns to apply to a new piece
	// in coordinated mode. Nil means none.
	PreRotations func() int

	Logger *log.Logger
}

// Outcome is the aggregate answer of every gateway operation.
type Outcome struct {
	OK     bool
	Reason string
	Mode   Mode

	// Piece is the active or computed piece, when there is one.
	Piece *tetris.Piece

	// Board is the snapshot read after the operation, when one was read.
	Board *tetris.Grid

	LinesCleared int
}

// Resolver carries the mode-specific behavior.
type Resolver interface {
	Mode() Mode
	NewPiece(ctx context.Context) (Outcome, error)
	Rotate(ctx context.Context, r tetris.Rotation, from *tetris.Piece) (Outcome, error)
	Move(ctx context.Context, d tetris.Direction, from *tetris.Piece) (Outcome, error)
}

// Gateway is safe for concurrent use; it keeps no state between calls.
type Gateway struct {
	Resolver
	deps   Deps
	logger *log.Logger
}

// New resolves the mode and returns a ready gateway.
func New(mode Mode, deps Deps, opts Options) (*Gateway, error) {
	if deps.Board == nil || deps.Generator == nil || deps.Rotator == nil || deps.Mover == nil {
		return nil, fmt.Errorf("gateway: all collaborators are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	spawn := tetris.Spawn
	if opts.Spawn != nil {
		spawn = *opts.Spawn
	}

	g := &Gateway{deps: deps, logger: logger}
	switch mode {
	case Coordinated:
		g.Resolver = &coordinatedResolver{deps: deps, spawn: spawn, preRotations: opts.PreRotations, logger: logger}
	case Orchestrated:
		g.Resolver = &orchestratedResolver{deps: deps, spawn: spawn}
	default:
		return nil, fmt.Errorf("gateway: unknown mode %q", mode)
	}
	return g, nil
}

// Start resets the board.
func (g *Gateway) Start(ctx context.Context) (Outcome, error) {
	grid, err := call(ctx, "board.reset", g.deps.Board.Reset)
	if err != nil {
		return g.fail(err)
	}
	g.logger.Info("board reset", "mode", g.Mode())
	return Outcome{OK: true, Mode: g.Mode(), Board: &grid}, nil
}

// Board returns the current snapshot.
func (g *Gateway) Board(ctx context.Context) (Outcome, error) {
	grid, err := call(ctx, "board.snapshot", g.deps.Board.Snapshot)
	if err != nil {
		return g.fail(err)
	}
	return Outcome{OK: true, Mode: g.Mode(), Board: &grid}, nil
}

// Active returns the falling piece, if any.
func (g *Gateway) Active(ctx context.Context) (Outcome, error) {
	p, err := call(ctx, "board.active", g.deps.Board.Active)
	if err != nil {
		return g.fail(err)
	}
	return Outcome{OK: true, Mode: g.Mode(), Piece: p}, nil
}

// Frame reads the snapshot and the falling piece for observers. Failures
// are returned without being logged; observers poll and decide themselves.
func (g *Gateway) Frame(ctx context.Context) (tetris.Grid, *tetris.Piece, error) {
	grid, err := call(ctx, "board.snapshot", g.deps.Board.Snapshot)
	if err != nil {
		return tetris.Grid{}, nil, err
	}
	p, err := call(ctx, "board.active", g.deps.Board.Active)
	if err != nil {
		return tetris.Grid{}, nil, err
	}
	return grid, p, nil
}

// Place submits p to the board and reads the resulting snapshot. It is how
// orchestrated callers apply what the gateway computed, and is available in
// both modes.
func (g *Gateway) Place(ctx context.Context, p tetris.Piece) (Outcome, error) {
	out, err := place(ctx, g.deps.Board, p, g.logger)
	out.Mode = g.Mode()
	return out, err
}

func (g *Gateway) fail(err error) (Outcome, error) {
	g.logger.Warn("upstream failure", "mode", g.Mode(), "error", err)
	return Outcome{Mode: g.Mode(), Reason: err.Error()}, err
}

// place is the shared "submit then read back" step. A failure after the
// placement succeeded does not undo it.
func place(ctx context.Context, b Board, p tetris.Piece, logger *log.Logger) (Outcome, error) {
	res, err := call(ctx, "board.place", func(ctx context.Context) (tetris.PlacementResult, error) {
		return b.Place(ctx, p)
	})
	if err != nil {
		return Outcome{Reason: err.Error()}, err
	}

	out := Outcome{
		OK:           res.OK,
		Reason:       string(res.Reason),
		Piece:        res.Piece,
		LinesCleared: res.LinesCleared,
	}
	switch res.Reason {
	case tetris.ReasonLocked:
		logger.Info("piece locked", "type", p.Shape.Type, "lines", res.LinesCleared)
	case tetris.ReasonGameOver:
		logger.Info("game over")
	}

	grid, err := call(ctx, "board.snapshot", b.Snapshot)
	if err != nil {
		out.OK = false
		out.Reason = err.Error()
		return out, err
	}
	out.Board = &grid
	return out, nil
}
