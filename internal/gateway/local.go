package gateway

import (
	"context"

	"github.com/vovakirdan/tetris-net/internal/generator"
	"github.com/vovakirdan/tetris-net/internal/tetris"
)

// LocalBoard adapts an in-process board.
type LocalBoard struct {
	Board *tetris.Board
}

func (l LocalBoard) Reset(context.Context) (tetris.Grid, error) {
	return l.Board.Reset(), nil
}

func (l LocalBoard) Snapshot(context.Context) (tetris.Grid, error) {
	return l.Board.Snapshot(), nil
}

func (l LocalBoard) Active(context.Context) (*tetris.Piece, error) {
	p, ok := l.Board.Active()
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (l LocalBoard) Place(_ context.Context, p tetris.Piece) (tetris.PlacementResult, error) {
	return l.Board.TryPlace(p.Shape, p.Position.X, p.Position.Y), nil
}

// LocalGenerator adapts an in-process generator.
type LocalGenerator struct {
	Generator *generator.Generator
}

func (l LocalGenerator) Next(context.Context) (tetris.Shape, error) {
	return l.Generator.Next()
}

// LocalRotator applies tetris.Rotate directly.
type LocalRotator struct{}

func (LocalRotator) Rotate(_ context.Context, s tetris.Shape, r tetris.Rotation) (tetris.Shape, error) {
	if err := s.Validate(); err != nil {
		return tetris.Shape{}, err
	}
	return s.Rotated(r), nil
}

// LocalMover applies Position.Translate directly.
type LocalMover struct{}

func (LocalMover) Move(_ context.Context, p tetris.Position, d tetris.Direction) (tetris.Position, error) {
	return p.Translate(d), nil
}

// NewLocal builds a gateway over an in-process board and generator.
func NewLocal(mode Mode, b *tetris.Board, gen *generator.Generator, opts Options) (*Gateway, error) {
	return New(mode, Deps{
		Board:     LocalBoard{Board: b},
		Generator: LocalGenerator{Generator: gen},
		Rotator:   LocalRotator{},
		Mover:     LocalMover{},
	}, opts)
}
