package gateway

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-net/internal/tetris"
)

type coordinatedResolver struct {
	deps         Deps
	spawn        tetris.Position
	preRotations func() int
	logger       *log.Logger
}

func (c *coordinatedResolver) Mode() Mode { return Coordinated }

func (c *coordinatedResolver) NewPiece(ctx context.Context) (Outcome, error) {
	shape, err := call(ctx, "generator.next", c.deps.Generator.Next)
	if err != nil {
		return c.fail(err)
	}

	if c.preRotations != nil {
		for range c.preRotations() {
			shape, err = call(ctx, "rotator.rotate", func(ctx context.Context) (tetris.Shape, error) {
				return c.deps.Rotator.Rotate(ctx, shape, tetris.RotateRight)
			})
			if err != nil {
				return c.fail(err)
			}
		}
	}

	return c.place(ctx, tetris.Piece{Shape: shape, Position: c.spawn})
}

// Rotate ignores from: the board's active piece is authoritative here.
func (c *coordinatedResolver) Rotate(ctx context.Context, r tetris.Rotation, _ *tetris.Piece) (Outcome, error) {
	active, err := call(ctx, "board.active", c.deps.Board.Active)
	if err != nil {
		return c.fail(err)
	}
	if active == nil {
		return Outcome{Mode: Coordinated, Reason: ReasonNoActivePiece}, nil
	}

	shape, err := call(ctx, "rotator.rotate", func(ctx context.Context) (tetris.Shape, error) {
		return c.deps.Rotator.Rotate(ctx, active.Shape, r)
	})
	if err != nil {
		return c.fail(err)
	}
	return c.place(ctx, tetris.Piece{Shape: shape, Position: active.Position})
}

func (c *coordinatedResolver) Move(ctx context.Context, d tetris.Direction, _ *tetris.Piece) (Outcome, error) {
	active, err := call(ctx, "board.active", c.deps.Board.Active)
	if err != nil {
		return c.fail(err)
	}
	if active == nil {
		return Outcome{Mode: Coordinated, Reason: ReasonNoActivePiece}, nil
	}

	pos, err := call(ctx, "mover.move", func(ctx context.Context) (tetris.Position, error) {
		return c.deps.Mover.Move(ctx, active.Position, d)
	})
	if err != nil {
		return c.fail(err)
	}
	return c.place(ctx, tetris.Piece{Shape: active.Shape, Position: pos})
}

func (c *coordinatedResolver) place(ctx context.Context, p tetris.Piece) (Outcome, error) {
	out, err := place(ctx, c.deps.Board, p, c.logger)
	out.Mode = Coordinated
	return out, err
}

func (c *coordinatedResolver) fail(err error) (Outcome, error) {
	return Outcome{Mode: Coordinated, Reason: err.Error()}, err
}

// orchestratedResolver computes transforms and never writes to the board.
type orchestratedResolver struct {
	deps  Deps
	spawn tetris.Position
}

func (o *orchestratedResolver) Mode() Mode { return Orchestrated }

func (o *orchestratedResolver) NewPiece(ctx context.Context) (Outcome, error) {
	shape, err := call(ctx, "generator.next", o.deps.Generator.Next)
	if err != nil {
		return o.fail(err)
	}
	return o.computed(tetris.Piece{Shape: shape, Position: o.spawn}), nil
}

func (o *orchestratedResolver) Rotate(ctx context.Context, r tetris.Rotation, from *tetris.Piece) (Outcome, error) {
	p, err := o.source(ctx, from)
	if err != nil || p == nil {
		return o.missing(err)
	}

	shape, err := call(ctx, "rotator.rotate", func(ctx context.Context) (tetris.Shape, error) {
		return o.deps.Rotator.Rotate(ctx, p.Shape, r)
	})
	if err != nil {
		return o.fail(err)
	}
	return o.computed(tetris.Piece{Shape: shape, Position: p.Position}), nil
}

func (o *orchestratedResolver) Move(ctx context.Context, d tetris.Direction, from *tetris.Piece) (Outcome, error) {
	p, err := o.source(ctx, from)
	if err != nil || p == nil {
		return o.missing(err)
	}

	pos, err := call(ctx, "mover.move", func(ctx context.Context) (tetris.Position, error) {
		return o.deps.Mover.Move(ctx, p.Position, d)
	})
	if err != nil {
		return o.fail(err)
	}
	return o.computed(tetris.Piece{Shape: p.Shape, Position: pos}), nil
}

// source returns the caller's piece, or the board's active piece read
// without modifying anything.
func (o *orchestratedResolver) source(ctx context.Context, from *tetris.Piece) (*tetris.Piece, error) {
	if from != nil {
		return from, nil
	}
	return call(ctx, "board.active", o.deps.Board.Active)
}

func (o *orchestratedResolver) missing(err error) (Outcome, error) {
	if err != nil {
		return o.fail(err)
	}
	return Outcome{Mode: Orchestrated, Reason: ReasonNoActivePiece}, nil
}

func (o *orchestratedResolver) computed(p tetris.Piece) Outcome {
	return Outcome{OK: true, Mode: Orchestrated, Piece: &p}
}

func (o *orchestratedResolver) fail(err error) (Outcome, error) {
	return Outcome{Mode: Orchestrated, Reason: err.Error()}, err
}
