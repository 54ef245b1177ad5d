package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetris-net/internal/client"
	"github.com/vovakirdan/tetris-net/internal/gateway"
	"github.com/vovakirdan/tetris-net/internal/generator"
	"github.com/vovakirdan/tetris-net/internal/platform/server"
	boardsvc "github.com/vovakirdan/tetris-net/internal/services/board"
	gatewaysvc "github.com/vovakirdan/tetris-net/internal/services/gateway"
	generatorsvc "github.com/vovakirdan/tetris-net/internal/services/generator"
	moversvc "github.com/vovakirdan/tetris-net/internal/services/mover"
	rotatorsvc "github.com/vovakirdan/tetris-net/internal/services/rotator"
	"github.com/vovakirdan/tetris-net/internal/tetris"
	"github.com/vovakirdan/tetris-net/internal/wire"
)

type cluster struct {
	board     *httptest.Server
	generator *httptest.Server
	rotator   *httptest.Server
	mover     *httptest.Server

	mu         sync.Mutex
	requestIDs []string
}

func (c *cluster) seenIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.requestIDs...)
}

func newCluster(t *testing.T) *cluster {
	t.Helper()
	logger := log.New(io.Discard)
	c := &cluster{}

	board := boardsvc.NewHandler(tetris.NewBoard(), nil, logger)
	c.board = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		c.requestIDs = append(c.requestIDs, r.Header.Get(server.RequestIDHeader))
		c.mu.Unlock()
		board.ServeHTTP(w, r)
	}))
	c.generator = httptest.NewServer(generatorsvc.NewHandler(generator.New(1), logger))
	c.rotator = httptest.NewServer(rotatorsvc.NewHandler())
	c.mover = httptest.NewServer(moversvc.NewHandler())

	t.Cleanup(func() {
		c.board.Close()
		c.generator.Close()
		c.rotator.Close()
		c.mover.Close()
	})
	return c
}

func (c *cluster) gateway(t *testing.T, mode gateway.Mode) *client.Gateway {
	t.Helper()
	logger := log.New(io.Discard)
	gw, err := gateway.New(mode, gateway.Deps{
		Board:     client.NewBoard(c.board.URL),
		Generator: client.NewGenerator(c.generator.URL),
		Rotator:   client.NewRotator(c.rotator.URL),
		Mover:     client.NewMover(c.mover.URL),
	}, gateway.Options{Logger: logger})
	require.NoError(t, err)

	srv := httptest.NewServer(server.RequestID(gatewayHandler(gw, logger)))
	t.Cleanup(srv.Close)
	return client.NewGateway(srv.URL)
}

func gatewayHandler(gw *gateway.Gateway, logger *log.Logger) http.Handler {
	return gatewaysvc.NewHandler(gw, 10*time.Millisecond, logger)
}

func TestBoardClient(t *testing.T) {
	c := newCluster(t)
	b := client.NewBoard(c.board.URL)
	ctx := context.Background()

	grid, err := b.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, tetris.Grid{}, grid)

	active, err := b.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	o, _ := tetris.Lookup(tetris.TypeO)
	p := tetris.Piece{Shape: o, Position: tetris.Spawn}
	res, err := b.Place(ctx, p)
	require.NoError(t, err)
	assert.True(t, res.OK)
	require.NotNil(t, res.Piece)
	assert.Equal(t, p, *res.Piece)

	active, err = b.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, p, *active)

	grid, err = b.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, grid.Occupied())

	res, err = b.Place(ctx, tetris.Piece{Shape: o, Position: tetris.Position{X: 9, Y: 0}})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, tetris.ReasonOutOfRange, res.Reason)
	assert.Nil(t, res.Piece)
}

func TestTransformClients(t *testing.T) {
	c := newCluster(t)
	ctx := context.Background()

	s, err := client.NewGenerator(c.generator.URL).Next(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	tshape, _ := tetris.Lookup(tetris.TypeT)
	rotated, err := client.NewRotator(c.rotator.URL).Rotate(ctx, tshape, tetris.RotateLeft)
	require.NoError(t, err)
	assert.Equal(t, tetris.Rotate(tshape.Matrix, tetris.RotateLeft), rotated.Matrix)
	assert.Equal(t, tetris.TypeT, rotated.Type)

	pos, err := client.NewMover(c.mover.URL).Move(ctx, tetris.Position{X: 3, Y: 0}, tetris.DirDown)
	require.NoError(t, err)
	assert.Equal(t, tetris.Position{X: 3, Y: 1}, pos)
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		server.Fail(w, http.StatusBadRequest, "invalid matrix")
	}))
	defer srv.Close()

	_, err := client.NewBoard(srv.URL).Snapshot(context.Background())
	require.Error(t, err)
	assert.True(t, client.IsStatus(err, http.StatusBadRequest))
	assert.False(t, client.IsStatus(err, http.StatusBadGateway))
	assert.Contains(t, err.Error(), "invalid matrix")
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := client.NewBoard(srv.URL, client.WithTimeout(50*time.Millisecond)).Snapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestGatewayCoordinatedEndToEnd(t *testing.T) {
	c := newCluster(t)
	gw := c.gateway(t, gateway.Coordinated)
	ctx := context.Background()

	out, err := gw.Start(ctx)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, gateway.Coordinated, out.Mode)

	out, err = gw.NewPiece(ctx)
	require.NoError(t, err)
	require.True(t, out.OK)
	require.NotNil(t, out.Piece)
	assert.Equal(t, tetris.Spawn, out.Piece.Position)

	out, err = gw.Move(ctx, tetris.DirDown, nil)
	require.NoError(t, err)
	require.True(t, out.OK)
	assert.Equal(t, 1, out.Piece.Position.Y)

	active, err := gw.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, active.Piece)
	assert.Equal(t, *out.Piece, *active.Piece)

	board, err := gw.Board(ctx)
	require.NoError(t, err)
	require.NotNil(t, board.Board)
	assert.Equal(t, 4, board.Board.Occupied())
}

func TestGatewayForwardsRequestID(t *testing.T) {
	c := newCluster(t)
	gw := c.gateway(t, gateway.Coordinated)

	_, err := gw.Board(context.Background())
	require.NoError(t, err)

	ids := c.seenIDs()
	require.Len(t, ids, 1)
	assert.NotEmpty(t, ids[0])
}

func TestGatewayOrchestratedEndToEnd(t *testing.T) {
	c := newCluster(t)
	gw := c.gateway(t, gateway.Orchestrated)
	ctx := context.Background()

	_, err := gw.Start(ctx)
	require.NoError(t, err)

	out, err := gw.NewPiece(ctx)
	require.NoError(t, err)
	require.NotNil(t, out.Piece)
	piece := *out.Piece

	// Nothing is on the board until the caller places the piece.
	active, err := gw.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active.Piece)

	out, err = gw.Place(ctx, piece)
	require.NoError(t, err)
	require.True(t, out.OK)

	out, err = gw.Move(ctx, tetris.DirRight, &piece)
	require.NoError(t, err)
	require.NotNil(t, out.Piece)
	assert.Equal(t, piece.Position.X+1, out.Piece.Position.X)

	active, err = gw.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, active.Piece)
	assert.Equal(t, piece, *active.Piece)
}

func TestGatewayUpstreamDown(t *testing.T) {
	c := newCluster(t)
	gw := c.gateway(t, gateway.Coordinated)
	c.board.Close()

	_, err := gw.Start(context.Background())
	require.Error(t, err)
	assert.True(t, client.IsStatus(err, http.StatusBadGateway))
}

func TestOutcomeCodec(t *testing.T) {
	o, _ := tetris.Lookup(tetris.TypeO)
	grid := tetris.Grid{}
	grid[19][0] = 1
	in := gateway.Outcome{
		OK:           false,
		Reason:       string(tetris.ReasonLocked),
		Mode:         gateway.Orchestrated,
		Piece:        &tetris.Piece{Shape: o, Position: tetris.Position{X: 2, Y: 5}},
		Board:        &grid,
		LinesCleared: 1,
	}

	out, err := client.DecodeOutcome(client.EncodeOutcome(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = client.DecodeOutcome(wire.GameResponse{Tetramino: &wire.Shape{Tipo: "O"}})
	assert.Error(t, err)
}
