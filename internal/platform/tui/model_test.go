package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-net/internal/gateway"
	"github.com/vovakirdan/tetris-net/internal/tetris"
)

type fixedGenerator struct {
	typ tetris.Type
	err error
}

func (f fixedGenerator) Next(context.Context) (tetris.Shape, error) {
	if f.err != nil {
		return tetris.Shape{}, f.err
	}
	s, _ := tetris.Lookup(f.typ)
	return s, nil
}

func newGame(t *testing.T, mode gateway.Mode, b *tetris.Board, gen gateway.Generator) *gateway.Gateway {
	t.Helper()
	g, err := gateway.New(mode, gateway.Deps{
		Board:     gateway.LocalBoard{Board: b},
		Generator: gen,
		Rotator:   gateway.LocalRotator{},
		Mover:     gateway.LocalMover{},
	}, gateway.Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// drive runs cmd and every command it leads to, feeding results back into m.
// Tick commands never appear because gravity is disabled in these tests.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("too many commands")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
		default:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	return drive(t, next.(Model), cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func start(t *testing.T, game Game, opts Options) Model {
	t.Helper()
	m := NewModel(game, opts)
	return drive(t, m, m.Init())
}

func TestStartSpawnsPiece(t *testing.T) {
	b := tetris.NewBoard()
	m := start(t, newGame(t, gateway.Coordinated, b, fixedGenerator{typ: tetris.TypeO}), Options{})

	if m.active == nil {
		t.Fatal("expected an active piece after start")
	}
	if m.active.Position != tetris.Spawn {
		t.Errorf("active at %+v, expected spawn", m.active.Position)
	}
	if m.pending {
		t.Error("no call should be pending")
	}
	if m.board.Occupied() != 4 {
		t.Errorf("board has %d cells, expected 4", m.board.Occupied())
	}
}

func TestMoveDownAndLock(t *testing.T) {
	b := tetris.NewBoard()
	m := start(t, newGame(t, gateway.Coordinated, b, fixedGenerator{typ: tetris.TypeO}), Options{})

	down := tea.KeyMsg{Type: tea.KeyDown}
	for range 17 {
		m = press(t, m, down)
	}
	if m.active == nil || m.active.Position.Y != 17 {
		t.Fatalf("active = %+v, expected y=17", m.active)
	}

	// The next step locks and the client asks for a new piece.
	m = press(t, m, down)
	if m.active == nil || m.active.Position != tetris.Spawn {
		t.Fatalf("expected a fresh piece at spawn, got %+v", m.active)
	}
	if m.board.Occupied() != 8 {
		t.Errorf("board has %d cells, expected 8", m.board.Occupied())
	}
	if !strings.Contains(m.message, "locked") {
		t.Errorf("message = %q", m.message)
	}
}

func TestLockMessageSurvivesSpawnUntilNextKey(t *testing.T) {
	b := tetris.NewBoard()
	m := start(t, newGame(t, gateway.Coordinated, b, fixedGenerator{typ: tetris.TypeO}), Options{})

	down := tea.KeyMsg{Type: tea.KeyDown}
	for range 18 {
		m = press(t, m, down)
	}
	if m.message != "locked" {
		t.Fatalf("message after lock and respawn = %q, expected %q", m.message, "locked")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.message != "" {
		t.Errorf("message after next move = %q, expected it cleared", m.message)
	}
}

func TestLockMessageOrchestrated(t *testing.T) {
	b := tetris.NewBoard()
	m := start(t, newGame(t, gateway.Orchestrated, b, fixedGenerator{typ: tetris.TypeO}), Options{Mode: gateway.Orchestrated})

	down := tea.KeyMsg{Type: tea.KeyDown}
	for range 18 {
		m = press(t, m, down)
	}
	if m.active == nil || m.active.Position != tetris.Spawn {
		t.Fatalf("expected a fresh piece at spawn, got %+v", m.active)
	}
	if m.message != "locked" {
		t.Errorf("message = %q, expected %q", m.message, "locked")
	}
}

func TestBlockedMoveKeepsPiece(t *testing.T) {
	b := tetris.NewBoard()
	m := start(t, newGame(t, gateway.Coordinated, b, fixedGenerator{typ: tetris.TypeO}), Options{})

	left := tea.KeyMsg{Type: tea.KeyLeft}
	for range 4 {
		m = press(t, m, left)
	}
	if m.active.Position.X != -1 {
		t.Fatalf("active x = %d, expected -1", m.active.Position.X)
	}

	m = press(t, m, left)
	if m.active == nil || m.active.Position.X != -1 {
		t.Errorf("blocked move should keep the piece, got %+v", m.active)
	}
	if m.message != string(tetris.ReasonOutOfRange) {
		t.Errorf("message = %q", m.message)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	b := tetris.NewBoard()
	m := start(t, newGame(t, gateway.Coordinated, b, fixedGenerator{typ: tetris.TypeO}), Options{})

	down := tea.KeyMsg{Type: tea.KeyDown}
	for i := 0; !m.gameOver; i++ {
		if i > 500 {
			t.Fatal("game never ended")
		}
		m = press(t, m, down)
	}
	if m.active != nil {
		t.Error("no piece should be active after game over")
	}

	// Gameplay keys are ignored until restart.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if cmd != nil || next.(Model).pending {
		t.Error("moves should be ignored after game over")
	}

	m = press(t, m, runes("r"))
	if m.gameOver {
		t.Error("restart should clear game over")
	}
	if m.active == nil || m.board.Occupied() != 4 {
		t.Errorf("restart should spawn a piece on an empty board, got %d cells", m.board.Occupied())
	}
}

func TestOrchestratedClientPlaces(t *testing.T) {
	b := tetris.NewBoard()
	m := start(t, newGame(t, gateway.Orchestrated, b, fixedGenerator{typ: tetris.TypeT}), Options{Mode: gateway.Orchestrated})

	p, ok := b.Active()
	if !ok {
		t.Fatal("client should have placed the new piece")
	}
	if p.Position != tetris.Spawn {
		t.Errorf("placed at %+v", p.Position)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	p, _ = b.Active()
	if p.Position.X != tetris.SpawnColumn+1 {
		t.Errorf("board piece x = %d, expected %d", p.Position.X, tetris.SpawnColumn+1)
	}
	if m.active == nil || *m.active != p {
		t.Errorf("model piece %+v differs from board %+v", m.active, p)
	}

	m = press(t, m, runes("z"))
	p, _ = b.Active()
	tshape, _ := tetris.Lookup(tetris.TypeT)
	if p.Shape.Matrix != tetris.Rotate(tshape.Matrix, tetris.RotateLeft) {
		t.Errorf("board piece not rotated:\n%v", p.Shape.Matrix)
	}
	if m.mode != gateway.Orchestrated {
		t.Errorf("mode = %s", m.mode)
	}
}

func TestModeLearnedFromReplies(t *testing.T) {
	b := tetris.NewBoard()
	m := start(t, newGame(t, gateway.Orchestrated, b, fixedGenerator{typ: tetris.TypeI}), Options{})

	if m.mode != gateway.Orchestrated {
		t.Errorf("mode = %s, expected %s", m.mode, gateway.Orchestrated)
	}
	if _, ok := b.Active(); !ok {
		t.Error("piece should be placed once the mode is known")
	}
}

func TestJoinKeepsBoard(t *testing.T) {
	b := tetris.NewBoard()
	o, _ := tetris.Lookup(tetris.TypeO)
	b.TryPlace(o, 3, 0)
	b.TryPlace(o, 3, 5)

	m := start(t, newGame(t, gateway.Coordinated, b, fixedGenerator{typ: tetris.TypeI}), Options{Join: true})

	if m.active == nil || m.active.Position.Y != 5 || m.active.Shape.Type != tetris.TypeO {
		t.Errorf("join should pick up the running piece, got %+v", m.active)
	}
}

func TestNewPieceWhileFalling(t *testing.T) {
	b := tetris.NewBoard()
	m := start(t, newGame(t, gateway.Coordinated, b, fixedGenerator{typ: tetris.TypeO}), Options{})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})

	next, cmd := m.Update(runes("n"))
	if cmd != nil {
		t.Error("new piece should not be requested while one is falling")
	}
	if next.(Model).message == "" {
		t.Error("expected a message")
	}
}

func TestUpstreamErrorShown(t *testing.T) {
	b := tetris.NewBoard()
	gen := fixedGenerator{err: errors.New("generator down")}
	m := start(t, newGame(t, gateway.Coordinated, b, gen), Options{})

	if !strings.Contains(m.message, "generator down") {
		t.Errorf("message = %q", m.message)
	}
	if m.pending {
		t.Error("a failed call must not leave the model pending")
	}
	if !strings.Contains(m.View(), "generator") {
		t.Error("the error should be visible")
	}
}

func TestPendingDropsInput(t *testing.T) {
	b := tetris.NewBoard()
	m := NewModel(newGame(t, gateway.Coordinated, b, fixedGenerator{typ: tetris.TypeO}), Options{})

	// Init has not completed yet.
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown}); cmd != nil {
		t.Error("input should be dropped while a call is pending")
	}
}

func TestQuitAndHelp(t *testing.T) {
	m := start(t, newGame(t, gateway.Coordinated, tetris.NewBoard(), fixedGenerator{typ: tetris.TypeO}), Options{})

	next, _ := m.Update(runes("?"))
	if !next.(Model).help.ShowAll {
		t.Error("? should expand the help")
	}

	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestGravityMovesPiece(t *testing.T) {
	b := tetris.NewBoard()
	m := start(t, newGame(t, gateway.Coordinated, b, fixedGenerator{typ: tetris.TypeO}), Options{})

	next, cmd := m.Update(GravityMsg{})
	m = next.(Model)
	if !m.pending || cmd == nil {
		t.Fatal("gravity should send a move")
	}

	// The batch holds the move and the next tick; run only the move.
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch, got %T", cmd())
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(resultMsg); ok {
			next, _ = m.Update(msg)
			m = next.(Model)
			break
		}
	}
	if m.active == nil || m.active.Position.Y != 1 {
		t.Errorf("gravity should move the piece down, got %+v", m.active)
	}
}
