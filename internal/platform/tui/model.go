package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetris-net/internal/config"
	"github.com/vovakirdan/tetris-net/internal/core"
	"github.com/vovakirdan/tetris-net/internal/gateway"
	"github.com/vovakirdan/tetris-net/internal/tetris"
)

// Game is the gateway surface the client drives. Both the in-process
// *gateway.Gateway and the HTTP *client.Gateway satisfy it.
type Game interface {
	Start(ctx context.Context) (gateway.Outcome, error)
	NewPiece(ctx context.Context) (gateway.Outcome, error)
	Rotate(ctx context.Context, r tetris.Rotation, from *tetris.Piece) (gateway.Outcome, error)
	Move(ctx context.Context, d tetris.Direction, from *tetris.Piece) (gateway.Outcome, error)
	Place(ctx context.Context, p tetris.Piece) (gateway.Outcome, error)
	Board(ctx context.Context) (gateway.Outcome, error)
	Active(ctx context.Context) (gateway.Outcome, error)
}

// Options configures a client session.
type Options struct {
	// Mode is the expected gateway mode. Replies from the gateway override it.
	Mode gateway.Mode

	Gravity config.GravityConfig

	// Timeout bounds each gateway call.
	Timeout time.Duration

	// Join attaches to the running game instead of resetting the board.
	Join bool

	// Player is shown in the side panel when set.
	Player string
}

type op int

const (
	opStart op = iota
	opJoin
	opNewPiece
	opRotate
	opMove
	opPlace
)

// resultMsg carries the answer of one gateway call.
type resultMsg struct {
	op  op
	out gateway.Outcome
	err error
}

// Model is the Bubble Tea model of the game screen. At most one gateway
// call is in flight at a time; input arriving meanwhile is dropped.
type Model struct {
	game   Game
	opts   Options
	keys   KeyMap
	help   help.Model
	screen *core.Screen
	pacer  *config.Pacer

	mode     gateway.Mode
	board    tetris.Grid
	active   *tetris.Piece
	lines    int
	steps    int
	message  string
	gameOver bool
	pending  bool
	quitting bool
}

// NewModel creates a model over game.
func NewModel(game Game, opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.Mode == "" {
		opts.Mode = gateway.Coordinated
	}
	return Model{
		game:    game,
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		screen:  core.NewScreen(ScreenWidth, ScreenHeight),
		pacer:   config.NewPacer(opts.Gravity),
		mode:    opts.Mode,
		pending: true, // Init always issues a call.
	}
}

// Init starts or joins the game and the gravity loop.
func (m Model) Init() tea.Cmd {
	first := m.call(opStart, m.game.Start)
	if m.opts.Join {
		first = m.call(opJoin, m.join)
	}
	if !m.pacer.Enabled() {
		return first
	}
	return tea.Batch(first, gravityCmd(m.pacer.Interval(0, 0)))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case resultMsg:
		return m.handleResult(msg)
	case GravityMsg:
		return m.handleGravity()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case core.ActionRestart:
		if m.pending {
			return m, nil
		}
		return m.send(opStart, m.game.Start)
	}

	if !action.Gameplay() || m.pending || m.gameOver {
		return m, nil
	}
	m.message = ""
	return m.act(action)
}

// act sends the gateway call for a gameplay action.
func (m Model) act(action core.Action) (Model, tea.Cmd) {
	from := m.from()
	game := m.game

	switch action {
	case core.ActionLeft:
		return m.send(opMove, func(ctx context.Context) (gateway.Outcome, error) {
			return game.Move(ctx, tetris.DirLeft, from)
		})
	case core.ActionRight:
		return m.send(opMove, func(ctx context.Context) (gateway.Outcome, error) {
			return game.Move(ctx, tetris.DirRight, from)
		})
	case core.ActionDown:
		return m.send(opMove, func(ctx context.Context) (gateway.Outcome, error) {
			return game.Move(ctx, tetris.DirDown, from)
		})
	case core.ActionRotateRight:
		return m.send(opRotate, func(ctx context.Context) (gateway.Outcome, error) {
			return game.Rotate(ctx, tetris.RotateRight, from)
		})
	case core.ActionRotateLeft:
		return m.send(opRotate, func(ctx context.Context) (gateway.Outcome, error) {
			return game.Rotate(ctx, tetris.RotateLeft, from)
		})
	case core.ActionNewPiece:
		if m.active != nil {
			m.message = "piece still falling"
			return m, nil
		}
		return m.send(opNewPiece, game.NewPiece)
	}
	return m, nil
}

// from is the piece sent along with a transform. Orchestrated gateways
// compute from it; coordinated gateways read the board instead.
func (m Model) from() *tetris.Piece {
	if m.mode != gateway.Orchestrated || m.active == nil {
		return nil
	}
	p := *m.active
	return &p
}

func (m Model) handleResult(msg resultMsg) (Model, tea.Cmd) {
	m.pending = false
	if msg.err != nil {
		m.message = "error: " + msg.err.Error()
		return m, nil
	}

	out := msg.out
	if out.Mode != "" {
		m.mode = out.Mode
	}
	if out.Board != nil {
		m.board = *out.Board
	}

	switch msg.op {
	case opStart:
		m.active = nil
		m.gameOver = false
		m.lines = 0
		m.steps = 0
		m.message = "new game"
		return m.send(opNewPiece, m.game.NewPiece)
	case opJoin:
		m.active = out.Piece
		if m.active == nil {
			return m.send(opNewPiece, m.game.NewPiece)
		}
		return m, nil
	}

	// Orchestrated replies are proposals; the client places them itself.
	if m.mode == gateway.Orchestrated && msg.op != opPlace && out.OK && out.Piece != nil {
		p := *out.Piece
		game := m.game
		return m.send(opPlace, func(ctx context.Context) (gateway.Outcome, error) {
			return game.Place(ctx, p)
		})
	}
	return m.apply(out)
}

// apply updates the model from a placement outcome.
func (m Model) apply(out gateway.Outcome) (Model, tea.Cmd) {
	switch out.Reason {
	case "":
		if out.OK {
			m.active = out.Piece
		}
	case string(tetris.ReasonLocked):
		m.active = nil
		m.lines += out.LinesCleared
		m.message = "locked"
		if out.LinesCleared > 0 {
			m.message = "locked, cleared " + plural(out.LinesCleared, "line")
		}
		return m.send(opNewPiece, m.game.NewPiece)
	case string(tetris.ReasonGameOver):
		m.active = nil
		m.gameOver = true
		m.message = "game over, press r to restart"
	case gateway.ReasonNoActivePiece:
		m.active = nil
		m.message = "no active piece, press n"
	default:
		m.message = out.Reason
	}
	return m, nil
}

func (m Model) handleGravity() (Model, tea.Cmd) {
	m.steps++
	next := gravityCmd(m.pacer.Interval(m.lines, m.steps))
	if m.pending || m.gameOver || m.active == nil {
		return m, next
	}
	m, cmd := m.act(core.ActionDown)
	return m, tea.Batch(cmd, next)
}

// join reads the shared board without changing it.
func (m Model) join(ctx context.Context) (gateway.Outcome, error) {
	board, err := m.game.Board(ctx)
	if err != nil {
		return board, err
	}
	active, err := m.game.Active(ctx)
	if err != nil {
		return active, err
	}
	board.Piece = active.Piece
	return board, nil
}

// send marks a call in flight and returns the command performing it.
func (m Model) send(o op, fn func(context.Context) (gateway.Outcome, error)) (Model, tea.Cmd) {
	m.pending = true
	return m, m.call(o, fn)
}

func (m Model) call(o op, fn func(context.Context) (gateway.Outcome, error)) tea.Cmd {
	timeout := m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		out, err := fn(ctx)
		return resultMsg{op: o, out: out, err: err}
	}
}

// View renders the board, the side panel and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	drawBoard(m.screen, m.board, m.active, m.gameOver)
	drawPanel(m.screen, m.panel())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

func (m Model) panel() panel {
	p := panel{
		mode:    m.mode,
		player:  m.opts.Player,
		lines:   m.lines,
		active:  m.active,
		message: m.message,
	}
	if m.pacer.Enabled() {
		p.gravity = m.pacer.Interval(m.lines, m.steps)
	}
	return p
}

// Run starts a Bubble Tea program over game and blocks until it exits.
func Run(game Game, opts Options) error {
	p := tea.NewProgram(NewModel(game, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
