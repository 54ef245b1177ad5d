package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetris-net/internal/core"
	"github.com/vovakirdan/tetris-net/internal/gateway"
	"github.com/vovakirdan/tetris-net/internal/tetris"
)

// Layout of the game screen. Each board cell is two characters wide.
const (
	cellWidth  = 2
	boardWidth = tetris.Cols*cellWidth + 2
	panelGap   = 2
	panelWidth = 30

	ScreenWidth  = boardWidth + panelGap + panelWidth
	ScreenHeight = tetris.Rows + 2
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// pieceColors gives every shape its own color.
var pieceColors = map[tetris.Type]core.Color{
	tetris.TypeI: core.ColorCyan,
	tetris.TypeO: core.ColorYellow,
	tetris.TypeT: core.ColorMagenta,
	tetris.TypeS: core.ColorGreen,
	tetris.TypeZ: core.ColorRed,
	tetris.TypeJ: core.ColorBlue,
	tetris.TypeL: core.ColorOrange,
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// boardRect is the framed board area of the screen.
func boardRect() core.Rect {
	return core.NewRect(0, 0, boardWidth, ScreenHeight)
}

// drawBoard draws the grid. Occupied cells are gray; the active piece is
// drawn over them in its own color.
func drawBoard(s *core.Screen, grid tetris.Grid, active *tetris.Piece, gameOver bool) {
	frame := boardRect()
	s.DrawBox(frame, core.ColorGray)
	inner := frame.Inner()

	for row := range tetris.Rows {
		for col := range tetris.Cols {
			x, y := inner.X+col*cellWidth, inner.Y+row
			if grid[row][col] != 0 {
				fillCell(s, x, y, core.ColorGray)
			} else {
				s.SetCell(x, y, '·', core.ColorDim)
			}
		}
	}

	if active != nil {
		color := pieceColors[active.Shape.Type]
		for _, c := range active.Cells() {
			if c.X < 0 || c.X >= tetris.Cols || c.Y < 0 || c.Y >= tetris.Rows {
				continue
			}
			fillCell(s, inner.X+c.X*cellWidth, inner.Y+c.Y, color)
		}
	}

	if gameOver {
		mid := inner.Y + inner.H/2
		s.DrawTextCentered(inner, mid-1, "           ", core.ColorDefault)
		s.DrawTextCentered(inner, mid, " GAME OVER ", core.ColorRed)
		s.DrawTextCentered(inner, mid+1, "           ", core.ColorDefault)
	}
}

func fillCell(s *core.Screen, x, y int, c core.Color) {
	for i := range cellWidth {
		s.SetCell(x+i, y, '█', c)
	}
}

// panel is what the side panel shows.
type panel struct {
	mode    gateway.Mode
	player  string
	lines   int
	gravity time.Duration
	active  *tetris.Piece
	message string
}

func drawPanel(s *core.Screen, p panel) {
	x := boardWidth + panelGap
	y := 1
	line := func(label, value string, c core.Color) {
		s.DrawTextColor(x, y, fmt.Sprintf("%-8s", label), core.ColorGray)
		s.DrawTextColor(x+8, y, truncate(value, panelWidth-8), c)
		y++
	}

	s.DrawTextColor(x, y, "T E T R I S", core.ColorWhite)
	y += 2

	line("mode", string(p.mode), core.ColorDefault)
	if p.player != "" {
		line("player", p.player, core.ColorDefault)
	}
	line("lines", fmt.Sprintf("%d", p.lines), core.ColorDefault)
	if p.gravity > 0 {
		line("speed", p.gravity.Round(time.Millisecond).String(), core.ColorDefault)
	}
	y++

	if p.active == nil {
		line("piece", "-", core.ColorDim)
	} else {
		color := pieceColors[p.active.Shape.Type]
		line("piece", string(p.active.Shape.Type), color)
		line("at", fmt.Sprintf("x=%d y=%d", p.active.Position.X, p.active.Position.Y), core.ColorDefault)

		// Two block coordinates per line.
		cells := p.active.Cells()
		for i := 0; i < len(cells); i += 2 {
			label := ""
			if i == 0 {
				label = "blocks"
			}
			end := core.Clamp(i+2, 0, len(cells))
			line(label, formatCells(cells[i:end]), color)
		}
	}
	y++

	if p.message != "" {
		for _, l := range wrap(p.message, panelWidth) {
			s.DrawTextColor(x, y, l, core.ColorYellow)
			y++
		}
	}
}

func formatCells(cells []tetris.Position) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("(%d,%d)", c.X, c.Y)
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// wrap breaks s into lines of at most width runes at spaces.
func wrap(s string, width int) []string {
	var lines []string
	var cur string
	for _, w := range strings.Fields(s) {
		switch {
		case cur == "":
			cur = w
		case len([]rune(cur))+1+len([]rune(w)) <= width:
			cur += " " + w
		default:
			lines = append(lines, truncate(cur, width))
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, truncate(cur, width))
	}
	return lines
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
