package tetris

import "strings"

// Board dimensions and spawn point.
const (
	Rows        = 20
	Cols        = 10
	SpawnRow    = 0
	SpawnColumn = 3
)

// Grid is the 20x10 occupancy matrix. It is a value type: assigning a Grid
// copies every cell.
type Grid [Rows][Cols]int

// Spawn is the anchor new pieces are placed at.
var Spawn = Position{X: SpawnColumn, Y: SpawnRow}

// check reports why m cannot sit at (x, y), or "" when it fits.
// Out-of-range wins over collision when both apply.
func (g *Grid) check(m Matrix, x, y int) Reason {
	collides := false
	for _, c := range m.Cells() {
		row, col := y+c.Y, x+c.X
		if row < 0 || row >= Rows || col < 0 || col >= Cols {
			return ReasonOutOfRange
		}
		if g[row][col] != 0 {
			collides = true
		}
	}
	if collides {
		return ReasonCollision
	}
	return ""
}

// stamp writes the piece's occupied cells into the grid, skipping cells
// outside the bounds.
func (g *Grid) stamp(p Piece) {
	for _, c := range p.Cells() {
		if c.Y >= 0 && c.Y < Rows && c.X >= 0 && c.X < Cols {
			g[c.Y][c.X] = 1
		}
	}
}

func (g *Grid) rowFull(row int) bool {
	for _, v := range g[row] {
		if v == 0 {
			return false
		}
	}
	return true
}

// clearLines removes every full row bottom-to-top, shifting the rows above
// it down and inserting an empty row at the top. The same index is checked
// again after a removal. Returns the number of rows removed.
func (g *Grid) clearLines() int {
	cleared := 0
	for row := Rows - 1; row >= 0; {
		if !g.rowFull(row) {
			row--
			continue
		}
		copy(g[1:row+1], g[:row])
		g[0] = [Cols]int{}
		cleared++
	}
	return cleared
}

// Occupied counts the non-empty cells.
func (g Grid) Occupied() int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// String draws the grid with '#' for occupied and '.' for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow((Cols + 1) * Rows)
	for y, row := range g {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, v := range row {
			if v != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
