package domain

import (
	"strconv"
	"strings"
)

// Grid symbols of the world file format.
const (
	SymWall  = '#'
	SymFloor = '.'
	SymDirty = '*'
	SymRobot = '@'
)

// Cell identifies a grid cell.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the neighbouring cell in the direction of a.
func (c Cell) Step(a Action) Cell {
	dr, dc := a.Delta()
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// World is the immutable grid a robot plans over. Only passability is kept
// in the grid; the robot and dirt markers are extracted into Start and Dirty.
type World struct {
	Columns int      `json:"columns"`
	Rows    int      `json:"rows"`
	Walls   [][]bool `json:"walls"`
	Start   Cell     `json:"start"`
	// Dirty holds the initial dirty cells in row-major order.
	Dirty []Cell `json:"dirty,omitempty"`
}

// IsPassable reports whether (row, col) is on the grid and not a wall.
func (w *World) IsPassable(row, col int) bool {
	if row < 0 || row >= w.Rows || col < 0 || col >= w.Columns {
		return false
	}
	return !w.Walls[row][col]
}

// String renders the world in the file format accepted by the parser.
func (w *World) String() string {
	dirty := make(map[Cell]bool, len(w.Dirty))
	for _, c := range w.Dirty {
		dirty[c] = true
	}
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(w.Columns))
	sb.WriteByte('\n')
	sb.WriteString(strconv.Itoa(w.Rows))
	sb.WriteByte('\n')
	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Columns; c++ {
			cell := Cell{Row: r, Col: c}
			switch {
			case w.Walls[r][c]:
				sb.WriteByte(SymWall)
			case cell == w.Start:
				sb.WriteByte(SymRobot)
			case dirty[cell]:
				sb.WriteByte(SymDirty)
			default:
				sb.WriteByte(SymFloor)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Plan is the outcome of one search run, persisted as JSON.
type Plan struct {
	ID         string    `json:"id,omitempty"`
	Algorithm  Algorithm `json:"algorithm"`
	WorldName  string    `json:"world,omitempty"`
	Found      bool      `json:"found"`
	Actions    []Action  `json:"actions"`
	Cost       int       `json:"cost"`
	Generated  int       `json:"generated"`
	Expanded   int       `json:"expanded"`
	DurationMs int64     `json:"durationMs,omitempty"`
	CreatedAt  int64     `json:"createdAt,omitempty"`
}

// Path returns the actions as their one-letter symbols.
func (p *Plan) Path() string {
	b := make([]byte, len(p.Actions))
	for i, a := range p.Actions {
		b[i] = byte(a)
	}
	return string(b)
}

// PlanMeta is a lightweight listing entry.
type PlanMeta struct {
	ID        string    `json:"id"`
	Algorithm Algorithm `json:"algorithm"`
	WorldName string    `json:"world,omitempty"`
	Found     bool      `json:"found"`
	Cost      int       `json:"cost"`
	CreatedAt int64     `json:"createdAt"`
}
