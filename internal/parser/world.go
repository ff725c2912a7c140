// Package parser reads the plain-text world format:
//
//	<columns>
//	<rows>
//	<row 0>
//	...
//
// Rows use '#' for walls, '.' for floor, '*' for dirt and '@' for the robot.
// Blank lines are ignored.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"svw.info/cleanbot/internal/domain"
)

type line struct {
	no   int
	text string
}

// Parse reads a world from r. Every structural problem is a *domain.FormatError.
func Parse(r io.Reader) (*domain.World, error) {
	var lines []line
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for n := 1; sc.Scan(); n++ {
		t := strings.TrimSpace(sc.Text())
		if t == "" {
			continue
		}
		lines = append(lines, line{no: n, text: t})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read world: %w", err)
	}
	if len(lines) < 2 {
		return nil, &domain.FormatError{Msg: "missing column and row counts"}
	}

	cols, err := dimension(lines[0], "column")
	if err != nil {
		return nil, err
	}
	rows, err := dimension(lines[1], "row")
	if err != nil {
		return nil, err
	}
	grid := lines[2:]
	if len(grid) != rows {
		return nil, &domain.FormatError{Msg: fmt.Sprintf("declared %d rows, found %d", rows, len(grid))}
	}

	w := &domain.World{Columns: cols, Rows: rows, Walls: make([][]bool, rows)}
	robots := 0
	for r, ln := range grid {
		if len(ln.text) != cols {
			return nil, &domain.FormatError{Line: ln.no, Msg: fmt.Sprintf("row has %d columns, declared %d", len(ln.text), cols)}
		}
		w.Walls[r] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			switch ln.text[c] {
			case domain.SymWall:
				w.Walls[r][c] = true
			case domain.SymFloor:
			case domain.SymDirty:
				w.Dirty = append(w.Dirty, domain.Cell{Row: r, Col: c})
			case domain.SymRobot:
				robots++
				if robots > 1 {
					return nil, &domain.FormatError{Line: ln.no, Msg: "multiple robot start positions"}
				}
				w.Start = domain.Cell{Row: r, Col: c}
			default:
				return nil, &domain.FormatError{Line: ln.no, Msg: fmt.Sprintf("unknown cell symbol %q", ln.text[c])}
			}
		}
	}
	if robots == 0 {
		return nil, &domain.FormatError{Msg: "no robot start position '@'"}
	}
	return w, nil
}

func dimension(ln line, what string) (int, error) {
	n, err := strconv.Atoi(ln.text)
	if err != nil {
		return 0, &domain.FormatError{Line: ln.no, Msg: "invalid " + what + " count", Err: err}
	}
	if n < 0 {
		return 0, &domain.FormatError{Line: ln.no, Msg: fmt.Sprintf("negative %s count %d", what, n)}
	}
	return n, nil
}
