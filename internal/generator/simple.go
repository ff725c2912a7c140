package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"svw.info/cleanbot/internal/domain"
	"svw.info/cleanbot/internal/ports"
)

const (
	maxDimension = 64
	maxAttempts  = 32
)

var ErrNoLayout = errors.New("no layout with enough reachable floor")

// Random builds seeded random worlds whose dirt is always reachable from the start.
type Random struct{}

func NewRandom() *Random { return &Random{} }

// Generate places walls with probability opts.WallRatio, picks a start, and
// scatters opts.Dirt dirty cells over floor reachable from it. The same seed
// and options always produce the same world.
func (g *Random) Generate(ctx context.Context, seed int64, opts ports.GenerateOptions) (*domain.World, error) {
	if opts.Columns <= 0 || opts.Rows <= 0 || max(opts.Columns, opts.Rows) > maxDimension {
		return nil, fmt.Errorf("invalid world dimensions %dx%d", opts.Columns, opts.Rows)
	}
	if opts.Dirt < 0 || opts.Dirt >= opts.Columns*opts.Rows {
		return nil, fmt.Errorf("invalid dirt count %d for %dx%d", opts.Dirt, opts.Columns, opts.Rows)
	}
	if opts.WallRatio < 0 || opts.WallRatio >= 1 {
		return nil, fmt.Errorf("invalid wall ratio %v", opts.WallRatio)
	}

	rng := rand.New(rand.NewSource(seed))
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// the last attempt drops walls so a layout always exists
		ratio := opts.WallRatio
		if attempt == maxAttempts-1 {
			ratio = 0
		}
		w := layWalls(rng, opts.Columns, opts.Rows, ratio)
		floor := floorCells(w)
		if len(floor) == 0 {
			continue
		}
		w.Start = floor[rng.Intn(len(floor))]
		reach := reachable(w)
		if len(reach)-1 < opts.Dirt {
			continue
		}
		rng.Shuffle(len(reach), func(i, j int) { reach[i], reach[j] = reach[j], reach[i] })
		dirty := make(map[domain.Cell]bool, opts.Dirt)
		for _, c := range reach {
			if len(dirty) == opts.Dirt {
				break
			}
			if c != w.Start {
				dirty[c] = true
			}
		}
		// row-major, as the parser would produce
		for _, c := range floor {
			if dirty[c] {
				w.Dirty = append(w.Dirty, c)
			}
		}
		return w, nil
	}
	return nil, ErrNoLayout
}

func layWalls(rng *rand.Rand, cols, rows int, ratio float64) *domain.World {
	w := &domain.World{Columns: cols, Rows: rows, Walls: make([][]bool, rows)}
	for r := 0; r < rows; r++ {
		w.Walls[r] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			w.Walls[r][c] = rng.Float64() < ratio
		}
	}
	return w
}

func floorCells(w *domain.World) []domain.Cell {
	var out []domain.Cell
	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Columns; c++ {
			if !w.Walls[r][c] {
				out = append(out, domain.Cell{Row: r, Col: c})
			}
		}
	}
	return out
}

// reachable flood-fills from the start cell.
func reachable(w *domain.World) []domain.Cell {
	seen := map[domain.Cell]bool{w.Start: true}
	stack := []domain.Cell{w.Start}
	var out []domain.Cell
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, c)
		for _, a := range domain.Moves {
			n := c.Step(a)
			if w.IsPassable(n.Row, n.Col) && !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return out
}
