package search

import "svw.info/cleanbot/internal/domain"

// Space binds a world to the enumeration of its initial dirty cells.
type Space struct {
	world *domain.World
	index map[domain.Cell]int
}

func NewSpace(w *domain.World) *Space {
	idx := make(map[domain.Cell]int, len(w.Dirty))
	for i, c := range w.Dirty {
		idx[c] = i
	}
	return &Space{world: w, index: idx}
}

// Start returns the root state: robot on its start cell, every dirty cell pending.
func (sp *Space) Start() *State {
	n := len(sp.world.Dirty)
	b := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		b[i/8] |= 1 << (i % 8)
	}
	return &State{Robot: sp.world.Start, dirty: string(b), remaining: n}
}

// Successors returns the states one action away from s: passable moves in
// the order N, S, E, W, then V when the robot's cell is still dirty.
// Depth-first search relies on this order.
func (sp *Space) Successors(s *State) []*State {
	out := make([]*State, 0, len(domain.Moves)+1)
	for _, a := range domain.Moves {
		to := s.Robot.Step(a)
		if sp.world.IsPassable(to.Row, to.Col) {
			out = append(out, s.child(to, a))
		}
	}
	if i, ok := sp.index[s.Robot]; ok && s.isDirty(i) {
		out = append(out, s.clean(i))
	}
	return out
}
