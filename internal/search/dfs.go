package search

import (
	"context"
	"time"

	"svw.info/cleanbot/internal/domain"
	"svw.info/cleanbot/internal/ports"
)

// checkEvery is how many expansions pass between context checks.
const checkEvery = 256

// DepthFirst explores with an explicit stack. It returns the first goal in
// N, S, E, W, V order, which need not be the cheapest.
type DepthFirst struct{}

func NewDepthFirst() *DepthFirst { return &DepthFirst{} }

func (p *DepthFirst) Plan(ctx context.Context, w *domain.World) ([]domain.Action, bool, ports.Stats, error) {
	start := time.Now()
	sp := NewSpace(w)
	var st ports.Stats

	stack := []*State{sp.Start()}
	visited := make(map[Key]struct{})
	for len(stack) > 0 {
		if st.Expanded%checkEvery == 0 && ctx.Err() != nil {
			st.Duration = time.Since(start)
			return nil, false, st, ctx.Err()
		}
		s := stack[len(stack)-1]
		stack[len(stack)-1] = nil
		stack = stack[:len(stack)-1]
		st.Expanded++

		// goal before visited: a re-pushed duplicate that is a goal still wins
		if s.Goal() {
			st.Duration = time.Since(start)
			return s.Path(), true, st, nil
		}
		k := s.Key()
		if _, seen := visited[k]; seen {
			continue
		}
		visited[k] = struct{}{}

		succ := sp.Successors(s)
		st.Generated += len(succ)
		for i := len(succ) - 1; i >= 0; i-- {
			stack = append(stack, succ[i])
		}
	}
	st.Duration = time.Since(start)
	return nil, false, st, nil
}
