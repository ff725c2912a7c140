package search

import (
	"context"
	"time"

	"svw.info/cleanbot/internal/domain"
	"svw.info/cleanbot/internal/ports"
)

// UniformCost always expands the cheapest pending state, so the first goal
// popped is a minimum-cost plan.
type UniformCost struct{}

func NewUniformCost() *UniformCost { return &UniformCost{} }

func (p *UniformCost) Plan(ctx context.Context, w *domain.World) ([]domain.Action, bool, ports.Stats, error) {
	start := time.Now()
	sp := NewSpace(w)
	var st ports.Stats

	var open frontier
	open.push(sp.Start())
	settled := make(map[Key]int)
	for open.Len() > 0 {
		if st.Expanded%checkEvery == 0 && ctx.Err() != nil {
			st.Duration = time.Since(start)
			return nil, false, st, ctx.Err()
		}
		s := open.pop()
		st.Expanded++

		if s.Goal() {
			st.Duration = time.Since(start)
			return s.Path(), true, st, nil
		}
		k := s.Key()
		if c, ok := settled[k]; ok && c <= s.Cost {
			continue
		}
		settled[k] = s.Cost

		succ := sp.Successors(s)
		st.Generated += len(succ)
		for _, n := range succ {
			open.push(n)
		}
	}
	st.Duration = time.Since(start)
	return nil, false, st, nil
}
