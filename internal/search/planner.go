package search

import (
	"svw.info/cleanbot/internal/domain"
	"svw.info/cleanbot/internal/ports"
)

// All returns one planner per supported algorithm.
func All() map[domain.Algorithm]ports.Planner {
	return map[domain.Algorithm]ports.Planner{
		domain.DepthFirst:  NewDepthFirst(),
		domain.UniformCost: NewUniformCost(),
	}
}
