package validator

import (
	"context"

	"svw.info/cleanbot/internal/domain"
)

// Replayer checks a plan by executing it against a world.
type Replayer struct{}

func New() *Replayer { return &Replayer{} }

// Validate fails at the first move into a wall or off the grid, the first
// vacuum on a clean cell, or the first unknown action. A legal plan that
// leaves dirt behind fails at step len(actions).
func (v *Replayer) Validate(ctx context.Context, w *domain.World, actions []domain.Action) (bool, int, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}
	dirty := make(map[domain.Cell]bool, len(w.Dirty))
	for _, c := range w.Dirty {
		dirty[c] = true
	}
	robot := w.Start
	for i, a := range actions {
		switch {
		case a == domain.Vacuum:
			if !dirty[robot] {
				return false, i, nil
			}
			delete(dirty, robot)
		case a.Valid():
			next := robot.Step(a)
			if !w.IsPassable(next.Row, next.Col) {
				return false, i, nil
			}
			robot = next
		default:
			return false, i, nil
		}
	}
	return len(dirty) == 0, len(actions), nil
}
