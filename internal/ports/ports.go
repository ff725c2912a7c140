package ports

import (
	"context"
	"time"

	"svw.info/cleanbot/internal/domain"
)

// Stats captures search effort and wall time of a planning run.
type Stats struct {
	Generated int
	Expanded  int
	Duration  time.Duration
}

// Planner searches a world for an action sequence that cleans every dirty cell.
// A search that exhausts its frontier returns found=false and a nil error.
type Planner interface {
	Plan(ctx context.Context, w *domain.World) (actions []domain.Action, found bool, st Stats, err error)
}

// GenerateOptions shapes a randomly generated world.
type GenerateOptions struct {
	Columns   int
	Rows      int
	Dirt      int
	WallRatio float64
}

// Generator creates random worlds from a seed.
type Generator interface {
	Generate(ctx context.Context, seed int64, opts GenerateOptions) (*domain.World, error)
}

// Validator replays an action list against a world. step is the index of the
// first offending action, or len(actions) when the world is left dirty.
type Validator interface {
	Validate(ctx context.Context, w *domain.World, actions []domain.Action) (ok bool, step int, err error)
}

// Storage reads world files and persists plans as JSON.
type Storage interface {
	LoadWorld(ctx context.Context, path string) (*domain.World, error)
	Save(ctx context.Context, p *domain.Plan) error
	Load(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]domain.PlanMeta, error)
}
