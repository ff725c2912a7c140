package usecase

import (
	"context"
	"errors"
	"time"

	"svw.info/cleanbot/internal/domain"
	"svw.info/cleanbot/internal/ports"
)

type Service struct {
	Planners  map[domain.Algorithm]ports.Planner
	Generator ports.Generator
	Validator ports.Validator
	Storage   ports.Storage
}

func NewService(p map[domain.Algorithm]ports.Planner, g ports.Generator, v ports.Validator, st ports.Storage) *Service {
	return &Service{Planners: p, Generator: g, Validator: v, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// Plan runs alg over w. An exhausted search is a Plan with Found=false, not an error.
func (u *Service) Plan(ctx context.Context, alg domain.Algorithm, w *domain.World, name string) (*domain.Plan, ports.Stats, error) {
	p, ok := u.Planners[alg]
	if !ok || p == nil {
		return nil, ports.Stats{}, domain.UnknownAlgorithm(alg.String())
	}
	actions, found, st, err := p.Plan(ctx, w)
	if err != nil {
		return nil, st, err
	}
	return &domain.Plan{
		Algorithm:  alg,
		WorldName:  name,
		Found:      found,
		Actions:    actions,
		Cost:       len(actions),
		Generated:  st.Generated,
		Expanded:   st.Expanded,
		DurationMs: st.Duration.Milliseconds(),
		CreatedAt:  time.Now().UnixNano(),
	}, st, nil
}

func (u *Service) Generate(ctx context.Context, seed int64, opts ports.GenerateOptions) (*domain.World, error) {
	if u.Generator == nil {
		return nil, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, opts)
}

func (u *Service) Validate(ctx context.Context, w *domain.World, actions []domain.Action) (bool, int, error) {
	if u.Validator == nil {
		return false, 0, errNotConfigured
	}
	return u.Validator.Validate(ctx, w, actions)
}

// Persistence
func (u *Service) LoadWorld(ctx context.Context, path string) (*domain.World, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.LoadWorld(ctx, path)
}
func (u *Service) Save(ctx context.Context, p *domain.Plan) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, p)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.Plan, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.PlanMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
