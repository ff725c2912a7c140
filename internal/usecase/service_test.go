package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/cleanbot/internal/domain"
	"svw.info/cleanbot/internal/parser"
	"svw.info/cleanbot/internal/ports"
	"svw.info/cleanbot/internal/search"
)

func TestServicePlan(t *testing.T) {
	uc := NewService(map[domain.Algorithm]ports.Planner{
		domain.UniformCost: search.NewUniformCost(),
	}, nil, nil, nil)
	w, err := parser.Parse(strings.NewReader("3\n1\n@.*\n"))
	require.NoError(t, err)

	p, st, err := uc.Plan(context.Background(), domain.UniformCost, w, "corridor")
	require.NoError(t, err)
	assert.True(t, p.Found)
	assert.Equal(t, "EEV", p.Path())
	assert.Equal(t, 3, p.Cost)
	assert.Equal(t, st.Generated, p.Generated)
	assert.Equal(t, st.Expanded, p.Expanded)
	assert.Equal(t, "corridor", p.WorldName)
	assert.NotZero(t, p.CreatedAt)

	_, _, err = uc.Plan(context.Background(), domain.DepthFirst, w, "corridor")
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
}

func TestServiceNotConfigured(t *testing.T) {
	uc := NewService(nil, nil, nil, nil)
	ctx := context.Background()

	_, err := uc.Generate(ctx, 1, ports.GenerateOptions{Columns: 2, Rows: 2})
	assert.ErrorIs(t, err, errNotConfigured)
	_, _, err = uc.Validate(ctx, &domain.World{}, nil)
	assert.ErrorIs(t, err, errNotConfigured)
	_, err = uc.LoadWorld(ctx, "w.txt")
	assert.ErrorIs(t, err, errNotConfigured)
	assert.ErrorIs(t, uc.Save(ctx, &domain.Plan{}), errNotConfigured)
	_, err = uc.Load(ctx, "x")
	assert.ErrorIs(t, err, errNotConfigured)
	_, err = uc.List(ctx)
	assert.ErrorIs(t, err, errNotConfigured)
}
