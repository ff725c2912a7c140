package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm("depth-first")
	require.NoError(t, err)
	assert.Equal(t, DepthFirst, a)

	a, err = ParseAlgorithm("uniform-cost")
	require.NoError(t, err)
	assert.Equal(t, UniformCost, a)

	for _, bad := range []string{"", "dfs", "Depth-First", "uniform-cost "} {
		_, err := ParseAlgorithm(bad)
		var ue *UsageError
		assert.True(t, errors.As(err, &ue), "%q", bad)
		assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	}
}

func TestPlanJSON(t *testing.T) {
	p := Plan{Algorithm: UniformCost, Found: true, Actions: []Action{North, Vacuum}, Cost: 2}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"algorithm":"uniform-cost"`)
	assert.Contains(t, string(data), `"actions":["N","V"]`)

	var back Plan
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p, back)

	assert.Error(t, json.Unmarshal([]byte(`{"actions":["Q"]}`), &back))
	assert.Error(t, json.Unmarshal([]byte(`{"algorithm":"a-star"}`), &back))
}

func TestParseActions(t *testing.T) {
	acts, err := ParseActions("NSEWV")
	require.NoError(t, err)
	assert.Equal(t, []Action{North, South, East, West, Vacuum}, acts)
	p := Plan{Actions: acts}
	assert.Equal(t, "NSEWV", p.Path())

	_, err = ParseActions("NX")
	assert.Error(t, err)
}

func TestCellStep(t *testing.T) {
	c := Cell{Row: 2, Col: 2}
	assert.Equal(t, Cell{Row: 1, Col: 2}, c.Step(North))
	assert.Equal(t, Cell{Row: 3, Col: 2}, c.Step(South))
	assert.Equal(t, Cell{Row: 2, Col: 3}, c.Step(East))
	assert.Equal(t, Cell{Row: 2, Col: 1}, c.Step(West))
	assert.Equal(t, c, c.Step(Vacuum))
}

func TestFormatErrorMessage(t *testing.T) {
	cause := errors.New("boom")
	err := error(&FormatError{Line: 3, Msg: "bad row", Err: cause})
	assert.Equal(t, "world format: line 3: bad row", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "world format: no robot", (&FormatError{Msg: "no robot"}).Error())
}
