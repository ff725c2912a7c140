package httpadapter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/cleanbot/internal/domain"
	"svw.info/cleanbot/internal/generator"
	"svw.info/cleanbot/internal/infrastructure/storage"
	"svw.info/cleanbot/internal/ports"
	"svw.info/cleanbot/internal/search"
	"svw.info/cleanbot/internal/usecase"
	"svw.info/cleanbot/internal/validator"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	uc := usecase.NewService(map[domain.Algorithm]ports.Planner{
		domain.DepthFirst:  search.NewDepthFirst(),
		domain.UniformCost: search.NewUniformCost(),
	}, generator.NewRandom(), validator.New(), storage.NewFS(t.TempDir()))
	mux := http.NewServeMux()
	New(uc, 0).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body any, out any) int {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(string(b)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func get(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestPlanEndpoint(t *testing.T) {
	srv := newServer(t)

	var got planResp
	code := post(t, srv, "/api/plan", planReq{Algorithm: "uniform-cost", World: "3\n1\n@.*\n", Save: true}, &got)
	require.Equal(t, http.StatusOK, code, got.Error)
	assert.True(t, got.Found)
	assert.Equal(t, []domain.Action{domain.East, domain.East, domain.Vacuum}, got.Actions)
	assert.Equal(t, 3, got.Cost)
	assert.Equal(t, 5, got.Generated)
	assert.Equal(t, 6, got.Expanded)
	require.NotEmpty(t, got.ID)

	var loaded loadResp
	code = get(t, srv, "/api/load?id="+got.ID, &loaded)
	require.Equal(t, http.StatusOK, code, loaded.Error)
	assert.Equal(t, "EEV", loaded.Plan.Path())

	resp, err := http.Get(srv.URL + "/api/list")
	require.NoError(t, err)
	defer resp.Body.Close()
	var list listResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Plans, 1)
	assert.Equal(t, got.ID, list.Plans[0].ID)
}

func TestPlanEndpointErrors(t *testing.T) {
	srv := newServer(t)

	cases := []struct {
		name string
		req  planReq
	}{
		{"unknown algorithm", planReq{Algorithm: "breadth-first", World: "1\n1\n@\n"}},
		{"bad world", planReq{Algorithm: "depth-first", World: "3\n2\n@.*\n"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got planResp
			code := post(t, srv, "/api/plan", tc.req, &got)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, got.Error)
		})
	}
}

func TestPlanEndpointExhausted(t *testing.T) {
	srv := newServer(t)
	var got planResp
	code := post(t, srv, "/api/plan", planReq{Algorithm: "depth-first", World: "3\n1\n@#*\n"}, &got)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, got.Found)
	assert.Empty(t, got.Actions)
	assert.Equal(t, 1, got.Expanded)
	assert.Equal(t, 0, got.Generated)
}

func TestValidateEndpoint(t *testing.T) {
	srv := newServer(t)

	var got validateResp
	code := post(t, srv, "/api/validate", validateReq{World: "3\n1\n@.*\n", Actions: "EEV"}, &got)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, got.OK)

	code = post(t, srv, "/api/validate", validateReq{World: "3\n1\n@.*\n", Actions: "WEV"}, &got)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, got.OK)
	assert.Equal(t, 0, got.Step)

	code = post(t, srv, "/api/validate", validateReq{World: "3\n1\n@.*\n", Actions: "EQ"}, &got)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGenerateEndpoint(t *testing.T) {
	srv := newServer(t)

	var got generateResp
	code := post(t, srv, "/api/generate", generateReq{Columns: 5, Rows: 4, Dirt: 3, Walls: 0.2, Seed: 7}, &got)
	require.Equal(t, http.StatusOK, code, got.Error)
	assert.Equal(t, int64(7), got.Seed)

	w, err := parseWorld(got.World)
	require.NoError(t, err)
	assert.Len(t, w.Dirty, 3)

	code = post(t, srv, "/api/generate", generateReq{Columns: 0, Rows: 4}, &got)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/api/plan")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestLoadEndpoint(t *testing.T) {
	srv := newServer(t)

	var got loadResp
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/load", &got))
	assert.Equal(t, "missing id", got.Error)

	got = loadResp{}
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/api/load?id=6f1c1f0e-8a3a-4c53-9b0e-3f3c2b1a0d9e", &got))
	assert.Nil(t, got.Plan)

	resp, err := http.Post(srv.URL+"/api/load", "application/json", strings.NewReader(`{"id":"x"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
