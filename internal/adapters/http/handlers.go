package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"svw.info/cleanbot/internal/domain"
	"svw.info/cleanbot/internal/parser"
	"svw.info/cleanbot/internal/ports"
	"svw.info/cleanbot/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
	// Timeout bounds each planning request; zero means no bound.
	Timeout time.Duration
}

func New(uc *usecase.Service, timeout time.Duration) *Handler {
	return &Handler{UC: uc, Timeout: timeout}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/plan", h.handlePlan)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(v)
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != method {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func parseWorld(s string) (*domain.World, error) {
	return parser.Parse(strings.NewReader(s))
}

// ---- Plan ----

type planReq struct {
	Algorithm string `json:"algorithm"`
	World     string `json:"world"`
	Name      string `json:"name,omitempty"`
	Save      bool   `json:"save,omitempty"`
}

type planResp struct {
	ID         string          `json:"id,omitempty"`
	Found      bool            `json:"found"`
	Actions    []domain.Action `json:"actions,omitempty"`
	Cost       int             `json:"cost"`
	Generated  int             `json:"generated"`
	Expanded   int             `json:"expanded"`
	DurationMs int64           `json:"durationMs"`
	Error      string          `json:"error,omitempty"`
}

func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req planReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, planResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	alg, err := domain.ParseAlgorithm(req.Algorithm)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, planResp{Error: err.Error()})
		return
	}
	world, err := parseWorld(req.World)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, planResp{Error: err.Error()})
		return
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}
	p, st, err := h.UC.Plan(ctx, alg, world, req.Name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		writeJSON(w, status, planResp{Error: err.Error(), Generated: st.Generated, Expanded: st.Expanded, DurationMs: st.Duration.Milliseconds()})
		return
	}
	if req.Save {
		if err := h.UC.Save(r.Context(), p); err != nil {
			writeJSON(w, http.StatusInternalServerError, planResp{Error: err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, planResp{
		ID:         p.ID,
		Found:      p.Found,
		Actions:    p.Actions,
		Cost:       p.Cost,
		Generated:  p.Generated,
		Expanded:   p.Expanded,
		DurationMs: p.DurationMs,
	})
}

// ---- Validate ----

type validateReq struct {
	World   string `json:"world"`
	Actions string `json:"actions"`
}
type validateResp struct {
	OK    bool   `json:"ok"`
	Step  int    `json:"step"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, validateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	world, err := parseWorld(req.World)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, validateResp{Error: err.Error()})
		return
	}
	actions, err := domain.ParseActions(req.Actions)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, validateResp{Error: err.Error()})
		return
	}
	ok, step, err := h.UC.Validate(r.Context(), world, actions)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, validateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, validateResp{OK: ok, Step: step})
}

// ---- Generate ----

type generateReq struct {
	Columns int     `json:"columns"`
	Rows    int     `json:"rows"`
	Dirt    int     `json:"dirt"`
	Walls   float64 `json:"walls,omitempty"`
	Seed    int64   `json:"seed,omitempty"`
}

type generateResp struct {
	World string `json:"world,omitempty"`
	Seed  int64  `json:"seed,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, generateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	world, err := h.UC.Generate(r.Context(), seed, ports.GenerateOptions{
		Columns:   req.Columns,
		Rows:      req.Rows,
		Dirt:      req.Dirt,
		WallRatio: req.Walls,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, generateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, generateResp{World: world.String(), Seed: seed})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var p domain.Plan
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if err := h.UC.Save(r.Context(), &p); err != nil {
		writeJSON(w, http.StatusInternalServerError, saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: p.ID})
}

type loadResp struct {
	Plan  *domain.Plan `json:"plan,omitempty"`
	Error string       `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeJSON(w, http.StatusBadRequest, loadResp{Error: "missing id"})
		return
	}
	p, err := h.UC.Load(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, loadResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Plan: p})
}

type listResp struct {
	Plans []domain.PlanMeta `json:"plans"`
	Error string            `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	ps, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, listResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, listResp{Plans: ps})
}
