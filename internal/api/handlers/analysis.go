// Package handlers implements the HTTP handlers for the meta API.
package handlers

import (
	"net/http"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/api/response"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/engine"
)

// AnalysisHandler serves scoring and insight endpoints.
type AnalysisHandler struct {
	engine *engine.Engine
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(e *engine.Engine) *AnalysisHandler {
	return &AnalysisHandler{engine: e}
}

// GetDashboard returns the full dashboard for the latest snapshot.
func (h *AnalysisHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.engine.Dashboard(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, err)
		return
	}
	response.Success(w, dashboard)
}

// GetAnalysis returns the ranked deck analyses.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.engine.Dashboard(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, err)
		return
	}
	response.Success(w, dashboard.Analyses)
}

// GetLineup returns the recommended three-deck lineup.
func (h *AnalysisHandler) GetLineup(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.engine.Dashboard(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, err)
		return
	}
	response.Success(w, dashboard.Lineup)
}

// GetCycles returns detected dominance cycles.
func (h *AnalysisHandler) GetCycles(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.engine.Dashboard(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, err)
		return
	}
	response.Success(w, dashboard.Cycles)
}

// GetDiversity returns the field diversity indices.
func (h *AnalysisHandler) GetDiversity(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.engine.Dashboard(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, err)
		return
	}
	response.Success(w, dashboard.Diversity)
}

// GetGems returns low-share decks with strong expected win rates.
func (h *AnalysisHandler) GetGems(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.engine.Dashboard(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, err)
		return
	}
	response.Success(w, dashboard.Gems)
}

// GetTrends returns the share trend prediction over stored history.
func (h *AnalysisHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.engine.Trends(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, err)
		return
	}
	response.Success(w, trends)
}

// Refresh forces a live fetch and returns the fresh dashboard.
func (h *AnalysisHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.engine.Refresh(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, err)
		return
	}
	response.Success(w, dashboard)
}
