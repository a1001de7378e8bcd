package handlers

import (
	"net/http"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/api/response"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/engine"
)

// SnapshotHandler serves the stored snapshot history.
type SnapshotHandler struct {
	engine *engine.Engine
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(e *engine.Engine) *SnapshotHandler {
	return &SnapshotHandler{engine: e}
}

// GetSnapshots returns all stored snapshots, oldest first.
func (h *SnapshotHandler) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.engine.History(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, err)
		return
	}
	response.Success(w, snapshots)
}
