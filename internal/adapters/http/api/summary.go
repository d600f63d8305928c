// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// SummaryDependencies defines the interface for summary reads.
type SummaryDependencies interface {
	Summary(ctx context.Context) []string
}

// SummaryHandler handles summary requests.
type SummaryHandler struct {
	deps SummaryDependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /summary requests. Lines arrive already
// ordered; an empty board yields an empty array, not null.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	lines := h.deps.Summary(r.Context())
	if lines == nil {
		lines = []string{}
	}
	writeJSON(w, http.StatusOK, lines)
}
