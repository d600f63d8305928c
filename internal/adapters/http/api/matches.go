// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// MatchDependencies defines the interface for match lifecycle operations.
type MatchDependencies interface {
	StartMatch(ctx context.Context, home, away string) error
	UpdateScore(ctx context.Context, home, away string, homeScore, awayScore int) error
	FinishMatch(ctx context.Context, home, away string) error
}

// MatchesHandler handles match lifecycle requests.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleMatches dispatches /matches by method: POST starts a match,
// PUT replaces a match's scores, DELETE finishes a match.
func (h *MatchesHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleStart(w, r)
	case http.MethodPut:
		h.handleUpdateScore(w, r)
	case http.MethodDelete:
		h.handleFinish(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleStart handles POST /matches requests.
func (h *MatchesHandler) handleStart(w http.ResponseWriter, r *http.Request) {
	const op = "api.start_match"
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.StartMatch(r.Context(), req.Home, req.Away); err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{Status: "started"})
}

// handleUpdateScore handles PUT /matches requests.
func (h *MatchesHandler) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_score"
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.UpdateScore(r.Context(), req.Home, req.Away, req.HomeScore, req.AwayScore); err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "updated"})
}

// handleFinish handles DELETE /matches?home=X&away=Y requests. The pair
// rides in query parameters because DELETE bodies are routinely dropped
// by proxies.
func (h *MatchesHandler) handleFinish(w http.ResponseWriter, r *http.Request) {
	const op = "api.finish_match"
	req := matchRequest{
		Home: strings.TrimSpace(r.URL.Query().Get("home")),
		Away: strings.TrimSpace(r.URL.Query().Get("away")),
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.FinishMatch(r.Context(), req.Home, req.Away); err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "finished"})
}
