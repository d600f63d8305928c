// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/pitchside/internal/domain/board"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Board operations, serialized by the implementation.
	StartMatch(ctx context.Context, home, away string) error
	UpdateScore(ctx context.Context, home, away string, homeScore, awayScore int) error
	FinishMatch(ctx context.Context, home, away string) error
	Summary(ctx context.Context) []string

	// Subscribe registers a live summary feed subscriber.
	Subscribe(ctx context.Context) (<-chan []string, func())
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	matchesHandler *MatchesHandler
	summaryHandler *SummaryHandler
	liveHandler    *LiveHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		matchesHandler: NewMatchesHandler(deps),
		summaryHandler: NewSummaryHandler(deps),
		liveHandler:    NewLiveHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandleMatches, "matches"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/live", s.liveHandler.HandleLive)
}

// matchRequest mirrors the request schema for POST /matches.
type matchRequest struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

func (m matchRequest) validate() error {
	switch {
	case strings.TrimSpace(m.Home) == "":
		return errors.New("missing home")
	case strings.TrimSpace(m.Away) == "":
		return errors.New("missing away")
	}
	return nil
}

// scoreRequest mirrors the request schema for PUT /matches. Scores are
// absolute values, not deltas.
type scoreRequest struct {
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

func (s scoreRequest) validate() error {
	if err := (matchRequest{Home: s.Home, Away: s.Away}).validate(); err != nil {
		return err
	}
	if s.HomeScore < 0 || s.AwayScore < 0 {
		return errors.New("scores must be non-negative")
	}
	return nil
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeBoardError translates errors from the board into HTTP responses:
// rejected starts are conflicts, missed lookups are not found.
func writeBoardError(w http.ResponseWriter, err error) {
	var selfPlay *board.SelfPlayError
	var busy *board.TeamBusyError
	var notFound *board.MatchNotFoundError
	switch {
	case errors.As(err, &selfPlay):
		writeError(w, http.StatusConflict, "self_play", err)
	case errors.As(err, &busy):
		writeError(w, http.StatusConflict, "team_busy", err)
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
