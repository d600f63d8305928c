// Package service hosts the scoreboard behind a single serialized
// call surface and fans successful mutations out to live subscribers.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/okian/pitchside/internal/domain/board"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
)

const defaultLiveBufferSize = 16

// Service implements the API dependencies for the scoreboard system.
// The board itself is single-threaded; the mutex here is the external
// serialization the core requires.
type Service struct {
	mu    sync.Mutex
	board *board.Board

	liveBufferSize int
	subscribers    map[chan []string]struct{}

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLiveBufferSize sets the per-subscriber snapshot buffer size.
func WithLiveBufferSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.liveBufferSize = size
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		board:          board.New(),
		liveBufferSize: defaultLiveBufferSize,
		subscribers:    make(map[chan []string]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start marks the service ready. The board needs no background
// machinery; this exists for lifecycle symmetry with Stop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.started = true
	s.logger.Info(ctx, "scoreboard service started")
	return nil
}

// Stop closes all live subscriber channels.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	for ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, ch)
	}
	metrics.UpdateLiveSubscribers(0)
	s.started = false
	s.logger.Info(context.Background(), "scoreboard service stopped")
}

// StartMatch registers a new match and broadcasts the fresh summary.
func (s *Service) StartMatch(ctx context.Context, home, away string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.board.Start(home, away); err != nil {
		metrics.RecordOperationError("start", errorKind(err))
		return err
	}

	metrics.RecordMatchStarted()
	metrics.UpdateActiveMatches(s.board.Len())
	s.logger.Info(ctx, "match started",
		logger.String("home", home),
		logger.String("away", away),
		logger.Int("active", s.board.Len()),
	)
	s.broadcastLocked()
	return nil
}

// UpdateScore replaces the scores of an active match and broadcasts the
// fresh summary.
func (s *Service) UpdateScore(ctx context.Context, home, away string, homeScore, awayScore int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.board.UpdateScore(home, away, homeScore, awayScore); err != nil {
		metrics.RecordOperationError("update", errorKind(err))
		return err
	}

	metrics.RecordScoreUpdate()
	s.logger.Info(ctx, "score updated",
		logger.String("home", home),
		logger.String("away", away),
		logger.Int("homeScore", homeScore),
		logger.Int("awayScore", awayScore),
	)
	s.broadcastLocked()
	return nil
}

// FinishMatch removes an active match and broadcasts the fresh summary.
func (s *Service) FinishMatch(ctx context.Context, home, away string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.board.Finish(home, away); err != nil {
		metrics.RecordOperationError("finish", errorKind(err))
		return err
	}

	metrics.RecordMatchFinished()
	metrics.UpdateActiveMatches(s.board.Len())
	s.logger.Info(ctx, "match finished",
		logger.String("home", home),
		logger.String("away", away),
		logger.Int("active", s.board.Len()),
	)
	s.broadcastLocked()
	return nil
}

// Summary returns the rendered scoreboard in its current order.
func (s *Service) Summary(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Summary()
}

// Subscribe registers a live summary feed subscriber. The returned
// channel receives a full summary snapshot after every successful
// mutation and is closed by cancel or Stop. Slow subscribers miss
// snapshots rather than stall mutations.
func (s *Service) Subscribe(ctx context.Context) (<-chan []string, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan []string, s.liveBufferSize)
	s.subscribers[ch] = struct{}{}
	metrics.UpdateLiveSubscribers(len(s.subscribers))

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
			metrics.UpdateLiveSubscribers(len(s.subscribers))
		}
	}
	return ch, cancel
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	matchIDs := s.board.MatchIDs()
	ids := make([]string, len(matchIDs))
	for i, id := range matchIDs {
		ids[i] = id.String()
	}

	return map[string]interface{}{
		"started":         s.started,
		"activeMatches":   s.board.Len(),
		"matchIDs":        ids,
		"liveSubscribers": len(s.subscribers),
	}
}

// broadcastLocked fans the current summary out to every subscriber.
// Callers must hold s.mu.
func (s *Service) broadcastLocked() {
	if len(s.subscribers) == 0 {
		return
	}
	snapshot := s.board.Summary()
	for ch := range s.subscribers {
		select {
		case ch <- snapshot:
			metrics.RecordLiveSnapshot()
		default:
			metrics.RecordLiveSnapshotDropped()
		}
	}
}

// errorKind maps board errors to stable metric label values.
func errorKind(err error) string {
	var selfPlay *board.SelfPlayError
	var busy *board.TeamBusyError
	var notFound *board.MatchNotFoundError
	switch {
	case errors.As(err, &selfPlay):
		return "self_play"
	case errors.As(err, &busy):
		return "team_busy"
	case errors.As(err, &notFound):
		return "not_found"
	default:
		return "unknown"
	}
}
