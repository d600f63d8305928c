package feed

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/pitchside/pkg/logger"
)

// Options configures a traffic run.
type Options struct {
	// BaseURL of the target server, e.g. "http://localhost:8090".
	BaseURL string
	// Matches is the number of matches to play.
	Matches int
	// Steps is the number of score updates per match.
	Steps int
	// Interval is the pause between score updates of one match.
	Interval time.Duration
	// Timeout bounds each HTTP request.
	Timeout time.Duration
	// Seed makes the generated traffic reproducible.
	Seed int64
	// KeepRunning leaves matches on the board instead of finishing them,
	// useful for watching /live while the run is in flight.
	KeepRunning bool
	// UniqueNames suffixes team names so repeated runs never collide.
	UniqueNames bool
}

// Runner plays generated matches against a server.
type Runner struct {
	opts   Options
	client *Client
	gen    *generator
	log    logger.Logger
}

// NewRunner creates a runner for the given options.
func NewRunner(opts Options, log logger.Logger) *Runner {
	return &Runner{
		opts:   opts,
		client: NewClient(opts.BaseURL, opts.Timeout),
		gen:    newGenerator(opts.Seed, opts.UniqueNames),
		log:    log,
	}
}

// Run plays opts.Matches matches concurrently, then fetches and logs
// the final summary. It returns the summary lines for the caller to
// render.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	pairings := make([]pairing, r.opts.Matches)
	for i := range pairings {
		pairings[i] = r.gen.next()
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range pairings {
		p := p
		// Each match gets its own generator; math/rand sources are not
		// safe for concurrent use.
		scores := newGenerator(r.opts.Seed+int64(i)+1, false)
		g.Go(func() error {
			return r.playMatch(gctx, p, scores)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("traffic run failed: %w", err)
	}

	lines, err := r.client.FetchSummary(ctx)
	if err != nil {
		return nil, err
	}
	r.log.Info(ctx, "traffic run complete",
		logger.Int("matches", r.opts.Matches),
		logger.Int("remaining", len(lines)),
	)
	return lines, nil
}

// playMatch runs one match from start to finish: start, a series of
// absolute score updates, and (unless KeepRunning) removal.
func (r *Runner) playMatch(ctx context.Context, p pairing, scores *generator) error {
	if err := r.client.StartMatch(ctx, p.Home, p.Away); err != nil {
		return err
	}
	r.log.Debug(ctx, "match started", logger.String("home", p.Home), logger.String("away", p.Away))

	homeScore, awayScore := 0, 0
	for step := 0; step < r.opts.Steps; step++ {
		if err := sleepCtx(ctx, r.opts.Interval); err != nil {
			return err
		}
		homeScore, awayScore = scores.nextScore(homeScore, awayScore)
		if err := r.client.UpdateScore(ctx, p.Home, p.Away, homeScore, awayScore); err != nil {
			return err
		}
	}

	if r.opts.KeepRunning {
		return nil
	}
	if err := r.client.FinishMatch(ctx, p.Home, p.Away); err != nil {
		return err
	}
	r.log.Debug(ctx, "match finished",
		logger.String("home", p.Home),
		logger.String("away", p.Away),
		logger.Int("homeScore", homeScore),
		logger.Int("awayScore", awayScore),
	)
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
