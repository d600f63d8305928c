package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/pitchside/internal/adapters/http/api"
	"github.com/okian/pitchside/internal/domain/board"
	"github.com/okian/pitchside/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	Convey("Given a pairing generator", t, func() {
		g := newGenerator(42, false)

		Convey("Then pairings never pit a team against itself", func() {
			for i := 0; i < 100; i++ {
				p := g.next()
				So(p.Home, ShouldNotEqual, p.Away)
			}
		})

		Convey("Then score progressions are absolute and non-decreasing", func() {
			homeScore, awayScore := 0, 0
			for i := 0; i < 50; i++ {
				nextHome, nextAway := g.nextScore(homeScore, awayScore)
				So(nextHome, ShouldBeGreaterThanOrEqualTo, homeScore)
				So(nextAway, ShouldBeGreaterThanOrEqualTo, awayScore)
				So(nextHome+nextAway-homeScore-awayScore, ShouldBeLessThanOrEqualTo, 1)
				homeScore, awayScore = nextHome, nextAway
			}
		})

		Convey("And with unique names enabled", func() {
			ug := newGenerator(42, true)

			Convey("Then the same seed yields distinct suffixed teams", func() {
				first := ug.next()
				second := ug.next()
				So(first.Home, ShouldNotEqual, second.Home)
				So(first.Home, ShouldContainSubstring, "-")
			})
		})
	})
}

// boardDeps adapts a bare board to the API dependency surface so the
// runner can be exercised against a real in-process server.
type boardDeps struct {
	b *board.Board
}

func (d *boardDeps) StartMatch(_ context.Context, home, away string) error {
	return d.b.Start(home, away)
}

func (d *boardDeps) UpdateScore(_ context.Context, home, away string, homeScore, awayScore int) error {
	return d.b.UpdateScore(home, away, homeScore, awayScore)
}

func (d *boardDeps) FinishMatch(_ context.Context, home, away string) error {
	return d.b.Finish(home, away)
}

func (d *boardDeps) Summary(_ context.Context) []string { return d.b.Summary() }

func (d *boardDeps) Subscribe(_ context.Context) (<-chan []string, func()) {
	ch := make(chan []string)
	return ch, func() { close(ch) }
}

func (d *boardDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"activeMatches": d.b.Len()}
}

func TestRunner(t *testing.T) {
	Convey("Given a server and a traffic runner", t, func() {
		So(logger.Init(), ShouldBeNil)
		deps := &boardDeps{b: board.New()}
		mux := http.NewServeMux()
		api.NewServer(deps, deps).Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When a full run finishes its matches", func() {
			r := NewRunner(Options{
				BaseURL:     srv.URL,
				Matches:     4,
				Steps:       3,
				Seed:        7,
				UniqueNames: true,
			}, logger.Get())

			lines, err := r.Run(context.Background())

			Convey("Then the board ends empty", func() {
				So(err, ShouldBeNil)
				So(lines, ShouldBeEmpty)
				So(deps.b.Len(), ShouldEqual, 0)
			})
		})

		Convey("When matches are kept running", func() {
			r := NewRunner(Options{
				BaseURL:     srv.URL,
				Matches:     3,
				Steps:       2,
				Seed:        11,
				KeepRunning: true,
				UniqueNames: true,
			}, logger.Get())

			lines, err := r.Run(context.Background())

			Convey("Then the summary lists every match", func() {
				So(err, ShouldBeNil)
				So(lines, ShouldHaveLength, 3)
				So(deps.b.Len(), ShouldEqual, 3)
				for _, line := range lines {
					So(line, ShouldContainSubstring, " - ")
				}
			})
		})

		Convey("When the server is unreachable", func() {
			r := NewRunner(Options{
				BaseURL: "http://127.0.0.1:1",
				Matches: 1,
				Steps:   1,
				Seed:    3,
			}, logger.Get())

			_, err := r.Run(context.Background())

			Convey("Then the run fails", func() {
				So(err, ShouldNotBeNil)
				So(strings.Contains(err.Error(), "traffic run failed"), ShouldBeTrue)
			})
		})
	})
}
