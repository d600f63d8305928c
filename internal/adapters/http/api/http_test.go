package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/okian/pitchside/internal/adapters/http/api"
	"github.com/okian/pitchside/internal/domain/board"
	"github.com/okian/pitchside/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps backs the handlers with a bare board and a hand-fed live
// channel, keeping the handler tests independent of the app service.
type mockDeps struct {
	b    *board.Board
	feed chan []string
}

func newMockDeps() *mockDeps {
	return &mockDeps{b: board.New(), feed: make(chan []string, 16)}
}

func (m *mockDeps) StartMatch(_ context.Context, home, away string) error {
	return m.b.Start(home, away)
}

func (m *mockDeps) UpdateScore(_ context.Context, home, away string, homeScore, awayScore int) error {
	return m.b.UpdateScore(home, away, homeScore, awayScore)
}

func (m *mockDeps) FinishMatch(_ context.Context, home, away string) error {
	return m.b.Finish(home, away)
}

func (m *mockDeps) Summary(_ context.Context) []string {
	return m.b.Summary()
}

func (m *mockDeps) Subscribe(_ context.Context) (<-chan []string, func()) {
	return m.feed, func() {}
}

func (m *mockDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"activeMatches": m.b.Len()}
}

func newMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, deps).Register(context.Background(), mux)
	return mux
}

func doJSON(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestMatchesHandler_Start(t *testing.T) {
	Convey("Given the API over an empty board", t, func() {
		deps := newMockDeps()
		mux := newMux(deps)

		Convey("When starting a match", func() {
			rec := doJSON(mux, http.MethodPost, "/matches", `{"home":"Japan","away":"Indonesia"}`)

			Convey("Then it responds 201 and the match is on the board", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
				So(deps.b.Summary(), ShouldResemble, []string{"Japan 0 - Indonesia 0"})
			})
		})

		Convey("When the body is not JSON", func() {
			rec := doJSON(mux, http.MethodPost, "/matches", "not json")

			Convey("Then it responds 400", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a team name is missing", func() {
			rec := doJSON(mux, http.MethodPost, "/matches", `{"home":"Japan","away":"  "}`)

			Convey("Then it responds 400", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a team plays itself", func() {
			rec := doJSON(mux, http.MethodPost, "/matches", `{"home":"Georgia","away":"Georgia"}`)

			Convey("Then it responds 409 with the self_play code", func() {
				So(rec.Code, ShouldEqual, http.StatusConflict)
				var resp map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "self_play")
				So(resp["message"], ShouldEqual, "Georgia cannot play with itself")
			})
		})

		Convey("When a team is already playing", func() {
			So(deps.b.Start("A", "B"), ShouldBeNil)
			rec := doJSON(mux, http.MethodPost, "/matches", `{"home":"A","away":"C"}`)

			Convey("Then it responds 409 with the team_busy code", func() {
				So(rec.Code, ShouldEqual, http.StatusConflict)
				var resp map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "team_busy")
				So(resp["message"], ShouldEqual, "A is currently playing a game")
			})
		})
	})
}

func TestMatchesHandler_UpdateScore(t *testing.T) {
	Convey("Given the API over a board with one match", t, func() {
		deps := newMockDeps()
		So(deps.b.Start("Japan", "Indonesia"), ShouldBeNil)
		mux := newMux(deps)

		Convey("When updating the score", func() {
			rec := doJSON(mux, http.MethodPut, "/matches",
				`{"home":"Japan","away":"Indonesia","home_score":2,"away_score":0}`)

			Convey("Then it responds 200 and the summary reflects it", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.b.Summary(), ShouldResemble, []string{"Japan 2 - Indonesia 0"})
			})
		})

		Convey("When the score is negative", func() {
			rec := doJSON(mux, http.MethodPut, "/matches",
				`{"home":"Japan","away":"Indonesia","home_score":-1,"away_score":0}`)

			Convey("Then it responds 400 and the board is unchanged", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(deps.b.Summary(), ShouldResemble, []string{"Japan 0 - Indonesia 0"})
			})
		})

		Convey("When the pair has roles swapped", func() {
			rec := doJSON(mux, http.MethodPut, "/matches",
				`{"home":"Indonesia","away":"Japan","home_score":0,"away_score":2}`)

			Convey("Then it responds 404 with the not_found code", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				var resp map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "not_found")
				So(resp["message"], ShouldEqual, "Couldn't find a game for update")
			})
		})
	})
}

func TestMatchesHandler_Finish(t *testing.T) {
	Convey("Given the API over a board with one match", t, func() {
		deps := newMockDeps()
		So(deps.b.Start("Japan", "Indonesia"), ShouldBeNil)
		mux := newMux(deps)

		Convey("When finishing the match", func() {
			rec := doJSON(mux, http.MethodDelete, "/matches?home=Japan&away=Indonesia", "")

			Convey("Then it responds 200 and the board empties", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.b.Len(), ShouldEqual, 0)
			})
		})

		Convey("When query parameters are missing", func() {
			rec := doJSON(mux, http.MethodDelete, "/matches?home=Japan", "")

			Convey("Then it responds 400", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the pair is unknown", func() {
			rec := doJSON(mux, http.MethodDelete, "/matches?home=Chile&away=Peru", "")

			Convey("Then it responds 404", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				var resp map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["message"], ShouldEqual, "Couldn't find a game for removal")
			})
		})

		Convey("When the method is unsupported", func() {
			rec := doJSON(mux, http.MethodPatch, "/matches", "")

			Convey("Then it responds 404", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSummaryHandler(t *testing.T) {
	Convey("Given the API over an empty board", t, func() {
		deps := newMockDeps()
		mux := newMux(deps)

		Convey("When fetching the summary", func() {
			rec := doJSON(mux, http.MethodGet, "/summary", "")

			Convey("Then it responds with an empty array", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(rec.Body.String()), ShouldEqual, "[]")
			})
		})

		Convey("When matches are running", func() {
			So(deps.b.Start("Mexico", "Canada"), ShouldBeNil)
			So(deps.b.Start("Spain", "Brazil"), ShouldBeNil)
			So(deps.b.UpdateScore("Spain", "Brazil", 10, 2), ShouldBeNil)
			rec := doJSON(mux, http.MethodGet, "/summary", "")

			Convey("Then lines arrive in board order", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var lines []string
				So(json.Unmarshal(rec.Body.Bytes(), &lines), ShouldBeNil)
				So(lines, ShouldResemble, []string{
					"Spain 10 - Brazil 2",
					"Mexico 0 - Canada 0",
				})
			})
		})

		Convey("When using a non-GET method", func() {
			rec := doJSON(mux, http.MethodPost, "/summary", "")

			Convey("Then it responds 404", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestStatsHandler(t *testing.T) {
	Convey("Given the API over a board with one match", t, func() {
		deps := newMockDeps()
		So(deps.b.Start("Ghana", "Senegal"), ShouldBeNil)
		mux := newMux(deps)

		Convey("When fetching stats", func() {
			rec := doJSON(mux, http.MethodGet, "/stats", "")

			Convey("Then it responds with the provider's view", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var stats map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["activeMatches"], ShouldEqual, 1)
			})
		})
	})
}

func TestLiveHandler(t *testing.T) {
	Convey("Given a live feed endpoint", t, func() {
		So(logger.Init(), ShouldBeNil)
		deps := newMockDeps()
		So(deps.b.Start("Uruguay", "Italy"), ShouldBeNil)
		srv := httptest.NewServer(newMux(deps))
		defer srv.Close()

		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
		conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
		So(err, ShouldBeNil)
		if resp != nil {
			defer func() { _ = resp.Body.Close() }()
		}
		defer func() { _ = conn.Close() }()
		So(conn.SetReadDeadline(time.Now().Add(5*time.Second)), ShouldBeNil)

		Convey("When the client connects", func() {
			var msg struct {
				Summary []string `json:"summary"`
			}

			Convey("Then the first frame is the current summary", func() {
				So(conn.ReadJSON(&msg), ShouldBeNil)
				So(msg.Summary, ShouldResemble, []string{"Uruguay 0 - Italy 0"})
			})

			Convey("And subsequent frames follow board mutations", func() {
				So(conn.ReadJSON(&msg), ShouldBeNil)

				So(deps.b.UpdateScore("Uruguay", "Italy", 6, 6), ShouldBeNil)
				deps.feed <- deps.b.Summary()

				So(conn.ReadJSON(&msg), ShouldBeNil)
				So(msg.Summary, ShouldResemble, []string{"Uruguay 6 - Italy 6"})
			})
		})
	})
}
