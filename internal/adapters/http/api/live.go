// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/okian/pitchside/pkg/logger"
)

// LiveDependencies defines the interface for the live summary feed.
type LiveDependencies interface {
	Summary(ctx context.Context) []string
	Subscribe(ctx context.Context) (<-chan []string, func())
}

// LiveHandler streams summary snapshots over a websocket.
type LiveHandler struct {
	deps     LiveDependencies
	upgrader websocket.Upgrader
}

// NewLiveHandler creates a new live feed handler.
func NewLiveHandler(deps LiveDependencies) *LiveHandler {
	return &LiveHandler{
		deps: deps,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// liveMessage is one websocket frame: a full summary snapshot.
type liveMessage struct {
	Summary []string `json:"summary"`
}

// HandleLive handles GET /live websocket requests. Each successful
// board mutation produces one frame carrying the full summary; the
// first frame is the summary at connect time.
func (h *LiveHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		logger.Get().Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	feed, cancel := h.deps.Subscribe(r.Context())
	defer cancel()

	// Drain the client's read side so close frames are processed and a
	// gone client unblocks the write loop below.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	snapshot := h.deps.Summary(r.Context())
	if snapshot == nil {
		snapshot = []string{}
	}
	if err := conn.WriteJSON(liveMessage{Summary: snapshot}); err != nil {
		return
	}

	for {
		select {
		case snap, ok := <-feed:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(liveMessage{Summary: snap}); err != nil {
				return
			}
		case <-clientGone:
			return
		case <-r.Context().Done():
			return
		}
	}
}
