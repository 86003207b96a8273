package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Linda-Mensah/hire-link/internal/store"
)

const (
	// pipelineEvent names both the SSE event and the websocket message type.
	pipelineEvent = "pipeline"

	keepAliveInterval = 25 * time.Second
	socketWriteWait   = 10 * time.Second
	socketPongWait    = 60 * time.Second
)

// socketMessage is the websocket frame payload.
type socketMessage struct {
	Type string       `json:"type"`
	Data PipelineView `json:"data"`
}

// handlePipeline returns the board grouped by stage
func (s *Server) handlePipeline(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, newPipelineView(s.apps.Snapshot()))
}

// watch subscribes to store changes. The channel holds at most one pending snapshot;
// a slow reader sees the newest one and skips the ones in between.
func (s *Server) watch() (<-chan store.Snapshot, func()) {
	ch := make(chan store.Snapshot, 1)
	unsubscribe := s.apps.Subscribe(newestOnly(ch))
	return ch, unsubscribe
}

// newestOnly returns a subscriber that keeps the highest-versioned snapshot pending in ch.
// Concurrent mutations may publish out of order, so a snapshot no newer than one
// already enqueued is dropped.
func newestOnly(ch chan store.Snapshot) func(store.Snapshot) {
	var (
		mu     sync.Mutex
		newest uint64
	)
	return func(snap store.Snapshot) {
		mu.Lock()
		defer mu.Unlock()

		if snap.Version <= newest {
			return
		}
		newest = snap.Version

		for {
			select {
			case ch <- snap:
				return
			default:
			}
			// Drop the stale pending snapshot and retry.
			select {
			case <-ch:
			default:
			}
		}
	}
}

// handleEvents streams the board as Server-Sent Events: the current board first,
// then a new board after every change.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	updates, unsubscribe := s.watch()
	defer unsubscribe()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	current := s.apps.Snapshot()
	if err := sse.WriteEvent(current.Version, pipelineEvent, newPipelineView(current)); err != nil {
		return
	}
	last := current.Version

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-updates:
			if snap.Version <= last {
				continue
			}
			last = snap.Version
			if err := sse.WriteEvent(snap.Version, pipelineEvent, newPipelineView(snap)); err != nil {
				log.Printf("[server] SSE client dropped: %v", err)
				return
			}
		case <-ticker.C:
			if err := sse.WritePing(); err != nil {
				return
			}
		}
	}
}

// handlePipelineSocket is handleEvents over a websocket.
func (s *Server) handlePipelineSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		log.Printf("[server] Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := s.watch()
	defer unsubscribe()

	// The client never sends data; reading drives pong and close handling.
	// Each pong pushes the read deadline out, replacing the server's ReadTimeout.
	_ = conn.SetReadDeadline(time.Now().Add(socketPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(socketPongWait))
	})
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func(snap store.Snapshot) error {
		_ = conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
		return conn.WriteJSON(socketMessage{Type: pipelineEvent, Data: newPipelineView(snap)})
	}

	current := s.apps.Snapshot()
	if err := send(current); err != nil {
		return
	}
	last := current.Version

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case snap := <-updates:
			if snap.Version <= last {
				continue
			}
			last = snap.Version
			if err := send(snap); err != nil {
				log.Printf("[server] Websocket client dropped: %v", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(socketWriteWait)); err != nil {
				return
			}
		}
	}
}
