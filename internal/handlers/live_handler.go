package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"weighbridge-backend/internal/metrics"
	"weighbridge-backend/internal/realtime"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = 50 * time.Second
	liveQueue      = 16
)

// liveCommand is what a client sends on the socket
type liveCommand struct {
	Type   string `json:"type"`
	Entity string `json:"entity"`
}

type LiveHandler struct {
	Hub      *realtime.Hub
	Loader   realtime.SnapshotLoader
	upgrader websocket.Upgrader
}

func NewLiveHandler(hub *realtime.Hub, loader realtime.SnapshotLoader, allowedOrigins []string) *LiveHandler {
	return &LiveHandler{
		Hub:    hub,
		Loader: loader,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// Serve streams entity and ticket snapshots until the client goes away.
// Clients switch entity with {"type":"select","entity":"..."}.
func (h *LiveHandler) Serve(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Realtime] WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	metrics.LiveSessions.Inc()
	defer metrics.LiveSessions.Dec()

	out := make(chan realtime.Message, liveQueue)
	done := make(chan struct{})
	send := func(m realtime.Message) {
		select {
		case out <- m:
		case <-done:
		}
	}

	session := realtime.NewSession(h.Hub, h.Loader, userID, send)
	writerDone := make(chan struct{})
	go h.writeLoop(conn, out, done, writerDone)
	session.Start()

	conn.SetReadDeadline(time.Now().Add(livePongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})
	for {
		var cmd liveCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			break
		}
		if cmd.Type == "select" {
			session.Select(cmd.Entity)
		}
	}

	close(done)
	session.Close()
	<-writerDone
}

func (h *LiveHandler) writeLoop(conn *websocket.Conn, out <-chan realtime.Message, done <-chan struct{}, finished chan<- struct{}) {
	defer close(finished)
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case m := <-out:
			conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteJSON(m); err != nil {
				conn.Close()
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		}
	}
}
