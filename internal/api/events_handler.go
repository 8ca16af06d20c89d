package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/questcycle/backend/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is open for the REST API; the event stream follows suit.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamEvents pushes session status events over a WebSocket.
// @Summary      Status event stream
// @Description  WebSocket. Each message is a JSON service.Event. The first one carries the current status; later ones are loading, ready, no_results, cycle_completed, graded, error or warning.
// @Tags         Session
// @Success      101
// @Router       /events [get]
func (h *Handler) streamEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := h.sessions.Subscribe()
	defer unsubscribe()

	snapshot := service.StatusEvent(h.sessions.Current())
	snapshot.At = time.Now().UTC()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(snapshot); err != nil {
		return
	}

	// The read loop only handles control frames and notices disconnects.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case e, ok := <-events:
			if !ok {
				conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				h.logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
