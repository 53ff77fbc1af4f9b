package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/nguyentantai21042004/transcript-genie/internal/logger"
)

// progressEvent is one assembly update pushed to subscribed pages.
type progressEvent struct {
	Stage string `json:"stage"`
	Done  int    `json:"done,omitempty"`
	Total int    `json:"total,omitempty"`
	Error string `json:"error,omitempty"`
}

// hub fans assembly progress out to the websocket subscribers of each job.
type hub struct {
	mu       sync.Mutex
	subs     map[string]map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	logger   logger.Logger
}

func newHub(log logger.Logger) *hub {
	return &hub{
		subs: make(map[string]map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The page and the API share an origin; same-host checks suffice.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

// subscribe upgrades the request and registers the connection for jobID
// until the peer disconnects.
func (h *hub) subscribe(w http.ResponseWriter, r *http.Request, jobID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(r.Context(), "Websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	if h.subs[jobID] == nil {
		h.subs[jobID] = make(map[*websocket.Conn]struct{})
	}
	h.subs[jobID][conn] = struct{}{}
	h.mu.Unlock()

	// Drain the reader so pings and close frames are processed; unregister
	// when the peer goes away.
	go func() {
		defer h.unsubscribe(jobID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *hub) unsubscribe(jobID string, conn *websocket.Conn) {
	h.mu.Lock()
	if conns, ok := h.subs[jobID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.subs, jobID)
		}
	}
	h.mu.Unlock()
	conn.Close()
}

// publish sends the event to every subscriber of the job. Dead connections
// are dropped on write failure.
func (h *hub) publish(jobID string, ev progressEvent) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.subs[jobID]))
	for c := range h.subs[jobID] {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(ev); err != nil {
			h.unsubscribe(jobID, c)
		}
	}
}
