package feed

import (
	"context"
	"fmt"
	"net/http"

	"github.com/automoto/inputassign/logger"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

// Server exposes the hub over HTTP at /ws
type Server struct {
	hub        *Hub
	addr       string
	httpServer *http.Server
}

// NewServer builds the HTTP server up front so Shutdown may run on another
// goroutine, before or after ListenAndServe starts.
func NewServer(h *Hub, addr string) *Server {
	s := &Server{
		hub:  h,
		addr: addr,
	}
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler returns the HTTP handler serving the websocket endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handleWebSocket(s.hub))
	mux.HandleFunc("/health", health(s.hub))
	return mux
}

// ListenAndServe blocks until the server fails or is shut down. After
// Shutdown it returns http.ErrServerClosed.
func (s *Server) ListenAndServe() error {
	logger.Log.WithField("addr", s.addr).Info("Event feed listening")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info("Shutting down event feed")
	return s.httpServer.Shutdown(ctx)
}

func handleWebSocket(h *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Log.WithError(err).Warn("WebSocket upgrade failed")
			return
		}

		client := NewClient(h, conn)
		h.Register(client)

		go client.WritePump()
		go client.ReadPump()
	}
}

func health(h *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"status":"ok","clients":%d}`, h.ClientCount())
	}
}
