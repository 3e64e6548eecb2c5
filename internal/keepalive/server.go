package keepalive

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mcfleet/whitelist-bot/internal/shared/logging"
)

const aliveText = "Bot is alive!"

// Server answers uptime pingers and serves the console feed.
type Server struct {
	addr    string
	hub     *Hub
	healthy func() bool
	token   string
	srv     *http.Server
}

// NewServer builds the keep-alive server. A non-empty feedToken must be
// passed as ?token= to subscribe to /ws. healthy reports gateway state for
// /healthz and may be nil.
func NewServer(addr string, hub *Hub, feedToken string, healthy func() bool) *Server {
	s := &Server{addr: addr, hub: hub, healthy: healthy, token: feedToken}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleAlive)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleFeed)
	return mux
}

func (s *Server) handleAlive(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(aliveText))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	gateway := s.healthy == nil || s.healthy()
	status := "ok"
	code := http.StatusOK
	if !gateway {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": status, "gateway": gateway})
}

// handleFeed subscribes a client to emitted console lines. Client frames are
// read only to notice disconnects.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if !s.feedAllowed(r) {
		logging.L().Warn("feed subscriber rejected", "remote", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.L().Warn("feed upgrade failed", "error", err)
		return
	}
	s.hub.Add(c)
	logging.L().Info("feed subscriber connected", "remote", r.RemoteAddr)
	go func() {
		defer s.hub.Remove(c)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) feedAllowed(r *http.Request) bool {
	if s.token == "" {
		return true
	}
	got := r.URL.Query().Get("token")
	return subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) == 1
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	logging.L().Info("keep-alive listening", "addr", s.addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
