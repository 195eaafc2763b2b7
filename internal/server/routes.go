package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/iburimskiy/neon-charts/internal/chart"
	"github.com/iburimskiy/neon-charts/internal/series"
)

const writeWait = 2 * time.Second

// BarMessage is one websocket feed message.
type BarMessage struct {
	series.Bar
	Finalized bool `json:"finalized"`
}

// Router returns the HTTP handler for every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/charts/candles/live", s.handleLive)
	r.Get("/charts/{kind}.png", s.handlePNG)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "took", time.Since(start).Round(time.Microsecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"frames": s.queue.Frames(),
		"charts": chart.Kinds,
	})
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	p, ok := s.panes[kind]
	if !ok {
		http.Error(w, "unknown chart: "+kind, http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := p.WritePNG(&buf); err != nil {
		s.logger.Error("encode frame", "chart", kind, "err", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// handleLive streams the forming candle every feed interval. A bar
// finalized since the previous message is sent first with finalized set.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		s.logger.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	seen := s.finalsSoFar()
	send := func() bool {
		for _, msg := range s.feedSince(&seen) {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				s.logger.Debug("live feed closed", "err", err)
				return false
			}
		}
		return true
	}

	s.logger.Debug("live feed subscribed", "remote", r.RemoteAddr)
	if !send() {
		return
	}
	ticker := time.NewTicker(time.Duration(s.cfg.FeedIntervalMS) * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
				time.Now().Add(writeWait))
			return
		case <-closed:
			return
		case <-ticker.C:
			if !send() {
				return
			}
		}
	}
}
