// Package server animates the charts off-screen and serves their latest
// frames over HTTP, plus a websocket feed of the forming candle.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/iburimskiy/neon-charts/internal/anim"
	"github.com/iburimskiy/neon-charts/internal/chart"
	"github.com/iburimskiy/neon-charts/internal/config"
	"github.com/iburimskiy/neon-charts/internal/render"
	"github.com/iburimskiy/neon-charts/internal/series"
	"github.com/iburimskiy/neon-charts/internal/snapshot"
)

const shutdownTimeout = 5 * time.Second

// pane is one animated chart with a front and back raster. Frames are
// painted into back and swapped in whole, so readers of front never see a
// partial frame.
type pane struct {
	kind  string
	chart chart.Chart

	mu    sync.RWMutex
	front *render.Raster
	back  *render.Raster
}

func newPane(kind string, ch chart.Chart, w, h int) *pane {
	p := &pane{
		kind:  kind,
		chart: ch,
		front: render.NewRaster(w, h),
		back:  render.NewRaster(w, h),
	}
	ch.Draw(p.front)
	return p
}

func (p *pane) frame() {
	p.chart.Frame(p.back)
	p.mu.Lock()
	p.front, p.back = p.back, p.front
	p.mu.Unlock()
}

// WritePNG encodes the latest complete frame.
func (p *pane) WritePNG(w io.Writer) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.front.WritePNG(w)
}

// feedState is the candle state published after every frame.
type feedState struct {
	forming series.Bar
	final   series.Bar
	finals  uint64
}

// Server owns one frame queue driving every chart.
type Server struct {
	cfg    config.ServerConfig
	logger *log.Logger

	queue    *anim.FrameQueue
	panes    map[string]*pane
	loops    []*anim.Loop
	candles  *chart.Candles
	upgrader websocket.Upgrader

	feedMu sync.RWMutex
	feed   feedState
}

func New(cfg config.Config, logger *log.Logger, src series.Source) (*Server, error) {
	s := &Server{
		cfg:    cfg.Server,
		logger: logger,
		queue:  anim.NewFrameQueue(),
		panes:  make(map[string]*pane, len(chart.Kinds)),
	}

	for _, kind := range chart.Kinds {
		ch, err := chart.New(kind, cfg, src)
		if err != nil {
			return nil, err
		}
		p := newPane(kind, ch, cfg.Server.Width, cfg.Server.Height)
		s.panes[kind] = p

		step := p.frame
		if k, ok := ch.(*chart.Candles); ok {
			s.candles = k
			k.OnFinalize(s.finalized)
			s.feed.forming = k.Forming()
			step = func() {
				p.frame()
				s.publish()
			}
		}
		s.loops = append(s.loops, anim.NewLoop(s.queue, step))
	}
	return s, nil
}

// Source returns the snapshot source for a chart kind.
func (s *Server) Source(kind string) (snapshot.Source, bool) {
	p, ok := s.panes[kind]
	return p, ok
}

// Start arms every chart loop. Frames run when the queue ticks.
func (s *Server) Start() {
	for _, l := range s.loops {
		l.Start()
	}
}

// Stop cancels every chart loop.
func (s *Server) Stop() {
	for _, l := range s.loops {
		l.Stop()
	}
}

// Run animates the charts at the configured fps and serves HTTP until ctx
// is done, then shuts the listener down.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.Start()
	defer s.Stop()
	go func() { _ = s.queue.Run(ctx, s.cfg.FPS) }()

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving charts", "addr", s.cfg.Addr, "fps", s.cfg.FPS, "size", fmt.Sprintf("%dx%d", s.cfg.Width, s.cfg.Height))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped", "frames", s.queue.Frames())
	return nil
}

// finalized runs inside the candle chart's Frame.
func (s *Server) finalized(b series.Bar) {
	s.feedMu.Lock()
	s.feed.final = b
	s.feed.finals++
	s.feedMu.Unlock()
	s.logger.Debug("candle finalized", "open", b.Open, "close", b.Close)
}

func (s *Server) publish() {
	forming := s.candles.Forming()
	s.feedMu.Lock()
	s.feed.forming = forming
	s.feedMu.Unlock()
}

// feedSince returns the messages a subscriber that has seen *seen
// finalized bars should get next, and advances *seen. Bars finalized
// between two calls collapse into the latest one.
func (s *Server) feedSince(seen *uint64) []BarMessage {
	s.feedMu.RLock()
	defer s.feedMu.RUnlock()
	var msgs []BarMessage
	if s.feed.finals > *seen {
		msgs = append(msgs, BarMessage{Bar: s.feed.final, Finalized: true})
		*seen = s.feed.finals
	}
	return append(msgs, BarMessage{Bar: s.feed.forming})
}

func (s *Server) finalsSoFar() uint64 {
	s.feedMu.RLock()
	defer s.feedMu.RUnlock()
	return s.feed.finals
}
