// Package game hosts the charts in an ebiten window.
package game

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/neon-charts/internal/anim"
	"github.com/iburimskiy/neon-charts/internal/chart"
	"github.com/iburimskiy/neon-charts/internal/config"
	"github.com/iburimskiy/neon-charts/internal/render"
	"github.com/iburimskiy/neon-charts/internal/series"
	"github.com/iburimskiy/neon-charts/internal/snapshot"
)

const windowTitle = "Neon Charts - Space: pause, Tab: switch chart, S: save snapshot, Esc/Q: quit"

// Game is the ebiten.Game for the chart window. All chart state is
// touched only from ebiten's Update and Draw.
type Game struct {
	cfg    config.Config
	logger *log.Logger

	kinds   []string
	charts  map[string]chart.Chart
	current int

	queue  *anim.FrameQueue
	loop   *anim.Loop
	canvas *screenCanvas
	keys   *keyEdges
	chime  *chime

	// askPath asks for a snapshot destination. Empty means canceled.
	askPath func(suggested string) (string, error)

	width, height int
	paused        bool
	done          <-chan struct{}
	lastErr       error
}

// New builds every chart kind up front so switching keeps each chart's
// history. The window opens on cfg.Window.Chart.
func New(cfg config.Config, logger *log.Logger, src series.Source) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		logger:  logger,
		kinds:   chart.Kinds,
		charts:  make(map[string]chart.Chart, len(chart.Kinds)),
		queue:   anim.NewFrameQueue(),
		canvas:  &screenCanvas{},
		keys:    newKeyEdges(),
		chime:   newChime(),
		askPath: askSnapshotPath,
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
	}

	for i, kind := range g.kinds {
		ch, err := chart.New(kind, cfg, src)
		if err != nil {
			return nil, err
		}
		if k, ok := ch.(*chart.Candles); ok && cfg.Window.Chime {
			k.OnFinalize(g.onFinalize)
		}
		if cfg.Window.Particles {
			field := render.NewParticleField(config.ParticleCount,
				float64(cfg.Window.Width), float64(cfg.Window.Height), config.ParticleLinkDist, src)
			ch = chart.WithParticles(ch, field)
		}
		g.charts[kind] = ch
		if kind == cfg.Window.Chart {
			g.current = i
		}
	}

	g.loop = anim.NewLoop(g.queue, func() { g.active().Frame(g.canvas) })
	g.loop.Start()
	return g, nil
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, g *Game) error {
	g.done = ctx.Done()
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g.logger.Info("window opened", "chart", g.kind(), "tps", ebiten.TPS())
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}
	return g.handleKeys(ebiten.IsKeyPressed)
}

func (g *Game) handleKeys(pressed func(ebiten.Key) bool) error {
	justPressed := func(k ebiten.Key) bool {
		return g.keys.justPressed(k, pressed(k))
	}

	if justPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if justPressed(ebiten.KeyTab) {
		g.nextChart()
	}
	if justPressed(ebiten.KeyS) {
		if err := g.saveSnapshot(); err != nil {
			g.lastErr = err
			g.logger.Error("save snapshot", "err", err)
		}
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.screen = screen
	if g.queue.Tick() == 0 {
		// paused: hold the last state on screen
		g.canvas.Clear()
		g.active().Draw(g.canvas)
	}

	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

// Layout follows the window so charts rescale on resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) active() chart.Chart {
	return g.charts[g.kind()]
}

func (g *Game) kind() string {
	return g.kinds[g.current]
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.loop.Stop()
	} else {
		g.loop.Start()
	}
	g.logger.Debug("pause toggled", "paused", g.paused, "frames", g.loop.Frames())
}

func (g *Game) nextChart() {
	g.current = (g.current + 1) % len(g.kinds)
	g.logger.Debug("chart switched", "chart", g.kind())
}

func (g *Game) status() string {
	state := "Running"
	if g.paused {
		state = "Paused"
	}
	elapsed := formatDuration(framesToDuration(g.loop.Frames(), ebiten.TPS()))
	status := fmt.Sprintf("%s %s - %s | Space: pause/resume, Tab: switch, S: save", state, elapsed, g.kind())
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func (g *Game) onFinalize(b series.Bar) {
	if g.chime == nil {
		return
	}
	if err := g.chime.play(b); err != nil {
		g.logger.Warn("chime disabled", "err", err)
		g.chime = nil
	}
}

// saveSnapshot repaints the active chart at window size into a PNG.
func (g *Game) saveSnapshot() error {
	path, err := g.askPath(snapshot.FileName(g.kind(), time.Now()))
	if err != nil || path == "" {
		return err
	}
	if filepath.Ext(path) == "" {
		path += ".png"
	}
	if err := snapshot.WriteFile(path, g.width, g.height, g.active().Draw); err != nil {
		return err
	}
	g.lastErr = nil
	g.logger.Info("snapshot saved", "path", path)
	return nil
}

func askSnapshotPath(suggested string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.Filename(suggested),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return path, nil
}
