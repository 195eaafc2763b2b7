// Package snapshot writes chart frames to PNG files, on demand or on a
// cron schedule.
package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/iburimskiy/neon-charts/internal/render"
)

// Source produces the PNG encoding of its current frame.
type Source interface {
	WritePNG(w io.Writer) error
}

// SourceFunc adapts a function to Source.
type SourceFunc func(w io.Writer) error

func (f SourceFunc) WritePNG(w io.Writer) error { return f(w) }

// WriteFile renders draw into a fresh w x h raster and saves it at path,
// creating parent directories as needed.
func WriteFile(path string, w, h int, draw func(render.Canvas)) error {
	r := render.NewRaster(w, h)
	draw(r)
	return Save(path, r)
}

// Save writes src to path.
func Save(path string, src Source) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := src.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}

// Scheduler captures named sources into Dir on cron schedules.
type Scheduler struct {
	Cron   *cron.Cron
	Dir    string
	Logger *log.Logger

	now func() time.Time
}

// NewScheduler returns a scheduler whose specs include a seconds field,
// e.g. "*/30 * * * * *" or "@every 1m".
func NewScheduler(dir string, logger *log.Logger) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Dir:    dir,
		Logger: logger,
		now:    time.Now,
	}
}

// Register schedules a capture of src under name.
func (s *Scheduler) Register(spec, name string, src Source) error {
	_, err := s.Cron.AddFunc(spec, func() {
		path, err := s.Capture(name, src)
		if err != nil {
			s.Logger.Error("snapshot failed", "chart", name, "err", err)
			return
		}
		s.Logger.Debug("snapshot written", "path", path)
	})
	if err != nil {
		return fmt.Errorf("register snapshot %q: %w", name, err)
	}
	return nil
}

// Capture writes one snapshot of src now and returns its path.
func (s *Scheduler) Capture(name string, src Source) (string, error) {
	path := filepath.Join(s.Dir, FileName(name, s.now()))
	if err := Save(path, src); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("snapshot scheduler started", "dir", s.Dir, "jobs", len(s.Cron.Entries()))
}

// Stop stops the scheduler and waits for running captures to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("snapshot scheduler stopped")
}

// FileName is the snapshot file name for chart name taken at t.
func FileName(name string, t time.Time) string {
	return fmt.Sprintf("%s-%s.png", name, t.Format("20060102-150405"))
}
