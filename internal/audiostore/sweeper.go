package audiostore

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper deletes stored audio older than a retention window on a cron
// schedule. Nothing else ever removes generated audio, including files
// orphaned by requests that failed partway through synthesis.
type Sweeper struct {
	store     *Store
	retention time.Duration
	cron      *cron.Cron
}

func NewSweeper(store *Store, retention time.Duration, schedule string) (*Sweeper, error) {
	s := &Sweeper{
		store:     store,
		retention: retention,
		cron:      cron.New(),
	}
	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Sweeper) Start() { s.cron.Start() }
func (s *Sweeper) Stop()  { s.cron.Stop() }

func (s *Sweeper) sweep() {
	removed, err := s.SweepOnce(time.Now())
	if err != nil {
		slog.Error("audio sweep failed", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("audio sweep", "removed", removed, "retention", s.retention.String())
	}
}

// SweepOnce removes tip audio files whose modification time is older
// than the retention window relative to now, returning how many were
// removed.
func (s *Sweeper) SweepOnce(now time.Time) (int, error) {
	entries, err := os.ReadDir(s.store.Dir())
	if err != nil {
		return 0, fmt.Errorf("read audio dir: %w", err)
	}

	cutoff := now.Add(-s.retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "tip_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.store.Dir(), entry.Name())); err != nil {
			slog.Warn("failed to remove expired audio", "file", entry.Name(), "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
