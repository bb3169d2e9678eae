package transfer

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultRetention is how long a scratch file may sit before the janitor
// considers it orphaned. Delete-on-close handles the normal case; the
// janitor only catches files left behind by crashes or aborted streams.
const DefaultRetention = 15 * time.Minute

// Janitor periodically sweeps the scratch directory.
type Janitor struct {
	scratch   *Scratch
	retention time.Duration
	cron      *cron.Cron
	log       *slog.Logger
}

// NewJanitor schedules a sweep of the scratch directory on the given cron
// spec (e.g. "@every 10m").
func NewJanitor(scratch *Scratch, spec string, log *slog.Logger) (*Janitor, error) {
	j := &Janitor{
		scratch:   scratch,
		retention: DefaultRetention,
		cron:      cron.New(),
		log:       log,
	}
	if _, err := j.cron.AddFunc(spec, j.sweep); err != nil {
		return nil, err
	}
	return j, nil
}

// Start begins the scheduled sweeps.
func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts scheduling; a sweep already running completes.
func (j *Janitor) Stop() {
	j.cron.Stop()
}

// SetLogger sets the logger
func (j *Janitor) SetLogger(log *slog.Logger) {
	j.log = log
}

func (j *Janitor) sweep() {
	n, err := j.scratch.Sweep(j.retention)
	if err != nil {
		j.log.Error("scratch sweep failed", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		j.log.Info("scratch sweep removed orphaned files", slog.Int("count", n))
	}
}

// Sweep removes scratch files older than maxAge and reports how many were
// removed.
func (s *Scratch) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
