// Package cron provides the scheduled inbox watcher using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
)

// ProcessFunc handles one round of newly discovered files.
type ProcessFunc func(paths []string)

// Watcher re-scans an inbox directory on a cron schedule and hands newly
// arrived PDFs to the process function. Files are remembered by path for the
// lifetime of the watcher, so each file is processed once.
type Watcher struct {
	cron    *cron.Cron
	dir     string
	process ProcessFunc
	logger  *slog.Logger

	mu   sync.Mutex
	seen map[string]bool
}

// NewWatcher creates a watcher over dir.
func NewWatcher(dir string, process ProcessFunc, logger *slog.Logger) *Watcher {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))
	return &Watcher{
		cron:    c,
		dir:     dir,
		process: process,
		logger:  logger,
		seen:    make(map[string]bool),
	}
}

// Start scans once immediately, then on every tick of the schedule.
// The schedule accepts standard 5-field cron expressions and @every forms.
func (w *Watcher) Start(schedule string) error {
	w.scan()

	_, err := w.cron.AddFunc(schedule, w.scan)
	if err != nil {
		return err
	}

	w.cron.Start()
	w.logger.Info("inbox watcher started",
		slog.String("dir", w.dir),
		slog.String("schedule", schedule),
	)
	return nil
}

// Stop gracefully stops the schedule; the returned context is done when any
// in-flight scan has finished.
func (w *Watcher) Stop() context.Context {
	w.logger.Info("inbox watcher stopping")
	return w.cron.Stop()
}

// scan finds PDFs not seen before and hands them off in sorted order.
func (w *Watcher) scan() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error("inbox scan failed", slog.Any("error", err))
		return
	}

	var fresh []string
	w.mu.Lock()
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if w.seen[path] {
			continue
		}
		w.seen[path] = true
		fresh = append(fresh, path)
	}
	w.mu.Unlock()

	if len(fresh) == 0 {
		return
	}
	sort.Strings(fresh)

	w.logger.Info("new files in inbox", slog.Int("count", len(fresh)))
	w.process(fresh)
}
