package watcher

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// debouncer collapses bursts of events into one handler call per quiet
// period. Repeated events for a path keep only the latest one.
type debouncer struct {
	delay   time.Duration
	logger  *slog.Logger
	events  map[string]FileChangeEvent
	timer   *time.Timer
	mutex   sync.Mutex
	stopped bool
}

func newDebouncer(delay time.Duration, logger *slog.Logger) *debouncer {
	return &debouncer{
		delay:  delay,
		logger: logger,
		events: make(map[string]FileChangeEvent),
	}
}

func (d *debouncer) add(ctx context.Context, event FileChangeEvent, handler FileChangeHandler) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.stopped {
		return
	}
	d.events[event.Path] = event
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.flush(ctx, handler)
	})
}

func (d *debouncer) flush(ctx context.Context, handler FileChangeHandler) {
	d.mutex.Lock()
	if d.stopped || len(d.events) == 0 {
		d.mutex.Unlock()
		return
	}
	changedFiles := make([]string, 0, len(d.events))
	for path := range d.events {
		changedFiles = append(changedFiles, path)
	}
	d.events = make(map[string]FileChangeEvent)
	d.mutex.Unlock()

	if ctx.Err() != nil {
		return
	}
	sort.Strings(changedFiles)
	if err := handler(ctx, changedFiles); err != nil {
		d.logger.Error("change handler failed", "files", len(changedFiles), "error", err)
	}
}

func (d *debouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.stopped = true
}
