package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/lexicon/pkg/core"
)

const debounceDelay = 50 * time.Millisecond

// Watch implements core.Watchable. It emits one event per burst of changes
// to a document whose ID matches pattern (doublestar syntax). The channel is
// closed once ctx is done.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %s", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := r.recursiveAdd(watcher); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	events := make(chan core.Event)
	deb := newDebouncer(debounceDelay)
	r.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer r.setWatcherActive(false)
		defer watcher.Close()
		defer deb.stopAndWait(5 * time.Second)

		for {
			select {
			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return fmt.Errorf("watcher events channel closed")
				}
				r.handleEvent(ctx, watcher, event, pattern, deb, events)

			case wErr, ok := <-watcher.Errors:
				if !ok {
					return fmt.Errorf("watcher errors channel closed")
				}
				r.config.Logger.Error("fsnotify error", "error", wErr)
				if r.config.ErrorHandler != nil {
					r.config.ErrorHandler(wErr)
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		r.config.Logger.Error("watcher stopped", "error", err)
		if r.config.ErrorHandler != nil {
			r.config.ErrorHandler(err)
		}
	}))

	return events, nil
}

func (r *Repository) handleEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event, pattern string, deb *debouncer, out chan<- core.Event) {
	r.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	// New directories need their own watch to see nested documents.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !r.skipDir(filepath.Base(event.Name)) {
				_ = watcher.Add(event.Name)
			}
			return
		}
	}

	if r.shouldIgnore(event.Name) {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	id, err := r.resolveID(event.Name)
	if err != nil {
		r.config.Logger.Debug("resolveID failed", "path", event.Name, "err", err)
		return
	}
	if ok, _ := doublestar.Match(pattern, id); !ok {
		return
	}

	r.recordEvent()
	deb.add(core.Event{Type: eType, ID: id, Timestamp: time.Now().Unix()}, func(e core.Event) {
		defer func() {
			// The channel may already be closed if the stop wait timed out.
			_ = recover()
		}()
		select {
		case out <- e:
		case <-ctx.Done():
		}
	})
}

func (r *Repository) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != r.Path && r.skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (r *Repository) skipDir(name string) bool {
	return name == ".git" || name == r.config.SystemDir
}

func (r *Repository) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if filepath.Ext(base) != DocumentExt || strings.HasPrefix(base, TempFilePrefix) {
		return true
	}
	rel, err := filepath.Rel(r.Path, path)
	if err != nil {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if r.skipDir(part) {
			return true
		}
	}
	return false
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// debouncer coalesces bursts of events per document ID; the last event of a
// burst wins.
type debouncer struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	delay   time.Duration
	timers  map[string]*time.Timer
	pending map[string]core.Event
	stopped bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]core.Event),
	}
}

func (d *debouncer) add(e core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending[e.ID] = e
	if t, ok := d.timers[e.ID]; ok && t.Stop() {
		d.wg.Done()
	}

	d.wg.Add(1)
	d.timers[e.ID] = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		ev, ok := d.pending[e.ID]
		delete(d.pending, e.ID)
		delete(d.timers, e.ID)
		stopped := d.stopped
		d.mu.Unlock()

		if ok && !stopped {
			emit(ev)
		}
	})
}

// stopAndWait drops pending events and waits for in-flight emits, so the
// output channel can be closed safely afterwards.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for id, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, id)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
