package preview

import (
	"context"
	"os"
	"sync"
	"time"
)

// DefaultWatchInterval is the polling interval used when none is given.
const DefaultWatchInterval = 500 * time.Millisecond

// Watcher polls files for changes. A file that appears or disappears counts
// as changed.
type Watcher struct {
	paths    []string
	interval time.Duration
	onChange func(path string)

	mu         sync.Mutex
	timestamps map[string]time.Time
}

// NewWatcher creates a watcher for paths. The current state of every path
// is recorded so that only later edits are reported.
func NewWatcher(interval time.Duration, onChange func(path string), paths ...string) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	w := &Watcher{
		paths:      paths,
		interval:   interval,
		onChange:   onChange,
		timestamps: make(map[string]time.Time, len(paths)),
	}
	for _, p := range paths {
		w.timestamps[p] = modTime(p)
	}
	return w
}

// Run polls until ctx is cancelled, calling onChange for every changed path.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, p := range w.Check() {
				if w.onChange != nil {
					w.onChange(p)
				}
			}
		}
	}
}

// Check rescans the watched paths and returns those that changed since the
// previous scan.
func (w *Watcher) Check() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var changed []string
	for _, p := range w.paths {
		t := modTime(p)
		if !t.Equal(w.timestamps[p]) {
			w.timestamps[p] = t
			changed = append(changed, p)
		}
	}
	return changed
}

// modTime returns the modification time of path, or the zero time when it
// cannot be read.
func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
