package game

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"
)

// FileWatcher polls the preset tree and calls onChange when any YAML file
// is added, modified or removed.
type FileWatcher struct {
	Root     string
	Interval time.Duration
	onChange func(path string)
	mtimes   map[string]time.Time
}

// NewFileWatcher watches every *.yaml under root.
func NewFileWatcher(root string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Root:     root,
		Interval: interval,
		onChange: onChange,
		mtimes:   make(map[string]time.Time),
	}
}

// Run polls until ctx is done. The first scan only primes the cache.
func (w *FileWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	w.scan(true)
	for {
		select {
		case <-ticker.C:
			w.scan(false)
		case <-ctx.Done():
			return
		}
	}
}

func (w *FileWatcher) scan(prime bool) {
	seen := make(map[string]time.Time, len(w.mtimes))
	_ = filepath.WalkDir(w.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			seen[path] = fi.ModTime()
		}
		return nil
	})

	var changed []string
	for p, mt := range seen {
		if last, ok := w.mtimes[p]; !ok || mt.After(last) {
			changed = append(changed, p)
		}
	}
	for p := range w.mtimes {
		if _, ok := seen[p]; !ok {
			changed = append(changed, p)
		}
	}
	w.mtimes = seen

	if prime || w.onChange == nil {
		return
	}
	for _, p := range changed {
		w.onChange(p)
	}
}
