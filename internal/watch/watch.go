// Package watch reruns a pass whenever lupin sources change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce склеивает пачку событий от одного сохранения файла.
const DefaultDebounce = 150 * time.Millisecond

type Options struct {
	// Ext filters changed files; empty means ".lp".
	Ext      string
	Debounce time.Duration
	// OnError receives watcher errors; nil drops them.
	OnError func(error)
}

// Func is called once at start with no changes, then after every settled
// batch of changes. Paths are sorted and unique.
type Func func(ctx context.Context, changed []string)

// Run watches root (a file or a directory tree) until ctx is done.
// A canceled context is not an error.
func Run(ctx context.Context, root string, opts Options, fn Func) error {
	if opts.Ext == "" {
		opts.Ext = ".lp"
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	st, err := os.Stat(root)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	f := filter{ext: opts.Ext}
	if st.IsDir() {
		if err := addTree(w, root); err != nil {
			return err
		}
	} else {
		// редакторы часто пишут через rename, поэтому следим за каталогом
		f.only = filepath.Clean(root)
		if err := w.Add(filepath.Dir(root)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	fn(ctx, nil)

	pending := make(map[string]struct{})
	timer := time.NewTimer(opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if st.IsDir() && ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := addTree(w, ev.Name); err != nil && opts.OnError != nil {
						opts.OnError(err)
					}
					continue
				}
			}
			if !f.match(ev) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = struct{}{}
			timer.Reset(opts.Debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			fn(ctx, changed)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if opts.OnError != nil {
				opts.OnError(err)
			}
		}
	}
}

type filter struct {
	ext  string
	only string
}

func (f filter) match(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)
	if f.only != "" {
		return name == f.only
	}
	return filepath.Ext(name) == f.ext
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
