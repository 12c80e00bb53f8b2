package prefs

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch observes the preferences file and invokes onChange with fresh
// preferences after an external edit, so a toggle in one running instance
// reaches the others. Run in a goroutine; returns when ctx is done.
func (s *Store) Watch(ctx context.Context, onChange func(Prefs)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: atomic rename-replace would drop a watch on the
	// file itself.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return err
	}

	var debounce *time.Timer
	fire := func() {
		if p, changed := s.reload(); changed {
			onChange(p)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, fire)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[prefs] watch error: %v", err)
		}
	}
}
