package settings

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever the settings file is rewritten by an
// external process. It watches the parent directory because atomic saves
// (write temp, rename) replace the file node. Blocks until the context is
// cancelled. Ephemeral stores have nothing to watch.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	// On a fresh install the directory appears only with the first save.
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := fsw.Add(dir); err != nil {
		return err
	}

	target, _ := filepath.Abs(s.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(ev.Name)
			if abs != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				s.reload()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("settings: watcher error: %v", err)
		}
	}
}
