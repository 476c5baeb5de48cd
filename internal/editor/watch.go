package editor

import (
	"path/filepath"

	"github.com/dshills/sqledit/internal/config/watcher"
	"github.com/dshills/sqledit/internal/log"
)

// WatchDialect reloads the dialect from path whenever the file changes.
// A file that disappears or fails to load leaves the current dialect in
// place.
func (s *Session) WatchDialect(w *watcher.Watcher, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Watch(abs); err != nil {
		return err
	}

	w.OnChange(func(ev watcher.Event) {
		if ev.Path != abs {
			return
		}
		s.logger.Debug(log.CatConfig, "dialect file changed", "path", ev.Path, "op", ev.Op)
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			s.logger.Warn(log.CatDialect, "dialect file gone, keeping current dialect", "path", ev.Path)
			return
		}
		_ = s.ReloadDialectFile(ev.Path)
	})
	return nil
}
