package wmconfig

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/boxwm/boxwm/internal/wmlog"
)

// Watcher watches config.toml for edits and invokes onChange with the
// freshly reloaded config. The teacher's go.mod carries fsnotify as an
// unused direct dependency; this is where boxwm actually puts it to work.
type Watcher struct {
	fsw *fsnotify.Watcher
	log *wmlog.Logger
}

// NewWatcher starts watching path's parent directory (watching the
// directory rather than the file survives editors that replace the file
// via rename-on-save instead of writing in place).
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{fsw: fsw, log: wmlog.Default}, nil
}

// Run blocks, calling onChange(newCfg) every time path's contents change and
// reparse cleanly. A reload that fails validation is logged and skipped;
// the process keeps running on the last good config rather than crashing on
// a typo (spec.md §7 "Config-produced ill-formed command ... fails
// gracefully" applies to hot-reload too, not just startup).
func (w *Watcher) Run(path string, onChange func(*Config)) {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if !(ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0) {
				continue
			}
			cfg, result, err := Load()
			if err != nil {
				w.log.Warn("config reload %s: %v", path, err)
				continue
			}
			if result.HasWarnings() {
				for _, warn := range result.Warnings {
					w.log.Warn("config reload [%s] %s: %s", warn.Field, warn.Key, warn.Message)
				}
			}
			onChange(cfg)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }
