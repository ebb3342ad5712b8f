package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher watches a settings file and invokes a callback when it changes.
// The callback runs on the watcher goroutine; it is expected to trigger a
// reload and must be safe to call repeatedly.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	logger   zerolog.Logger
	done     chan struct{}
}

// Watch starts watching the settings file at path. The parent directory is
// watched rather than the file itself so that editors that replace the file
// (write temp + rename) still trigger a change event.
func Watch(path string, logger zerolog.Logger, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		path:     filepath.Clean(path),
		onChange: onChange,
		logger:   logger.With().Str("component", "config-watch").Logger(),
		done:     make(chan struct{}),
	}

	go w.watchLoop()

	return w, nil
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.logger.Info().Str("file", event.Name).Str("op", event.Op.String()).Msg("Settings file changed")
				w.onChange()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("Settings watcher error")
		}
	}
}

// Close stops the watcher. Safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
