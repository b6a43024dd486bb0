package config

import (
	"path/filepath"
	"sync"

	"eyeterm/internal/errors"
	"eyeterm/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Update is delivered after the watched file was written and re-read.
// Err is set when the new contents failed to load; Config is then nil.
type Update struct {
	Config *Config
	Err    error
}

// Watcher monitors the config file using fsnotify. The parent directory
// is watched so editors that replace the file are noticed too.
type Watcher struct {
	path      string
	fsWatcher *fsnotify.Watcher
	updates   chan Update
	stopChan  chan struct{}
	done      chan struct{}

	mutex   sync.Mutex
	running bool
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewConfigError("invalid config path", path, errors.InvalidConfig, err)
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, errors.NewConfigError("failed to watch config directory", filepath.Dir(abs), errors.ConfigNotFound, err)
	}

	return &Watcher{
		path:      abs,
		fsWatcher: fsWatcher,
		updates:   make(chan Update, 4),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Updates returns the channel that delivers reloaded configurations. It is
// closed by Stop.
func (w *Watcher) Updates() <-chan Update { return w.updates }

// Start begins the event loop. Calling Start twice is an error.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.fsWatcher == nil {
		return errors.New("watcher stopped")
	}
	if w.running {
		return errors.New("watcher already running")
	}
	w.running = true

	go w.loop()
	log.LogWithFields(log.F("path", w.path)).Info("watching config file")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}

			cfg, err := LoadConfigFile(w.path)
			if err != nil {
				log.LogWithError(err).Warn("config reload failed")
			} else {
				log.LogWithFields(log.F("theme", cfg.Theme.Name)).Info("config reloaded")
			}

			select {
			case w.updates <- Update{Config: cfg, Err: err}:
			default:
				log.LogWithFields(log.F("path", w.path)).Warn("update channel is full, dropped reload")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithError(err).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher and closes the update channel. It is safe to call
// more than once.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.fsWatcher == nil {
		return
	}
	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithError(err).Error("error closing fsnotify watcher")
	}
	if w.running {
		<-w.done
	}
	w.fsWatcher = nil
	w.running = false
	close(w.updates)
}
