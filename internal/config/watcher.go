// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package config

import (
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DebounceDelay is how long the Watcher waits after the last change to the
// configuration file before reloading it.
//
var DebounceDelay = 200 * time.Millisecond

// Watcher reloads a configuration file when it changes and notifies
// callbacks with the new configuration. Invalid configurations are logged and
// ignored.
//
type Watcher struct {
	path string
	log  *zap.Logger
	fw   *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup

	mu        sync.RWMutex
	current   *Config
	callbacks []func(*Config)
}

// NewWatcher starts watching the configuration file at path. initial is the
// configuration currently in use.
//
func NewWatcher(path string, initial *Config, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}
	path = filepath.Clean(path)
	// watch the directory: editors often replace the file instead of writing
	// to it.
	if err = fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "watch %s", path)
	}
	w := &Watcher{
		path:    path,
		log:     log,
		fw:      fw,
		done:    make(chan struct{}),
		current: initial,
	}
	w.wg.Add(1)
	go w.loop()
	log.Info("watching configuration file", zap.String("path", path))
	return w, nil
}

// OnChange registers fn to be called after every successful reload.
//
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, fn)
	w.mu.Unlock()
}

// Current returns the last loaded configuration.
//
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Close stops the watcher.
//
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	var timer *time.Timer
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(DebounceDelay, w.reload)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Error("configuration watcher", zap.Error(err))
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reload() {
	c, err := Load(w.path)
	if err != nil {
		w.log.Error("configuration reload failed", zap.Error(err))
		return
	}
	w.mu.Lock()
	if reflect.DeepEqual(c, w.current) {
		w.mu.Unlock()
		return
	}
	w.current = c
	cbs := make([]func(*Config), len(w.callbacks))
	copy(cbs, w.callbacks)
	w.mu.Unlock()

	w.log.Info("configuration reloaded", zap.String("path", w.path))
	for _, fn := range cbs {
		fn(c)
	}
}
