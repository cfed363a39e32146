// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsx

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a directory for created or modified files.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the given directory, calling fn with the base
// name of each file that is created or written. fn is called on the
// watcher's own goroutine, so it should hand the name off to the
// goroutine that owns any resources it affects.
func Watch(dir string, fn func(name string)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	wt := &Watcher{watcher: w, done: make(chan struct{})}
	go wt.run(fn)
	return wt, nil
}

func (wt *Watcher) run(fn func(name string)) {
	for {
		select {
		case <-wt.done:
			return
		case event, ok := <-wt.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				fn(filepath.Base(event.Name))
			}
		case err, ok := <-wt.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("fsx: watcher error", "err", err)
		}
	}
}

// Close stops watching and releases the watcher.
// Calls after the first do nothing.
func (wt *Watcher) Close() error {
	var err error
	wt.once.Do(func() {
		close(wt.done)
		err = wt.watcher.Close()
	})
	return err
}
