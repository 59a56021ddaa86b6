// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     watch.go
//
// =============================================================================

package scribecore

import (
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// ExternalChange describes a file-level change observed on disk for one of
// the workspace's open buffers, reported by WatchExternalChanges. It
// intentionally does not auto-reload the buffer: a concurrent external edit
// while the in-memory buffer is itself modified needs a decision only the
// embedding application's UI can make (reload and lose local edits, keep
// local edits and ignore, or offer a diff), so this package only surfaces
// the event.
type ExternalChange struct {
	Path string
}

// WatchExternalChanges starts watching every currently open buffer's path
// for on-disk changes made outside this process (e.g. a file reformatted by
// an external tool, or edited in another program). Events are delivered on
// the returned channel. The returned stop function removes the watches and
// releases the underlying OS resources; callers should always call it, and
// must not use the channel afterward.
//
// Buffers opened after WatchExternalChanges is called are not automatically
// watched; call it again to pick up new buffers.
func (w *Workspace) WatchExternalChanges() (<-chan ExternalChange, func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating file watcher")
	}

	for _, path := range w.canonicalBufferPaths() {
		if err := watcher.Add(path); err != nil {
			watcher.Close()

			return nil, nil, errors.Wrapf(err, "watching %s", path)
		}
	}

	changes := make(chan ExternalChange)

	go func() {
		defer close(changes)

		for {
			event, ok := <-watcher.Events
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			changes <- ExternalChange{Path: event.Name}
		}
	}()

	return changes, watcher.Close, nil
}
