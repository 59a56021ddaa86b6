// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     workspace.go
//
// =============================================================================

package scribecore

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rcsaszar/scribecore/syntaxdef"
)

// Workspace is an ordered collection of open Buffers, rooted at a canonical
// directory, plus a "current buffer" selection, the unit most editor front
// ends drive directly (tabs, MRU lists, "next buffer" keybindings). It also
// owns the syntax Set shared by every buffer it opens, since syntax
// definitions are naturally workspace-wide rather than per-file state.
type Workspace struct {
	root         string
	buffers      []*Buffer
	currentIndex int
	nextBufferID int
	syntaxSet    syntaxdef.Set
	byPath       map[string]int
}

// NewWorkspace creates an empty Workspace rooted at the canonical form of
// root, with a bundled default syntax definition set. If extensionDir is
// non-empty, syntax definitions found there (matching **/*.syntax.json)
// augment the default set. Returns an error if root cannot be canonicalized
// or if extensionDir contains a malformed syntax definition file.
func NewWorkspace(root string, extensionDir string) (*Workspace, error) {
	canonicalRoot, err := canonicalize(root)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving workspace root %s", root)
	}

	set := syntaxdef.NewDefaultSet()

	if extensionDir != "" {
		if err := set.LoadExtensionDir(extensionDir); err != nil {
			return nil, errors.Wrap(err, "loading syntax extensions")
		}
	}

	return &Workspace{
		root:      canonicalRoot,
		syntaxSet: set,
		byPath:    map[string]int{},
	}, nil
}

// Root returns the workspace's canonical root path.
func (w *Workspace) Root() string {
	return w.root
}

// AddBuffer assigns buffer a fresh, workspace-unique id, inserts it
// immediately after the current selection, and selects it. If the
// workspace is empty, buffer becomes index 0. If buffer has no syntax
// definition configured yet, one is assigned by extension lookup against
// the workspace's syntax Set, falling back to plain text.
func (w *Workspace) AddBuffer(buffer *Buffer) {
	buffer.id = w.nextBufferID
	w.nextBufferID++

	insertAt := 0
	if len(w.buffers) > 0 {
		insertAt = w.currentIndex + 1
	}

	w.buffers = append(w.buffers, nil)
	copy(w.buffers[insertAt+1:], w.buffers[insertAt:])
	w.buffers[insertAt] = buffer

	w.currentIndex = insertAt
	w.reindexPaths()

	if !buffer.hasSyntaxRef {
		w.assignSyntaxByExtension(buffer)
	}
}

// OpenBuffer opens path as a new Buffer and adds it to the workspace. If
// path is already open (compared by canonical path), the existing Buffer is
// selected instead of opening a duplicate.
func (w *Workspace) OpenBuffer(path string) (*Buffer, error) {
	canonical, err := canonicalize(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving path %s", path)
	}

	if idx, ok := w.byPath[canonical]; ok {
		w.currentIndex = idx

		return w.buffers[idx], nil
	}

	buffer, err := NewBufferFromFile(path)
	if err != nil {
		return nil, err
	}

	w.AddBuffer(buffer)

	return buffer, nil
}

// assignSyntaxByExtension resolves buffer's syntax Reference from its file
// extension, falling back to the workspace's Set's plain-text Reference,
// and configures buffer with it. It is a no-op if the workspace has no
// syntax Set.
func (w *Workspace) assignSyntaxByExtension(buffer *Buffer) {
	if w.syntaxSet == nil {
		return
	}

	ref, ok := w.syntaxSet.FindByExtension(buffer.FileExtension())
	if !ok {
		ref = w.syntaxSet.PlainText()
	}

	buffer.SetSyntax(w.syntaxSet, ref)
}

// relativePath returns path relative to the workspace root when
// representable (i.e. path lies under root), or path itself otherwise.
func (w *Workspace) relativePath(path string) string {
	if path == "" {
		return ""
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return rel
}

func (w *Workspace) reindexPaths() {
	w.byPath = make(map[string]int, len(w.buffers))
	for i, b := range w.buffers {
		if b.path != "" {
			w.byPath[b.path] = i
		}
	}
}

// CurrentBuffer returns the selected Buffer. Returns ErrEmptyWorkspace if
// the workspace has no buffers.
func (w *Workspace) CurrentBuffer() (*Buffer, error) {
	if len(w.buffers) == 0 {
		return nil, ErrEmptyWorkspace
	}

	return w.buffers[w.currentIndex], nil
}

// CurrentBufferIndex returns the index of the selected buffer.
func (w *Workspace) CurrentBufferIndex() int {
	return w.currentIndex
}

// CurrentBufferPath returns the selected buffer's path, relative to the
// workspace root when representable, or "" if it has none or the workspace
// is empty.
func (w *Workspace) CurrentBufferPath() string {
	buffer, err := w.CurrentBuffer()
	if err != nil {
		return ""
	}

	return w.relativePath(buffer.Path())
}

// BufferPaths returns the path of every open buffer that has one, relative
// to the workspace root when representable, in buffer order. Unsaved,
// pathless buffers are omitted.
func (w *Workspace) BufferPaths() []string {
	var paths []string

	for _, path := range w.canonicalBufferPaths() {
		paths = append(paths, w.relativePath(path))
	}

	return paths
}

// canonicalBufferPaths returns the canonical (non-relativized) path of
// every open buffer that has one, in buffer order, for callers like
// WatchExternalChanges that need a real filesystem path rather than a
// display-oriented one.
func (w *Workspace) canonicalBufferPaths() []string {
	var paths []string

	for _, b := range w.buffers {
		if b.path != "" {
			paths = append(paths, b.path)
		}
	}

	return paths
}

// CloseCurrentBuffer removes the selected buffer and selects
// max(index-1, 0) among the remaining buffers. Returns ErrEmptyWorkspace if
// the workspace has no buffers.
func (w *Workspace) CloseCurrentBuffer() error {
	if len(w.buffers) == 0 {
		return ErrEmptyWorkspace
	}

	w.buffers = append(w.buffers[:w.currentIndex], w.buffers[w.currentIndex+1:]...)

	if w.currentIndex > 0 {
		w.currentIndex--
	}

	if w.currentIndex >= len(w.buffers) {
		w.currentIndex = len(w.buffers) - 1
	}

	w.reindexPaths()

	return nil
}

// PreviousBuffer selects the buffer before the current one, wrapping around
// to the last buffer from index 0. Returns ErrEmptyWorkspace if the
// workspace has no buffers.
func (w *Workspace) PreviousBuffer() error {
	if len(w.buffers) == 0 {
		return ErrEmptyWorkspace
	}

	w.currentIndex = (w.currentIndex - 1 + len(w.buffers)) % len(w.buffers)

	return nil
}

// NextBuffer selects the buffer after the current one, wrapping around to
// index 0 from the last buffer. Returns ErrEmptyWorkspace if the workspace
// has no buffers.
func (w *Workspace) NextBuffer() error {
	if len(w.buffers) == 0 {
		return ErrEmptyWorkspace
	}

	w.currentIndex = (w.currentIndex + 1) % len(w.buffers)

	return nil
}

// UpdateCurrentSyntax re-resolves the current buffer's syntax Reference
// from its file extension (falling back to the workspace's Set's
// plain-text Reference) and configures the buffer with it. It is a no-op
// if the workspace has no buffers.
func (w *Workspace) UpdateCurrentSyntax() {
	buffer, err := w.CurrentBuffer()
	if err != nil {
		return
	}

	w.assignSyntaxByExtension(buffer)
}

// CurrentBufferTokens returns a TokenIterator over the selected buffer's
// content. Returns ErrEmptyWorkspace if the workspace has no buffers, or
// ErrMissingSyntax if the current buffer's syntax was never configured.
func (w *Workspace) CurrentBufferTokens() (*TokenIterator, error) {
	buffer, err := w.CurrentBuffer()
	if err != nil {
		return nil, err
	}

	return buffer.Tokens()
}
