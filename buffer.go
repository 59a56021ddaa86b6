// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     buffer.go
//
// =============================================================================

package scribecore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rcsaszar/scribecore/syntaxdef"
)

// Buffer is a single open file's (or scratch text's) content, cursor,
// undo/redo history, and syntax configuration. A Buffer's path, once set, is
// always the canonicalized (absolute, symlink-resolved) form, so that two
// Buffers never silently diverge over the same file reached by different
// relative paths; see Workspace, which enforces this at the multi-buffer
// level.
type Buffer struct {
	id           int
	path         string
	gapBuffer    *GapBuffer
	cursor       *Cursor
	history      *History
	group        *GroupOp
	syntaxSet    syntaxdef.Set
	syntaxRef    syntaxdef.Reference
	hasSyntaxRef bool
	onChange     func(Position)
}

// NewBuffer creates an unsaved, empty Buffer with no associated path. Its
// history is marked immediately, so the new buffer reports itself as
// unmodified.
func NewBuffer() *Buffer {
	data := NewGapBuffer("")
	history := NewHistory()
	history.Mark()

	return &Buffer{
		gapBuffer: data,
		cursor:    NewCursor(data),
		history:   history,
	}
}

// NewBufferFromFile reads path's content into a new Buffer. The resulting
// Buffer's path is path's canonical form.
func NewBufferFromFile(path string) (*Buffer, error) {
	canonical, err := canonicalize(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving path %s", path)
	}

	content, err := os.ReadFile(canonical)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", canonical)
	}

	buffer := NewBuffer()
	buffer.path = canonical
	buffer.gapBuffer = NewGapBuffer(string(content))
	buffer.cursor = NewCursor(buffer.gapBuffer)
	buffer.history.Mark()

	return buffer, nil
}

// canonicalize resolves path to an absolute, symlink-free form. It does not
// require the path to exist.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return abs, nil
		}

		return "", err
	}

	return resolved, nil
}

// ID returns the buffer's identifier, unique among the buffers held by
// whichever Workspace added it. A Buffer not yet added to a Workspace has
// ID 0, the same as the first buffer a Workspace ever assigns; callers
// should not rely on ID for identity before a buffer has been added.
func (b *Buffer) ID() int {
	return b.id
}

// Path returns the buffer's canonical path, or "" if it has none.
func (b *Buffer) Path() string {
	return b.path
}

// FileName returns the base name of the buffer's path, or "" if it has
// none.
func (b *Buffer) FileName() string {
	if b.path == "" {
		return ""
	}

	return filepath.Base(b.path)
}

// FileExtension returns the buffer's path's extension, without the leading
// dot, or "" if it has no path or no extension.
func (b *Buffer) FileExtension() string {
	if b.path == "" {
		return ""
	}

	return strings.TrimPrefix(filepath.Ext(b.path), ".")
}

// Data returns the buffer's full text content.
func (b *Buffer) Data() string {
	return b.gapBuffer.String()
}

// Cursor returns the buffer's cursor.
func (b *Buffer) Cursor() *Cursor {
	return b.cursor
}

// Modified reports whether the buffer's content has diverged from the
// last saved/loaded state, tracked via the undo history's mark.
func (b *Buffer) Modified() bool {
	return !b.history.AtMark()
}

// SetChangeCallback installs fn to be called with the position of every
// edit this buffer makes, including ones made by Undo/Redo/Replace. Passing
// nil disables notification.
func (b *Buffer) SetChangeCallback(fn func(Position)) {
	b.onChange = fn
}

func (b *Buffer) notifyChange(p Position) {
	if b.onChange != nil {
		b.onChange(p)
	}
}

// record stores op, having already been run, either into the open operation
// group (if StartOperationGroup is active) or directly into the undo
// history.
func (b *Buffer) record(op Operation) {
	if b.group != nil {
		b.group.Add(op)

		return
	}

	b.history.Add(op)
}

// Insert runs a reversible insertion of text at the cursor's current
// position, and advances the cursor past it.
func (b *Buffer) Insert(text string) {
	op := NewInsertOp(text, b.cursor.Position())
	op.Run(b)
	b.record(op)

	b.cursor.MoveTo(b.cursor.Position().Add(DistanceOfString(text)))
}

// DeleteRange runs a reversible deletion of r.
func (b *Buffer) DeleteRange(r Range) {
	if !r.IsValid() {
		return
	}

	op := NewDeleteOp(r)
	op.Run(b)
	b.record(op)

	b.cursor.MoveTo(r.Start)
}

// Delete removes the single grapheme cluster at the cursor, the usual
// meaning of a forward delete keystroke. At the end of a non-final line,
// this removes the line's trailing newline, joining it with the next line.
// At the end of the buffer it does nothing and records nothing. Both ends of
// the range handed to DeleteRange always resolve, so the recorded DeleteOp
// captures the removed text and Undo can restore it.
func (b *Buffer) Delete() {
	start := b.cursor.Position()
	end := Position{Line: start.Line, Offset: start.Offset + 1}

	if !b.gapBuffer.InBounds(end) {
		end = Position{Line: start.Line + 1, Offset: 0}
		if !b.gapBuffer.InBounds(end) {
			return
		}
	}

	b.DeleteRange(NewRange(start, end))
}

// Read returns the content of r, or ("", false) if r does not resolve
// within the buffer.
func (b *Buffer) Read(r Range) (string, bool) {
	return b.gapBuffer.Read(r)
}

// Replace runs a reversible, wholesale replacement of the buffer's content
// with newContent. A replacement equal to the buffer's current content is
// ignored and does not touch the undo history.
func (b *Buffer) Replace(newContent string) {
	old := b.Data()
	if newContent == old {
		return
	}

	op := NewReplaceOp(old, newContent)
	op.Run(b)
	b.record(op)
}

// replaceContent installs content as the buffer's entire text, rebuilding
// the underlying GapBuffer, and tries to keep the cursor at its previous
// position, falling back to the start of its previous line, and failing
// that to the start of the buffer. It fires the change callback at the
// origin, matching the "whole buffer changed" nature of a replace.
func (b *Buffer) replaceContent(content string) {
	previous := b.cursor.Position()

	b.gapBuffer = NewGapBuffer(content)
	b.cursor = NewCursor(b.gapBuffer)

	if b.cursor.MoveTo(previous) {
		b.notifyChange(Position{})

		return
	}

	if b.cursor.MoveTo(Position{Line: previous.Line, Offset: 0}) {
		b.notifyChange(Position{})

		return
	}

	b.cursor.MoveTo(Position{})
	b.notifyChange(Position{})
}

// Undo reverses the most recent operation, if any, and reports whether one
// was reversed. If an operation group is open (StartOperationGroup was
// called without a matching EndOperationGroup), Undo reverses the group's
// collected operations directly, without closing it into history first, and
// clears it; an empty open group is simply discarded and Undo falls through
// to the previous history entry.
func (b *Buffer) Undo() bool {
	if b.group != nil {
		group := b.group
		b.group = nil

		if group.IsEmpty() {
			return b.Undo()
		}

		group.Reverse(b)

		return true
	}

	op, ok := b.history.Previous()
	if !ok {
		return false
	}

	op.Reverse(b)

	return true
}

// Redo re-applies the most recently undone operation, if any, and reports
// whether one was applied.
func (b *Buffer) Redo() bool {
	op, ok := b.history.Next()
	if !ok {
		return false
	}

	op.Run(b)

	return true
}

// StartOperationGroup begins collecting subsequent edits into a single
// GroupOp, rather than recording them individually, so they undo and redo
// as one step. Calling it while a group is already open does nothing; groups
// do not nest, and the first EndOperationGroup closes the open group.
func (b *Buffer) StartOperationGroup() {
	if b.group != nil {
		return
	}

	b.group = NewGroupOp()
}

// EndOperationGroup closes the group started by StartOperationGroup and
// records it, provided it collected at least one operation. It is a no-op
// if no group is open.
func (b *Buffer) EndOperationGroup() {
	group := b.group
	if group == nil {
		return
	}

	b.group = nil

	if !group.IsEmpty() {
		b.history.Add(group)
	}
}

// Save writes the buffer's content to its associated path, and marks the
// undo history as matching disk. Returns ErrMissingPath if the buffer has no
// path.
func (b *Buffer) Save() error {
	if b.path == "" {
		return ErrMissingPath
	}

	if err := os.WriteFile(b.path, []byte(b.Data()), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", b.path)
	}

	b.history.Mark()

	return nil
}

// Reload discards the buffer's in-memory content and replaces it with its
// associated path's current on-disk content, as a single reversible
// ReplaceOp (so Undo can get back the pre-reload content). Returns
// ErrMissingPath if the buffer has no path.
func (b *Buffer) Reload() error {
	if b.path == "" {
		return ErrMissingPath
	}

	content, err := os.ReadFile(b.path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", b.path)
	}

	b.Replace(string(content))
	b.history.Mark()

	return nil
}

// LineCount returns the number of lines in the buffer, counting a trailing
// empty line after a final newline.
func (b *Buffer) LineCount() int {
	return b.lastLine() + 1
}

func (b *Buffer) lastLine() int {
	line := 0
	for b.gapBuffer.InBounds(Position{Line: line + 1, Offset: 0}) {
		line++
	}

	return line
}

// Search returns the byte offset of every non-overlapping occurrence of
// needle in the buffer's content, in ascending order. Unlike every other
// position reported by this package, these are byte offsets into the
// buffer's flattened string form, not grapheme-cluster Positions: callers
// doing substring search are usually about to feed the offset to another
// byte-oriented tool (e.g. a regexp match span), and translating through
// grapheme offsets would lose that interoperability for no benefit.
func (b *Buffer) Search(needle string) []int {
	if needle == "" {
		return nil
	}

	var offsets []int

	content := b.Data()

	for searchFrom := 0; ; {
		idx := strings.Index(content[searchFrom:], needle)
		if idx < 0 {
			break
		}

		offsets = append(offsets, searchFrom+idx)
		searchFrom += idx + len(needle)
	}

	return offsets
}

// SetSyntax configures the Set and Reference used by Tokens and
// CurrentScope.
func (b *Buffer) SetSyntax(set syntaxdef.Set, ref syntaxdef.Reference) {
	b.syntaxSet = set
	b.syntaxRef = ref
	b.hasSyntaxRef = true
}

// Tokens returns a TokenIterator over the buffer's current content, built
// from a fresh Parser for the buffer's configured syntax Reference. Returns
// ErrMissingSyntax if SetSyntax was never called.
func (b *Buffer) Tokens() (*TokenIterator, error) {
	if !b.hasSyntaxRef {
		return nil, ErrMissingSyntax
	}

	parser, err := b.syntaxSet.NewParser(b.syntaxRef)
	if err != nil {
		return nil, errors.Wrap(err, "building parser")
	}

	return NewTokenIterator(b.Data(), parser), nil
}

// CurrentScope returns the scope stack of the lexeme at or immediately
// before the cursor's position. Returns ErrMissingScope if the cursor
// precedes every lexeme (e.g. an empty buffer), and ErrMissingSyntax if
// SetSyntax was never called.
func (b *Buffer) CurrentScope() (syntaxdef.Stack, error) {
	it, err := b.Tokens()
	if err != nil {
		return syntaxdef.Stack{}, err
	}

	cursor := b.cursor.Position()

	var last *syntaxdef.Stack

	for {
		tok, ok := it.Next()
		if !ok {
			break
		}

		lex, isLexeme := tok.(Lexeme)
		if !isLexeme {
			continue
		}

		if lex.Line > cursor.Line || (lex.Line == cursor.Line && lex.Offset > cursor.Offset) {
			break
		}

		stack := lex.ScopeStack
		last = &stack
	}

	if last == nil {
		return syntaxdef.Stack{}, ErrMissingScope
	}

	return *last, nil
}
