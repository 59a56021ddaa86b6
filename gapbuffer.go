// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     gapbuffer.go
//
// =============================================================================

// GapBuffer is a UTF-8, grapheme-aware, mutable text store. It holds a byte
// slice split into three regions: live bytes before a gap, the gap itself
// (uninitialized/stale bytes, free to be written into), and live bytes after
// the gap. Inserting or deleting at a given Position first slides the gap to
// that Position's byte offset, so that the edit itself is a cheap write into
// (or widening of) the gap rather than a shift of the whole buffer.
//
//	scribe| library
//
//	['s','c','r','i','b','e', 0,0,0,0,0, ' ','l','i','b','r','a','r','y']
//	 0   1   2   3   4   5  |    gap    |  6   7   8   9  10  11  12  13
//
// Unlike byte- or rune-indexed gap buffers, every Position offset in this
// package counts grapheme clusters (user-perceived characters), so that a
// cluster like "नी" - two code points wide - is always a single offset step.
package scribecore

import (
	"strings"

	"github.com/rivo/uniseg"
)

// defaultCapacity is the minimum size, in bytes, a freshly grown GapBuffer's
// backing array is given.
const defaultCapacity = 128

// GapBuffer is a single mutation domain for one buffer's text. It is not
// safe for concurrent use.
type GapBuffer struct {
	data      []byte
	gapStart  int
	gapLength int
}

// NewGapBuffer creates a GapBuffer from initial content. The gap starts out
// zero-length and flush against the end of the content; no slack capacity is
// reserved until the first insertion forces a grow.
func NewGapBuffer(initial string) *GapBuffer {
	data := []byte(initial)

	return &GapBuffer{data: data, gapStart: len(data), gapLength: 0}
}

// String returns the buffer's live contents, stitching the bytes before and
// after the gap back together.
func (g *GapBuffer) String() string {
	var b strings.Builder
	b.Grow(len(g.data) - g.gapLength)
	b.Write(g.data[:g.gapStart])
	b.Write(g.data[g.gapStart+g.gapLength:])

	return b.String()
}

// InBounds reports whether position resolves to a valid location in the
// buffer.
//
// See also [GapBuffer.findOffset].
func (g *GapBuffer) InBounds(position Position) bool {
	_, ok := g.findOffset(position)

	return ok
}

// Insert writes text into the buffer at position. If position does not
// resolve to a valid location, the buffer is left unchanged.
func (g *GapBuffer) Insert(text string, position Position) {
	if len(text) > g.gapLength {
		g.reserve(len(text))
	}

	offset, ok := g.findOffset(position)
	if !ok {
		return
	}

	g.moveGap(offset)
	copy(g.data[g.gapStart:], text)
	g.gapStart += len(text)
	g.gapLength -= len(text)
}

// Delete removes the content in r from the buffer. If r.Start does not
// resolve, the buffer is left unchanged. If r.End does not resolve, the
// deletion widens to the start of the following line, and failing that, to
// the end of the buffer.
func (g *GapBuffer) Delete(r Range) {
	startOffset, ok := g.findOffset(r.Start)
	if !ok {
		return
	}

	g.moveGap(startOffset)

	if endOffset, ok := g.findOffset(r.End); ok {
		g.gapLength = endOffset - g.gapStart

		return
	}

	nextLine := Position{Line: r.Start.Line + 1, Offset: 0}
	if endOffset, ok := g.findOffset(nextLine); ok {
		g.gapLength = endOffset - g.gapStart

		return
	}

	g.gapLength = len(g.data) - g.gapStart
}

// Read returns the content of r, or ("", false) if either endpoint does not
// resolve to a valid location.
func (g *GapBuffer) Read(r Range) (string, bool) {
	startOffset, ok := g.findOffset(r.Start)
	if !ok {
		return "", false
	}

	endOffset, ok := g.findOffset(r.End)
	if !ok {
		return "", false
	}

	var b strings.Builder

	if startOffset < g.gapStart {
		hi := min(endOffset, g.gapStart)
		b.Write(g.data[startOffset:hi])
	}

	gapEnd := g.gapStart + g.gapLength
	if endOffset > gapEnd {
		lo := max(startOffset, gapEnd)
		b.Write(g.data[lo:endOffset])
	}

	return b.String(), true
}

// findOffset maps a grapheme-cluster Position to its byte offset in the
// underlying data slice, walking grapheme cluster boundaries before and (if
// necessary) after the gap. It returns false if position is out of bounds.
func (g *GapBuffer) findOffset(position Position) (int, bool) {
	line, offset := 0, 0

	before := string(g.data[:g.gapStart])
	gr := uniseg.NewGraphemes(before)

	for gr.Next() {
		if line == position.Line && offset == position.Offset {
			start, _ := gr.Positions()

			return start, true
		}

		if gr.Str() == "\n" {
			line++
			offset = 0
		} else {
			offset++
		}
	}

	if line == position.Line && offset == position.Offset {
		return g.gapStart + g.gapLength, true
	}

	after := string(g.data[g.gapStart+g.gapLength:])
	gr = uniseg.NewGraphemes(after)

	for gr.Next() {
		if line == position.Line && offset == position.Offset {
			start, _ := gr.Positions()

			return g.gapStart + g.gapLength + start, true
		}

		if gr.Str() == "\n" {
			line++
			offset = 0
		} else {
			offset++
		}
	}

	if line == position.Line && offset == position.Offset {
		return len(g.data), true
	}

	return 0, false
}

// moveGap slides the gap so that it starts immediately before offset, a byte
// index into the current, pre-move data slice (as returned by findOffset):
// offset names the raw array position of the live byte the gap should end up
// in front of, not the gap's own post-move gapStart value directly. Bytes
// between the gap's old and new position are shifted across the gap to make
// room; the vacated bytes are zeroed, since they're now part of the
// (uninitialized) gap.
func (g *GapBuffer) moveGap(offset int) {
	if g.gapLength == 0 {
		// A zero-width gap excludes no bytes, so the data already sits
		// contiguously regardless of where gapStart points: there is
		// nothing to shift.
		g.gapStart = offset

		return
	}

	switch {
	case offset < g.gapStart:
		for index := g.gapStart - 1; index >= offset; index-- {
			g.data[index+g.gapLength] = g.data[index]
			g.data[index] = 0
		}

		g.gapStart = offset

	case offset > g.gapStart:
		for index := g.gapStart + g.gapLength; index < offset; index++ {
			g.data[index-g.gapLength] = g.data[index]
			g.data[index] = 0
		}
		// offset is the raw index of the first live byte after the gap's
		// new position; the gap itself starts gapLength bytes before that.
		g.gapStart = offset - g.gapLength
	}
}

// reserve grows the backing array so the gap can hold at least additional
// more bytes. The gap is always moved flush against the end of the buffer
// first, so a single grow can never split it into two pieces: the live
// content (pre- and post-gap) is copied contiguously to the front of the new
// array, and the new, single gap fills the remainder.
func (g *GapBuffer) reserve(additional int) {
	liveLength := len(g.data) - g.gapLength

	newCapacity := len(g.data) * 2
	if newCapacity < liveLength+additional {
		newCapacity = liveLength + additional
	}

	if newCapacity < defaultCapacity {
		newCapacity = defaultCapacity
	}

	newData := make([]byte, newCapacity)
	n := copy(newData, g.data[:g.gapStart])
	n += copy(newData[n:], g.data[g.gapStart+g.gapLength:])

	g.data = newData
	g.gapStart = n
	g.gapLength = newCapacity - n
}

func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
