// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     token.go
//
// =============================================================================

package scribecore

import (
	"strings"

	"github.com/rcsaszar/scribecore/syntaxdef"
	"github.com/rivo/uniseg"
)

// Token is a single unit produced by a TokenIterator: either a Lexeme
// (a run of text under a particular scope stack) or a Newline marker
// separating lines.
type Token interface {
	isToken()
}

// Lexeme is a run of text, positioned in grapheme-cluster offsets relative
// to the start of its line, tagged with the full scope stack that applied
// to it.
type Lexeme struct {
	Text       string
	Line       int
	Offset     int
	ScopeStack syntaxdef.Stack
}

func (Lexeme) isToken() {}

// Newline marks the boundary between one line and the next. Consumers that
// only care about text and scope can skip these; consumers rebuilding
// layout need them since Lexeme offsets reset to zero at each Newline.
type Newline struct {
	Line int
}

func (Newline) isToken() {}

// TokenIterator walks a buffer's content line by line, pairing each line's
// text with the syntax Parser's byte-offset scope events, and emits a
// stream of Tokens whose Lexeme positions are in grapheme-cluster offsets.
//
// The core of the algorithm is the byte-to-grapheme offset translation: a
// Parser reports events at byte offsets into the current line, but every
// position scribecore hands back to callers counts grapheme clusters. A
// single multi-byte, single-grapheme rune (e.g. "€") can appear before an
// event's byte offset while still only accounting for one grapheme offset
// step, so offsets are advanced by walking grapheme cluster boundaries
// rather than by byte arithmetic.
type TokenIterator struct {
	parser             syntaxdef.Parser
	scopes             syntaxdef.Stack
	lines              []string
	lineIndex          int
	consumed           int
	pending            []syntaxdef.Event
	done               bool
	emittedInit        bool
	hasTrailingNewline bool
}

// NewTokenIterator creates a TokenIterator over content, using parser to
// produce scope events.
func NewTokenIterator(content string, parser syntaxdef.Parser) *TokenIterator {
	lines := splitLinesKeepEmpty(content)

	return &TokenIterator{
		parser:             parser,
		lines:              lines,
		hasTrailingNewline: strings.HasSuffix(content, "\n"),
	}
}

// splitLinesKeepEmpty splits content on "\n", dropping the trailing empty
// element strings.Split produces for content ending in a newline, since
// that trailing newline does not introduce a further line of its own.
func splitLinesKeepEmpty(content string) []string {
	if content == "" {
		return []string{""}
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" && strings.HasSuffix(content, "\n") {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// Next returns the next Token, or (nil, false) once the iterator is
// exhausted.
func (it *TokenIterator) Next() (Token, bool) {
	if it.done {
		return nil, false
	}

	if it.lineIndex >= len(it.lines) {
		it.done = true

		return nil, false
	}

	if it.pending == nil && !it.emittedInit {
		it.pending = it.parser.ParseLine(it.lines[it.lineIndex])
		it.emittedInit = true
	}

	return it.buildNextToken()
}

// buildNextToken emits either the next Lexeme on the current line (up to
// the next pending event, or to the end of the line if none remain) or,
// once the current line's events and text are exhausted, a Newline and
// advances to the next line.
func (it *TokenIterator) buildNextToken() (Token, bool) {
	line := it.lines[it.lineIndex]

	if it.currentByteOffset() >= len(line) && len(it.pending) == 0 {
		return it.advanceLine()
	}

	if len(it.pending) == 0 {
		return it.emitRemainder(line)
	}

	event := it.pending[0]
	it.pending = it.pending[1:]

	start := it.currentByteOffset()
	if event.ByteOffset > start {
		return it.emitRun(line, start, event.ByteOffset, event)
	}

	it.scopes = it.scopes.Apply(event.Change)

	return it.buildNextToken()
}

func (it *TokenIterator) emitRemainder(line string) (Token, bool) {
	start := it.currentByteOffset()
	if start >= len(line) {
		return it.advanceLine()
	}

	text := line[start:]
	tok := Lexeme{
		Text:       text,
		Line:       it.lineIndex,
		Offset:     it.currentGraphemeOffset(line[:start]),
		ScopeStack: it.scopes,
	}

	it.consumed = len(line)

	return tok, true
}

func (it *TokenIterator) emitRun(line string, start, end int, event syntaxdef.Event) (Token, bool) {
	text := line[start:end]
	tok := Lexeme{
		Text:       text,
		Line:       it.lineIndex,
		Offset:     it.currentGraphemeOffset(line[:start]),
		ScopeStack: it.scopes,
	}

	it.consumed = end
	it.scopes = it.scopes.Apply(event.Change)

	return tok, true
}

func (it *TokenIterator) advanceLine() (Token, bool) {
	isLast := it.lineIndex == len(it.lines)-1
	line := it.lineIndex
	it.lineIndex++
	it.consumed = 0
	it.pending = nil

	if it.lineIndex < len(it.lines) {
		it.pending = it.parser.ParseLine(it.lines[it.lineIndex])

		return Newline{Line: line}, true
	}

	if isLast && it.hasTrailingNewline {
		return Newline{Line: line}, true
	}

	it.done = true

	return nil, false
}

func (it *TokenIterator) currentByteOffset() int {
	return it.consumed
}

// currentGraphemeOffset returns the number of grapheme clusters in prefix,
// the bytes of the current line already consumed.
func (it *TokenIterator) currentGraphemeOffset(prefix string) int {
	return uniseg.GraphemeClusterCount(prefix)
}
