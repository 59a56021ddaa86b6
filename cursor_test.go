// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     cursor_test.go
//
// =============================================================================

package scribecore_test

import (
	"testing"

	"github.com/rcsaszar/scribecore"
	"github.com/stretchr/testify/assert"
)

func TestCursorStartsAtOrigin(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("hello")
	cursor := scribecore.NewCursor(gb)

	assert.Equal(t, scribecore.Position{}, cursor.Position())
}

func TestCursorMoveToRejectsOutOfBounds(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("abc")
	cursor := scribecore.NewCursor(gb)

	assert.False(t, cursor.MoveTo(scribecore.Position{Line: 9, Offset: 0}))
	assert.Equal(t, scribecore.Position{}, cursor.Position())
}

func TestCursorMoveLeftRightRoundtrip(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("abc")
	cursor := scribecore.NewCursor(gb)

	assert.True(t, cursor.MoveTo(scribecore.Position{Line: 0, Offset: 2}))
	assert.True(t, cursor.MoveLeft())
	assert.Equal(t, 1, cursor.Offset())
	assert.True(t, cursor.MoveRight())
	assert.Equal(t, 2, cursor.Offset())
}

func TestCursorMoveLeftAtStartFails(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("abc")
	cursor := scribecore.NewCursor(gb)

	assert.False(t, cursor.MoveLeft())
}

func TestCursorStickyOffsetSurvivesShortLine(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("long line\nhi\nlong line too")
	cursor := scribecore.NewCursor(gb)

	assert.True(t, cursor.MoveTo(scribecore.Position{Line: 0, Offset: 9}))
	assert.True(t, cursor.MoveDown())
	// "hi" is only 2 graphemes long, so the cursor clamps.
	assert.Equal(t, scribecore.Position{Line: 1, Offset: 2}, cursor.Position())

	assert.True(t, cursor.MoveDown())
	// The third line is long enough to regain the original sticky column.
	assert.Equal(t, scribecore.Position{Line: 2, Offset: 9}, cursor.Position())
}

func TestCursorMoveToStartAndEndOfLine(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("hello world")
	cursor := scribecore.NewCursor(gb)

	assert.True(t, cursor.MoveTo(scribecore.Position{Line: 0, Offset: 5}))
	assert.True(t, cursor.MoveToEndOfLine())
	assert.Equal(t, 11, cursor.Offset())

	assert.True(t, cursor.MoveToStartOfLine())
	assert.Equal(t, 0, cursor.Offset())
}

func TestCursorMoveToFirstAndLastLine(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("a\nbb\nccc")
	cursor := scribecore.NewCursor(gb)

	assert.True(t, cursor.MoveTo(scribecore.Position{Line: 1, Offset: 2}))
	assert.True(t, cursor.MoveToLastLine())
	assert.Equal(t, 2, cursor.Line())

	assert.True(t, cursor.MoveToFirstLine())
	assert.Equal(t, 0, cursor.Line())
}
