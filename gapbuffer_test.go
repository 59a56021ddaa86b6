// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     gapbuffer_test.go
//
// =============================================================================

// Black-box testing of the gap buffer.
package scribecore_test

import (
	"testing"

	"github.com/rcsaszar/scribecore"
	"github.com/stretchr/testify/assert"
)

func TestEmptyBufferIsEmpty(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("")

	assert.Equal(t, "", gb.String(), "a fresh empty buffer should stringify to an empty string")
}

func TestInitialContentRoundTrips(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("Hello, World!")

	assert.Equal(t, "Hello, World!", gb.String())
}

func TestInsertAtStart(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("World!")
	gb.Insert("Hello, ", scribecore.Position{Line: 0, Offset: 0})

	assert.Equal(t, "Hello, World!", gb.String())
}

func TestInsertAtEnd(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("Hello, ")
	gb.Insert("World!", scribecore.Position{Line: 0, Offset: 7})

	assert.Equal(t, "Hello, World!", gb.String())
}

func TestInsertMidline(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("Helloorld!")
	gb.Insert(", W", scribecore.Position{Line: 0, Offset: 5})

	assert.Equal(t, "Hello, World!", gb.String())
}

func TestInsertOnSecondLine(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("first\nthird\n")
	gb.Insert("second\n", scribecore.Position{Line: 1, Offset: 0})

	assert.Equal(t, "first\nsecond\nthird\n", gb.String())
}

func TestInsertPastEndOfBufferIsNoOp(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("abc")
	gb.Insert("xyz", scribecore.Position{Line: 5, Offset: 0})

	assert.Equal(t, "abc", gb.String())
}

func TestDeleteRange(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("Hello, cruel World!")
	gb.Delete(scribecore.NewRange(
		scribecore.Position{Line: 0, Offset: 7},
		scribecore.Position{Line: 0, Offset: 13},
	))

	assert.Equal(t, "Hello, World!", gb.String())
}

func TestDeleteWithUnresolvableEndWidensToNextLine(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("keep\ndrop this line\nkeep too")
	gb.Delete(scribecore.NewRange(
		scribecore.Position{Line: 1, Offset: 0},
		scribecore.Position{Line: 1, Offset: 9999},
	))

	assert.Equal(t, "keep\nkeep too", gb.String())
}

func TestReadReturnsFalseOutOfBounds(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("abc")

	_, ok := gb.Read(scribecore.NewRange(
		scribecore.Position{Line: 0, Offset: 0},
		scribecore.Position{Line: 9, Offset: 0},
	))

	assert.False(t, ok)
}

func TestReadAcrossGap(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("Hello, World!")
	// Force the gap to sit in the middle of the live content.
	gb.Insert("", scribecore.Position{Line: 0, Offset: 7})

	content, ok := gb.Read(scribecore.NewRange(
		scribecore.Position{Line: 0, Offset: 0},
		scribecore.Position{Line: 0, Offset: 13},
	))

	assert.True(t, ok)
	assert.Equal(t, "Hello, World!", content)
}

func TestGraphemeClusterCountsAsSingleOffset(t *testing.T) {
	t.Parallel()

	// "ni" with a combining vowel sign: two code points, one grapheme
	// cluster.
	gb := scribecore.NewGapBuffer("न")
	gb.Insert("ी", scribecore.Position{Line: 0, Offset: 1})

	assert.True(t, gb.InBounds(scribecore.Position{Line: 0, Offset: 1}))
	assert.False(t, gb.InBounds(scribecore.Position{Line: 0, Offset: 2}))
}

func TestInsertForcesGrow(t *testing.T) {
	t.Parallel()

	gb := scribecore.NewGapBuffer("")

	big := make([]byte, 0, 4096)
	for i := 0; i < 2048; i++ {
		big = append(big, 'x')
	}

	gb.Insert(string(big), scribecore.Position{Line: 0, Offset: 0})

	assert.Equal(t, string(big), gb.String())
}
