// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     history_test.go
//
// =============================================================================

package scribecore_test

import (
	"testing"

	"github.com/rcsaszar/scribecore"
	"github.com/stretchr/testify/assert"
)

func TestHistoryHasNoMarkUntilMarked(t *testing.T) {
	t.Parallel()

	history := scribecore.NewHistory()

	assert.False(t, history.AtMark(), "a fresh history has no mark yet")

	history.Mark()
	assert.True(t, history.AtMark())
}

func TestHistoryAddClearsRedoStack(t *testing.T) {
	t.Parallel()

	history := scribecore.NewHistory()
	op1 := scribecore.NewInsertOp("a", scribecore.Position{})
	op2 := scribecore.NewInsertOp("b", scribecore.Position{})

	history.Add(op1)
	_, ok := history.Previous()
	assert.True(t, ok)

	history.Add(op2)

	_, ok = history.Next()
	assert.False(t, ok, "adding a new operation should discard the redo stack")
}

func TestHistoryMarkClearedWhenUnreachable(t *testing.T) {
	t.Parallel()

	history := scribecore.NewHistory()
	op1 := scribecore.NewInsertOp("a", scribecore.Position{})
	op2 := scribecore.NewInsertOp("b", scribecore.Position{})

	history.Add(op1)
	history.Mark()

	_, ok := history.Previous()
	assert.True(t, ok)

	history.Add(op2)

	assert.False(t, history.AtMark(), "the mark pointed past an edit this add replaced, so it's cleared")
}

func TestHistoryPreviousThenNextRoundtrips(t *testing.T) {
	t.Parallel()

	history := scribecore.NewHistory()
	op := scribecore.NewInsertOp("a", scribecore.Position{})
	history.Add(op)

	popped, ok := history.Previous()
	assert.True(t, ok)
	assert.Same(t, op, popped)

	redone, ok := history.Next()
	assert.True(t, ok)
	assert.NotNil(t, redone)
}

func TestHistoryPreviousOnEmptyFails(t *testing.T) {
	t.Parallel()

	history := scribecore.NewHistory()

	_, ok := history.Previous()
	assert.False(t, ok)
}
