// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     syntaxdef/scope_test.go
//
// =============================================================================

package syntaxdef_test

import (
	"testing"

	"github.com/rcsaszar/scribecore/syntaxdef"
	"github.com/stretchr/testify/assert"
)

func TestStackPushPop(t *testing.T) {
	t.Parallel()

	stack := syntaxdef.NewStack()
	stack = stack.Push("source.go")
	stack = stack.Push("meta.function.go")

	assert.Equal(t, []string{"source.go", "meta.function.go"}, stack.Scopes())

	stack = stack.Pop()
	assert.Equal(t, []string{"source.go"}, stack.Scopes())
}

func TestStackPopOnEmptyIsNoOp(t *testing.T) {
	t.Parallel()

	stack := syntaxdef.NewStack()
	stack = stack.Pop()

	assert.Empty(t, stack.Scopes())
}

func TestStackPushIsImmutable(t *testing.T) {
	t.Parallel()

	base := syntaxdef.NewStack().Push("source.go")
	derived := base.Push("meta.function.go")

	assert.Equal(t, []string{"source.go"}, base.Scopes(), "pushing onto derived must not mutate base")
	assert.Equal(t, []string{"source.go", "meta.function.go"}, derived.Scopes())
}

func TestStackApply(t *testing.T) {
	t.Parallel()

	stack := syntaxdef.NewStack()
	stack = stack.Apply(syntaxdef.Change{Op: syntaxdef.Push, Scope: "source.go"})
	stack = stack.Apply(syntaxdef.Change{Op: syntaxdef.Pop})

	assert.Empty(t, stack.Scopes())
}

func TestStackEqual(t *testing.T) {
	t.Parallel()

	a := syntaxdef.NewStack().Push("source.go")
	b := syntaxdef.NewStack().Push("source.go")
	c := syntaxdef.NewStack().Push("source.rs")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
