// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     cmd/demo/main.go
//
// =============================================================================

package main

import (
	"fmt"
	"os"
	"strings"

	"atomicgo.dev/cursor"
	"github.com/atotto/clipboard"
	"github.com/mattn/go-runewidth"
	"github.com/rcsaszar/scribecore"
	"github.com/rcsaszar/scribecore/syntaxdef"
)

// renderCurrentLine prints the buffer's current line and walks the terminal
// cursor back from the end of the printed text to the editor cursor's
// column, measuring display width (not byte or rune count) so that
// full-width runes land the terminal cursor in the right place.
func renderCurrentLine(buffer *scribecore.Buffer) {
	cursor.ClearLine()

	pos := buffer.Cursor().Position()

	lines := strings.Split(buffer.Data(), "\n")

	line := ""
	if pos.Line < len(lines) {
		line = lines[pos.Line]
	}

	fmt.Print(line)

	lineRunes := []rune(line)

	prefix := line
	if pos.Offset <= len(lineRunes) {
		prefix = string(lineRunes[:pos.Offset])
	}

	if back := runewidth.StringWidth(line) - runewidth.StringWidth(prefix); back > 0 {
		cursor.Left(back)
	}
}

func main() {
	cursor.Hide()
	defer cursor.Show()

	// Create an empty buffer and insert some text into it.
	buffer := scribecore.NewBuffer()
	buffer.Insert("package main\n\nfunc main() {\n")
	fmt.Println(buffer.Data())
	renderCurrentLine(buffer)
	fmt.Println()
	fmt.Println("================================================================================")

	// Wire up a syntax set and watch the current scope at the cursor.
	set := syntaxdef.NewDefaultSet()
	buffer.SetSyntax(set, set.PlainText())

	scope, err := buffer.CurrentScope()
	if err != nil {
		fmt.Println("no scope yet:", err)
	} else {
		fmt.Println("scope at cursor:", scope.Scopes())
	}

	fmt.Println("================================================================================")

	// Undo the insertion, then redo it.
	buffer.Undo()
	fmt.Printf("after undo: %q\n", buffer.Data())

	buffer.Redo()
	fmt.Printf("after redo: %q\n", buffer.Data())

	fmt.Println("================================================================================")

	// Copy the buffer's content to the system clipboard, if one is
	// available (headless CI environments have none, so the error is
	// reported but not fatal).
	if err := clipboard.WriteAll(buffer.Data()); err != nil {
		fmt.Println("clipboard unavailable:", err)
	}

	fmt.Println("================================================================================")

	// A workspace manages several buffers, rooted at a directory, with its
	// own syntax set (buffer already carries one, so AddBuffer leaves it
	// alone).
	root, err := os.Getwd()
	if err != nil {
		fmt.Println("resolving workspace root:", err)
		return
	}

	workspace, err := scribecore.NewWorkspace(root, "")
	if err != nil {
		fmt.Println("creating workspace:", err)
		return
	}

	workspace.AddBuffer(buffer)

	scratch := scribecore.NewBuffer()
	scratch.Insert("a second buffer\n")
	workspace.AddBuffer(scratch)

	for i := 0; i < 2; i++ {
		current, err := workspace.CurrentBuffer()
		if err != nil {
			break
		}

		fmt.Printf("buffer %d: %q\n", workspace.CurrentBufferIndex(), current.Data())

		if err := workspace.NextBuffer(); err != nil {
			break
		}
	}
}
