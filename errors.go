// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     errors.go
//
// =============================================================================

package scribecore

import "github.com/pkg/errors"

// Sentinel errors returned by Buffer and Workspace operations. Wrap errors
// from lower layers (file I/O, syntax loading) with [errors.Wrap] so callers
// can still recover the sentinel via [errors.Cause] or errors.Is.
var (
	// ErrMissingPath is returned by Save or Reload when the buffer has no
	// associated path.
	ErrMissingPath = errors.New("buffer has no associated path")

	// ErrMissingSyntax is returned when an operation needs a syntax
	// definition but the buffer has none configured.
	ErrMissingSyntax = errors.New("buffer has no syntax definition configured")

	// ErrMissingScope is returned by CurrentScope when no lexeme precedes
	// the cursor.
	ErrMissingScope = errors.New("no scope found at or before the cursor")

	// ErrEmptyWorkspace is returned by workspace operations that require a
	// selected buffer when none exists.
	ErrEmptyWorkspace = errors.New("workspace has no current buffer")
)
