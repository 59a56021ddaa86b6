// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     position.go
//
// =============================================================================

package scribecore

import "strings"

// Position is a zero-based (line, offset) coordinate into a buffer's
// contents. `Offset` counts grapheme clusters, not bytes or code points, and
// denotes the gap *between* clusters, fencepost-style: offset 0 is before the
// first cluster of the line, offset N is after the Nth.
//
// Positions compare lexicographically by (Line, Offset).
type Position struct {
	Line   int
	Offset int
}

// Less reports whether p sorts strictly before other.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}

	return p.Offset < other.Offset
}

// LessOrEqual reports whether p sorts at or before other.
func (p Position) LessOrEqual(other Position) bool {
	return p == other || p.Less(other)
}

// Add returns the position reached by advancing p by d. If d spans at least
// one line, the resulting offset is d's offset verbatim (the new line starts
// fresh); otherwise d's offset is added to p's.
//
// See also [DistanceOfString].
func (p Position) Add(d Distance) Position {
	offset := d.Offset
	if d.Lines == 0 {
		offset = p.Offset + d.Offset
	}

	return Position{Line: p.Line + d.Lines, Offset: offset}
}

// Distance is a vector describing the shape of a span, relative to some
// Position, rather than an absolute location like Range.
type Distance struct {
	Lines  int
	Offset int
}

// DistanceOfString returns the Distance covered by inserting s at some
// position: the number of newlines in s, and the grapheme-cluster length of
// the text following the last newline (or of all of s, if it has none).
func DistanceOfString(s string) Distance {
	lines := strings.Count(s, "\n")

	lastLine := s
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		lastLine = s[idx+1:]
	}

	return Distance{Lines: lines, Offset: graphemeCount(lastLine)}
}

// Range is an ordered, half-open span between two Positions: [Start, End).
// The constructor swaps its arguments if given out of order, so a Range is
// always normalized once constructed.
type Range struct {
	Start Position
	End   Position
}

// NewRange builds a Range from two positions, swapping them if start sorts
// after end, so that Range.Start never sorts after Range.End.
func NewRange(start, end Position) Range {
	if end.Less(start) {
		start, end = end, start
	}

	return Range{Start: start, End: end}
}

// Includes reports whether p falls within the half-open span [r.Start, r.End).
func (r Range) Includes(p Position) bool {
	return r.Start.LessOrEqual(p) && p.Less(r.End)
}

// IsValid reports whether the range is non-empty, i.e. Start sorts strictly
// before End.
func (r Range) IsValid() bool {
	return r.Start.Less(r.End)
}

// LineRange is an ordered span of whole lines, [Start, End). The constructor
// swaps its arguments if given out of order.
type LineRange struct {
	Start int
	End   int
}

// NewLineRange builds a LineRange from two line numbers, swapping them if
// start is greater than end.
func NewLineRange(start, end int) LineRange {
	if start > end {
		start, end = end, start
	}

	return LineRange{Start: start, End: end}
}

// ToRange converts the LineRange to a Range with an offset of zero at both
// ends.
func (lr LineRange) ToRange() Range {
	return Range{
		Start: Position{Line: lr.Start, Offset: 0},
		End:   Position{Line: lr.End, Offset: 0},
	}
}

// ToInclusiveRange is like ToRange, but widens the end by one line, so that
// the final line named by the LineRange is fully covered.
func (lr LineRange) ToInclusiveRange() Range {
	return Range{
		Start: Position{Line: lr.Start, Offset: 0},
		End:   Position{Line: lr.End + 1, Offset: 0},
	}
}
