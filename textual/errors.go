// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textual

import "github.com/dicksontsai/sketchsolve/io"

// ParseError is a syntax-level failure: a line that matches none of the
// recognized statement forms. Spec §7 classifies this as the textual
// collaborator's own error kind, distinct from the core's InputShape
// errors, which Build raises once parsing has already succeeded.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return io.Sf("textual: line %d: cannot parse %q", e.Line, e.Text)
}

// MissingGuess reports a declared point, circle or arc with no matching
// "roughly" guess. It mirrors the core's own MissingGuess kind but at the
// label level, since no variable ID exists yet at parse time (spec §7:
// "TextualParse ... surfaces as InputShape from the core's viewpoint").
type MissingGuess struct {
	Label string
}

func (e *MissingGuess) Error() string {
	return io.Sf("textual: %q has no guess", e.Label)
}

// UnusedGuesses reports guess statements whose label was never declared.
type UnusedGuesses struct {
	Labels []string
}

func (e *UnusedGuesses) Error() string {
	return io.Sf("textual: unused guesses: %v", e.Labels)
}

// UndefinedLabel reports a constraint statement referencing a label that
// was never declared with a point/circle/arc statement.
type UndefinedLabel struct {
	Label string
}

func (e *UndefinedLabel) Error() string {
	return io.Sf("textual: undefined label %q", e.Label)
}
