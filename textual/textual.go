// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package textual implements the line-oriented problem format for external
// collaborators who would rather write a plain-text file than call the Go
// API directly (spec §6.2). A problem file has two sections:
//
//	# constraints
//	point p
//	point q
//	p.x = 0
//	p.y = 0
//	q.y = 0
//	vertical(p, q)
//
//	# guesses
//	p roughly (3, 4)
//	q roughly (5, 6)
//
// Parse turns the text into a Problem (a syntax tree); Problem.Build turns
// that tree into the (requests, guesses) pair solver.Solve expects, in the
// same two-pass order as the textual collaborator this is grounded on:
// first assign every declared datum's variable IDs and initial guesses,
// then build constraints that reference them.
package textual

type declKind int

const (
	declPoint declKind = iota
	declCircle
	declArc
)

type declaration struct {
	kind  declKind
	label string
	line  int
}

type fixing struct {
	path  []string
	value float64
	line  int
}

type relation struct {
	name string
	args []string
	line int
}

type pointGuess struct {
	path []string
	x, y float64
	line int
}

type scalarGuess struct {
	path  []string
	value float64
	line  int
}

// Problem is the parsed syntax tree of a problem file, ready for Build.
type Problem struct {
	decls         []declaration
	fixings       []fixing
	relations     []relation
	pointGuesses  []pointGuess
	scalarGuesses []scalarGuess
}
