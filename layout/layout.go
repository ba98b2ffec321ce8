// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout implements the variable-to-column mapping shared by the
// constraint kernels and the solver's sparsity assembly (spec §3, "Layout").
// It is a separate package (rather than living inside either constraint or
// solver) purely to break the import cycle: every constraint kernel needs
// index_of to translate a variable ID into a residual-vector/Jacobian
// column, and the solver package needs the same Layout to build both the
// constraint catalog and the sparsity pattern.
package layout

import (
	"github.com/dicksontsai/sketchsolve/chk"
	"github.com/dicksontsai/sketchsolve/gm"
)

// Layout maps each variable ID that appears in a problem's initial guesses
// to a dense column index 0..N-1, matching guess order.
type Layout struct {
	ids      []gm.VarID
	indexOf  map[gm.VarID]int
}

// New builds a Layout from an ordered list of variable IDs (in the order of
// the initial guesses). The column index of ids[i] is i.
func New(ids []gm.VarID) *Layout {
	idx := make(map[gm.VarID]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}
	return &Layout{ids: ids, indexOf: idx}
}

// NumVars returns N, the number of variables (columns).
func (l *Layout) NumVars() int { return len(l.ids) }

// IndexOf returns the column index of a variable ID. It panics if the ID
// was never registered — by construction time every constraint's variables
// must already have guesses (spec §4.2 step 1, MissingGuess validation),
// so reaching an unregistered ID here is an assembly bug, not user input.
func (l *Layout) IndexOf(id gm.VarID) int {
	idx, ok := l.indexOf[id]
	if !ok {
		chk.Panic("layout: variable %d has no guess / column assigned", id)
	}
	return idx
}

// HasVar reports whether id has an assigned column, used by the
// MissingGuess validation pass before it becomes a panic-worthy invariant.
func (l *Layout) HasVar(id gm.VarID) bool {
	_, ok := l.indexOf[id]
	return ok
}

// IDs returns the ordered variable IDs (index i corresponds to column i).
func (l *Layout) IDs() []gm.VarID { return l.ids }
