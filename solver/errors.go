// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements the damped Gauss-Newton driver (spec §4.3), the
// sparsity/Jacobian-cache assembly (spec §4.2), Tikhonov regularization
// (spec §4.5), SVD-based freedom analysis (spec §4.6), the priority
// scheduler (spec §4.7) and the warning/lint layer (spec §4.8).
package solver

import "fmt"

// WrongNumberGuesses reports that the guess vector's length does not match
// the number of distinct variables referenced by the constraint set.
type WrongNumberGuesses struct {
	Vars    int
	Guesses int
}

func (e *WrongNumberGuesses) Error() string {
	return fmt.Sprintf("solver: %d variables referenced but %d guesses supplied", e.Vars, e.Guesses)
}

// MissingGuess reports a constraint referencing a variable with no initial
// guess.
type MissingGuess struct {
	ConstraintIndex int
	Variable        uint
}

func (e *MissingGuess) Error() string {
	return fmt.Sprintf("solver: constraint %d references variable %d with no initial guess", e.ConstraintIndex, e.Variable)
}

// UnusedGuesses reports guesses supplied for variables no constraint
// references.
type UnusedGuesses struct {
	Labels []string
}

func (e *UnusedGuesses) Error() string {
	return fmt.Sprintf("solver: %d guesses reference variables no constraint uses: %v", len(e.Labels), e.Labels)
}

// EmptySystem reports that solve was called with zero constraints.
type EmptySystem struct{}

func (e *EmptySystem) Error() string { return "solver: empty constraint system" }

// DidNotConverge reports that the Newton driver exhausted max_iterations.
type DidNotConverge struct {
	Iterations int
	FinalNormF float64
}

func (e *DidNotConverge) Error() string {
	return fmt.Sprintf("solver: did not converge after %d iterations (||F||=%g)", e.Iterations, e.FinalNormF)
}

// LineSearchFailed reports that the divergence-guard backtracking line
// search could not find a step that decreases the residual.
type LineSearchFailed struct {
	Iteration int
}

func (e *LineSearchFailed) Error() string {
	return fmt.Sprintf("solver: line search failed to find a decreasing step at iteration %d", e.Iteration)
}

// SingularMatrix reports that both the primary factorization and its QR
// fallback failed.
type SingularMatrix struct {
	Iteration int
}

func (e *SingularMatrix) Error() string {
	return fmt.Sprintf("solver: singular Jacobian at iteration %d (QR fallback also failed)", e.Iteration)
}

// SvdFailed reports that freedom analysis's SVD did not converge.
type SvdFailed struct{}

func (e *SvdFailed) Error() string { return "solver: SVD failed to converge during freedom analysis" }

// Cancelled reports that the iteration callback requested cancellation.
type Cancelled struct {
	Iteration int
}

func (e *Cancelled) Error() string {
	return fmt.Sprintf("solver: cancelled at iteration %d", e.Iteration)
}
