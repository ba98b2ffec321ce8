// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chk implements functions for checking numeric results and
// panicking with formatted messages on invariant violations.
package chk

import (
	"fmt"
	"math"
	"testing"
)

// Verbose turns on extra printing from PrintTitle and the test helpers below.
var Verbose = false

// Panic panics with a formatted message. This is reserved for invariant
// violations that indicate a programmer error (e.g. a malformed sparse
// pattern); it must never be reachable from a public Solve call with
// user-supplied input — those paths return errors instead.
func Panic(msg string, args ...interface{}) {
	panic(fmt.Sprintf(msg, args...))
}

// PrintTitle prints a title message if Verbose is on.
func PrintTitle(title string) {
	if Verbose {
		fmt.Printf("\n=== %s ===\n", title)
	}
}

// IntAssert panics unless a == b.
func IntAssert(a, b int) {
	if a != b {
		Panic("int assert failed: %d != %d", a, b)
	}
}

// Float64 checks that actual is within tol of expected, failing the test if not.
func Float64(tst *testing.T, msg string, tol, actual, expected float64) {
	tst.Helper()
	diff := math.Abs(actual - expected)
	if diff > tol {
		tst.Errorf("%s: actual=%v expected=%v diff=%v > tol=%v", msg, actual, expected, diff, tol)
		return
	}
	if Verbose {
		fmt.Printf("%s: ok (diff=%v)\n", msg, diff)
	}
}

// Array checks that actual and expected slices agree within tol element-wise.
// An empty expected slice means "expected all zeros" (matching the teacher's
// chk.Array(tst, msg, tol, fx, []float64{}) idiom for residual-near-zero checks).
func Array(tst *testing.T, msg string, tol float64, actual, expected []float64) {
	tst.Helper()
	if len(expected) == 0 {
		for i, v := range actual {
			if math.Abs(v) > tol {
				tst.Errorf("%s: actual[%d]=%v not within tol=%v of zero", msg, i, v, tol)
			}
		}
		return
	}
	if len(actual) != len(expected) {
		tst.Errorf("%s: length mismatch: len(actual)=%d len(expected)=%d", msg, len(actual), len(expected))
		return
	}
	for i := range actual {
		diff := math.Abs(actual[i] - expected[i])
		if diff > tol {
			tst.Errorf("%s: index %d: actual=%v expected=%v diff=%v > tol=%v", msg, i, actual[i], expected[i], diff, tol)
		}
	}
}
