// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package io implements small formatted-print helpers used throughout the
// module instead of scattering fmt.Printf/fmt.Sprintf calls directly.
package io

import "fmt"

// Pf prints a formatted message to stdout.
func Pf(msg string, args ...interface{}) {
	fmt.Printf(msg, args...)
}

// Sf formats a message into a string.
func Sf(msg string, args ...interface{}) string {
	return fmt.Sprintf(msg, args...)
}

// PfYel prints a formatted message in yellow.
func PfYel(msg string, args ...interface{}) {
	fmt.Printf("\x1b[33m"+msg+"\x1b[0m", args...)
}

// PfRed prints a formatted message in red.
func PfRed(msg string, args ...interface{}) {
	fmt.Printf("\x1b[31m"+msg+"\x1b[0m", args...)
}
