// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

// AngleKind selects which flavor of LinesAtAngle a constraint enforces
// (spec §3: "LinesAtAngle(l0, l1, kind) with kind ∈ {Parallel,
// Perpendicular, Other(angle)}").
type AngleKind struct {
	tag   angleTag
	Theta float64 // radians; only meaningful when tag == angleOther
}

type angleTag int

const (
	angleParallel angleTag = iota
	anglePerpendicular
	angleOther
)

// Parallel requires the two lines' direction vectors to be parallel.
func Parallel() AngleKind { return AngleKind{tag: angleParallel} }

// Perpendicular requires the two lines' direction vectors to be orthogonal.
func Perpendicular() AngleKind { return AngleKind{tag: anglePerpendicular} }

// OtherAngle requires the signed angle from l0 to l1 to equal thetaRadians.
func OtherAngle(thetaRadians float64) AngleKind {
	return AngleKind{tag: angleOther, Theta: thetaRadians}
}

// IsParallel reports whether this is the Parallel variant.
func (k AngleKind) IsParallel() bool { return k.tag == angleParallel }

// IsPerpendicular reports whether this is the Perpendicular variant.
func (k AngleKind) IsPerpendicular() bool { return k.tag == anglePerpendicular }

// IsOther reports whether this is the Other(angle) variant.
func (k AngleKind) IsOther() bool { return k.tag == angleOther }
