// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/dicksontsai/sketchsolve/constraint"
)

// lint runs the post-construction suggestion pass of spec §4.8: any
// LinesAtAngle.Other(theta) whose theta sits within LintEpsilon of a
// multiple of 90 degrees is flagged, suggesting the dedicated Parallel or
// Perpendicular variant instead.
func (m *Model) lint() {
	for i, c := range m.constraints {
		angle, ok := c.(constraint.LinesAtAngle)
		if !ok || !angle.Kind.IsOther() {
			continue
		}
		theta := math.Mod(angle.Kind.Theta, math.Pi)
		if theta < 0 {
			theta += math.Pi
		}
		switch {
		case theta < constraint.LintEpsilon || math.Pi-theta < constraint.LintEpsilon:
			m.addWarning(i, "angle is near 0/180 degrees; consider Parallel instead of Other")
		case math.Abs(theta-math.Pi/2) < constraint.LintEpsilon:
			m.addWarning(i, "angle is near 90 degrees; consider Perpendicular instead of Other")
		}
	}
}
