// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import "math"

// euclideanDistance returns the straight-line distance between two points.
func euclideanDistance(x0, y0, x1, y1 float64) float64 {
	dx, dy := x0-x1, y0-y1
	return math.Sqrt(dx*dx + dy*dy)
}

// cross2D returns the 2D cross product (scalar) of (ax, ay) and (bx, by).
func cross2D(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}

// dot2D returns the dot product of (ax, ay) and (bx, by).
func dot2D(ax, ay, bx, by float64) float64 {
	return ax*bx + ay*by
}

// lineCoeffs returns the implicit-form coefficients (a, b, c) of the line
// through (x0,y0)-(x1,y1), i.e. a*x + b*y + c = 0, with a = dy, b = -dx,
// c = -(a*x0 + b*y0). Note (a,b) has magnitude equal to the segment length
// (not a unit normal); PointLineDistance divides by hypot(a,b) where a true
// signed distance is needed, while HorizontalPointLineDistance/
// VerticalPointLineDistance divide by a or b alone, which already yields the
// true axis-aligned offset (see their doc comments).
func lineCoeffs(x0, y0, x1, y1 float64) (a, b, c float64) {
	a = y1 - y0
	b = -(x1 - x0)
	c = -(a*x0 + b*y0)
	return
}

// angleAndGradient returns atan2(vy, vx) for v = point - center, plus the
// partial derivatives of that angle with respect to center and point
// coordinates. Used by ArcLength, whose residual depends on the
// counter-clockwise sweep angle between two points around a center.
func angleAndGradient(cx, cy, px, py float64) (theta, dTheta_dcx, dTheta_dcy, dTheta_dpx, dTheta_dpy float64) {
	vx, vy := px-cx, py-cy
	mag2 := vx*vx + vy*vy
	theta = math.Atan2(vy, vx)
	if mag2 < Epsilon*Epsilon {
		return theta, 0, 0, 0, 0
	}
	// d(atan2(vy,vx))/dvx = -vy/mag2 ; d/dvy = vx/mag2
	dTheta_dvx := -vy / mag2
	dTheta_dvy := vx / mag2
	// vx = px - cx, vy = py - cy
	dTheta_dpx = dTheta_dvx
	dTheta_dpy = dTheta_dvy
	dTheta_dcx = -dTheta_dvx
	dTheta_dcy = -dTheta_dvy
	return
}

// pointLineDeriv bundles the signed, unnormalized point-to-line value
// s = a*(px-x0) + b*(py-y0) (a Shoelace-style cross product: it equals the
// true perpendicular distance times the segment length hypot(a,b)) together
// with its partial derivatives and those of a, b, and hypot(a,b). Every
// point/line-distance kernel (PointLineDistance, HorizontalPointLineDistance,
// VerticalPointLineDistance, LineTangentToCircle, the Symmetric
// midpoint-on-axis row) is a different quotient built from these same six
// numbers, so the chain rule is worked out once here.
type pointLineDeriv struct {
	s, a, b, h                     float64
	ds_dpx, ds_dpy                 float64
	ds_dx0, ds_dy0, ds_dx1, ds_dy1 float64
	dh_dx0, dh_dy0, dh_dx1, dh_dy1 float64
}

func pointLineDerivatives(px, py, x0, y0, x1, y1 float64) pointLineDeriv {
	a, b, _ := lineCoeffs(x0, y0, x1, y1)
	dx0, dy0 := px-x0, py-y0
	s := a*dx0 + b*dy0
	h := math.Hypot(a, b)
	d := pointLineDeriv{
		s: s, a: a, b: b, h: h,
		ds_dpx: a, ds_dpy: b,
		ds_dx0: -a + dy0, ds_dy0: -dx0 - b,
		ds_dx1: -dy0, ds_dy1: dx0,
	}
	if h > 0 {
		// da/dy0=-1, da/dy1=1, db/dx0=1, db/dx1=-1; dh/dv = (a*da/dv+b*db/dv)/h
		d.dh_dx0 = b / h
		d.dh_dy0 = -a / h
		d.dh_dx1 = -b / h
		d.dh_dy1 = a / h
	}
	return d
}

// normalizeAngle wraps theta into [0, 2*pi).
func normalizeAngle(theta float64) float64 {
	const twoPi = 2 * math.Pi
	theta = math.Mod(theta, twoPi)
	if theta < 0 {
		theta += twoPi
	}
	return theta
}
