// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"math"

	"github.com/dicksontsai/sketchsolve/gm"
	"github.com/dicksontsai/sketchsolve/layout"
)

// LinesEqualLength forces two segments to share the same length:
// f = |l1| - |l0|. Degenerate if either segment has collapsed to a point.
type LinesEqualLength struct {
	L0, L1 gm.LineSegment
}

func (c LinesEqualLength) ResidualDim() int { return 1 }

func (c LinesEqualLength) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	x00, y00 := x[lay.IndexOf(c.L0.P0.X)], x[lay.IndexOf(c.L0.P0.Y)]
	x01, y01 := x[lay.IndexOf(c.L0.P1.X)], x[lay.IndexOf(c.L0.P1.Y)]
	x10, y10 := x[lay.IndexOf(c.L1.P0.X)], x[lay.IndexOf(c.L1.P0.Y)]
	x11, y11 := x[lay.IndexOf(c.L1.P1.X)], x[lay.IndexOf(c.L1.P1.Y)]
	len0 := euclideanDistance(x00, y00, x01, y01)
	len1 := euclideanDistance(x10, y10, x11, y11)
	if len0 < Epsilon || len1 < Epsilon {
		out[0] = 0
		return true
	}
	out[0] = len1 - len0
	return false
}

func (c LinesEqualLength) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	x00, y00 := x[lay.IndexOf(c.L0.P0.X)], x[lay.IndexOf(c.L0.P0.Y)]
	x01, y01 := x[lay.IndexOf(c.L0.P1.X)], x[lay.IndexOf(c.L0.P1.Y)]
	x10, y10 := x[lay.IndexOf(c.L1.P0.X)], x[lay.IndexOf(c.L1.P0.Y)]
	x11, y11 := x[lay.IndexOf(c.L1.P1.X)], x[lay.IndexOf(c.L1.P1.Y)]
	len0 := euclideanDistance(x00, y00, x01, y01)
	len1 := euclideanDistance(x10, y10, x11, y11)
	if len0 < Epsilon || len1 < Epsilon {
		return true
	}
	dx0, dy0 := x01-x00, y01-y00
	dx1, dy1 := x11-x10, y11-y10
	rows[0] = append(rows[0],
		JacobianVar{ID: c.L0.P0.X, Partial: dx0 / len0},
		JacobianVar{ID: c.L0.P0.Y, Partial: dy0 / len0},
		JacobianVar{ID: c.L0.P1.X, Partial: -dx0 / len0},
		JacobianVar{ID: c.L0.P1.Y, Partial: -dy0 / len0},
		JacobianVar{ID: c.L1.P0.X, Partial: -dx1 / len1},
		JacobianVar{ID: c.L1.P0.Y, Partial: -dy1 / len1},
		JacobianVar{ID: c.L1.P1.X, Partial: dx1 / len1},
		JacobianVar{ID: c.L1.P1.Y, Partial: dy1 / len1},
	)
	return false
}

func (c LinesEqualLength) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0],
		c.L0.P0.X, c.L0.P0.Y, c.L0.P1.X, c.L0.P1.Y,
		c.L1.P0.X, c.L1.P0.Y, c.L1.P1.X, c.L1.P1.Y,
	)
}

// LinesAtAngle fixes the angle between two segments' direction vectors,
// per kind (spec §3: Parallel / Perpendicular / Other(theta)). Degenerate
// when either segment has collapsed to a point.
type LinesAtAngle struct {
	L0, L1 gm.LineSegment
	Kind   AngleKind
}

func (c LinesAtAngle) ResidualDim() int { return 1 }

func (c LinesAtAngle) dirs(lay *layout.Layout, x []float64) (dx0, dy0, dx1, dy1 float64) {
	x00, y00 := x[lay.IndexOf(c.L0.P0.X)], x[lay.IndexOf(c.L0.P0.Y)]
	x01, y01 := x[lay.IndexOf(c.L0.P1.X)], x[lay.IndexOf(c.L0.P1.Y)]
	x10, y10 := x[lay.IndexOf(c.L1.P0.X)], x[lay.IndexOf(c.L1.P0.Y)]
	x11, y11 := x[lay.IndexOf(c.L1.P1.X)], x[lay.IndexOf(c.L1.P1.Y)]
	return x01 - x00, y01 - y00, x11 - x10, y11 - y10
}

func (c LinesAtAngle) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	dx0, dy0, dx1, dy1 := c.dirs(lay, x)
	mag0, mag1 := math.Hypot(dx0, dy0), math.Hypot(dx1, dy1)
	if mag0 < Epsilon || mag1 < Epsilon {
		out[0] = 0
		return true
	}
	cross := cross2D(dx0, dy0, dx1, dy1)
	dot := dot2D(dx0, dy0, dx1, dy1)
	switch {
	case c.Kind.IsParallel():
		out[0] = cross
	case c.Kind.IsPerpendicular():
		out[0] = dot
	default:
		out[0] = math.Atan2(cross, dot) - c.Kind.Theta
	}
	return false
}

func (c LinesAtAngle) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	dx0, dy0, dx1, dy1 := c.dirs(lay, x)
	mag0, mag1 := math.Hypot(dx0, dy0), math.Hypot(dx1, dy1)
	if mag0 < Epsilon || mag1 < Epsilon {
		return true
	}

	// Partials of cross = dx0*dy1 - dy0*dx1 and dot = dx0*dx1 + dy0*dy1
	// with respect to each of the 8 endpoint coordinates.
	type pv struct {
		id             gm.VarID
		dCross, dDot   float64
	}
	vars := []pv{
		{c.L0.P0.X, -dy1, -dx1},
		{c.L0.P0.Y, dx1, -dy1},
		{c.L0.P1.X, dy1, dx1},
		{c.L0.P1.Y, -dx1, dy1},
		{c.L1.P0.X, dy0, -dx0},
		{c.L1.P0.Y, -dx0, -dy0},
		{c.L1.P1.X, -dy0, dx0},
		{c.L1.P1.Y, dx0, dy0},
	}

	switch {
	case c.Kind.IsParallel():
		for _, v := range vars {
			rows[0] = append(rows[0], JacobianVar{ID: v.id, Partial: v.dCross})
		}
	case c.Kind.IsPerpendicular():
		for _, v := range vars {
			rows[0] = append(rows[0], JacobianVar{ID: v.id, Partial: v.dDot})
		}
	default:
		cross := cross2D(dx0, dy0, dx1, dy1)
		dot := dot2D(dx0, dy0, dx1, dy1)
		mag2 := cross*cross + dot*dot
		for _, v := range vars {
			partial := (dot*v.dCross - cross*v.dDot) / mag2
			rows[0] = append(rows[0], JacobianVar{ID: v.id, Partial: partial})
		}
	}
	return false
}

func (c LinesAtAngle) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0],
		c.L0.P0.X, c.L0.P0.Y, c.L0.P1.X, c.L0.P1.Y,
		c.L1.P0.X, c.L1.P0.Y, c.L1.P1.X, c.L1.P1.Y,
	)
}

// PointLineDistance constrains the true signed perpendicular distance from a
// point to the infinite line through a segment's endpoints: f = s/h - d,
// where s is the unnormalized cross-product form and h = |line direction|
// (spec §4.1). Degenerate when the line has collapsed to a point.
type PointLineDistance struct {
	P    gm.Point
	Line gm.LineSegment
	D    gm.Distance
}

func (c PointLineDistance) ResidualDim() int { return 1 }

func (c PointLineDistance) geom(lay *layout.Layout, x []float64) pointLineDeriv {
	px, py := x[lay.IndexOf(c.P.X)], x[lay.IndexOf(c.P.Y)]
	x0, y0 := x[lay.IndexOf(c.Line.P0.X)], x[lay.IndexOf(c.Line.P0.Y)]
	x1, y1 := x[lay.IndexOf(c.Line.P1.X)], x[lay.IndexOf(c.Line.P1.Y)]
	return pointLineDerivatives(px, py, x0, y0, x1, y1)
}

func (c PointLineDistance) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	g := c.geom(lay, x)
	if g.h < Epsilon {
		out[0] = 0
		return true
	}
	d := x[lay.IndexOf(c.D.D)]
	out[0] = g.s/g.h - d
	return false
}

func (c PointLineDistance) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	g := c.geom(lay, x)
	if g.h < Epsilon {
		return true
	}
	h2 := g.h * g.h
	rows[0] = append(rows[0],
		JacobianVar{ID: c.P.X, Partial: g.ds_dpx / g.h},
		JacobianVar{ID: c.P.Y, Partial: g.ds_dpy / g.h},
		JacobianVar{ID: c.Line.P0.X, Partial: (g.ds_dx0*g.h - g.s*g.dh_dx0) / h2},
		JacobianVar{ID: c.Line.P0.Y, Partial: (g.ds_dy0*g.h - g.s*g.dh_dy0) / h2},
		JacobianVar{ID: c.Line.P1.X, Partial: (g.ds_dx1*g.h - g.s*g.dh_dx1) / h2},
		JacobianVar{ID: c.Line.P1.Y, Partial: (g.ds_dy1*g.h - g.s*g.dh_dy1) / h2},
		JacobianVar{ID: c.D.D, Partial: -1},
	)
	return false
}

func (c PointLineDistance) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0],
		c.P.X, c.P.Y, c.Line.P0.X, c.Line.P0.Y, c.Line.P1.X, c.Line.P1.Y, c.D.D,
	)
}

// HorizontalPointLineDistance constrains the signed x-offset needed to move
// a point horizontally onto the infinite line through a segment: f = -s/a -
// d, where a is the line's dy (lineCoeffs). Degenerate when the line is
// itself horizontal, since no finite horizontal move then reaches it unless
// the point already lies on it.
type HorizontalPointLineDistance struct {
	P    gm.Point
	Line gm.LineSegment
	D    gm.Distance
}

func (c HorizontalPointLineDistance) ResidualDim() int { return 1 }

func (c HorizontalPointLineDistance) geom(lay *layout.Layout, x []float64) pointLineDeriv {
	px, py := x[lay.IndexOf(c.P.X)], x[lay.IndexOf(c.P.Y)]
	x0, y0 := x[lay.IndexOf(c.Line.P0.X)], x[lay.IndexOf(c.Line.P0.Y)]
	x1, y1 := x[lay.IndexOf(c.Line.P1.X)], x[lay.IndexOf(c.Line.P1.Y)]
	return pointLineDerivatives(px, py, x0, y0, x1, y1)
}

func (c HorizontalPointLineDistance) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	g := c.geom(lay, x)
	if math.Abs(g.a) < Epsilon {
		out[0] = 0
		return true
	}
	d := x[lay.IndexOf(c.D.D)]
	out[0] = -g.s/g.a - d
	return false
}

func (c HorizontalPointLineDistance) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	g := c.geom(lay, x)
	if math.Abs(g.a) < Epsilon {
		return true
	}
	a2 := g.a * g.a
	// da/dy0 = -1, da/dy1 = 1; da/dpx = da/dpy = da/dx0 = da/dx1 = 0.
	rows[0] = append(rows[0],
		JacobianVar{ID: c.P.X, Partial: -g.ds_dpx / g.a},
		JacobianVar{ID: c.P.Y, Partial: -g.ds_dpy / g.a},
		JacobianVar{ID: c.Line.P0.X, Partial: -g.ds_dx0 / g.a},
		JacobianVar{ID: c.Line.P0.Y, Partial: (-g.ds_dy0*g.a + g.s*(-1)) / a2},
		JacobianVar{ID: c.Line.P1.X, Partial: -g.ds_dx1 / g.a},
		JacobianVar{ID: c.Line.P1.Y, Partial: (-g.ds_dy1*g.a + g.s*(1)) / a2},
		JacobianVar{ID: c.D.D, Partial: -1},
	)
	return false
}

func (c HorizontalPointLineDistance) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0],
		c.P.X, c.P.Y, c.Line.P0.X, c.Line.P0.Y, c.Line.P1.X, c.Line.P1.Y, c.D.D,
	)
}

// VerticalPointLineDistance constrains the signed y-offset needed to move a
// point vertically onto the infinite line through a segment: f = -s/b - d,
// where b is the line's -dx. Degenerate when the line is itself vertical.
type VerticalPointLineDistance struct {
	P    gm.Point
	Line gm.LineSegment
	D    gm.Distance
}

func (c VerticalPointLineDistance) ResidualDim() int { return 1 }

func (c VerticalPointLineDistance) geom(lay *layout.Layout, x []float64) pointLineDeriv {
	px, py := x[lay.IndexOf(c.P.X)], x[lay.IndexOf(c.P.Y)]
	x0, y0 := x[lay.IndexOf(c.Line.P0.X)], x[lay.IndexOf(c.Line.P0.Y)]
	x1, y1 := x[lay.IndexOf(c.Line.P1.X)], x[lay.IndexOf(c.Line.P1.Y)]
	return pointLineDerivatives(px, py, x0, y0, x1, y1)
}

func (c VerticalPointLineDistance) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	g := c.geom(lay, x)
	if math.Abs(g.b) < Epsilon {
		out[0] = 0
		return true
	}
	d := x[lay.IndexOf(c.D.D)]
	out[0] = -g.s/g.b - d
	return false
}

func (c VerticalPointLineDistance) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	g := c.geom(lay, x)
	if math.Abs(g.b) < Epsilon {
		return true
	}
	b2 := g.b * g.b
	// db/dx0 = 1, db/dx1 = -1; db/dpx = db/dpy = db/dy0 = db/dy1 = 0.
	rows[0] = append(rows[0],
		JacobianVar{ID: c.P.X, Partial: -g.ds_dpx / g.b},
		JacobianVar{ID: c.P.Y, Partial: -g.ds_dpy / g.b},
		JacobianVar{ID: c.Line.P0.X, Partial: (-g.ds_dx0*g.b + g.s*(1)) / b2},
		JacobianVar{ID: c.Line.P0.Y, Partial: -g.ds_dy0 / g.b},
		JacobianVar{ID: c.Line.P1.X, Partial: (-g.ds_dx1*g.b + g.s*(-1)) / b2},
		JacobianVar{ID: c.Line.P1.Y, Partial: -g.ds_dy1 / g.b},
		JacobianVar{ID: c.D.D, Partial: -1},
	)
	return false
}

func (c VerticalPointLineDistance) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0],
		c.P.X, c.P.Y, c.Line.P0.X, c.Line.P0.Y, c.Line.P1.X, c.Line.P1.Y, c.D.D,
	)
}

// LineTangentToCircle constrains the perpendicular distance from a circle's
// center to a line to equal the circle's radius: f = s/h - r, reusing the
// same signed point-line quotient as PointLineDistance with the circle's
// center as the point and its radius variable in place of a free distance.
type LineTangentToCircle struct {
	Line   gm.LineSegment
	Circle gm.Circle
}

func (c LineTangentToCircle) ResidualDim() int { return 1 }

func (c LineTangentToCircle) geom(lay *layout.Layout, x []float64) pointLineDeriv {
	cx, cy := x[lay.IndexOf(c.Circle.Center.X)], x[lay.IndexOf(c.Circle.Center.Y)]
	x0, y0 := x[lay.IndexOf(c.Line.P0.X)], x[lay.IndexOf(c.Line.P0.Y)]
	x1, y1 := x[lay.IndexOf(c.Line.P1.X)], x[lay.IndexOf(c.Line.P1.Y)]
	return pointLineDerivatives(cx, cy, x0, y0, x1, y1)
}

func (c LineTangentToCircle) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	g := c.geom(lay, x)
	if g.h < Epsilon {
		out[0] = 0
		return true
	}
	r := x[lay.IndexOf(c.Circle.Radius.D)]
	out[0] = g.s/g.h - r
	return false
}

func (c LineTangentToCircle) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	g := c.geom(lay, x)
	if g.h < Epsilon {
		return true
	}
	h2 := g.h * g.h
	rows[0] = append(rows[0],
		JacobianVar{ID: c.Circle.Center.X, Partial: g.ds_dpx / g.h},
		JacobianVar{ID: c.Circle.Center.Y, Partial: g.ds_dpy / g.h},
		JacobianVar{ID: c.Line.P0.X, Partial: (g.ds_dx0*g.h - g.s*g.dh_dx0) / h2},
		JacobianVar{ID: c.Line.P0.Y, Partial: (g.ds_dy0*g.h - g.s*g.dh_dy0) / h2},
		JacobianVar{ID: c.Line.P1.X, Partial: (g.ds_dx1*g.h - g.s*g.dh_dx1) / h2},
		JacobianVar{ID: c.Line.P1.Y, Partial: (g.ds_dy1*g.h - g.s*g.dh_dy1) / h2},
		JacobianVar{ID: c.Circle.Radius.D, Partial: -1},
	)
	return false
}

func (c LineTangentToCircle) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0],
		c.Circle.Center.X, c.Circle.Center.Y,
		c.Line.P0.X, c.Line.P0.Y, c.Line.P1.X, c.Line.P1.Y,
		c.Circle.Radius.D,
	)
}
