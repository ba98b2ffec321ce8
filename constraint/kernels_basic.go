// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/dicksontsai/sketchsolve/gm"
	"github.com/dicksontsai/sketchsolve/layout"
)

// Fixed pins a single scalar variable to a target value: f(v) = v - target.
type Fixed struct {
	Var    gm.VarID
	Target float64
}

func (c Fixed) ResidualDim() int { return 1 }

func (c Fixed) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	out[0] = x[lay.IndexOf(c.Var)] - c.Target
	return false
}

func (c Fixed) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	rows[0] = append(rows[0], JacobianVar{ID: c.Var, Partial: 1})
	return false
}

func (c Fixed) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0], c.Var)
}

// ScalarEqual forces two scalar variables to be equal: f(a, b) = a - b.
type ScalarEqual struct {
	A, B gm.VarID
}

func (c ScalarEqual) ResidualDim() int { return 1 }

func (c ScalarEqual) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	out[0] = x[lay.IndexOf(c.A)] - x[lay.IndexOf(c.B)]
	return false
}

func (c ScalarEqual) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	rows[0] = append(rows[0],
		JacobianVar{ID: c.A, Partial: 1},
		JacobianVar{ID: c.B, Partial: -1},
	)
	return false
}

func (c ScalarEqual) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0], c.A, c.B)
}

// Horizontal forces a segment's two endpoints to share the same y: f = p1.y - p0.y.
type Horizontal struct {
	Line gm.LineSegment
}

func (c Horizontal) ResidualDim() int { return 1 }

func (c Horizontal) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	y0 := x[lay.IndexOf(c.Line.P0.Y)]
	y1 := x[lay.IndexOf(c.Line.P1.Y)]
	out[0] = y1 - y0
	return false
}

func (c Horizontal) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	rows[0] = append(rows[0],
		JacobianVar{ID: c.Line.P0.Y, Partial: -1},
		JacobianVar{ID: c.Line.P1.Y, Partial: 1},
	)
	return false
}

func (c Horizontal) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0], c.Line.P0.Y, c.Line.P1.Y)
}

// Vertical forces a segment's two endpoints to share the same x: f = p1.x - p0.x.
type Vertical struct {
	Line gm.LineSegment
}

func (c Vertical) ResidualDim() int { return 1 }

func (c Vertical) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	x0 := x[lay.IndexOf(c.Line.P0.X)]
	x1 := x[lay.IndexOf(c.Line.P1.X)]
	out[0] = x1 - x0
	return false
}

func (c Vertical) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	rows[0] = append(rows[0],
		JacobianVar{ID: c.Line.P0.X, Partial: -1},
		JacobianVar{ID: c.Line.P1.X, Partial: 1},
	)
	return false
}

func (c Vertical) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0], c.Line.P0.X, c.Line.P1.X)
}

// Distance constrains the Euclidean length of a segment: f = |p1-p0| - d.
// Degenerate when the two points coincide, since the gradient of |p1-p0|
// is undefined at zero length (spec §4.1 degeneracy list).
type Distance struct {
	Line gm.LineSegment
	D    gm.Distance
}

func (c Distance) ResidualDim() int { return 1 }

func (c Distance) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	x0, y0 := x[lay.IndexOf(c.Line.P0.X)], x[lay.IndexOf(c.Line.P0.Y)]
	x1, y1 := x[lay.IndexOf(c.Line.P1.X)], x[lay.IndexOf(c.Line.P1.Y)]
	d := x[lay.IndexOf(c.D.D)]
	length := euclideanDistance(x0, y0, x1, y1)
	if length < Epsilon {
		out[0] = 0
		return true
	}
	out[0] = length - d
	return false
}

func (c Distance) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	x0, y0 := x[lay.IndexOf(c.Line.P0.X)], x[lay.IndexOf(c.Line.P0.Y)]
	x1, y1 := x[lay.IndexOf(c.Line.P1.X)], x[lay.IndexOf(c.Line.P1.Y)]
	length := euclideanDistance(x0, y0, x1, y1)
	if length < Epsilon {
		return true
	}
	dx, dy := x1-x0, y1-y0
	rows[0] = append(rows[0],
		JacobianVar{ID: c.Line.P0.X, Partial: -dx / length},
		JacobianVar{ID: c.Line.P0.Y, Partial: -dy / length},
		JacobianVar{ID: c.Line.P1.X, Partial: dx / length},
		JacobianVar{ID: c.Line.P1.Y, Partial: dy / length},
		JacobianVar{ID: c.D.D, Partial: -1},
	)
	return false
}

func (c Distance) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0],
		c.Line.P0.X, c.Line.P0.Y, c.Line.P1.X, c.Line.P1.Y, c.D.D,
	)
}

// HorizontalDistance constrains the signed x-projection of a segment:
// f = (p1.x - p0.x) - d. Unlike Distance this never degenerates, since the
// projection is well defined (and differentiable) even for a zero-length
// segment.
type HorizontalDistance struct {
	Line gm.LineSegment
	D    gm.Distance
}

func (c HorizontalDistance) ResidualDim() int { return 1 }

func (c HorizontalDistance) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	x0 := x[lay.IndexOf(c.Line.P0.X)]
	x1 := x[lay.IndexOf(c.Line.P1.X)]
	d := x[lay.IndexOf(c.D.D)]
	out[0] = (x1 - x0) - d
	return false
}

func (c HorizontalDistance) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	rows[0] = append(rows[0],
		JacobianVar{ID: c.Line.P0.X, Partial: -1},
		JacobianVar{ID: c.Line.P1.X, Partial: 1},
		JacobianVar{ID: c.D.D, Partial: -1},
	)
	return false
}

func (c HorizontalDistance) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0], c.Line.P0.X, c.Line.P1.X, c.D.D)
}

// VerticalDistance constrains the signed y-projection of a segment:
// f = (p1.y - p0.y) - d.
type VerticalDistance struct {
	Line gm.LineSegment
	D    gm.Distance
}

func (c VerticalDistance) ResidualDim() int { return 1 }

func (c VerticalDistance) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	y0 := x[lay.IndexOf(c.Line.P0.Y)]
	y1 := x[lay.IndexOf(c.Line.P1.Y)]
	d := x[lay.IndexOf(c.D.D)]
	out[0] = (y1 - y0) - d
	return false
}

func (c VerticalDistance) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	rows[0] = append(rows[0],
		JacobianVar{ID: c.Line.P0.Y, Partial: -1},
		JacobianVar{ID: c.Line.P1.Y, Partial: 1},
		JacobianVar{ID: c.D.D, Partial: -1},
	)
	return false
}

func (c VerticalDistance) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0], c.Line.P0.Y, c.Line.P1.Y, c.D.D)
}
