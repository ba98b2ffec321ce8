// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"math"

	"github.com/dicksontsai/sketchsolve/gm"
	"github.com/dicksontsai/sketchsolve/layout"
)

// PointsCoincident forces two points to coincide: 2 residuals (x0-x1, y0-y1).
type PointsCoincident struct {
	P0, P1 gm.Point
}

func (c PointsCoincident) ResidualDim() int { return 2 }

func (c PointsCoincident) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	out[0] = x[lay.IndexOf(c.P0.X)] - x[lay.IndexOf(c.P1.X)]
	out[1] = x[lay.IndexOf(c.P0.Y)] - x[lay.IndexOf(c.P1.Y)]
	return false
}

func (c PointsCoincident) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	rows[0] = append(rows[0],
		JacobianVar{ID: c.P0.X, Partial: 1},
		JacobianVar{ID: c.P1.X, Partial: -1},
	)
	rows[1] = append(rows[1],
		JacobianVar{ID: c.P0.Y, Partial: 1},
		JacobianVar{ID: c.P1.Y, Partial: -1},
	)
	return false
}

func (c PointsCoincident) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0], c.P0.X, c.P1.X)
	rows[1] = append(rows[1], c.P0.Y, c.P1.Y)
}

// Midpoint forces m to be the midpoint of segment p0-p1: 2 residuals
// (m.x - (p0.x+p1.x)/2, m.y - (p0.y+p1.y)/2).
type Midpoint struct {
	Segment gm.LineSegment
	M       gm.Point
}

func (c Midpoint) ResidualDim() int { return 2 }

func (c Midpoint) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	p0x, p0y := x[lay.IndexOf(c.Segment.P0.X)], x[lay.IndexOf(c.Segment.P0.Y)]
	p1x, p1y := x[lay.IndexOf(c.Segment.P1.X)], x[lay.IndexOf(c.Segment.P1.Y)]
	mx, my := x[lay.IndexOf(c.M.X)], x[lay.IndexOf(c.M.Y)]
	out[0] = mx - (p0x+p1x)/2
	out[1] = my - (p0y+p1y)/2
	return false
}

func (c Midpoint) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	rows[0] = append(rows[0],
		JacobianVar{ID: c.M.X, Partial: 1},
		JacobianVar{ID: c.Segment.P0.X, Partial: -0.5},
		JacobianVar{ID: c.Segment.P1.X, Partial: -0.5},
	)
	rows[1] = append(rows[1],
		JacobianVar{ID: c.M.Y, Partial: 1},
		JacobianVar{ID: c.Segment.P0.Y, Partial: -0.5},
		JacobianVar{ID: c.Segment.P1.Y, Partial: -0.5},
	)
	return false
}

func (c Midpoint) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0], c.M.X, c.Segment.P0.X, c.Segment.P1.X)
	rows[1] = append(rows[1], c.M.Y, c.Segment.P0.Y, c.Segment.P1.Y)
}

// Symmetric constrains p0 and p1 to be mirror images of one another across
// axis: 2 residuals, (1) the segment p0-p1 is perpendicular to axis's
// direction, and (2) the midpoint of p0-p1 lies on axis's infinite line.
// This is simpler to differentiate than a direct point-reflection formula
// and degenerates under the same condition, a collapsed axis.
type Symmetric struct {
	P0, P1 gm.Point
	Axis   gm.LineSegment
}

func (c Symmetric) ResidualDim() int { return 2 }

func (c Symmetric) axisDir(lay *layout.Layout, x []float64) (dx, dy float64) {
	x0, y0 := x[lay.IndexOf(c.Axis.P0.X)], x[lay.IndexOf(c.Axis.P0.Y)]
	x1, y1 := x[lay.IndexOf(c.Axis.P1.X)], x[lay.IndexOf(c.Axis.P1.Y)]
	return x1 - x0, y1 - y0
}

func (c Symmetric) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	dx, dy := c.axisDir(lay, x)
	if math.Hypot(dx, dy) < Epsilon {
		out[0], out[1] = 0, 0
		return true
	}
	p0x, p0y := x[lay.IndexOf(c.P0.X)], x[lay.IndexOf(c.P0.Y)]
	p1x, p1y := x[lay.IndexOf(c.P1.X)], x[lay.IndexOf(c.P1.Y)]
	vx, vy := p1x-p0x, p1y-p0y
	out[0] = dot2D(vx, vy, dx, dy)

	mx, my := (p0x+p1x)/2, (p0y+p1y)/2
	x0, y0 := x[lay.IndexOf(c.Axis.P0.X)], x[lay.IndexOf(c.Axis.P0.Y)]
	x1, y1 := x[lay.IndexOf(c.Axis.P1.X)], x[lay.IndexOf(c.Axis.P1.Y)]
	g := pointLineDerivatives(mx, my, x0, y0, x1, y1)
	out[1] = g.s
	return false
}

func (c Symmetric) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	dx, dy := c.axisDir(lay, x)
	if math.Hypot(dx, dy) < Epsilon {
		return true
	}
	p0x, p0y := x[lay.IndexOf(c.P0.X)], x[lay.IndexOf(c.P0.Y)]
	p1x, p1y := x[lay.IndexOf(c.P1.X)], x[lay.IndexOf(c.P1.Y)]
	vx, vy := p1x-p0x, p1y-p0y

	// Eq1 = dot(p1-p0, axis.P1-axis.P0).
	rows[0] = append(rows[0],
		JacobianVar{ID: c.P0.X, Partial: -dx},
		JacobianVar{ID: c.P0.Y, Partial: -dy},
		JacobianVar{ID: c.P1.X, Partial: dx},
		JacobianVar{ID: c.P1.Y, Partial: dy},
		JacobianVar{ID: c.Axis.P0.X, Partial: -vx},
		JacobianVar{ID: c.Axis.P0.Y, Partial: -vy},
		JacobianVar{ID: c.Axis.P1.X, Partial: vx},
		JacobianVar{ID: c.Axis.P1.Y, Partial: vy},
	)

	// Eq2 = s(midpoint, axis); chain rule through mx = (p0.x+p1.x)/2 etc.
	mx, my := (p0x+p1x)/2, (p0y+p1y)/2
	x0, y0 := x[lay.IndexOf(c.Axis.P0.X)], x[lay.IndexOf(c.Axis.P0.Y)]
	x1, y1 := x[lay.IndexOf(c.Axis.P1.X)], x[lay.IndexOf(c.Axis.P1.Y)]
	g := pointLineDerivatives(mx, my, x0, y0, x1, y1)
	rows[1] = append(rows[1],
		JacobianVar{ID: c.P0.X, Partial: g.ds_dpx * 0.5},
		JacobianVar{ID: c.P0.Y, Partial: g.ds_dpy * 0.5},
		JacobianVar{ID: c.P1.X, Partial: g.ds_dpx * 0.5},
		JacobianVar{ID: c.P1.Y, Partial: g.ds_dpy * 0.5},
		JacobianVar{ID: c.Axis.P0.X, Partial: g.ds_dx0},
		JacobianVar{ID: c.Axis.P0.Y, Partial: g.ds_dy0},
		JacobianVar{ID: c.Axis.P1.X, Partial: g.ds_dx1},
		JacobianVar{ID: c.Axis.P1.Y, Partial: g.ds_dy1},
	)
	return false
}

func (c Symmetric) Nonzeroes(rows [][]gm.VarID) {
	ids := []gm.VarID{
		c.P0.X, c.P0.Y, c.P1.X, c.P1.Y,
		c.Axis.P0.X, c.Axis.P0.Y, c.Axis.P1.X, c.Axis.P1.Y,
	}
	rows[0] = append(rows[0], ids...)
	rows[1] = append(rows[1], ids...)
}
