// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/dicksontsai/sketchsolve/gm"
	"github.com/dicksontsai/sketchsolve/layout"
)

// CircleRadius pins a circle's radius variable to a literal target: f =
// circle.Radius - r.
type CircleRadius struct {
	Circle gm.Circle
	R      float64
}

func (c CircleRadius) ResidualDim() int { return 1 }

func (c CircleRadius) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	out[0] = x[lay.IndexOf(c.Circle.Radius.D)] - c.R
	return false
}

func (c CircleRadius) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	rows[0] = append(rows[0], JacobianVar{ID: c.Circle.Radius.D, Partial: 1})
	return false
}

func (c CircleRadius) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0], c.Circle.Radius.D)
}

// ArcRadius pins an arc's implied radius, |center-start|, to a literal
// target: f = |center-start| - r. Degenerate if center and start coincide.
type ArcRadius struct {
	Arc gm.Arc
	R   float64
}

func (c ArcRadius) ResidualDim() int { return 1 }

func (c ArcRadius) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	cx, cy := x[lay.IndexOf(c.Arc.Center.X)], x[lay.IndexOf(c.Arc.Center.Y)]
	sx, sy := x[lay.IndexOf(c.Arc.Start.X)], x[lay.IndexOf(c.Arc.Start.Y)]
	r := euclideanDistance(cx, cy, sx, sy)
	if r < Epsilon {
		out[0] = 0
		return true
	}
	out[0] = r - c.R
	return false
}

func (c ArcRadius) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	cx, cy := x[lay.IndexOf(c.Arc.Center.X)], x[lay.IndexOf(c.Arc.Center.Y)]
	sx, sy := x[lay.IndexOf(c.Arc.Start.X)], x[lay.IndexOf(c.Arc.Start.Y)]
	r := euclideanDistance(cx, cy, sx, sy)
	if r < Epsilon {
		return true
	}
	dx, dy := sx-cx, sy-cy
	rows[0] = append(rows[0],
		JacobianVar{ID: c.Arc.Center.X, Partial: -dx / r},
		JacobianVar{ID: c.Arc.Center.Y, Partial: -dy / r},
		JacobianVar{ID: c.Arc.Start.X, Partial: dx / r},
		JacobianVar{ID: c.Arc.Start.Y, Partial: dy / r},
	)
	return false
}

func (c ArcRadius) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0], c.Arc.Center.X, c.Arc.Center.Y, c.Arc.Start.X, c.Arc.Start.Y)
}

// ArcLength constrains R*deltaTheta = L, where R = |center-start| and
// deltaTheta is the counter-clockwise sweep from start to end normalized to
// [0, 2*pi) (spec §4.1). Degenerate if center coincides with either start
// or end, since both R and the angle gradients are then undefined.
type ArcLength struct {
	Arc gm.Arc
	L   float64
}

func (c ArcLength) ResidualDim() int { return 1 }

func (c ArcLength) geom(lay *layout.Layout, x []float64) (r float64, delta float64, ok bool,
	dR_dcx, dR_dcy, dR_dsx, dR_dsy float64,
	dDelta_dcx, dDelta_dcy, dDelta_dsx, dDelta_dsy, dDelta_dex, dDelta_dey float64) {

	cx, cy := x[lay.IndexOf(c.Arc.Center.X)], x[lay.IndexOf(c.Arc.Center.Y)]
	sx, sy := x[lay.IndexOf(c.Arc.Start.X)], x[lay.IndexOf(c.Arc.Start.Y)]
	ex, ey := x[lay.IndexOf(c.Arc.End.X)], x[lay.IndexOf(c.Arc.End.Y)]

	r = euclideanDistance(cx, cy, sx, sy)
	endR := euclideanDistance(cx, cy, ex, ey)
	if r < Epsilon || endR < Epsilon {
		return 0, 0, false, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0
	}

	thetaStart, dStart_dcx, dStart_dcy, dStart_dsx, dStart_dsy := angleAndGradient(cx, cy, sx, sy)
	thetaEnd, dEnd_dcx, dEnd_dcy, dEnd_dex, dEnd_dey := angleAndGradient(cx, cy, ex, ey)
	delta = normalizeAngle(thetaEnd - thetaStart)

	dx, dy := sx-cx, sy-cy
	dR_dcx, dR_dcy = -dx/r, -dy/r
	dR_dsx, dR_dsy = dx/r, dy/r

	dDelta_dcx = dEnd_dcx - dStart_dcx
	dDelta_dcy = dEnd_dcy - dStart_dcy
	dDelta_dsx = -dStart_dsx
	dDelta_dsy = -dStart_dsy
	dDelta_dex = dEnd_dex
	dDelta_dey = dEnd_dey
	return r, delta, true, dR_dcx, dR_dcy, dR_dsx, dR_dsy,
		dDelta_dcx, dDelta_dcy, dDelta_dsx, dDelta_dsy, dDelta_dex, dDelta_dey
}

func (c ArcLength) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	r, delta, ok, _, _, _, _, _, _, _, _, _, _ := c.geom(lay, x)
	if !ok {
		out[0] = 0
		return true
	}
	out[0] = r*delta - c.L
	return false
}

func (c ArcLength) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	r, delta, ok, dR_dcx, dR_dcy, dR_dsx, dR_dsy,
		dDelta_dcx, dDelta_dcy, dDelta_dsx, dDelta_dsy, dDelta_dex, dDelta_dey := c.geom(lay, x)
	if !ok {
		return true
	}
	// f = R*delta - L; product rule on each variable.
	rows[0] = append(rows[0],
		JacobianVar{ID: c.Arc.Center.X, Partial: dR_dcx*delta + r*dDelta_dcx},
		JacobianVar{ID: c.Arc.Center.Y, Partial: dR_dcy*delta + r*dDelta_dcy},
		JacobianVar{ID: c.Arc.Start.X, Partial: dR_dsx*delta + r*dDelta_dsx},
		JacobianVar{ID: c.Arc.Start.Y, Partial: dR_dsy*delta + r*dDelta_dsy},
		JacobianVar{ID: c.Arc.End.X, Partial: r * dDelta_dex},
		JacobianVar{ID: c.Arc.End.Y, Partial: r * dDelta_dey},
	)
	return false
}

func (c ArcLength) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0],
		c.Arc.Center.X, c.Arc.Center.Y,
		c.Arc.Start.X, c.Arc.Start.Y,
		c.Arc.End.X, c.Arc.End.Y,
	)
}

// Arc enforces that start and end lie at equal distance from center:
// f = |center-start|^2 - |center-end|^2. Expressed in squared form so it is
// a smooth polynomial with no degeneracy (spec §4.1, §9: resolved to the
// single literal equation given there rather than a second orientation row).
type Arc struct {
	Arc gm.Arc
}

func (c Arc) ResidualDim() int { return 1 }

func (c Arc) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	cx, cy := x[lay.IndexOf(c.Arc.Center.X)], x[lay.IndexOf(c.Arc.Center.Y)]
	sx, sy := x[lay.IndexOf(c.Arc.Start.X)], x[lay.IndexOf(c.Arc.Start.Y)]
	ex, ey := x[lay.IndexOf(c.Arc.End.X)], x[lay.IndexOf(c.Arc.End.Y)]
	sdx, sdy := sx-cx, sy-cy
	edx, edy := ex-cx, ey-cy
	out[0] = (sdx*sdx + sdy*sdy) - (edx*edx + edy*edy)
	return false
}

func (c Arc) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	cx, cy := x[lay.IndexOf(c.Arc.Center.X)], x[lay.IndexOf(c.Arc.Center.Y)]
	sx, sy := x[lay.IndexOf(c.Arc.Start.X)], x[lay.IndexOf(c.Arc.Start.Y)]
	ex, ey := x[lay.IndexOf(c.Arc.End.X)], x[lay.IndexOf(c.Arc.End.Y)]
	rows[0] = append(rows[0],
		JacobianVar{ID: c.Arc.Center.X, Partial: 2 * (ex - sx)},
		JacobianVar{ID: c.Arc.Center.Y, Partial: 2 * (ey - sy)},
		JacobianVar{ID: c.Arc.Start.X, Partial: 2 * (sx - cx)},
		JacobianVar{ID: c.Arc.Start.Y, Partial: 2 * (sy - cy)},
		JacobianVar{ID: c.Arc.End.X, Partial: -2 * (ex - cx)},
		JacobianVar{ID: c.Arc.End.Y, Partial: -2 * (ey - cy)},
	)
	return false
}

func (c Arc) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0],
		c.Arc.Center.X, c.Arc.Center.Y,
		c.Arc.Start.X, c.Arc.Start.Y,
		c.Arc.End.X, c.Arc.End.Y,
	)
}

// PointArcCoincident constrains a point to lie on an arc's underlying
// circle (radius taken as |start-center|, per ArcLength's convention):
// f = |p-center| - |start-center|. The arc's span is not hard-enforced
// (spec §4.1, §9). Degenerate if p or start coincides with center.
type PointArcCoincident struct {
	Arc gm.Arc
	P   gm.Point
}

func (c PointArcCoincident) ResidualDim() int { return 1 }

func (c PointArcCoincident) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	cx, cy := x[lay.IndexOf(c.Arc.Center.X)], x[lay.IndexOf(c.Arc.Center.Y)]
	sx, sy := x[lay.IndexOf(c.Arc.Start.X)], x[lay.IndexOf(c.Arc.Start.Y)]
	px, py := x[lay.IndexOf(c.P.X)], x[lay.IndexOf(c.P.Y)]
	dp := euclideanDistance(px, py, cx, cy)
	r := euclideanDistance(sx, sy, cx, cy)
	if dp < Epsilon || r < Epsilon {
		out[0] = 0
		return true
	}
	out[0] = dp - r
	return false
}

func (c PointArcCoincident) JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) bool {
	cx, cy := x[lay.IndexOf(c.Arc.Center.X)], x[lay.IndexOf(c.Arc.Center.Y)]
	sx, sy := x[lay.IndexOf(c.Arc.Start.X)], x[lay.IndexOf(c.Arc.Start.Y)]
	px, py := x[lay.IndexOf(c.P.X)], x[lay.IndexOf(c.P.Y)]
	dp := euclideanDistance(px, py, cx, cy)
	r := euclideanDistance(sx, sy, cx, cy)
	if dp < Epsilon || r < Epsilon {
		return true
	}
	pdx, pdy := px-cx, py-cy
	sdx, sdy := sx-cx, sy-cy
	rows[0] = append(rows[0],
		JacobianVar{ID: c.P.X, Partial: pdx / dp},
		JacobianVar{ID: c.P.Y, Partial: pdy / dp},
		JacobianVar{ID: c.Arc.Center.X, Partial: -pdx/dp + sdx/r},
		JacobianVar{ID: c.Arc.Center.Y, Partial: -pdy/dp + sdy/r},
		JacobianVar{ID: c.Arc.Start.X, Partial: -sdx / r},
		JacobianVar{ID: c.Arc.Start.Y, Partial: -sdy / r},
	)
	return false
}

func (c PointArcCoincident) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0],
		c.P.X, c.P.Y,
		c.Arc.Center.X, c.Arc.Center.Y,
		c.Arc.Start.X, c.Arc.Start.Y,
	)
}
