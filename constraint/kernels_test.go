// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"fmt"
	"testing"

	"github.com/dicksontsai/sketchsolve/chk"
	"github.com/dicksontsai/sketchsolve/gm"
	"github.com/dicksontsai/sketchsolve/layout"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// checkAnalyticJacobian cross-checks c's analytic JacobianRows against
// gonum/diff/fd's numerical differencing of Residual, matching the role
// NlSolver.numJ plays against an analytic Jacobian in the teacher.
func checkAnalyticJacobian(t *testing.T, c Constraint, lay *layout.Layout, x []float64) {
	dim := c.ResidualDim()
	n := lay.NumVars()

	rows := make([][]JacobianVar, dim)
	degenerate := c.JacobianRows(lay, x, rows)
	if degenerate {
		t.Fatalf("unexpected degenerate configuration at x=%v", x)
	}

	analytic := mat.NewDense(dim, n, nil)
	for i, row := range rows {
		for _, jv := range row {
			j := lay.IndexOf(jv.ID)
			analytic.Set(i, j, analytic.At(i, j)+jv.Partial)
		}
	}

	f := func(dst, xx []float64) {
		out := make([]float64, dim)
		c.Residual(lay, xx, out)
		copy(dst, out)
	}
	numeric := mat.NewDense(dim, n, nil)
	fd.Jacobian(numeric, f, x, nil)

	for i := 0; i < dim; i++ {
		got := make([]float64, n)
		want := make([]float64, n)
		for j := 0; j < n; j++ {
			got[j] = analytic.At(i, j)
			want[j] = numeric.At(i, j)
		}
		chk.Array(t, fmt.Sprintf("row %d analytic == numeric? ", i), 1e-5, got, want)
	}
}

func TestFixedJacobian(t *testing.T) {
	g := &gm.IDGenerator{}
	p := gm.NewPoint(g)
	lay := layout.New(p.IDs())
	x := []float64{1.7, -2.3}
	c := Fixed{Var: p.X, Target: 0.5}
	checkAnalyticJacobian(t, c, lay, x)

	out := make([]float64, 1)
	c.Residual(lay, x, out)
	chk.Float64(t, "residual", 1e-12, out[0], 1.2)
}

func TestDistanceJacobian(t *testing.T) {
	g := &gm.IDGenerator{}
	line := gm.NewLineSegment(g)
	d := gm.NewDistance(g)
	lay := layout.New(append(line.IDs(), d.D))
	x := []float64{0, 0, 3, 4, 1.0}
	c := Distance{Line: line, D: d}
	checkAnalyticJacobian(t, c, lay, x)

	out := make([]float64, 1)
	c.Residual(lay, x, out)
	chk.Float64(t, "residual", 1e-12, out[0], 4.0) // |(3,4)| - 1
}

func TestHorizontalVerticalDistanceJacobian(t *testing.T) {
	g := &gm.IDGenerator{}
	line := gm.NewLineSegment(g)
	d := gm.NewDistance(g)
	lay := layout.New(append(line.IDs(), d.D))
	x := []float64{1, 2, 5, -3, 2.5}

	checkAnalyticJacobian(t, HorizontalDistance{Line: line, D: d}, lay, x)
	checkAnalyticJacobian(t, VerticalDistance{Line: line, D: d}, lay, x)
}

func TestLinesEqualLengthJacobian(t *testing.T) {
	g := &gm.IDGenerator{}
	l0 := gm.NewLineSegment(g)
	l1 := gm.NewLineSegment(g)
	lay := layout.New(append(l0.IDs(), l1.IDs()...))
	x := []float64{0, 0, 3, 4, 1, 1, 1, 4}
	c := LinesEqualLength{L0: l0, L1: l1}
	checkAnalyticJacobian(t, c, lay, x)

	out := make([]float64, 1)
	c.Residual(lay, x, out)
	chk.Float64(t, "residual", 1e-12, out[0], -2.0) // |l1|=3 - |l0|=5
}

func TestLinesAtAngleJacobian(t *testing.T) {
	g := &gm.IDGenerator{}
	l0 := gm.NewLineSegment(g)
	l1 := gm.NewLineSegment(g)
	lay := layout.New(append(l0.IDs(), l1.IDs()...))
	x := []float64{0, 0, 2, 0, 1, 1, 1, 3}

	checkAnalyticJacobian(t, LinesAtAngle{L0: l0, L1: l1, Kind: Parallel()}, lay, x)
	checkAnalyticJacobian(t, LinesAtAngle{L0: l0, L1: l1, Kind: Perpendicular()}, lay, x)
	checkAnalyticJacobian(t, LinesAtAngle{L0: l0, L1: l1, Kind: OtherAngle(0.7)}, lay, x)
}

func TestPointLineDistanceFamilyJacobian(t *testing.T) {
	g := &gm.IDGenerator{}
	p := gm.NewPoint(g)
	line := gm.NewLineSegment(g)
	d := gm.NewDistance(g)
	lay := layout.New(append(append(p.IDs(), line.IDs()...), d.D))
	x := []float64{2, 5, 0, 0, 4, 1, 0.3}

	checkAnalyticJacobian(t, PointLineDistance{P: p, Line: line, D: d}, lay, x)
	checkAnalyticJacobian(t, HorizontalPointLineDistance{P: p, Line: line, D: d}, lay, x)
	checkAnalyticJacobian(t, VerticalPointLineDistance{P: p, Line: line, D: d}, lay, x)
}

func TestLineTangentToCircleJacobian(t *testing.T) {
	g := &gm.IDGenerator{}
	line := gm.NewLineSegment(g)
	circle := gm.NewCircle(g)
	lay := layout.New(append(line.IDs(), circle.IDs()...))
	x := []float64{0, 0, 6, 2, 3, -4, 1.5}

	checkAnalyticJacobian(t, LineTangentToCircle{Line: line, Circle: circle}, lay, x)
}

func TestPointsCoincidentAndMidpointJacobian(t *testing.T) {
	g := &gm.IDGenerator{}
	p0 := gm.NewPoint(g)
	p1 := gm.NewPoint(g)
	m := gm.NewPoint(g)
	lay := layout.New(append(append(p0.IDs(), p1.IDs()...), m.IDs()...))
	x := []float64{1, 2, 5, 8, 3, 5}

	checkAnalyticJacobian(t, PointsCoincident{P0: p0, P1: p1}, lay, x)
	checkAnalyticJacobian(t, Midpoint{Segment: gm.LineSegment{P0: p0, P1: p1}, M: m}, lay, x)
}

func TestSymmetricJacobian(t *testing.T) {
	g := &gm.IDGenerator{}
	p0 := gm.NewPoint(g)
	p1 := gm.NewPoint(g)
	axis := gm.NewLineSegment(g)
	lay := layout.New(append(append(p0.IDs(), p1.IDs()...), axis.IDs()...))
	x := []float64{-2, 3, 2, 3, 0, 0, 0, 5}

	checkAnalyticJacobian(t, Symmetric{P0: p0, P1: p1, Axis: axis}, lay, x)
}

func TestArcFamilyJacobian(t *testing.T) {
	g := &gm.IDGenerator{}
	arc := gm.NewArc(g)
	p := gm.NewPoint(g)
	lay := layout.New(append(arc.IDs(), p.IDs()...))
	// center (0,0), start at 40deg on radius 5, end at 130deg, p near circle.
	x := []float64{0, 0, 3.83, 3.21, -3.21, 3.83, 5, 0}

	checkAnalyticJacobian(t, ArcRadius{Arc: arc, R: 5}, lay, x)
	checkAnalyticJacobian(t, ArcLength{Arc: arc, L: 7.85}, lay, x)
	checkAnalyticJacobian(t, Arc{Arc: arc}, lay, x)
	checkAnalyticJacobian(t, PointArcCoincident{Arc: arc, P: p}, lay, x)
}
