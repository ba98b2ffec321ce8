// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dicksontsai/sketchsolve/chk"
	"github.com/dicksontsai/sketchsolve/constraint"
	"github.com/dicksontsai/sketchsolve/gm"
	"github.com/dicksontsai/sketchsolve/layout"
	"github.com/dicksontsai/sketchsolve/solver"
)

func req(c constraint.Constraint, priority uint32) constraint.Request {
	return constraint.Request{Constraint: c, Priority: priority}
}

// sumEqual is a one-off constraint (a + b - target = 0) local to this test:
// scenario 3 needs the literal equation "x + y - 2" from spec §8, which
// isn't itself a named catalog relation.
type sumEqual struct {
	A, B   gm.VarID
	Target float64
}

func (c sumEqual) ResidualDim() int { return 1 }

func (c sumEqual) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	out[0] = x[lay.IndexOf(c.A)] + x[lay.IndexOf(c.B)] - c.Target
	return false
}

func (c sumEqual) JacobianRows(lay *layout.Layout, x []float64, rows [][]constraint.JacobianVar) bool {
	rows[0] = append(rows[0],
		constraint.JacobianVar{ID: c.A, Partial: 1},
		constraint.JacobianVar{ID: c.B, Partial: 1},
	)
	return false
}

func (c sumEqual) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0], c.A, c.B)
}

// sumSquaresEqual is a one-off constraint (a² + b² - target = 0) local to
// this test: scenario 3's first equation "x² + y² - 1" is squared, unlike
// the catalog's Distance (|p1-p0| - d), whose least-squares minimizer for
// the same three equations is a different point.
type sumSquaresEqual struct {
	A, B   gm.VarID
	Target float64
}

func (c sumSquaresEqual) ResidualDim() int { return 1 }

func (c sumSquaresEqual) Residual(lay *layout.Layout, x []float64, out []float64) bool {
	a, b := x[lay.IndexOf(c.A)], x[lay.IndexOf(c.B)]
	out[0] = a*a + b*b - c.Target
	return false
}

func (c sumSquaresEqual) JacobianRows(lay *layout.Layout, x []float64, rows [][]constraint.JacobianVar) bool {
	a, b := x[lay.IndexOf(c.A)], x[lay.IndexOf(c.B)]
	rows[0] = append(rows[0],
		constraint.JacobianVar{ID: c.A, Partial: 2 * a},
		constraint.JacobianVar{ID: c.B, Partial: 2 * b},
	)
	return false
}

func (c sumSquaresEqual) Nonzeroes(rows [][]gm.VarID) {
	rows[0] = append(rows[0], c.A, c.B)
}

// Scenario 3: inconsistent three-equation least-squares system
// (x² + y² - 1, x - y, x + y - 2 over the two unknowns x, y).
func TestScenarioInconsistentLeastSquares(t *testing.T) {
	g := &gm.IDGenerator{}
	p := gm.NewPoint(g)

	requests := []constraint.Request{
		req(sumSquaresEqual{A: p.X, B: p.Y, Target: 1}, 0),
		req(constraint.ScalarEqual{A: p.X, B: p.Y}, 0),
		req(sumEqual{A: p.X, B: p.Y, Target: 2}, 0),
	}
	guesses := []solver.Guess{
		{ID: p.X, Value: 0.7}, {ID: p.Y, Value: 0.7},
	}
	cfg := solver.DefaultConfig()
	outcome, failure := solver.Solve(requests, guesses, cfg)
	require.Nil(t, failure)
	require.NotNil(t, outcome)

	want := math.Pow(0.5, 1.0/3.0)
	chk.Float64(t, "x", 1e-4, outcome.Value(p.X), want)
	chk.Float64(t, "y", 1e-4, outcome.Value(p.Y), want)
}

// Scenario 1: two points, zero distance, vertical alignment.
func TestScenarioVerticalAlignment(t *testing.T) {
	g := &gm.IDGenerator{}
	p := gm.NewPoint(g)
	q := gm.NewPoint(g)

	requests := []constraint.Request{
		req(constraint.Fixed{Var: p.X, Target: 0}, 0),
		req(constraint.Fixed{Var: p.Y, Target: 0}, 0),
		req(constraint.Fixed{Var: q.Y, Target: 0}, 0),
		req(constraint.Vertical{Line: gm.LineSegment{P0: p, P1: q}}, 0),
	}
	guesses := []solver.Guess{
		{ID: p.X, Value: 3}, {ID: p.Y, Value: 4},
		{ID: q.X, Value: 5}, {ID: q.Y, Value: 6},
	}
	outcome, failure := solver.Solve(requests, guesses, solver.DefaultConfig())
	require.Nil(t, failure)
	require.NotNil(t, outcome)

	chk.Float64(t, "p.x", 1e-5, outcome.Value(p.X), 0)
	chk.Float64(t, "p.y", 1e-5, outcome.Value(p.Y), 0)
	chk.Float64(t, "q.x", 1e-5, outcome.Value(q.X), 0)
	chk.Float64(t, "q.y", 1e-5, outcome.Value(q.Y), 0)
}

// Scenario 2: unit rectangle (here a 4x3 rectangle per spec's literals).
func TestScenarioRectangle(t *testing.T) {
	g := &gm.IDGenerator{}
	p0 := gm.NewPoint(g)
	p1 := gm.NewPoint(g)
	p2 := gm.NewPoint(g)
	p3 := gm.NewPoint(g)
	d01 := gm.NewDistance(g)
	d03 := gm.NewDistance(g)

	requests := []constraint.Request{
		req(constraint.Fixed{Var: p0.X, Target: 1}, 0),
		req(constraint.Fixed{Var: p0.Y, Target: 1}, 0),
		req(constraint.Horizontal{Line: gm.LineSegment{P0: p0, P1: p1}}, 0),
		req(constraint.Vertical{Line: gm.LineSegment{P0: p1, P1: p2}}, 0),
		req(constraint.Horizontal{Line: gm.LineSegment{P0: p3, P1: p2}}, 0),
		req(constraint.Vertical{Line: gm.LineSegment{P0: p0, P1: p3}}, 0),
		req(constraint.Distance{Line: gm.LineSegment{P0: p0, P1: p1}, D: d01}, 0),
		req(constraint.Fixed{Var: d01.D, Target: 4}, 0),
		req(constraint.Distance{Line: gm.LineSegment{P0: p0, P1: p3}, D: d03}, 0),
		req(constraint.Fixed{Var: d03.D, Target: 3}, 0),
	}
	guesses := []solver.Guess{
		{ID: p0.X, Value: 1.1}, {ID: p0.Y, Value: 0.9},
		{ID: p1.X, Value: 4.8}, {ID: p1.Y, Value: 1.2},
		{ID: p2.X, Value: 5.2}, {ID: p2.Y, Value: 3.9},
		{ID: p3.X, Value: 0.9}, {ID: p3.Y, Value: 4.1},
		{ID: d01.D, Value: 4}, {ID: d03.D, Value: 3},
	}
	outcome, failure := solver.Solve(requests, guesses, solver.DefaultConfig())
	require.Nil(t, failure)
	require.NotNil(t, outcome)

	chk.Float64(t, "p0", 1e-5, outcome.Value(p0.X), 1)
	chk.Float64(t, "p0", 1e-5, outcome.Value(p0.Y), 1)
	chk.Float64(t, "p1", 1e-5, outcome.Value(p1.X), 5)
	chk.Float64(t, "p1", 1e-5, outcome.Value(p1.Y), 1)
	chk.Float64(t, "p2", 1e-5, outcome.Value(p2.X), 5)
	chk.Float64(t, "p2", 1e-5, outcome.Value(p2.Y), 4)
	chk.Float64(t, "p3", 1e-5, outcome.Value(p3.X), 1)
	chk.Float64(t, "p3", 1e-5, outcome.Value(p3.Y), 4)
}

// Scenario 4: parallel lines at a fixed distance.
func TestScenarioParallelLines(t *testing.T) {
	g := &gm.IDGenerator{}
	p0 := gm.NewPoint(g)
	p1 := gm.NewPoint(g)
	p2 := gm.NewPoint(g)
	d01 := gm.NewDistance(g)
	d12 := gm.NewDistance(g)

	requests := []constraint.Request{
		req(constraint.Fixed{Var: p0.X, Target: 0}, 0),
		req(constraint.Fixed{Var: p0.Y, Target: 0}, 0),
		req(constraint.LinesAtAngle{
			L0:   gm.LineSegment{P0: p0, P1: p1},
			L1:   gm.LineSegment{P0: p1, P1: p2},
			Kind: constraint.Parallel(),
		}, 0),
		req(constraint.Distance{Line: gm.LineSegment{P0: p0, P1: p1}, D: d01}, 0),
		req(constraint.Distance{Line: gm.LineSegment{P0: p1, P1: p2}, D: d12}, 0),
		req(constraint.ScalarEqual{A: d01.D, B: d12.D}, 0),
		req(constraint.Fixed{Var: d01.D, Target: math.Sqrt(32)}, 0),
		req(constraint.Fixed{Var: p1.X, Target: 4}, 0),
	}
	guesses := []solver.Guess{
		{ID: p0.X, Value: 0.1}, {ID: p0.Y, Value: 0.1},
		{ID: p1.X, Value: 3.8}, {ID: p1.Y, Value: 3.8},
		{ID: p2.X, Value: 7.9}, {ID: p2.Y, Value: 8.1},
		{ID: d01.D, Value: math.Sqrt(32)},
		{ID: d12.D, Value: math.Sqrt(32)},
	}
	outcome, failure := solver.Solve(requests, guesses, solver.DefaultConfig())
	require.Nil(t, failure)
	require.NotNil(t, outcome)

	chk.Float64(t, "p1.x", 1e-5, outcome.Value(p1.X), 4)
	chk.Float64(t, "p1.y", 1e-5, outcome.Value(p1.Y), 4)
	chk.Float64(t, "p2.x", 1e-5, outcome.Value(p2.X), 8)
	chk.Float64(t, "p2.y", 1e-5, outcome.Value(p2.Y), 8)
}

// Scenario 5: arc coincidence.
func TestScenarioArcCoincidence(t *testing.T) {
	g := &gm.IDGenerator{}
	arc := gm.NewArc(g)
	p := gm.NewPoint(g)

	requests := []constraint.Request{
		req(constraint.Fixed{Var: arc.Center.X, Target: 0}, 0),
		req(constraint.Fixed{Var: arc.Center.Y, Target: 0}, 0),
		req(constraint.Fixed{Var: arc.Start.X, Target: 5 * math.Cos(40*math.Pi/180)}, 0),
		req(constraint.Fixed{Var: arc.Start.Y, Target: 5 * math.Sin(40*math.Pi/180)}, 0),
		req(constraint.Fixed{Var: arc.End.X, Target: 5 * math.Cos(50*math.Pi/180)}, 0),
		req(constraint.Fixed{Var: arc.End.Y, Target: 5 * math.Sin(50*math.Pi/180)}, 0),
		req(constraint.PointArcCoincident{Arc: arc, P: p}, 0),
	}
	guesses := []solver.Guess{
		{ID: arc.Center.X, Value: 0}, {ID: arc.Center.Y, Value: 0},
		{ID: arc.Start.X, Value: 5 * math.Cos(40*math.Pi/180)}, {ID: arc.Start.Y, Value: 5 * math.Sin(40*math.Pi/180)},
		{ID: arc.End.X, Value: 5 * math.Cos(50*math.Pi/180)}, {ID: arc.End.Y, Value: 5 * math.Sin(50*math.Pi/180)},
		{ID: p.X, Value: 5 * math.Cos(45*math.Pi/180)}, {ID: p.Y, Value: 5 * math.Sin(45*math.Pi/180)},
	}
	outcome, failure := solver.Solve(requests, guesses, solver.DefaultConfig())
	require.Nil(t, failure)
	require.NotNil(t, outcome)

	px, py := outcome.Value(p.X), outcome.Value(p.Y)
	chk.Float64(t, "|p|", 1e-6, math.Hypot(px, py), 5)
}

// Scenario 6: priority drop.
func TestScenarioPriorityDrop(t *testing.T) {
	g := &gm.IDGenerator{}
	xVar := g.Next()

	requests := []constraint.Request{
		req(constraint.Fixed{Var: xVar, Target: 0}, 0),
		req(constraint.Fixed{Var: xVar, Target: 1}, 1),
	}
	guesses := []solver.Guess{{ID: xVar, Value: 0.5}}

	outcome, failure := solver.Solve(requests, guesses, solver.DefaultConfig())
	require.Nil(t, failure)
	require.NotNil(t, outcome)

	chk.Float64(t, "x", 1e-5, outcome.Value(xVar), 0)
	require.EqualValues(t, 0, outcome.PrioritySolved)
	require.Contains(t, outcome.Unsatisfied, 1)
}

// A point pinned to a fixed distance from the origin but free to rotate
// around it: one degree of freedom survives. p sits off both axes at
// (√2, √2), so the rotation direction (-1, 1)/√2 moves both coordinates and
// AnalyzeFreedom must flag both of them as underconstrained.
func TestAnalyzeFreedomFlagsUnderconstrainedRotation(t *testing.T) {
	g := &gm.IDGenerator{}
	origin := gm.NewPoint(g)
	p := gm.NewPoint(g)
	radius := gm.NewDistance(g)

	requests := []constraint.Request{
		req(constraint.Fixed{Var: origin.X, Target: 0}, 0),
		req(constraint.Fixed{Var: origin.Y, Target: 0}, 0),
		req(constraint.Fixed{Var: radius.D, Target: 2}, 0),
		req(constraint.Distance{Line: gm.LineSegment{P0: origin, P1: p}, D: radius}, 0),
	}
	guesses := []solver.Guess{
		{ID: origin.X, Value: 0}, {ID: origin.Y, Value: 0},
		{ID: radius.D, Value: 2},
		{ID: p.X, Value: math.Sqrt2}, {ID: p.Y, Value: math.Sqrt2},
	}
	outcome, failure := solver.Solve(requests, guesses, solver.DefaultConfig())
	require.Nil(t, failure)
	require.NotNil(t, outcome)

	freedom, err := outcome.AnalyzeFreedom()
	require.NoError(t, err)
	require.True(t, freedom.IsUnderconstrained)
	require.Contains(t, freedom.UnderconstrainedVars, p.X)
	require.Contains(t, freedom.UnderconstrainedVars, p.Y)
}
