// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textual_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dicksontsai/sketchsolve/chk"
	"github.com/dicksontsai/sketchsolve/solver"
	"github.com/dicksontsai/sketchsolve/textual"
)

// Scenario 1 rewritten as a problem file: a vertical segment p-q with p
// pinned at the origin.
func TestVerticalAlignment(t *testing.T) {
	src := `
# constraints
point p
point q
p.x = 0
p.y = 0
q.y = 0
vertical(p, q)

# guesses
p roughly (3, 4)
q roughly (5, 6)
`
	problem, err := textual.Parse(src)
	require.NoError(t, err)

	requests, guesses, idx, err := problem.Build()
	require.NoError(t, err)

	outcome, failure := solver.Solve(requests, guesses, solver.DefaultConfig())
	require.Nil(t, failure)
	require.NotNil(t, outcome)

	p := idx.Points["p"]
	q := idx.Points["q"]
	chk.Float64(t, "p.x", 1e-5, outcome.Value(p.X), 0)
	chk.Float64(t, "p.y", 1e-5, outcome.Value(p.Y), 0)
	chk.Float64(t, "q.x", 1e-5, outcome.Value(q.X), 0)
	chk.Float64(t, "q.y", 1e-5, outcome.Value(q.Y), 0)
}

// Scenario 2 rewritten as a problem file: a 4x3 rectangle anchored at
// (1, 1).
func TestRectangle(t *testing.T) {
	src := `
# constraints
point p0
point p1
point p2
point p3
p0.x = 1
p0.y = 1
horizontal(p0, p1)
vertical(p1, p2)
horizontal(p3, p2)
vertical(p0, p3)
distance(p0, p1, 4)
distance(p0, p3, 3)

# guesses
p0 roughly (1.1, 0.9)
p1 roughly (4.8, 1.2)
p2 roughly (5.2, 3.9)
p3 roughly (0.9, 4.1)
`
	problem, err := textual.Parse(src)
	require.NoError(t, err)

	requests, guesses, idx, err := problem.Build()
	require.NoError(t, err)

	outcome, failure := solver.Solve(requests, guesses, solver.DefaultConfig())
	require.Nil(t, failure)
	require.NotNil(t, outcome)

	chk.Float64(t, "p1.x", 1e-5, outcome.Value(idx.Points["p1"].X), 5)
	chk.Float64(t, "p1.y", 1e-5, outcome.Value(idx.Points["p1"].Y), 1)
	chk.Float64(t, "p2.x", 1e-5, outcome.Value(idx.Points["p2"].X), 5)
	chk.Float64(t, "p2.y", 1e-5, outcome.Value(idx.Points["p2"].Y), 4)
	chk.Float64(t, "p3.x", 1e-5, outcome.Value(idx.Points["p3"].X), 1)
	chk.Float64(t, "p3.y", 1e-5, outcome.Value(idx.Points["p3"].Y), 4)
}

// Scenario 4 rewritten as a problem file: two parallel segments of equal
// length sqrt(32), with p1.x pinned.
func TestParallelLines(t *testing.T) {
	src := `
# constraints
point p0
point p1
point p2
p0.x = 0
p0.y = 0
p1.x = 4
parallel(p0, p1, p1, p2)
lines_equal_length(p0, p1, p1, p2)
distance(p0, p1, 5.65685424949238)

# guesses
p0 roughly (0.1, 0.1)
p1 roughly (3.8, 3.8)
p2 roughly (7.9, 8.1)
`
	problem, err := textual.Parse(src)
	require.NoError(t, err)

	requests, guesses, idx, err := problem.Build()
	require.NoError(t, err)

	outcome, failure := solver.Solve(requests, guesses, solver.DefaultConfig())
	require.Nil(t, failure)
	require.NotNil(t, outcome)

	chk.Float64(t, "p1.x", 1e-5, outcome.Value(idx.Points["p1"].X), 4)
	chk.Float64(t, "p1.y", 1e-4, outcome.Value(idx.Points["p1"].Y), 4)
	chk.Float64(t, "p2.x", 1e-4, outcome.Value(idx.Points["p2"].X), 8)
	chk.Float64(t, "p2.y", 1e-4, outcome.Value(idx.Points["p2"].Y), 8)
}

// Scenario 5 rewritten as a problem file: a point coincident with an arc
// spanning 40deg to 50deg about the origin.
func TestArcCoincidence(t *testing.T) {
	start40 := 40 * math.Pi / 180
	end50 := 50 * math.Pi / 180
	mid45 := 45 * math.Pi / 180

	src := `
# constraints
arc a
point p
a.center.x = 0
a.center.y = 0
a.start.x = ` + formatFloat(5*math.Cos(start40)) + `
a.start.y = ` + formatFloat(5*math.Sin(start40)) + `
a.end.x = ` + formatFloat(5*math.Cos(end50)) + `
a.end.y = ` + formatFloat(5*math.Sin(end50)) + `
point_on_arc(a, p)

# guesses
a roughly (0, 0)
a.start roughly (` + formatFloat(5*math.Cos(start40)) + `, ` + formatFloat(5*math.Sin(start40)) + `)
a.end roughly (` + formatFloat(5*math.Cos(end50)) + `, ` + formatFloat(5*math.Sin(end50)) + `)
p roughly (` + formatFloat(5*math.Cos(mid45)) + `, ` + formatFloat(5*math.Sin(mid45)) + `)
`
	problem, err := textual.Parse(src)
	require.NoError(t, err)

	requests, guesses, idx, err := problem.Build()
	require.NoError(t, err)

	outcome, failure := solver.Solve(requests, guesses, solver.DefaultConfig())
	require.Nil(t, failure)
	require.NotNil(t, outcome)

	p := idx.Points["p"]
	px, py := outcome.Value(p.X), outcome.Value(p.Y)
	chk.Float64(t, "|p|", 1e-6, math.Hypot(px, py), 5)
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.12f", v)
}

func TestMissingGuessIsReported(t *testing.T) {
	src := `
# constraints
point p

# guesses
`
	problem, err := textual.Parse(src)
	require.NoError(t, err)

	_, _, _, err = problem.Build()
	require.Error(t, err)
	var missing *textual.MissingGuess
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "p", missing.Label)
}

func TestUnusedGuessIsReported(t *testing.T) {
	src := `
# constraints
point p

# guesses
p roughly (0, 0)
q roughly (1, 1)
`
	problem, err := textual.Parse(src)
	require.NoError(t, err)

	_, _, _, err = problem.Build()
	require.Error(t, err)
	var unused *textual.UnusedGuesses
	require.ErrorAs(t, err, &unused)
	require.Equal(t, []string{"q"}, unused.Labels)
}

func TestUndefinedLabelIsReported(t *testing.T) {
	src := `
# constraints
point p
vertical(p, q)

# guesses
p roughly (0, 0)
`
	problem, err := textual.Parse(src)
	require.NoError(t, err)

	_, _, _, err = problem.Build()
	require.Error(t, err)
	var undefined *textual.UndefinedLabel
	require.ErrorAs(t, err, &undefined)
	require.Equal(t, "q", undefined.Label)
}

func TestUnparsableLineIsReported(t *testing.T) {
	src := `
# constraints
this is not a statement
`
	_, err := textual.Parse(src)
	require.Error(t, err)
	var parseErr *textual.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 3, parseErr.Line)
}
