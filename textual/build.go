// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textual

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dicksontsai/sketchsolve/constraint"
	"github.com/dicksontsai/sketchsolve/gm"
	"github.com/dicksontsai/sketchsolve/solver"
)

// Index records, for every declared label, the datum it was assigned to.
// The CLI (spec §6.3) walks it to print each point's solved coordinates.
type Index struct {
	PointLabels  []string
	Points       map[string]gm.Point
	CircleLabels []string
	Circles      map[string]gm.Circle
	ArcLabels    []string
	Arcs         map[string]gm.Arc
}

// Build converts a parsed Problem into the (requests, guesses) pair
// solver.Solve expects (spec §6.2, grounded on
// kcl-ezpz/src/textual/executor.rs's to_constraint_system). Every
// constraint gets priority 0: the textual format has no syntax for
// priorities, matching spec.md's §6.2 grammar.
func (p *Problem) Build() ([]constraint.Request, []solver.Guess, *Index, error) {
	pgByKey := make(map[string]pointGuess, len(p.pointGuesses))
	for _, g := range p.pointGuesses {
		pgByKey[strings.Join(g.path, ".")] = g
	}
	sgByKey := make(map[string]scalarGuess, len(p.scalarGuesses))
	for _, g := range p.scalarGuesses {
		sgByKey[strings.Join(g.path, ".")] = g
	}
	usedKeys := make(map[string]bool)

	idx := &Index{
		Points:  make(map[string]gm.Point),
		Circles: make(map[string]gm.Circle),
		Arcs:    make(map[string]gm.Arc),
	}
	var guesses []solver.Guess
	var gen gm.IDGenerator

	for _, d := range p.decls {
		switch d.kind {
		case declPoint:
			pg, ok := pgByKey[d.label]
			if !ok {
				return nil, nil, nil, &MissingGuess{Label: d.label}
			}
			usedKeys[d.label] = true
			pt := gm.NewPoint(&gen)
			idx.Points[d.label] = pt
			idx.PointLabels = append(idx.PointLabels, d.label)
			guesses = append(guesses,
				solver.Guess{ID: pt.X, Value: pg.x},
				solver.Guess{ID: pt.Y, Value: pg.y},
			)

		case declCircle:
			pg, ok := pgByKey[d.label]
			if !ok {
				return nil, nil, nil, &MissingGuess{Label: d.label}
			}
			usedKeys[d.label] = true
			radiusKey := d.label + ".radius"
			sg, ok := sgByKey[radiusKey]
			if !ok {
				return nil, nil, nil, &MissingGuess{Label: radiusKey}
			}
			usedKeys[radiusKey] = true
			circ := gm.NewCircle(&gen)
			idx.Circles[d.label] = circ
			idx.CircleLabels = append(idx.CircleLabels, d.label)
			guesses = append(guesses,
				solver.Guess{ID: circ.Center.X, Value: pg.x},
				solver.Guess{ID: circ.Center.Y, Value: pg.y},
				solver.Guess{ID: circ.Radius.D, Value: sg.value},
			)

		case declArc:
			pg, ok := pgByKey[d.label]
			if !ok {
				return nil, nil, nil, &MissingGuess{Label: d.label}
			}
			usedKeys[d.label] = true
			startKey, endKey := d.label+".start", d.label+".end"
			pgStart, ok := pgByKey[startKey]
			if !ok {
				return nil, nil, nil, &MissingGuess{Label: startKey}
			}
			usedKeys[startKey] = true
			pgEnd, ok := pgByKey[endKey]
			if !ok {
				return nil, nil, nil, &MissingGuess{Label: endKey}
			}
			usedKeys[endKey] = true
			arc := gm.NewArc(&gen)
			idx.Arcs[d.label] = arc
			idx.ArcLabels = append(idx.ArcLabels, d.label)
			guesses = append(guesses,
				solver.Guess{ID: arc.Center.X, Value: pg.x},
				solver.Guess{ID: arc.Center.Y, Value: pg.y},
				solver.Guess{ID: arc.Start.X, Value: pgStart.x},
				solver.Guess{ID: arc.Start.Y, Value: pgStart.y},
				solver.Guess{ID: arc.End.X, Value: pgEnd.x},
				solver.Guess{ID: arc.End.Y, Value: pgEnd.y},
			)
		}
	}

	var leftover []string
	for key := range pgByKey {
		if !usedKeys[key] {
			leftover = append(leftover, key)
		}
	}
	for key := range sgByKey {
		if !usedKeys[key] {
			leftover = append(leftover, key)
		}
	}
	if len(leftover) > 0 {
		sort.Strings(leftover)
		return nil, nil, nil, &UnusedGuesses{Labels: leftover}
	}

	b := &builder{idx: idx, gen: &gen}
	requests, err := b.buildFixings(p.fixings)
	if err != nil {
		return nil, nil, nil, err
	}
	relReqs, moreGuesses, err := b.buildRelations(p.relations)
	if err != nil {
		return nil, nil, nil, err
	}
	requests = append(requests, relReqs...)
	guesses = append(guesses, moreGuesses...)

	return requests, guesses, idx, nil
}

type builder struct {
	idx *Index
	gen *gm.IDGenerator
}

func (b *builder) point(label string) (gm.Point, bool) {
	if pt, ok := b.idx.Points[label]; ok {
		return pt, true
	}
	if c, ok := b.idx.Circles[label]; ok {
		return c.Center, true
	}
	if a, ok := b.idx.Arcs[label]; ok {
		return a.Center, true
	}
	return gm.Point{}, false
}

func (b *builder) subPoint(label, which string) (gm.Point, bool) {
	switch which {
	case "center":
		if c, ok := b.idx.Circles[label]; ok {
			return c.Center, true
		}
		if a, ok := b.idx.Arcs[label]; ok {
			return a.Center, true
		}
	case "start":
		if a, ok := b.idx.Arcs[label]; ok {
			return a.Start, true
		}
	case "end":
		if a, ok := b.idx.Arcs[label]; ok {
			return a.End, true
		}
	}
	return gm.Point{}, false
}

func (b *builder) buildFixings(fixings []fixing) ([]constraint.Request, error) {
	var requests []constraint.Request
	for _, f := range fixings {
		switch {
		case len(f.path) == 2 && f.path[1] == "radius":
			circ, ok := b.idx.Circles[f.path[0]]
			if !ok {
				return nil, &UndefinedLabel{Label: f.path[0]}
			}
			requests = append(requests, constraint.Request{
				Constraint: constraint.CircleRadius{Circle: circ, R: f.value},
			})

		case len(f.path) == 2 && (f.path[1] == "x" || f.path[1] == "y"):
			pt, ok := b.idx.Points[f.path[0]]
			if !ok {
				return nil, &UndefinedLabel{Label: f.path[0]}
			}
			requests = append(requests, constraint.Request{
				Constraint: constraint.Fixed{Var: componentOf(pt, f.path[1]), Target: f.value},
			})

		case len(f.path) == 3 && (f.path[2] == "x" || f.path[2] == "y"):
			sub, ok := b.subPoint(f.path[0], f.path[1])
			if !ok {
				return nil, &UndefinedLabel{Label: strings.Join(f.path[:2], ".")}
			}
			requests = append(requests, constraint.Request{
				Constraint: constraint.Fixed{Var: componentOf(sub, f.path[2]), Target: f.value},
			})

		default:
			return nil, &ParseError{Line: f.line, Text: strings.Join(f.path, ".")}
		}
	}
	return requests, nil
}

func componentOf(pt gm.Point, which string) gm.VarID {
	if which == "x" {
		return pt.X
	}
	return pt.Y
}

func (b *builder) buildRelations(relations []relation) ([]constraint.Request, []solver.Guess, error) {
	var requests []constraint.Request
	var guesses []solver.Guess

	literalDistance := func(value float64) gm.Distance {
		d := gm.NewDistance(b.gen)
		guesses = append(guesses, solver.Guess{ID: d.D, Value: value})
		requests = append(requests, constraint.Request{Constraint: constraint.Fixed{Var: d.D, Target: value}})
		return d
	}

	for _, r := range relations {
		pt := func(i int) (gm.Point, error) {
			p, ok := b.point(r.args[i])
			if !ok {
				return gm.Point{}, &UndefinedLabel{Label: r.args[i]}
			}
			return p, nil
		}
		literal := func(i int) (float64, error) {
			v, err := strconv.ParseFloat(r.args[i], 64)
			if err != nil {
				return 0, &ParseError{Line: r.line, Text: r.args[i]}
			}
			return v, nil
		}

		switch r.name {
		case "horizontal", "vertical", "coincident":
			p0, err := pt(0)
			if err != nil {
				return nil, nil, err
			}
			p1, err := pt(1)
			if err != nil {
				return nil, nil, err
			}
			var c constraint.Constraint
			switch r.name {
			case "horizontal":
				c = constraint.Horizontal{Line: gm.LineSegment{P0: p0, P1: p1}}
			case "vertical":
				c = constraint.Vertical{Line: gm.LineSegment{P0: p0, P1: p1}}
			case "coincident":
				c = constraint.PointsCoincident{P0: p0, P1: p1}
			}
			requests = append(requests, constraint.Request{Constraint: c})

		case "parallel", "perpendicular", "lines_equal_length":
			p0, err := pt(0)
			if err != nil {
				return nil, nil, err
			}
			p1, err := pt(1)
			if err != nil {
				return nil, nil, err
			}
			p2, err := pt(2)
			if err != nil {
				return nil, nil, err
			}
			p3, err := pt(3)
			if err != nil {
				return nil, nil, err
			}
			l0 := gm.LineSegment{P0: p0, P1: p1}
			l1 := gm.LineSegment{P0: p2, P1: p3}
			var c constraint.Constraint
			switch r.name {
			case "parallel":
				c = constraint.LinesAtAngle{L0: l0, L1: l1, Kind: constraint.Parallel()}
			case "perpendicular":
				c = constraint.LinesAtAngle{L0: l0, L1: l1, Kind: constraint.Perpendicular()}
			case "lines_equal_length":
				c = constraint.LinesEqualLength{L0: l0, L1: l1}
			}
			requests = append(requests, constraint.Request{Constraint: c})

		case "angle":
			p0, err := pt(0)
			if err != nil {
				return nil, nil, err
			}
			p1, err := pt(1)
			if err != nil {
				return nil, nil, err
			}
			p2, err := pt(2)
			if err != nil {
				return nil, nil, err
			}
			p3, err := pt(3)
			if err != nil {
				return nil, nil, err
			}
			theta, ok := parseAngleToken(r.args[4])
			if !ok {
				return nil, nil, &ParseError{Line: r.line, Text: r.args[4]}
			}
			requests = append(requests, constraint.Request{Constraint: constraint.LinesAtAngle{
				L0: gm.LineSegment{P0: p0, P1: p1}, L1: gm.LineSegment{P0: p2, P1: p3},
				Kind: constraint.OtherAngle(theta),
			}})

		case "distance", "horizontal_distance", "vertical_distance":
			p0, err := pt(0)
			if err != nil {
				return nil, nil, err
			}
			p1, err := pt(1)
			if err != nil {
				return nil, nil, err
			}
			value, err := literal(2)
			if err != nil {
				return nil, nil, err
			}
			d := literalDistance(value)
			line := gm.LineSegment{P0: p0, P1: p1}
			var c constraint.Constraint
			switch r.name {
			case "distance":
				c = constraint.Distance{Line: line, D: d}
			case "horizontal_distance":
				c = constraint.HorizontalDistance{Line: line, D: d}
			case "vertical_distance":
				c = constraint.VerticalDistance{Line: line, D: d}
			}
			requests = append(requests, constraint.Request{Constraint: c})

		case "tangent":
			p0, err := pt(0)
			if err != nil {
				return nil, nil, err
			}
			p1, err := pt(1)
			if err != nil {
				return nil, nil, err
			}
			circ, ok := b.idx.Circles[r.args[2]]
			if !ok {
				return nil, nil, &UndefinedLabel{Label: r.args[2]}
			}
			requests = append(requests, constraint.Request{Constraint: constraint.LineTangentToCircle{
				Line: gm.LineSegment{P0: p0, P1: p1}, Circle: circ,
			}})

		case "midpoint":
			p0, err := pt(0)
			if err != nil {
				return nil, nil, err
			}
			p1, err := pt(1)
			if err != nil {
				return nil, nil, err
			}
			m, err := pt(2)
			if err != nil {
				return nil, nil, err
			}
			requests = append(requests, constraint.Request{Constraint: constraint.Midpoint{
				Segment: gm.LineSegment{P0: p0, P1: p1}, M: m,
			}})

		case "symmetric":
			p0, err := pt(0)
			if err != nil {
				return nil, nil, err
			}
			p1, err := pt(1)
			if err != nil {
				return nil, nil, err
			}
			a0, err := pt(2)
			if err != nil {
				return nil, nil, err
			}
			a1, err := pt(3)
			if err != nil {
				return nil, nil, err
			}
			requests = append(requests, constraint.Request{Constraint: constraint.Symmetric{
				P0: p0, P1: p1, Axis: gm.LineSegment{P0: a0, P1: a1},
			}})

		case "point_on_arc":
			arc, ok := b.idx.Arcs[r.args[0]]
			if !ok {
				return nil, nil, &UndefinedLabel{Label: r.args[0]}
			}
			p, err := pt(1)
			if err != nil {
				return nil, nil, err
			}
			requests = append(requests, constraint.Request{Constraint: constraint.PointArcCoincident{Arc: arc, P: p}})

		case "arc_length":
			arc, ok := b.idx.Arcs[r.args[0]]
			if !ok {
				return nil, nil, &UndefinedLabel{Label: r.args[0]}
			}
			value, err := literal(1)
			if err != nil {
				return nil, nil, err
			}
			requests = append(requests, constraint.Request{Constraint: constraint.ArcLength{Arc: arc, L: value}})

		case "arc_radius":
			arc, ok := b.idx.Arcs[r.args[0]]
			if !ok {
				return nil, nil, &UndefinedLabel{Label: r.args[0]}
			}
			value, err := literal(1)
			if err != nil {
				return nil, nil, err
			}
			requests = append(requests, constraint.Request{Constraint: constraint.ArcRadius{Arc: arc, R: value}})

		default:
			return nil, nil, &ParseError{Line: r.line, Text: r.name}
		}
	}
	return requests, guesses, nil
}

func parseAngleToken(tok string) (float64, bool) {
	numStr, ok := strings.CutSuffix(tok, "deg")
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, false
	}
	return v * math.Pi / 180, true
}
