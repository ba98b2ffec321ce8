// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gm

// Datum is a bundle of variable IDs naming a geometric entity. IDs is used
// for Jacobian column enumeration and must always return its IDs in the
// same fixed order.
type Datum interface {
	IDs() []VarID
}

// Point is a 2D point: two scalar unknowns, x and y.
type Point struct {
	X, Y VarID
}

// NewPoint allocates a fresh point, drawing two new IDs from g.
func NewPoint(g *IDGenerator) Point {
	return Point{X: g.Next(), Y: g.Next()}
}

// IDs returns [x, y].
func (p Point) IDs() []VarID { return []VarID{p.X, p.Y} }

// Distance is a single scalar unknown representing a length.
type Distance struct {
	D VarID
}

// NewDistance allocates a fresh distance scalar.
func NewDistance(g *IDGenerator) Distance {
	return Distance{D: g.Next()}
}

// IDs returns [d].
func (d Distance) IDs() []VarID { return []VarID{d.D} }

// LineSegment is a pair of points.
type LineSegment struct {
	P0, P1 Point
}

// NewLineSegment allocates a fresh segment (two fresh points).
func NewLineSegment(g *IDGenerator) LineSegment {
	return LineSegment{P0: NewPoint(g), P1: NewPoint(g)}
}

// IDs returns [p0.x, p0.y, p1.x, p1.y].
func (l LineSegment) IDs() []VarID {
	return []VarID{l.P0.X, l.P0.Y, l.P1.X, l.P1.Y}
}

// Circle is a center point plus a radius.
type Circle struct {
	Center Point
	Radius Distance
}

// NewCircle allocates a fresh circle.
func NewCircle(g *IDGenerator) Circle {
	return Circle{Center: NewPoint(g), Radius: NewDistance(g)}
}

// IDs returns [center.x, center.y, radius].
func (c Circle) IDs() []VarID {
	return []VarID{c.Center.X, c.Center.Y, c.Radius.D}
}

// Arc is a circular arc: a center and two points (start, end) assumed to lie
// on the circle of radius |center-start|.
type Arc struct {
	Center, Start, End Point
}

// NewArc allocates a fresh arc (three fresh points).
func NewArc(g *IDGenerator) Arc {
	return Arc{Center: NewPoint(g), Start: NewPoint(g), End: NewPoint(g)}
}

// IDs returns the six IDs of center, start, end in that order.
func (a Arc) IDs() []VarID {
	return []VarID{a.Center.X, a.Center.Y, a.Start.X, a.Start.Y, a.End.X, a.End.Y}
}
