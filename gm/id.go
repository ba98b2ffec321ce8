// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gm implements the geometric datums of the solver: dense scalar
// variable identity and the point/distance/segment/circle/arc bundles built
// from it.
package gm

// VarID names one scalar unknown (a coordinate component or a radius).
// IDs are dense and contiguous: a problem with N guesses uses exactly the
// IDs [0, N).
type VarID uint

// IDGenerator hands out dense, monotonically increasing variable IDs.
type IDGenerator struct {
	next VarID
}

// Next returns the next unused variable ID.
func (g *IDGenerator) Next() VarID {
	id := g.next
	g.next++
	return id
}
