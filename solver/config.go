// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "github.com/dicksontsai/sketchsolve/la"

// Config holds every tunable of the Newton driver and the surrounding
// pipeline (spec §4.3, §6.1). It is a plain typed struct rather than a
// prms map[string]float64 (the teacher's own num.NlSolver.Init style),
// since this config is public API.
type Config struct {
	RegularizationEnabled bool
	RegularizationLambda  float64

	MaxIterations int

	ConvergenceTolerance float64 // tol_f
	StepTolerance        float64 // tol_x
	GradTolerance        float64 // tol_g

	Adaptive          bool
	InitialDamping    float64
	MinDamping        float64
	MaxDamping        float64
	GrowFactor        float64
	ShrinkFactor      float64
	DivergenceRatio   float64
	LineSearchBacktrack float64
	LineSearchMaxSteps  int

	Format la.Format

	NumThreads int

	// Cancel, when non-nil, is invoked once per iteration with the
	// current iteration index; returning true aborts the solve with a
	// Cancelled error (spec §5 "Cancellation").
	Cancel func(iteration int) bool
}

// DefaultConfig returns the configuration spec §6.1 specifies as defaults.
func DefaultConfig() Config {
	return Config{
		RegularizationEnabled: true,
		RegularizationLambda:  1e-9,

		MaxIterations: 35,

		ConvergenceTolerance: 1e-8,
		StepTolerance:        1e-8,
		GradTolerance:        1e-8,

		Adaptive:            true,
		InitialDamping:      1.0,
		MinDamping:          0.1,
		MaxDamping:          1.0,
		GrowFactor:          1.1,
		ShrinkFactor:        0.5,
		DivergenceRatio:     3.0,
		LineSearchBacktrack: 0.5,
		LineSearchMaxSteps:  10,

		Format: la.FormatAuto,

		NumThreads: 0,
	}
}
