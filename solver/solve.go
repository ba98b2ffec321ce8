// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"fmt"
	"sort"

	"github.com/dicksontsai/sketchsolve/constraint"
	"github.com/dicksontsai/sketchsolve/gm"
	"github.com/dicksontsai/sketchsolve/la"
	"github.com/dicksontsai/sketchsolve/layout"
)

// Guess pairs a variable with its initial value (spec §6.1:
// "initial_guesses is an ordered sequence of (VarId, f64)").
type Guess struct {
	ID    gm.VarID
	Value float64
}

// Solve is the programmatic entry point (spec §6.1). It validates input
// shape, builds the variable layout, and runs the priority scheduler
// (spec §4.7), which in turn drives the damped Gauss-Newton iteration
// (spec §4.3) once per priority level.
func Solve(requests []constraint.Request, guesses []Guess, cfg Config) (*SolveOutcome, *FailureOutcome) {
	if len(requests) == 0 {
		return nil, &FailureOutcome{Err: &EmptySystem{}}
	}

	ids := make([]gm.VarID, len(guesses))
	x0 := make([]float64, len(guesses))
	guessSet := make(map[gm.VarID]bool, len(guesses))
	for i, g := range guesses {
		ids[i] = g.ID
		x0[i] = g.Value
		guessSet[g.ID] = true
	}
	lay := layout.New(ids)

	neededFirst := make(map[gm.VarID]int)
	for ci, req := range requests {
		dim := req.Constraint.ResidualDim()
		nz := make([][]gm.VarID, dim)
		req.Constraint.Nonzeroes(nz)
		for _, row := range nz {
			for _, id := range row {
				if _, ok := neededFirst[id]; !ok {
					neededFirst[id] = ci
				}
			}
		}
	}

	for id, ci := range neededFirst {
		if !guessSet[id] {
			return nil, &FailureOutcome{
				Err:     &MissingGuess{ConstraintIndex: ci, Variable: uint(id)},
				NumVars: len(neededFirst),
				NumEqs:  totalResidualDim(requests),
			}
		}
	}

	var unused []string
	for id := range guessSet {
		if _, ok := neededFirst[id]; !ok {
			unused = append(unused, fmt.Sprintf("var%d", id))
		}
	}
	if len(unused) > 0 {
		sort.Strings(unused)
		return nil, &FailureOutcome{
			Err:     &UnusedGuesses{Labels: unused},
			NumVars: len(neededFirst),
			NumEqs:  totalResidualDim(requests),
		}
	}

	la.SetNumThreads(cfg.NumThreads)

	return runPriorityScheduler(requests, lay, x0, cfg)
}

func totalResidualDim(requests []constraint.Request) int {
	n := 0
	for _, r := range requests {
		n += r.Constraint.ResidualDim()
	}
	return n
}

// runPriorityScheduler implements spec §4.7: solve incrementally by
// ascending priority level, keeping the deepest level that still converges.
func runPriorityScheduler(requests []constraint.Request, lay *layout.Layout, x0 []float64, cfg Config) (*SolveOutcome, *FailureOutcome) {
	levelSet := make(map[uint32]bool)
	for _, r := range requests {
		levelSet[r.Priority] = true
	}
	levels := make([]uint32, 0, len(levelSet))
	for lvl := range levelSet {
		levels = append(levels, lvl)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	var (
		lastGoodModel   *Model
		lastGoodValues  []float64
		lastGoodIters   int
		lastIncludedIdx map[int]bool
		prioritySolved  uint32
		haveGood        bool
		lastErr         error
	)

	for _, lvl := range levels {
		var subsetIdx []int
		for i, r := range requests {
			if r.Priority <= lvl {
				subsetIdx = append(subsetIdx, i)
			}
		}
		cons := make([]constraint.Constraint, len(subsetIdx))
		for j, idx := range subsetIdx {
			cons[j] = requests[idx].Constraint
		}

		model, err := NewModel(cons, lay, x0, cfg)
		if err != nil {
			lastErr = err
			break
		}
		values, iters, rerr := model.runNewton(x0)
		if rerr != nil {
			lastErr = rerr
			break
		}
		// Newton's own stopping criteria (step/gradient) can trigger on a
		// least-squares minimizer that does not actually zero every
		// residual, e.g. two Fixed constraints on the same variable at
		// different targets. With only one priority level there is no
		// shallower level to fall back to, so that minimizer IS the
		// answer (spec's inconsistent-system scenario). With more than
		// one level, the same situation means this level's addition
		// conflicts with what came before, so it is rejected and the
		// previous level is kept.
		if len(levels) > 1 && !model.constraintsSatisfied(values, cfg.ConvergenceTolerance) {
			lastErr = &DidNotConverge{Iterations: iters}
			break
		}

		lastGoodModel = model
		lastGoodValues = values
		lastGoodIters = iters
		prioritySolved = lvl
		lastIncludedIdx = make(map[int]bool, len(subsetIdx))
		for _, idx := range subsetIdx {
			lastIncludedIdx[idx] = true
		}
		haveGood = true
	}

	if !haveGood {
		if lastErr == nil {
			lastErr = &DidNotConverge{Iterations: cfg.MaxIterations}
		}
		return nil, &FailureOutcome{
			Err:     lastErr,
			NumVars: lay.NumVars(),
			NumEqs:  totalResidualDim(requests),
		}
	}

	var unsatisfied []int
	for i := range requests {
		if !lastIncludedIdx[i] {
			unsatisfied = append(unsatisfied, i)
		}
	}

	return &SolveOutcome{
		layout:         &layoutValues{ids: lay.IDs(), values: lastGoodValues},
		model:          lastGoodModel,
		Iterations:     lastGoodIters,
		Unsatisfied:    unsatisfied,
		Warnings:       lastGoodModel.Warnings(),
		PrioritySolved: prioritySolved,
	}, nil
}
