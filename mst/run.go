// SPDX-License-Identifier: MIT
// Package: bspgraph/mst
//
// run.go — RunMST.

package mst

import (
	"context"
	"math/bits"

	"github.com/katalvlaran/bspgraph/ctxlog"
	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/katalvlaran/bspgraph/superstep"
)

// minRoundBudget is the smallest derived round budget.
const minRoundBudget = 64

// RoundBudget returns the derived round limit for n vertices: 16·n·(bitlen(n)+1),
// at least minRoundBudget. GHS finishes in O(n log n) time units.
func RoundBudget(n int) int {
	b := 16 * n * (bits.Len(uint(n)) + 1)
	if b < minRoundBudget {
		return minRoundBudget
	}
	return b
}

// RunMST computes the minimum spanning forest of vertices.
//
// Steps:
//  1. Apply options; surface ErrOptionViolation.
//  2. Validate the graph and the wake set; find components.
//  3. Build the RunConfig (one expected fragment per component with edges).
//  4. Run the driver on the chosen substrate and terminator.
//
// Errors: validation sentinels of this package, superstep errors (ErrRoundLimit,
// ErrRoundTimeout, *RoundError), ghs violations, ctx.Err(). No partial result is
// returned on error.
func RunMST(ctx context.Context, vertices []ghs.Vertex, autoWake []string, opts ...Option) (*Result, error) {
	// 1. Options.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// 2. Input.
	g, err := newGraph(vertices)
	if err != nil {
		return nil, err
	}
	p, err := g.prepare(autoWake)
	if err != nil {
		return nil, err
	}

	// 3. Configuration.
	cfg := superstep.RunConfig{
		MaxRounds:         o.MaxRounds,
		Workers:           o.Workers,
		RoundTimeout:      o.RoundTimeout,
		ExpectedFragments: p.expected,
	}
	if cfg.MaxRounds == 0 {
		cfg.MaxRounds = RoundBudget(len(g.ids))
	}

	store := o.Substrate
	if store == nil {
		mem := superstep.NewMemoryStore()
		defer mem.Close()
		store = mem
	}
	newTerm := o.Terminator
	if newTerm == nil {
		newTerm = func(expected int) superstep.Terminator { return superstep.NewMemoryFlag(expected) }
	}

	// 4. Run.
	var dopts []superstep.Option
	if o.Recorder != nil {
		dopts = append(dopts, superstep.WithRecorder(o.Recorder))
	}
	d, err := superstep.NewDriver(cfg, store, newTerm(p.expected), dopts...)
	if err != nil {
		return nil, err
	}
	ctx = ctxlog.With(ctx, "vertices", len(g.ids), "components", len(p.components))
	out, stats, err := d.Run(ctx, p.records)
	if err != nil {
		return nil, err
	}
	return &Result{Vertices: out, Stats: stats, Components: p.components}, nil
}
