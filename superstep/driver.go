// SPDX-License-Identifier: MIT
// Package: bspgraph/superstep
//
// driver.go — the round loop, per-group computation and the final drain.
//
// Round r:
//  1. GroupByKey over the current generation; every group is handed to the
//     worker pool (errgroup, limit Workers) under the round deadline.
//  2. Each worker clones its vertex, sorts the inbox, runs ghs.ProcessVertex with
//     a RoundClock based at ghs.RoundBase(r), and signals halts to the Terminator.
//  3. Outputs are collected per key and emitted, in key order, as generation r+1.
//  4. The Terminator is polled; once done the driver drains and stops.

package superstep

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/bspgraph/ctxlog"
	"github.com/katalvlaran/bspgraph/ghs"
)

// Driver runs the GHS vertex program over a Substrate.
type Driver struct {
	cfg   RunConfig
	store Substrate
	term  Terminator
	rec   Recorder

	phase atomic.Int32

	mu     sync.Mutex
	halted map[ghs.EdgeID]struct{}
}

// Option configures a Driver.
type Option func(*Driver)

// WithRecorder attaches a progress recorder; nil keeps the no-op recorder.
func WithRecorder(r Recorder) Option {
	return func(d *Driver) {
		if r != nil {
			d.rec = r
		}
	}
}

// NewDriver validates cfg and binds the collaborators.
// A nil Terminator is accepted only when cfg.ExpectedFragments is zero.
func NewDriver(cfg RunConfig, store Substrate, term Terminator, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: substrate is nil", ErrBadConfig)
	}
	if term == nil && cfg.ExpectedFragments > 0 {
		return nil, fmt.Errorf("%w: terminator is nil", ErrBadConfig)
	}
	d := &Driver{
		cfg:    cfg,
		store:  store,
		term:   term,
		rec:    nopRecorder{},
		halted: make(map[ghs.EdgeID]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Phase returns the current driver state.
func (d *Driver) Phase() Phase { return Phase(d.phase.Load()) }

// Run loads initial, executes rounds until termination, drains and returns the
// final vertex records sorted by id.
//
// Errors:
//   - ctx.Err() when cancelled, checked between rounds.
//   - ErrRoundLimit when no termination is observed within MaxRounds.
//   - ErrRoundTimeout when a round outlives RoundTimeout.
//   - *RoundError wrapping ghs violations and record errors.
func (d *Driver) Run(ctx context.Context, initial []Record) ([]ghs.Vertex, Stats, error) {
	var stats Stats
	log := ctxlog.FromContext(ctx)

	d.mu.Lock()
	d.halted = make(map[ghs.EdgeID]struct{})
	d.mu.Unlock()

	if err := d.store.Load(ctx, initial); err != nil {
		return nil, stats, fmt.Errorf("superstep: load: %w", err)
	}
	d.phase.Store(int32(Running))
	log.Info("run started", "records", len(initial), "max_rounds", d.cfg.MaxRounds,
		"workers", d.cfg.Workers, "expected_fragments", d.cfg.ExpectedFragments)

	for round := 0; ; round++ {
		if round >= d.cfg.MaxRounds {
			return nil, stats, fmt.Errorf("%w: %d rounds", ErrRoundLimit, round)
		}
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		start := time.Now()
		rs, err := d.round(ctx, round)
		if err != nil {
			return nil, stats, err
		}
		elapsed := time.Since(start)
		d.rec.ObserveRound(Running, round, elapsed, rs)
		log.Debug("round finished", "round", round, "groups", rs.Groups, "messages", rs.Messages,
			"emitted", rs.Emitted, "deferred", rs.Deferred, "elapsed", elapsed)

		stats.Rounds = round + 1
		stats.Messages += rs.Messages
		stats.Deferred += rs.Deferred
		stats.Fragments = d.fragments()

		done, err := d.terminated(ctx)
		if err != nil {
			return nil, stats, &RoundError{Round: round, Err: err}
		}
		if done {
			log.Info("termination observed", "round", round, "fragments", stats.Fragments)
			break
		}
	}

	d.phase.Store(int32(Draining))
	if err := d.Drain(ctx); err != nil {
		return nil, stats, err
	}

	recs, err := d.store.Snapshot(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("superstep: snapshot: %w", err)
	}
	vertices := make([]ghs.Vertex, 0, len(recs))
	for _, r := range recs {
		if r.Vertex != nil {
			vertices = append(vertices, *r.Vertex)
		}
	}
	sort.Slice(vertices, func(i, j int) bool { return vertices[i].ID < vertices[j].ID })

	d.phase.Store(int32(Done))
	log.Info("run done", "rounds", stats.Rounds, "messages", stats.Messages,
		"deferred", stats.Deferred, "vertices", len(vertices))
	return vertices, stats, nil
}

// terminated polls the Terminator; zero expected fragments means nothing to wait for.
func (d *Driver) terminated(ctx context.Context) (bool, error) {
	if d.cfg.ExpectedFragments == 0 {
		return true, nil
	}
	return d.term.CheckTermination(ctx)
}

// fragments returns the number of distinct fragments seen halting so far.
func (d *Driver) fragments() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.halted)
}

// groupResult is the output of one vertex group.
type groupResult struct {
	key     string
	records []Record
	stats   RoundStats
}

// round executes one superstep and emits the next generation.
func (d *Driver) round(ctx context.Context, round int) (RoundStats, error) {
	rctx := ctx
	if d.cfg.RoundTimeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(ctx, d.cfg.RoundTimeout)
		defer cancel()
	}
	ctxlog.FromContext(ctx).Debug("round started", "round", round)

	g, gctx := errgroup.WithContext(rctx)
	g.SetLimit(d.cfg.Workers)

	var (
		mu      sync.Mutex
		results []groupResult
	)
	groupErr := d.store.GroupByKey(gctx, func(key string, group []Record) error {
		if err := gctx.Err(); err != nil {
			return err
		}
		g.Go(func() error {
			res, err := d.computeGroup(gctx, round, key, group)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
		return nil
	})
	err := g.Wait()
	if err == nil {
		err = groupErr
	}
	if err != nil {
		return RoundStats{}, d.roundFailure(ctx, round, err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].key < results[j].key })
	var (
		rs   RoundStats
		next []Record
	)
	for _, res := range results {
		rs.merge(res.stats)
		next = append(next, res.records...)
	}
	if err := d.store.EmitNextRound(rctx, next); err != nil {
		return RoundStats{}, d.roundFailure(ctx, round, fmt.Errorf("emit: %w", err))
	}
	return rs, nil
}

// roundFailure maps a failed round to the error returned by Run.
func (d *Driver) roundFailure(ctx context.Context, round int, err error) error {
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, context.DeadlineExceeded):
		return &RoundError{Round: round, Err: fmt.Errorf("%w after %s", ErrRoundTimeout, d.cfg.RoundTimeout)}
	}
	var re *RoundError
	if errors.As(err, &re) {
		return err
	}
	return &RoundError{Round: round, Err: err}
}

// computeGroup processes one vertex and its inbox. The stored record is cloned so
// the previous generation is never mutated.
func (d *Driver) computeGroup(ctx context.Context, round int, key string, group []Record) (groupResult, error) {
	if err := ctx.Err(); err != nil {
		return groupResult{}, err
	}
	fail := func(err error) (groupResult, error) {
		return groupResult{}, &RoundError{Round: round, Vertex: key, Err: err}
	}

	var (
		vertex *ghs.Vertex
		inbox  []ghs.Message
	)
	for _, r := range group {
		if err := r.Validate(); err != nil {
			return fail(err)
		}
		if r.Vertex != nil {
			if vertex != nil {
				return fail(ErrDuplicateVertex)
			}
			if r.Vertex.ID != key {
				return fail(fmt.Errorf("%w: %q under %q", ErrKeyMismatch, r.Vertex.ID, key))
			}
			v := r.Vertex.Clone()
			vertex = &v
			continue
		}
		inbox = append(inbox, r.Message.Clone())
	}
	if vertex == nil {
		return fail(fmt.Errorf("%w: %d message(s)", ErrOrphanMessage, len(inbox)))
	}

	ghs.SortInbox(inbox)
	out, err := ghs.ProcessVertex(vertex, inbox, ghs.NewRoundClock(ghs.RoundBase(round)))
	if err != nil {
		return fail(err)
	}

	st := RoundStats{Groups: 1, Messages: len(inbox), Emitted: len(out.Outbox), Deferred: out.Deferred}
	if len(inbox) > 0 {
		st.ByKind = make(map[ghs.Kind]int, len(ghs.Kinds))
		for i := range inbox {
			st.ByKind[inbox[i].Kind]++
		}
	}
	if out.Halted {
		st.Halts = 1
		if err := d.signal(ctx, out.Fragment); err != nil {
			return fail(err)
		}
	}

	records := make([]Record, 0, 1+len(out.Outbox))
	records = append(records, VertexRecord(*vertex))
	for _, m := range out.Outbox {
		records = append(records, MessageRecord(m))
	}
	return groupResult{key: key, records: records, stats: st}, nil
}

// signal records a halted fragment locally and on the Terminator.
func (d *Driver) signal(ctx context.Context, fragment ghs.EdgeID) error {
	d.mu.Lock()
	_, seen := d.halted[fragment]
	d.halted[fragment] = struct{}{}
	d.mu.Unlock()
	if !seen {
		ctxlog.FromContext(ctx).Info("fragment halted", "fragment", fragment.String())
		d.rec.ObserveHalt(fragment)
	}
	if d.term == nil {
		return nil
	}
	return d.term.SignalTermination(ctx, fragment)
}

// Drain replaces the current generation with its vertex records, trimmed to
// Branch edges. Message records and vertex records stored under a foreign key
// are dropped. Draining a drained generation leaves it unchanged.
func (d *Driver) Drain(ctx context.Context) error {
	start := time.Now()
	var (
		kept    []Record
		dropped int
	)
	err := d.store.GroupByKey(ctx, func(key string, group []Record) error {
		for _, r := range group {
			if r.Vertex != nil && r.Vertex.ID == key {
				kept = append(kept, VertexRecord(r.Vertex.Trim()))
				continue
			}
			dropped++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("superstep: drain: %w", err)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Key < kept[j].Key })
	if err := d.store.EmitNextRound(ctx, kept); err != nil {
		return fmt.Errorf("superstep: drain: %w", err)
	}

	d.rec.ObserveRound(Draining, -1, time.Since(start), RoundStats{Groups: len(kept)})
	ctxlog.FromContext(ctx).Info("drained", "vertices", len(kept), "dropped", dropped)
	return nil
}
