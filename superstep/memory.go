// SPDX-License-Identifier: MIT
// Package: bspgraph/superstep
//
// memory.go — in-process Substrate and Terminator.

package superstep

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/bspgraph/ghs"
)

// MemoryStore keeps the current generation in a map keyed by record key.
// GroupByKey visits keys in ascending order.
type MemoryStore struct {
	mu     sync.RWMutex
	groups map[string][]Record
	closed bool
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{groups: make(map[string][]Record)}
}

// Load replaces the current generation with records.
func (s *MemoryStore) Load(ctx context.Context, records []Record) error {
	return s.EmitNextRound(ctx, records)
}

// EmitNextRound replaces the current generation with records.
func (s *MemoryStore) EmitNextRound(ctx context.Context, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next := make(map[string][]Record)
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
		next[r.Key] = append(next[r.Key], r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.groups = next
	return nil
}

// GroupByKey calls fn once per key, in ascending key order, without holding the lock.
func (s *MemoryStore) GroupByKey(ctx context.Context, fn func(key string, group []Record) error) error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrClosed
	}
	groups := s.groups
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)

	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		group := make([]Record, len(groups[k]))
		copy(group, groups[k])
		if err := fn(k, group); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns every record of the current generation in key order.
func (s *MemoryStore) Snapshot(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []Record
	err := s.GroupByKey(ctx, func(_ string, group []Record) error {
		out = append(out, group...)
		return nil
	})
	return out, err
}

// Close releases the generation; later calls fail with ErrClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.groups = nil
	return nil
}

// MemoryFlag completes once `expected` distinct fragments have signalled.
type MemoryFlag struct {
	expected int
	done     atomic.Bool

	mu   sync.Mutex
	seen map[ghs.EdgeID]struct{}
}

// NewMemoryFlag returns a flag waiting for expected fragments. A non-positive
// expected count is done from the start.
func NewMemoryFlag(expected int) *MemoryFlag {
	f := &MemoryFlag{expected: expected, seen: make(map[ghs.EdgeID]struct{})}
	f.done.Store(expected <= 0)
	return f
}

// SignalTermination records fragment; repeated signals for one fragment count once.
func (f *MemoryFlag) SignalTermination(_ context.Context, fragment ghs.EdgeID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen[fragment] = struct{}{}
	if len(f.seen) >= f.expected {
		f.done.Store(true)
	}
	return nil
}

// CheckTermination reports whether every expected fragment has signalled.
func (f *MemoryFlag) CheckTermination(context.Context) (bool, error) {
	return f.done.Load(), nil
}

// Fragments returns the signalled fragments in ascending order.
func (f *MemoryFlag) Fragments() []ghs.EdgeID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ghs.EdgeID, 0, len(f.seen))
	for e := range f.seen {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
