// SPDX-License-Identifier: MIT
// Package: bspgraph/ghs
//
// vertex.go — the Vertex record: identity, weighted adjacency and protocol state.
//
// Lifecycle:
//   - Created once per input vertex by NewVertex (edges Basic, Sleeping, level 0).
//   - Mutated in place by ProcessVertex, at most once per round, by exactly one task.
//   - Replaced at the end of a run by Trim, which keeps only Branch edges.
//
// Determinism:
//   - Neighbors() and BranchNeighbors() return ids in ascending order; every loop
//     over adjacency in this package goes through them, never over raw map order.

package ghs

import (
	"fmt"
	"sort"
)

// Vertex is the per-vertex record exchanged between rounds.
type Vertex struct {
	// ID is the globally unique, lexically ordered vertex identifier.
	ID string `json:"id" msgpack:"id"`

	// Edges maps neighbor ID to edge weight (undirected, 0 <= w < Infinity).
	Edges map[string]int64 `json:"edges" msgpack:"e"`

	// EdgeState has exactly one entry per Edges entry once the vertex is attached.
	EdgeState map[string]EdgeState `json:"edge_state,omitempty" msgpack:"es"`

	// AutoWake marks vertices that start the protocol spontaneously.
	AutoWake bool `json:"auto_wake" msgpack:"aw"`

	// Attached reports whether protocol state has been attached (first touch done).
	Attached bool `json:"attached" msgpack:"at"`

	Status       Status `json:"status" msgpack:"st"`
	FragLevel    int    `json:"frag_level" msgpack:"fl"`
	FragIdentity EdgeID `json:"frag_identity" msgpack:"fi"`

	// FindCount is the number of branch children whose Report is outstanding.
	FindCount int `json:"find_count" msgpack:"fc"`

	// InBranch is the branch edge toward the fragment's core.
	InBranch string `json:"in_branch,omitempty" msgpack:"ib,omitempty"`

	// TestEdge is the Basic edge currently probed; empty when none.
	TestEdge string `json:"test_edge,omitempty" msgpack:"te,omitempty"`

	BestEdge         string `json:"best_edge,omitempty" msgpack:"be,omitempty"`
	BestWeight       int64  `json:"best_weight" msgpack:"bw"`
	BestEdgeIdentity EdgeID `json:"best_edge_identity" msgpack:"bi"`
}

// NewVertex returns a Sleeping vertex with a private copy of edges.
// AutoWake defaults to true; ingestion decides the final value.
func NewVertex(id string, edges map[string]int64) Vertex {
	cp := make(map[string]int64, len(edges))
	for n, w := range edges {
		cp[n] = w
	}
	return Vertex{
		ID:         id,
		Edges:      cp,
		AutoWake:   true,
		Status:     Sleeping,
		BestWeight: Infinity,
	}
}

// Clone returns a deep copy; the result shares no maps with v.
func (v Vertex) Clone() Vertex {
	out := v
	if v.Edges != nil {
		out.Edges = make(map[string]int64, len(v.Edges))
		for n, w := range v.Edges {
			out.Edges[n] = w
		}
	}
	if v.EdgeState != nil {
		out.EdgeState = make(map[string]EdgeState, len(v.EdgeState))
		for n, s := range v.EdgeState {
			out.EdgeState[n] = s
		}
	}
	return out
}

// Neighbors returns adjacent vertex IDs in ascending order.
func (v *Vertex) Neighbors() []string {
	out := make([]string, 0, len(v.Edges))
	for n := range v.Edges {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// BranchNeighbors returns neighbors whose edge is in Branch state, ascending.
func (v *Vertex) BranchNeighbors() []string {
	out := make([]string, 0, len(v.Edges))
	for _, n := range v.Neighbors() {
		if v.EdgeState[n] == Branch {
			out = append(out, n)
		}
	}
	return out
}

// Weight returns the weight of edge {v, n}.
func (v *Vertex) Weight(n string) (int64, error) {
	w, ok := v.Edges[n]
	if !ok {
		return 0, fmt.Errorf("%w: %q has no edge to %q", ErrUnknownEdge, v.ID, n)
	}
	return w, nil
}

// Validate checks identity and adjacency weights.
func (v *Vertex) Validate() error {
	if v.ID == "" {
		return ErrEmptyVertexID
	}
	for n, w := range v.Edges {
		if n == "" {
			return fmt.Errorf("%w: neighbor of %q", ErrEmptyVertexID, v.ID)
		}
		if w < 0 || w >= Infinity {
			return fmt.Errorf("%w: %q-%q weight %d", ErrBadWeight, v.ID, n, w)
		}
	}
	return nil
}

// Trim returns the MST-only record: adjacency restricted to Branch edges.
// Protocol scalars are kept; trimming a trimmed vertex is the identity.
func (v Vertex) Trim() Vertex {
	out := v.Clone()
	out.Edges = make(map[string]int64)
	out.EdgeState = make(map[string]EdgeState)
	for n, w := range v.Edges {
		if v.EdgeState[n] == Branch {
			out.Edges[n] = w
			out.EdgeState[n] = Branch
		}
	}
	return out
}

// attach initializes EdgeState on first touch. It reports whether this call
// was the first touch.
func (v *Vertex) attach() bool {
	if v.EdgeState == nil {
		v.EdgeState = make(map[string]EdgeState, len(v.Edges))
	}
	for n := range v.Edges {
		if _, ok := v.EdgeState[n]; !ok {
			v.EdgeState[n] = Basic
		}
	}
	if v.Attached {
		return false
	}
	v.Attached = true
	v.BestWeight = Infinity
	return true
}

// minBasicEdge returns the Basic neighbor with the smallest (weight, neighbor id).
func (v *Vertex) minBasicEdge() (string, bool) {
	best, bestW := "", Infinity
	for _, n := range v.Neighbors() {
		if v.EdgeState[n] != Basic {
			continue
		}
		if w := v.Edges[n]; best == "" || w < bestW {
			best, bestW = n, w
		}
	}
	return best, best != ""
}
