// SPDX-License-Identifier: MIT
// Package: bspgraph/mst
//
// result.go — Result and spanning-forest helpers.

package mst

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/katalvlaran/bspgraph/superstep"
)

// Edge is one undirected tree edge with U < V.
type Edge struct {
	U      string `json:"u" yaml:"u"`
	V      string `json:"v" yaml:"v"`
	Weight int64  `json:"weight" yaml:"weight"`
}

// ID returns the canonical identity of e.
func (e Edge) ID() ghs.EdgeID { return ghs.Canonical(e.U, e.V) }

// Result is the outcome of RunMST.
type Result struct {
	// Vertices are the drained records, sorted by id; each keeps only tree edges.
	Vertices []ghs.Vertex

	// Stats summarizes the run.
	Stats superstep.Stats

	// Components lists connected components of the input, ids ascending.
	Components [][]string
}

// Edges returns every tree edge once, sorted by canonical identity.
func (r *Result) Edges() []Edge {
	return ForestEdges(r.Vertices)
}

// TotalWeight sums the weights of Edges().
func (r *Result) TotalWeight() int64 {
	var total int64
	for _, e := range r.Edges() {
		total += e.Weight
	}
	return total
}

// Verify recomputes the forest of input with Kruskal and compares edge sets.
func (r *Result) Verify(input []ghs.Vertex) error {
	want, _, err := Kruskal(input)
	if err != nil {
		return err
	}
	got := r.Edges()
	if len(got) != len(want) {
		return fmt.Errorf("%w: %d edges, reference has %d", ErrVerifyMismatch, len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			return fmt.Errorf("%w: edge #%d is %s (%d), reference %s (%d)",
				ErrVerifyMismatch, i, got[i].ID(), got[i].Weight, want[i].ID(), want[i].Weight)
		}
	}
	return nil
}

// ForestEdges collects the edges listed by vertices, once each, sorted by
// canonical identity. Drained vertices list only tree edges.
func ForestEdges(vertices []ghs.Vertex) []Edge {
	seen := make(map[ghs.EdgeID]bool)
	var out []Edge
	for _, v := range vertices {
		for n, w := range v.Edges {
			id := ghs.Canonical(v.ID, n)
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, Edge{U: id.Lo, V: id.Hi, Weight: w})
		}
	}
	sortEdges(out)
	return out
}

func sortEdges(es []Edge) {
	sort.Slice(es, func(i, j int) bool { return es[i].ID().Less(es[j].ID()) })
}
