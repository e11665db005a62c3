// SPDX-License-Identifier: MIT
// Package: bspgraph/graphgen
//
// graph.go — Graph: the accumulator constructors write into.

package graphgen

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/bspgraph/ghs"
)

// Graph is a simple undirected weighted graph under construction.
type Graph struct {
	cfg   config
	order []string
	adj   map[string]map[string]int64
	used  map[int64]bool
	edges int
}

func newGraph(cfg config) *Graph {
	return &Graph{cfg: cfg, adj: make(map[string]map[string]int64), used: make(map[int64]bool)}
}

// AddVertex inserts id; inserting an existing id is a no-op.
func (g *Graph) AddVertex(id string) {
	if _, ok := g.adj[id]; ok {
		return
	}
	g.adj[id] = make(map[string]int64)
	g.order = append(g.order, id)
}

// HasEdge reports whether {u,v} exists.
func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.adj[u][v]
	return ok
}

// AddEdge inserts {u,v} with weight w, creating missing endpoints. When
// distinct weights are configured, w is bumped to the next unused value.
func (g *Graph) AddEdge(u, v string, w int64) error {
	if u == v {
		return fmt.Errorf("%w: %q", ErrSelfLoop, u)
	}
	if g.HasEdge(u, v) {
		return fmt.Errorf("%w: %q-%q", ErrDuplicateEdge, u, v)
	}
	if g.cfg.distinct {
		for g.used[w] {
			w++
		}
	}
	g.used[w] = true
	g.AddVertex(u)
	g.AddVertex(v)
	g.adj[u][v] = w
	g.adj[v][u] = w
	g.edges++
	return nil
}

// weight draws the next weight from the configured policy.
func (g *Graph) weight() int64 { return g.cfg.weightFn(g.cfg.rng) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Vertices returns one fresh ghs.Vertex per vertex, sorted by id.
func (g *Graph) Vertices() []ghs.Vertex {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	sort.Strings(ids)
	out := make([]ghs.Vertex, 0, len(ids))
	for _, id := range ids {
		out = append(out, ghs.NewVertex(id, g.adj[id]))
	}
	return out
}
