// SPDX-License-Identifier: MIT
// Package: bspgraph/mst
//
// ingest.go — input validation and initial record construction.

package mst

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/katalvlaran/bspgraph/superstep"
)

// graph is the validated, indexed form of the input.
type graph struct {
	ids []string                    // ascending
	adj map[string]map[string]int64 // shared with the caller's vertices; read-only
}

// newGraph validates vertices.
//
// Steps:
//  1. Non-empty input; ids non-empty and unique.
//  2. Per edge: neighbor id non-empty, not self, present; weight in range.
//  3. Symmetry: every u→v has v→u with the same weight.
func newGraph(vertices []ghs.Vertex) (*graph, error) {
	if len(vertices) == 0 {
		return nil, ErrEmptyGraph
	}
	g := &graph{
		ids: make([]string, 0, len(vertices)),
		adj: make(map[string]map[string]int64, len(vertices)),
	}
	for i := range vertices {
		id := vertices[i].ID
		if id == "" {
			return nil, fmt.Errorf("%w: vertex #%d", ErrEmptyVertexID, i)
		}
		if _, dup := g.adj[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateVertex, id)
		}
		g.adj[id] = vertices[i].Edges
		g.ids = append(g.ids, id)
	}
	sort.Strings(g.ids)

	for _, u := range g.ids {
		for v, w := range g.adj[u] {
			switch {
			case v == "":
				return nil, fmt.Errorf("%w: neighbor of %q", ErrEmptyVertexID, u)
			case v == u:
				return nil, fmt.Errorf("%w: %q", ErrSelfLoop, u)
			case w < 0 || w >= ghs.Infinity:
				return nil, fmt.Errorf("%w: %q-%q weight %d", ErrWeightRange, u, v, w)
			}
			back, ok := g.adj[v]
			if !ok {
				return nil, fmt.Errorf("%w: %q-%q", ErrUnknownNeighbor, u, v)
			}
			if bw, ok := back[u]; !ok || bw != w {
				return nil, fmt.Errorf("%w: %q-%q", ErrAsymmetricEdge, u, v)
			}
		}
	}
	return g, nil
}

// plan is what the driver needs besides the records.
type plan struct {
	records    []superstep.Record
	components [][]string
	expected   int // components with at least one edge
}

// prepare builds fresh vertex records and checks the wake set.
// An empty autoWake wakes every vertex.
func (g *graph) prepare(autoWake []string) (plan, error) {
	wake := make(map[string]bool, len(autoWake))
	for _, id := range autoWake {
		if _, ok := g.adj[id]; !ok {
			return plan{}, fmt.Errorf("%w: %q", ErrUnknownWakeVertex, id)
		}
		wake[id] = true
	}
	all := len(wake) == 0

	p := plan{components: g.components()}
	for _, comp := range p.components {
		if len(comp) < 2 {
			continue
		}
		p.expected++
		if all {
			continue
		}
		starter := false
		for _, id := range comp {
			if wake[id] {
				starter = true
				break
			}
		}
		if !starter {
			return plan{}, fmt.Errorf("%w: component of %q (%d vertices)", ErrNoWakeVertex, comp[0], len(comp))
		}
	}

	p.records = make([]superstep.Record, 0, len(g.ids))
	for _, id := range g.ids {
		v := ghs.NewVertex(id, g.adj[id])
		v.AutoWake = all || wake[id]
		p.records = append(p.records, superstep.VertexRecord(v))
	}
	return p, nil
}
