// SPDX-License-Identifier: MIT
// Package: bspgraph/mst
//
// components.go — connected components by breadth-first search.

package mst

import (
	"sort"

	"github.com/katalvlaran/bspgraph/ghs"
)

// walker holds the mutable state of one component search.
type walker struct {
	g       *graph
	queue   []string
	visited map[string]bool
}

// components returns every connected component with its ids ascending; components
// are ordered by their smallest id.
func (g *graph) components() [][]string {
	w := &walker{g: g, visited: make(map[string]bool, len(g.ids))}
	var out [][]string
	for _, id := range g.ids {
		if w.visited[id] {
			continue
		}
		out = append(out, w.walk(id))
	}
	return out
}

// walk visits everything reachable from start.
func (w *walker) walk(start string) []string {
	w.enqueue(start)
	var comp []string
	for len(w.queue) > 0 {
		id := w.queue[0]
		w.queue = w.queue[1:]
		comp = append(comp, id)
		for n := range w.g.adj[id] {
			if !w.visited[n] {
				w.enqueue(n)
			}
		}
	}
	sort.Strings(comp)
	return comp
}

func (w *walker) enqueue(id string) {
	w.visited[id] = true
	w.queue = append(w.queue, id)
}

// Components validates vertices and returns their connected components.
func Components(vertices []ghs.Vertex) ([][]string, error) {
	g, err := newGraph(vertices)
	if err != nil {
		return nil, err
	}
	return g.components(), nil
}
