// SPDX-License-Identifier: MIT
// Package: bspgraph/graphgen
//
// api.go — Build and the topology constructors.
//
// Every constructor:
//   - validates its size parameters first and returns ErrTooFewVertices;
//   - adds vertices in ascending index order through cfg.idFn;
//   - emits edges in a fixed order, drawing one weight per edge.

package graphgen

import (
	"fmt"

	"github.com/katalvlaran/bspgraph/ghs"
)

// Constructor mutates g deterministically.
type Constructor func(g *Graph) error

// Build resolves opts, applies cons in order and returns the vertices.
func Build(opts []Option, cons ...Constructor) ([]ghs.Vertex, error) {
	g := newGraph(newConfig(opts...))
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}
	return g.Vertices(), nil
}

func (g *Graph) addVertices(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = g.cfg.idFn(i)
		g.AddVertex(ids[i])
	}
	return ids
}

// Isolated adds n vertices without edges.
func Isolated(n int) Constructor {
	return func(g *Graph) error {
		if n < 1 {
			return fmt.Errorf("Isolated: n=%d < 1: %w", n, ErrTooFewVertices)
		}
		g.addVertices(n)
		return nil
	}
}

// Path builds v0 - v1 - ... - v(n-1).
func Path(n int) Constructor {
	return func(g *Graph) error {
		if n < 2 {
			return fmt.Errorf("Path: n=%d < 2: %w", n, ErrTooFewVertices)
		}
		ids := g.addVertices(n)
		for i := 0; i+1 < n; i++ {
			if err := g.AddEdge(ids[i], ids[i+1], g.weight()); err != nil {
				return fmt.Errorf("Path: %w", err)
			}
		}
		return nil
	}
}

// Cycle builds the ring C_n.
func Cycle(n int) Constructor {
	return func(g *Graph) error {
		if n < 3 {
			return fmt.Errorf("Cycle: n=%d < 3: %w", n, ErrTooFewVertices)
		}
		ids := g.addVertices(n)
		for i := 0; i < n; i++ {
			if err := g.AddEdge(ids[i], ids[(i+1)%n], g.weight()); err != nil {
				return fmt.Errorf("Cycle: %w", err)
			}
		}
		return nil
	}
}

// Complete builds K_n with edges emitted in (i, j>i) order.
func Complete(n int) Constructor {
	return func(g *Graph) error {
		if n < 2 {
			return fmt.Errorf("Complete: n=%d < 2: %w", n, ErrTooFewVertices)
		}
		ids := g.addVertices(n)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := g.AddEdge(ids[i], ids[j], g.weight()); err != nil {
					return fmt.Errorf("Complete: %w", err)
				}
			}
		}
		return nil
	}
}

// Star connects v0 to every other vertex.
func Star(n int) Constructor {
	return func(g *Graph) error {
		if n < 2 {
			return fmt.Errorf("Star: n=%d < 2: %w", n, ErrTooFewVertices)
		}
		ids := g.addVertices(n)
		for i := 1; i < n; i++ {
			if err := g.AddEdge(ids[0], ids[i], g.weight()); err != nil {
				return fmt.Errorf("Star: %w", err)
			}
		}
		return nil
	}
}

// Grid builds a rows×cols lattice; index r*cols+c names cell (r,c).
func Grid(rows, cols int) Constructor {
	return func(g *Graph) error {
		if rows < 1 || cols < 1 || rows*cols < 2 {
			return fmt.Errorf("Grid: %dx%d: %w", rows, cols, ErrTooFewVertices)
		}
		ids := g.addVertices(rows * cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				i := r*cols + c
				if c+1 < cols {
					if err := g.AddEdge(ids[i], ids[i+1], g.weight()); err != nil {
						return fmt.Errorf("Grid: %w", err)
					}
				}
				if r+1 < rows {
					if err := g.AddEdge(ids[i], ids[i+cols], g.weight()); err != nil {
						return fmt.Errorf("Grid: %w", err)
					}
				}
			}
		}
		return nil
	}
}

// RandomConnected builds a random spanning tree on n vertices (each vertex i>0
// attaches to a uniformly chosen earlier vertex) and adds extra random edges.
// Requires an RNG.
func RandomConnected(n, extra int) Constructor {
	return func(g *Graph) error {
		if n < 2 {
			return fmt.Errorf("RandomConnected: n=%d < 2: %w", n, ErrTooFewVertices)
		}
		if g.cfg.rng == nil {
			return fmt.Errorf("RandomConnected: %w", ErrNeedRandSource)
		}
		if max := n*(n-1)/2 - (n - 1); extra > max {
			return fmt.Errorf("RandomConnected: extra=%d > %d: %w", extra, max, ErrTooManyEdges)
		}
		rng := g.cfg.rng
		ids := g.addVertices(n)
		for i := 1; i < n; i++ {
			if err := g.AddEdge(ids[i], ids[rng.Intn(i)], g.weight()); err != nil {
				return fmt.Errorf("RandomConnected: %w", err)
			}
		}
		for added := 0; added < extra; {
			u, v := rng.Intn(n), rng.Intn(n)
			if u == v || g.HasEdge(ids[u], ids[v]) {
				continue
			}
			if err := g.AddEdge(ids[u], ids[v], g.weight()); err != nil {
				return fmt.Errorf("RandomConnected: %w", err)
			}
			added++
		}
		return nil
	}
}

// Disjoint applies each constructor to its own id namespace (prefix "c<k>."),
// producing one component per constructor.
func Disjoint(cons ...Constructor) Constructor {
	return func(g *Graph) error {
		base := g.cfg.idFn
		defer func() { g.cfg.idFn = base }()
		for k, fn := range cons {
			if fn == nil {
				return fmt.Errorf("Disjoint: nil constructor at index %d: %w", k, ErrConstructFailed)
			}
			prefix := fmt.Sprintf("c%d.", k)
			g.cfg.idFn = func(i int) string { return prefix + base(i) }
			if err := fn(g); err != nil {
				return fmt.Errorf("Disjoint: %w", err)
			}
		}
		return nil
	}
}
