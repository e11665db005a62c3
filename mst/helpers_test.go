// SPDX-License-Identifier: MIT
package mst_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/katalvlaran/bspgraph/ctxlog"
	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/katalvlaran/bspgraph/mst"
)

type edge struct {
	u, v string
	w    int64
}

// build returns one vertex per id with symmetric adjacency from edges.
func build(ids []string, edges []edge) []ghs.Vertex {
	adj := make(map[string]map[string]int64, len(ids))
	for _, id := range ids {
		adj[id] = map[string]int64{}
	}
	for _, e := range edges {
		adj[e.u][e.v] = e.w
		adj[e.v][e.u] = e.w
	}
	out := make([]ghs.Vertex, 0, len(ids))
	for _, id := range ids {
		out = append(out, ghs.NewVertex(id, adj[id]))
	}
	return out
}

func mstEdges(es ...edge) []mst.Edge {
	out := make([]mst.Edge, 0, len(es))
	for _, e := range es {
		id := ghs.Canonical(e.u, e.v)
		out = append(out, mst.Edge{U: id.Lo, V: id.Hi, Weight: e.w})
	}
	return out
}

// quietContext carries a logger that discards everything.
func quietContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}
