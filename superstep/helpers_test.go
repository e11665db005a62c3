// SPDX-License-Identifier: MIT
package superstep_test

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/katalvlaran/bspgraph/ctxlog"
	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/katalvlaran/bspgraph/superstep"
)

type edge struct {
	u, v string
	w    int64
}

// records builds one auto-waking vertex record per id from an undirected edge list.
func records(ids []string, edges []edge) []superstep.Record {
	adj := make(map[string]map[string]int64, len(ids))
	for _, id := range ids {
		adj[id] = map[string]int64{}
	}
	for _, e := range edges {
		adj[e.u][e.v] = e.w
		adj[e.v][e.u] = e.w
	}
	out := make([]superstep.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, superstep.VertexRecord(ghs.NewVertex(id, adj[id])))
	}
	return out
}

// branchEdges returns the canonical identities of every remaining edge, ascending.
func branchEdges(vs []ghs.Vertex) []ghs.EdgeID {
	seen := map[ghs.EdgeID]bool{}
	var out []ghs.EdgeID
	for _, v := range vs {
		for n := range v.Edges {
			e := ghs.Canonical(v.ID, n)
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func config(workers, expected int) superstep.RunConfig {
	cfg := superstep.DefaultRunConfig()
	cfg.Workers = workers
	cfg.ExpectedFragments = expected
	return cfg
}

// quietContext carries a logger that discards everything.
func quietContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}
