// SPDX-License-Identifier: MIT
// Package: bspgraph/mst
//
// kruskal.go — sequential reference minimum spanning forest.

package mst

import (
	"sort"

	"github.com/katalvlaran/bspgraph/ghs"
)

// Kruskal computes the minimum spanning forest of vertices with a disjoint-set
// (union-find) structure using path compression and union by rank.
//
// Steps:
//  1. Validate the input exactly like RunMST does.
//  2. Collect every undirected edge once (u < v).
//  3. Sort by (weight, canonical identity), the order GHS uses.
//  4. Scan the sorted edges; keep an edge iff its endpoints are in different sets.
//
// The forest is returned sorted by canonical identity, as Result.Edges does.
//
// Complexity: O(E log E + α(V)·E). Memory: O(V + E).
func Kruskal(vertices []ghs.Vertex) ([]Edge, int64, error) {
	// 1. Validate.
	g, err := newGraph(vertices)
	if err != nil {
		return nil, 0, err
	}

	// 2. Collect edges once.
	var edges []Edge
	for _, u := range g.ids {
		for v, w := range g.adj[u] {
			if u < v {
				edges = append(edges, Edge{U: u, V: v, Weight: w})
			}
		}
	}

	// 3. Total order.
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Weight != edges[j].Weight {
			return edges[i].Weight < edges[j].Weight
		}
		return edges[i].ID().Less(edges[j].ID())
	})

	// 4. Union-find scan.
	parent := make(map[string]string, len(g.ids))
	rank := make(map[string]int, len(g.ids))
	for _, id := range g.ids {
		parent[id] = id
	}
	find := func(u string) string {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}
		return u
	}
	union := func(ru, rv string) {
		if rank[ru] < rank[rv] {
			parent[ru] = rv
			return
		}
		parent[rv] = ru
		if rank[ru] == rank[rv] {
			rank[ru]++
		}
	}

	var (
		forest []Edge
		total  int64
	)
	for _, e := range edges {
		ru, rv := find(e.U), find(e.V)
		if ru == rv {
			continue
		}
		union(ru, rv)
		forest = append(forest, e)
		total += e.Weight
	}
	sortEdges(forest)
	return forest, total, nil
}
