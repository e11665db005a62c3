// SPDX-License-Identifier: MIT

// Package mst is the public entry point: it computes a Minimum Spanning Tree (a
// forest, one tree per connected component) with the GHS protocol executed in
// synchronous rounds by package superstep.
//
// What & Why
//
//   - RunMST validates the input graph, decides which vertices wake up on their own,
//     counts the components that must terminate, runs the driver and returns the
//     drained vertex records. Each returned vertex keeps only its tree edges.
//
//   - The result is unique: edges are totally ordered by (weight, canonical edge
//     identity), so equal weights never make the tree depend on scheduling.
//
//   - Kruskal is the sequential reference used to verify results. It walks the same
//     total order and therefore returns exactly the same forest.
//
// Input rules
//
//   - Vertex ids are non-empty and unique; no self-loops.
//   - Adjacency is symmetric: u lists v with weight w iff v lists u with weight w.
//   - Weights satisfy 0 <= w < ghs.Infinity.
//   - autoWake lists the spontaneous starters. An empty list wakes every vertex.
//     Every component that has at least one edge needs a starter.
//
// Example
//
//	res, err := mst.RunMST(ctx, vertices, nil, mst.WithWorkers(8))
//	if err != nil { ... }
//	for _, e := range res.Edges() {
//		fmt.Println(e.U, e.V, e.Weight)
//	}
package mst
