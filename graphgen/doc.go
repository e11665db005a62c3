// SPDX-License-Identifier: MIT

// Package graphgen builds deterministic weighted, undirected graph fixtures as
// []ghs.Vertex, ready for mst.RunMST.
//
// Composition
//
//	vs, err := graphgen.Build(
//		[]graphgen.Option{graphgen.WithSeed(7), graphgen.WithDistinctWeights()},
//		graphgen.RandomConnected(40, 60),
//	)
//
// Constructors run in order against one Graph; ids come from the configured
// IDFn, weights from the configured WeightFn. Same options, seed and order give
// the same graph.
//
// Option constructors panic on meaningless input (nil functions, empty ranges);
// constructors themselves only return sentinel errors.
package graphgen
