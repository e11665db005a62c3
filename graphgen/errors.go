// SPDX-License-Identifier: MIT
// Package: bspgraph/graphgen
//
// errors.go — sentinel errors. Context is attached with %w at the call site.

package graphgen

import "errors"

var (
	// ErrTooFewVertices indicates a size parameter below the constructor's minimum.
	ErrTooFewVertices = errors.New("graphgen: parameter too small")

	// ErrNeedRandSource indicates a stochastic constructor without WithSeed/WithRand.
	ErrNeedRandSource = errors.New("graphgen: rng is required")

	// ErrDuplicateEdge indicates a second edge between the same pair.
	ErrDuplicateEdge = errors.New("graphgen: duplicate edge")

	// ErrSelfLoop indicates an edge from a vertex to itself.
	ErrSelfLoop = errors.New("graphgen: self-loop")

	// ErrTooManyEdges indicates more edges requested than a simple graph can hold.
	ErrTooManyEdges = errors.New("graphgen: too many edges requested")

	// ErrConstructFailed indicates a nil constructor or an exhausted strategy.
	ErrConstructFailed = errors.New("graphgen: construction failed")
)
