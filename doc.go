// SPDX-License-Identifier: MIT

// Package bspgraph computes minimum spanning forests with the
// Gallager–Humblet–Spira (GHS) protocol, executed as synchronous bulk rounds
// (supersteps) over a pluggable record substrate.
//
// What is inside?
//
//	ghs/           vertex records, the seven-kind message envelope, RoundClock
//	               and the pure protocol engine ProcessVertex
//	superstep/     the round driver (Running → Draining → Done), the Substrate
//	               and Terminator contracts, in-memory implementations
//	badgerstore/   durable Substrate and termination flag on BadgerDB
//	mst/           RunMST facade, input validation, components, Kruskal reference
//	graphgen/      deterministic fixture graphs (path, cycle, grid, random)
//	graphio/       edge-list CSV in, tree CSV and YAML summary out
//	config/        HCL job files
//	metrics/       Prometheus recorder and /metrics exporter
//	ctxlog/        slog logger carried in context.Context
//	cli/           flag parsing and exit codes
//	cmd/ghsmst/    the command-line tool
//
// Quick example:
//
//	    A──3──B
//	     \    |
//	      2   1
//	       \  |
//	        C─┘
//
//	res, _ := mst.RunMST(ctx, vertices, nil)
//	res.Edges() // A-C 2, B-C 1
//
// Ties between equal weights are broken by the canonical edge identity, so
// every run of the same graph yields the same forest regardless of worker count
// or substrate.
package bspgraph
