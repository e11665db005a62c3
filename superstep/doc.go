// SPDX-License-Identifier: MIT

// Package superstep drives a vertex program in synchronous bulk rounds
// (Bulk Synchronous Parallel supersteps) over a pluggable record substrate.
//
// What & Why
//
//   - A run is a sequence of rounds. The input of round r is one generation of
//     records: one vertex record per vertex plus every message addressed to it.
//   - The substrate groups that generation by key (vertex id). Every group is an
//     independent unit of work, so groups are processed concurrently by a bounded
//     worker pool; no group ever sees another group's in-round mutations.
//   - The union of updated vertex records and emitted messages becomes the next
//     generation. Generations are never mutated once emitted.
//
// State machine
//
//	Running ──(termination observed)──▶ Draining ──▶ Done
//
//	Running   executes rounds and polls the Terminator after each one.
//	Draining  runs one filtering pass that keeps only vertex records (key == id)
//	          trimmed to their Branch edges; pending messages are dropped.
//	Done      the substrate holds the final vertex records.
//
// Contracts
//
//   - Substrate: Load, GroupByKey, EmitNextRound, Snapshot, Close. MemoryStore is
//     the in-process implementation; badgerstore provides a durable one.
//   - Terminator: SignalTermination / CheckTermination, a flag that completes once
//     the expected number of distinct fragments has halted. MemoryFlag is the
//     in-process implementation.
//   - Recorder: optional per-round observations (metrics).
//
// Errors
//
//	Fatal errors abort the run and carry their round: *RoundError wraps protocol
//	violations and substrate failures for a given vertex; ErrRoundLimit signals
//	non-convergence; ErrRoundTimeout a round that outlived its deadline.
//	Cancellation is honored at round boundaries only.
package superstep
