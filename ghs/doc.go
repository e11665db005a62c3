// SPDX-License-Identifier: MIT

// Package ghs implements the per-vertex state machine of the Gallager–Humblet–Spira
// distributed Minimum Spanning Tree algorithm, re-expressed for synchronous
// supersteps.
//
// What & Why
//
//   - Every vertex is an independent actor. In one round it receives a batch of
//     messages (its inbox), mutates its own state, and emits messages that are
//     delivered in the next round. No vertex ever reads another vertex's state.
//
//   - Fragments (partial sub-trees of the final MST) grow by repeatedly finding
//     their minimum-weight outgoing edge and either merging with a fragment of the
//     same level (the merge edge becomes the new core, level+1) or being absorbed
//     by a fragment of a higher level.
//
//   - When a fragment finds no outgoing edge at all, its two core endpoints detect
//     termination and the fragment (a full connected component) is done.
//
// Building blocks
//
//   - Vertex: identity, weighted adjacency, per-edge state (Basic/Branch/Rejected)
//     and protocol state (status, level, fragment identity, best candidate).
//   - Message: tagged union over the seven message kinds, addressed by To and
//     ordered inside an inbox by Timestamp.
//   - RoundClock: issues strictly increasing timestamps for one vertex in one round.
//   - ProcessVertex: the only entry point; it applies a sorted inbox to a vertex.
//
// Ordering
//
//	Edges are totally ordered by (weight, canonical identity). The canonical identity
//	of edge {u,v} is EdgeID{Lo: min(u,v), Hi: max(u,v)}, rendered "Lo_Hi" and compared
//	as a tuple. For a fixed vertex, tuple order of identities equals the order of
//	neighbor ids, so the local tie-break (smaller neighbor id) and the global one
//	(smaller canonical identity) never disagree. Under this total order the MST is
//	unique, which is what makes runs reproducible byte for byte.
//
// Deferral
//
//	Connect, Test and Report may arrive before the receiver is ready for them. Such a
//	message is re-emitted to the receiver itself with a fresh timestamp and handled in
//	a later round. Deferral is not an error; it is how the protocol waits.
//
// Errors
//
//	Protocol violations (unknown kind, missing payload, an edge absent from the
//	vertex's own adjacency, a level regression) are returned as *ViolationError and
//	wrap one of the sentinel errors declared in types.go. They are never swallowed.
package ghs
