// SPDX-License-Identifier: MIT
// Package: bspgraph/ghs
//
// types.go — sentinel errors, enums and the canonical edge identity.
//
// Error policy:
//   - Only sentinel variables are exposed; context is attached with %w or
//     through *ViolationError.
//   - Callers branch with errors.Is / errors.As.

package ghs

import (
	"errors"
	"fmt"
	"math"
)

// Infinity is the weight sentinel meaning "no edge" / "no candidate".
// Valid edge weights satisfy 0 <= w < Infinity.
const Infinity int64 = math.MaxInt64

// Sentinel errors for protocol processing.
var (
	// ErrEmptyVertexID indicates a vertex or message endpoint with an empty ID.
	ErrEmptyVertexID = errors.New("ghs: vertex ID is empty")

	// ErrUnknownKind indicates a message whose kind is not one of the seven GHS kinds.
	ErrUnknownKind = errors.New("ghs: unrecognized message kind")

	// ErrMissingPayload indicates a Connect/Initiate/Test/Report message without its payload.
	ErrMissingPayload = errors.New("ghs: message payload missing")

	// ErrUnknownEdge indicates a reference to a neighbor absent from the vertex's adjacency.
	ErrUnknownEdge = errors.New("ghs: edge not in adjacency")

	// ErrBadWeight indicates an adjacency weight outside [0, Infinity).
	ErrBadWeight = errors.New("ghs: edge weight out of range")

	// ErrMisrouted indicates a message handed to a vertex it is not addressed to.
	ErrMisrouted = errors.New("ghs: message addressed to another vertex")

	// ErrInboxOrder indicates an inbox that is not sorted ascending by timestamp.
	ErrInboxOrder = errors.New("ghs: inbox not sorted by timestamp")

	// ErrNilClock indicates ProcessVertex was called without a RoundClock.
	ErrNilClock = errors.New("ghs: round clock is nil")

	// ErrLevelRegression indicates an Initiate that would lower the fragment level.
	ErrLevelRegression = errors.New("ghs: fragment level regression")

	// ErrFindCount indicates more Reports arrived than branch children were counted.
	ErrFindCount = errors.New("ghs: find count underflow")

	// ErrNoInBranch indicates a Report had to be sent before any Initiate arrived.
	ErrNoInBranch = errors.New("ghs: report without in-branch")

	// ErrNoBestEdge indicates ChangeRoot ran on a vertex without a best edge.
	ErrNoBestEdge = errors.New("ghs: change-root without best edge")
)

// ViolationError carries the context of a fatal protocol violation.
type ViolationError struct {
	Vertex string // vertex being processed
	Kind   Kind   // kind of the message being handled, KindUnknown outside handlers
	From   string // sender of that message, empty outside handlers
	Err    error  // one of the sentinel errors above
}

// Error implements the error interface.
func (e *ViolationError) Error() string {
	if e.Kind == KindUnknown && e.From == "" {
		return fmt.Sprintf("ghs: vertex %q: %v", e.Vertex, e.Err)
	}
	return fmt.Sprintf("ghs: vertex %q handling %s from %q: %v", e.Vertex, e.Kind, e.From, e.Err)
}

// Unwrap exposes the sentinel error.
func (e *ViolationError) Unwrap() error { return e.Err }

// Status is the protocol status of a vertex: Sleeping → Find ⇄ Found.
type Status uint8

const (
	// Sleeping vertices have not joined the protocol yet.
	Sleeping Status = iota
	// Find means the vertex is searching for its fragment's minimum outgoing edge.
	Find
	// Found means the vertex has reported its best candidate upward.
	Found
)

// String returns a stable lowercase name.
func (s Status) String() string {
	switch s {
	case Sleeping:
		return "sleeping"
	case Find:
		return "find"
	case Found:
		return "found"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// EdgeState classifies an incident edge.
type EdgeState uint8

const (
	// Basic edges are not yet classified.
	Basic EdgeState = iota
	// Branch edges belong to the spanning tree.
	Branch
	// Rejected edges connect two vertices of the same fragment and never join the tree.
	Rejected
)

// String returns a stable lowercase name.
func (s EdgeState) String() string {
	switch s {
	case Basic:
		return "basic"
	case Branch:
		return "branch"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("edgestate(%d)", uint8(s))
	}
}

// edgeIDSeparator joins the two endpoints of a canonical edge identity.
const edgeIDSeparator = "_"

// EdgeID is the canonical identity of an undirected edge: Lo <= Hi.
// The zero value means "no edge".
type EdgeID struct {
	Lo string `json:"lo" msgpack:"lo"`
	Hi string `json:"hi" msgpack:"hi"`
}

// Canonical returns the identity of edge {u,v}.
func Canonical(u, v string) EdgeID {
	if v < u {
		u, v = v, u
	}
	return EdgeID{Lo: u, Hi: v}
}

// IsZero reports whether e is the "no edge" identity.
func (e EdgeID) IsZero() bool { return e.Lo == "" && e.Hi == "" }

// String renders "Lo_Hi", or "" for the zero identity.
func (e EdgeID) String() string {
	if e.IsZero() {
		return ""
	}
	return e.Lo + edgeIDSeparator + e.Hi
}

// Less orders identities as (Lo, Hi) tuples.
func (e EdgeID) Less(o EdgeID) bool {
	if e.Lo != o.Lo {
		return e.Lo < o.Lo
	}
	return e.Hi < o.Hi
}

// Other returns the endpoint opposite to id, or "" if id is not an endpoint.
func (e EdgeID) Other(id string) string {
	switch id {
	case e.Lo:
		return e.Hi
	case e.Hi:
		return e.Lo
	default:
		return ""
	}
}

// better reports whether candidate (w1,id1) precedes (w2,id2) in the total edge order.
// Ties between infinite weights never win.
func better(w1 int64, id1 EdgeID, w2 int64, id2 EdgeID) bool {
	if w1 != w2 {
		return w1 < w2
	}
	return w1 != Infinity && id1.Less(id2)
}
