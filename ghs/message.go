// SPDX-License-Identifier: MIT
// Package: bspgraph/ghs
//
// message.go — the Message envelope: a tagged union over the seven GHS kinds.
//
// Wire shape:
//   - Kind selects the variant; exactly the payload pointer matching Kind is set
//     (Connect, Initiate, Test, Report). Accept, Reject and ChangeRoot carry none.
//   - To is the routing key; Timestamp orders messages addressed to the same vertex.

package ghs

import (
	"fmt"
	"sort"
)

// Kind enumerates GHS message kinds.
type Kind uint8

const (
	// KindUnknown is the zero value and is always rejected.
	KindUnknown Kind = iota
	KindConnect
	KindInitiate
	KindTest
	KindAccept
	KindReject
	KindReport
	KindChangeRoot
)

var kindNames = [...]string{
	KindUnknown:    "unknown",
	KindConnect:    "connect",
	KindInitiate:   "initiate",
	KindTest:       "test",
	KindAccept:     "accept",
	KindReject:     "reject",
	KindReport:     "report",
	KindChangeRoot: "changeroot",
}

// Kinds lists every valid kind in declaration order.
var Kinds = []Kind{KindConnect, KindInitiate, KindTest, KindAccept, KindReject, KindReport, KindChangeRoot}

// String returns a stable lowercase name, used as a metric label.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ConnectPayload asks the peer fragment to merge or absorb.
type ConnectPayload struct {
	Level int `json:"level" msgpack:"l"`
}

// InitiatePayload broadcasts a fragment's new level, identity and status.
type InitiatePayload struct {
	Level    int    `json:"level" msgpack:"l"`
	Identity EdgeID `json:"identity" msgpack:"i"`
	Status   Status `json:"status" msgpack:"s"`
}

// TestPayload probes whether an edge leaves the sender's fragment.
type TestPayload struct {
	Level    int    `json:"level" msgpack:"l"`
	Identity EdgeID `json:"identity" msgpack:"i"`
}

// ReportPayload carries the best outgoing candidate of a subtree toward the core.
type ReportPayload struct {
	Weight       int64  `json:"weight" msgpack:"w"`
	EdgeIdentity EdgeID `json:"edge_identity" msgpack:"i"`
}

// Message is one envelope exchanged between vertices.
type Message struct {
	Kind      Kind   `json:"kind" msgpack:"k"`
	From      string `json:"from" msgpack:"f"`
	To        string `json:"to" msgpack:"t"`
	Timestamp uint64 `json:"ts" msgpack:"ts"`

	Connect  *ConnectPayload  `json:"connect,omitempty" msgpack:"c,omitempty"`
	Initiate *InitiatePayload `json:"initiate,omitempty" msgpack:"n,omitempty"`
	Test     *TestPayload     `json:"test,omitempty" msgpack:"x,omitempty"`
	Report   *ReportPayload   `json:"report,omitempty" msgpack:"r,omitempty"`
}

// NewConnect builds Connect(level).
func NewConnect(from, to string, level int) Message {
	return Message{Kind: KindConnect, From: from, To: to, Connect: &ConnectPayload{Level: level}}
}

// NewInitiate builds Initiate(level, identity, status).
func NewInitiate(from, to string, level int, identity EdgeID, status Status) Message {
	return Message{Kind: KindInitiate, From: from, To: to,
		Initiate: &InitiatePayload{Level: level, Identity: identity, Status: status}}
}

// NewTest builds Test(level, identity).
func NewTest(from, to string, level int, identity EdgeID) Message {
	return Message{Kind: KindTest, From: from, To: to, Test: &TestPayload{Level: level, Identity: identity}}
}

// NewReport builds Report(weight, edgeIdentity).
func NewReport(from, to string, weight int64, identity EdgeID) Message {
	return Message{Kind: KindReport, From: from, To: to, Report: &ReportPayload{Weight: weight, EdgeIdentity: identity}}
}

// NewAccept builds Accept.
func NewAccept(from, to string) Message { return Message{Kind: KindAccept, From: from, To: to} }

// NewReject builds Reject.
func NewReject(from, to string) Message { return Message{Kind: KindReject, From: from, To: to} }

// NewChangeRoot builds ChangeRoot.
func NewChangeRoot(from, to string) Message { return Message{Kind: KindChangeRoot, From: from, To: to} }

// Validate checks endpoints, kind and payload presence.
func (m *Message) Validate() error {
	if m.From == "" || m.To == "" {
		return fmt.Errorf("%w: %s message endpoints %q->%q", ErrEmptyVertexID, m.Kind, m.From, m.To)
	}
	var ok bool
	switch m.Kind {
	case KindConnect:
		ok = m.Connect != nil
	case KindInitiate:
		ok = m.Initiate != nil
	case KindTest:
		ok = m.Test != nil
	case KindReport:
		ok = m.Report != nil
	case KindAccept, KindReject, KindChangeRoot:
		ok = true
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(m.Kind))
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingPayload, m.Kind)
	}
	return nil
}

// Clone returns a copy that shares no payload pointers with m.
func (m Message) Clone() Message {
	out := m
	if m.Connect != nil {
		c := *m.Connect
		out.Connect = &c
	}
	if m.Initiate != nil {
		c := *m.Initiate
		out.Initiate = &c
	}
	if m.Test != nil {
		c := *m.Test
		out.Test = &c
	}
	if m.Report != nil {
		c := *m.Report
		out.Report = &c
	}
	return out
}

// inboxLess orders by timestamp, then sender id. Messages from one sender in one
// round carry distinct timestamps, so the order is total for any valid inbox.
func inboxLess(a, b *Message) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	if a.From != b.From {
		return a.From < b.From
	}
	return a.Kind < b.Kind
}

// SortInbox sorts msgs in place into processing order.
func SortInbox(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool { return inboxLess(&msgs[i], &msgs[j]) })
}
