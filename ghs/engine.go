// SPDX-License-Identifier: MIT
// Package: bspgraph/ghs
//
// engine.go — ProcessVertex and the per-kind message handlers.
//
// Contract:
//   - inbox is sorted by SortInbox and every message is addressed to v.ID.
//   - Handlers run once per inbox entry, in order, each seeing the state left by
//     the previous one.
//   - Every emitted message is stamped by the caller-supplied RoundClock after the
//     clock has observed every inbox timestamp, so deferred messages sort after
//     everything already in the batch.
//
// Complexity: O(m + k·d log d) per call, m = inbox size, k = handler invocations
// that scan adjacency, d = degree.

package ghs

// Outcome is the result of one ProcessVertex call.
type Outcome struct {
	// Outbox holds every emitted message, deferred ones included, in emission order.
	Outbox []Message

	// Deferred counts messages re-emitted to this vertex for a later round.
	Deferred int

	// Halted is set when this vertex detected that its fragment has no outgoing
	// edge left; Fragment names that fragment.
	Halted   bool
	Fragment EdgeID
}

// processor holds the mutable state of one ProcessVertex call.
type processor struct {
	v     *Vertex
	clock *RoundClock
	out   Outcome

	// current handler context, for violation reports
	kind Kind
	from string
}

// ProcessVertex applies a sorted inbox to v, mutating v in place.
//
// Steps:
//  1. Validate v, the clock and the inbox (addressing, kinds, payloads, order).
//  2. Attach protocol state on first touch; an AutoWake vertex wakes up then.
//  3. Dispatch every message to its handler in inbox order.
//
// Errors: *ViolationError wrapping a sentinel from types.go. On error v may be
// partially updated and must be discarded together with the round.
func ProcessVertex(v *Vertex, inbox []Message, clock *RoundClock) (Outcome, error) {
	if clock == nil {
		return Outcome{}, ErrNilClock
	}
	if err := v.Validate(); err != nil {
		return Outcome{}, &ViolationError{Vertex: v.ID, Err: err}
	}
	p := &processor{v: v, clock: clock}

	for i := range inbox {
		m := &inbox[i]
		if err := m.Validate(); err != nil {
			return Outcome{}, p.violation(m, err)
		}
		if m.To != v.ID {
			return Outcome{}, p.violation(m, ErrMisrouted)
		}
		if i > 0 && inboxLess(m, &inbox[i-1]) {
			return Outcome{}, p.violation(m, ErrInboxOrder)
		}
		clock.Observe(m.Timestamp)
	}

	if first := v.attach(); first && v.AutoWake && v.Status == Sleeping {
		p.wakeUp()
	}

	for i := range inbox {
		m := inbox[i]
		p.kind, p.from = m.Kind, m.From
		if err := p.dispatch(m); err != nil {
			return Outcome{}, err
		}
	}
	return p.out, nil
}

// dispatch routes m to its handler. The switch is exhaustive over Kinds;
// Validate has already rejected anything else.
func (p *processor) dispatch(m Message) error {
	if _, err := p.v.Weight(m.From); err != nil {
		return p.fail(err)
	}
	switch m.Kind {
	case KindConnect:
		return p.onConnect(m)
	case KindInitiate:
		return p.onInitiate(m)
	case KindTest:
		return p.onTest(m)
	case KindAccept:
		return p.onAccept(m)
	case KindReject:
		return p.onReject(m)
	case KindReport:
		return p.onReport(m)
	case KindChangeRoot:
		return p.changeRoot()
	default:
		return p.fail(ErrUnknownKind)
	}
}

// onConnect handles Connect(level) over edge (v, w).
func (p *processor) onConnect(m Message) error {
	v, w, level := p.v, m.From, m.Connect.Level
	if v.Status == Sleeping {
		p.wakeUp()
	}
	switch {
	case level < v.FragLevel:
		// absorb the lower-level fragment
		v.EdgeState[w] = Branch
		p.send(NewInitiate(v.ID, w, v.FragLevel, v.FragIdentity, v.Status))
		if v.Status == Find {
			v.FindCount++
		}
	case v.EdgeState[w] == Basic:
		p.deferMsg(m)
	default:
		// both ends chose this edge at the same level: it becomes the new core
		p.send(NewInitiate(v.ID, w, v.FragLevel+1, Canonical(v.ID, w), Find))
	}
	return nil
}

// onInitiate adopts the fragment announced over edge (v, w) and propagates it
// down every other branch.
func (p *processor) onInitiate(m Message) error {
	v, w, in := p.v, m.From, m.Initiate
	if in.Level < v.FragLevel {
		return p.fail(ErrLevelRegression)
	}
	v.FragLevel, v.FragIdentity, v.Status = in.Level, in.Identity, in.Status
	v.InBranch = w
	v.BestEdge, v.BestWeight, v.BestEdgeIdentity = "", Infinity, EdgeID{}

	for _, n := range v.BranchNeighbors() {
		if n == w {
			continue
		}
		p.send(NewInitiate(v.ID, n, in.Level, in.Identity, in.Status))
		if in.Status == Find {
			v.FindCount++
		}
	}
	if v.Status == Find {
		return p.test()
	}
	return nil
}

// onTest answers whether edge (v, w) leaves the sender's fragment.
func (p *processor) onTest(m Message) error {
	v, w, t := p.v, m.From, m.Test
	if v.Status == Sleeping {
		p.wakeUp()
	}
	switch {
	case t.Level > v.FragLevel:
		p.deferMsg(m)
	case t.Identity != v.FragIdentity:
		p.send(NewAccept(v.ID, w))
	default:
		if v.EdgeState[w] == Basic {
			v.EdgeState[w] = Rejected
		}
		if v.TestEdge != w {
			p.send(NewReject(v.ID, w))
			return nil
		}
		return p.test()
	}
	return nil
}

// onAccept records edge (v, w) as a candidate and tries to report.
func (p *processor) onAccept(m Message) error {
	v, w := p.v, m.From
	v.TestEdge = ""
	weight := v.Edges[w]
	if id := Canonical(v.ID, w); better(weight, id, v.BestWeight, v.BestEdgeIdentity) {
		v.BestEdge, v.BestWeight, v.BestEdgeIdentity = w, weight, id
	}
	return p.report()
}

// onReject marks edge (v, w) internal and resumes testing.
func (p *processor) onReject(m Message) error {
	v, w := p.v, m.From
	if v.EdgeState[w] == Basic {
		v.EdgeState[w] = Rejected
	}
	return p.test()
}

// onReport merges a child's candidate, or, on the core edge, compares the two
// halves of the fragment.
func (p *processor) onReport(m Message) error {
	v, w, r := p.v, m.From, m.Report
	if w != v.InBranch {
		v.FindCount--
		if v.FindCount < 0 {
			return p.fail(ErrFindCount)
		}
		if better(r.Weight, r.EdgeIdentity, v.BestWeight, v.BestEdgeIdentity) {
			v.BestEdge, v.BestWeight, v.BestEdgeIdentity = w, r.Weight, r.EdgeIdentity
		}
		return p.report()
	}

	if v.Status == Find {
		p.deferMsg(m)
		return nil
	}
	switch {
	case better(v.BestWeight, v.BestEdgeIdentity, r.Weight, r.EdgeIdentity):
		// this half holds the fragment's minimum outgoing edge
		return p.changeRoot()
	case r.Weight == Infinity && v.BestWeight == Infinity:
		p.out.Halted = true
		p.out.Fragment = v.FragIdentity
	}
	return nil
}
