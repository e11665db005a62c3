// SPDX-License-Identifier: MIT
// Package: bspgraph/ghs
//
// procedures.go — the internal GHS procedures (WakeUp, Test, Report, ChangeRoot)
// and the emission helpers shared by every handler.

package ghs

// wakeUp joins the protocol as a single-vertex fragment and connects over the
// minimum-weight edge. An isolated vertex is immediately Found and emits nothing.
func (p *processor) wakeUp() {
	v := p.v
	v.FragLevel = 0
	v.FindCount = 0
	n, ok := v.minBasicEdge()
	if !ok {
		v.Status = Found
		return
	}
	v.EdgeState[n] = Branch
	v.Status = Find
	p.send(NewConnect(v.ID, n, 0))
}

// test probes the minimum Basic edge, or reports when none is left.
func (p *processor) test() error {
	v := p.v
	n, ok := v.minBasicEdge()
	if !ok {
		v.TestEdge = ""
		return p.report()
	}
	v.TestEdge = n
	p.send(NewTest(v.ID, n, v.FragLevel, v.FragIdentity))
	return nil
}

// report sends the subtree's best candidate toward the core once every child
// has reported and the local probe has finished.
func (p *processor) report() error {
	v := p.v
	if v.FindCount != 0 || v.TestEdge != "" {
		return nil
	}
	if v.InBranch == "" {
		return p.fail(ErrNoInBranch)
	}
	v.Status = Found
	p.send(NewReport(v.ID, v.InBranch, v.BestWeight, v.BestEdgeIdentity))
	return nil
}

// changeRoot walks toward the best edge and connects over it.
func (p *processor) changeRoot() error {
	v := p.v
	if v.BestEdge == "" {
		return p.fail(ErrNoBestEdge)
	}
	if v.EdgeState[v.BestEdge] == Branch {
		p.send(NewChangeRoot(v.ID, v.BestEdge))
		return nil
	}
	p.send(NewConnect(v.ID, v.BestEdge, v.FragLevel))
	v.EdgeState[v.BestEdge] = Branch
	return nil
}

// send stamps m and appends it to the outbox.
func (p *processor) send(m Message) {
	m.Timestamp = p.clock.Stamp()
	p.out.Outbox = append(p.out.Outbox, m)
}

// deferMsg re-emits m to this vertex with a fresh timestamp. The sender is kept
// so the handler sees the same edge when the message comes back.
func (p *processor) deferMsg(m Message) {
	d := m.Clone()
	d.To = p.v.ID
	d.Timestamp = p.clock.Stamp()
	p.out.Outbox = append(p.out.Outbox, d)
	p.out.Deferred++
}

// fail wraps err with the current handler context.
func (p *processor) fail(err error) error {
	return &ViolationError{Vertex: p.v.ID, Kind: p.kind, From: p.from, Err: err}
}

// violation wraps err with the context of message m.
func (p *processor) violation(m *Message, err error) error {
	return &ViolationError{Vertex: p.v.ID, Kind: m.Kind, From: m.From, Err: err}
}
