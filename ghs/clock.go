// SPDX-License-Identifier: MIT
// Package: bspgraph/ghs
//
// clock.go — RoundClock: per-vertex timestamps within one round.

package ghs

// roundShift places each round in its own timestamp band.
const roundShift = 32

// RoundBase returns the first timestamp band of round r. Every timestamp issued in
// round r is greater than every timestamp issued in an earlier round.
func RoundBase(round int) uint64 {
	if round < 0 {
		round = 0
	}
	return uint64(round) << roundShift
}

// RoundClock issues strictly increasing timestamps for one vertex in one round.
// It is owned by a single task and is not safe for concurrent use.
type RoundClock struct {
	last uint64
}

// NewRoundClock returns a clock whose first stamp is base+1.
func NewRoundClock(base uint64) *RoundClock {
	return &RoundClock{last: base}
}

// Observe raises the clock so the next stamp exceeds ts.
func (c *RoundClock) Observe(ts uint64) {
	if ts > c.last {
		c.last = ts
	}
}

// Stamp returns the next timestamp.
func (c *RoundClock) Stamp() uint64 {
	c.last++
	return c.last
}
