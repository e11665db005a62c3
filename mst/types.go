// SPDX-License-Identifier: MIT

package mst

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/bspgraph/superstep"
)

// Sentinel errors for input validation and verification.
var (
	// ErrEmptyGraph indicates RunMST was called without vertices.
	ErrEmptyGraph = errors.New("mst: graph has no vertices")

	// ErrDuplicateVertex indicates two input vertices with the same id.
	ErrDuplicateVertex = errors.New("mst: duplicate vertex id")

	// ErrEmptyVertexID indicates an input vertex or neighbor with an empty id.
	ErrEmptyVertexID = errors.New("mst: empty vertex id")

	// ErrSelfLoop indicates a vertex listing itself as a neighbor.
	ErrSelfLoop = errors.New("mst: self-loop")

	// ErrUnknownNeighbor indicates an edge to a vertex absent from the input.
	ErrUnknownNeighbor = errors.New("mst: neighbor not in graph")

	// ErrAsymmetricEdge indicates u→v without v→u, or with a different weight.
	ErrAsymmetricEdge = errors.New("mst: adjacency is not symmetric")

	// ErrWeightRange indicates a weight outside [0, ghs.Infinity).
	ErrWeightRange = errors.New("mst: edge weight out of range")

	// ErrUnknownWakeVertex indicates an auto-wake id that is not an input vertex.
	ErrUnknownWakeVertex = errors.New("mst: auto-wake vertex not in graph")

	// ErrNoWakeVertex indicates a component with edges but without any auto-wake vertex.
	ErrNoWakeVertex = errors.New("mst: component has no auto-wake vertex")

	// ErrOptionViolation indicates an invalid Option.
	ErrOptionViolation = errors.New("mst: invalid option supplied")

	// ErrVerifyMismatch indicates a result that differs from the reference forest.
	ErrVerifyMismatch = errors.New("mst: result differs from reference spanning forest")
)

// TerminatorFactory builds the termination flag of a run for the given number
// of fragments that must halt.
type TerminatorFactory func(expected int) superstep.Terminator

// Option configures RunMST.
type Option func(*Options)

// Options holds RunMST parameters. Use DefaultOptions and Option helpers.
type Options struct {
	// Workers bounds concurrently processed vertices per round.
	Workers int

	// MaxRounds bounds the run; 0 derives a budget from the vertex count.
	MaxRounds int

	// RoundTimeout is the per-round deadline; 0 disables it.
	RoundTimeout time.Duration

	// Substrate stores generations; nil uses a fresh superstep.MemoryStore that
	// RunMST closes. A caller-supplied substrate is left open.
	Substrate superstep.Substrate

	// Terminator builds the termination flag; nil uses superstep.NewMemoryFlag.
	Terminator TerminatorFactory

	// Recorder observes progress; nil records nothing.
	Recorder superstep.Recorder

	err error
}

// DefaultOptions returns Options with:
//   - Workers, RoundTimeout from superstep.DefaultRunConfig
//   - MaxRounds = 0 (derived from the vertex count)
//   - in-memory substrate and termination flag
//   - no recorder
func DefaultOptions() Options {
	rc := superstep.DefaultRunConfig()
	return Options{
		Workers:      rc.Workers,
		RoundTimeout: rc.RoundTimeout,
	}
}

// WithWorkers sets the worker pool size; n must be positive.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: Workers must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithMaxRounds sets the round budget.
//
//	n > 0: explicit budget
//	n == 0: derived from the vertex count
//	n < 0: ErrOptionViolation
func WithMaxRounds(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxRounds cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxRounds = n
	}
}

// WithRoundTimeout sets the per-round deadline; 0 disables it.
func WithRoundTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: RoundTimeout cannot be negative (%s)", ErrOptionViolation, d)
			return
		}
		o.RoundTimeout = d
	}
}

// WithSubstrate runs on s instead of a private in-memory store.
func WithSubstrate(s superstep.Substrate) Option {
	return func(o *Options) {
		if s != nil {
			o.Substrate = s
		}
	}
}

// WithTerminator sets the termination flag factory.
func WithTerminator(f TerminatorFactory) Option {
	return func(o *Options) {
		if f != nil {
			o.Terminator = f
		}
	}
}

// WithRecorder attaches a progress recorder.
func WithRecorder(r superstep.Recorder) Option {
	return func(o *Options) {
		if r != nil {
			o.Recorder = r
		}
	}
}
