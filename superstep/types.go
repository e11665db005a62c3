// SPDX-License-Identifier: MIT
// Package: bspgraph/superstep
//
// types.go — records, collaborator contracts, run configuration and errors.

package superstep

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/katalvlaran/bspgraph/ghs"
)

// Sentinel errors for driver execution.
var (
	// ErrRoundLimit indicates no termination after RunConfig.MaxRounds rounds.
	ErrRoundLimit = errors.New("superstep: round limit exceeded without termination")

	// ErrRoundTimeout indicates a round that did not complete within RunConfig.RoundTimeout.
	ErrRoundTimeout = errors.New("superstep: round deadline exceeded")

	// ErrOrphanMessage indicates messages grouped under a key with no vertex record.
	ErrOrphanMessage = errors.New("superstep: message addressed to unknown vertex")

	// ErrDuplicateVertex indicates two vertex records under one key.
	ErrDuplicateVertex = errors.New("superstep: duplicate vertex record")

	// ErrKeyMismatch indicates a vertex record stored under a key other than its id.
	ErrKeyMismatch = errors.New("superstep: vertex record key does not match id")

	// ErrEmptyRecord indicates a record with no key, or with neither or both of vertex and message.
	ErrEmptyRecord = errors.New("superstep: malformed record")

	// ErrBadConfig indicates an invalid RunConfig or missing collaborator.
	ErrBadConfig = errors.New("superstep: invalid run configuration")

	// ErrClosed indicates use of a substrate after Close.
	ErrClosed = errors.New("superstep: substrate closed")
)

// Record is one element of a generation: either a vertex keyed by its id or a
// message keyed by its destination.
type Record struct {
	Key     string       `json:"key" msgpack:"k"`
	Vertex  *ghs.Vertex  `json:"vertex,omitempty" msgpack:"v,omitempty"`
	Message *ghs.Message `json:"message,omitempty" msgpack:"m,omitempty"`
}

// VertexRecord wraps v under its own id.
func VertexRecord(v ghs.Vertex) Record { return Record{Key: v.ID, Vertex: &v} }

// MessageRecord wraps m under its destination.
func MessageRecord(m ghs.Message) Record { return Record{Key: m.To, Message: &m} }

// Validate checks that r carries a key and exactly one payload.
func (r Record) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("%w: empty key", ErrEmptyRecord)
	}
	if (r.Vertex == nil) == (r.Message == nil) {
		return fmt.Errorf("%w: key %q must hold exactly one of vertex or message", ErrEmptyRecord, r.Key)
	}
	return nil
}

// Substrate stores one generation of records at a time.
//
// GroupByKey calls fn sequentially, once per distinct key, with every record of
// the current generation under that key; the group slice is owned by fn. It
// stops at the first error returned by fn or when ctx is done.
//
// Load and EmitNextRound replace the current generation.
type Substrate interface {
	Load(ctx context.Context, records []Record) error
	GroupByKey(ctx context.Context, fn func(key string, group []Record) error) error
	EmitNextRound(ctx context.Context, records []Record) error
	Snapshot(ctx context.Context) ([]Record, error)
	Close() error
}

// Terminator is the termination flag shared by every worker of a run.
// Implementations must be safe for concurrent SignalTermination calls.
type Terminator interface {
	SignalTermination(ctx context.Context, fragment ghs.EdgeID) error
	CheckTermination(ctx context.Context) (bool, error)
}

// Recorder observes driver progress. The drain pass is reported with phase
// Draining and round -1. Implementations must be safe for concurrent
// ObserveHalt calls.
type Recorder interface {
	ObserveRound(phase Phase, round int, elapsed time.Duration, st RoundStats)
	ObserveHalt(fragment ghs.EdgeID)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRound(Phase, int, time.Duration, RoundStats) {}
func (nopRecorder) ObserveHalt(ghs.EdgeID)                            {}

// Phase is the driver state.
type Phase int32

const (
	// Idle is the phase before Run.
	Idle Phase = iota
	Running
	Draining
	Done
)

// String returns a stable lowercase name, used as a metric label.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

// RunConfig is the immutable configuration of one run, passed by value.
type RunConfig struct {
	// MaxRounds bounds the Running phase; reaching it is ErrRoundLimit.
	MaxRounds int `yaml:"max_rounds"`

	// Workers bounds concurrently processed groups within a round.
	Workers int `yaml:"workers"`

	// RoundTimeout, if > 0, is the deadline of every single round.
	RoundTimeout time.Duration `yaml:"round_timeout"`

	// ExpectedFragments is the number of distinct fragments that must halt.
	// Zero means nothing can halt: the run drains right after round 0.
	ExpectedFragments int `yaml:"expected_fragments"`
}

// DefaultRunConfig returns a RunConfig with:
//   - MaxRounds = 10000
//   - Workers = GOMAXPROCS
//   - RoundTimeout = 1 minute
//   - ExpectedFragments = 1 (a single global termination signal)
func DefaultRunConfig() RunConfig {
	return RunConfig{
		MaxRounds:         10000,
		Workers:           runtime.GOMAXPROCS(0),
		RoundTimeout:      time.Minute,
		ExpectedFragments: 1,
	}
}

// Validate checks the numeric bounds of c.
func (c RunConfig) Validate() error {
	switch {
	case c.MaxRounds <= 0:
		return fmt.Errorf("%w: MaxRounds must be positive (%d)", ErrBadConfig, c.MaxRounds)
	case c.Workers <= 0:
		return fmt.Errorf("%w: Workers must be positive (%d)", ErrBadConfig, c.Workers)
	case c.RoundTimeout < 0:
		return fmt.Errorf("%w: RoundTimeout cannot be negative (%s)", ErrBadConfig, c.RoundTimeout)
	case c.ExpectedFragments < 0:
		return fmt.Errorf("%w: ExpectedFragments cannot be negative (%d)", ErrBadConfig, c.ExpectedFragments)
	}
	return nil
}

// RoundError attaches the failing round and vertex to a fatal error.
type RoundError struct {
	Round  int
	Vertex string
	Err    error
}

// Error implements the error interface.
func (e *RoundError) Error() string {
	if e.Vertex == "" {
		return fmt.Sprintf("superstep: round %d: %v", e.Round, e.Err)
	}
	return fmt.Sprintf("superstep: round %d vertex %q: %v", e.Round, e.Vertex, e.Err)
}

// Unwrap exposes the cause.
func (e *RoundError) Unwrap() error { return e.Err }

// RoundStats summarizes one round.
type RoundStats struct {
	Groups   int              // vertex groups processed
	Messages int              // messages delivered
	Emitted  int              // messages emitted, deferred ones included
	Deferred int              // messages re-emitted to self
	Halts    int              // halt outcomes observed
	ByKind   map[ghs.Kind]int // delivered messages per kind
}

func (s *RoundStats) merge(o RoundStats) {
	s.Groups += o.Groups
	s.Messages += o.Messages
	s.Emitted += o.Emitted
	s.Deferred += o.Deferred
	s.Halts += o.Halts
	if len(o.ByKind) == 0 {
		return
	}
	if s.ByKind == nil {
		s.ByKind = make(map[ghs.Kind]int, len(o.ByKind))
	}
	for k, n := range o.ByKind {
		s.ByKind[k] += n
	}
}

// Stats summarizes a whole run.
type Stats struct {
	Rounds    int `yaml:"rounds" json:"rounds"`
	Messages  int `yaml:"messages" json:"messages"`
	Deferred  int `yaml:"deferred" json:"deferred"`
	Fragments int `yaml:"fragments" json:"fragments"`
}
