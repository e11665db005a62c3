// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/bspgraph/superstep"
)

// Sentinel errors.
var (
	// ErrParse indicates HCL syntax or decoding diagnostics.
	ErrParse = errors.New("config: cannot parse job file")

	// ErrInvalid indicates a decoded job whose values are out of range.
	ErrInvalid = errors.New("config: invalid job")
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

// Job is the complete description of one run. It is passed by value.
type Job struct {
	Input   string
	Output  string
	Summary string
	Wake    []string
	Verify  bool

	Workers      int
	MaxRounds    int // 0 derives the budget from the vertex count
	RoundTimeout time.Duration

	StoreKind string
	StoreDir  string // empty keeps badger in memory

	MetricsAddr string // empty disables the exporter

	LogLevel  string
	LogFormat string
}

// DefaultJob returns a Job with superstep defaults, the in-memory store, no
// metrics and text logging at info.
func DefaultJob() Job {
	rc := superstep.DefaultRunConfig()
	return Job{
		Workers:      rc.Workers,
		RoundTimeout: rc.RoundTimeout,
		StoreKind:    StoreMemory,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Validate checks value ranges and enumerations.
func (j Job) Validate() error {
	switch {
	case j.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive (%d)", ErrInvalid, j.Workers)
	case j.MaxRounds < 0:
		return fmt.Errorf("%w: max_rounds cannot be negative (%d)", ErrInvalid, j.MaxRounds)
	case j.RoundTimeout < 0:
		return fmt.Errorf("%w: round_timeout cannot be negative (%s)", ErrInvalid, j.RoundTimeout)
	}
	switch j.StoreKind {
	case StoreMemory, StoreBadger:
	default:
		return fmt.Errorf("%w: store kind must be %q or %q, got %q", ErrInvalid, StoreMemory, StoreBadger, j.StoreKind)
	}
	switch j.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level must be 'debug', 'info', 'warn', or 'error', got %q", ErrInvalid, j.LogLevel)
	}
	if j.LogFormat != "text" && j.LogFormat != "json" {
		return fmt.Errorf("%w: log format must be 'text' or 'json', got %q", ErrInvalid, j.LogFormat)
	}
	return nil
}
