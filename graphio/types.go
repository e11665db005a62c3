// SPDX-License-Identifier: MIT

package graphio

import "errors"

// Sentinel errors. Parse errors carry the line number via %w.
var (
	// ErrColumns indicates a row that has neither one nor three fields.
	ErrColumns = errors.New("graphio: expected 1 or 3 columns")

	// ErrEmptyID indicates an empty vertex id field.
	ErrEmptyID = errors.New("graphio: empty vertex id")

	// ErrWeight indicates a weight that is not a valid non-negative integer.
	ErrWeight = errors.New("graphio: invalid weight")

	// ErrSelfLoop indicates an edge from a vertex to itself.
	ErrSelfLoop = errors.New("graphio: self-loop")

	// ErrConflictingEdge indicates the same edge listed with two weights.
	ErrConflictingEdge = errors.New("graphio: edge listed with different weights")
)

// edgeHeader is the header row written with edge lists.
var edgeHeader = []string{"u", "v", "weight"}
