// SPDX-License-Identifier: MIT
// Package: bspgraph/graphgen
//
// config.go — resolved configuration and functional options.
//
// Defaults:
//   - idFn     = DefaultIDFn ("v0","v1",...)
//   - rng      = nil (deterministic constructors only)
//   - weightFn = ConstantWeightFn(1)
//   - distinct = false

package graphgen

import (
	"math/rand"
)

// Option customizes the resolved config.
type Option func(*config)

type config struct {
	idFn     IDFn
	rng      *rand.Rand
	weightFn WeightFn
	distinct bool
}

func newConfig(opts ...Option) config {
	cfg := config{
		idFn:     DefaultIDFn,
		weightFn: ConstantWeightFn(1),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithIDScheme sets the vertex id generator. Panics on nil.
func WithIDScheme(fn IDFn) Option {
	if fn == nil {
		panic("graphgen: WithIDScheme(nil)")
	}
	return func(c *config) { c.idFn = fn }
}

// WithRand attaches an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("graphgen: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed attaches a new RNG seeded with seed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithWeightFn sets the per-edge weight generator. Panics on nil.
func WithWeightFn(fn WeightFn) Option {
	if fn == nil {
		panic("graphgen: WithWeightFn(nil)")
	}
	return func(c *config) { c.weightFn = fn }
}

// WithUniformWeights draws weights uniformly from [min, max].
func WithUniformWeights(min, max int64) Option {
	return WithWeightFn(UniformWeightFn(min, max))
}

// WithDistinctWeights bumps any weight already used in the graph to the next
// unused value, so every edge weight is unique.
func WithDistinctWeights() Option {
	return func(c *config) { c.distinct = true }
}
