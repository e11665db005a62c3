// SPDX-License-Identifier: MIT
// Package: bspgraph/graphgen
//
// weight_fn.go — edge weight policies.

package graphgen

import (
	"fmt"
	"math/rand"
)

// WeightFn produces an edge weight from an optional RNG. For a fixed seed it
// must be deterministic.
type WeightFn func(rng *rand.Rand) int64

// ConstantWeightFn always yields value. Panics if value < 0.
func ConstantWeightFn(value int64) WeightFn {
	if value < 0 {
		panic(fmt.Sprintf("ConstantWeightFn: value must be ≥ 0, got %d", value))
	}
	return func(*rand.Rand) int64 { return value }
}

// UniformWeightFn samples uniformly from [min, max]; with a nil RNG it yields min.
// Panics unless 0 ≤ min ≤ max.
func UniformWeightFn(min, max int64) WeightFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("UniformWeightFn: require 0 ≤ min ≤ max, got min=%d, max=%d", min, max))
	}
	return func(rng *rand.Rand) int64 {
		if rng == nil || max == min {
			return min
		}
		return min + rng.Int63n(max-min+1)
	}
}
