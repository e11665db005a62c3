// SPDX-License-Identifier: MIT
package mst_test

import (
	"testing"

	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/katalvlaran/bspgraph/graphgen"
	"github.com/katalvlaran/bspgraph/mst"
)

func benchGraph(b *testing.B, n, extra int) []ghs.Vertex {
	b.Helper()
	vs, err := graphgen.Build([]graphgen.Option{graphgen.WithSeed(1), graphgen.WithUniformWeights(1, 1000)},
		graphgen.RandomConnected(n, extra))
	if err != nil {
		b.Fatal(err)
	}
	return vs
}

// BenchmarkKruskal measures the reference on 500 vertices and 2000 edges.
func BenchmarkKruskal(b *testing.B) {
	vs := benchGraph(b, 500, 1501)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = mst.Kruskal(vs)
	}
}

// BenchmarkRunMST measures a full GHS run on 200 vertices and 600 edges.
func BenchmarkRunMST(b *testing.B) {
	vs := benchGraph(b, 200, 401)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := mst.RunMST(quietContext(), vs, nil); err != nil {
			b.Fatal(err)
		}
	}
}
