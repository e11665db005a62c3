// SPDX-License-Identifier: MIT
package mst_test

import (
	"context"
	"math/bits"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bspgraph/badgerstore"
	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/katalvlaran/bspgraph/graphgen"
	"github.com/katalvlaran/bspgraph/mst"
	"github.com/katalvlaran/bspgraph/superstep"
)

// TestRunMST_Triangle checks the smallest graph with a rejected edge.
func TestRunMST_Triangle(t *testing.T) {
	vs := build([]string{"A", "B", "C"}, []edge{{"A", "B", 3}, {"B", "C", 1}, {"A", "C", 2}})

	res, err := mst.RunMST(quietContext(), vs, nil)
	require.NoError(t, err)

	assert.Equal(t, mstEdges(edge{"A", "C", 2}, edge{"B", "C", 1}), res.Edges())
	assert.Equal(t, int64(3), res.TotalWeight())
	assert.Equal(t, 1, res.Stats.Fragments)
	require.NoError(t, res.Verify(vs))
	for _, v := range res.Vertices {
		for n := range v.Edges {
			assert.Equal(t, ghs.Branch, v.EdgeState[n], "%s-%s", v.ID, n)
		}
	}
}

// TestRunMST_Disjoint checks that each component yields its own tree.
func TestRunMST_Disjoint(t *testing.T) {
	vs := build([]string{"A", "B", "C", "D"}, []edge{{"A", "B", 5}, {"C", "D", 1}})

	res, err := mst.RunMST(quietContext(), vs, nil)
	require.NoError(t, err)

	assert.Equal(t, mstEdges(edge{"A", "B", 5}, edge{"C", "D", 1}), res.Edges())
	assert.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, res.Components)
	assert.Equal(t, 2, res.Stats.Fragments)
}

// TestRunMST_EqualWeights checks the tie-break on a uniform 4-cycle.
func TestRunMST_EqualWeights(t *testing.T) {
	vs := build([]string{"A", "B", "C", "D"},
		[]edge{{"A", "B", 1}, {"B", "C", 1}, {"C", "D", 1}, {"A", "D", 1}})

	res, err := mst.RunMST(quietContext(), vs, nil)
	require.NoError(t, err)
	assert.Equal(t, mstEdges(edge{"A", "B", 1}, edge{"A", "D", 1}, edge{"B", "C", 1}), res.Edges())
	assert.Equal(t, int64(3), res.TotalWeight())
}

// TestRunMST_Deterministic runs the same tied graph with different worker counts
// and expects identical vertex records.
func TestRunMST_Deterministic(t *testing.T) {
	vs, err := graphgen.Build([]graphgen.Option{graphgen.WithSeed(3), graphgen.WithUniformWeights(1, 3)},
		graphgen.RandomConnected(24, 30))
	require.NoError(t, err)

	first, err := mst.RunMST(quietContext(), vs, nil, mst.WithWorkers(1))
	require.NoError(t, err)
	for _, w := range []int{2, 8, 32} {
		again, err := mst.RunMST(quietContext(), vs, nil, mst.WithWorkers(w))
		require.NoError(t, err)
		if diff := cmp.Diff(first.Vertices, again.Vertices); diff != "" {
			t.Fatalf("workers=%d changed the result:\n%s", w, diff)
		}
		assert.Equal(t, first.Stats, again.Stats)
	}
}

// TestRunMST_MatchesKruskal compares against the sequential reference on random graphs.
func TestRunMST_MatchesKruskal(t *testing.T) {
	for seed := int64(1); seed <= 12; seed++ {
		n := 2 + int(seed*4)%49
		extra := int(seed) * 3
		if max := n*(n-1)/2 - (n - 1); extra > max {
			extra = max
		}
		vs, err := graphgen.Build([]graphgen.Option{graphgen.WithSeed(seed), graphgen.WithUniformWeights(0, 20)},
			graphgen.RandomConnected(n, extra))
		require.NoError(t, err)

		res, err := mst.RunMST(quietContext(), vs, nil)
		require.NoError(t, err, "seed %d", seed)
		require.NoError(t, res.Verify(vs), "seed %d", seed)

		_, total, err := mst.Kruskal(vs)
		require.NoError(t, err)
		assert.Equal(t, total, res.TotalWeight())
		assert.Len(t, res.Edges(), n-1)
	}
}

// TestRunMST_Topologies covers the structured generators.
func TestRunMST_Topologies(t *testing.T) {
	cases := map[string]graphgen.Constructor{
		"path":     graphgen.Path(9),
		"cycle":    graphgen.Cycle(8),
		"complete": graphgen.Complete(7),
		"star":     graphgen.Star(10),
		"grid":     graphgen.Grid(4, 5),
		"forest":   graphgen.Disjoint(graphgen.Cycle(5), graphgen.Isolated(1), graphgen.Grid(2, 3)),
	}
	for name, con := range cases {
		t.Run(name, func(t *testing.T) {
			vs, err := graphgen.Build([]graphgen.Option{graphgen.WithSeed(11), graphgen.WithUniformWeights(1, 9)}, con)
			require.NoError(t, err)
			res, err := mst.RunMST(quietContext(), vs, nil)
			require.NoError(t, err)
			require.NoError(t, res.Verify(vs))
		})
	}
}

// TestRunMST_RoundBound asserts the O(n log n) convergence on fixed graphs.
func TestRunMST_RoundBound(t *testing.T) {
	for _, n := range []int{4, 16, 40} {
		extra := n
		if max := n*(n-1)/2 - (n - 1); extra > max {
			extra = max
		}
		vs, err := graphgen.Build([]graphgen.Option{graphgen.WithSeed(int64(n)), graphgen.WithDistinctWeights(),
			graphgen.WithUniformWeights(1, 100)}, graphgen.RandomConnected(n, extra))
		require.NoError(t, err)
		res, err := mst.RunMST(quietContext(), vs, nil)
		require.NoError(t, err)
		bound := 10 * n * (bits.Len(uint(n)) + 1)
		assert.LessOrEqual(t, res.Stats.Rounds, bound, "n=%d", n)
	}
}

// TestRunMST_WakeSet checks that a single starter suffices and that bad sets fail.
func TestRunMST_WakeSet(t *testing.T) {
	vs := build([]string{"A", "B", "C"}, []edge{{"A", "B", 3}, {"B", "C", 1}, {"A", "C", 2}})

	res, err := mst.RunMST(quietContext(), vs, []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, mstEdges(edge{"A", "C", 2}, edge{"B", "C", 1}), res.Edges())

	_, err = mst.RunMST(quietContext(), vs, []string{"Z"})
	assert.ErrorIs(t, err, mst.ErrUnknownWakeVertex)

	two := build([]string{"A", "B", "C", "D"}, []edge{{"A", "B", 5}, {"C", "D", 1}})
	_, err = mst.RunMST(quietContext(), two, []string{"A"})
	assert.ErrorIs(t, err, mst.ErrNoWakeVertex)
}

// TestRunMST_IsolatedOnly returns immediately with no edges.
func TestRunMST_IsolatedOnly(t *testing.T) {
	vs := build([]string{"A", "B"}, nil)
	res, err := mst.RunMST(quietContext(), vs, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Edges())
	assert.Len(t, res.Vertices, 2)
	assert.Equal(t, 0, res.Stats.Fragments)
}

// TestRunMST_InvalidInput covers every validation sentinel.
func TestRunMST_InvalidInput(t *testing.T) {
	asym := build([]string{"A", "B"}, []edge{{"A", "B", 1}})
	asym[1].Edges["A"] = 2

	cases := []struct {
		name string
		in   []ghs.Vertex
		want error
	}{
		{"empty", nil, mst.ErrEmptyGraph},
		{"emptyID", []ghs.Vertex{ghs.NewVertex("", nil)}, mst.ErrEmptyVertexID},
		{"duplicate", []ghs.Vertex{ghs.NewVertex("A", nil), ghs.NewVertex("A", nil)}, mst.ErrDuplicateVertex},
		{"selfLoop", []ghs.Vertex{ghs.NewVertex("A", map[string]int64{"A": 1})}, mst.ErrSelfLoop},
		{"unknownNeighbor", []ghs.Vertex{ghs.NewVertex("A", map[string]int64{"B": 1})}, mst.ErrUnknownNeighbor},
		{"asymmetric", asym, mst.ErrAsymmetricEdge},
		{"negativeWeight", build([]string{"A", "B"}, []edge{{"A", "B", -1}}), mst.ErrWeightRange},
		{"infiniteWeight", build([]string{"A", "B"}, []edge{{"A", "B", ghs.Infinity}}), mst.ErrWeightRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mst.RunMST(quietContext(), tc.in, nil)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestRunMST_Options verifies option validation and the round limit.
func TestRunMST_Options(t *testing.T) {
	vs := build([]string{"A", "B", "C"}, []edge{{"A", "B", 3}, {"B", "C", 1}, {"A", "C", 2}})
	ctx := quietContext()

	for _, opt := range []mst.Option{mst.WithWorkers(0), mst.WithMaxRounds(-1), mst.WithRoundTimeout(-time.Second)} {
		_, err := mst.RunMST(ctx, vs, nil, opt)
		assert.ErrorIs(t, err, mst.ErrOptionViolation)
	}

	_, err := mst.RunMST(ctx, vs, nil, mst.WithMaxRounds(2))
	assert.ErrorIs(t, err, superstep.ErrRoundLimit)
}

// TestRunMST_Cancelled verifies cancellation is surfaced.
func TestRunMST_Cancelled(t *testing.T) {
	vs := build([]string{"A", "B"}, []edge{{"A", "B", 1}})
	ctx, cancel := context.WithCancel(quietContext())
	cancel()
	_, err := mst.RunMST(ctx, vs, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestRunMST_Badger runs on the badger substrate and its termination flag.
func TestRunMST_Badger(t *testing.T) {
	vs, err := graphgen.Build([]graphgen.Option{graphgen.WithSeed(5), graphgen.WithUniformWeights(1, 4)},
		graphgen.Disjoint(graphgen.RandomConnected(12, 8), graphgen.Cycle(4)))
	require.NoError(t, err)

	store, err := badgerstore.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	res, err := mst.RunMST(quietContext(), vs, nil,
		mst.WithSubstrate(store),
		mst.WithTerminator(func(expected int) superstep.Terminator { return store.NewFlag(expected) }))
	require.NoError(t, err)
	require.NoError(t, res.Verify(vs))

	mem, err := mst.RunMST(quietContext(), vs, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(mem.Vertices, res.Vertices); diff != "" {
		t.Fatalf("badger result differs from memory:\n%s", diff)
	}
}

// TestRunMST_ReusedBadgerStore runs two different graphs on one store.
func TestRunMST_ReusedBadgerStore(t *testing.T) {
	ctx := quietContext()
	store, err := badgerstore.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	opts := []mst.Option{
		mst.WithSubstrate(store),
		mst.WithTerminator(func(expected int) superstep.Terminator { return store.NewFlag(expected) }),
	}

	tri := build([]string{"A", "B", "C"}, []edge{{"A", "B", 3}, {"B", "C", 1}, {"A", "C", 2}})
	res, err := mst.RunMST(ctx, tri, nil, opts...)
	require.NoError(t, err)
	require.NoError(t, res.Verify(tri))

	path := build([]string{"A", "B", "C", "D"}, []edge{{"A", "B", 1}, {"B", "C", 5}, {"C", "D", 1}})
	res, err = mst.RunMST(ctx, path, nil, opts...)
	require.NoError(t, err)
	require.NoError(t, res.Verify(path))
	assert.Equal(t, mstEdges(edge{"A", "B", 1}, edge{"B", "C", 5}, edge{"C", "D", 1}), res.Edges())
	assert.Greater(t, res.Stats.Rounds, 1)
}
