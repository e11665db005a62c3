// SPDX-License-Identifier: MIT
package graphgen_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/katalvlaran/bspgraph/graphgen"
)

func edgeCount(vs []ghs.Vertex) int {
	n := 0
	for _, v := range vs {
		n += len(v.Edges)
	}
	return n / 2
}

// TestTopologies verifies vertex and edge counts per constructor.
func TestTopologies(t *testing.T) {
	cases := []struct {
		name     string
		con      graphgen.Constructor
		vertices int
		edges    int
	}{
		{"path", graphgen.Path(5), 5, 4},
		{"cycle", graphgen.Cycle(6), 6, 6},
		{"complete", graphgen.Complete(5), 5, 10},
		{"star", graphgen.Star(4), 4, 3},
		{"grid", graphgen.Grid(3, 4), 12, 17},
		{"isolated", graphgen.Isolated(3), 3, 0},
		{"disjoint", graphgen.Disjoint(graphgen.Path(3), graphgen.Cycle(3)), 6, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vs, err := graphgen.Build(nil, tc.con)
			require.NoError(t, err)
			assert.Len(t, vs, tc.vertices)
			assert.Equal(t, tc.edges, edgeCount(vs))
		})
	}
}

// TestTooFewVertices verifies size validation.
func TestTooFewVertices(t *testing.T) {
	for _, con := range []graphgen.Constructor{
		graphgen.Path(1), graphgen.Cycle(2), graphgen.Complete(1),
		graphgen.Star(1), graphgen.Grid(1, 1), graphgen.Isolated(0),
	} {
		_, err := graphgen.Build(nil, con)
		assert.ErrorIs(t, err, graphgen.ErrTooFewVertices)
	}
}

// TestRandomConnected verifies reproducibility, connectivity size and distinct weights.
func TestRandomConnected(t *testing.T) {
	opts := []graphgen.Option{graphgen.WithSeed(42), graphgen.WithUniformWeights(1, 5), graphgen.WithDistinctWeights()}

	a, err := graphgen.Build(opts, graphgen.RandomConnected(30, 20))
	require.NoError(t, err)
	opts = []graphgen.Option{graphgen.WithSeed(42), graphgen.WithUniformWeights(1, 5), graphgen.WithDistinctWeights()}
	b, err := graphgen.Build(opts, graphgen.RandomConnected(30, 20))
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed produced different graphs:\n%s", diff)
	}
	assert.Equal(t, 49, edgeCount(a))

	seen := map[int64]bool{}
	for _, v := range a {
		for n, w := range v.Edges {
			if v.ID < n {
				assert.False(t, seen[w], "weight %d reused", w)
				seen[w] = true
			}
		}
	}
}

// TestRandomConnected_Errors verifies RNG and density checks.
func TestRandomConnected_Errors(t *testing.T) {
	_, err := graphgen.Build(nil, graphgen.RandomConnected(5, 0))
	require.ErrorIs(t, err, graphgen.ErrNeedRandSource)

	_, err = graphgen.Build([]graphgen.Option{graphgen.WithSeed(1)}, graphgen.RandomConnected(4, 4))
	require.ErrorIs(t, err, graphgen.ErrTooManyEdges)
}

// TestIDSchemes verifies id generators.
func TestIDSchemes(t *testing.T) {
	assert.Equal(t, "v7", graphgen.DefaultIDFn(7))
	assert.Equal(t, "n007", graphgen.PaddedIDFn("n", 3)(7))
	assert.Equal(t, "AA", graphgen.ExcelColumnIDFn(26))

	vs, err := graphgen.Build([]graphgen.Option{graphgen.WithIDScheme(graphgen.ExcelColumnIDFn)}, graphgen.Path(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, []string{vs[0].ID, vs[1].ID, vs[2].ID})
	assert.Panics(t, func() { graphgen.WithIDScheme(nil) })
}

// TestBuild_NilConstructor verifies nil constructors are rejected.
func TestBuild_NilConstructor(t *testing.T) {
	_, err := graphgen.Build(nil, nil)
	require.ErrorIs(t, err, graphgen.ErrConstructFailed)
}
