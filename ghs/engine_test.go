// SPDX-License-Identifier: MIT
package ghs_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProcessVertex_Triangle verifies A-B=3, B-C=1, A-C=2 yields {A-C, B-C}.
func TestProcessVertex_Triangle(t *testing.T) {
	vs := undirected([]string{"A", "B", "C"}, [][3]interface{}{
		{"A", "B", 3}, {"B", "C", 1}, {"A", "C", 2},
	})

	res := simulate(t, vs, 1, 100)

	assert.Equal(t, []ghs.EdgeID{{Lo: "A", Hi: "C"}, {Lo: "B", Hi: "C"}}, treeEdges(res.Vertices))
	require.Len(t, res.Fragments, 1)
	// Only the other core endpoint's Report may still be in flight; drain drops it.
	core := res.Fragments[0]
	for _, m := range res.Pending {
		assert.Equal(t, ghs.KindReport, m.Kind, "%s %s->%s", m.Kind, m.From, m.To)
		assert.Equal(t, core, ghs.Canonical(m.From, m.To), "%s %s->%s", m.Kind, m.From, m.To)
	}

	// Every vertex ends Found with the final fragment identity.
	for id, v := range res.Vertices {
		assert.Equal(t, ghs.Found, v.Status, id)
		assert.Equal(t, res.Fragments[0], v.FragIdentity, id)
		assert.Equal(t, 0, v.FindCount, id)
	}
	// A-B joins a cycle with cheaper edges and is rejected at both ends.
	assert.Equal(t, ghs.Rejected, res.Vertices["A"].EdgeState["B"])
	assert.Equal(t, ghs.Rejected, res.Vertices["B"].EdgeState["A"])
}

// TestProcessVertex_TwoDisjointEdges verifies both components finish on their own
// and no message ever crosses between them.
func TestProcessVertex_TwoDisjointEdges(t *testing.T) {
	vs := undirected([]string{"A", "B", "C", "D"}, [][3]interface{}{
		{"A", "B", 5}, {"C", "D", 1},
	})

	res := simulate(t, vs, 2, 100)

	assert.Equal(t, []ghs.EdgeID{{Lo: "A", Hi: "B"}, {Lo: "C", Hi: "D"}}, res.Fragments)
	assert.Equal(t, res.Fragments, treeEdges(res.Vertices))

	component := map[string]int{"A": 0, "B": 0, "C": 1, "D": 1}
	for _, m := range res.Sent {
		assert.Equal(t, component[m.From], component[m.To], "%s %s->%s", m.Kind, m.From, m.To)
	}
}

// TestProcessVertex_EqualWeightCycle verifies ties resolve by canonical identity.
func TestProcessVertex_EqualWeightCycle(t *testing.T) {
	vs := undirected([]string{"A", "B", "C", "D"}, [][3]interface{}{
		{"A", "B", 1}, {"B", "C", 1}, {"C", "D", 1}, {"A", "D", 1},
	})

	res := simulate(t, vs, 1, 200)

	want := []ghs.EdgeID{{Lo: "A", Hi: "B"}, {Lo: "A", Hi: "D"}, {Lo: "B", Hi: "C"}}
	assert.Equal(t, want, treeEdges(res.Vertices))
	assert.Equal(t, ghs.Rejected, res.Vertices["C"].EdgeState["D"])
}

// TestProcessVertex_Deterministic verifies two runs produce identical records.
func TestProcessVertex_Deterministic(t *testing.T) {
	vs := undirected([]string{"a", "b", "c", "d", "e", "f"}, [][3]interface{}{
		{"a", "b", 4}, {"a", "c", 4}, {"b", "c", 2}, {"c", "d", 7},
		{"d", "e", 1}, {"e", "f", 4}, {"d", "f", 4}, {"b", "f", 9},
	})

	first := simulate(t, vs, 1, 500)
	second := simulate(t, vs, 1, 500)

	if diff := cmp.Diff(first.Vertices, second.Vertices); diff != "" {
		t.Fatalf("vertex records differ between runs (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Rounds, second.Rounds)
	assert.Len(t, treeEdges(first.Vertices), 5)
}

// TestProcessVertex_IsolatedVertex verifies a vertex without edges wakes into Found silently.
func TestProcessVertex_IsolatedVertex(t *testing.T) {
	v := ghs.NewVertex("solo", nil)

	out, err := ghs.ProcessVertex(&v, nil, ghs.NewRoundClock(ghs.RoundBase(0)))

	require.NoError(t, err)
	assert.Empty(t, out.Outbox)
	assert.False(t, out.Halted)
	assert.Equal(t, ghs.Found, v.Status)
	assert.True(t, v.Attached)
}

// TestProcessVertex_NoAutoWake verifies a non-waking vertex stays asleep until contacted.
func TestProcessVertex_NoAutoWake(t *testing.T) {
	v := ghs.NewVertex("A", map[string]int64{"B": 1})
	v.AutoWake = false

	out, err := ghs.ProcessVertex(&v, nil, ghs.NewRoundClock(ghs.RoundBase(0)))

	require.NoError(t, err)
	assert.Empty(t, out.Outbox)
	assert.Equal(t, ghs.Sleeping, v.Status)
	assert.Equal(t, ghs.Basic, v.EdgeState["B"])
}

// TestProcessVertex_ConnectDeferred verifies a same-level Connect over a Basic edge
// is re-emitted to self with a later timestamp and the original sender.
func TestProcessVertex_ConnectDeferred(t *testing.T) {
	v := ghs.NewVertex("A", map[string]int64{"B": 1, "C": 2})
	v.AutoWake = false
	in := ghs.NewConnect("C", "A", 0)
	in.Timestamp = ghs.RoundBase(3) + 7

	out, err := ghs.ProcessVertex(&v, []ghs.Message{in}, ghs.NewRoundClock(ghs.RoundBase(4)))

	require.NoError(t, err)
	require.Len(t, out.Outbox, 2)
	// Waking up connects over the minimum edge first.
	assert.Equal(t, ghs.KindConnect, out.Outbox[0].Kind)
	assert.Equal(t, "B", out.Outbox[0].To)
	// The deferred message keeps its sender and is addressed back to A.
	d := out.Outbox[1]
	assert.Equal(t, ghs.KindConnect, d.Kind)
	assert.Equal(t, "C", d.From)
	assert.Equal(t, "A", d.To)
	assert.Greater(t, d.Timestamp, out.Outbox[0].Timestamp)
	assert.Equal(t, 1, out.Deferred)
	assert.Equal(t, ghs.Basic, v.EdgeState["C"])
}

// TestProcessVertex_ConnectAbsorb verifies a lower-level Connect is absorbed into
// a searching fragment and counted as an outstanding child.
func TestProcessVertex_ConnectAbsorb(t *testing.T) {
	v := ghs.NewVertex("A", map[string]int64{"B": 1, "C": 5})
	v.Attached = true
	v.EdgeState = map[string]ghs.EdgeState{"B": ghs.Branch, "C": ghs.Basic}
	v.Status = ghs.Find
	v.FragLevel = 1
	v.FragIdentity = ghs.Canonical("A", "B")
	v.InBranch = "B"
	in := ghs.NewConnect("C", "A", 0)
	in.Timestamp = ghs.RoundBase(5) + 1

	out, err := ghs.ProcessVertex(&v, []ghs.Message{in}, ghs.NewRoundClock(ghs.RoundBase(6)))

	require.NoError(t, err)
	require.Len(t, out.Outbox, 1)
	got := out.Outbox[0]
	assert.Equal(t, ghs.KindInitiate, got.Kind)
	assert.Equal(t, "C", got.To)
	assert.Equal(t, ghs.InitiatePayload{Level: 1, Identity: ghs.EdgeID{Lo: "A", Hi: "B"}, Status: ghs.Find}, *got.Initiate)
	assert.Equal(t, ghs.Branch, v.EdgeState["C"])
	assert.Equal(t, 1, v.FindCount)
}

// TestProcessVertex_TestHigherLevelDeferred verifies a Test from a higher level waits.
func TestProcessVertex_TestHigherLevelDeferred(t *testing.T) {
	v := ghs.NewVertex("A", map[string]int64{"B": 1})
	v.Attached = true
	v.EdgeState = map[string]ghs.EdgeState{"B": ghs.Branch}
	v.Status = ghs.Found
	in := ghs.NewTest("B", "A", 2, ghs.Canonical("B", "X"))
	in.Timestamp = ghs.RoundBase(1) + 1

	out, err := ghs.ProcessVertex(&v, []ghs.Message{in}, ghs.NewRoundClock(ghs.RoundBase(2)))

	require.NoError(t, err)
	assert.Equal(t, 1, out.Deferred)
	require.Len(t, out.Outbox, 1)
	assert.Equal(t, ghs.KindTest, out.Outbox[0].Kind)
}

// TestProcessVertex_Violations verifies every malformed input is rejected with a sentinel.
func TestProcessVertex_Violations(t *testing.T) {
	base := func() ghs.Vertex { return ghs.NewVertex("A", map[string]int64{"B": 1}) }
	stamped := func(m ghs.Message, ts uint64) ghs.Message { m.Timestamp = ts; return m }

	cases := []struct {
		name  string
		setup func(*ghs.Vertex)
		inbox []ghs.Message
		want  error
	}{
		{name: "empty id", setup: func(v *ghs.Vertex) { v.ID = "" }, want: ghs.ErrEmptyVertexID},
		{name: "negative weight", setup: func(v *ghs.Vertex) { v.Edges["B"] = -1 }, want: ghs.ErrBadWeight},
		{name: "misrouted", inbox: []ghs.Message{stamped(ghs.NewAccept("B", "Z"), 1)}, want: ghs.ErrMisrouted},
		{name: "unknown kind", inbox: []ghs.Message{{Kind: ghs.Kind(99), From: "B", To: "A", Timestamp: 1}}, want: ghs.ErrUnknownKind},
		{name: "missing payload", inbox: []ghs.Message{{Kind: ghs.KindReport, From: "B", To: "A", Timestamp: 1}}, want: ghs.ErrMissingPayload},
		{name: "unknown edge", inbox: []ghs.Message{stamped(ghs.NewConnect("Q", "A", 0), 1)}, want: ghs.ErrUnknownEdge},
		{
			name:  "unsorted inbox",
			inbox: []ghs.Message{stamped(ghs.NewAccept("B", "A"), 9), stamped(ghs.NewReject("B", "A"), 2)},
			want:  ghs.ErrInboxOrder,
		},
		{
			name: "level regression",
			setup: func(v *ghs.Vertex) {
				v.Attached, v.Status, v.FragLevel = true, ghs.Found, 3
			},
			inbox: []ghs.Message{stamped(ghs.NewInitiate("B", "A", 1, ghs.Canonical("A", "B"), ghs.Find), 1)},
			want:  ghs.ErrLevelRegression,
		},
		{
			name: "find count underflow",
			setup: func(v *ghs.Vertex) {
				v.Edges["C"] = 2
				v.Attached, v.Status, v.InBranch = true, ghs.Find, "B"
			},
			inbox: []ghs.Message{stamped(ghs.NewReport("C", "A", ghs.Infinity, ghs.EdgeID{}), 1)},
			want:  ghs.ErrFindCount,
		},
		{
			name: "change root without best edge",
			setup: func(v *ghs.Vertex) {
				v.Attached, v.Status = true, ghs.Found
			},
			inbox: []ghs.Message{stamped(ghs.NewChangeRoot("B", "A"), 1)},
			want:  ghs.ErrNoBestEdge,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := base()
			if tc.setup != nil {
				tc.setup(&v)
			}
			_, err := ghs.ProcessVertex(&v, tc.inbox, ghs.NewRoundClock(ghs.RoundBase(1)))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestProcessVertex_ViolationContext verifies handler failures carry the message context.
func TestProcessVertex_ViolationContext(t *testing.T) {
	v := ghs.NewVertex("A", map[string]int64{"B": 1})
	v.Attached, v.Status = true, ghs.Found
	in := ghs.NewChangeRoot("B", "A")
	in.Timestamp = 4

	_, err := ghs.ProcessVertex(&v, []ghs.Message{in}, ghs.NewRoundClock(0))

	var ve *ghs.ViolationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "A", ve.Vertex)
	assert.Equal(t, ghs.KindChangeRoot, ve.Kind)
	assert.Equal(t, "B", ve.From)
	assert.Contains(t, err.Error(), "changeroot")
}

// TestProcessVertex_NilClock verifies a missing clock is rejected before any mutation.
func TestProcessVertex_NilClock(t *testing.T) {
	v := ghs.NewVertex("A", map[string]int64{"B": 1})
	_, err := ghs.ProcessVertex(&v, nil, nil)
	require.ErrorIs(t, err, ghs.ErrNilClock)
	assert.False(t, v.Attached)
}
