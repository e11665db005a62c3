// SPDX-License-Identifier: MIT
package ghs_test

import (
	"sort"
	"testing"

	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/stretchr/testify/require"
)

// simResult is the end state of a sequential round-by-round simulation.
type simResult struct {
	Vertices  map[string]ghs.Vertex
	Fragments []ghs.EdgeID
	Rounds    int
	Deferred  int
	Pending   []ghs.Message
	Sent      []ghs.Message
}

// undirected builds vertices from "u v w" triples; every vertex auto-wakes.
func undirected(ids []string, edges [][3]interface{}) []ghs.Vertex {
	adj := make(map[string]map[string]int64, len(ids))
	for _, id := range ids {
		adj[id] = map[string]int64{}
	}
	for _, e := range edges {
		u, v, w := e[0].(string), e[1].(string), int64(e[2].(int))
		adj[u][v] = w
		adj[v][u] = w
	}
	out := make([]ghs.Vertex, 0, len(ids))
	for _, id := range ids {
		out = append(out, ghs.NewVertex(id, adj[id]))
	}
	return out
}

// simulate runs the protocol one round at a time without any substrate: every
// vertex is processed once per round, messages emitted in round r are delivered
// in round r+1. It stops once `fragments` distinct fragments have halted.
func simulate(t *testing.T, vs []ghs.Vertex, fragments, maxRounds int) simResult {
	t.Helper()
	state := make(map[string]ghs.Vertex, len(vs))
	ids := make([]string, 0, len(vs))
	for _, v := range vs {
		state[v.ID] = v.Clone()
		ids = append(ids, v.ID)
	}
	sort.Strings(ids)

	res := simResult{}
	halted := map[ghs.EdgeID]bool{}
	var pending []ghs.Message
	for r := 0; r < maxRounds; r++ {
		inbox := map[string][]ghs.Message{}
		for _, m := range pending {
			require.Contains(t, state, m.To, "message to unknown vertex")
			inbox[m.To] = append(inbox[m.To], m)
		}
		pending = nil

		for _, id := range ids {
			msgs := inbox[id]
			ghs.SortInbox(msgs)
			v := state[id].Clone()
			out, err := ghs.ProcessVertex(&v, msgs, ghs.NewRoundClock(ghs.RoundBase(r)))
			require.NoError(t, err, "round %d vertex %s", r, id)
			state[id] = v
			pending = append(pending, out.Outbox...)
			res.Sent = append(res.Sent, out.Outbox...)
			res.Deferred += out.Deferred
			if out.Halted && !halted[out.Fragment] {
				halted[out.Fragment] = true
				res.Fragments = append(res.Fragments, out.Fragment)
			}
		}
		if len(halted) >= fragments {
			res.Vertices, res.Rounds, res.Pending = state, r, pending
			sort.Slice(res.Fragments, func(i, j int) bool { return res.Fragments[i].Less(res.Fragments[j]) })
			return res
		}
	}
	t.Fatalf("no termination within %d rounds", maxRounds)
	return res
}

// treeEdges collects the canonical identities of every Branch edge, ascending.
func treeEdges(vs map[string]ghs.Vertex) []ghs.EdgeID {
	seen := map[ghs.EdgeID]bool{}
	var out []ghs.EdgeID
	for id, v := range vs {
		v := v
		for _, n := range v.BranchNeighbors() {
			e := ghs.Canonical(id, n)
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
