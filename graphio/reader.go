// SPDX-License-Identifier: MIT

package graphio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/bspgraph/ghs"
)

// ReadEdgeFile opens filename and parses it with ReadEdgeCSV.
func ReadEdgeFile(filename string) ([]ghs.Vertex, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return ReadEdgeCSV(file)
}

// ReadEdgeCSV parses an edge list into vertices sorted by id with symmetric
// adjacency.
func ReadEdgeCSV(r io.Reader) ([]ghs.Vertex, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	adj := make(map[string]map[string]int64)
	touch := func(id string) {
		if _, ok := adj[id]; !ok {
			adj[id] = make(map[string]int64)
		}
	}

	for n := 0; ; n++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if n == 0 && strings.EqualFold(strings.TrimSpace(record[0]), edgeHeader[0]) {
			continue
		}
		lineNum, _ := reader.FieldPos(0)

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		switch len(record) {
		case 1:
			if record[0] == "" {
				return nil, fmt.Errorf("line %d: %w", lineNum, ErrEmptyID)
			}
			touch(record[0])
		case 3:
			u, v := record[0], record[1]
			if u == "" || v == "" {
				return nil, fmt.Errorf("line %d: %w", lineNum, ErrEmptyID)
			}
			if u == v {
				return nil, fmt.Errorf("line %d: %w: %q", lineNum, ErrSelfLoop, u)
			}
			w, err := parseWeight(record[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			touch(u)
			touch(v)
			if prev, ok := adj[u][v]; ok && prev != w {
				return nil, fmt.Errorf("line %d: %w: %q-%q (%d, %d)", lineNum, ErrConflictingEdge, u, v, prev, w)
			}
			adj[u][v] = w
			adj[v][u] = w
		default:
			return nil, fmt.Errorf("line %d: %w, got %d", lineNum, ErrColumns, len(record))
		}
	}

	ids := make([]string, 0, len(adj))
	for id := range adj {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]ghs.Vertex, 0, len(ids))
	for _, id := range ids {
		out = append(out, ghs.NewVertex(id, adj[id]))
	}
	return out, nil
}

func parseWeight(field string) (int64, error) {
	w, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrWeight, field, err)
	}
	if w < 0 || w >= ghs.Infinity {
		return 0, fmt.Errorf("%w: %d out of range", ErrWeight, w)
	}
	return w, nil
}
