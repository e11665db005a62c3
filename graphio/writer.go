// SPDX-License-Identifier: MIT

package graphio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bspgraph/mst"
)

// WriteMSTCSV writes edges as "u,v,weight" rows after a header.
func WriteMSTCSV(w io.Writer, edges []mst.Edge) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(edgeHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, e := range edges {
		if err := writer.Write([]string{e.U, e.V, strconv.FormatInt(e.Weight, 10)}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMSTFile creates filePath (and its directory) and writes edges into it.
func WriteMSTFile(filePath string, edges []mst.Edge) error {
	return writeFile(filePath, func(w io.Writer) error { return WriteMSTCSV(w, edges) })
}

// Summary is the YAML report of one run.
type Summary struct {
	Input       string `yaml:"input,omitempty"`
	Vertices    int    `yaml:"vertices"`
	Components  int    `yaml:"components"`
	TreeEdges   int    `yaml:"tree_edges"`
	TotalWeight int64  `yaml:"total_weight"`
	Rounds      int    `yaml:"rounds"`
	Messages    int    `yaml:"messages"`
	Deferred    int    `yaml:"deferred"`
	Fragments   int    `yaml:"fragments"`
	Store       string `yaml:"store,omitempty"`
	Verified    bool   `yaml:"verified"`
	Elapsed     string `yaml:"elapsed"`
}

// NewSummary fills a Summary from res.
func NewSummary(res *mst.Result) Summary {
	edges := res.Edges()
	var total int64
	for _, e := range edges {
		total += e.Weight
	}
	return Summary{
		Vertices:    len(res.Vertices),
		Components:  len(res.Components),
		TreeEdges:   len(edges),
		TotalWeight: total,
		Rounds:      res.Stats.Rounds,
		Messages:    res.Stats.Messages,
		Deferred:    res.Stats.Deferred,
		Fragments:   res.Stats.Fragments,
	}
}

// WriteSummaryYAML encodes s as YAML with two-space indentation.
func WriteSummaryYAML(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return enc.Close()
}

// WriteSummaryFile creates filePath (and its directory) and writes s into it.
func WriteSummaryFile(filePath string, s Summary) error {
	return writeFile(filePath, func(w io.Writer) error { return WriteSummaryYAML(w, s) })
}

func writeFile(filePath string, fn func(io.Writer) error) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := fn(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
