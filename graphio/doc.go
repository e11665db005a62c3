// SPDX-License-Identifier: MIT

// Package graphio reads weighted edge lists and writes spanning-tree results.
//
// Input (CSV, comma separated, '#' starts a comment line):
//
//	u,v,weight      optional header, skipped when the first field is "u"
//	A,B,3           undirected edge {A,B} with weight 3
//	C               a vertex without edges
//
// An edge listed twice with the same weight is kept once; any other repeat is an
// error. Output is a CSV of tree edges ("u,v,weight", U < V, sorted by canonical
// identity) and a YAML run summary.
package graphio
