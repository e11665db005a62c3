// SPDX-License-Identifier: MIT
// Package: bspgraph/graphgen
//
// id_fn.go — vertex id schemes.

package graphgen

import (
	"fmt"
	"strconv"
)

// IDFn maps a zero-based index to a vertex id. It must be pure and injective.
type IDFn func(idx int) string

// DefaultIDFn returns "v" + decimal idx: 0→"v0", 42→"v42".
func DefaultIDFn(idx int) string {
	return "v" + strconv.Itoa(idx)
}

// PaddedIDFn returns prefix + idx zero-padded to width, so lexical order equals
// numeric order for idx < 10^width.
func PaddedIDFn(prefix string, width int) IDFn {
	return func(idx int) string {
		return fmt.Sprintf("%s%0*d", prefix, width, idx)
	}
}

// ExcelColumnIDFn returns spreadsheet column names: 0→"A", 25→"Z", 26→"AA".
// Panics if idx < 0.
func ExcelColumnIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnIDFn: idx must be ≥ 0, got %d", idx))
	}
	var runes []rune
	for i := idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('A'+(i%26)))
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
