// SPDX-License-Identifier: MIT

// Package badgerstore is a durable superstep.Substrate and superstep.Terminator
// backed by BadgerDB.
//
// Key layout
//
//	g<gen:8><key>\x00<seq:8>   one record of generation gen, msgpack-encoded
//	t/<fragment>               termination marker of one halted fragment
//
// Generations are written with a WriteBatch and the previous generation is removed
// with DropPrefix once the new one is flushed, so at most two generations ever
// coexist on disk. Records of one key are contiguous and keys sort ascending, which
// is exactly the shape GroupByKey needs.
//
// An empty directory opens an in-memory database, which is what tests use.
package badgerstore
