// SPDX-License-Identifier: MIT
// Package: bspgraph/badgerstore
//
// flag.go — Flag: the durable termination marker.

package badgerstore

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/katalvlaran/bspgraph/superstep"
)

var _ superstep.Terminator = (*Flag)(nil)

// Flag is a superstep.Terminator that stores one marker key per halted fragment
// in the Store's database. It is done once `expected` distinct markers exist.
type Flag struct {
	db       *badger.DB
	expected int
}

// NewFlag returns a Flag sharing s's database.
func (s *Store) NewFlag(expected int) *Flag {
	return &Flag{db: s.db, expected: expected}
}

// SignalTermination writes the marker of fragment; rewriting it is harmless.
func (f *Flag) SignalTermination(ctx context.Context, fragment ghs.EdgeID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k, err := flagKey(fragment)
	if err != nil {
		return err
	}
	if err := f.db.Update(func(txn *badger.Txn) error { return txn.Set(k, nil) }); err != nil {
		return fmt.Errorf("badgerstore: signal %s: %w", fragment, err)
	}
	return nil
}

// CheckTermination counts markers against the expected number of fragments.
func (f *Flag) CheckTermination(ctx context.Context) (bool, error) {
	if f.expected <= 0 {
		return true, nil
	}
	n := 0
	err := f.scan(ctx, func([]byte) error {
		n++
		return nil
	})
	return n >= f.expected, err
}

// Fragments returns every signalled fragment in key order.
func (f *Flag) Fragments(ctx context.Context) ([]ghs.EdgeID, error) {
	var out []ghs.EdgeID
	err := f.scan(ctx, func(k []byte) error {
		e, err := decodeFlagKey(k)
		if err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

func (f *Flag) scan(ctx context.Context, fn func(key []byte) error) error {
	prefix := []byte(flagPrefix)
	return f.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(it.Item().KeyCopy(nil)); err != nil {
				return err
			}
		}
		return nil
	})
}
