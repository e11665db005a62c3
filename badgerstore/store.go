// SPDX-License-Identifier: MIT
// Package: bspgraph/badgerstore
//
// store.go — Store: the generation-per-prefix Substrate.

package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/katalvlaran/bspgraph/superstep"
)

// Sentinel errors.
var (
	// ErrInvalidKey indicates a record key containing the 0x00 separator.
	ErrInvalidKey = errors.New("badgerstore: record key contains NUL")
)

// Option configures Open.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	syncW    bool
	memTable int64
}

// WithLogger routes badger's logs to l; by default badger is silent.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSyncWrites makes every flush durable before returning.
func WithSyncWrites(on bool) Option {
	return func(o *options) { o.syncW = on }
}

// WithMemTableSize overrides badger's memtable size in bytes; non-positive keeps the default.
func WithMemTableSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.memTable = n
		}
	}
}

var _ superstep.Substrate = (*Store)(nil)

// Store is a superstep.Substrate over one badger database.
type Store struct {
	db *badger.DB

	mu  sync.Mutex
	gen uint64
}

// Open opens (or creates) a database at dir and clears any previous run.
// An empty dir opens an in-memory database.
func Open(dir string, opts ...Option) (*Store, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	bo := badger.DefaultOptions(dir).WithSyncWrites(o.syncW)
	if dir == "" {
		bo = bo.WithInMemory(true)
	}
	if o.logger != nil {
		bo = bo.WithLogger(slogAdapter{l: o.logger})
	} else {
		bo = bo.WithLogger(nil)
	}
	if o.memTable > 0 {
		bo = bo.WithMemTableSize(o.memTable)
	}

	db, err := badger.Open(bo)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: open %q: %w", dir, err)
	}
	if err := db.DropAll(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("badgerstore: reset %q: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Load starts a new run: it clears the termination markers of any previous run
// and replaces the current generation with records.
func (s *Store) Load(ctx context.Context, records []superstep.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.DropPrefix([]byte(flagPrefix)); err != nil {
		return fmt.Errorf("badgerstore: clear markers: %w", err)
	}
	return s.EmitNextRound(ctx, records)
}

// EmitNextRound writes records as a new generation, then drops the old one.
func (s *Store) EmitNextRound(ctx context.Context, records []superstep.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.gen + 1
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
		k, err := recordKey(next, r.Key, uint64(i))
		if err != nil {
			return err
		}
		v, err := encodeRecord(r)
		if err != nil {
			return err
		}
		if err := wb.Set(k, v); err != nil {
			return fmt.Errorf("badgerstore: write generation %d: %w", next, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("badgerstore: flush generation %d: %w", next, err)
	}
	if err := s.db.DropPrefix(genPrefix(s.gen)); err != nil {
		return fmt.Errorf("badgerstore: drop generation %d: %w", s.gen, err)
	}
	s.gen = next
	return nil
}

// GroupByKey streams the current generation in key order, one group per key.
func (s *Store) GroupByKey(ctx context.Context, fn func(key string, group []superstep.Record) error) error {
	s.mu.Lock()
	prefix := genPrefix(s.gen)
	s.mu.Unlock()

	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: true, PrefetchSize: 100, Prefix: prefix})
		defer it.Close()

		var (
			key   string
			group []superstep.Record
		)
		flush := func() error {
			if len(group) == 0 {
				return nil
			}
			g := group
			group = nil
			return fn(key, g)
		}
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var r superstep.Record
			err := it.Item().Value(func(val []byte) error {
				var derr error
				r, derr = decodeRecord(val)
				return derr
			})
			if err != nil {
				return err
			}
			if r.Key != key {
				if err := flush(); err != nil {
					return err
				}
				key = r.Key
			}
			group = append(group, r)
		}
		return flush()
	})
}

// Snapshot returns every record of the current generation in key order.
func (s *Store) Snapshot(ctx context.Context) ([]superstep.Record, error) {
	var out []superstep.Record
	err := s.GroupByKey(ctx, func(_ string, group []superstep.Record) error {
		out = append(out, group...)
		return nil
	})
	return out, err
}

// Generation returns the number of generations written so far.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
