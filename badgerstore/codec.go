// SPDX-License-Identifier: MIT
// Package: bspgraph/badgerstore
//
// codec.go — msgpack encoding of records and fragment markers, and key builders.

package badgerstore

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/katalvlaran/bspgraph/superstep"
)

const (
	genTag      = 'g'
	keySep      = 0x00
	flagPrefix  = "t/"
	u64Size     = 8
	genHeaderSz = 1 + u64Size
)

// genPrefix returns the prefix shared by every record of generation gen.
func genPrefix(gen uint64) []byte {
	p := make([]byte, genHeaderSz)
	p[0] = genTag
	binary.BigEndian.PutUint64(p[1:], gen)
	return p
}

// recordKey returns the storage key of the seq-th record under key in generation gen.
func recordKey(gen uint64, key string, seq uint64) ([]byte, error) {
	if strings.IndexByte(key, keySep) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	k := make([]byte, 0, genHeaderSz+len(key)+1+u64Size)
	k = append(k, genPrefix(gen)...)
	k = append(k, key...)
	k = append(k, keySep)
	return binary.BigEndian.AppendUint64(k, seq), nil
}

func encodeRecord(r superstep.Record) ([]byte, error) {
	b, err := msgpack.Marshal(&r)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: encode record %q: %w", r.Key, err)
	}
	return b, nil
}

func decodeRecord(b []byte) (superstep.Record, error) {
	var r superstep.Record
	if err := msgpack.Unmarshal(b, &r); err != nil {
		return superstep.Record{}, fmt.Errorf("badgerstore: decode record: %w", err)
	}
	return r, nil
}

// flagKey encodes fragment unambiguously, whatever its endpoints contain.
func flagKey(fragment ghs.EdgeID) ([]byte, error) {
	b, err := msgpack.Marshal(&fragment)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: encode fragment: %w", err)
	}
	return append([]byte(flagPrefix), b...), nil
}

func decodeFlagKey(k []byte) (ghs.EdgeID, error) {
	var e ghs.EdgeID
	if err := msgpack.Unmarshal(k[len(flagPrefix):], &e); err != nil {
		return ghs.EdgeID{}, fmt.Errorf("badgerstore: decode fragment: %w", err)
	}
	return e, nil
}
