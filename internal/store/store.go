// Package store persists an index as a single bolt database:
//
//	meta    "meta"       -> JSON index.Meta
//	bins    ordinal      -> user-bin file path
//	filters ordinal      -> snappy(bloom filter)
//
// Ordinals are 8-byte big-endian so bolt's key order is bin order.
package store

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/boltdb/bolt"
	"github.com/golang/snappy"

	"hibf-hashing/internal/hibf"
	"hibf-hashing/internal/index"
)

var (
	bucketMeta    = []byte("meta")
	bucketBins    = []byte("bins")
	bucketFilters = []byte("filters")
	keyMeta       = []byte("meta")
)

// ErrNotIndex is returned when a file opens but lacks the index layout.
var ErrNotIndex = errors.New("not an index file")

const lockTimeout = time.Second

func ordinal(i int) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(i))
	return k[:]
}

// Save writes idx to path, replacing any existing file.
func Save(path string, idx *index.Index) error {
	if idx == nil || idx.Filter == nil {
		return errors.New("store: nil index")
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: replace %s: %w", path, err)
	}
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: lockTimeout})
	if err != nil {
		return fmt.Errorf("store: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) (err error) {
		meta, err := tx.CreateBucket(bucketMeta)
		if err != nil {
			return
		}
		raw, err := json.Marshal(idx.Meta)
		if err != nil {
			return
		}
		if err = meta.Put(keyMeta, raw); err != nil {
			return
		}

		bins, err := tx.CreateBucket(bucketBins)
		if err != nil {
			return
		}
		filters, err := tx.CreateBucket(bucketFilters)
		if err != nil {
			return
		}
		var buf bytes.Buffer
		for i, name := range idx.Meta.Bins {
			if err = bins.Put(ordinal(i), []byte(name)); err != nil {
				return
			}
			buf.Reset()
			if _, err = idx.Filter.WriteBinTo(i, &buf); err != nil {
				return fmt.Errorf("bin %d: %w", i, err)
			}
			if err = filters.Put(ordinal(i), snappy.Encode(nil, buf.Bytes())); err != nil {
				return
			}
		}
		return
	})
	if cerr := db.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("store: save %s: %w", path, err)
	}
	return nil
}

// Load reads an index saved by Save. The file is opened read-only.
func Load(path string) (*index.Index, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: lockTimeout, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrNotIndex, err)
	}
	defer db.Close()

	idx := &index.Index{}
	err = db.View(func(tx *bolt.Tx) error {
		mb, bb, fb := tx.Bucket(bucketMeta), tx.Bucket(bucketBins), tx.Bucket(bucketFilters)
		if mb == nil || bb == nil || fb == nil {
			return ErrNotIndex
		}
		raw := mb.Get(keyMeta)
		if raw == nil {
			return ErrNotIndex
		}
		if err := json.Unmarshal(raw, &idx.Meta); err != nil {
			return fmt.Errorf("%w: meta: %v", ErrNotIndex, err)
		}
		if err := idx.Meta.Validate(); err != nil {
			return err
		}

		n := len(idx.Meta.Bins)
		filters := make([]*bloom.BloomFilter, n)
		for i := 0; i < n; i++ {
			name := bb.Get(ordinal(i))
			if name == nil || string(name) != idx.Meta.Bins[i] {
				return fmt.Errorf("%w: bin %d name mismatch", ErrNotIndex, i)
			}
			blob := fb.Get(ordinal(i))
			if blob == nil {
				return fmt.Errorf("%w: bin %d has no filter", ErrNotIndex, i)
			}
			dec, err := snappy.Decode(nil, blob)
			if err != nil {
				return fmt.Errorf("bin %d: %w", i, err)
			}
			if filters[i], err = hibf.ReadBin(bytes.NewReader(dec)); err != nil {
				return fmt.Errorf("bin %d: %w", i, err)
			}
		}
		f, err := hibf.FromBins(idx.Meta.FilterConfig(), filters)
		if err != nil {
			return err
		}
		idx.Filter = f
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}
