// Package vbcache keeps recently packed vertex buffers, zstd-compressed and
// keyed by a hash of everything that determines their content.
package vbcache

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"fe-shell-renderer/internal/contour"
	"fe-shell-renderer/internal/vertexbuf"
)

// Key identifies one pack result.
type Key uint64

// KeyOf hashes the inputs of a pack: the raw buffers, the selection, the
// color mode, the levels (contour mode only) and the swap flag.
func KeyOf(sel []int32, in vertexbuf.Input, mode vertexbuf.Mode, levels *contour.Levels, swap bool) Key {
	d := xxhash.New()
	var w [8]byte

	writeSection := func(b []byte) {
		binary.LittleEndian.PutUint64(w[:], uint64(len(b)))
		d.Write(w[:])
		d.Write(b)
	}
	writeSection(in.Undeformed)
	writeSection(in.Current)
	writeSection(in.Topology)

	binary.LittleEndian.PutUint64(w[:], uint64(len(sel)))
	d.Write(w[:])
	for _, el := range sel {
		binary.LittleEndian.PutUint32(w[:4], uint32(el))
		d.Write(w[:4])
	}

	flags := byte(mode) << 1
	if swap {
		flags |= 1
	}
	d.Write([]byte{flags})
	if mode == vertexbuf.ColorByContour && levels != nil {
		for _, l := range levels {
			binary.LittleEndian.PutUint32(w[:4], math.Float32bits(l))
			d.Write(w[:4])
		}
	}
	return Key(d.Sum64())
}

// Cache is a concurrency-safe, bounded cache of packed buffers. The oldest
// entry is evicted first once the limit is reached.
type Cache struct {
	mu    sync.RWMutex
	items map[Key][]byte
	order []Key
	limit int

	enc *zstd.Encoder
	dec *zstd.Decoder

	hits, misses atomic.Int64
}

// New returns a cache holding at most limit entries.
func New(limit int) (*Cache, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("vbcache: limit must be positive, got %d", limit)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("vbcache: create encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("vbcache: create decoder: %w", err)
	}
	return &Cache{
		items: make(map[Key][]byte),
		limit: limit,
		enc:   enc,
		dec:   dec,
	}, nil
}

// Close releases the codec resources.
func (c *Cache) Close() {
	c.enc.Close()
	c.dec.Close()
}

// Get returns the buffer stored under k.
func (c *Cache) Get(k Key) ([]float32, bool, error) {
	c.mu.RLock()
	blob, ok := c.items[k]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	buf, err := c.decode(blob)
	if err != nil {
		return nil, false, err
	}
	return buf, true, nil
}

// GetOrBuild returns the buffer stored under k, calling build and storing its
// result on a miss. Concurrent misses on one key may each build; the first
// stored result wins.
func (c *Cache) GetOrBuild(k Key, build func() ([]float32, error)) ([]float32, error) {
	// Fast path: read lock
	if buf, ok, err := c.Get(k); err != nil || ok {
		if ok {
			c.hits.Add(1)
		}
		return buf, err
	}
	c.misses.Add(1)

	buf, err := build()
	if err != nil {
		return nil, err
	}
	blob := c.enc.EncodeAll(vertexbuf.Marshal(buf, binary.LittleEndian), nil)

	// Write lock with double-check
	c.mu.Lock()
	if _, exists := c.items[k]; !exists {
		if len(c.order) >= c.limit {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.items, oldest)
		}
		c.items[k] = blob
		c.order = append(c.order, k)
	}
	c.mu.Unlock()

	return buf, nil
}

func (c *Cache) decode(blob []byte) ([]float32, error) {
	raw, err := c.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("vbcache: decompress: %w", err)
	}
	buf, err := vertexbuf.Unmarshal(raw, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("vbcache: %w", err)
	}
	return buf, nil
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns the hit and miss counts of GetOrBuild.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
