// Package blobcache keeps downloaded slide file bodies on disk in a bbolt database so slideshows
// can be replayed without the file store.
//
// Bodies live in the "blobs" bucket keyed by storage path. The "meta" bucket holds a small JSON
// record per key (size and store time) so listings never read the bodies. An empty path opens a
// memory-only cache.
package blobcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/desertthunder/slidex/internal/shared"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketBlobs = []byte("blobs")
	bucketMeta  = []byte("meta")
)

// Entry describes one cached body.
type Entry struct {
	Key      string    `json:"key"`
	Size     int64     `json:"size"`
	StoredAt time.Time `json:"stored_at"`
}

// Stats summarises the cache contents.
type Stats struct {
	Entries int
	Bytes   int64
}

// Cache is a key/value store of file bodies.
type Cache struct {
	db   *bolt.DB
	path string

	mu     sync.RWMutex
	mem    map[string][]byte // memory-only mode
	meta   map[string]Entry
	closed bool
}

// Open opens or creates the cache at path. An empty path keeps everything in memory.
func Open(path string) (*Cache, error) {
	if path == "" {
		return &Cache{mem: make(map[string][]byte), meta: make(map[string]Entry)}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketBlobs, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &Cache{db: db, path: path}, nil
}

// Path returns the database file, empty in memory-only mode.
func (c *Cache) Path() string { return c.path }

// Close releases the database. Calling it twice is safe.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get returns a copy of the body stored under key, or [shared.ErrCacheMiss].
func (c *Cache) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, shared.ErrCacheClosed
	}

	if c.db == nil {
		data, ok := c.mem[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", shared.ErrCacheMiss, key)
		}
		return append([]byte(nil), data...), nil
	}

	var (
		data  []byte
		found bool
	)
	err := c.db.View(func(tx *bolt.Tx) error {
		// meta decides presence; bbolt may hand back nil for an empty body
		if tx.Bucket(bucketMeta).Get([]byte(key)) == nil {
			return nil
		}
		found = true
		v := tx.Bucket(bucketBlobs).Get([]byte(key))
		data = make([]byte, len(v))
		copy(data, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", shared.ErrCacheMiss, key)
	}
	return data, nil
}

// Has reports whether key is cached.
func (c *Cache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return false
	}
	if c.db == nil {
		_, ok := c.mem[key]
		return ok
	}

	var found bool
	_ = c.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(bucketMeta).Get([]byte(key)) != nil
		return nil
	})
	return found
}

// Put stores data under key, replacing any previous body.
func (c *Cache) Put(key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("%w: empty cache key", shared.ErrInvalidInput)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return shared.ErrCacheClosed
	}

	entry := Entry{Key: key, Size: int64(len(data)), StoredAt: time.Now().UTC()}

	if c.db == nil {
		c.mem[key] = append([]byte(nil), data...)
		c.meta[key] = entry
		return nil
	}

	meta, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketBlobs).Put([]byte(key), data); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put([]byte(key), meta)
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return shared.ErrCacheClosed
	}
	if c.db == nil {
		delete(c.mem, key)
		delete(c.meta, key)
		return nil
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketBlobs).Delete([]byte(key)); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Delete([]byte(key))
	})
}

// Entries lists every cached key sorted by key.
func (c *Cache) Entries() ([]Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, shared.ErrCacheClosed
	}

	var entries []Entry
	if c.db == nil {
		for _, e := range c.meta {
			entries = append(entries, e)
		}
	} else {
		err := c.db.View(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketMeta).ForEach(func(k, v []byte) error {
				var e Entry
				if err := json.Unmarshal(v, &e); err != nil {
					return fmt.Errorf("corrupt entry %s: %w", k, err)
				}
				entries = append(entries, e)
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Stats counts entries and their total size.
func (c *Cache) Stats() (Stats, error) {
	entries, err := c.Entries()
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	for _, e := range entries {
		s.Entries++
		s.Bytes += e.Size
	}
	return s, nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return shared.ErrCacheClosed
	}
	if c.db == nil {
		clear(c.mem)
		clear(c.meta)
		return nil
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketBlobs, bucketMeta} {
			if err := tx.DeleteBucket(bucket); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
