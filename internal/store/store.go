// Package store caches fetched list pages so repeat browsing does not hit
// the remote store. Mutations invalidate the whole cache: a single write can
// shift the total count and the membership of every page.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/nkvxness/shelftui/internal/domain"
)

var bucketPages = []byte("pages")

// PageCache stores list pages in BoltDB with an in-memory hot layer.
// A nil db means memory-only mode (no cache directory configured).
type PageCache struct {
	db *bolt.DB

	mu    sync.RWMutex
	cache map[string][]byte
}

// NewPageCache opens (or creates) the cache database under baseCacheDir.
// Separate server URLs get separate databases so switching servers never
// serves stale pages. An empty baseCacheDir yields a memory-only cache.
func NewPageCache(baseCacheDir, serverURL string) (*PageCache, error) {
	if baseCacheDir == "" {
		return &PageCache{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "shelftui.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPages)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PageCache{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (c *PageCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func pageKey(page, pageSize int) string {
	return fmt.Sprintf("page=%d&page_size=%d", page, pageSize)
}

// GetPage returns the cached page, or ok=false on a miss.
func (c *PageCache) GetPage(page, pageSize int) (domain.Page, bool) {
	key := pageKey(page, pageSize)

	c.mu.RLock()
	data, ok := c.cache[key]
	c.mu.RUnlock()

	if !ok && c.db != nil {
		c.db.View(func(tx *bolt.Tx) error {
			if v := tx.Bucket(bucketPages).Get([]byte(key)); v != nil {
				data = append([]byte(nil), v...)
				ok = true
			}
			return nil
		})
		if ok {
			// Promote to the hot layer for repeat reads
			c.mu.Lock()
			c.cache[key] = data
			c.mu.Unlock()
		}
	}

	if !ok {
		return domain.Page{}, false
	}

	var p domain.Page
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Page{}, false
	}
	return p, true
}

// PutPage stores a freshly fetched page.
func (c *PageCache) PutPage(page, pageSize int, p domain.Page) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	key := pageKey(page, pageSize)

	c.mu.Lock()
	c.cache[key] = data
	c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPages).Put([]byte(key), data)
	})
}

// Invalidate drops every cached page. The next GetPage for any page misses,
// forcing a remote fetch.
func (c *PageCache) Invalidate() error {
	c.mu.Lock()
	c.cache = make(map[string][]byte)
	c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketPages); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketPages)
		return err
	})
}
