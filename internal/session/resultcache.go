package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lab-visualizer/backend/internal/resultstore"
)

// ResultCache manages persistent DuckDB files of flattened results keyed
// by file ID. Reloading a file from the recent list then skips the full
// segmentation pass.
type ResultCache struct {
	dir string
	mu  sync.RWMutex
	// cache tracks which file IDs already have a finished database.
	cache map[string]string
}

// NewResultCache creates a cache rooted at dir, picking up databases left
// by previous server runs.
func NewResultCache(dir string) *ResultCache {
	os.MkdirAll(dir, 0755)

	c := &ResultCache{
		dir:   dir,
		cache: make(map[string]string),
	}
	c.scanExisting()
	return c
}

func (c *ResultCache) scanExisting() {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		fmt.Printf("[ResultCache] Warning: failed to scan %s: %v\n", c.dir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "file_") && filepath.Ext(name) == ".duckdb" {
			fileID := strings.TrimSuffix(strings.TrimPrefix(name, "file_"), ".duckdb")
			c.cache[fileID] = filepath.Join(c.dir, name)
		}
	}
	fmt.Printf("[ResultCache] Found %d existing result databases\n", len(c.cache))
}

// DBPath returns where the result database for a file ID lives.
func (c *ResultCache) DBPath(fileID string) string {
	return filepath.Join(c.dir, fmt.Sprintf("file_%s.duckdb", fileID))
}

// IsCached reports whether a finished database exists for the file.
func (c *ResultCache) IsCached(fileID string) bool {
	c.mu.RLock()
	_, ok := c.cache[fileID]
	c.mu.RUnlock()
	if ok {
		return true
	}

	dbPath := c.DBPath(fileID)
	if _, err := os.Stat(dbPath); err == nil {
		c.mu.Lock()
		c.cache[fileID] = dbPath
		c.mu.Unlock()
		return true
	}
	return false
}

// Open opens the cached database for a file read-only. Returns nil when
// the file has not been cached yet.
func (c *ResultCache) Open(fileID string) (*resultstore.Store, error) {
	if !c.IsCached(fileID) {
		return nil, nil
	}

	c.mu.RLock()
	dbPath := c.cache[fileID]
	c.mu.RUnlock()

	if _, err := os.Stat(dbPath); err != nil {
		c.mu.Lock()
		delete(c.cache, fileID)
		c.mu.Unlock()
		return nil, nil
	}

	store, err := resultstore.OpenReadOnly(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cached results: %w", err)
	}
	return store, nil
}

// CreateForFile creates a fresh writable database at the cache location,
// replacing any stale one.
func (c *ResultCache) CreateForFile(fileID string) (*resultstore.Store, error) {
	dbPath := c.DBPath(fileID)
	os.Remove(dbPath)

	store, err := resultstore.NewAtPath(dbPath)
	if err != nil {
		return nil, fmt.Errorf("creating cached results: %w", err)
	}
	store.Persist()
	return store, nil
}

// MarkComplete records that the file's database is finished and reusable.
func (c *ResultCache) MarkComplete(fileID string) {
	c.mu.Lock()
	c.cache[fileID] = c.DBPath(fileID)
	c.mu.Unlock()
}

// Delete removes the cached database for a file. Call when the uploaded
// file itself is deleted.
func (c *ResultCache) Delete(fileID string) error {
	c.mu.Lock()
	delete(c.cache, fileID)
	c.mu.Unlock()

	if err := os.Remove(c.DBPath(fileID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting cached results: %w", err)
	}
	return nil
}

// CleanupOrphaned removes cached databases whose uploaded file no longer
// exists. Returns the number removed.
func (c *ResultCache) CleanupOrphaned(rawFileIDs []string) int {
	valid := make(map[string]bool, len(rawFileIDs))
	for _, id := range rawFileIDs {
		valid[id] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for fileID, dbPath := range c.cache {
		if !valid[fileID] {
			os.Remove(dbPath)
			delete(c.cache, fileID)
			removed++
		}
	}
	return removed
}
