package samplecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"fetchm/internal/biosample"
	"fetchm/internal/logging"
)

// Entry represents a cached mapping from sample identifier to its enrichment
// tuple. Failed lookups are cached too so an identifier is fetched at most
// once per run.
type Entry struct {
	SampleID   string               `json:"sample_id"`
	Enrichment biosample.Enrichment `json:"enrichment"`
	Failed     bool                 `json:"failed"`
	CachedAt   time.Time            `json:"cached_at"`
}

// Cache is the flat lookup cache keyed by sample identifier. Entries are
// never evicted or expired within a run. The in-memory map is always active;
// when a path is configured the cache additionally persists to a JSON file
// so later runs can reuse earlier lookups.
type Cache struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates a cache. An empty path keeps the cache memory-only for the
// lifetime of the process. The cache file is created lazily on first Store.
func New(path string, logger *slog.Logger) *Cache {
	logger = logging.NewComponentLogger(logger, "samplecache")

	c := &Cache{
		path:    path,
		logger:  logger,
		entries: make(map[string]Entry),
	}

	if path == "" {
		return c
	}

	if err := c.load(); err != nil {
		logger.Warn("failed to load sample cache; starting empty",
			logging.Error(err),
			logging.String(logging.FieldPath, path))
	}

	return c
}

// Lookup returns the cache entry for the given sample identifier if found.
func (c *Cache) Lookup(sampleID string) (Entry, bool) {
	sampleID = strings.TrimSpace(sampleID)
	if sampleID == "" {
		return Entry{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[sampleID]
	return entry, found
}

// Store adds or updates an entry and persists it when a path is configured.
func (c *Cache) Store(entry Entry) error {
	entry.SampleID = strings.TrimSpace(entry.SampleID)
	if entry.SampleID == "" {
		return errors.New("sample identifier cannot be empty")
	}
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[entry.SampleID] = entry

	if c.path == "" {
		return nil
	}
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("cached sample lookup",
		logging.String(logging.FieldSampleID, entry.SampleID),
		logging.Bool("failed", entry.Failed))

	return nil
}

// List returns all cache entries sorted by CachedAt descending (newest first).
func (c *Cache) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CachedAt.Equal(entries[j].CachedAt) {
			return entries[i].SampleID < entries[j].SampleID
		}
		return entries[i].CachedAt.After(entries[j].CachedAt)
	})

	return entries
}

// Clear removes all entries and persists the empty cache when configured.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)

	if c.path == "" {
		return nil
	}
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("cleared sample cache")
	return nil
}

// Count returns the number of entries in the cache.
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// load reads the cache from disk into memory.
func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // fresh start
		}
		return fmt.Errorf("read cache file: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}

	c.entries = make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.SampleID) != "" {
			c.entries[entry.SampleID] = entry
		}
	}

	c.logger.Debug("loaded sample cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String(logging.FieldPath, c.path))

	return nil
}

// save writes the cache to disk atomically.
func (c *Cache) save() error {
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}

	// Sort for deterministic output
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CachedAt.Equal(entries[j].CachedAt) {
			return entries[i].SampleID < entries[j].SampleID
		}
		return entries[i].CachedAt.After(entries[j].CachedAt)
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
