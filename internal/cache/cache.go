// ABOUTME: File-backed TTL cache for query results with an in-process mirror.
// ABOUTME: One flat JSON file, loaded lazily and flushed on every mutation.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// entry is the on-disk shape of a single cached payload. New record
// fields may be added to data without breaking older files.
type entry struct {
	Data     json.RawMessage `json:"data"`
	StoredAt int64           `json:"storedAt_epoch_ms"`
	TTL      int64           `json:"ttl_ms"`
}

// Store is a key-value cache backed by a single JSON file. It is built
// for a short-lived CLI process: the file is read once, mutated in
// memory, and rewritten whole on every change. Concurrent invocations
// are last-writer-wins; there is no locking.
type Store struct {
	path       string
	enabled    bool
	defaultTTL time.Duration
	loaded     bool
	entries    map[string]entry
	now        func() time.Time
}

// New creates a cache store persisting to path. When enabled is false
// every read misses and every write is a no-op.
func New(path string, enabled bool, defaultTTL time.Duration) *Store {
	return &Store{
		path:       path,
		enabled:    enabled,
		defaultTTL: defaultTTL,
		entries:    map[string]entry{},
		now:        time.Now,
	}
}

// load reads the backing file once per process. A missing or corrupt
// file is treated as an empty cache, never as an error.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var entries map[string]entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return
	}
	s.entries = entries
}

// flush rewrites the whole backing file from the in-memory mirror.
func (s *Store) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return err
	}
	data, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Get returns the cached payload for key, unmarshaled into out.
// It reports a miss when the store is disabled, the key was never
// written, or the entry has expired. An expired read evicts the entry.
func (s *Store) Get(key string, out any) bool {
	if !s.enabled {
		return false
	}
	s.load()

	e, ok := s.entries[key]
	if !ok {
		return false
	}

	age := s.now().UnixMilli() - e.StoredAt
	if age > e.TTL {
		delete(s.entries, key)
		_ = s.flush()
		return false
	}

	if err := json.Unmarshal(e.Data, out); err != nil {
		return false
	}
	return true
}

// Set writes payload under key with the given TTL (the store default
// when ttl is zero), fully replacing any previous entry. No-op when
// the store is disabled.
func (s *Store) Set(key string, payload any, ttl time.Duration) error {
	if !s.enabled {
		return nil
	}
	s.load()

	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	s.entries[key] = entry{
		Data:     data,
		StoredAt: s.now().UnixMilli(),
		TTL:      ttl.Milliseconds(),
	}
	return s.flush()
}

// Delete removes a single entry.
func (s *Store) Delete(key string) error {
	s.load()
	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.flush()
}

// Clear removes every entry and the backing file's contents.
func (s *Store) Clear() error {
	s.loaded = true
	s.entries = map[string]entry{}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	return s.flush()
}

// Len returns the number of stored entries, including expired ones
// that have not been read and evicted yet.
func (s *Store) Len() int {
	s.load()
	return len(s.entries)
}
