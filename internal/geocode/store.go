// Package geocode resolves free-text addresses to coordinates through a
// shared, rate-limited lookup backed by a persistent cache.
package geocode

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sassil1/petmap/internal/models"
)

// Store is the persistent address→coordinate cache consulted before any
// network lookup. Implementations never return errors: storage failures
// degrade to a miss on read and a no-op on write. Keys are the exact
// address strings passed in; callers must use identical strings for hits.
type Store interface {
	Get(ctx context.Context, address string) (models.Coordinate, bool)
	Put(ctx context.Context, address string, coord models.Coordinate)
}

// FileStore keeps the cache as a single JSON object on disk, written
// through on every new entry. A missing or unreadable file means an empty
// cache, never an error. An empty path keeps the store memory-only.
type FileStore struct {
	path   string
	logger zerolog.Logger

	mu      sync.Mutex
	entries map[string]models.Coordinate
}

// NewFileStore loads the cache at path, tolerating absence and corruption.
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	s := &FileStore{
		path:    path,
		logger:  logger,
		entries: make(map[string]models.Coordinate),
	}
	if path == "" {
		return s
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("Geocode cache unreadable, starting empty")
		}
		return s
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Geocode cache corrupted, starting empty")
		s.entries = make(map[string]models.Coordinate)
		return s
	}

	logger.Debug().Int("entries", len(s.entries)).Str("path", path).Msg("Geocode cache loaded")
	return s
}

// Get returns the cached coordinate for address, if present.
func (s *FileStore) Get(_ context.Context, address string) (models.Coordinate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coord, ok := s.entries[address]
	return coord, ok
}

// Put records a coordinate for address and persists the cache. The first
// stored value wins; later writes for the same address are ignored.
func (s *FileStore) Put(_ context.Context, address string, coord models.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[address]; ok {
		return
	}
	s.entries[address] = coord
	s.persist()
}

// Len reports the number of cached entries.
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// persist writes the cache atomically. Callers hold s.mu.
func (s *FileStore) persist() {
	if s.path == "" {
		return
	}
	data, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Geocode cache marshal failed")
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Geocode cache write failed")
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Geocode cache rename failed")
	}
}
