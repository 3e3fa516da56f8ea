package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	inverrors "github.com/scwtools/scwinv/internal/errors"
	"github.com/scwtools/scwinv/internal/models"
)

// Store is a file-backed key/value store for aggregation results. One key
// maps to one JSON file under the store directory; writes replace the
// whole value atomically. Concurrent readers are safe; writers serialize
// per key without blocking other keys.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// DefaultDir returns the default cache directory.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "scwinv")
}

// NewStore creates a store rooted at dir, creating the directory if
// needed. An empty dir selects the default location.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if dir == "" {
		return nil, fmt.Errorf("cache: cannot determine cache directory")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("cache: creating directory %s: %w", dir, err)
	}
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.RWMutex),
	}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) keyLock(key string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.RWMutex{}
		s.locks[key] = lock
	}
	return lock
}

func (s *Store) pathFor(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read returns the host sequence stored under key. A missing entry is
// reported as ErrCacheMiss, which callers convert into a live fetch.
func (s *Store) Read(key string) ([]models.Host, error) {
	lock := s.keyLock(key)
	lock.RLock()
	defer lock.RUnlock()

	data, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, inverrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("cache: reading entry %s: %w", key, err)
	}

	var hosts []models.Host
	if err := json.Unmarshal(data, &hosts); err != nil {
		// A corrupt entry behaves like a miss; the next write replaces it.
		log.Warn().Str("key", key).Err(err).Msg("Discarding corrupt cache entry")
		return nil, inverrors.ErrCacheMiss
	}
	return hosts, nil
}

// Write replaces the entry under key with a copy of hosts. The value is
// written to a temp file and renamed into place so readers never observe
// a partial entry.
func (s *Store) Write(key string, hosts []models.Host) error {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	data, err := json.MarshalIndent(models.CloneHosts(hosts), "", "  ")
	if err != nil {
		return fmt.Errorf("cache: encoding entry %s: %w", key, err)
	}

	path := s.pathFor(key)
	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("cache: creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cache: writing entry %s: %w", key, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cache: setting entry permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: replacing entry %s: %w", key, err)
	}

	log.Debug().Str("key", key).Int("hosts", len(hosts)).Msg("Cache entry written")
	return nil
}

// Delete removes the entry under key. Deleting a missing entry is a no-op.
func (s *Store) Delete(key string) error {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if err := os.Remove(s.pathFor(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cache: deleting entry %s: %w", key, err)
	}
	return nil
}
