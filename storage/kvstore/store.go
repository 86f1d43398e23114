// Package kvstore is the portal's persistence: one JSON blob per key under a
// data directory, loaded at startup and rewritten on every change. It also
// hosts the repository implementations backed by it.
package kvstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/thedigitalbhaiya/ans-sub000/core"
)

// Migration upgrades a payload from one version to the next.
type Migration func(payload json.RawMessage) (json.RawMessage, error)

// envelope wraps every persisted payload with its schema version so shape
// changes don't silently corrupt stored data.
type envelope struct {
	Version int             `json:"version"`
	Payload json.RawMessage `json:"payload"`
}

type Store struct {
	dir string
	log core.Logger

	mu         sync.Mutex
	versions   map[string]int
	migrations map[string]map[int]Migration // key -> fromVersion -> migration
}

// Open prepares the data directory. Keys default to version 1 until
// SetVersion says otherwise.
func Open(dir string, log core.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating data dir %s", dir)
	}
	return &Store{
		dir:        dir,
		log:        log,
		versions:   make(map[string]int),
		migrations: make(map[string]map[int]Migration),
	}, nil
}

// SetVersion declares the current schema version for a key.
func (s *Store) SetVersion(key string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[key] = version
}

// RegisterMigration installs the upgrade from fromVersion to fromVersion+1
// for a key. Loads run the chain up to the current version.
func (s *Store) RegisterMigration(key string, fromVersion int, m Migration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.migrations[key] == nil {
		s.migrations[key] = make(map[int]Migration)
	}
	s.migrations[key][fromVersion] = m
}

func (s *Store) version(key string) int {
	if v, ok := s.versions[key]; ok {
		return v
	}
	return 1
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the stored value for key into dst. It never fails: a missing
// file, malformed JSON, an unknown version or a failed migration all leave
// dst untouched and return false, so the caller's fallback value stands.
func (s *Store) Load(key string, dst interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}

	var env envelope
	if err = json.Unmarshal(raw, &env); err != nil || env.Payload == nil {
		s.log.Warn("discarding malformed stored value", map[string]interface{}{"key": key})
		return false
	}

	current := s.version(key)
	payload := env.Payload
	for v := env.Version; v < current; v++ {
		m, ok := s.migrations[key][v]
		if !ok {
			s.log.Warn("no migration for stored value", map[string]interface{}{"key": key, "from": v})
			return false
		}
		if payload, err = m(payload); err != nil {
			s.log.Warn("migration failed", map[string]interface{}{"key": key, "from": v}, err)
			return false
		}
	}
	if env.Version > current {
		s.log.Warn("stored value is from a newer version", map[string]interface{}{"key": key, "version": env.Version})
		return false
	}

	if err = json.Unmarshal(payload, dst); err != nil {
		s.log.Warn("discarding incompatible stored value", map[string]interface{}{"key": key}, err)
		return false
	}
	return true
}

// Persist serializes value and writes it out under key. Called on every
// change; there is no debouncing and no transactionality across keys.
func (s *Store) Persist(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "marshalling %s", key)
	}
	raw, err := json.Marshal(envelope{Version: s.version(key), Payload: payload})
	if err != nil {
		return errors.Wrapf(err, "marshalling %s envelope", key)
	}
	return errors.Wrapf(os.WriteFile(s.path(key), raw, 0o644), "writing %s", key)
}

// Delete removes the stored value for key, if any.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", key)
	}
	return nil
}
