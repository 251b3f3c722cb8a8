package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/avelius/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketSession = []byte("session")

	keyUser = []byte("user")
)

// SessionStore persists the authenticated-user record between runs so the UI
// can render the account immediately on startup. It is display-only state;
// the profile endpoint is revalidated on load. With an empty directory the
// store runs memory-only (no persistence).
type SessionStore struct {
	db *bolt.DB

	mu  sync.RWMutex
	mem map[string][]byte // memory-only fallback
}

// Open opens (or creates) the session store under dir
func Open(dir string) (*SessionStore, error) {
	if dir == "" {
		return &SessionStore{mem: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "marquee.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SessionStore{db: db}, nil
}

// Close closes the underlying database
func (s *SessionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveUser caches the authenticated user record
func (s *SessionStore) SaveUser(user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return s.put(keyUser, data)
}

// LoadUser returns the cached user record, or nil if none is cached
func (s *SessionStore) LoadUser() (*domain.User, error) {
	data, ok := s.get(keyUser)
	if !ok {
		return nil, nil
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		// A corrupt record is treated as absent; it will be rewritten
		// on the next successful login or profile check.
		return nil, nil
	}
	return &user, nil
}

// ClearUser removes the cached user record
func (s *SessionStore) ClearUser() error {
	return s.delete(keyUser)
}

func (s *SessionStore) put(key, value []byte) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.mem[string(key)] = value
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Put(key, value)
	})
}

func (s *SessionStore) get(key []byte) ([]byte, bool) {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		data, ok := s.mem[string(key)]
		return data, ok
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketSession).Get(key); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	return data, data != nil
}

func (s *SessionStore) delete(key []byte) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.mem, string(key))
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(key)
	})
}
