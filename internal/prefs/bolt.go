package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketPrefs = []byte("prefs")

// BoltStore implements domain.PreferenceStore using BoltDB.
type BoltStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[domain.Slot][]byte
}

// NewBoltStore opens (or creates) the preference database at path.
// An empty path gives a memory-only store that forgets everything on Close.
func NewBoltStore(path string) (*BoltStore, error) {
	if path == "" {
		return &BoltStore{cache: make(map[domain.Slot][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPrefs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db, cache: make(map[domain.Slot][]byte)}, nil
}

func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *BoltStore) Get(slot domain.Slot, dest any) (bool, error) {
	s.mu.RLock()
	data, ok := s.cache[slot]
	s.mu.RUnlock()

	if !ok {
		if s.db == nil {
			return false, nil
		}

		err := s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketPrefs)
			if b == nil {
				return nil
			}
			if v := b.Get([]byte(slot)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if err != nil {
			return false, fmt.Errorf("failed to read %s: %w", slot, err)
		}
		if data == nil {
			return false, nil
		}

		// Promote to memory cache
		s.mu.Lock()
		s.cache[slot] = data
		s.mu.Unlock()
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", slot, err)
	}
	return true, nil
}

func (s *BoltStore) Set(slot domain.Slot, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", slot, err)
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketPrefs).Put([]byte(slot), data)
		})
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", slot, err)
		}
	}

	// Cache only what reached disk
	s.mu.Lock()
	s.cache[slot] = data
	s.mu.Unlock()
	return nil
}

func (s *BoltStore) Delete(slot domain.Slot) error {
	s.mu.Lock()
	delete(s.cache, slot)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPrefs)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(slot))
	})
}
