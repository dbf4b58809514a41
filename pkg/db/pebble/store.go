package pebble

import (
	"sync"

	cockroachpebble "github.com/cockroachdb/pebble"

	"github.com/hsharif269/eosplayer/pkg/db"
)

// Store is a pebble-backed KVStore.
type Store struct {
	db     *cockroachpebble.DB
	closed bool
	mu     sync.RWMutex
}

func NewStore(path string) (*Store, error) {
	opts := &cockroachpebble.Options{
		Cache: cockroachpebble.NewCache(16 * 1024 * 1024), // 16MB
	}

	pdb, err := cockroachpebble.Open(path, opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: pdb}, nil
}

func (s *Store) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	value, closer, err := s.db.Get(key)
	if err == cockroachpebble.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

func (s *Store) Put(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	return s.db.Set(key, value, cockroachpebble.Sync)
}

func (s *Store) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	return s.db.Delete(key, cockroachpebble.Sync)
}

// NewIterator iterates keys in [start, end).
func (s *Store) NewIterator(start, end []byte) (db.Iterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	it, err := s.db.NewIter(&cockroachpebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		return nil, err
	}
	return &iterator{it: it, first: true}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
