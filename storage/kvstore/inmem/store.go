// Package inmemstore provides a volatile core.Store for tests and local
// experiments.
package inmemstore

import (
	"sync"

	"github.com/ojtrack/ojtrack/core"
)

type Store struct {
	mutex sync.RWMutex
	table map[string][]byte
}

var _ core.Store = (*Store)(nil)

func Open() (*Store, error) {
	return &Store{table: make(map[string][]byte)}, nil
}

func (s *Store) Get(key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	val, ok := s.table[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	return cp, nil
}

func (s *Store) Set(key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.table[key] = cp
	return nil
}

func (s *Store) Remove(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.table, key)
	return nil
}
