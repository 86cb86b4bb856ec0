// Package filestore persists the key-value store as a single JSON file,
// the default durable backend.
package filestore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/ojtrack/ojtrack/core"
)

type Store struct {
	path  string
	mutex sync.RWMutex
	table map[string]json.RawMessage
}

var _ core.Store = (*Store)(nil)

// Open loads the store file at path, creating parent directories as needed.
// An unreadable or corrupt file starts the store empty rather than failing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating store directory")
	}

	s := &Store{
		path:  path,
		table: make(map[string]json.RawMessage),
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "reading store file")
	}
	if err := json.Unmarshal(data, &s.table); err != nil {
		// fail closed: a corrupt store reads as empty
		s.table = make(map[string]json.RawMessage)
	}
	return s, nil
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

	if !json.Valid(value) {
		return errors.Errorf("value for key %q is not valid JSON", key)
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	s.table[key] = json.RawMessage(cp)
	return s.flush()
}

func (s *Store) Remove(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.table, key)
	return s.flush()
}

// flush writes the whole table out via a temp file rename so a crash
// mid-write cannot truncate the store.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.table, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding store")
	}
	tmp := s.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "writing store file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replacing store file")
	}
	return nil
}
