// Package pgstore backs the key-value store with a single postgres table.
package pgstore

import (
	"database/sql"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/ojtrack/ojtrack/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_store (
    key   text PRIMARY KEY,
    value jsonb NOT NULL
);`

type Store struct {
	db *sqlx.DB
}

var _ core.Store = (*Store)(nil)

func Open(conf *core.Config) (*Store, error) {
	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   conf.Database.Engine,
		User:     url.UserPassword(conf.Database.User, conf.Database.Password),
		Host:     conf.Database.Address(),
		Path:     conf.Database.Name,
		RawQuery: q.Encode(),
	}

	db, err := sqlx.Open(conf.Database.Engine, u.String())
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err := ping(db); err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "ensuring schema")
	}
	return &Store{db: db}, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.Get(&value, "SELECT value FROM kv_store WHERE key = $1", key)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrap(err, "getting key")
	}
	return value, nil
}

func (s *Store) Set(key string, value []byte) error {
	_, err := s.db.Exec(
		"INSERT INTO kv_store (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value",
		key, value,
	)
	return errors.Wrap(err, "setting key")
}

func (s *Store) Remove(key string) error {
	_, err := s.db.Exec("DELETE FROM kv_store WHERE key = $1", key)
	return errors.Wrap(err, "removing key")
}

func (s *Store) Close() error {
	return s.db.Close()
}
