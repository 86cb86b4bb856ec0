// Package kvrepos implements the domain repositories over a core.Store.
// Every collection is one JSON array under its key; mutations are
// whole-collection read-modify-write, serialized per repository.
package kvrepos

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/ojtrack/ojtrack/core"
)

// loadCollection reads and decodes the collection at key into dest (a
// pointer to a slice). A missing key or a corrupt blob reads as an empty
// collection; corruption fails closed instead of surfacing a fatal error.
func loadCollection(store core.Store, key string, dest interface{}) error {
	data, err := store.Get(key)
	if err != nil {
		if err == core.ErrKeyNotFound {
			return nil
		}
		return errors.Wrapf(err, "loading %q", key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return nil
	}
	return nil
}

// saveCollection overwrites the collection at key.
func saveCollection(store core.Store, key string, collection interface{}) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return errors.Wrapf(err, "encoding %q", key)
	}
	return errors.Wrapf(store.Set(key, data), "saving %q", key)
}
