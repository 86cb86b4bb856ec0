package kvrepos

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/access"
)

// sessionRepository persists the session as the individual scalar keys of
// the storage format: isLoggedIn is the JSON string "true" or absent, the
// rest are JSON strings.
type sessionRepository struct {
	store core.Store
	mutex sync.Mutex
}

var _ access.SessionRepository = (*sessionRepository)(nil)

func NewSessionRepository(store core.Store) access.SessionRepository {
	return &sessionRepository{store: store}
}

func (repo *sessionRepository) SaveSession(s access.Session) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	scalars := map[string]string{
		core.StoreKeyIsLoggedIn:     "true",
		core.StoreKeyUserID:         s.UserID,
		core.StoreKeyUserName:       s.UserName,
		core.StoreKeyUserEmail:      s.UserEmail,
		core.StoreKeyUserRole:       s.Role,
		core.StoreKeyUserProfilePic: s.ProfilePic,
	}
	for key, val := range scalars {
		data, err := json.Marshal(val)
		if err != nil {
			return errors.Wrapf(err, "encoding %q", key)
		}
		if err := repo.store.Set(key, data); err != nil {
			return errors.Wrapf(err, "saving %q", key)
		}
	}
	return nil
}

func (repo *sessionRepository) LoadSession() (access.Session, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	loggedIn, err := repo.getScalar(core.StoreKeyIsLoggedIn)
	if err != nil {
		return access.Session{}, err
	}
	if loggedIn != "true" {
		return access.Session{}, nil
	}

	s := access.Session{IsLoggedIn: true}
	fields := map[string]*string{
		core.StoreKeyUserID:         &s.UserID,
		core.StoreKeyUserName:       &s.UserName,
		core.StoreKeyUserEmail:      &s.UserEmail,
		core.StoreKeyUserRole:       &s.Role,
		core.StoreKeyUserProfilePic: &s.ProfilePic,
	}
	for key, dest := range fields {
		val, err := repo.getScalar(key)
		if err != nil {
			return access.Session{}, err
		}
		*dest = val
	}
	return s, nil
}

// ClearSession destroys the session; at minimum isLoggedIn must go.
func (repo *sessionRepository) ClearSession() error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	keys := []string{
		core.StoreKeyIsLoggedIn,
		core.StoreKeyUserID,
		core.StoreKeyUserName,
		core.StoreKeyUserEmail,
		core.StoreKeyUserRole,
		core.StoreKeyUserProfilePic,
	}
	for _, key := range keys {
		if err := repo.store.Remove(key); err != nil {
			return errors.Wrapf(err, "removing %q", key)
		}
	}
	return nil
}

// getScalar reads a JSON string scalar; absent or corrupt values read empty.
func (repo *sessionRepository) getScalar(key string) (string, error) {
	data, err := repo.store.Get(key)
	if err != nil {
		if err == core.ErrKeyNotFound {
			return "", nil
		}
		return "", errors.Wrapf(err, "loading %q", key)
	}
	var val string
	if err := json.Unmarshal(data, &val); err != nil {
		return "", nil
	}
	return val, nil
}
