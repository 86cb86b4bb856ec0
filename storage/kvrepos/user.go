package kvrepos

import (
	"sync"

	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/user"
)

// userRecord is the stored shape of a user. User.PasswordHash is excluded
// from API serialization, so the repository re-exposes it for persistence.
type userRecord struct {
	user.User
	PasswordHash []byte `json:"passwordHash,omitempty"`
}

func newUserRecord(usr user.User) userRecord {
	return userRecord{User: usr, PasswordHash: usr.PasswordHash}
}

func (r userRecord) toUser() user.User {
	usr := r.User
	usr.PasswordHash = r.PasswordHash
	return usr
}

type userRepository struct {
	store core.Store
	mutex sync.Mutex
}

func NewUserRepository(store core.Store) user.Repository {
	return &userRepository{store: store}
}

func (repo *userRepository) load() ([]userRecord, error) {
	var records []userRecord
	if err := loadCollection(repo.store, core.StoreKeyUsers, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *userRepository) save(records []userRecord) error {
	return saveCollection(repo.store, core.StoreKeyUsers, records)
}

func (repo *userRepository) CheckEmailUniqueness(email string, excludedUsers ...user.User) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	records, err := repo.load()
	if err != nil {
		return err
	}
	for _, rec := range records {
		if rec.Email == email && !isExcluded(rec.ID, excludedUsers) {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	records, err := repo.load()
	if err != nil {
		return user.User{}, err
	}
	records = append(records, newUserRecord(usr))
	if err := repo.save(records); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	records, err := repo.load()
	if err != nil {
		return nil, err
	}
	users := make([]user.User, 0, len(records))
	for _, rec := range records {
		users = append(users, rec.toUser())
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	records, err := repo.load()
	if err != nil {
		return user.User{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec.toUser(), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	records, err := repo.load()
	if err != nil {
		return user.User{}, err
	}
	for _, rec := range records {
		if rec.Email == email {
			return rec.toUser(), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	records, err := repo.load()
	if err != nil {
		return user.User{}, err
	}
	for i, rec := range records {
		if rec.ID == usr.ID {
			records[i] = newUserRecord(usr)
			if err := repo.save(records); err != nil {
				return user.User{}, err
			}
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) DeleteUsersByID(ids ...string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	records, err := repo.load()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, rec := range records {
		if !contains(ids, rec.ID) {
			kept = append(kept, rec)
		}
	}
	return repo.save(kept)
}

func isExcluded(id string, excludedUsers []user.User) bool {
	for _, usr := range excludedUsers {
		if usr.ID == id {
			return true
		}
	}
	return false
}

func contains(ids []string, id string) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
