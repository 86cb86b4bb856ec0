package core

import "errors"

// ErrKeyNotFound is returned by Store.Get for keys that were never set or
// have been removed.
var ErrKeyNotFound = errors.New("key not found")

// Collection and session keys. These make up the on-storage format: every
// collection round-trips as a JSON array under its key, session state as
// scalar values.
const (
	StoreKeyUsers       = "users"
	StoreKeyStudents    = "students"
	StoreKeySupervisors = "supervisors"
	StoreKeyRecords     = "adminRecords"
	StoreKeyEvaluations = "adminEvaluations"
	StoreKeyAttendance  = "adminAttendance"

	StoreKeyIsLoggedIn     = "isLoggedIn"
	StoreKeyUserID         = "userId"
	StoreKeyUserName       = "userName"
	StoreKeyUserEmail      = "userEmail"
	StoreKeyUserRole       = "userRole"
	StoreKeyUserProfilePic = "userProfilePic"

	// free-form preference blobs, persisted but not interpreted here
	StoreKeyUserSettings = "userSettings"
	StoreKeyAppSettings  = "appSettings"
)

// Store is a flat string-keyed value store. There are no transactions and no
// atomicity across keys; callers read-modify-write whole collections.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}
