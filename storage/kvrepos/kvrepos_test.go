package kvrepos_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/access"
	"github.com/ojtrack/ojtrack/core/person"
	"github.com/ojtrack/ojtrack/core/user"
	"github.com/ojtrack/ojtrack/storage/kvrepos"
	"github.com/ojtrack/ojtrack/storage/kvstore/inmem"
	"github.com/ojtrack/ojtrack/tests"
)

func openStore(t *testing.T) core.Store {
	store, err := inmemstore.Open()
	if err != nil {
		t.Fatalf("inmemstore.Open() failed: %v", err)
	}
	return store
}

func Test_personRepository_roundTrip(t *testing.T) {
	store := openStore(t)
	repo := kvrepos.NewPersonRepository(store)

	std := person.Student{
		ID:        "p1",
		Name:      "Hero Mwepu",
		Email:     "hero@test.cd",
		StudentID: "ST001",
		Program:   "Software Engineering",
	}
	if _, err := repo.CreateStudent(std); err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}

	got, err := repo.GetStudentByID("p1")
	if err != nil {
		t.Fatalf("GetStudentByID() failed: %v", err)
	}
	if got != std {
		t.Errorf("round-trip lost fields: got %+v; want %+v", got, std)
	}

	// the stored blob is a plain JSON array under the students key
	raw, err := store.Get(core.StoreKeyStudents)
	if err != nil {
		t.Fatalf("store.Get() failed: %v", err)
	}
	var decoded []person.Student
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("stored students blob is not a JSON array: %v", err)
	}
	if len(decoded) != 1 || decoded[0] != std {
		t.Errorf("stored blob = %+v; want [%+v]", decoded, std)
	}
}

func Test_userRepository_passwordHash(t *testing.T) {
	store := openStore(t)
	repo := kvrepos.NewUserRepository(store)

	usr := testutil.CreateUser(t, repo, "Awe", "awe@test.cd", user.RoleAdmin, "s3cr3t!pwd")
	if len(usr.PasswordHash) == 0 {
		t.Fatal("CreateUser() dropped the password hash")
	}

	// the hash survives the store round-trip
	got, err := repo.GetUserByID(usr.ID)
	if err != nil {
		t.Fatalf("GetUserByID() failed: %v", err)
	}
	if !bytes.Equal(got.PasswordHash, usr.PasswordHash) {
		t.Error("password hash did not survive the round-trip")
	}

	// but never leaks through the user's own JSON representation
	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	if strings.Contains(string(data), "passwordHash") {
		t.Errorf("user JSON leaks the password hash: %s", data)
	}
}

func Test_sessionRepository(t *testing.T) {
	store := openStore(t)
	repo := kvrepos.NewSessionRepository(store)

	// no session saved yet
	s, err := repo.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if s.IsLoggedIn {
		t.Error("LoadSession() on empty store reports a logged-in session")
	}

	want := access.Session{
		IsLoggedIn: true,
		UserID:     "u1",
		UserName:   "Awe",
		UserEmail:  "awe@test.cd",
		Role:       user.RoleAdmin,
		ProfilePic: "pic.png",
	}
	if err := repo.SaveSession(want); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	s, err = repo.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if s != want {
		t.Errorf("LoadSession() = %+v; want %+v", s, want)
	}

	// the scalars land under their own keys
	raw, err := store.Get(core.StoreKeyUserEmail)
	if err != nil {
		t.Fatalf("store.Get() failed: %v", err)
	}
	var email string
	if err := json.Unmarshal(raw, &email); err != nil || email != "awe@test.cd" {
		t.Errorf("stored userEmail = %s; want %q", raw, "awe@test.cd")
	}

	if err := repo.ClearSession(); err != nil {
		t.Fatalf("ClearSession() failed: %v", err)
	}
	s, err = repo.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if s.IsLoggedIn {
		t.Error("session still logged in after ClearSession()")
	}
}

func Test_loadCollection_corruptBlob(t *testing.T) {
	store := openStore(t)
	if err := store.Set(core.StoreKeyStudents, []byte(`"not an array"`)); err != nil {
		t.Fatalf("store.Set() failed: %v", err)
	}

	// fail closed: a corrupt collection reads as empty
	repo := kvrepos.NewPersonRepository(store)
	students, err := repo.QueryAllStudents()
	if err != nil {
		t.Fatalf("QueryAllStudents() failed: %v", err)
	}
	if len(students) != 0 {
		t.Errorf("QueryAllStudents() on corrupt blob = %+v; want none", students)
	}
}
