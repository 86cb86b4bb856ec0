package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/access"
	"github.com/ojtrack/ojtrack/core/activity"
	"github.com/ojtrack/ojtrack/core/person"
	"github.com/ojtrack/ojtrack/core/user"
	"github.com/ojtrack/ojtrack/services/email"
	"github.com/ojtrack/ojtrack/storage/kvrepos"
	"github.com/ojtrack/ojtrack/storage/kvstore/inmem"
)

// Fixture wires the full service stack onto a fresh volatile store.
type Fixture struct {
	Store       core.Store
	UserRepo    user.Repository
	UserSvc     *user.Service
	PersonSvc   *person.Service
	ActivitySvc *activity.Service
	Sessions    access.SessionRepository
}

func NewFixture(t *testing.T) *Fixture {
	store, err := inmemstore.Open()
	if err != nil {
		t.Fatalf("inmemstore.Open() failed: %v", err)
	}

	usrRepo := kvrepos.NewUserRepository(store)
	usrSvc := user.NewService(usrRepo, emailsvc.NewConsoleServiceMock())
	personRepo := kvrepos.NewPersonRepository(store)
	actSvc := activity.NewService(kvrepos.NewActivityRepository(store), personRepo)

	return &Fixture{
		Store:       store,
		UserRepo:    usrRepo,
		UserSvc:     usrSvc,
		PersonSvc:   person.NewService(personRepo, personRepo, usrSvc, actSvc),
		ActivitySvc: actSvc,
		Sessions:    kvrepos.NewSessionRepository(store),
	}
}

func CreateUser(t *testing.T, repo user.Repository, name, email, role, pwd string) user.User {
	now := time.Now().UTC()
	usr := user.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateStudent(t *testing.T, svc *person.Service, name, email, studentID, program string) person.Student {
	std, _, err := svc.CreateStudent(person.NewStudent{
		Name:      name,
		Email:     email,
		StudentID: studentID,
		Program:   program,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateSupervisor(t *testing.T, svc *person.Service, name, email, supervisorID, department string) person.Supervisor {
	sup, _, err := svc.CreateSupervisor(person.NewSupervisor{
		Name:         name,
		Email:        email,
		SupervisorID: supervisorID,
		Department:   department,
	})
	if err != nil {
		t.Fatalf("CreateSupervisor() failed: %v", err)
	}
	return sup
}
