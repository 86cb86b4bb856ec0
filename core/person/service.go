package person

import (
	"errors"

	"github.com/google/uuid"

	"github.com/ojtrack/ojtrack/core/activity"
	"github.com/ojtrack/ojtrack/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("person not found")
)

type (
	StudentRepository interface {
		CreateStudent(s Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		UpdateStudent(s Student) (Student, error)
		DeleteStudentByID(id string) error
	}

	SupervisorRepository interface {
		CreateSupervisor(s Supervisor) (Supervisor, error)
		QueryAllSupervisors() ([]Supervisor, error)
		GetSupervisorByID(id string) (Supervisor, error)
		UpdateSupervisor(s Supervisor) (Supervisor, error)
		DeleteSupervisorByID(id string) error
	}

	Service struct {
		students    StudentRepository
		supervisors SupervisorRepository
		usrSvc      *user.Service
		actSvc      *activity.Service
	}
)

func NewService(students StudentRepository, supervisors SupervisorRepository, usrSvc *user.Service, actSvc *activity.Service) *Service {
	return &Service{
		students:    students,
		supervisors: supervisors,
		usrSvc:      usrSvc,
		actSvc:      actSvc,
	}
}

// CreateStudent registers a student and its paired user account. The
// generated default password is returned once so it can be shown to the
// registrant.
func (svc *Service) CreateStudent(ns NewStudent) (Student, string, error) {
	student := Student{
		ID:        uuid.New().String(),
		Name:      ns.Name,
		Email:     ns.Email,
		StudentID: ns.StudentID,
		Program:   ns.Program,
	}
	_, pwd, err := svc.usrSvc.CreateOrUpdateAccount(user.Account{
		ID:         student.ID,
		Name:       student.Name,
		Email:      student.Email,
		Role:       user.RoleStudent,
		Identifier: student.StudentID,
	})
	if err != nil {
		return Student{}, "", err
	}
	student, err = svc.students.CreateStudent(student)
	if err != nil {
		return Student{}, "", err
	}
	return student, pwd, nil
}

func (svc *Service) QueryAllStudents() ([]Student, error) {
	return svc.students.QueryAllStudents()
}

func (svc *Service) GetStudentByID(id string) (Student, error) {
	return svc.students.GetStudentByID(id)
}

func (svc *Service) UpdateStudent(id string, us UpdateStudent) (Student, error) {
	student, err := svc.students.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	if err := us.Validate(student); err != nil {
		return Student{}, err
	}
	student.Name = us.Name
	student.Email = us.Email
	student.StudentID = us.StudentID
	student.Program = us.Program

	// keep the paired account's profile in sync
	if _, _, err := svc.usrSvc.CreateOrUpdateAccount(user.Account{
		ID:         student.ID,
		Name:       student.Name,
		Email:      student.Email,
		Role:       user.RoleStudent,
		Identifier: student.StudentID,
	}); err != nil {
		return Student{}, err
	}
	return svc.students.UpdateStudent(student)
}

// DeleteStudent cascades: every record, evaluation and attendance entry
// keyed by the student's ID is removed along with the paired user account,
// dependents first, so a mid-sequence failure can never leave an entry
// pointing at a deleted person.
func (svc *Service) DeleteStudent(id string) error {
	if _, err := svc.students.GetStudentByID(id); err != nil {
		return err
	}
	if err := svc.actSvc.DeleteByStudentID(id); err != nil {
		return err
	}
	if err := svc.usrSvc.Delete(id); err != nil {
		return err
	}
	return svc.students.DeleteStudentByID(id)
}

func (svc *Service) CreateSupervisor(ns NewSupervisor) (Supervisor, string, error) {
	supervisor := Supervisor{
		ID:           uuid.New().String(),
		Name:         ns.Name,
		Email:        ns.Email,
		SupervisorID: ns.SupervisorID,
		Department:   ns.Department,
	}
	_, pwd, err := svc.usrSvc.CreateOrUpdateAccount(user.Account{
		ID:         supervisor.ID,
		Name:       supervisor.Name,
		Email:      supervisor.Email,
		Role:       user.RoleSupervisor,
		Identifier: supervisor.SupervisorID,
	})
	if err != nil {
		return Supervisor{}, "", err
	}
	supervisor, err = svc.supervisors.CreateSupervisor(supervisor)
	if err != nil {
		return Supervisor{}, "", err
	}
	return supervisor, pwd, nil
}

func (svc *Service) QueryAllSupervisors() ([]Supervisor, error) {
	return svc.supervisors.QueryAllSupervisors()
}

func (svc *Service) GetSupervisorByID(id string) (Supervisor, error) {
	return svc.supervisors.GetSupervisorByID(id)
}

func (svc *Service) UpdateSupervisor(id string, us UpdateSupervisor) (Supervisor, error) {
	supervisor, err := svc.supervisors.GetSupervisorByID(id)
	if err != nil {
		return Supervisor{}, err
	}
	if err := us.Validate(supervisor); err != nil {
		return Supervisor{}, err
	}
	supervisor.Name = us.Name
	supervisor.Email = us.Email
	supervisor.SupervisorID = us.SupervisorID
	supervisor.Department = us.Department

	if _, _, err := svc.usrSvc.CreateOrUpdateAccount(user.Account{
		ID:         supervisor.ID,
		Name:       supervisor.Name,
		Email:      supervisor.Email,
		Role:       user.RoleSupervisor,
		Identifier: supervisor.SupervisorID,
	}); err != nil {
		return Supervisor{}, err
	}
	return svc.supervisors.UpdateSupervisor(supervisor)
}

// DeleteSupervisor is the supervisor counterpart of DeleteStudent.
func (svc *Service) DeleteSupervisor(id string) error {
	if _, err := svc.supervisors.GetSupervisorByID(id); err != nil {
		return err
	}
	if err := svc.actSvc.DeleteBySupervisorID(id); err != nil {
		return err
	}
	if err := svc.usrSvc.Delete(id); err != nil {
		return err
	}
	return svc.supervisors.DeleteSupervisorByID(id)
}
