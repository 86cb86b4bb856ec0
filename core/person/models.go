// Package person manages the student and supervisor records and their paired
// user accounts.
package person

import "github.com/ojtrack/ojtrack/core"

// Student shares its ID with its paired user account.
type Student struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	StudentID string `json:"studentId"`
	Program   string `json:"program"`
}

// Supervisor shares its ID with its paired user account.
type Supervisor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	SupervisorID string `json:"supervisorId"`
	Department   string `json:"department"`
}

// NewStudent contains information needed to register a Student.
type NewStudent struct {
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	StudentID string `json:"studentId" validate:"required"`
	Program   string `json:"program" validate:"required"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.StudentID = core.CleanString(ns.StudentID)
	ns.Program = core.CleanString(ns.Program)
	return core.Validate.Struct(ns)
}

type NewSupervisor struct {
	Name         string `json:"name" validate:"required,min=2"`
	Email        string `json:"email" validate:"required,email"`
	SupervisorID string `json:"supervisorId" validate:"required"`
	Department   string `json:"department" validate:"required"`
}

func (ns *NewSupervisor) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.SupervisorID = core.CleanString(ns.SupervisorID)
	ns.Department = core.CleanString(ns.Department)
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what may be modified on an existing Student.
// Empty fields keep their current values.
type UpdateStudent struct {
	Name      string `json:"name"`
	Email     string `json:"email" validate:"omitempty,email"`
	StudentID string `json:"studentId"`
	Program   string `json:"program"`
}

func (us *UpdateStudent) Validate(orig Student) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	if email := core.CleanString(us.Email, true /* lower */); email != "" {
		us.Email = email
	} else {
		us.Email = orig.Email
	}
	if sid := core.CleanString(us.StudentID); sid != "" {
		us.StudentID = sid
	} else {
		us.StudentID = orig.StudentID
	}
	if prog := core.CleanString(us.Program); prog != "" {
		us.Program = prog
	} else {
		us.Program = orig.Program
	}
	return core.Validate.Struct(us)
}

type UpdateSupervisor struct {
	Name         string `json:"name"`
	Email        string `json:"email" validate:"omitempty,email"`
	SupervisorID string `json:"supervisorId"`
	Department   string `json:"department"`
}

func (us *UpdateSupervisor) Validate(orig Supervisor) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	if email := core.CleanString(us.Email, true /* lower */); email != "" {
		us.Email = email
	} else {
		us.Email = orig.Email
	}
	if sid := core.CleanString(us.SupervisorID); sid != "" {
		us.SupervisorID = sid
	} else {
		us.SupervisorID = orig.SupervisorID
	}
	if dept := core.CleanString(us.Department); dept != "" {
		us.Department = dept
	} else {
		us.Department = orig.Department
	}
	return core.Validate.Struct(us)
}
