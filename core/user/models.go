package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ojtrack/ojtrack/core"
)

// Roles
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleStudent    = "student"
)

var (
	AllRoles = []string{RoleAdmin, RoleSupervisor, RoleStudent}

	Roles = []Role{
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Supervisor", Value: RoleSupervisor},
		{Name: "Student", Value: RoleStudent},
	}
)

// Default admin account, synthesized whenever the user collection is empty
// so the system is never left without an admin.
const (
	DefaultAdminID    = "admin-1"
	DefaultAdminName  = "Admin"
	DefaultAdminEmail = "admin@example.com"

	defaultAdminPassword = "admin123"
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ProfilePic   string    `json:"profilePic,omitempty"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword fails for any password but the exact one last set.
func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// Account describes the user account paired 1:1 with a person record; the
// person and its User share the same ID. Identifier is the person's external
// ID (student ID / supervisor ID) and seeds the generated default password.
type Account struct {
	ID         string
	Name       string
	Email      string
	Role       string
	Identifier string
}

// DefaultPassword derives the one-time default password for a new account,
// e.g. supervisor "SV001" -> "supervisorsv001". Demo-grade credential flow:
// the plaintext is returned once to the caller and never stored.
func (a Account) DefaultPassword() string {
	return a.Role + strings.ToLower(a.Identifier)
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Role            string `json:"role" validate:"required,role"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing
// User's profile. Empty fields keep their current values.
type UpdateUser struct {
	Name       string `json:"name"`
	Email      string `json:"email" validate:"omitempty,email"`
	ProfilePic string `json:"profilePic"`
}

func (uu *UpdateUser) Validate(origUsr User, svc *Service) error {
	name := core.CleanString(uu.Name)
	if name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	email := core.CleanString(uu.Email, true /* lower */)
	if email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if uu.ProfilePic == "" {
		uu.ProfilePic = origUsr.ProfilePic
	}

	if err := core.Validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(uu.Email, origUsr)
}

// ChangePassword defines the self-service password change payload.
type ChangePassword struct {
	OldPassword     string `json:"old_password" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (cp ChangePassword) Validate() error { return core.Validate.Struct(cp) }
