package user

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/ojtrack/ojtrack/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excludedUsers ...User) error
		CreateUser(usr User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByEmail(email string) (User, error)
		UpdateUser(usr User) (User, error)
		DeleteUsersByID(ids ...string) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

// ensureDefaultAdmin synthesizes the default admin whenever the user
// collection is empty; the system must never be left with zero admins.
func (svc *Service) ensureDefaultAdmin() ([]User, error) {
	users, err := svc.repo.QueryAllUsers()
	if err != nil {
		return nil, err
	}
	if len(users) > 0 {
		return users, nil
	}

	now := time.Now().UTC()
	admin := User{
		ID:        DefaultAdminID,
		Name:      DefaultAdminName,
		Email:     DefaultAdminEmail,
		Role:      RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := admin.SetPassword(defaultAdminPassword); err != nil {
		return nil, err
	}
	admin, err = svc.repo.CreateUser(admin)
	if err != nil {
		return nil, err
	}
	return []User{admin}, nil
}

// All returns every user, bootstrapping the default admin first if the
// collection is empty.
func (svc *Service) All() ([]User, error) {
	return svc.ensureDefaultAdmin()
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

func (svc *Service) CheckUniqueness(email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclUsers...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		ID:        uuid.New().String(),
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      nu.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(usr)
}

// CreateOrUpdateAccount creates the User paired with a person record, or
// updates its profile fields while preserving its stored password. On
// creation the generated default password is returned (once, in plaintext)
// and emailed to the new user.
func (svc *Service) CreateOrUpdateAccount(acct Account) (User, string, error) {
	acct.Name = core.CleanString(acct.Name)
	acct.Email = core.CleanString(acct.Email, true /* lower */)

	usr, err := svc.repo.GetUserByID(acct.ID)
	if err != nil {
		if err != ErrNotFound {
			return User{}, "", err
		}

		// create
		if err := svc.CheckUniqueness(acct.Email); err != nil {
			return User{}, "", err
		}
		pwd := acct.DefaultPassword()
		now := time.Now().UTC()
		usr = User{
			ID:        acct.ID,
			Name:      acct.Name,
			Email:     acct.Email,
			Role:      acct.Role,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := usr.SetPassword(pwd); err != nil {
			return User{}, "", err
		}
		usr, err = svc.repo.CreateUser(usr)
		if err != nil {
			return User{}, "", err
		}
		svc.sendCredentials(usr, pwd)
		return usr, pwd, nil
	}

	// update; a user may keep its own email
	if err := svc.CheckUniqueness(acct.Email, usr); err != nil {
		return User{}, "", err
	}
	usr.Name = acct.Name
	usr.Email = acct.Email
	usr.UpdatedAt = time.Now().UTC()
	usr, err = svc.repo.UpdateUser(usr)
	if err != nil {
		return User{}, "", err
	}
	return usr, "", nil
}

// Authenticate validates the supplied credentials. It is stateless: session
// establishment is the caller's concern.
func (svc *Service) Authenticate(email, pwd string) (User, error) {
	if _, err := svc.ensureDefaultAdmin(); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		if err == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

func (svc *Service) SetLastLogin(usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

func (svc *Service) Update(id string, uu UpdateUser) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	usr.Name = uu.Name
	usr.Email = uu.Email
	usr.ProfilePic = uu.ProfilePic
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

func (svc *Service) ChangePassword(id string, cp ChangePassword) error {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return err
	}
	if err := usr.CheckPassword(cp.OldPassword); err != nil {
		return ErrInvalidCredentials
	}
	if err := ValidatePassword(cp.Password, usr); err != nil {
		return err
	}
	if err := usr.SetPassword(cp.Password); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateUser(usr)
	return err
}

// ResetPassword sets a new password for the user with the given email.
// Admin CLI operation; the password policy is not applied here.
func (svc *Service) ResetPassword(email, pwd string) error {
	usr, err := svc.GetByEmail(email)
	if err != nil {
		return err
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateUser(usr)
	return err
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteUsersByID(ids...)
}

func (svc *Service) sendCredentials(usr User, pwd string) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Your account",
		Body: fmt.Sprintf(
			"Hi %s,\r\n\r\nAn account has been created for you.\r\nEmail: %s\r\nPassword: %s\r\n\r\nPlease change your password after your first login.",
			usr.Name, usr.Email, pwd,
		),
	})
}
