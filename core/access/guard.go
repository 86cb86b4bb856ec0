package access

import "github.com/ojtrack/ojtrack/core/user"

// Session is the explicit record of who is using the application. It is
// persisted through a SessionRepository rather than read ambiently, so the
// guard stays a pure function of (session, route).
type Session struct {
	IsLoggedIn bool
	UserID     string
	UserName   string
	UserEmail  string
	Role       string
	ProfilePic string
}

func NewSession(usr user.User) Session {
	return Session{
		IsLoggedIn: true,
		UserID:     usr.ID,
		UserName:   usr.Name,
		UserEmail:  usr.Email,
		Role:       usr.Role,
		ProfilePic: usr.ProfilePic,
	}
}

// SessionRepository persists the session scalars.
type SessionRepository interface {
	SaveSession(s Session) error
	LoadSession() (Session, error)
	ClearSession() error
}

// Decision is the outcome of a guard check.
type Decision int

const (
	Allowed Decision = iota
	DeniedNoSession
	DeniedWrongRole
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case DeniedNoSession:
		return "denied: no session"
	case DeniedWrongRole:
		return "denied: wrong role"
	}
	return "unknown"
}

// Check gates a protected route: no active session denies outright; an
// active session is then checked against the role's route table.
func Check(s Session, route string) Decision {
	if !s.IsLoggedIn {
		return DeniedNoSession
	}
	if !CanAccessRoute(s.Role, route) {
		return DeniedWrongRole
	}
	return Allowed
}
