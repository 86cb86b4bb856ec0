package echoapi

import (
	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/access"
	"github.com/ojtrack/ojtrack/core/person"
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	// AccessCheckResponse reports the guard decision for a route, so the
	// client can redirect before rendering a protected page.
	AccessCheckResponse struct {
		Route    string `json:"route"`
		Allowed  bool   `json:"allowed"`
		Decision string `json:"decision"`
	}

	// StudentCreatedResponse carries the one-time generated default password
	// alongside the new student; the plaintext is never persisted.
	StudentCreatedResponse struct {
		person.Student
		GeneratedPassword string `json:"generatedPassword,omitempty"`
	}

	SupervisorCreatedResponse struct {
		person.Supervisor
		GeneratedPassword string `json:"generatedPassword,omitempty"`
	}

	DashboardResponse struct {
		Students    int `json:"students"`
		Supervisors int `json:"supervisors"`
		Records     int `json:"records"`
		Evaluations int `json:"evaluations"`
		Attendance  int `json:"attendance"`
	}

	NavResponse struct {
		Role  string           `json:"role"`
		Items []access.NavItem `json:"items"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}
