package echoapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/access"
)

func (s *server) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := s.authenticate(data.Email, data.Password)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (s *server) logout(ctx echo.Context) error {
	if err := s.opts.Sessions.ClearSession(); err != nil {
		return errors.Wrap(err, "clearing session")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Logged out."})
}

func (s *server) tokenRefresh(ctx echo.Context) error {
	token, err := s.refreshToken(ctx)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

// accessCheck reports the guard decision for ?route= without requiring
// authentication; a missing or invalid token yields the logged-out session.
func (s *server) accessCheck(ctx echo.Context) error {
	route := ctx.QueryParam("route")
	if route == "" {
		route = access.RouteRoot
	}

	sess := access.Session{}
	if claims, err := parseBearerToken(ctx); err == nil {
		sess = access.Session{
			IsLoggedIn: true,
			UserID:     claims.Subject,
			UserName:   claims.Name,
			UserEmail:  claims.Email,
			Role:       claims.Role,
			ProfilePic: claims.ProfilePic,
		}
	}

	decision := access.Check(sess, route)
	return ctx.JSON(http.StatusOK, AccessCheckResponse{
		Route:    route,
		Allowed:  decision == access.Allowed,
		Decision: decision.String(),
	})
}

func (s *server) nav(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NavResponse{
		Role:  claims.Role,
		Items: access.NavItems(claims.Role),
	})
}

func (s *server) dashboard(ctx echo.Context) error {
	students, err := s.opts.PersonSvc.QueryAllStudents()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	supervisors, err := s.opts.PersonSvc.QueryAllSupervisors()
	if err != nil {
		return errors.Wrap(err, "querying supervisors")
	}
	counts, err := s.opts.ActivitySvc.Count()
	if err != nil {
		return errors.Wrap(err, "counting activity entries")
	}
	return ctx.JSON(http.StatusOK, DashboardResponse{
		Students:    len(students),
		Supervisors: len(supervisors),
		Records:     counts.Records,
		Evaluations: counts.Evaluations,
		Attendance:  counts.Attendance,
	})
}

// settingsRetrieve serves the opaque appSettings blob as-is; nothing on the
// server interprets it.
func (s *server) settingsRetrieve(ctx echo.Context) error {
	raw, err := s.opts.Store.Get(core.StoreKeyAppSettings)
	if err != nil {
		if errors.Cause(err) == core.ErrKeyNotFound {
			return ctx.JSON(http.StatusOK, map[string]interface{}{})
		}
		return errors.Wrap(err, "getting appSettings")
	}
	if !json.Valid(raw) {
		return ctx.JSON(http.StatusOK, map[string]interface{}{})
	}
	return ctx.JSONBlob(http.StatusOK, raw)
}
