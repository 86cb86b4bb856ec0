package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ojtrack/ojtrack/core/access"
	"github.com/ojtrack/ojtrack/core/user"
)

func (s *server) userQuery(ctx echo.Context) error {
	users, err := s.opts.UserSvc.All()
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (s *server) userQueryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.AllRoles)
}

func (s *server) profileRetrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	usr, err := s.opts.UserSvc.GetByID(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (s *server) profileUpdate(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}

	orig, err := s.opts.UserSvc.GetByID(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}
	if err := data.Validate(orig, s.opts.UserSvc); err != nil {
		return err
	}

	usr, err := s.opts.UserSvc.Update(claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	// keep the persisted session scalars in sync with the profile
	if err := s.opts.Sessions.SaveSession(access.NewSession(usr)); err != nil {
		return errors.Wrap(err, "saving session")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (s *server) profileChangePassword(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data user.ChangePassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangePassword")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := s.opts.UserSvc.ChangePassword(claims.Subject, data); err != nil {
		return errors.Wrap(err, "changing password")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Password has been changed."})
}
