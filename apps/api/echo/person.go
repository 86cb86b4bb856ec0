package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ojtrack/ojtrack/core/person"
)

// Students

func (s *server) studentQuery(ctx echo.Context) error {
	students, err := s.opts.PersonSvc.QueryAllStudents()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []person.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (s *server) studentCreate(ctx echo.Context) error {
	var data person.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	std, pwd, err := s.opts.PersonSvc.CreateStudent(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, StudentCreatedResponse{Student: std, GeneratedPassword: pwd})
}

func (s *server) studentRetrieve(ctx echo.Context) error {
	std, err := s.opts.PersonSvc.GetStudentByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding student by ID")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (s *server) studentUpdate(ctx echo.Context) error {
	var data person.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	std, err := s.opts.PersonSvc.UpdateStudent(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (s *server) studentDestroy(ctx echo.Context) error {
	if err := s.opts.PersonSvc.DeleteStudent(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Supervisors

func (s *server) supervisorQuery(ctx echo.Context) error {
	supervisors, err := s.opts.PersonSvc.QueryAllSupervisors()
	if err != nil {
		return errors.Wrap(err, "querying supervisors")
	}
	if supervisors == nil {
		supervisors = []person.Supervisor{}
	}
	return ctx.JSON(http.StatusOK, supervisors)
}

func (s *server) supervisorCreate(ctx echo.Context) error {
	var data person.NewSupervisor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSupervisor")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sup, pwd, err := s.opts.PersonSvc.CreateSupervisor(data)
	if err != nil {
		return errors.Wrap(err, "creating supervisor")
	}
	return ctx.JSON(http.StatusCreated, SupervisorCreatedResponse{Supervisor: sup, GeneratedPassword: pwd})
}

func (s *server) supervisorRetrieve(ctx echo.Context) error {
	sup, err := s.opts.PersonSvc.GetSupervisorByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding supervisor by ID")
	}
	return ctx.JSON(http.StatusOK, sup)
}

func (s *server) supervisorUpdate(ctx echo.Context) error {
	var data person.UpdateSupervisor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSupervisor")
	}

	sup, err := s.opts.PersonSvc.UpdateSupervisor(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating supervisor")
	}
	return ctx.JSON(http.StatusOK, sup)
}

func (s *server) supervisorDestroy(ctx echo.Context) error {
	if err := s.opts.PersonSvc.DeleteSupervisor(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting supervisor")
	}
	return ctx.NoContent(http.StatusNoContent)
}
