package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ojtrack/ojtrack/core/activity"
)

func bindFilter(ctx echo.Context) activity.Filter {
	var filter activity.Filter
	if err := ctx.Bind(&filter); err != nil {
		return activity.Filter{}
	}
	return filter
}

func (s *server) recordQuery(ctx echo.Context) error {
	records, err := s.opts.ActivitySvc.FilterRecords(bindFilter(ctx))
	if err != nil {
		return errors.Wrap(err, "querying records")
	}
	if records == nil {
		records = []activity.RecordEntry{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (s *server) recordCreate(ctx echo.Context) error {
	var data activity.NewRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	rec, err := s.opts.ActivitySvc.CreateRecord(data)
	if err != nil {
		return errors.Wrap(err, "creating record")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (s *server) evaluationQuery(ctx echo.Context) error {
	evals, err := s.opts.ActivitySvc.FilterEvaluations(bindFilter(ctx))
	if err != nil {
		return errors.Wrap(err, "querying evaluations")
	}
	if evals == nil {
		evals = []activity.EvaluationEntry{}
	}
	return ctx.JSON(http.StatusOK, evals)
}

func (s *server) evaluationCreate(ctx echo.Context) error {
	var data activity.NewEvaluation
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvaluation")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	eval, err := s.opts.ActivitySvc.CreateEvaluation(data)
	if err != nil {
		return errors.Wrap(err, "creating evaluation")
	}
	return ctx.JSON(http.StatusCreated, eval)
}

func (s *server) attendanceQuery(ctx echo.Context) error {
	entries, err := s.opts.ActivitySvc.FilterAttendance(bindFilter(ctx))
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	if entries == nil {
		entries = []activity.AttendanceEntry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (s *server) attendanceCreate(ctx echo.Context) error {
	var data activity.NewAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttendance")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	entry, err := s.opts.ActivitySvc.CreateAttendance(data)
	if err != nil {
		return errors.Wrap(err, "creating attendance entry")
	}
	return ctx.JSON(http.StatusCreated, entry)
}
