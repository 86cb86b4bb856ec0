package activity

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// errors
	ErrNotFound      = errors.New("entry not found")
	ErrUnknownPerson = errors.New("referenced student or supervisor does not exist")
)

type (
	Repository interface {
		CreateRecord(entry RecordEntry) (RecordEntry, error)
		QueryAllRecords() ([]RecordEntry, error)
		DeleteRecordsByStudentID(id string) error
		DeleteRecordsBySupervisorID(id string) error

		CreateEvaluation(entry EvaluationEntry) (EvaluationEntry, error)
		QueryAllEvaluations() ([]EvaluationEntry, error)
		DeleteEvaluationsByStudentID(id string) error
		DeleteEvaluationsBySupervisorID(id string) error

		CreateAttendance(entry AttendanceEntry) (AttendanceEntry, error)
		QueryAllAttendance() ([]AttendanceEntry, error)
		DeleteAttendanceByStudentID(id string) error
		DeleteAttendanceBySupervisorID(id string) error
	}

	// PersonDirectory answers existence checks for entry foreign keys.
	PersonDirectory interface {
		HasStudent(id string) (bool, error)
		HasSupervisor(id string) (bool, error)
	}

	// Filter selects entries by owner; zero value selects everything.
	Filter struct {
		StudentID    string `query:"student"`
		SupervisorID string `query:"supervisor"`
	}

	Service struct {
		repo    Repository
		persons PersonDirectory
	}
)

func NewService(repo Repository, persons PersonDirectory) *Service {
	return &Service{repo: repo, persons: persons}
}

func (f Filter) match(studentID, supervisorID string) bool {
	if f.StudentID != "" && f.StudentID != studentID {
		return false
	}
	if f.SupervisorID != "" && f.SupervisorID != supervisorID {
		return false
	}
	return true
}

// checkOwner enforces referential integrity at insert time: the entry's
// foreign key must reference a currently-existing person.
func (svc *Service) checkOwner(studentID, supervisorID string) error {
	if studentID != "" {
		ok, err := svc.persons.HasStudent(studentID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUnknownPerson
		}
		return nil
	}
	ok, err := svc.persons.HasSupervisor(supervisorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownPerson
	}
	return nil
}

func (svc *Service) CreateRecord(nr NewRecord) (RecordEntry, error) {
	if err := svc.checkOwner(nr.StudentID, nr.SupervisorID); err != nil {
		return RecordEntry{}, err
	}
	entry := RecordEntry{
		ID:           uuid.New().String(),
		StudentID:    nr.StudentID,
		SupervisorID: nr.SupervisorID,
		Date:         nr.Date,
		Title:        nr.Title,
		Description:  nr.Description,
		Status:       nr.Status,
	}
	return svc.repo.CreateRecord(entry)
}

func (svc *Service) FilterRecords(filter Filter) ([]RecordEntry, error) {
	entries, err := svc.repo.QueryAllRecords()
	if err != nil {
		return nil, err
	}
	matched := make([]RecordEntry, 0, len(entries))
	for _, e := range entries {
		if filter.match(e.StudentID, e.SupervisorID) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (svc *Service) CreateEvaluation(ne NewEvaluation) (EvaluationEntry, error) {
	if err := svc.checkOwner(ne.StudentID, ne.SupervisorID); err != nil {
		return EvaluationEntry{}, err
	}
	entry := EvaluationEntry{
		ID:           uuid.New().String(),
		StudentID:    ne.StudentID,
		SupervisorID: ne.SupervisorID,
		Date:         ne.Date,
		Score:        ne.Score,
		Feedback:     ne.Feedback,
		Category:     ne.Category,
	}
	return svc.repo.CreateEvaluation(entry)
}

func (svc *Service) FilterEvaluations(filter Filter) ([]EvaluationEntry, error) {
	entries, err := svc.repo.QueryAllEvaluations()
	if err != nil {
		return nil, err
	}
	matched := make([]EvaluationEntry, 0, len(entries))
	for _, e := range entries {
		if filter.match(e.StudentID, e.SupervisorID) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (svc *Service) CreateAttendance(na NewAttendance) (AttendanceEntry, error) {
	if err := svc.checkOwner(na.StudentID, na.SupervisorID); err != nil {
		return AttendanceEntry{}, err
	}
	entry := AttendanceEntry{
		ID:           uuid.New().String(),
		StudentID:    na.StudentID,
		SupervisorID: na.SupervisorID,
		Date:         na.Date,
		TimeIn:       na.TimeIn,
		TimeOut:      na.TimeOut,
		Status:       na.Status,
	}
	return svc.repo.CreateAttendance(entry)
}

func (svc *Service) FilterAttendance(filter Filter) ([]AttendanceEntry, error) {
	entries, err := svc.repo.QueryAllAttendance()
	if err != nil {
		return nil, err
	}
	matched := make([]AttendanceEntry, 0, len(entries))
	for _, e := range entries {
		if filter.match(e.StudentID, e.SupervisorID) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// DeleteByStudentID sweeps every collection for entries owned by the
// student. All three must complete for the no-dangling-reference invariant.
func (svc *Service) DeleteByStudentID(id string) error {
	if err := svc.repo.DeleteRecordsByStudentID(id); err != nil {
		return err
	}
	if err := svc.repo.DeleteEvaluationsByStudentID(id); err != nil {
		return err
	}
	return svc.repo.DeleteAttendanceByStudentID(id)
}

// DeleteBySupervisorID is the supervisor counterpart of DeleteByStudentID.
func (svc *Service) DeleteBySupervisorID(id string) error {
	if err := svc.repo.DeleteRecordsBySupervisorID(id); err != nil {
		return err
	}
	if err := svc.repo.DeleteEvaluationsBySupervisorID(id); err != nil {
		return err
	}
	return svc.repo.DeleteAttendanceBySupervisorID(id)
}

// Counts summarizes entry totals for the dashboard.
type Counts struct {
	Records     int `json:"records"`
	Evaluations int `json:"evaluations"`
	Attendance  int `json:"attendance"`
}

func (svc *Service) Count() (Counts, error) {
	var c Counts
	records, err := svc.repo.QueryAllRecords()
	if err != nil {
		return c, err
	}
	evaluations, err := svc.repo.QueryAllEvaluations()
	if err != nil {
		return c, err
	}
	attendance, err := svc.repo.QueryAllAttendance()
	if err != nil {
		return c, err
	}
	c.Records = len(records)
	c.Evaluations = len(evaluations)
	c.Attendance = len(attendance)
	return c, nil
}
