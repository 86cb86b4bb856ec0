// Package activity manages the per-person tracking entries: daily records,
// evaluations and attendance.
package activity

import "github.com/ojtrack/ojtrack/core"

// Record statuses
const (
	RecordPending  = "pending"
	RecordApproved = "approved"
	RecordRejected = "rejected"
)

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// RecordEntry is a daily activity record. Exactly one of StudentID and
// SupervisorID is set; it references an existing person.
type RecordEntry struct {
	ID           string `json:"id"`
	StudentID    string `json:"studentId,omitempty"`
	SupervisorID string `json:"supervisorId,omitempty"`
	Date         string `json:"date"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       string `json:"status"`
}

type EvaluationEntry struct {
	ID           string  `json:"id"`
	StudentID    string  `json:"studentId,omitempty"`
	SupervisorID string  `json:"supervisorId,omitempty"`
	Date         string  `json:"date"`
	Score        float64 `json:"score"`
	Feedback     string  `json:"feedback"`
	Category     string  `json:"category"`
}

type AttendanceEntry struct {
	ID           string `json:"id"`
	StudentID    string `json:"studentId,omitempty"`
	SupervisorID string `json:"supervisorId,omitempty"`
	Date         string `json:"date"`
	TimeIn       string `json:"timeIn"`
	TimeOut      string `json:"timeOut"`
	Status       string `json:"status"`
}

// NewRecord contains information needed to create a RecordEntry.
type NewRecord struct {
	StudentID    string `json:"studentId" validate:"required_without=SupervisorID,excluded_with=SupervisorID"`
	SupervisorID string `json:"supervisorId"`
	Date         string `json:"date" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Status       string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

func (nr *NewRecord) Validate() error {
	nr.Title = core.CleanString(nr.Title)
	if nr.Status == "" {
		nr.Status = RecordPending
	}
	return core.Validate.Struct(nr)
}

type NewEvaluation struct {
	StudentID    string  `json:"studentId" validate:"required_without=SupervisorID,excluded_with=SupervisorID"`
	SupervisorID string  `json:"supervisorId"`
	Date         string  `json:"date" validate:"required"`
	Score        float64 `json:"score" validate:"min=0,max=100"`
	Feedback     string  `json:"feedback"`
	Category     string  `json:"category" validate:"required"`
}

func (ne *NewEvaluation) Validate() error {
	ne.Category = core.CleanString(ne.Category)
	return core.Validate.Struct(ne)
}

type NewAttendance struct {
	StudentID    string `json:"studentId" validate:"required_without=SupervisorID,excluded_with=SupervisorID"`
	SupervisorID string `json:"supervisorId"`
	Date         string `json:"date" validate:"required"`
	TimeIn       string `json:"timeIn"`
	TimeOut      string `json:"timeOut"`
	Status       string `json:"status" validate:"omitempty,oneof=present absent late"`
}

func (na *NewAttendance) Validate() error {
	if na.Status == "" {
		na.Status = AttendancePresent
	}
	return core.Validate.Struct(na)
}
