package activity_test

import (
	"testing"

	"github.com/ojtrack/ojtrack/core/activity"
	"github.com/ojtrack/ojtrack/tests"
)

func Test_NewRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		data    activity.NewRecord
		wantErr bool
	}{
		{
			name: "student entry",
			data: activity.NewRecord{StudentID: "s1", Date: "2026-08-20", Title: "Daily log"},
		},
		{
			name: "supervisor entry",
			data: activity.NewRecord{SupervisorID: "v1", Date: "2026-08-20", Title: "Review"},
		},
		{
			name:    "no owner",
			data:    activity.NewRecord{Date: "2026-08-20", Title: "Orphan"},
			wantErr: true,
		},
		{
			name:    "both owners",
			data:    activity.NewRecord{StudentID: "s1", SupervisorID: "v1", Date: "2026-08-20", Title: "Both"},
			wantErr: true,
		},
		{
			name:    "bad status",
			data:    activity.NewRecord{StudentID: "s1", Date: "2026-08-20", Title: "Log", Status: "lol"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.data.Status == "" {
				t.Errorf("Validate() did not default the status")
			}
		})
	}
}

func Test_Service_Create_checksOwner(t *testing.T) {
	fix := testutil.NewFixture(t)
	std := testutil.CreateStudent(t, fix.PersonSvc, "Hero Mwepu", "hero@test.cd", "ST001", "Software Engineering")

	if _, err := fix.ActivitySvc.CreateRecord(activity.NewRecord{
		StudentID: std.ID, Date: "2026-08-20", Title: "Daily log", Status: activity.RecordPending,
	}); err != nil {
		t.Fatalf("CreateRecord() failed: %v", err)
	}

	// an entry may not reference a person that does not exist
	if _, err := fix.ActivitySvc.CreateRecord(activity.NewRecord{
		StudentID: "lol", Date: "2026-08-20", Title: "Orphan",
	}); err != activity.ErrUnknownPerson {
		t.Errorf("CreateRecord() error = %v; want ErrUnknownPerson", err)
	}
	if _, err := fix.ActivitySvc.CreateEvaluation(activity.NewEvaluation{
		SupervisorID: "lol", Date: "2026-08-20", Score: 85, Category: "technical",
	}); err != activity.ErrUnknownPerson {
		t.Errorf("CreateEvaluation() error = %v; want ErrUnknownPerson", err)
	}
	if _, err := fix.ActivitySvc.CreateAttendance(activity.NewAttendance{
		StudentID: "lol", Date: "2026-08-20", TimeIn: "08:00", TimeOut: "17:00",
	}); err != activity.ErrUnknownPerson {
		t.Errorf("CreateAttendance() error = %v; want ErrUnknownPerson", err)
	}
}

func Test_Service_Filter(t *testing.T) {
	fix := testutil.NewFixture(t)
	std1 := testutil.CreateStudent(t, fix.PersonSvc, "Hero Mwepu", "hero@test.cd", "ST001", "Software Engineering")
	std2 := testutil.CreateStudent(t, fix.PersonSvc, "King Kaumba", "king@test.cd", "ST002", "Data Science")
	sup := testutil.CreateSupervisor(t, fix.PersonSvc, "Super Visor", "sv@test.cd", "SV001", "Engineering")

	mustCreate := func(nr activity.NewRecord) {
		if _, err := fix.ActivitySvc.CreateRecord(nr); err != nil {
			t.Fatalf("CreateRecord() failed: %v", err)
		}
	}
	mustCreate(activity.NewRecord{StudentID: std1.ID, Date: "2026-08-20", Title: "Log 1"})
	mustCreate(activity.NewRecord{StudentID: std1.ID, Date: "2026-08-21", Title: "Log 2"})
	mustCreate(activity.NewRecord{StudentID: std2.ID, Date: "2026-08-20", Title: "Log 3"})
	mustCreate(activity.NewRecord{SupervisorID: sup.ID, Date: "2026-08-20", Title: "Review"})

	tests := []struct {
		name   string
		filter activity.Filter
		want   int
	}{
		{"all", activity.Filter{}, 4},
		{"by student", activity.Filter{StudentID: std1.ID}, 2},
		{"by other student", activity.Filter{StudentID: std2.ID}, 1},
		{"by supervisor", activity.Filter{SupervisorID: sup.ID}, 1},
		{"unknown student", activity.Filter{StudentID: "lol"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := fix.ActivitySvc.FilterRecords(tt.filter)
			if err != nil {
				t.Fatalf("FilterRecords() failed: %v", err)
			}
			if len(entries) != tt.want {
				t.Errorf("FilterRecords() returned %d entries; want %d", len(entries), tt.want)
			}
		})
	}
}

func Test_Service_Count(t *testing.T) {
	fix := testutil.NewFixture(t)
	std := testutil.CreateStudent(t, fix.PersonSvc, "Hero Mwepu", "hero@test.cd", "ST001", "Software Engineering")

	if _, err := fix.ActivitySvc.CreateRecord(activity.NewRecord{StudentID: std.ID, Date: "2026-08-20", Title: "Log"}); err != nil {
		t.Fatalf("CreateRecord() failed: %v", err)
	}
	if _, err := fix.ActivitySvc.CreateAttendance(activity.NewAttendance{StudentID: std.ID, Date: "2026-08-20", TimeIn: "08:00", TimeOut: "17:00"}); err != nil {
		t.Fatalf("CreateAttendance() failed: %v", err)
	}

	counts, err := fix.ActivitySvc.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if counts.Records != 1 || counts.Evaluations != 0 || counts.Attendance != 1 {
		t.Errorf("Count() = %+v; want 1 record, 0 evaluations, 1 attendance", counts)
	}
}
