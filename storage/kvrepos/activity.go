package kvrepos

import (
	"sync"

	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/activity"
)

type activityRepository struct {
	store core.Store
	mutex sync.Mutex
}

func NewActivityRepository(store core.Store) activity.Repository {
	return &activityRepository{store: store}
}

func (repo *activityRepository) CreateRecord(entry activity.RecordEntry) (activity.RecordEntry, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	var entries []activity.RecordEntry
	if err := loadCollection(repo.store, core.StoreKeyRecords, &entries); err != nil {
		return activity.RecordEntry{}, err
	}
	entries = append(entries, entry)
	if err := saveCollection(repo.store, core.StoreKeyRecords, entries); err != nil {
		return activity.RecordEntry{}, err
	}
	return entry, nil
}

func (repo *activityRepository) QueryAllRecords() ([]activity.RecordEntry, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	var entries []activity.RecordEntry
	if err := loadCollection(repo.store, core.StoreKeyRecords, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *activityRepository) DeleteRecordsByStudentID(id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	var entries []activity.RecordEntry
	if err := loadCollection(repo.store, core.StoreKeyRecords, &entries); err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.StudentID != id {
			kept = append(kept, e)
		}
	}
	return saveCollection(repo.store, core.StoreKeyRecords, kept)
}

func (repo *activityRepository) DeleteRecordsBySupervisorID(id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	var entries []activity.RecordEntry
	if err := loadCollection(repo.store, core.StoreKeyRecords, &entries); err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.SupervisorID != id {
			kept = append(kept, e)
		}
	}
	return saveCollection(repo.store, core.StoreKeyRecords, kept)
}

func (repo *activityRepository) CreateEvaluation(entry activity.EvaluationEntry) (activity.EvaluationEntry, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	var entries []activity.EvaluationEntry
	if err := loadCollection(repo.store, core.StoreKeyEvaluations, &entries); err != nil {
		return activity.EvaluationEntry{}, err
	}
	entries = append(entries, entry)
	if err := saveCollection(repo.store, core.StoreKeyEvaluations, entries); err != nil {
		return activity.EvaluationEntry{}, err
	}
	return entry, nil
}

func (repo *activityRepository) QueryAllEvaluations() ([]activity.EvaluationEntry, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	var entries []activity.EvaluationEntry
	if err := loadCollection(repo.store, core.StoreKeyEvaluations, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *activityRepository) DeleteEvaluationsByStudentID(id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	var entries []activity.EvaluationEntry
	if err := loadCollection(repo.store, core.StoreKeyEvaluations, &entries); err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.StudentID != id {
			kept = append(kept, e)
		}
	}
	return saveCollection(repo.store, core.StoreKeyEvaluations, kept)
}

func (repo *activityRepository) DeleteEvaluationsBySupervisorID(id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	var entries []activity.EvaluationEntry
	if err := loadCollection(repo.store, core.StoreKeyEvaluations, &entries); err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.SupervisorID != id {
			kept = append(kept, e)
		}
	}
	return saveCollection(repo.store, core.StoreKeyEvaluations, kept)
}

func (repo *activityRepository) CreateAttendance(entry activity.AttendanceEntry) (activity.AttendanceEntry, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	var entries []activity.AttendanceEntry
	if err := loadCollection(repo.store, core.StoreKeyAttendance, &entries); err != nil {
		return activity.AttendanceEntry{}, err
	}
	entries = append(entries, entry)
	if err := saveCollection(repo.store, core.StoreKeyAttendance, entries); err != nil {
		return activity.AttendanceEntry{}, err
	}
	return entry, nil
}

func (repo *activityRepository) QueryAllAttendance() ([]activity.AttendanceEntry, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	var entries []activity.AttendanceEntry
	if err := loadCollection(repo.store, core.StoreKeyAttendance, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *activityRepository) DeleteAttendanceByStudentID(id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	var entries []activity.AttendanceEntry
	if err := loadCollection(repo.store, core.StoreKeyAttendance, &entries); err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.StudentID != id {
			kept = append(kept, e)
		}
	}
	return saveCollection(repo.store, core.StoreKeyAttendance, kept)
}

func (repo *activityRepository) DeleteAttendanceBySupervisorID(id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	var entries []activity.AttendanceEntry
	if err := loadCollection(repo.store, core.StoreKeyAttendance, &entries); err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.SupervisorID != id {
			kept = append(kept, e)
		}
	}
	return saveCollection(repo.store, core.StoreKeyAttendance, kept)
}
