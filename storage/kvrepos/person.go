package kvrepos

import (
	"sync"

	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/person"
)

// PersonRepository covers both person collections and doubles as the
// existence directory consulted by the activity service.
type PersonRepository struct {
	store core.Store
	mutex sync.Mutex
}

var (
	_ person.StudentRepository    = (*PersonRepository)(nil)
	_ person.SupervisorRepository = (*PersonRepository)(nil)
)

func NewPersonRepository(store core.Store) *PersonRepository {
	return &PersonRepository{store: store}
}

func (repo *PersonRepository) loadStudents() ([]person.Student, error) {
	var students []person.Student
	if err := loadCollection(repo.store, core.StoreKeyStudents, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *PersonRepository) loadSupervisors() ([]person.Supervisor, error) {
	var supervisors []person.Supervisor
	if err := loadCollection(repo.store, core.StoreKeySupervisors, &supervisors); err != nil {
		return nil, err
	}
	return supervisors, nil
}

func (repo *PersonRepository) CreateStudent(s person.Student) (person.Student, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	students, err := repo.loadStudents()
	if err != nil {
		return person.Student{}, err
	}
	students = append(students, s)
	if err := saveCollection(repo.store, core.StoreKeyStudents, students); err != nil {
		return person.Student{}, err
	}
	return s, nil
}

func (repo *PersonRepository) QueryAllStudents() ([]person.Student, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.loadStudents()
}

func (repo *PersonRepository) GetStudentByID(id string) (person.Student, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	students, err := repo.loadStudents()
	if err != nil {
		return person.Student{}, err
	}
	for _, s := range students {
		if s.ID == id {
			return s, nil
		}
	}
	return person.Student{}, person.ErrNotFound
}

func (repo *PersonRepository) UpdateStudent(s person.Student) (person.Student, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	students, err := repo.loadStudents()
	if err != nil {
		return person.Student{}, err
	}
	for i, orig := range students {
		if orig.ID == s.ID {
			students[i] = s
			if err := saveCollection(repo.store, core.StoreKeyStudents, students); err != nil {
				return person.Student{}, err
			}
			return s, nil
		}
	}
	return person.Student{}, person.ErrNotFound
}

func (repo *PersonRepository) DeleteStudentByID(id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	students, err := repo.loadStudents()
	if err != nil {
		return err
	}
	kept := students[:0]
	for _, s := range students {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	return saveCollection(repo.store, core.StoreKeyStudents, kept)
}

func (repo *PersonRepository) CreateSupervisor(s person.Supervisor) (person.Supervisor, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	supervisors, err := repo.loadSupervisors()
	if err != nil {
		return person.Supervisor{}, err
	}
	supervisors = append(supervisors, s)
	if err := saveCollection(repo.store, core.StoreKeySupervisors, supervisors); err != nil {
		return person.Supervisor{}, err
	}
	return s, nil
}

func (repo *PersonRepository) QueryAllSupervisors() ([]person.Supervisor, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.loadSupervisors()
}

func (repo *PersonRepository) GetSupervisorByID(id string) (person.Supervisor, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	supervisors, err := repo.loadSupervisors()
	if err != nil {
		return person.Supervisor{}, err
	}
	for _, s := range supervisors {
		if s.ID == id {
			return s, nil
		}
	}
	return person.Supervisor{}, person.ErrNotFound
}

func (repo *PersonRepository) UpdateSupervisor(s person.Supervisor) (person.Supervisor, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	supervisors, err := repo.loadSupervisors()
	if err != nil {
		return person.Supervisor{}, err
	}
	for i, orig := range supervisors {
		if orig.ID == s.ID {
			supervisors[i] = s
			if err := saveCollection(repo.store, core.StoreKeySupervisors, supervisors); err != nil {
				return person.Supervisor{}, err
			}
			return s, nil
		}
	}
	return person.Supervisor{}, person.ErrNotFound
}

func (repo *PersonRepository) DeleteSupervisorByID(id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	supervisors, err := repo.loadSupervisors()
	if err != nil {
		return err
	}
	kept := supervisors[:0]
	for _, s := range supervisors {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	return saveCollection(repo.store, core.StoreKeySupervisors, kept)
}

// HasStudent implements activity.PersonDirectory.
func (repo *PersonRepository) HasStudent(id string) (bool, error) {
	_, err := repo.GetStudentByID(id)
	if err != nil {
		if err == person.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// HasSupervisor implements activity.PersonDirectory.
func (repo *PersonRepository) HasSupervisor(id string) (bool, error) {
	_, err := repo.GetSupervisorByID(id)
	if err != nil {
		if err == person.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
