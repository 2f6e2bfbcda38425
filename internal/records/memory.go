// ============================================================================
// internal/records/memory.go
// In-memory Repository used by unit tests
// ============================================================================

package records

import (
	"context"
	"sort"
	"sync"
	"time"

	"resultportal/internal/shared"
)

// MemoryRepository is a map-backed Repository with the same guarantees as
// the Mongo implementation. It exists for tests and is safe for concurrent
// use.
type MemoryRepository struct {
	mu       sync.RWMutex
	students map[string]shared.Student   // by ID
	marks    map[string]shared.MarkEntry // by studentID+"/"+subjectCode
	admins   map[string]shared.AdminProfile
	sessions map[string]shared.Session // by token
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		students: make(map[string]shared.Student),
		marks:    make(map[string]shared.MarkEntry),
		admins:   make(map[string]shared.AdminProfile),
		sessions: make(map[string]shared.Session),
	}
}

func markKey(studentID, subjectCode string) string {
	return studentID + "/" + subjectCode
}

func (r *MemoryRepository) seatTaken(seatNumber, excludeID string) bool {
	for id, s := range r.students {
		if id != excludeID && s.SeatNumber == seatNumber {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) CreateStudent(_ context.Context, student *shared.Student, marks []shared.MarkEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seatTaken(student.SeatNumber, "") {
		return shared.ErrDuplicateSeatNumber
	}

	r.students[student.ID] = *student
	for _, m := range marks {
		r.marks[markKey(m.StudentID, m.SubjectCode)] = m
	}
	return nil
}

func (r *MemoryRepository) UpdateStudent(_ context.Context, student *shared.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[student.ID]; !ok {
		return shared.ErrNotFound
	}
	if r.seatTaken(student.SeatNumber, student.ID) {
		return shared.ErrDuplicateSeatNumber
	}
	r.students[student.ID] = *student
	return nil
}

func (r *MemoryRepository) DeleteStudent(_ context.Context, studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, m := range r.marks {
		if m.StudentID == studentID {
			delete(r.marks, key)
		}
	}

	if _, ok := r.students[studentID]; !ok {
		return shared.ErrNotFound
	}
	delete(r.students, studentID)
	return nil
}

func (r *MemoryRepository) GetStudent(_ context.Context, studentID string) (*shared.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.students[studentID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) ListStudents(_ context.Context, orderBy string) ([]shared.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]shared.Student, 0, len(r.students))
	for _, s := range r.students {
		students = append(students, s)
	}

	sort.Slice(students, func(i, j int) bool {
		switch orderBy {
		case OrderByFullName:
			return students[i].FullName < students[j].FullName
		case OrderByCreatedAt:
			return students[i].CreatedAt.Before(students[j].CreatedAt)
		default:
			return students[i].SeatNumber < students[j].SeatNumber
		}
	})
	return students, nil
}

func (r *MemoryRepository) FindStudentByCredentials(_ context.Context, seatNumber, dateOfBirth string) (*shared.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.students {
		if s.SeatNumber == seatNumber && s.DateOfBirth == dateOfBirth {
			found := s
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *MemoryRepository) UpsertMark(_ context.Context, mark *shared.MarkEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.marks[markKey(mark.StudentID, mark.SubjectCode)] = *mark
	return nil
}

func (r *MemoryRepository) ListMarksForStudent(_ context.Context, studentID string) ([]shared.MarkEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	marks := []shared.MarkEntry{}
	for _, m := range r.marks {
		if m.StudentID == studentID {
			marks = append(marks, m)
		}
	}
	sort.Slice(marks, func(i, j int) bool {
		return marks[i].SubjectCode < marks[j].SubjectCode
	})
	return marks, nil
}

func (r *MemoryRepository) InsertAdmin(_ context.Context, admin *shared.AdminProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.admins {
		if a.Username == admin.Username {
			return shared.Validationf("username %q already exists", admin.Username)
		}
	}
	r.admins[admin.ID] = *admin
	return nil
}

func (r *MemoryRepository) FindAdminByUsername(_ context.Context, username string) (*shared.AdminProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.admins {
		if a.Username == username {
			found := a
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *MemoryRepository) GetAdmin(_ context.Context, adminID string) (*shared.AdminProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.admins[adminID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) InsertSession(_ context.Context, session *shared.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.Token] = *session
	return nil
}

func (r *MemoryRepository) FindSessionByToken(_ context.Context, token string) (*shared.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil, shared.ErrNotFound
	}
	// Mirror Mongo's TTL cleanup so expired sessions never resolve.
	if time.Now().After(s.ExpiresAt) {
		return nil, shared.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) DeleteSessionByToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
	return nil
}
