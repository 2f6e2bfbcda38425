// ============================================================================
// internal/records/repository.go
// Repository contract for students, marks, admins and sessions
// ============================================================================

package records

import (
	"context"

	"resultportal/internal/shared"
)

// Sort keys accepted by ListStudents. Anything else falls back to seat number.
const (
	OrderBySeatNumber = "seat_number"
	OrderByFullName   = "full_name"
	OrderByCreatedAt  = "created_at"
)

// Repository is the single persistence boundary of the portal. The Mongo
// implementation backs production; the in-memory one backs tests. Both must
// uphold the same guarantees: seat numbers are unique, at most one mark per
// (student, subject) pair, and deleting a student leaves no orphaned marks.
type Repository interface {
	// Students
	CreateStudent(ctx context.Context, student *shared.Student, marks []shared.MarkEntry) error
	UpdateStudent(ctx context.Context, student *shared.Student) error
	DeleteStudent(ctx context.Context, studentID string) error
	GetStudent(ctx context.Context, studentID string) (*shared.Student, error)
	ListStudents(ctx context.Context, orderBy string) ([]shared.Student, error)

	// FindStudentByCredentials matches both factors exactly and returns
	// shared.ErrNotFound when either is wrong. Callers must not distinguish
	// the two cases for the requester.
	FindStudentByCredentials(ctx context.Context, seatNumber, dateOfBirth string) (*shared.Student, error)

	// Marks
	UpsertMark(ctx context.Context, mark *shared.MarkEntry) error
	ListMarksForStudent(ctx context.Context, studentID string) ([]shared.MarkEntry, error)

	// Admins
	InsertAdmin(ctx context.Context, admin *shared.AdminProfile) error
	FindAdminByUsername(ctx context.Context, username string) (*shared.AdminProfile, error)
	GetAdmin(ctx context.Context, adminID string) (*shared.AdminProfile, error)

	// Sessions
	InsertSession(ctx context.Context, session *shared.Session) error
	FindSessionByToken(ctx context.Context, token string) (*shared.Session, error)
	DeleteSessionByToken(ctx context.Context, token string) error
}

// MarksByCode flattens mark entries into the code→score map the grading
// engine consumes.
func MarksByCode(marks []shared.MarkEntry) map[string]int {
	out := make(map[string]int, len(marks))
	for _, m := range marks {
		out[m.SubjectCode] = m.Score
	}
	return out
}
