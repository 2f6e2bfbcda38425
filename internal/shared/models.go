// ============================================================================
// internal/shared/models.go
// Data models for MongoDB documents
// ============================================================================

package shared

import (
	"time"
)

// Student represents one student record. DateOfBirth is stored in ISO form
// ("2006-01-02") because the student gate matches it exactly against the
// submitted credential.
type Student struct {
	ID          string    `bson:"_id" json:"id"`
	SeatNumber  string    `bson:"seat_number" json:"seat_number"` // USN, normalized to uppercase
	FullName    string    `bson:"full_name" json:"full_name"`
	DateOfBirth string    `bson:"date_of_birth" json:"date_of_birth"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// MarkEntry represents one subject's score for one student. At most one
// entry exists per (student, subject) pair; a missing entry is distinct
// from an explicit zero at this layer.
type MarkEntry struct {
	StudentID   string    `bson:"student_id" json:"student_id"`
	SubjectCode string    `bson:"subject_code" json:"subject_code"`
	Score       int       `bson:"score" json:"score"` // 0-100
	UpdatedBy   string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// AdminProfile represents an administrator account.
type AdminProfile struct {
	ID           string    `bson:"_id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"` // Never expose in JSON
	FullName     string    `bson:"full_name,omitempty" json:"full_name,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Session represents an active admin session (for JWT revocation tracking).
type Session struct {
	ID        string    `bson:"_id" json:"id"`
	AdminID   string    `bson:"admin_id" json:"admin_id"`
	Token     string    `bson:"token" json:"token"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// IsExpired checks if a session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
