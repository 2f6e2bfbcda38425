package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"resultportal/internal/catalog"
	"resultportal/internal/shared"
)

func newStudent(id, seat, name, dob string) *shared.Student {
	return &shared.Student{
		ID:          id,
		SeatNumber:  seat,
		FullName:    name,
		DateOfBirth: dob,
		CreatedAt:   time.Now(),
	}
}

func zeroMarks(studentID string) []shared.MarkEntry {
	marks := make([]shared.MarkEntry, 0, catalog.Count())
	for _, code := range catalog.Codes() {
		marks = append(marks, shared.MarkEntry{
			StudentID:   studentID,
			SubjectCode: code,
			Score:       0,
			UpdatedAt:   time.Now(),
		})
	}
	return marks
}

func TestCreateStudentDuplicateSeat(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.CreateStudent(ctx, newStudent("s1", "1BM20CS001", "John Doe", "2002-05-15"), zeroMarks("s1")); err != nil {
		t.Fatalf("first create: %v", err)
	}

	err := repo.CreateStudent(ctx, newStudent("s2", "1BM20CS001", "Jane Smith", "2002-03-22"), zeroMarks("s2"))
	if !errors.Is(err, shared.ErrDuplicateSeatNumber) {
		t.Fatalf("second create: err = %v, want ErrDuplicateSeatNumber", err)
	}

	// The failed create must not have left mark rows behind.
	marks, err := repo.ListMarksForStudent(ctx, "s2")
	if err != nil {
		t.Fatalf("list marks: %v", err)
	}
	if len(marks) != 0 {
		t.Errorf("rejected student left %d mark rows", len(marks))
	}
}

func TestCreateStudentSeedsAllSubjects(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.CreateStudent(ctx, newStudent("s1", "1BM20CS001", "John Doe", "2002-05-15"), zeroMarks("s1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	marks, err := repo.ListMarksForStudent(ctx, "s1")
	if err != nil {
		t.Fatalf("list marks: %v", err)
	}
	if len(marks) != catalog.Count() {
		t.Fatalf("marks = %d rows, want %d", len(marks), catalog.Count())
	}
	for _, m := range marks {
		if m.Score != 0 {
			t.Errorf("subject %s seeded with score %d, want 0", m.SubjectCode, m.Score)
		}
	}
}

func TestUpdateStudentSeatCollision(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_ = repo.CreateStudent(ctx, newStudent("s1", "1BM20CS001", "John Doe", "2002-05-15"), nil)
	_ = repo.CreateStudent(ctx, newStudent("s2", "1BM20CS002", "Jane Smith", "2002-03-22"), nil)

	moved := newStudent("s2", "1BM20CS001", "Jane Smith", "2002-03-22")
	if err := repo.UpdateStudent(ctx, moved); !errors.Is(err, shared.ErrDuplicateSeatNumber) {
		t.Errorf("update onto taken seat: err = %v, want ErrDuplicateSeatNumber", err)
	}

	// Keeping your own seat is not a collision.
	same := newStudent("s2", "1BM20CS002", "Jane S. Smith", "2002-03-22")
	if err := repo.UpdateStudent(ctx, same); err != nil {
		t.Errorf("update keeping own seat: %v", err)
	}

	if err := repo.UpdateStudent(ctx, newStudent("ghost", "1BM20CS099", "Nobody", "2000-01-01")); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("update missing student: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteStudentCascades(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_ = repo.CreateStudent(ctx, newStudent("s1", "1BM20CS001", "John Doe", "2002-05-15"), zeroMarks("s1"))

	if err := repo.DeleteStudent(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.GetStudent(ctx, "s1"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}

	marks, _ := repo.ListMarksForStudent(ctx, "s1")
	if len(marks) != 0 {
		t.Errorf("delete left %d orphaned marks", len(marks))
	}

	if err := repo.DeleteStudent(ctx, "s1"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestFindStudentByCredentials(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_ = repo.CreateStudent(ctx, newStudent("s1", "1BM20CS001", "John Doe", "2002-05-15"), nil)

	s, err := repo.FindStudentByCredentials(ctx, "1BM20CS001", "2002-05-15")
	if err != nil || s.ID != "s1" {
		t.Fatalf("exact match: (%v, %v), want s1", s, err)
	}

	// Either factor wrong yields the same ErrNotFound.
	cases := [][2]string{
		{"1BM20CS001", "2002-05-16"},
		{"1BM20CS999", "2002-05-15"},
		{"1BM20CS999", "1999-01-01"},
	}
	for _, c := range cases {
		if _, err := repo.FindStudentByCredentials(ctx, c[0], c[1]); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("FindStudentByCredentials(%s, %s): err = %v, want ErrNotFound", c[0], c[1], err)
		}
	}
}

func TestUpsertMarkIdempotent(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_ = repo.CreateStudent(ctx, newStudent("s1", "1BM20CS001", "John Doe", "2002-05-15"), zeroMarks("s1"))

	mark := &shared.MarkEntry{StudentID: "s1", SubjectCode: catalog.CodeDSA, Score: 85, UpdatedAt: time.Now()}
	for i := 0; i < 3; i++ {
		if err := repo.UpsertMark(ctx, mark); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}

	marks, _ := repo.ListMarksForStudent(ctx, "s1")
	if len(marks) != catalog.Count() {
		t.Fatalf("marks = %d rows after repeated upsert, want %d", len(marks), catalog.Count())
	}
	got := MarksByCode(marks)
	if got[catalog.CodeDSA] != 85 {
		t.Errorf("DSA score = %d, want 85", got[catalog.CodeDSA])
	}
}

func TestListStudentsOrdering(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_ = repo.CreateStudent(ctx, newStudent("s2", "1BM20CS002", "Alice", "2002-01-01"), nil)
	_ = repo.CreateStudent(ctx, newStudent("s1", "1BM20CS001", "Zed", "2002-01-01"), nil)

	bySeat, _ := repo.ListStudents(ctx, OrderBySeatNumber)
	if bySeat[0].SeatNumber != "1BM20CS001" {
		t.Errorf("seat order: first = %s, want 1BM20CS001", bySeat[0].SeatNumber)
	}

	byName, _ := repo.ListStudents(ctx, OrderByFullName)
	if byName[0].FullName != "Alice" {
		t.Errorf("name order: first = %s, want Alice", byName[0].FullName)
	}

	// Unknown key falls back to seat number.
	fallback, _ := repo.ListStudents(ctx, "drop table")
	if fallback[0].SeatNumber != "1BM20CS001" {
		t.Errorf("fallback order: first = %s, want 1BM20CS001", fallback[0].SeatNumber)
	}
}

func TestSessionLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	session := &shared.Session{
		ID:        "sess_1",
		AdminID:   "admin_1",
		Token:     "tok-abc",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	if err := repo.InsertSession(ctx, session); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := repo.FindSessionByToken(ctx, "tok-abc"); err != nil {
		t.Fatalf("find: %v", err)
	}

	if err := repo.DeleteSessionByToken(ctx, "tok-abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindSessionByToken(ctx, "tok-abc"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("find after delete: err = %v, want ErrNotFound", err)
	}

	// Deleting again is still fine.
	if err := repo.DeleteSessionByToken(ctx, "tok-abc"); err != nil {
		t.Errorf("repeat delete: %v", err)
	}

	expired := &shared.Session{
		ID:        "sess_2",
		AdminID:   "admin_1",
		Token:     "tok-old",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	_ = repo.InsertSession(ctx, expired)
	if _, err := repo.FindSessionByToken(ctx, "tok-old"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expired session resolved: err = %v, want ErrNotFound", err)
	}
}
