// ============================================================================
// internal/students/service.go
// Student CRUD, mark entry and result assembly
// ============================================================================

package students

import (
	"context"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"resultportal/internal/catalog"
	"resultportal/internal/grading"
	"resultportal/internal/records"
	"resultportal/internal/shared"
)

// StudentResult pairs a student record with its computed result view.
type StudentResult struct {
	Student shared.Student     `json:"student"`
	Result  grading.GradedView `json:"result"`
}

// CohortStats summarizes the whole cohort's percentages.
type CohortStats struct {
	Count            int     `json:"count"`
	MeanPercentage   float64 `json:"mean_percentage"`
	MedianPercentage float64 `json:"median_percentage"`
	MinPercentage    float64 `json:"min_percentage"`
	MaxPercentage    float64 `json:"max_percentage"`
	PassRate         float64 `json:"pass_rate"` // fraction of students not classified Fail
}

// Service owns the admin-facing record operations and the result assembly
// both audiences read through.
type Service struct {
	repo   records.Repository
	logger *zap.Logger
}

// NewService creates the students service.
func NewService(repo records.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create validates the input, then inserts the student together with a zero
// mark for every catalog subject, so a freshly created record already has a
// complete (all-F) result view.
func (s *Service) Create(ctx context.Context, seatNumber, fullName, dateOfBirth string) (*shared.Student, error) {
	seat, name, dob, err := records.ValidateStudentInput(seatNumber, fullName, dateOfBirth)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	student := &shared.Student{
		ID:          shared.GenerateID("stu"),
		SeatNumber:  seat,
		FullName:    name,
		DateOfBirth: dob,
		CreatedAt:   now,
	}

	marks := make([]shared.MarkEntry, 0, catalog.Count())
	for _, code := range catalog.Codes() {
		marks = append(marks, shared.MarkEntry{
			StudentID:   student.ID,
			SubjectCode: code,
			Score:       0,
			UpdatedAt:   now,
		})
	}

	if err := s.repo.CreateStudent(ctx, student, marks); err != nil {
		return nil, err
	}

	s.logger.Info("student created",
		zap.String("student_id", student.ID),
		zap.String("seat_number", student.SeatNumber))
	return student, nil
}

// Update rewrites the identity fields of an existing student.
func (s *Service) Update(ctx context.Context, studentID, seatNumber, fullName, dateOfBirth string) (*shared.Student, error) {
	seat, name, dob, err := records.ValidateStudentInput(seatNumber, fullName, dateOfBirth)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	existing.SeatNumber = seat
	existing.FullName = name
	existing.DateOfBirth = dob
	existing.UpdatedAt = time.Now()

	if err := s.repo.UpdateStudent(ctx, existing); err != nil {
		return nil, err
	}

	s.logger.Info("student updated", zap.String("student_id", studentID))
	return existing, nil
}

// Delete removes the student and all of its marks.
func (s *Service) Delete(ctx context.Context, studentID string) error {
	if err := s.repo.DeleteStudent(ctx, studentID); err != nil {
		return err
	}
	s.logger.Info("student deleted", zap.String("student_id", studentID))
	return nil
}

// Get returns one student with its computed result view.
func (s *Service) Get(ctx context.Context, studentID string) (*StudentResult, error) {
	student, err := s.repo.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, student)
}

// List returns every student, each with its computed result view, sorted by
// the requested key.
func (s *Service) List(ctx context.Context, orderBy string) ([]StudentResult, error) {
	studentRows, err := s.repo.ListStudents(ctx, orderBy)
	if err != nil {
		return nil, err
	}

	results := make([]StudentResult, 0, len(studentRows))
	for i := range studentRows {
		sr, err := s.assemble(ctx, &studentRows[i])
		if err != nil {
			return nil, err
		}
		results = append(results, *sr)
	}
	return results, nil
}

// ResultForStudent assembles the result view for an already-authenticated
// student record, as resolved by the two-factor gate.
func (s *Service) ResultForStudent(ctx context.Context, student *shared.Student) (*StudentResult, error) {
	return s.assemble(ctx, student)
}

// SetMark validates and writes one subject score. The raw score comes in as
// the submitted string; see records.ParseMarkInput for the coercion rules.
// Last write wins when two admins race on the same cell.
func (s *Service) SetMark(ctx context.Context, studentID, subjectCode, rawScore, updatedBy string) (*shared.MarkEntry, error) {
	code, err := records.ValidateSubjectCode(subjectCode)
	if err != nil {
		return nil, err
	}
	score, err := records.ParseMarkInput(rawScore)
	if err != nil {
		return nil, err
	}

	// Refuse to attach marks to a deleted record.
	if _, err := s.repo.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}

	mark := &shared.MarkEntry{
		StudentID:   studentID,
		SubjectCode: code,
		Score:       score,
		UpdatedBy:   updatedBy,
		UpdatedAt:   time.Now(),
	}
	if err := s.repo.UpsertMark(ctx, mark); err != nil {
		return nil, err
	}

	s.logger.Info("mark recorded",
		zap.String("student_id", studentID),
		zap.String("subject", code),
		zap.Int("score", score))
	return mark, nil
}

// Cohort computes descriptive statistics over every student's percentage.
// An empty cohort yields the zero struct rather than an error.
func (s *Service) Cohort(ctx context.Context) (*CohortStats, error) {
	results, err := s.List(ctx, records.OrderBySeatNumber)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &CohortStats{}, nil
	}

	percentages := make([]float64, 0, len(results))
	passed := 0
	for _, r := range results {
		percentages = append(percentages, r.Result.Percentage)
		if r.Result.OverallStatus != grading.StatusFail {
			passed++
		}
	}

	mean, err := stats.Mean(percentages)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(percentages)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(percentages)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(percentages)
	if err != nil {
		return nil, err
	}

	return &CohortStats{
		Count:            len(results),
		MeanPercentage:   round2(mean),
		MedianPercentage: round2(median),
		MinPercentage:    round2(min),
		MaxPercentage:    round2(max),
		PassRate:         round2(float64(passed) / float64(len(results))),
	}, nil
}

func (s *Service) assemble(ctx context.Context, student *shared.Student) (*StudentResult, error) {
	marks, err := s.repo.ListMarksForStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	return &StudentResult{
		Student: *student,
		Result:  grading.BuildView(records.MarksByCode(marks)),
	}, nil
}

func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
