// ============================================================================
// internal/records/validator.go
// Input normalization and validation for student and mark submissions
// ============================================================================

package records

import (
	"strconv"
	"strings"
	"time"

	"resultportal/internal/catalog"
	"resultportal/internal/shared"
)

// ValidateStudentInput normalizes and validates the three student fields.
// The seat number is trimmed and uppercased but deliberately carries no
// length or pattern check: institutions format them however they like. The
// date of birth must be a well-formed ISO calendar date, nothing more.
// Returns the normalized values.
func ValidateStudentInput(seatNumber, fullName, dateOfBirth string) (string, string, string, error) {
	seat := strings.ToUpper(strings.TrimSpace(seatNumber))
	name := strings.TrimSpace(fullName)
	dob := strings.TrimSpace(dateOfBirth)

	if seat == "" {
		return "", "", "", shared.Validationf("seat number is required")
	}
	if name == "" {
		return "", "", "", shared.Validationf("full name is required")
	}

	parsed, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return "", "", "", shared.Validationf("date of birth must be YYYY-MM-DD")
	}

	// Re-format so "2002-5-15" style inputs never slip through unnormalized.
	return seat, name, parsed.Format("2006-01-02"), nil
}

// ParseMarkInput converts a raw mark submission into a score. Blank or
// unparsable input coerces to zero; a parsed value outside [0,100] is
// rejected rather than clamped, so a typo like 850 surfaces instead of
// silently becoming a perfect score.
func ParseMarkInput(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}

	score, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, nil
	}

	if score < 0 || score > catalog.MaxScorePerSubject {
		return 0, shared.Validationf("score %d is outside 0-%d", score, catalog.MaxScorePerSubject)
	}
	return score, nil
}

// ValidateSubjectCode checks the code against the catalog.
func ValidateSubjectCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !catalog.IsValid(normalized) {
		return "", shared.Validationf("unknown subject code %q", code)
	}
	return normalized, nil
}
