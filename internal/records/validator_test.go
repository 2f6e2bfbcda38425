package records

import (
	"errors"
	"strings"
	"testing"

	"resultportal/internal/shared"
)

func TestValidateStudentInput(t *testing.T) {
	t.Run("normalizes seat and trims name", func(t *testing.T) {
		seat, name, dob, err := ValidateStudentInput("  1bm20cs001 ", " John Doe ", "2002-05-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seat != "1BM20CS001" {
			t.Errorf("seat = %q, want 1BM20CS001", seat)
		}
		if name != "John Doe" {
			t.Errorf("name = %q, want John Doe", name)
		}
		if dob != "2002-05-15" {
			t.Errorf("dob = %q, want 2002-05-15", dob)
		}
	})

	t.Run("rejects bad input", func(t *testing.T) {
		cases := []struct {
			label string
			seat  string
			name  string
			dob   string
		}{
			{"empty seat", "", "John Doe", "2002-05-15"},
			{"blank seat", "   ", "John Doe", "2002-05-15"},
			{"empty name", "1BM20CS001", "", "2002-05-15"},
			{"bad date", "1BM20CS001", "John Doe", "15/05/2002"},
			{"impossible date", "1BM20CS001", "John Doe", "2002-13-45"},
		}
		for _, tc := range cases {
			_, _, _, err := ValidateStudentInput(tc.seat, tc.name, tc.dob)
			if !errors.Is(err, shared.ErrValidation) {
				t.Errorf("%s: err = %v, want ErrValidation", tc.label, err)
			}
		}
	})

	t.Run("seat format and length are unconstrained", func(t *testing.T) {
		// Seat numbers are whatever the institution issues: long, short,
		// punctuated, all accepted as long as they are non-blank.
		for _, raw := range []string{
			strings.Repeat("A", 33),
			strings.Repeat("X", 200),
			"7",
			"SEAT/2020-001",
		} {
			seat, _, _, err := ValidateStudentInput(raw, "John Doe", "2002-05-15")
			if err != nil {
				t.Errorf("seat %q rejected: %v", raw, err)
				continue
			}
			if seat != strings.ToUpper(raw) {
				t.Errorf("seat %q normalized to %q", raw, seat)
			}
		}

		_, name, _, err := ValidateStudentInput("1BM20CS001", strings.Repeat("N", 500), "2002-05-15")
		if err != nil {
			t.Errorf("long name rejected: %v", err)
		}
		if len(name) != 500 {
			t.Errorf("long name truncated to %d chars", len(name))
		}
	})

	t.Run("any well-formed calendar date passes", func(t *testing.T) {
		// No age or range check: a future date is the admin's data-entry
		// problem, not a validation failure.
		for _, dob := range []string{"2099-01-01", "1900-01-01", "2024-02-29"} {
			if _, _, got, err := ValidateStudentInput("1BM20CS001", "John Doe", dob); err != nil || got != dob {
				t.Errorf("dob %q: (%q, %v), want accepted unchanged", dob, got, err)
			}
		}
	})
}

func TestParseMarkInput(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"85", 85, false},
		{" 85 ", 85, false},
		{"0", 0, false},
		{"100", 100, false},
		{"", 0, false},        // blank coerces to zero
		{"abc", 0, false},     // unparsable coerces to zero
		{"8.5", 0, false},     // not an integer, coerces to zero
		{"101", 0, true},      // above range is rejected, not clamped
		{"850", 0, true},
		{"-1", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseMarkInput(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, shared.ErrValidation) {
				t.Errorf("ParseMarkInput(%q): err = %v, want ErrValidation", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMarkInput(%q): unexpected error %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMarkInput(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestValidateSubjectCode(t *testing.T) {
	code, err := ValidateSubjectCode(" dbms ")
	if err != nil || code != "DBMS" {
		t.Errorf("ValidateSubjectCode(\" dbms \") = (%q, %v), want (DBMS, nil)", code, err)
	}

	if _, err := ValidateSubjectCode("MATH"); !errors.Is(err, shared.ErrValidation) {
		t.Errorf("ValidateSubjectCode(MATH): err = %v, want ErrValidation", err)
	}
}
