package exporter

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"resultportal/internal/catalog"
	"resultportal/internal/grading"
	"resultportal/internal/shared"
)

func TestBuildMarkscard(t *testing.T) {
	student := &shared.Student{
		ID:          "s1",
		SeatNumber:  "1BM20CS001",
		FullName:    "John Doe",
		DateOfBirth: "2002-05-15",
	}
	view := grading.BuildView(map[string]int{
		catalog.CodeDSA:  85,
		catalog.CodeADA:  78,
		catalog.CodeDBMS: 92,
		catalog.CodeJAVA: 88,
		catalog.CodeOS:   81,
	})

	buf, err := BuildMarkscard(student, &view, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("workbook is empty")
	}

	// Read the workbook back and check the visible cells.
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	mustCell := func(cell, want string) {
		t.Helper()
		got, err := f.GetCellValue("Markscard", cell)
		if err != nil {
			t.Fatalf("get %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s = %q, want %q", cell, got, want)
		}
	}

	mustCell("A1", "BMSIT&M RESULT PORTAL")
	mustCell("B4", "1BM20CS001")
	mustCell("B5", "John Doe")
	mustCell("B6", "2002-05-15")

	// First subject row follows catalog display order.
	mustCell("A9", catalog.CodeDSA)
	mustCell("D9", "85")

	// Summary block sits two rows under the five subject rows.
	mustCell("A15", "Total")
	mustCell("B15", "424")
	mustCell("B16", "84.80%")
	mustCell("B17", "3.6")
	mustCell("B18", "A")
	mustCell("B19", "First Class")
}

func TestFilename(t *testing.T) {
	student := &shared.Student{SeatNumber: "1BM20CS001"}
	if got := Filename(student); got != "markscard_1BM20CS001.xlsx" {
		t.Errorf("Filename = %q", got)
	}
}
