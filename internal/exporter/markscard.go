// Package exporter renders a student's result view into a downloadable
// markscard workbook.
package exporter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"resultportal/internal/grading"
	"resultportal/internal/metrics"
	"resultportal/internal/shared"
)

const (
	sheetName        = "Markscard"
	institutionTitle = "BMSIT&M RESULT PORTAL"
)

// BuildMarkscard renders the identity block, per-subject table and summary
// for one student into an xlsx workbook and returns the serialized bytes.
func BuildMarkscard(student *shared.Student, view *grading.GradedView, generatedAt time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	if err := f.SetColWidth(sheetName, "A", "A", 16); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "B", 36); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "C", "E", 12); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	// Institution header
	if err := f.MergeCell(sheetName, "A1", "E1"); err != nil {
		return nil, fmt.Errorf("failed to merge cells: %w", err)
	}
	f.SetCellValue(sheetName, "A1", institutionTitle)
	f.SetCellStyle(sheetName, "A1", "E1", titleStyle)
	if err := f.MergeCell(sheetName, "A2", "E2"); err != nil {
		return nil, fmt.Errorf("failed to merge cells: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Student Markscard")

	// Identity block
	f.SetCellValue(sheetName, "A4", "Seat Number")
	f.SetCellValue(sheetName, "B4", student.SeatNumber)
	f.SetCellValue(sheetName, "A5", "Name")
	f.SetCellValue(sheetName, "B5", student.FullName)
	f.SetCellValue(sheetName, "A6", "Date of Birth")
	f.SetCellValue(sheetName, "B6", student.DateOfBirth)
	f.SetCellStyle(sheetName, "A4", "A6", boldStyle)

	// Per-subject table
	headers := []string{"Code", "Subject", "Credits", "Score", "Grade"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 8)
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A8", "E8", headerStyle)

	row := 9
	for _, subject := range view.Subjects {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), subject.Code)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), subject.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), subject.Credits)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), subject.Score)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), subject.Grade)
		row++
	}

	// Summary block
	row++
	summary := []struct {
		label string
		value interface{}
	}{
		{"Total", view.TotalScore},
		{"Percentage", fmt.Sprintf("%.2f%%", view.Percentage)},
		{"GPA", fmt.Sprintf("%.1f", view.GPA)},
		{"Overall Grade", view.OverallGrade},
		{"Status", view.OverallStatus},
	}
	for _, line := range summary {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), line.label)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), line.value)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), boldStyle)
		row++
	}

	// Footer
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row),
		fmt.Sprintf("Generated %s", generatedAt.Format("2006-01-02 15:04:05 MST")))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	metrics.IncExportGenerated()
	return buf, nil
}

// Filename derives the download name from the seat number.
func Filename(student *shared.Student) string {
	return fmt.Sprintf("markscard_%s.xlsx", student.SeatNumber)
}
