package export

import (
	"testing"

	"github.com/craftportal/learning-service/internal/models"
)

func TestInstructorsWorkbook(t *testing.T) {
	instructors := []models.UserRef{
		{ID: 1, Name: "Ada", Email: "ada@example.com"},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
	}

	f, err := InstructorsWorkbook(instructors)
	if err != nil {
		t.Fatalf("building workbook: %v", err)
	}
	defer f.Close()

	if _, err := f.GetSheetIndex(instructorSheet); err != nil {
		t.Fatalf("sheet lookup: %v", err)
	}

	tests := []struct {
		cell string
		want string
	}{
		{"A1", "ID"},
		{"B1", "Name"},
		{"C1", "Email"},
		{"A2", "1"},
		{"B2", "Ada"},
		{"C2", "ada@example.com"},
		{"B3", "Bob"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(instructorSheet, tt.cell)
		if err != nil {
			t.Fatalf("reading %s: %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestInstructorsWorkbookEmptyRoster(t *testing.T) {
	f, err := InstructorsWorkbook(nil)
	if err != nil {
		t.Fatalf("building workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue(instructorSheet, "A1")
	if err != nil {
		t.Fatalf("reading header: %v", err)
	}
	if got != "ID" {
		t.Errorf("header = %q, want ID", got)
	}
}
