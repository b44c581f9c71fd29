// Package export renders admin downloads. Workbooks are built in memory;
// callers stream them to the response.
package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/craftportal/learning-service/internal/models"
)

const instructorSheet = "Instructors"

// InstructorsWorkbook builds an xlsx roster of instructors, one row per
// instructor, ordered as given.
func InstructorsWorkbook(instructors []models.UserRef) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(instructorSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Name", "Email"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(instructorSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, instructor := range instructors {
		values := []any{instructor.ID, instructor.Name, instructor.Email}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(instructorSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(instructorSheet, "B", "C", 32); err != nil {
		return nil, err
	}
	return f, nil
}

// Filename is the attachment name for the roster download.
const Filename = "instructors.xlsx"
