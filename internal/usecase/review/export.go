package review

import (
	"context"
	"fmt"
	"io"

	"sesi-membership/internal/domain/application"

	"github.com/360EntSecGroup-Skylar/excelize"
)

const exportSheet = "Applications"

var exportHeaders = []string{
	"Application ID", "Full Name", "Email", "Mobile", "Registration No.", "Qualification",
	"Years Experience", "Region", "Work Hospital", "Work District", "Work State",
	"Status", "Submitted At", "Reviewed By", "Membership Number", "Admin Notes",
}

// Export writes the filtered application list as an XLSX workbook.
func (u *Usecase) Export(ctx context.Context, status string, w io.Writer) (int, error) {
	apps, err := u.List(ctx, status)
	if err != nil {
		return 0, err
	}

	file := excelize.NewFile()
	idx := file.NewSheet(exportSheet)
	file.DeleteSheet("Sheet1")
	file.SetActiveSheet(idx)

	for i, h := range exportHeaders {
		file.SetCellValue(exportSheet, cell(i, 1), h)
	}
	for r, a := range apps {
		appendApplicationRow(file, r+2, &a)
	}

	if err := file.Write(w); err != nil {
		return 0, fmt.Errorf("write xlsx: %w", err)
	}
	return len(apps), nil
}

func appendApplicationRow(file *excelize.File, row int, a *application.MembershipApplication) {
	notes := ""
	if a.AdminNotes != nil {
		notes = *a.AdminNotes
	}
	values := []any{
		a.ID, a.FullName, a.Email, a.Mobile, a.MedicalCouncilRegNo, a.Qualification,
		a.YearsExperience, a.RegionMembership, a.WorkHospital, a.WorkAddress.DistrictName, a.WorkAddress.StateName,
		string(a.Status), a.SubmittedAt.Format("2006-01-02 15:04"), a.ReviewedBy, a.Number(), notes,
	}
	for i, v := range values {
		file.SetCellValue(exportSheet, cell(i, row), v)
	}
}

// cell converts a zero-based column and one-based row to an A1 reference.
func cell(col, row int) string {
	name := ""
	for col++; col > 0; col = (col - 1) / 26 {
		name = string(rune('A'+(col-1)%26)) + name
	}
	return fmt.Sprintf("%s%d", name, row)
}
