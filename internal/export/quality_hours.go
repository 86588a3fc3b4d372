// Package export renders dashboard reports as spreadsheets.
package export

import (
	"fmt"
	"regexp"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
)

// ContentType is the MIME type of the workbooks written here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const qualitySheet = "Quality Hours"

var qualityHeaders = []string{
	"Operation", "Work Center", "Cost Center", "Material", "Primary",
	"Setup Operator (h)", "Setup Machine (h)", "Operator (h)", "Machine (h)",
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// QualityHoursFilename is the download name for a product's report.
func QualityHoursFilename(productCode string) string {
	code := unsafeFilename.ReplaceAllString(productCode, "_")
	if code == "" {
		code = "product"
	}
	return fmt.Sprintf("quality-hours-%s.xlsx", code)
}

// QualityHours builds a workbook with one row per report line followed by
// the column totals and the derived operator, machine and grand totals.
func QualityHours(rows []models.QualityHoursRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", qualitySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, h := range qualityHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(qualitySheet, cell, h)
		f.SetCellStyle(qualitySheet, cell, cell, headerStyle)
	}

	for i, r := range rows {
		row := i + 2
		primary := "No"
		if r.IsPrimary {
			primary = "Yes"
		}
		values := []any{
			r.OperationLabel(),
			r.WorkCenterLabel(),
			deref(r.CostCenterDescription, r.CostCenterCode),
			deref(r.MaterialDescription, r.MaterialCode),
			primary,
			r.SetupOperatorHours,
			r.SetupMachineHours,
			r.OperatorHours,
			r.MachineHours,
		}
		if err := f.SetSheetRow(qualitySheet, fmt.Sprintf("A%d", row), &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
	}

	totals := models.ComputeQualityTotals(rows)
	summaryStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	summaryRow := len(rows) + 2
	f.SetCellValue(qualitySheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(qualitySheet, fmt.Sprintf("F%d", summaryRow), totals.SetupOperator)
	f.SetCellValue(qualitySheet, fmt.Sprintf("G%d", summaryRow), totals.SetupMachine)
	f.SetCellValue(qualitySheet, fmt.Sprintf("H%d", summaryRow), totals.Operator)
	f.SetCellValue(qualitySheet, fmt.Sprintf("I%d", summaryRow), totals.Machine)
	f.SetCellStyle(qualitySheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("I%d", summaryRow), summaryStyle)

	derived := []struct {
		label string
		value float64
	}{
		{"Total Operator Hours", totals.TotalOperator},
		{"Total Machine Hours", totals.TotalMachine},
		{"Grand Total", totals.GrandTotal},
	}
	for i, d := range derived {
		row := summaryRow + 2 + i
		f.SetCellValue(qualitySheet, fmt.Sprintf("A%d", row), d.label)
		f.SetCellValue(qualitySheet, fmt.Sprintf("B%d", row), d.value)
		f.SetCellStyle(qualitySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), summaryStyle)
	}

	colWidths := []float64{28, 24, 24, 28, 9, 18, 18, 14, 14}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(qualitySheet, col, col, w)
	}

	return f, nil
}

func deref(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return "-"
}
