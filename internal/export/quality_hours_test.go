package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
)

func strp(s string) *string { return &s }

func TestQualityHoursWorkbook(t *testing.T) {
	rows := []models.QualityHoursRow{
		{OperationDescription: strp("Cutting"), WorkCenterCode: strp("WC1"), IsPrimary: true,
			SetupOperatorHours: 1, SetupMachineHours: 3, OperatorHours: 5, MachineHours: 7},
		{WorkCenterDescription: strp("Press"),
			SetupOperatorHours: 2, SetupMachineHours: 4, OperatorHours: 6, MachineHours: 8},
	}

	workbook, err := QualityHours(rows)
	require.NoError(t, err)
	buf, err := workbook.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, workbook.Close())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(qualitySheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Operation", cell("A1"))
	assert.Equal(t, "Cutting", cell("A2"))
	assert.Equal(t, "WC1", cell("B2"))
	assert.Equal(t, "Yes", cell("E2"))
	assert.Equal(t, "-", cell("A3"))
	assert.Equal(t, "Press", cell("B3"))
	assert.Equal(t, "Total", cell("A4"))
	assert.Equal(t, "3", cell("F4"))
	assert.Equal(t, "15", cell("I4"))
	assert.Equal(t, "Total Operator Hours", cell("A6"))
	assert.Equal(t, "14", cell("B6"))
	assert.Equal(t, "22", cell("B7"))
	assert.Equal(t, "36", cell("B8"))
}

func TestQualityHoursFilename(t *testing.T) {
	assert.Equal(t, "quality-hours-MAT-1.xlsx", QualityHoursFilename("MAT-1"))
	assert.Equal(t, "quality-hours-A_B.xlsx", QualityHoursFilename("A/B"))
	assert.Equal(t, "quality-hours-product.xlsx", QualityHoursFilename(""))
}
