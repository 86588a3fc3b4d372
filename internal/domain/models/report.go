package models

// AnnualEfficiencyRow is one month of a process's energy efficiency report.
// EnergyPerHour is nil when the month has no recorded hours.
type AnnualEfficiencyRow struct {
	ProcessID     string   `json:"processId"`
	StepNumber    int      `json:"stepNumber"`
	Month         string   `json:"month"`
	TotalHours    float64  `json:"totalHours"`
	TotalEnergy   float64  `json:"totalEnergy"`
	EnergyPerHour *float64 `json:"energyPerHour"`
}

// EfficiencySummary aggregates a year of efficiency rows.
type EfficiencySummary struct {
	TotalHours    float64
	TotalEnergy   float64
	EnergyPerHour *float64
	Months        int
}

// SummarizeEfficiency totals hours and energy across rows. The overall
// energy-per-hour is nil when no hours were recorded.
func SummarizeEfficiency(rows []AnnualEfficiencyRow) EfficiencySummary {
	var s EfficiencySummary
	for _, row := range rows {
		s.TotalHours += row.TotalHours
		s.TotalEnergy += row.TotalEnergy
		s.Months++
	}
	if s.TotalHours > 0 {
		perHour := s.TotalEnergy / s.TotalHours
		s.EnergyPerHour = &perHour
	}
	return s
}

// QualityHoursRow is one work-center/operation line of a product's quality hours report.
type QualityHoursRow struct {
	ProductID             string  `json:"productId"`
	ProductCode           string  `json:"productCode"`
	ProductDescription    string  `json:"productDescription"`
	OperationDescription  *string `json:"operationDescription"`
	WorkCenterCode        *string `json:"workCenterCode"`
	WorkCenterDescription *string `json:"workCenterDescription"`
	CostCenterCode        *string `json:"costCenterCode"`
	CostCenterDescription *string `json:"costCenterDescription"`
	MaterialCode          *string `json:"materialCode"`
	MaterialDescription   *string `json:"materialDescription"`
	IsPrimary             bool    `json:"isPrimary"`
	SetupOperatorHours    float64 `json:"setupOperatorHoursApi"`
	MachineHours          float64 `json:"machineHoursApi"`
	OperatorHours         float64 `json:"operatorHoursApi"`
	SetupMachineHours     float64 `json:"setupMachineHoursApi"`
}

// WorkCenterLabel prefers the work center description, then its code, then "-".
func (r QualityHoursRow) WorkCenterLabel() string {
	return firstNonEmpty(r.WorkCenterDescription, r.WorkCenterCode)
}

// OperationLabel is the operation description or "-".
func (r QualityHoursRow) OperationLabel() string {
	return firstNonEmpty(r.OperationDescription)
}

// QualityTotals are the column and derived totals of a quality hours report.
type QualityTotals struct {
	SetupOperator float64
	SetupMachine  float64
	Operator      float64
	Machine       float64
	TotalOperator float64
	TotalMachine  float64
	GrandTotal    float64
}

// ComputeQualityTotals sums the four hour columns. Operator time includes setup
// operator time and machine time includes setup machine time.
func ComputeQualityTotals(rows []QualityHoursRow) QualityTotals {
	var t QualityTotals
	for _, row := range rows {
		t.SetupOperator += row.SetupOperatorHours
		t.SetupMachine += row.SetupMachineHours
		t.Operator += row.OperatorHours
		t.Machine += row.MachineHours
	}
	t.TotalOperator = t.SetupOperator + t.Operator
	t.TotalMachine = t.SetupMachine + t.Machine
	t.GrandTotal = t.TotalOperator + t.TotalMachine
	return t
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return "-"
}
