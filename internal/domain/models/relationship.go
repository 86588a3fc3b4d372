package models

import "time"

// ProcessSummary is the slice of a process embedded in relationship rows.
type ProcessSummary struct {
	ID         string `json:"id"`
	StepNumber int    `json:"stepNumber"`
	Name       string `json:"name"`
}

// MeterSummary is the slice of a meter embedded in relationship rows.
type MeterSummary struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Unit    string `json:"unit"`
	Section string `json:"section"`
}

// MeterOnProcess links a meter to a process with the fraction of the meter's
// consumption attributed to that step.
type MeterOnProcess struct {
	ID               string         `json:"id"`
	ProcessID        string         `json:"processId"`
	MeterID          string         `json:"meterId"`
	AllocationFactor float64        `json:"allocationFactor"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	Process          ProcessSummary `json:"process"`
	Meter            MeterSummary   `json:"meter"`
}

// AllocationPercent is the allocation factor expressed as a percentage.
func (m MeterOnProcess) AllocationPercent() float64 {
	return m.AllocationFactor * 100
}

// FilterByProcess keeps the relationships whose process id equals processID.
func FilterByProcess(rels []MeterOnProcess, processID string) []MeterOnProcess {
	out := make([]MeterOnProcess, 0, len(rels))
	for _, rel := range rels {
		if rel.ProcessID == processID {
			out = append(out, rel)
		}
	}
	return out
}
