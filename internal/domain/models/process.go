package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Process is one manufacturing step of the EPD workflow.
type Process struct {
	ID          string    `json:"id"`
	StepNumber  int       `json:"stepNumber"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DisplayName is the process name with underscores rendered as spaces.
func (p Process) DisplayName() string {
	return strings.ReplaceAll(p.Name, "_", " ")
}

// Label is the sidebar text, e.g. "3. Heat Treatment".
func (p Process) Label() string {
	return fmt.Sprintf("%d. %s", p.StepNumber, p.DisplayName())
}

// SortByStep returns a copy of processes ordered by ascending step number.
// Processes sharing a step number keep their relative order.
func SortByStep(processes []Process) []Process {
	sorted := make([]Process, len(processes))
	copy(sorted, processes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StepNumber < sorted[j].StepNumber
	})
	return sorted
}
