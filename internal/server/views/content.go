package views

import "github.com/mamadbah2/epd-dashboard/internal/domain/models"

// ProcessesView lists the process steps.
type ProcessesView struct {
	Processes []models.Process
}

// ProcessView is a process with its meter inputs and yearly efficiency.
type ProcessView struct {
	Process    *models.Process
	Inputs     []models.MeterOnProcess
	Efficiency []models.AnnualEfficiencyRow
	Summary    models.EfficiencySummary
	Year       int
	Years      []int
}

// ProductsView is the material catalog with its import and edit forms.
// ImportOpen and EditID keep a form open after a failed submission.
type ProductsView struct {
	Products   []models.Product
	ImportOpen bool
	ImportCode string
	EditID     string
}

// ProductView is one material with the component codes used under it.
type ProductView struct {
	Product        *models.Product
	ComponentCodes []string
}

// ComponentsView is a product's bill of materials, flattened in tree order.
type ComponentsView struct {
	ProductID string
	Rows      []*models.ComponentNode
}

// RoutingsView is a product's routing table and the routing upload form.
type RoutingsView struct {
	ProductID string
	Routings  []models.Routing
}

// QualityHoursView is a product's quality hours report with its totals.
type QualityHoursView struct {
	ProductID string
	Rows      []models.QualityHoursRow
	Totals    models.QualityTotals
}
