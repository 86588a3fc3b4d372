package resources

import (
	"context"
	"strconv"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

// ReportService reads backend-computed reports.
type ReportService struct {
	client *epdapi.Client
}

// NewReportService wires a report facade.
func NewReportService(client *epdapi.Client) *ReportService {
	return &ReportService{client: client}
}

// AnnualEfficiency returns the monthly energy efficiency rows of a process for a year.
func (s *ReportService) AnnualEfficiency(ctx context.Context, year int, processID string) ([]models.AnnualEfficiencyRow, error) {
	rows, err := epdapi.Get[[]models.AnnualEfficiencyRow](ctx, s.client, "/reports/annual-efficiency", map[string]string{
		"year":      strconv.Itoa(year),
		"processId": processID,
	})
	if err != nil || rows == nil {
		return nil, err
	}
	return *rows, nil
}
