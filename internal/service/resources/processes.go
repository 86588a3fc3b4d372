package resources

import (
	"context"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

// ProcessService reads manufacturing process steps.
type ProcessService struct {
	client *epdapi.Client
}

// NewProcessService wires a process facade.
func NewProcessService(client *epdapi.Client) *ProcessService {
	return &ProcessService{client: client}
}

// List returns the first page of processes.
func (s *ProcessService) List(ctx context.Context) (*models.Page[models.Process], error) {
	page, err := epdapi.Get[models.Page[models.Process]](ctx, s.client, "/processes", limitQuery())
	if err != nil {
		return nil, err
	}
	if page == nil {
		return &models.Page[models.Process]{}, nil
	}
	return page, nil
}

// Get returns a single process.
func (s *ProcessService) Get(ctx context.Context, id string) (*models.Process, error) {
	return epdapi.Get[models.Process](ctx, s.client, "/processes/"+seg(id), nil)
}
