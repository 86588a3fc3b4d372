package resources

import (
	"context"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

// RelationshipService reads links between meters and processes.
type RelationshipService struct {
	client *epdapi.Client
}

// NewRelationshipService wires a relationship facade.
func NewRelationshipService(client *epdapi.Client) *RelationshipService {
	return &RelationshipService{client: client}
}

// MetersOnProcesses returns every meter/process link.
func (s *RelationshipService) MetersOnProcesses(ctx context.Context) ([]models.MeterOnProcess, error) {
	rels, err := epdapi.Get[[]models.MeterOnProcess](ctx, s.client, "/relationships/meters-processes", nil)
	if err != nil || rels == nil {
		return nil, err
	}
	return *rels, nil
}
