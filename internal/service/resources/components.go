package resources

import (
	"context"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

// ComponentService reads bill-of-materials lines.
type ComponentService struct {
	client *epdapi.Client
}

// NewComponentService wires a component facade.
func NewComponentService(client *epdapi.Client) *ComponentService {
	return &ComponentService{client: client}
}

// ListByProduct returns every component of a product.
func (s *ComponentService) ListByProduct(ctx context.Context, productID string) ([]models.Component, error) {
	components, err := epdapi.Get[[]models.Component](ctx, s.client, "/components/product/"+seg(productID), nil)
	if err != nil || components == nil {
		return nil, err
	}
	return *components, nil
}
