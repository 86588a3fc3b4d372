package resources

import (
	"context"
	"io"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

// RoutingService handles bulk routing imports.
type RoutingService struct {
	client *epdapi.Client
}

// NewRoutingService wires a routing facade.
func NewRoutingService(client *epdapi.Client) *RoutingService {
	return &RoutingService{client: client}
}

// ImportFile replaces the routings of the product with the given code from an
// uploaded spreadsheet, sent as the multipart field "file".
func (s *RoutingService) ImportFile(ctx context.Context, productCode, filename string, file io.Reader) (*models.RoutingImportResult, error) {
	result, err := epdapi.Upload[models.RoutingImportResult](ctx, s.client, "/routings/import/product/"+seg(productCode), epdapi.FilePart{
		Field:    "file",
		Filename: filename,
		Reader:   file,
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return &models.RoutingImportResult{}, nil
	}
	return result, nil
}
