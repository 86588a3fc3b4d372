package resources

import (
	"context"
	"errors"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

// ProductService manages the material catalog and its per-product views.
type ProductService struct {
	client *epdapi.Client
}

// NewProductService wires a product facade.
func NewProductService(client *epdapi.Client) *ProductService {
	return &ProductService{client: client}
}

// List returns the first page of products.
func (s *ProductService) List(ctx context.Context) (*models.Page[models.Product], error) {
	page, err := epdapi.Get[models.Page[models.Product]](ctx, s.client, "/products", limitQuery())
	if err != nil {
		return nil, err
	}
	if page == nil {
		return &models.Page[models.Product]{}, nil
	}
	return page, nil
}

// Get returns a single product.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return epdapi.Get[models.Product](ctx, s.client, "/products/"+seg(id), nil)
}

// ImportByCode asks the backend to create a product from the system of record.
func (s *ProductService) ImportByCode(ctx context.Context, code string) (*models.Product, error) {
	product, err := epdapi.Post[models.Product](ctx, s.client, "/import/product/"+seg(code), nil)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("import returned no product")
	}
	return product, nil
}

// Update applies a partial update and returns the stored product.
func (s *ProductService) Update(ctx context.Context, id string, input models.UpdateProductInput) (*models.Product, error) {
	product, err := epdapi.Put[models.Product](ctx, s.client, "/products/"+seg(id), input)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("update returned no product")
	}
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/products/"+seg(id))
}

// DistinctComponentCodes lists the component codes used under a product code.
func (s *ProductService) DistinctComponentCodes(ctx context.Context, code string) ([]string, error) {
	codes, err := epdapi.Get[[]string](ctx, s.client, "/products/"+seg(code)+"/distinct-component-codes", nil)
	if err != nil || codes == nil {
		return nil, err
	}
	return *codes, nil
}

// Routings lists the routing steps of a product.
func (s *ProductService) Routings(ctx context.Context, productID string) ([]models.Routing, error) {
	routings, err := epdapi.Get[[]models.Routing](ctx, s.client, "/products/"+seg(productID)+"/routings", nil)
	if err != nil || routings == nil {
		return nil, err
	}
	return *routings, nil
}

// QualityHoursReport returns the backend-computed quality hours rows of a product.
func (s *ProductService) QualityHoursReport(ctx context.Context, productID string) ([]models.QualityHoursRow, error) {
	rows, err := epdapi.Get[[]models.QualityHoursRow](ctx, s.client, "/products/"+seg(productID)+"/quality-hours-report", nil)
	if err != nil || rows == nil {
		return nil, err
	}
	return *rows, nil
}
