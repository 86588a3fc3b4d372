package loader

import (
	"context"
	"fmt"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/internal/notify"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

// ProductStore is the part of the product service the catalog mutates through.
type ProductStore interface {
	List(ctx context.Context) (*models.Page[models.Product], error)
	ImportByCode(ctx context.Context, code string) (*models.Product, error)
	Update(ctx context.Context, id string, input models.UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductCatalog is the material list plus the mutations that change it.
// A mutation reconciles the loaded list in place instead of refetching, and
// returns its error so the caller can keep the form open.
type ProductCatalog struct {
	*Loader[None, []models.Product]
	store    ProductStore
	notifier notify.Notifier
}

// NewProductCatalog builds an idle catalog.
func NewProductCatalog(store ProductStore, n notify.Notifier) *ProductCatalog {
	if n == nil {
		n = notify.Discard{}
	}
	fetch := func(ctx context.Context, _ None) ([]models.Product, error) {
		page, err := store.List(ctx)
		if err != nil {
			return nil, err
		}
		return page.Data, nil
	}
	return &ProductCatalog{
		Loader:   New(fetch, n, WithTitle[None, []models.Product]("Error fetching products")),
		store:    store,
		notifier: n,
	}
}

// Import creates a product from its business code and appends it to the list.
func (c *ProductCatalog) Import(ctx context.Context, code string) (*models.Product, error) {
	product, err := c.store.ImportByCode(ctx, code)
	if err != nil {
		c.notifier.Error("Error importing product", epdapi.Message(err))
		return nil, fmt.Errorf("import product %s: %w", code, err)
	}

	c.mutate(func(products []models.Product) []models.Product {
		return append(append([]models.Product(nil), products...), *product)
	})
	c.notifier.Success("Product imported", fmt.Sprintf("The product %q was added.", product.Description()))
	return product, nil
}

// Update changes a product and replaces it in the list.
func (c *ProductCatalog) Update(ctx context.Context, id string, input models.UpdateProductInput) (*models.Product, error) {
	product, err := c.store.Update(ctx, id, input)
	if err != nil {
		c.notifier.Error("Error updating product", epdapi.Message(err))
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}

	c.mutate(func(products []models.Product) []models.Product {
		out := make([]models.Product, len(products))
		for i, p := range products {
			if p.ID == id {
				p = *product
			}
			out[i] = p
		}
		return out
	})
	c.notifier.Success("Product updated", "")
	return product, nil
}

// Delete removes a product and drops it from the list.
func (c *ProductCatalog) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		c.notifier.Error("Error deleting product", epdapi.Message(err))
		return fmt.Errorf("delete product %s: %w", id, err)
	}

	c.mutate(func(products []models.Product) []models.Product {
		out := make([]models.Product, 0, len(products))
		for _, p := range products {
			if p.ID != id {
				out = append(out, p)
			}
		}
		return out
	})
	c.notifier.Success("Product deleted", "")
	return nil
}
