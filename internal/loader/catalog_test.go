package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/internal/notify"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

type fakeStore struct {
	products []models.Product
	failWith error
}

func (f *fakeStore) List(context.Context) (*models.Page[models.Product], error) {
	return &models.Page[models.Product]{Data: append([]models.Product(nil), f.products...)}, nil
}

func (f *fakeStore) ImportByCode(_ context.Context, code string) (*models.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, p := range f.products {
		if p.ProductCode == code {
			return nil, &epdapi.HTTPError{Status: 409, Message: "Product code already exists", Kind: "Conflict"}
		}
	}
	desc := "Imported " + code
	p := models.Product{ID: "id-" + code, ProductCode: code, ProductDescription: &desc}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeStore) Update(_ context.Context, id string, input models.UpdateProductInput) (*models.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i, p := range f.products {
		if p.ID == id {
			if input.ProductDescription != nil {
				p.ProductDescription = input.ProductDescription
			}
			f.products[i] = p
			return &p, nil
		}
	}
	return nil, &epdapi.HTTPError{Status: 404, Message: "Product not found"}
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return &epdapi.HTTPError{Status: 404, Message: "Product not found"}
}

func seededStore() *fakeStore {
	a, b := "Valve", "Pump"
	return &fakeStore{products: []models.Product{
		{ID: "1", ProductCode: "MAT-1", ProductDescription: &a},
		{ID: "2", ProductCode: "MAT-2", ProductDescription: &b},
	}}
}

func TestCatalogUpdateRoundTrip(t *testing.T) {
	store := seededStore()
	catalog := NewProductCatalog(store, nil)
	catalog.Load(context.Background(), None{})

	desc := "X"
	_, err := catalog.Update(context.Background(), "1", models.UpdateProductInput{ProductDescription: &desc})
	require.NoError(t, err)

	local := catalog.Snapshot().Data
	refreshed := catalog.Refetch(context.Background()).Data

	for _, list := range [][]models.Product{local, refreshed} {
		var matches []models.Product
		for _, p := range list {
			if p.ID == "1" {
				matches = append(matches, p)
			}
		}
		require.Len(t, matches, 1)
		assert.Equal(t, "X", matches[0].Description())
		assert.Equal(t, "MAT-1", matches[0].ProductCode)
		assert.Len(t, list, 2)
	}
}

func TestCatalogDuplicateImportLeavesListUnchanged(t *testing.T) {
	flash := notify.NewFlash()
	catalog := NewProductCatalog(seededStore(), flash)
	before := catalog.Load(context.Background(), None{}).Data

	_, err := catalog.Import(context.Background(), "MAT-1")

	require.Error(t, err)
	assert.True(t, epdapi.IsConflict(err))
	assert.Equal(t, before, catalog.Snapshot().Data)
	require.Len(t, flash.Notices(), 1)
	assert.Equal(t, "Product code already exists", flash.Notices()[0].Description)
}

func TestCatalogImportAppends(t *testing.T) {
	flash := notify.NewFlash()
	catalog := NewProductCatalog(seededStore(), flash)
	catalog.Load(context.Background(), None{})

	product, err := catalog.Import(context.Background(), "MAT-3")
	require.NoError(t, err)

	data := catalog.Snapshot().Data
	require.Len(t, data, 3)
	assert.Equal(t, product.ID, data[2].ID)
	assert.Equal(t, `The product "Imported MAT-3" was added.`, flash.Notices()[0].Description)
}

func TestCatalogDeleteRemovesAndPropagatesFailure(t *testing.T) {
	store := seededStore()
	catalog := NewProductCatalog(store, nil)
	catalog.Load(context.Background(), None{})

	require.NoError(t, catalog.Delete(context.Background(), "2"))
	assert.Len(t, catalog.Snapshot().Data, 1)

	store.failWith = errors.New("network down")
	err := catalog.Delete(context.Background(), "1")
	require.Error(t, err)
	assert.Len(t, catalog.Snapshot().Data, 1)
}
