package models

import "time"

// Product is a material in the catalog, identified by its immutable business code.
type Product struct {
	ID                 string    `json:"id"`
	ProductCode        string    `json:"productCode"`
	ProductDescription *string   `json:"productDescription,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Description returns the product description or an empty string.
func (p Product) Description() string {
	if p.ProductDescription == nil {
		return ""
	}
	return *p.ProductDescription
}

// UpdateProductInput is the partial update accepted by the backend. Only the
// description can change; the code is fixed at import time.
type UpdateProductInput struct {
	ProductDescription *string `json:"productDescription,omitempty"`
}
