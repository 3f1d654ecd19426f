package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ProductsAPI wraps the catalog product endpoints. The session-expiry and
// permission handling happens in the transport pipeline; this layer only
// shapes requests and decodes responses.
type ProductsAPI struct {
	client *Client
}

// List returns a page of products.
func (p *ProductsAPI) List(ctx context.Context, opts ListOptions) ([]Product, *Meta, error) {
	var products []Product
	meta, err := p.client.doEnveloped(ctx, http.MethodGet, BasePath+"/products", opts.query(), nil, &products)
	if err != nil {
		return nil, nil, err
	}
	return products, meta, nil
}

// Get returns a single product by ID.
func (p *ProductsAPI) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	if _, err := p.client.doEnveloped(ctx, http.MethodGet, BasePath+"/products/"+id.String(), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create creates a product from a validated form.
func (p *ProductsAPI) Create(ctx context.Context, form *ProductForm) (*Product, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var product Product
	if _, err := p.client.doEnveloped(ctx, http.MethodPost, BasePath+"/products", nil, form, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update updates a product from a validated form.
func (p *ProductsAPI) Update(ctx context.Context, id uuid.UUID, form *ProductForm) (*Product, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var product Product
	if _, err := p.client.doEnveloped(ctx, http.MethodPut, BasePath+"/products/"+id.String(), nil, form, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product.
func (p *ProductsAPI) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := p.client.doEnveloped(ctx, http.MethodDelete, BasePath+"/products/"+id.String(), nil, nil, nil)
	return err
}
