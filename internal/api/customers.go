package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CustomersAPI wraps the CRM customer endpoints.
type CustomersAPI struct {
	client *Client
}

// List returns a page of customers.
func (c *CustomersAPI) List(ctx context.Context, opts ListOptions) ([]Customer, *Meta, error) {
	var customers []Customer
	meta, err := c.client.doEnveloped(ctx, http.MethodGet, BasePath+"/customers", opts.query(), nil, &customers)
	if err != nil {
		return nil, nil, err
	}
	return customers, meta, nil
}

// Get returns a single customer by ID.
func (c *CustomersAPI) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	var customer Customer
	if _, err := c.client.doEnveloped(ctx, http.MethodGet, BasePath+"/customers/"+id.String(), nil, nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create creates a customer from a validated form.
func (c *CustomersAPI) Create(ctx context.Context, form *CustomerForm) (*Customer, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var customer Customer
	if _, err := c.client.doEnveloped(ctx, http.MethodPost, BasePath+"/customers", nil, form, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update updates a customer from a validated form.
func (c *CustomersAPI) Update(ctx context.Context, id uuid.UUID, form *CustomerForm) (*Customer, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var customer Customer
	if _, err := c.client.doEnveloped(ctx, http.MethodPut, BasePath+"/customers/"+id.String(), nil, form, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Delete removes a customer.
func (c *CustomersAPI) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := c.client.doEnveloped(ctx, http.MethodDelete, BasePath+"/customers/"+id.String(), nil, nil, nil)
	return err
}
