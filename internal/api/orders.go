package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SalesOrdersAPI wraps the sales order endpoints.
type SalesOrdersAPI struct {
	client *Client
}

// List returns a page of sales orders.
func (s *SalesOrdersAPI) List(ctx context.Context, opts ListOptions) ([]SalesOrder, *Meta, error) {
	var orders []SalesOrder
	meta, err := s.client.doEnveloped(ctx, http.MethodGet, BasePath+"/sales-orders", opts.query(), nil, &orders)
	if err != nil {
		return nil, nil, err
	}
	return orders, meta, nil
}

// Get returns a single sales order with its lines.
func (s *SalesOrdersAPI) Get(ctx context.Context, id uuid.UUID) (*SalesOrder, error) {
	var order SalesOrder
	if _, err := s.client.doEnveloped(ctx, http.MethodGet, BasePath+"/sales-orders/"+id.String(), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// PurchaseOrdersAPI wraps the purchase order endpoints.
type PurchaseOrdersAPI struct {
	client *Client
}

// List returns a page of purchase orders.
func (p *PurchaseOrdersAPI) List(ctx context.Context, opts ListOptions) ([]PurchaseOrder, *Meta, error) {
	var orders []PurchaseOrder
	meta, err := p.client.doEnveloped(ctx, http.MethodGet, BasePath+"/purchase-orders", opts.query(), nil, &orders)
	if err != nil {
		return nil, nil, err
	}
	return orders, meta, nil
}

// Get returns a single purchase order with its lines.
func (p *PurchaseOrdersAPI) Get(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error) {
	var order PurchaseOrder
	if _, err := p.client.doEnveloped(ctx, http.MethodGet, BasePath+"/purchase-orders/"+id.String(), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
