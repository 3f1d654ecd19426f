package api

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/client/internal/domain/shared"
)

// validate checks form structs before any request leaves the client, so the
// user gets immediate feedback on malformed input.
var validate = validator.New(validator.WithRequiredStructEnabled())

// checkForm runs validation and maps failures onto the domain error taxonomy.
func checkForm(form any) error {
	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("%w: field %q fails rule %q", shared.ErrInvalidInput, first.Field(), first.Tag())
		}
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

// ListOptions carries pagination for list endpoints.
type ListOptions struct {
	Page     int
	PageSize int
	Search   string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(o.PageSize))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	return q
}

// =====================
// Product DTOs
// =====================

// Product is a catalog product as returned by the backend.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductForm is the create/update payload for a product.
type ProductForm struct {
	Code        string          `json:"code" validate:"required,max=64"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description,omitempty" validate:"max=2000"`
	Unit        string          `json:"unit,omitempty" validate:"max=16"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
}

// Validate checks the form client-side before submission.
func (f *ProductForm) Validate() error {
	if err := checkForm(f); err != nil {
		return err
	}
	if f.Price.IsNegative() || f.Cost.IsNegative() {
		return fmt.Errorf("%w: price and cost cannot be negative", shared.ErrInvalidInput)
	}
	return nil
}

// =====================
// Customer DTOs
// =====================

// Customer is a CRM customer as returned by the backend.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Level     string    `json:"level,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerForm is the create/update payload for a customer.
type CustomerForm struct {
	Code  string `json:"code" validate:"required,max=64"`
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Phone string `json:"phone,omitempty" validate:"omitempty,min=5,max=32"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// Validate checks the form client-side before submission.
func (f *CustomerForm) Validate() error {
	return checkForm(f)
}

// =====================
// Order DTOs
// =====================

// OrderItem is a single line of a sales or purchase order.
type OrderItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// SalesOrder is a sales order as returned by the backend.
type SalesOrder struct {
	ID          uuid.UUID       `json:"id"`
	OrderNo     string          `json:"order_no"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItem     `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PurchaseOrder is a purchase order as returned by the backend.
type PurchaseOrder struct {
	ID          uuid.UUID       `json:"id"`
	OrderNo     string          `json:"order_no"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItem     `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
