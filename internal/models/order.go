package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an immutable purchase record. TotalAmount always equals the sum
// of its items' TotalPrice.
type Order struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`

	Items []*OrderItem `json:"order_items" db:"-"`
}

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity"`
}
