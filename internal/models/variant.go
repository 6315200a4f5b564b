package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxVariantsPerProduct caps how many variants a single product may hold.
const MaxVariantsPerProduct = 2000

type Variant struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	ProductID uuid.UUID       `json:"product_id" db:"product_id"`
	Handle    string          `json:"handle" db:"handle"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`

	Product *Product `json:"product,omitempty" db:"-"`
}

type VariantUpdate struct {
	Handle *string          `json:"handle,omitempty"`
	Price  *decimal.Decimal `json:"price,omitempty"`
}
