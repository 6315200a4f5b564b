package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Title     string          `json:"title" db:"title"`
	Handle    string          `json:"handle" db:"handle"`
	Price     decimal.Decimal `json:"price" db:"price"`
	ImageID   *uuid.UUID      `json:"image_id" db:"image_id"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`

	// Loaded on request (?with[]=image, show, update)
	Image *Image `json:"image,omitempty" db:"-"`
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Title      *string          `json:"title,omitempty"`
	Handle     *string          `json:"handle,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	ImageID    *uuid.UUID       `json:"image_id,omitempty"`
	ClearImage bool             `json:"-"`
}
