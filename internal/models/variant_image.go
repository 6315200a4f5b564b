package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxImagesPerVariant caps how many images can be attached to one variant.
const MaxImagesPerVariant = 20

type VariantImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	VariantID uuid.UUID `json:"variant_id" db:"variant_id"`
	ImageID   uuid.UUID `json:"image_id" db:"image_id"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Image *Image `json:"image,omitempty" db:"-"`
}

type VariantImageUpdate struct {
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	ImageID   *uuid.UUID `json:"image_id,omitempty"`
	Position  *int       `json:"position,omitempty"`
}
