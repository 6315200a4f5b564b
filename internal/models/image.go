package models

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	ID  uuid.UUID `json:"id" db:"id"`
	URL string    `json:"url" db:"url"`
	// StorageKey is set only for binaries uploaded to our object store.
	StorageKey *string   `json:"storage_key,omitempty" db:"storage_key"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
