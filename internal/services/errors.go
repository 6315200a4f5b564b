package services

import "errors"

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrVariantNotFound      = errors.New("variant not found")
	ErrImageNotFound        = errors.New("image not found")
	ErrVariantImageNotFound = errors.New("variant image not found")
	ErrOrderNotFound        = errors.New("order not found")

	// ErrOrderItemsInsert means the bulk insert failed or stored fewer rows
	// than requested. The surrounding transaction is rolled back.
	ErrOrderItemsInsert = errors.New("failed to create order items")

	// ErrProductInUse is returned when order items still reference a product.
	ErrProductInUse = errors.New("product is referenced by existing orders")
)
