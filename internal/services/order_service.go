package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mandic19/Shop/internal/common"
	"github.com/mandic19/Shop/internal/logging"
	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	// MaxOrderItemQuantity bounds a single line's quantity.
	MaxOrderItemQuantity = 10000
	// MaxOrderItems keeps the bulk item insert under the Postgres bind
	// parameter limit.
	MaxOrderItems = 1000
)

type OrderService interface {
	CreateOrder(ctx context.Context, items []models.OrderItemInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type orderService struct {
	uow           repositories.UnitOfWork
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
}

func NewOrderService(uow repositories.UnitOfWork, orderRepo repositories.OrderRepository, orderItemRepo repositories.OrderItemRepository) OrderService {
	return &orderService{
		uow:           uow,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

// ValidateOrderItems checks the shape of an order request. It never touches
// the store; existence is resolved inside the create transaction.
func ValidateOrderItems(items []models.OrderItemInput) error {
	verr := common.NewValidationError()
	if len(items) == 0 {
		verr.Add("items", "At least one order item is required.")
		return verr
	}
	if len(items) > MaxOrderItems {
		verr.Add("items", fmt.Sprintf("An order may not have more than %d items.", MaxOrderItems))
		return verr
	}

	for i, item := range items {
		prefix := fmt.Sprintf("items.%d", i)
		if item.ProductID == uuid.Nil {
			verr.Add(prefix+".product_id", "Each item must have a product.")
		}
		if item.VariantID != nil && *item.VariantID == uuid.Nil {
			verr.Add(prefix+".variant_id", "The selected variant does not exist.")
		}
		switch {
		case item.Quantity < 1:
			verr.Add(prefix+".quantity", "Quantity must be at least 1.")
		case item.Quantity > MaxOrderItemQuantity:
			verr.Add(prefix+".quantity", fmt.Sprintf("Quantity may not be greater than %d.", MaxOrderItemQuantity))
		}
	}
	return verr.OrNil()
}

// CreateOrder prices every line from the current catalog and persists the
// order with its items atomically. Any failure leaves no rows behind.
func (s *orderService) CreateOrder(ctx context.Context, items []models.OrderItemInput) (*models.Order, error) {
	if err := ValidateOrderItems(items); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error("order transaction rollback failed", "error", rbErr)
		}
	}()

	now := time.Now().UTC()
	totalAmount := decimal.Zero
	orderItems := make([]*models.OrderItem, 0, len(items))

	for _, input := range items {
		product, err := tx.Products().GetByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, input.ProductID)
			}
			return nil, fmt.Errorf("failed to load product %s: %w", input.ProductID, err)
		}

		unitPrice := product.Price
		var variantID *uuid.UUID
		if input.VariantID != nil {
			variant, err := tx.Variants().GetByID(ctx, *input.VariantID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, fmt.Errorf("%w: %s", ErrVariantNotFound, *input.VariantID)
				}
				return nil, fmt.Errorf("failed to load variant %s: %w", *input.VariantID, err)
			}
			unitPrice = variant.Price
			id := variant.ID
			variantID = &id
		}

		totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))
		totalAmount = totalAmount.Add(totalPrice)

		itemID, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate order item id: %w", err)
		}
		orderItems = append(orderItems, &models.OrderItem{
			ID:         itemID,
			ProductID:  product.ID,
			VariantID:  variantID,
			Quantity:   input.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: totalPrice,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order id: %w", err)
	}
	order := &models.Order{
		ID:          orderID,
		TotalAmount: totalAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.Orders().Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range orderItems {
		item.OrderID = order.ID
	}
	inserted, err := tx.OrderItems().CreateBulk(ctx, orderItems)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOrderItemsInsert, err)
	}
	if inserted != int64(len(orderItems)) {
		return nil, fmt.Errorf("%w: inserted %d of %d", ErrOrderItemsInsert, inserted, len(orderItems))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	order.Items = orderItems
	logger.Info("order created", "order_id", order.ID, "items", len(orderItems), "total_amount", totalAmount.StringFixed(2))
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	items, err := s.orderItemRepo.ListByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}
