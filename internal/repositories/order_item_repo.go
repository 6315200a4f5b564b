package repositories

import (
	"context"
	"strings"

	"github.com/mandic19/Shop/internal/models"

	"github.com/google/uuid"
)

const orderItemColumnCount = 9

type OrderItemRepository interface {
	// CreateBulk inserts all items in one statement and reports how many
	// rows the database accepted.
	CreateBulk(ctx context.Context, items []*models.OrderItem) (int64, error)
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error)
}

type orderItemRepo struct {
	db DBTX
}

func NewOrderItemRepo(db DBTX) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) CreateBulk(ctx context.Context, items []*models.OrderItem) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO order_items (id, order_id, product_id, variant_id, quantity, unit_price, total_price, created_at, updated_at) VALUES `)
	args := make([]any, 0, len(items)*orderItemColumnCount)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(placeholders(i*orderItemColumnCount+1, orderItemColumnCount))
		args = append(args, item.ID, item.OrderID, item.ProductID, item.VariantID, item.Quantity, item.UnitPrice, item.TotalPrice, item.CreatedAt, item.UpdatedAt)
	}

	tag, err := r.db.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderItemRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, variant_id, quantity, unit_price, total_price, created_at, updated_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orderItems := []*models.OrderItem{}
	for rows.Next() {
		orderItem := &models.OrderItem{}
		if err := rows.Scan(&orderItem.ID, &orderItem.OrderID, &orderItem.ProductID, &orderItem.VariantID, &orderItem.Quantity, &orderItem.UnitPrice, &orderItem.TotalPrice, &orderItem.CreatedAt, &orderItem.UpdatedAt); err != nil {
			return nil, err
		}
		orderItems = append(orderItems, orderItem)
	}
	return orderItems, rows.Err()
}
