package repositories

import (
	"context"
	"fmt"

	"github.com/mandic19/Shop/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VariantRepository interface {
	Create(ctx context.Context, variant *models.Variant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Variant, error)
	GetByHandle(ctx context.Context, handle string) (*models.Variant, error)
	Update(ctx context.Context, variant *models.Variant) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, productID *uuid.UUID, limit, offset int) ([]*models.Variant, error)
	CountByProductID(ctx context.Context, productID uuid.UUID) (int, error)
	DeleteAll(ctx context.Context) error
}

type variantRepo struct {
	db DBTX
}

func NewVariantRepo(db DBTX) VariantRepository {
	return &variantRepo{db: db}
}

func scanVariant(row pgx.Row, variant *models.Variant) error {
	return row.Scan(&variant.ID, &variant.ProductID, &variant.Handle, &variant.Price, &variant.CreatedAt, &variant.UpdatedAt)
}

func (r *variantRepo) Create(ctx context.Context, variant *models.Variant) error {
	query := `
		INSERT INTO variants (id, product_id, handle, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, variant.ID, variant.ProductID, variant.Handle, variant.Price, variant.CreatedAt, variant.UpdatedAt)
	return err
}

func (r *variantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	variant := &models.Variant{}
	query := `
		SELECT id, product_id, handle, price, created_at, updated_at
		FROM variants
		WHERE id = $1
	`
	if err := scanVariant(r.db.QueryRow(ctx, query, id), variant); err != nil {
		return nil, err
	}
	return variant, nil
}

func (r *variantRepo) GetByHandle(ctx context.Context, handle string) (*models.Variant, error) {
	variant := &models.Variant{}
	query := `
		SELECT id, product_id, handle, price, created_at, updated_at
		FROM variants
		WHERE handle = $1
	`
	if err := scanVariant(r.db.QueryRow(ctx, query, handle), variant); err != nil {
		return nil, err
	}
	return variant, nil
}

func (r *variantRepo) Update(ctx context.Context, variant *models.Variant) error {
	query := `
		UPDATE variants
		SET handle = $1, price = $2, updated_at = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, variant.Handle, variant.Price, variant.UpdatedAt, variant.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *variantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM variants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *variantRepo) List(ctx context.Context, productID *uuid.UUID, limit, offset int) ([]*models.Variant, error) {
	queryBase := `
		SELECT id, product_id, handle, price, created_at, updated_at
		FROM variants
	`
	args := []any{}
	if productID != nil {
		args = append(args, *productID)
		queryBase += fmt.Sprintf(" WHERE product_id = $%d", len(args))
	}
	args = append(args, limit, offset)
	queryBase += fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variants := []*models.Variant{}
	for rows.Next() {
		variant := &models.Variant{}
		if err := scanVariant(rows, variant); err != nil {
			return nil, err
		}
		variants = append(variants, variant)
	}
	return variants, rows.Err()
}

func (r *variantRepo) CountByProductID(ctx context.Context, productID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM variants WHERE product_id = $1`, productID).Scan(&count)
	return count, err
}

func (r *variantRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM variants`)
	return err
}
