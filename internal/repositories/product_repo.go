package repositories

import (
	"context"

	"github.com/mandic19/Shop/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetByHandle(ctx context.Context, handle string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	DeleteAll(ctx context.Context) error
}

type productRepo struct {
	db DBTX
}

func NewProductRepo(db DBTX) ProductRepository {
	return &productRepo{db: db}
}

func scanProduct(row pgx.Row, product *models.Product) error {
	return row.Scan(&product.ID, &product.Title, &product.Handle, &product.Price, &product.ImageID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, title, handle, price, image_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.Title, product.Handle, product.Price, product.ImageID, product.CreatedAt, product.UpdatedAt)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, title, handle, price, image_id, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	if err := scanProduct(r.db.QueryRow(ctx, query, id), product); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) GetByHandle(ctx context.Context, handle string) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, title, handle, price, image_id, created_at, updated_at
		FROM products
		WHERE handle = $1
	`
	if err := scanProduct(r.db.QueryRow(ctx, query, handle), product); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET title = $1, handle = $2, price = $3, image_id = $4, updated_at = $5
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query, product.Title, product.Handle, product.Price, product.ImageID, product.UpdatedAt, product.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT id, title, handle, price, image_id, created_at, updated_at
		FROM products
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		product := &models.Product{}
		if err := scanProduct(rows, product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM products`)
	return err
}
