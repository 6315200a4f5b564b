package repositories

import (
	"context"

	"github.com/mandic19/Shop/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VariantImageRepository interface {
	Create(ctx context.Context, variantImage *models.VariantImage) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.VariantImage, error)
	GetByVariantAndImage(ctx context.Context, variantID, imageID uuid.UUID) (*models.VariantImage, error)
	ListByVariantID(ctx context.Context, variantID uuid.UUID) ([]*models.VariantImage, error)
	Update(ctx context.Context, variantImage *models.VariantImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByVariantID(ctx context.Context, variantID uuid.UUID) (int, error)
	MaxPosition(ctx context.Context, variantID uuid.UUID) (int, error)
	DeleteAll(ctx context.Context) error
}

type variantImageRepo struct {
	db DBTX
}

func NewVariantImageRepo(db DBTX) VariantImageRepository {
	return &variantImageRepo{db: db}
}

func scanVariantImage(row pgx.Row, vi *models.VariantImage) error {
	return row.Scan(&vi.ID, &vi.VariantID, &vi.ImageID, &vi.Position, &vi.CreatedAt, &vi.UpdatedAt)
}

func (r *variantImageRepo) Create(ctx context.Context, vi *models.VariantImage) error {
	query := `
		INSERT INTO variant_images (id, variant_id, image_id, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, vi.ID, vi.VariantID, vi.ImageID, vi.Position, vi.CreatedAt, vi.UpdatedAt)
	return err
}

func (r *variantImageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.VariantImage, error) {
	query := `
		SELECT id, variant_id, image_id, position, created_at, updated_at
		FROM variant_images
		WHERE id = $1
	`
	vi := &models.VariantImage{}
	if err := scanVariantImage(r.db.QueryRow(ctx, query, id), vi); err != nil {
		return nil, err
	}
	return vi, nil
}

func (r *variantImageRepo) GetByVariantAndImage(ctx context.Context, variantID, imageID uuid.UUID) (*models.VariantImage, error) {
	query := `
		SELECT id, variant_id, image_id, position, created_at, updated_at
		FROM variant_images
		WHERE variant_id = $1 AND image_id = $2
	`
	vi := &models.VariantImage{}
	if err := scanVariantImage(r.db.QueryRow(ctx, query, variantID, imageID), vi); err != nil {
		return nil, err
	}
	return vi, nil
}

func (r *variantImageRepo) ListByVariantID(ctx context.Context, variantID uuid.UUID) ([]*models.VariantImage, error) {
	query := `
		SELECT id, variant_id, image_id, position, created_at, updated_at
		FROM variant_images
		WHERE variant_id = $1
		ORDER BY position ASC, created_at ASC
	`
	rows, err := r.db.Query(ctx, query, variantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variantImages := []*models.VariantImage{}
	for rows.Next() {
		vi := &models.VariantImage{}
		if err := scanVariantImage(rows, vi); err != nil {
			return nil, err
		}
		variantImages = append(variantImages, vi)
	}
	return variantImages, rows.Err()
}

func (r *variantImageRepo) Update(ctx context.Context, vi *models.VariantImage) error {
	query := `
		UPDATE variant_images
		SET variant_id = $1, image_id = $2, position = $3, updated_at = $4
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, vi.VariantID, vi.ImageID, vi.Position, vi.UpdatedAt, vi.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *variantImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM variant_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *variantImageRepo) CountByVariantID(ctx context.Context, variantID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM variant_images WHERE variant_id = $1`, variantID).Scan(&count)
	return count, err
}

func (r *variantImageRepo) MaxPosition(ctx context.Context, variantID uuid.UUID) (int, error) {
	var position int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(position), 0) FROM variant_images WHERE variant_id = $1`, variantID).Scan(&position)
	return position, err
}

func (r *variantImageRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM variant_images`)
	return err
}
