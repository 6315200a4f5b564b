package repositories

import (
	"context"

	"github.com/mandic19/Shop/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Image, error)
	Update(ctx context.Context, image *models.Image) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Image, error)
	Count(ctx context.Context) (int, error)
	ListStorageKeys(ctx context.Context) ([]string, error)
	DeleteAll(ctx context.Context) error
}

type imageRepo struct {
	db DBTX
}

func NewImageRepo(db DBTX) ImageRepository {
	return &imageRepo{db: db}
}

func scanImage(row pgx.Row, image *models.Image) error {
	return row.Scan(&image.ID, &image.URL, &image.StorageKey, &image.CreatedAt, &image.UpdatedAt)
}

func (r *imageRepo) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (id, url, storage_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, image.ID, image.URL, image.StorageKey, image.CreatedAt, image.UpdatedAt)
	return err
}

func (r *imageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	query := `
		SELECT id, url, storage_key, created_at, updated_at
		FROM images
		WHERE id = $1
	`
	image := &models.Image{}
	if err := scanImage(r.db.QueryRow(ctx, query, id), image); err != nil {
		return nil, err
	}
	return image, nil
}

func (r *imageRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Image, error) {
	images := []*models.Image{}
	if len(ids) == 0 {
		return images, nil
	}
	query := `
		SELECT id, url, storage_key, created_at, updated_at
		FROM images
		WHERE id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		image := &models.Image{}
		if err := scanImage(rows, image); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *imageRepo) Update(ctx context.Context, image *models.Image) error {
	query := `
		UPDATE images
		SET url = $1, storage_key = $2, updated_at = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, image.URL, image.StorageKey, image.UpdatedAt, image.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *imageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *imageRepo) List(ctx context.Context, limit, offset int) ([]*models.Image, error) {
	query := `
		SELECT id, url, storage_key, created_at, updated_at
		FROM images
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []*models.Image{}
	for rows.Next() {
		image := &models.Image{}
		if err := scanImage(rows, image); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *imageRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM images`).Scan(&count)
	return count, err
}

// ListStorageKeys returns every object key still referenced by an image row.
func (r *imageRepo) ListStorageKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT storage_key FROM images WHERE storage_key IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *imageRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM images`)
	return err
}
