package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/mandic19/Shop/internal/caching"
	"github.com/mandic19/Shop/internal/common"
	"github.com/mandic19/Shop/internal/logging"
	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	MaxImageURLLength = 2048
	MaxUploadSize     = 10 << 20
	presignExpiry     = 15 * time.Minute

	// ImageKeyPrefix namespaces uploaded binaries inside the bucket.
	ImageKeyPrefix = "images/"
)

// ImageUpload is a binary received from a client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type ImageService interface {
	Create(ctx context.Context, image *models.Image) error
	Upload(ctx context.Context, upload ImageUpload) (*models.Image, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error)
	GetURL(ctx context.Context, id uuid.UUID) (string, error)
	Update(ctx context.Context, id uuid.UUID, url string) (*models.Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page models.PageRequest) (*models.ImagePage, error)
}

type imageService struct {
	imageRepo     repositories.ImageRepository
	minioService  MinioService
	cacheService  caching.CacheService
	bucket        string
	publicBaseURL string
}

func NewImageService(imageRepo repositories.ImageRepository, minioService MinioService, cacheService caching.CacheService, bucket, publicBaseURL string) ImageService {
	return &imageService{
		imageRepo:     imageRepo,
		minioService:  minioService,
		cacheService:  cacheService,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func validateImageURL(raw string) error {
	if err := common.ValidateURL(raw, "url", MaxImageURLLength); err != nil {
		verr := common.NewValidationError()
		verr.Add("url", err.Error())
		return verr
	}
	return nil
}

func (s *imageService) Create(ctx context.Context, image *models.Image) error {
	if err := validateImageURL(image.URL); err != nil {
		return err
	}

	now := time.Now().UTC()
	image.ID = uuid.New()
	image.StorageKey = nil
	image.CreatedAt = now
	image.UpdatedAt = now
	return s.imageRepo.Create(ctx, image)
}

// Upload stores the binary under images/<uuid><ext> and records an image
// pointing at its public URL.
func (s *imageService) Upload(ctx context.Context, upload ImageUpload) (*models.Image, error) {
	verr := common.NewValidationError()
	switch {
	case upload.Size <= 0:
		verr.Add("file", "The file field is required.")
	case upload.Size > MaxUploadSize:
		verr.Add("file", fmt.Sprintf("The file may not be greater than %d kilobytes.", MaxUploadSize>>10))
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		verr.Add("file", "The file must be an image.")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	id := uuid.New()
	key := ImageKeyPrefix + id.String() + strings.ToLower(filepath.Ext(upload.Filename))
	if err := s.minioService.UploadImage(ctx, s.bucket, key, upload.Reader, upload.Size, upload.ContentType); err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	now := time.Now().UTC()
	image := &models.Image{
		ID:         id,
		URL:        fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key),
		StorageKey: &key,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		if rmErr := s.minioService.DeleteImage(ctx, s.bucket, key); rmErr != nil {
			logging.FromContext(ctx).Warn("failed to remove uploaded object", "key", key, "error", rmErr)
		}
		return nil, err
	}
	return image, nil
}

func (s *imageService) GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return image, nil
}

// GetURL returns a short-lived presigned URL for stored binaries and the
// plain URL for external images.
func (s *imageService) GetURL(ctx context.Context, id uuid.UUID) (string, error) {
	image, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if image.StorageKey == nil {
		return image.URL, nil
	}
	return s.minioService.GetPresignedURL(ctx, s.bucket, *image.StorageKey, presignExpiry)
}

func (s *imageService) Update(ctx context.Context, id uuid.UUID, url string) (*models.Image, error) {
	if err := validateImageURL(url); err != nil {
		return nil, err
	}

	image, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	image.URL = url
	image.UpdatedAt = time.Now().UTC()
	if err := s.imageRepo.Update(ctx, image); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}

	s.invalidateCatalog(ctx, id)
	return image, nil
}

func (s *imageService) Delete(ctx context.Context, id uuid.UUID) error {
	image, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.imageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrImageNotFound
		}
		return err
	}

	if image.StorageKey != nil {
		// The row is gone; a leftover object is swept by the cleanup job.
		if err := s.minioService.DeleteImage(ctx, s.bucket, *image.StorageKey); err != nil {
			logging.FromContext(ctx).Warn("failed to delete stored image", "image_id", id, "key", *image.StorageKey, "error", err)
		}
	}
	s.invalidateCatalog(ctx, id)
	return nil
}

// Products embed their image, so any image change drops cached catalog entries.
func (s *imageService) invalidateCatalog(ctx context.Context, id uuid.UUID) {
	if err := s.cacheService.InvalidateCatalog(ctx); err != nil {
		logging.FromContext(ctx).Warn("failed to invalidate catalog cache", "image_id", id, "error", err)
	}
}

func (s *imageService) List(ctx context.Context, page models.PageRequest) (*models.ImagePage, error) {
	total, err := s.imageRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	images, err := s.imageRepo.List(ctx, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}

	lastPage := int(math.Ceil(float64(total) / float64(page.PerPage)))
	if lastPage < 1 {
		lastPage = 1
	}
	return &models.ImagePage{
		Data: images,
		Meta: models.PageMeta{
			CurrentPage: page.Page,
			LastPage:    lastPage,
			PerPage:     page.PerPage,
			Total:       total,
		},
	}, nil
}
