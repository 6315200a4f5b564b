package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mandic19/Shop/internal/common"
	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VariantImageService interface {
	Create(ctx context.Context, variantImage *models.VariantImage, position *int) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.VariantImage, error)
	ListByVariant(ctx context.Context, variantID uuid.UUID) ([]*models.VariantImage, error)
	Update(ctx context.Context, id uuid.UUID, update *models.VariantImageUpdate) (*models.VariantImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type variantImageService struct {
	variantImageRepo repositories.VariantImageRepository
	variantRepo      repositories.VariantRepository
	imageRepo        repositories.ImageRepository
}

func NewVariantImageService(variantImageRepo repositories.VariantImageRepository, variantRepo repositories.VariantRepository, imageRepo repositories.ImageRepository) VariantImageService {
	return &variantImageService{
		variantImageRepo: variantImageRepo,
		variantRepo:      variantRepo,
		imageRepo:        imageRepo,
	}
}

func (s *variantImageService) checkVariant(ctx context.Context, variantID uuid.UUID, checkCap bool, verr *common.ValidationError) error {
	if _, err := s.variantRepo.GetByID(ctx, variantID); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to check variant: %w", err)
		}
		verr.Add("variant_id", "The specified variant does not exist.")
		return nil
	}
	if !checkCap {
		return nil
	}

	count, err := s.variantImageRepo.CountByVariantID(ctx, variantID)
	if err != nil {
		return fmt.Errorf("failed to count variant images: %w", err)
	}
	if count >= models.MaxImagesPerVariant {
		verr.Add("variant_id", fmt.Sprintf("A variant can have a maximum of %d images.", models.MaxImagesPerVariant))
	}
	return nil
}

func (s *variantImageService) checkImage(ctx context.Context, imageID uuid.UUID, verr *common.ValidationError) error {
	if _, err := s.imageRepo.GetByID(ctx, imageID); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to check image: %w", err)
		}
		verr.Add("image_id", "The specified image does not exist.")
	}
	return nil
}

func (s *variantImageService) checkPair(ctx context.Context, variantID, imageID uuid.UUID, excludeID *uuid.UUID, verr *common.ValidationError) error {
	existing, err := s.variantImageRepo.GetByVariantAndImage(ctx, variantID, imageID)
	switch {
	case err == nil && (excludeID == nil || existing.ID != *excludeID):
		verr.Add("image_id", "The image is already attached to this variant.")
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("failed to check variant image: %w", err)
	}
	return nil
}

// Create attaches an image to a variant. A nil position appends after the
// variant's current last image.
func (s *variantImageService) Create(ctx context.Context, variantImage *models.VariantImage, position *int) error {
	verr := common.NewValidationError()
	if variantImage.VariantID == uuid.Nil {
		verr.Add("variant_id", "The variant ID is required.")
	}
	if variantImage.ImageID == uuid.Nil {
		verr.Add("image_id", "The image ID is required.")
	}
	if position != nil && *position < 0 {
		verr.Add("position", "The position must be at least 0.")
	}
	if verr.HasErrors() {
		return verr
	}

	if err := s.checkVariant(ctx, variantImage.VariantID, true, verr); err != nil {
		return err
	}
	if err := s.checkImage(ctx, variantImage.ImageID, verr); err != nil {
		return err
	}
	if !verr.HasErrors() {
		if err := s.checkPair(ctx, variantImage.VariantID, variantImage.ImageID, nil, verr); err != nil {
			return err
		}
	}
	if verr.HasErrors() {
		return verr
	}

	if position != nil {
		variantImage.Position = *position
	} else {
		maxPos, err := s.variantImageRepo.MaxPosition(ctx, variantImage.VariantID)
		if err != nil {
			return fmt.Errorf("failed to resolve image position: %w", err)
		}
		variantImage.Position = maxPos + 1
	}

	now := time.Now().UTC()
	variantImage.ID = uuid.New()
	variantImage.CreatedAt = now
	variantImage.UpdatedAt = now
	if err := s.variantImageRepo.Create(ctx, variantImage); err != nil {
		if repositories.IsUniqueViolation(err) {
			verr.Add("image_id", "The image is already attached to this variant.")
			return verr
		}
		return err
	}
	return nil
}

func (s *variantImageService) GetByID(ctx context.Context, id uuid.UUID) (*models.VariantImage, error) {
	variantImage, err := s.variantImageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVariantImageNotFound
		}
		return nil, err
	}
	if err := s.attachImages(ctx, []*models.VariantImage{variantImage}); err != nil {
		return nil, err
	}
	return variantImage, nil
}

// ListByVariant returns the variant's images ordered by position.
func (s *variantImageService) ListByVariant(ctx context.Context, variantID uuid.UUID) ([]*models.VariantImage, error) {
	variantImages, err := s.variantImageRepo.ListByVariantID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if err := s.attachImages(ctx, variantImages); err != nil {
		return nil, err
	}
	return variantImages, nil
}

func (s *variantImageService) attachImages(ctx context.Context, variantImages []*models.VariantImage) error {
	ids := make([]uuid.UUID, 0, len(variantImages))
	for _, vi := range variantImages {
		ids = append(ids, vi.ImageID)
	}
	images, err := s.imageRepo.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[uuid.UUID]*models.Image, len(images))
	for _, img := range images {
		byID[img.ID] = img
	}
	for _, vi := range variantImages {
		vi.Image = byID[vi.ImageID]
	}
	return nil
}

func (s *variantImageService) Update(ctx context.Context, id uuid.UUID, update *models.VariantImageUpdate) (*models.VariantImage, error) {
	variantImage, err := s.variantImageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVariantImageNotFound
		}
		return nil, err
	}

	verr := common.NewValidationError()
	if update.Position != nil && *update.Position < 0 {
		verr.Add("position", "The position must be at least 0.")
	}
	if update.VariantID != nil && *update.VariantID != variantImage.VariantID {
		if err := s.checkVariant(ctx, *update.VariantID, true, verr); err != nil {
			return nil, err
		}
		variantImage.VariantID = *update.VariantID
	}
	if update.ImageID != nil && *update.ImageID != variantImage.ImageID {
		if err := s.checkImage(ctx, *update.ImageID, verr); err != nil {
			return nil, err
		}
		variantImage.ImageID = *update.ImageID
	}
	if verr.HasErrors() {
		return nil, verr
	}
	if update.VariantID != nil || update.ImageID != nil {
		if err := s.checkPair(ctx, variantImage.VariantID, variantImage.ImageID, &id, verr); err != nil {
			return nil, err
		}
		if verr.HasErrors() {
			return nil, verr
		}
	}
	if update.Position != nil {
		variantImage.Position = *update.Position
	}

	variantImage.UpdatedAt = time.Now().UTC()
	if err := s.variantImageRepo.Update(ctx, variantImage); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVariantImageNotFound
		}
		if repositories.IsUniqueViolation(err) {
			verr.Add("image_id", "The image is already attached to this variant.")
			return nil, verr
		}
		return nil, err
	}

	if err := s.attachImages(ctx, []*models.VariantImage{variantImage}); err != nil {
		return nil, err
	}
	return variantImage, nil
}

func (s *variantImageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.variantImageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrVariantImageNotFound
		}
		return err
	}
	return nil
}
