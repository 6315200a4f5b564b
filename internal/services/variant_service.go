package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mandic19/Shop/internal/caching"
	"github.com/mandic19/Shop/internal/common"
	"github.com/mandic19/Shop/internal/logging"
	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VariantService interface {
	Create(ctx context.Context, variant *models.Variant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Variant, error)
	Update(ctx context.Context, id uuid.UUID, update *models.VariantUpdate) (*models.Variant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page models.PageRequest, filter models.VariantListFilter) (*models.VariantPage, error)
}

type variantService struct {
	variantRepo  repositories.VariantRepository
	productRepo  repositories.ProductRepository
	cacheService caching.CacheService
}

func NewVariantService(variantRepo repositories.VariantRepository, productRepo repositories.ProductRepository, cacheService caching.CacheService) VariantService {
	return &variantService{
		variantRepo:  variantRepo,
		productRepo:  productRepo,
		cacheService: cacheService,
	}
}

func (s *variantService) validateFields(variant *models.Variant, verr *common.ValidationError) {
	if err := common.ValidateRequiredString(variant.Handle, "handle", 255); err != nil {
		verr.Add("handle", err.Error())
	}
	if err := common.ValidatePrice(variant.Price, "price"); err != nil {
		verr.Add("price", err.Error())
	}
}

func (s *variantService) checkHandle(ctx context.Context, handle string, excludeID *uuid.UUID, verr *common.ValidationError) error {
	existing, err := s.variantRepo.GetByHandle(ctx, handle)
	switch {
	case err == nil && (excludeID == nil || existing.ID != *excludeID):
		verr.Add("handle", "This variant handle is already in use")
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("failed to check variant handle: %w", err)
	}
	return nil
}

func (s *variantService) Create(ctx context.Context, variant *models.Variant) error {
	verr := common.NewValidationError()
	if variant.ProductID == uuid.Nil {
		verr.Add("product_id", "A product ID is required")
	}
	s.validateFields(variant, verr)
	if verr.HasErrors() {
		return verr
	}

	if err := s.checkHandle(ctx, variant.Handle, nil, verr); err != nil {
		return err
	}

	if _, err := s.productRepo.GetByID(ctx, variant.ProductID); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to check product: %w", err)
		}
		verr.Add("product_id", "The specified product does not exist.")
	} else {
		count, err := s.variantRepo.CountByProductID(ctx, variant.ProductID)
		if err != nil {
			return fmt.Errorf("failed to count variants: %w", err)
		}
		if count >= models.MaxVariantsPerProduct {
			verr.Add("product_id", fmt.Sprintf("A product can have a maximum of %d variants.", models.MaxVariantsPerProduct))
		}
	}
	if verr.HasErrors() {
		return verr
	}

	now := time.Now().UTC()
	variant.ID = uuid.New()
	variant.CreatedAt = now
	variant.UpdatedAt = now
	if err := s.variantRepo.Create(ctx, variant); err != nil {
		if repositories.IsUniqueViolation(err) {
			verr.Add("handle", "This variant handle is already in use")
			return verr
		}
		return err
	}
	return nil
}

// GetByID returns the variant with its product embedded.
func (s *variantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	logger := logging.FromContext(ctx)

	if cached, err := s.cacheService.GetVariant(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		logger.Warn("variant cache read failed", "variant_id", id, "error", err)
	}

	variant, err := s.variantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, variant.ProductID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	variant.Product = product

	if err := s.cacheService.SetVariant(ctx, variant, catalogCacheTTL); err != nil {
		logger.Warn("failed to cache variant", "variant_id", id, "error", err)
	}
	return variant, nil
}

func (s *variantService) Update(ctx context.Context, id uuid.UUID, update *models.VariantUpdate) (*models.Variant, error) {
	variant, err := s.variantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	if update.Handle != nil {
		variant.Handle = *update.Handle
	}
	if update.Price != nil {
		variant.Price = *update.Price
	}

	verr := common.NewValidationError()
	s.validateFields(variant, verr)
	if verr.HasErrors() {
		return nil, verr
	}
	if err := s.checkHandle(ctx, variant.Handle, &id, verr); err != nil {
		return nil, err
	}
	if verr.HasErrors() {
		return nil, verr
	}

	variant.UpdatedAt = time.Now().UTC()
	if err := s.variantRepo.Update(ctx, variant); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVariantNotFound
		}
		if repositories.IsUniqueViolation(err) {
			verr.Add("handle", "This variant handle is already in use")
			return nil, verr
		}
		return nil, err
	}

	s.invalidate(ctx, id)
	return variant, nil
}

func (s *variantService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.variantRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrVariantNotFound
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *variantService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cacheService.DeleteVariant(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("failed to invalidate variant cache", "variant_id", id, "error", err)
	}
}

func (s *variantService) List(ctx context.Context, page models.PageRequest, filter models.VariantListFilter) (*models.VariantPage, error) {
	variants, err := s.variantRepo.List(ctx, filter.ProductID, page.PerPage+1, page.Offset())
	if err != nil {
		return nil, err
	}

	hasMore := len(variants) > page.PerPage
	if hasMore {
		variants = variants[:page.PerPage]
	}

	return &models.VariantPage{
		Data: variants,
		Meta: models.SimplePageMeta{
			CurrentPage:  page.Page,
			HasMorePages: hasMore,
			PerPage:      page.PerPage,
		},
	}, nil
}
