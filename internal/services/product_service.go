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

const catalogCacheTTL = 15 * time.Minute

type ProductService interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, update *models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page models.PageRequest, filter models.ProductListFilter) (*models.ProductPage, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	imageRepo    repositories.ImageRepository
	cacheService caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository, imageRepo repositories.ImageRepository, cacheService caching.CacheService) ProductService {
	return &productService{
		productRepo:  productRepo,
		imageRepo:    imageRepo,
		cacheService: cacheService,
	}
}

func (s *productService) validate(ctx context.Context, product *models.Product, excludeID *uuid.UUID) error {
	verr := common.NewValidationError()
	if err := common.ValidateRequiredString(product.Title, "title", 255); err != nil {
		verr.Add("title", err.Error())
	}
	if err := common.ValidateRequiredString(product.Handle, "handle", 255); err != nil {
		verr.Add("handle", err.Error())
	}
	if err := common.ValidatePrice(product.Price, "price"); err != nil {
		verr.Add("price", err.Error())
	}
	if verr.HasErrors() {
		return verr
	}

	existing, err := s.productRepo.GetByHandle(ctx, product.Handle)
	switch {
	case err == nil && (excludeID == nil || existing.ID != *excludeID):
		verr.Add("handle", "This product handle is already in use")
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("failed to check product handle: %w", err)
	}

	if product.ImageID != nil {
		if _, err := s.imageRepo.GetByID(ctx, *product.ImageID); err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("failed to check product image: %w", err)
			}
			verr.Add("image_id", "The selected image does not exist")
		}
	}
	return verr.OrNil()
}

func (s *productService) Create(ctx context.Context, product *models.Product) error {
	if err := s.validate(ctx, product, nil); err != nil {
		return err
	}

	now := time.Now().UTC()
	product.ID = uuid.New()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := s.productRepo.Create(ctx, product); err != nil {
		if repositories.IsUniqueViolation(err) {
			return handleTakenError()
		}
		return err
	}
	return nil
}

func handleTakenError() error {
	verr := common.NewValidationError()
	verr.Add("handle", "This product handle is already in use")
	return verr
}

// GetByID returns the product with its image. Cache failures never fail
// the read.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	logger := logging.FromContext(ctx)

	if cached, err := s.cacheService.GetProduct(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		logger.Warn("product cache read failed", "product_id", id, "error", err)
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if err := s.loadImage(ctx, product); err != nil {
		return nil, err
	}

	if err := s.cacheService.SetProduct(ctx, product, catalogCacheTTL); err != nil {
		logger.Warn("failed to cache product", "product_id", id, "error", err)
	}
	return product, nil
}

func (s *productService) loadImage(ctx context.Context, product *models.Product) error {
	if product.ImageID == nil {
		return nil
	}
	image, err := s.imageRepo.GetByID(ctx, *product.ImageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	product.Image = image
	return nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, update *models.ProductUpdate) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if update.Title != nil {
		product.Title = *update.Title
	}
	if update.Handle != nil {
		product.Handle = *update.Handle
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	switch {
	case update.ClearImage:
		product.ImageID = nil
	case update.ImageID != nil:
		product.ImageID = update.ImageID
	}

	if err := s.validate(ctx, product, &id); err != nil {
		return nil, err
	}

	product.UpdatedAt = time.Now().UTC()
	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		if repositories.IsUniqueViolation(err) {
			return nil, handleTakenError()
		}
		return nil, err
	}
	s.invalidate(ctx, id)

	if err := s.loadImage(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProductNotFound
		}
		if repositories.IsForeignKeyViolation(err) {
			return ErrProductInUse
		}
		return err
	}

	// Variants go with the product, so their cached copies must too.
	if err := s.cacheService.InvalidateCatalog(ctx); err != nil {
		logging.FromContext(ctx).Warn("failed to invalidate catalog cache", "product_id", id, "error", err)
	}
	return nil
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cacheService.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("failed to invalidate product cache", "product_id", id, "error", err)
	}
}

// List returns one page without counting the table; an extra row is
// fetched to tell whether another page exists.
func (s *productService) List(ctx context.Context, page models.PageRequest, filter models.ProductListFilter) (*models.ProductPage, error) {
	products, err := s.productRepo.List(ctx, page.PerPage+1, page.Offset())
	if err != nil {
		return nil, err
	}

	hasMore := len(products) > page.PerPage
	if hasMore {
		products = products[:page.PerPage]
	}

	if filter.WithImage {
		if err := s.attachImages(ctx, products); err != nil {
			return nil, err
		}
	}

	return &models.ProductPage{
		Data: products,
		Meta: models.SimplePageMeta{
			CurrentPage:  page.Page,
			HasMorePages: hasMore,
			PerPage:      page.PerPage,
		},
	}, nil
}

func (s *productService) attachImages(ctx context.Context, products []*models.Product) error {
	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		if p.ImageID != nil {
			ids = append(ids, *p.ImageID)
		}
	}
	images, err := s.imageRepo.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[uuid.UUID]*models.Image, len(images))
	for _, img := range images {
		byID[img.ID] = img
	}
	for _, p := range products {
		if p.ImageID != nil {
			p.Image = byID[*p.ImageID]
		}
	}
	return nil
}
