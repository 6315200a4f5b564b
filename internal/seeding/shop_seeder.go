package seeding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mandic19/Shop/internal/logging"
	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Config controls how much catalog data Run produces.
type Config struct {
	Products                int
	VariantsPerProduct      int
	ProductImagesPerProduct int
	ImagesPerVariant        int
	// Seed makes the generated data reproducible; zero picks a random seed.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		Products:                10,
		VariantsPerProduct:      3,
		ProductImagesPerProduct: 1,
		ImagesPerVariant:        2,
	}
}

// normalized clamps counts to what the catalog allows.
func (c Config) normalized() Config {
	c.Products = clamp(c.Products, 0, c.Products)
	c.VariantsPerProduct = clamp(c.VariantsPerProduct, 0, models.MaxVariantsPerProduct)
	c.ProductImagesPerProduct = clamp(c.ProductImagesPerProduct, 0, 1)
	c.ImagesPerVariant = clamp(c.ImagesPerVariant, 0, models.MaxImagesPerVariant)
	return c
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

type Result struct {
	Products      int
	Variants      int
	Images        int
	VariantImages int
}

// ShopSeeder replaces the catalog with generated data.
type ShopSeeder struct {
	uow   repositories.UnitOfWork
	cfg   Config
	faker *gofakeit.Faker
}

func NewShopSeeder(uow repositories.UnitOfWork, cfg Config) *ShopSeeder {
	return &ShopSeeder{
		uow:   uow,
		cfg:   cfg.normalized(),
		faker: gofakeit.New(cfg.Seed),
	}
}

// Run clears the catalog and seeds it in a single transaction.
func (s *ShopSeeder) Run(ctx context.Context) (Result, error) {
	var result Result
	logger := logging.FromContext(ctx)

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			logger.Error("failed to rollback seed transaction", "error", err)
		}
	}()

	if err := s.clear(ctx, tx); err != nil {
		return result, err
	}

	now := time.Now().UTC()
	for i := 0; i < s.cfg.Products; i++ {
		product := &models.Product{
			ID:        uuid.New(),
			Title:     s.title(),
			Price:     s.price(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		product.Handle = handleFor(product.Title, i)

		if s.cfg.ProductImagesPerProduct > 0 {
			image, err := s.createImage(ctx, tx, now)
			if err != nil {
				return result, err
			}
			result.Images++
			product.ImageID = &image.ID
		}
		if err := tx.Products().Create(ctx, product); err != nil {
			return result, fmt.Errorf("failed to seed product: %w", err)
		}
		result.Products++

		for v := 0; v < s.cfg.VariantsPerProduct; v++ {
			variant := &models.Variant{
				ID:        uuid.New(),
				ProductID: product.ID,
				Handle:    fmt.Sprintf("%s-%s-%d", product.Handle, strings.ToLower(s.faker.Color()), v+1),
				Price:     s.price(),
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Variants().Create(ctx, variant); err != nil {
				return result, fmt.Errorf("failed to seed variant: %w", err)
			}
			result.Variants++

			for p := 1; p <= s.cfg.ImagesPerVariant; p++ {
				image, err := s.createImage(ctx, tx, now)
				if err != nil {
					return result, err
				}
				result.Images++

				variantImage := &models.VariantImage{
					ID:        uuid.New(),
					VariantID: variant.ID,
					ImageID:   image.ID,
					Position:  p,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := tx.VariantImages().Create(ctx, variantImage); err != nil {
					return result, fmt.Errorf("failed to seed variant image: %w", err)
				}
				result.VariantImages++
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return result, err
	}

	logger.Info("catalog seeded",
		slog.Int("products", result.Products),
		slog.Int("variants", result.Variants),
		slog.Int("images", result.Images),
		slog.Int("variant_images", result.VariantImages),
	)
	return result, nil
}

func (s *ShopSeeder) clear(ctx context.Context, tx repositories.TxScope) error {
	steps := []struct {
		table string
		fn    func(context.Context) error
	}{
		{"variant_images", tx.VariantImages().DeleteAll},
		{"variants", tx.Variants().DeleteAll},
		{"products", tx.Products().DeleteAll},
		{"images", tx.Images().DeleteAll},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("failed to clear %s: %w", step.table, err)
		}
	}
	return nil
}

func (s *ShopSeeder) createImage(ctx context.Context, tx repositories.TxScope, now time.Time) (*models.Image, error) {
	image := &models.Image{
		ID:        uuid.New(),
		URL:       fmt.Sprintf("https://picsum.photos/seed/%s/640/480", s.faker.LetterN(12)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Images().Create(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to seed image: %w", err)
	}
	return image, nil
}

func (s *ShopSeeder) title() string {
	return s.faker.ProductName()
}

// price returns an amount between 10 and 500 with two decimal places.
func (s *ShopSeeder) price() decimal.Decimal {
	return decimal.NewFromFloat(s.faker.Price(10, 500)).Round(2)
}

// handleFor slugs a title. The index keeps handles unique within a run.
func handleFor(title string, index int) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		case !dash && sb.Len() > 0:
			sb.WriteByte('-')
			dash = true
		}
	}
	return fmt.Sprintf("%s-%d", strings.TrimSuffix(sb.String(), "-"), index+1)
}
