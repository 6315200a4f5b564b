package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL and applies migrations. Tests
// are skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db := &TestDB{
		Pool: pool,
		Cleanup: func() error {
			defer pool.Close()
			_, err := pool.Exec(context.Background(),
				`TRUNCATE order_items, orders, variant_images, variants, products, images CASCADE`)
			return err
		},
	}
	t.Cleanup(func() {
		if err := db.Cleanup(); err != nil {
			t.Errorf("Failed to clean test database: %v", err)
		}
	})
	return db
}

// SetupTestProduct inserts a product with the given price
func SetupTestProduct(t *testing.T, db *TestDB, price string) *models.Product {
	t.Helper()

	now := time.Now().UTC()
	product := &models.Product{
		ID:        uuid.New(),
		Title:     "Test Product",
		Handle:    "test-product-" + uuid.NewString()[:8],
		Price:     decimal.RequireFromString(price),
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO products (id, title, handle, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		product.ID, product.Title, product.Handle, product.Price, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}

	return product
}

// SetupTestVariant inserts a variant of product with the given price
func SetupTestVariant(t *testing.T, db *TestDB, productID uuid.UUID, price string) *models.Variant {
	t.Helper()

	now := time.Now().UTC()
	variant := &models.Variant{
		ID:        uuid.New(),
		ProductID: productID,
		Handle:    "test-variant-" + uuid.NewString()[:8],
		Price:     decimal.RequireFromString(price),
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO variants (id, product_id, handle, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		variant.ID, variant.ProductID, variant.Handle, variant.Price, variant.CreatedAt, variant.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test variant: %v", err)
	}

	return variant
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, db *TestDB, table string) int {
	t.Helper()

	var count int
	if err := db.Pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return count
}
