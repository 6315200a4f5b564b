package services

import (
	"context"
	"io"
	"time"

	"github.com/mandic19/Shop/internal/caching"
	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByHandle(ctx context.Context, handle string) (*models.Product, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) Create(ctx context.Context, variant *models.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Variant), args.Error(1)
}

func (m *MockVariantRepository) GetByHandle(ctx context.Context, handle string) (*models.Variant, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Variant), args.Error(1)
}

func (m *MockVariantRepository) Update(ctx context.Context, variant *models.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVariantRepository) List(ctx context.Context, productID *uuid.UUID, limit, offset int) ([]*models.Variant, error) {
	args := m.Called(ctx, productID, limit, offset)
	return args.Get(0).([]*models.Variant), args.Error(1)
}

func (m *MockVariantRepository) CountByProductID(ctx context.Context, productID uuid.UUID) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockVariantRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, image *models.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockImageRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Image, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*models.Image), args.Error(1)
}

func (m *MockImageRepository) Update(ctx context.Context, image *models.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockImageRepository) List(ctx context.Context, limit, offset int) ([]*models.Image, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Image), args.Error(1)
}

func (m *MockImageRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockImageRepository) ListStorageKeys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockImageRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockVariantImageRepository struct {
	mock.Mock
}

func (m *MockVariantImageRepository) Create(ctx context.Context, variantImage *models.VariantImage) error {
	args := m.Called(ctx, variantImage)
	return args.Error(0)
}

func (m *MockVariantImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.VariantImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariantImage), args.Error(1)
}

func (m *MockVariantImageRepository) GetByVariantAndImage(ctx context.Context, variantID, imageID uuid.UUID) (*models.VariantImage, error) {
	args := m.Called(ctx, variantID, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariantImage), args.Error(1)
}

func (m *MockVariantImageRepository) ListByVariantID(ctx context.Context, variantID uuid.UUID) ([]*models.VariantImage, error) {
	args := m.Called(ctx, variantID)
	return args.Get(0).([]*models.VariantImage), args.Error(1)
}

func (m *MockVariantImageRepository) Update(ctx context.Context, variantImage *models.VariantImage) error {
	args := m.Called(ctx, variantImage)
	return args.Error(0)
}

func (m *MockVariantImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVariantImageRepository) CountByVariantID(ctx context.Context, variantID uuid.UUID) (int, error) {
	args := m.Called(ctx, variantID)
	return args.Int(0), args.Error(1)
}

func (m *MockVariantImageRepository) MaxPosition(ctx context.Context, variantID uuid.UUID) (int, error) {
	args := m.Called(ctx, variantID)
	return args.Int(0), args.Error(1)
}

func (m *MockVariantImageRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) CreateBulk(ctx context.Context, items []*models.OrderItem) (int64, error) {
	args := m.Called(ctx, items)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderItemRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*models.OrderItem), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (repositories.TxScope, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repositories.TxScope), args.Error(1)
}

// MockTxScope hands out fixed repository mocks and records Commit/Rollback.
type MockTxScope struct {
	mock.Mock
	products      *MockProductRepository
	variants      *MockVariantRepository
	images        *MockImageRepository
	variantImages *MockVariantImageRepository
	orders        *MockOrderRepository
	orderItems    *MockOrderItemRepository
}

func NewMockTxScope() *MockTxScope {
	return &MockTxScope{
		products:      &MockProductRepository{},
		variants:      &MockVariantRepository{},
		images:        &MockImageRepository{},
		variantImages: &MockVariantImageRepository{},
		orders:        &MockOrderRepository{},
		orderItems:    &MockOrderItemRepository{},
	}
}

func (m *MockTxScope) Products() repositories.ProductRepository           { return m.products }
func (m *MockTxScope) Variants() repositories.VariantRepository           { return m.variants }
func (m *MockTxScope) Images() repositories.ImageRepository               { return m.images }
func (m *MockTxScope) VariantImages() repositories.VariantImageRepository { return m.variantImages }
func (m *MockTxScope) Orders() repositories.OrderRepository               { return m.orders }
func (m *MockTxScope) OrderItems() repositories.OrderItemRepository       { return m.orderItems }

func (m *MockTxScope) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTxScope) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	args := m.Called(ctx, product, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockCacheService) GetVariant(ctx context.Context, variantID uuid.UUID) (*models.Variant, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Variant), args.Error(1)
}

func (m *MockCacheService) SetVariant(ctx context.Context, variant *models.Variant, ttl time.Duration) error {
	args := m.Called(ctx, variant, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteVariant(ctx context.Context, variantID uuid.UUID) error {
	args := m.Called(ctx, variantID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateCatalog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (*caching.RateLimitResult, error) {
	args := m.Called(ctx, key, limit, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*caching.RateLimitResult), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadImage(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) DeleteImage(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockMinioService) ListObjects(ctx context.Context, bucketName, prefix string) ([]StoredObject, error) {
	args := m.Called(ctx, bucketName, prefix)
	return args.Get(0).([]StoredObject), args.Error(1)
}

func (m *MockMinioService) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}
