package handlers

import (
	"context"
	"io"
	"time"

	"github.com/mandic19/Shop/internal/models"
	"github.com/mandic19/Shop/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, items []models.OrderItemInput) (*models.Order, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, update *models.ProductUpdate) (*models.Product, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) List(ctx context.Context, page models.PageRequest, filter models.ProductListFilter) (*models.ProductPage, error) {
	args := m.Called(ctx, page, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductPage), args.Error(1)
}

type MockVariantService struct {
	mock.Mock
}

func (m *MockVariantService) Create(ctx context.Context, variant *models.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Variant), args.Error(1)
}

func (m *MockVariantService) Update(ctx context.Context, id uuid.UUID, update *models.VariantUpdate) (*models.Variant, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Variant), args.Error(1)
}

func (m *MockVariantService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVariantService) List(ctx context.Context, page models.PageRequest, filter models.VariantListFilter) (*models.VariantPage, error) {
	args := m.Called(ctx, page, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariantPage), args.Error(1)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Create(ctx context.Context, image *models.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockImageService) Upload(ctx context.Context, upload services.ImageUpload) (*models.Image, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockImageService) GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockImageService) GetURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockImageService) Update(ctx context.Context, id uuid.UUID, url string) (*models.Image, error) {
	args := m.Called(ctx, id, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockImageService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockImageService) List(ctx context.Context, page models.PageRequest) (*models.ImagePage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImagePage), args.Error(1)
}

type MockVariantImageService struct {
	mock.Mock
}

func (m *MockVariantImageService) Create(ctx context.Context, variantImage *models.VariantImage, position *int) error {
	args := m.Called(ctx, variantImage, position)
	return args.Error(0)
}

func (m *MockVariantImageService) GetByID(ctx context.Context, id uuid.UUID) (*models.VariantImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariantImage), args.Error(1)
}

func (m *MockVariantImageService) ListByVariant(ctx context.Context, variantID uuid.UUID) ([]*models.VariantImage, error) {
	args := m.Called(ctx, variantID)
	return args.Get(0).([]*models.VariantImage), args.Error(1)
}

func (m *MockVariantImageService) Update(ctx context.Context, id uuid.UUID, update *models.VariantImageUpdate) (*models.VariantImage, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariantImage), args.Error(1)
}

func (m *MockVariantImageService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
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

func (m *MockMinioService) ListObjects(ctx context.Context, bucketName, prefix string) ([]services.StoredObject, error) {
	args := m.Called(ctx, bucketName, prefix)
	return args.Get(0).([]services.StoredObject), args.Error(1)
}

func (m *MockMinioService) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }
