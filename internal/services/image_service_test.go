package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mandic19/Shop/internal/common"
	"github.com/mandic19/Shop/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testBucket = "shop-images"

type ImageServiceTestSuite struct {
	suite.Suite
	imageRepo *MockImageRepository
	minio     *MockMinioService
	cache     *MockCacheService
	service   ImageService
	ctx       context.Context
}

func (suite *ImageServiceTestSuite) SetupTest() {
	suite.imageRepo = &MockImageRepository{}
	suite.minio = &MockMinioService{}
	suite.cache = &MockCacheService{}
	suite.service = NewImageService(suite.imageRepo, suite.minio, suite.cache, testBucket, "http://localhost:9000/")
	suite.ctx = context.Background()
}

func (suite *ImageServiceTestSuite) TearDownTest() {
	suite.imageRepo.AssertExpectations(suite.T())
	suite.minio.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func TestImageServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImageServiceTestSuite))
}

func (suite *ImageServiceTestSuite) TestCreate_ValidatesURL() {
	for _, raw := range []string{"", "not a url", "ftp://files.example.com/a.png", "https://" + strings.Repeat("a", MaxImageURLLength)} {
		err := suite.service.Create(suite.ctx, &models.Image{URL: raw})
		var verr *common.ValidationError
		require.ErrorAs(suite.T(), err, &verr, raw)
		assert.Contains(suite.T(), verr.Fields, "url")
	}
}

func (suite *ImageServiceTestSuite) TestCreate_Success() {
	image := &models.Image{URL: "https://cdn.example.com/chair.png"}
	suite.imageRepo.On("Create", mock.Anything, image).Return(nil).Once()

	require.NoError(suite.T(), suite.service.Create(suite.ctx, image))
	assert.Nil(suite.T(), image.StorageKey)
	assert.NotEqual(suite.T(), uuid.Nil, image.ID)
}

func (suite *ImageServiceTestSuite) TestUpload_StoresObjectAndRecordsKey() {
	data := []byte("\x89PNG fake")
	reader := bytes.NewReader(data)
	suite.minio.On("UploadImage", mock.Anything, testBucket, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, ImageKeyPrefix) && strings.HasSuffix(key, ".png")
	}), reader, int64(len(data)), "image/png").Return(nil).Once()
	suite.imageRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Image")).Return(nil).Once()

	image, err := suite.service.Upload(suite.ctx, ImageUpload{Filename: "Chair.PNG", ContentType: "image/png", Size: int64(len(data)), Reader: reader})

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), image.StorageKey)
	assert.Equal(suite.T(), ImageKeyPrefix+image.ID.String()+".png", *image.StorageKey)
	assert.Equal(suite.T(), "http://localhost:9000/shop-images/"+*image.StorageKey, image.URL)
}

func (suite *ImageServiceTestSuite) TestUpload_RejectsNonImageAndOversize() {
	_, err := suite.service.Upload(suite.ctx, ImageUpload{Filename: "a.txt", ContentType: "text/plain", Size: 10, Reader: bytes.NewReader(nil)})
	var verr *common.ValidationError
	require.ErrorAs(suite.T(), err, &verr)
	assert.Equal(suite.T(), "The file must be an image.", verr.Fields["file"])

	_, err = suite.service.Upload(suite.ctx, ImageUpload{Filename: "a.png", ContentType: "image/png", Size: MaxUploadSize + 1, Reader: bytes.NewReader(nil)})
	require.ErrorAs(suite.T(), err, &verr)
	assert.Contains(suite.T(), verr.Fields["file"], "10240 kilobytes")
}

func (suite *ImageServiceTestSuite) TestUpload_RemovesObjectWhenRowFails() {
	reader := bytes.NewReader([]byte("x"))
	suite.minio.On("UploadImage", mock.Anything, testBucket, mock.Anything, reader, int64(1), "image/jpeg").Return(nil).Once()
	suite.imageRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	suite.minio.On("DeleteImage", mock.Anything, testBucket, mock.Anything).Return(nil).Once()

	_, err := suite.service.Upload(suite.ctx, ImageUpload{Filename: "a.jpg", ContentType: "image/jpeg", Size: 1, Reader: reader})

	assert.EqualError(suite.T(), err, "db down")
}

func (suite *ImageServiceTestSuite) TestGetURL_PresignsStoredImages() {
	key := "images/abc.png"
	stored := &models.Image{ID: uuid.New(), URL: "http://localhost:9000/shop-images/images/abc.png", StorageKey: &key}
	external := &models.Image{ID: uuid.New(), URL: "https://cdn.example.com/x.png"}

	suite.imageRepo.On("GetByID", mock.Anything, stored.ID).Return(stored, nil).Once()
	suite.imageRepo.On("GetByID", mock.Anything, external.ID).Return(external, nil).Once()
	suite.minio.On("GetPresignedURL", mock.Anything, testBucket, key, presignExpiry).Return("http://signed", nil).Once()

	url, err := suite.service.GetURL(suite.ctx, stored.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "http://signed", url)

	url, err = suite.service.GetURL(suite.ctx, external.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), external.URL, url)
}

func (suite *ImageServiceTestSuite) TestDelete_IgnoresStorageFailure() {
	key := "images/abc.png"
	image := &models.Image{ID: uuid.New(), StorageKey: &key}
	suite.imageRepo.On("GetByID", mock.Anything, image.ID).Return(image, nil).Once()
	suite.imageRepo.On("Delete", mock.Anything, image.ID).Return(nil).Once()
	suite.minio.On("DeleteImage", mock.Anything, testBucket, key).Return(errors.New("minio unreachable")).Once()
	suite.cache.On("InvalidateCatalog", mock.Anything).Return(nil).Once()

	assert.NoError(suite.T(), suite.service.Delete(suite.ctx, image.ID))
}

func (suite *ImageServiceTestSuite) TestDelete_NotFound() {
	id := uuid.New()
	suite.imageRepo.On("GetByID", mock.Anything, id).Return(nil, pgx.ErrNoRows).Once()

	assert.ErrorIs(suite.T(), suite.service.Delete(suite.ctx, id), ErrImageNotFound)
}

func (suite *ImageServiceTestSuite) TestUpdate_InvalidatesCatalog() {
	image := &models.Image{ID: uuid.New(), URL: "https://old.example.com/a.png"}
	suite.imageRepo.On("GetByID", mock.Anything, image.ID).Return(image, nil).Once()
	suite.imageRepo.On("Update", mock.Anything, image).Return(nil).Once()
	suite.cache.On("InvalidateCatalog", mock.Anything).Return(nil).Once()

	got, err := suite.service.Update(suite.ctx, image.ID, "https://new.example.com/a.png")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://new.example.com/a.png", got.URL)
}

func (suite *ImageServiceTestSuite) TestList_LengthAwareMeta() {
	suite.imageRepo.On("Count", mock.Anything).Return(31, nil).Once()
	suite.imageRepo.On("List", mock.Anything, 15, 15).Return([]*models.Image{{ID: uuid.New()}}, nil).Once()

	page, err := suite.service.List(suite.ctx, models.PageRequest{Page: 2, PerPage: 15})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PageMeta{CurrentPage: 2, LastPage: 3, PerPage: 15, Total: 31}, page.Meta)
}

func (suite *ImageServiceTestSuite) TestList_EmptyTableHasOnePage() {
	suite.imageRepo.On("Count", mock.Anything).Return(0, nil).Once()
	suite.imageRepo.On("List", mock.Anything, 15, 0).Return([]*models.Image{}, nil).Once()

	page, err := suite.service.List(suite.ctx, models.PageRequest{Page: 1, PerPage: 15})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, page.Meta.LastPage)
}
