package caching

import (
	"context"
	"testing"
	"time"

	"github.com/mandic19/Shop/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CacheServiceTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	cache CacheService
	ctx   context.Context
}

func (suite *CacheServiceTestSuite) SetupTest() {
	suite.mr = miniredis.RunT(suite.T())
	client := redis.NewClient(&redis.Options{Addr: suite.mr.Addr()})
	suite.cache = NewCacheServiceFromClient(client)
	suite.ctx = context.Background()
}

func TestCacheServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CacheServiceTestSuite))
}

func (suite *CacheServiceTestSuite) TestProduct_RoundTrip() {
	product := &models.Product{
		ID:     uuid.New(),
		Title:  "Linen Shirt",
		Handle: "linen-shirt",
		Price:  decimal.RequireFromString("49.90"),
	}

	require.NoError(suite.T(), suite.cache.SetProduct(suite.ctx, product, time.Minute))

	cached, err := suite.cache.GetProduct(suite.ctx, product.ID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cached)
	assert.Equal(suite.T(), product.Handle, cached.Handle)
	assert.True(suite.T(), product.Price.Equal(cached.Price))
}

func (suite *CacheServiceTestSuite) TestProduct_MissReturnsNil() {
	cached, err := suite.cache.GetProduct(suite.ctx, uuid.New())
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), cached)
}

func (suite *CacheServiceTestSuite) TestProduct_ExpiresAfterTTL() {
	product := &models.Product{ID: uuid.New(), Price: decimal.NewFromInt(5)}
	require.NoError(suite.T(), suite.cache.SetProduct(suite.ctx, product, time.Minute))

	suite.mr.FastForward(2 * time.Minute)

	cached, err := suite.cache.GetProduct(suite.ctx, product.ID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), cached)
}

func (suite *CacheServiceTestSuite) TestVariant_DeleteRemovesEntry() {
	variant := &models.Variant{ID: uuid.New(), ProductID: uuid.New(), Handle: "red-xl", Price: decimal.NewFromInt(120)}
	require.NoError(suite.T(), suite.cache.SetVariant(suite.ctx, variant, time.Minute))
	require.NoError(suite.T(), suite.cache.DeleteVariant(suite.ctx, variant.ID))

	cached, err := suite.cache.GetVariant(suite.ctx, variant.ID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), cached)
}

func (suite *CacheServiceTestSuite) TestInvalidateCatalog_KeepsRateLimitCounters() {
	product := &models.Product{ID: uuid.New(), Price: decimal.NewFromInt(1)}
	variant := &models.Variant{ID: uuid.New(), Price: decimal.NewFromInt(2)}
	require.NoError(suite.T(), suite.cache.SetProduct(suite.ctx, product, time.Minute))
	require.NoError(suite.T(), suite.cache.SetVariant(suite.ctx, variant, time.Minute))
	_, err := suite.cache.IsRateLimited(suite.ctx, "127.0.0.1", 3, time.Minute)
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.cache.InvalidateCatalog(suite.ctx))

	assert.False(suite.T(), suite.mr.Exists(productKey(product.ID)))
	assert.False(suite.T(), suite.mr.Exists(variantKey(variant.ID)))
	assert.True(suite.T(), suite.mr.Exists("shop:ratelimit:127.0.0.1"))
}

func (suite *CacheServiceTestSuite) TestIsRateLimited_FixedWindow() {
	key := "10.0.0.1"
	for i, wantRemaining := range []int{2, 1, 0} {
		result, err := suite.cache.IsRateLimited(suite.ctx, key, 3, time.Minute)
		require.NoError(suite.T(), err)
		assert.False(suite.T(), result.Limited, "hit %d should pass", i+1)
		assert.Equal(suite.T(), wantRemaining, result.Remaining)
	}

	result, err := suite.cache.IsRateLimited(suite.ctx, key, 3, time.Minute)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.Limited)
	assert.Equal(suite.T(), 0, result.Remaining)
	assert.Greater(suite.T(), result.RetryAfter, time.Duration(0))
	assert.LessOrEqual(suite.T(), result.RetryAfter, time.Minute)

	suite.mr.FastForward(time.Minute + time.Second)

	result, err = suite.cache.IsRateLimited(suite.ctx, key, 3, time.Minute)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), result.Limited)
	assert.Equal(suite.T(), 2, result.Remaining)
}

func (suite *CacheServiceTestSuite) TestIsRateLimited_KeysAreIndependent() {
	for i := 0; i < 3; i++ {
		_, err := suite.cache.IsRateLimited(suite.ctx, "a", 3, time.Minute)
		require.NoError(suite.T(), err)
	}

	result, err := suite.cache.IsRateLimited(suite.ctx, "b", 3, time.Minute)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), result.Limited)
}

func (suite *CacheServiceTestSuite) TestPing() {
	assert.NoError(suite.T(), suite.cache.Ping(suite.ctx))

	suite.mr.Close()
	assert.Error(suite.T(), suite.cache.Ping(suite.ctx))
}
