package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mandic19/Shop/internal/caching"
	"github.com/mandic19/Shop/internal/handlers"
	"github.com/mandic19/Shop/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandlers() routeHandlers {
	return routeHandlers{
		orders:        handlers.NewOrderHandlers(nil),
		products:      handlers.NewProductHandlers(nil),
		variants:      handlers.NewVariantHandlers(nil),
		images:        handlers.NewImageHandlers(nil),
		variantImages: handlers.NewVariantImageHandlers(nil),
		health:        handlers.NewHealthHandlers(nil, nil, nil, "shop-images", version),
	}
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewServer_RegistersRoutes(t *testing.T) {
	e := newServer(quietLogger(), testHandlers(), passthrough)

	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, route := range []string{
		"POST /v1/orders",
		"GET /v1/orders/:id",
		"GET /v1/products",
		"POST /v1/products",
		"GET /v1/products/:id",
		"PUT /v1/products/:id",
		"DELETE /v1/products/:id",
		"GET /v1/variants",
		"POST /v1/variants",
		"DELETE /v1/variants/:id",
		"GET /v1/images",
		"POST /v1/images",
		"POST /v1/images/upload",
		"GET /v1/images/:id/url",
		"DELETE /v1/images/:id",
		"GET /v1/variant-images",
		"POST /v1/variant-images",
		"PUT /v1/variant-images/:id",
		"GET /health",
		"GET /health/ready",
		"GET /health/live",
		"GET /swagger/*",
	} {
		assert.True(t, registered[route], "route %s not registered", route)
	}
}

func TestNewServer_ThrottlesVersionedRoutes(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := caching.NewCacheServiceFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	e := newServer(quietLogger(), testHandlers(), middleware.RateLimit(cache, 3, time.Minute))

	// A malformed id is rejected before any service call.
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/orders/not-a-uuid", nil))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/orders/not-a-uuid", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Operational routes are not throttled.
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewServer_ServesSwaggerDoc(t *testing.T) {
	e := newServer(quietLogger(), testHandlers(), passthrough)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Shop API")
	assert.Contains(t, rec.Body.String(), "/orders")
}
