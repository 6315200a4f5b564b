package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mandic19/Shop/internal/services"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

var errBucketMissing = errors.New("image bucket does not exist")

// Pinger is satisfied by *pgxpool.Pool and caching.CacheService.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db      Pinger
	cache   Pinger
	storage services.MinioService
	bucket  string
	version string
	started time.Time
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db, cache Pinger, storage services.MinioService, bucket, version string) *HealthHandlers {
	return &HealthHandlers{
		db:      db,
		cache:   cache,
		storage: storage,
		bucket:  bucket,
		version: version,
		started: time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string, 3),
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	}

	checks := map[string]func(context.Context) error{
		"database": h.db.Ping,
		"redis":    h.cache.Ping,
		"storage":  h.checkStorage,
	}
	for name, check := range checks {
		if err := check(ctx); err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "unhealthy"
			continue
		}
		health.Services[name] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) checkStorage(ctx context.Context) error {
	exists, err := h.storage.BucketExists(ctx, h.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return errBucketMissing
	}
	return nil
}

// ReadinessCheck reports whether the database and cache can serve traffic.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if h.db.Ping(ctx) != nil || h.cache.Ping(ctx) != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Critical services unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck determines if the application is running (basic liveness probe)
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
