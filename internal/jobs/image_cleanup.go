package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mandic19/Shop/internal/repositories"
	"github.com/mandic19/Shop/internal/services"
)

const (
	ImageCleanupJobName = "orphaned-image-cleanup"

	// DefaultCleanupGrace keeps fresh uploads whose row may not be committed yet.
	DefaultCleanupGrace = time.Hour
)

// CleanupResult summarises one orphaned-image sweep.
type CleanupResult struct {
	Scanned int
	Orphans int
	Deleted int
	Failed  int
}

// ImageCleanup removes uploaded objects that no image row references.
type ImageCleanup struct {
	storage services.MinioService
	images  repositories.ImageRepository
	bucket  string
	grace   time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

func NewImageCleanup(storage services.MinioService, images repositories.ImageRepository, bucket string, logger *slog.Logger) *ImageCleanup {
	return &ImageCleanup{
		storage: storage,
		images:  images,
		bucket:  bucket,
		grace:   DefaultCleanupGrace,
		logger:  logger,
		now:     time.Now,
	}
}

// Run performs one sweep. Individual delete failures are counted, not fatal.
func (j *ImageCleanup) Run(ctx context.Context) (CleanupResult, error) {
	var result CleanupResult

	objects, err := j.storage.ListObjects(ctx, j.bucket, services.ImageKeyPrefix)
	if err != nil {
		return result, fmt.Errorf("failed to list stored images: %w", err)
	}
	keys, err := j.images.ListStorageKeys(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list referenced images: %w", err)
	}

	referenced := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		referenced[key] = struct{}{}
	}

	cutoff := j.now().Add(-j.grace)
	for _, obj := range objects {
		result.Scanned++
		if _, ok := referenced[obj.Key]; ok || obj.LastModified.After(cutoff) {
			continue
		}
		result.Orphans++

		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := j.storage.DeleteImage(ctx, j.bucket, obj.Key); err != nil {
			result.Failed++
			j.logger.Warn("failed to delete orphaned image", "key", obj.Key, "error", err)
			continue
		}
		result.Deleted++
	}

	j.logger.Info("orphaned image cleanup completed",
		"bucket", j.bucket,
		"scanned", result.Scanned,
		"orphans", result.Orphans,
		"deleted", result.Deleted,
		"failed", result.Failed,
	)
	return result, nil
}

// Task adapts Run to the scheduler.
func (j *ImageCleanup) Task() Task {
	return func(ctx context.Context) error {
		_, err := j.Run(ctx)
		return err
	}
}
