package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"blog-service/internal/cache"
	"blog-service/internal/custom_errors"
	"blog-service/internal/logger"
	"blog-service/internal/metrics"
	"blog-service/internal/model"
)

// PostServiceCacheDecorator serves single-post reads from the cache and
// invalidates on every write.
type PostServiceCacheDecorator struct {
	service   Service
	postCache cache.PostCache
	log       *logger.Logger
	metrics   metrics.Provider
}

func NewPostServiceCacheDecorator(
	service Service,
	postCache cache.PostCache,
	log *logger.Logger,
	metricsProvider metrics.Provider,
) Service {
	return &PostServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		log:       log,
		metrics:   metricsProvider,
	}
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error) {
	result, err := d.service.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := d.postCache.SetPost(ctx, result); err != nil {
		d.log.Warn("Failed to cache created post",
			slog.Int64("post_id", result.Post.ID),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(start))

	return result, nil
}

func (d *PostServiceCacheDecorator) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	start := time.Now()
	cachedPost, err := d.postCache.GetPost(ctx, id)
	d.metrics.RecordCacheOperationDuration("post_get", time.Since(start))
	if err == nil {
		d.metrics.IncrementCacheHits()
		return cachedPost, nil
	}

	if errors.Is(err, custom_errors.ErrCacheMiss) {
		d.metrics.IncrementCacheMisses()
	} else {
		d.log.Warn("Failed to get post from cache",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}

	post, err := d.service.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setStart := time.Now()
	if err := d.postCache.SetPost(ctx, post); err != nil {
		d.log.Warn("Failed to cache post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(setStart))

	return post, nil
}

func (d *PostServiceCacheDecorator) ListPublished(ctx context.Context) ([]*model.PostDetailed, error) {
	return d.service.ListPublished(ctx)
}

func (d *PostServiceCacheDecorator) ListByAuthor(ctx context.Context, authorID int64) ([]*model.PostDetailed, error) {
	return d.service.ListByAuthor(ctx, authorID)
}

func (d *PostServiceCacheDecorator) UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) (*model.PostDetailed, error) {
	result, err := d.service.UpdatePost(ctx, userID, id, post)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := d.postCache.DeletePost(ctx, id); err != nil {
		d.log.Warn("Failed to invalidate post cache after update",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_delete", time.Since(start))

	return result, nil
}

func (d *PostServiceCacheDecorator) DeletePost(ctx context.Context, userID int64, id int64) error {
	if err := d.service.DeletePost(ctx, userID, id); err != nil {
		return err
	}

	start := time.Now()
	if err := d.postCache.DeletePost(ctx, id); err != nil {
		d.log.Warn("Failed to invalidate post cache after delete",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_delete", time.Since(start))

	return nil
}
