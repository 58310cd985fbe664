package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"blog-service/internal/custom_errors"
	"blog-service/internal/logger"
	"blog-service/internal/model"
)

const postCacheKeyPrefix = "post:"

type PostCache struct {
	client *Client
	log    *logger.Logger
	ttl    time.Duration
}

func NewPostCache(client *Client, log *logger.Logger, ttl time.Duration) *PostCache {
	return &PostCache{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

func (p *PostCache) GetPost(ctx context.Context, postID int64) (*model.PostDetailed, error) {
	key := p.postKey(postID)

	var post model.PostDetailed
	err := p.client.Get(ctx, key, &post)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			return nil, custom_errors.ErrCacheMiss
		}
		p.log.Error("Failed to get post from cache",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get post from cache: %w", err)
	}

	return &post, nil
}

func (p *PostCache) SetPost(ctx context.Context, post *model.PostDetailed) error {
	if post == nil || post.Post == nil {
		return custom_errors.ErrInvalidInput
	}

	key := p.postKey(post.Post.ID)
	if err := p.client.Set(ctx, key, post, p.ttl); err != nil {
		p.log.Error("Failed to set post cache",
			slog.Int64("post_id", post.Post.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to set post cache: %w", err)
	}

	p.log.Debug("Post cached",
		slog.Int64("post_id", post.Post.ID),
		slog.Duration("ttl", p.ttl))
	return nil
}

func (p *PostCache) DeletePost(ctx context.Context, postID int64) error {
	key := p.postKey(postID)
	if err := p.client.Delete(ctx, key); err != nil {
		p.log.Error("Failed to delete post from cache",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete post from cache: %w", err)
	}
	return nil
}

func (p *PostCache) postKey(postID int64) string {
	return postCacheKeyPrefix + strconv.FormatInt(postID, 10)
}
