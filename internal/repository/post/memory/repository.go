package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"blog-service/internal/custom_errors"
	"blog-service/internal/logger"
	"blog-service/internal/model"
)

type PostRepository struct {
	log    *logger.Logger
	mu     sync.RWMutex
	posts  map[int64]*model.Post
	nextID int64
}

func NewPostRepository(log *logger.Logger) *PostRepository {
	return &PostRepository{
		log:    log,
		posts:  make(map[int64]*model.Post),
		nextID: 1,
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := pgtype.Timestamp{Time: time.Now(), Valid: true}

	newPost := &model.Post{
		ID:        p.nextID,
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.nextID++

	p.posts[newPost.ID] = newPost

	result := *newPost
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	result := *post
	return &result, nil
}

func (p *PostRepository) GetByAuthor(ctx context.Context, authorID int64) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []*model.Post
	for _, post := range p.posts {
		if post.AuthorID == authorID {
			postCopy := *post
			result = append(result, &postCopy)
		}
	}

	sortByCreatedDesc(result)
	return result, nil
}

func (p *PostRepository) GetPublished(ctx context.Context) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []*model.Post
	for _, post := range p.posts {
		if post.Published {
			postCopy := *post
			result = append(result, &postCopy)
		}
	}

	sortByCreatedDesc(result)
	return result, nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	post.Title = update.Title
	post.Content = update.Content
	post.Published = update.Published
	post.UpdatedAt = pgtype.Timestamp{Time: time.Now(), Valid: true}

	result := *post
	return &result, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.posts[id]; !exists {
		return custom_errors.ErrPostNotFound
	}

	delete(p.posts, id)
	return nil
}

func sortByCreatedDesc(posts []*model.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Time.Equal(posts[j].CreatedAt.Time) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.Time.After(posts[j].CreatedAt.Time)
	})
}
