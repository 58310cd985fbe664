package post_service

import (
	"context"

	"blog-service/internal/model"
)

type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error)
	GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error)
	ListPublished(ctx context.Context) ([]*model.PostDetailed, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*model.PostDetailed, error)
	UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) (*model.PostDetailed, error)
	DeletePost(ctx context.Context, userID int64, id int64) error
}
