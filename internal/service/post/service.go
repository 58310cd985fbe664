package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"blog-service/internal/custom_errors"
	"blog-service/internal/events"
	"blog-service/internal/logger"
	"blog-service/internal/model"
	post_repository "blog-service/internal/repository/post"
	"blog-service/internal/repository/postgres"
	user_repository "blog-service/internal/repository/user"
)

type PostService struct {
	postRepo post_repository.Repository
	userRepo user_repository.Repository
	uow      postgres.UnitOfWork
	bus      events.Bus[model.PublishedEvent]
	log      *logger.Logger
}

func NewPostService(
	postRepo post_repository.Repository,
	userRepo user_repository.Repository,
	uow postgres.UnitOfWork,
	bus events.Bus[model.PublishedEvent],
	log *logger.Logger,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		uow:      uow,
		bus:      bus,
		log:      log,
	}
}

func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error) {
	author, err := s.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Author not found for create", slog.Int64("author_id", post.AuthorID))
			return nil, custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to get author", slog.Int64("author_id", post.AuthorID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	// Omitted flag means the post goes out immediately.
	published := true
	if post.Published != nil {
		published = *post.Published
	}

	newPost := &model.Post{
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		Content:   post.Content,
		Published: published,
	}
	createdPost, err := s.postRepo.Create(ctx, newPost)
	if err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	postDetailed := &model.PostDetailed{
		Post:   createdPost,
		Author: author,
	}

	if createdPost.Published {
		s.emitPublished(postDetailed)
	}

	return postDetailed, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			s.log.Debug("Post not found", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		default:
			s.log.Error("Failed to get post by id",
				slog.String("error", err.Error()),
				slog.Int64("id", id))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	author, err := s.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrUserNotFound):
			s.log.Debug("Author not found", slog.Int64("author_id", post.AuthorID))
			return nil, custom_errors.ErrUserNotFound
		default:
			s.log.Error("Failed to get author",
				slog.String("error", err.Error()),
				slog.Int64("author_id", post.AuthorID))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	return &model.PostDetailed{Post: post, Author: author}, nil
}

func (s *PostService) ListPublished(ctx context.Context) ([]*model.PostDetailed, error) {
	posts, err := s.postRepo.GetPublished(ctx)
	if err != nil {
		s.log.Error("Failed to list published posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return s.resolveAuthors(ctx, posts)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID int64) ([]*model.PostDetailed, error) {
	posts, err := s.postRepo.GetByAuthor(ctx, authorID)
	if err != nil {
		s.log.Error("Failed to list posts by author",
			slog.Int64("author_id", authorID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return s.resolveAuthors(ctx, posts)
}

func (s *PostService) UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) (result *model.PostDetailed, err error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	postRepo := tx.PostRepository()
	userRepo := tx.UserRepository()

	existingPost, err := postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for update", slog.String("error", err.Error()), slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if existingPost.AuthorID != userID {
		s.log.Debug("User is not author of post",
			slog.Int64("user_id", userID),
			slog.Int64("author_id", existingPost.AuthorID))
		return nil, custom_errors.ErrForbidden
	}

	updatedPost, err := postRepo.Update(ctx, id, post)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to update post", slog.String("error", err.Error()), slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}

	author, err := userRepo.GetByID(ctx, updatedPost.AuthorID)
	if err != nil {
		s.log.Error("Failed to get author for updated post",
			slog.Int64("author_id", updatedPost.AuthorID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	postDetailed := &model.PostDetailed{
		Post:   updatedPost,
		Author: author,
	}

	// Gated on the requested flag, not on a false-to-true transition: saving
	// an already-published post emits again.
	if post.Published {
		s.emitPublished(postDetailed)
	}

	return postDetailed, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID int64, id int64) (err error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	postRepo := tx.PostRepository()

	post, err := postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for delete", slog.Int64("id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for delete", slog.String("error", err.Error()), slog.Int64("id", id))
		return custom_errors.ErrDatabaseQuery
	}
	if post.AuthorID != userID {
		s.log.Debug("User is not author of post",
			slog.Int64("user_id", userID),
			slog.Int64("author_id", post.AuthorID))
		return custom_errors.ErrForbidden
	}

	if err = postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to delete post", slog.String("error", err.Error()), slog.Int64("id", id))
		return custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return nil
}

// emitPublished pushes a PublishedEvent onto the bus. Emission is not
// transactional with persistence: a failure here is logged and swallowed so
// a lost notification never fails the mutation that produced it.
func (s *PostService) emitPublished(post *model.PostDetailed) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Recovered from event emission failure",
				slog.Int64("post_id", post.Post.ID),
				slog.Any("panic", r))
		}
	}()

	s.bus.Publish(events.TopicPostPublished, model.PublishedEvent{
		Post:       post.Post,
		Author:     post.Author,
		OccurredAt: time.Now(),
	})
	s.log.Debug("Published event emitted",
		slog.Int64("post_id", post.Post.ID),
		slog.String("topic", events.TopicPostPublished))
}

func (s *PostService) resolveAuthors(ctx context.Context, posts []*model.Post) ([]*model.PostDetailed, error) {
	authors := make(map[int64]*model.User)
	result := make([]*model.PostDetailed, 0, len(posts))

	for _, post := range posts {
		author, cached := authors[post.AuthorID]
		if !cached {
			var err error
			author, err = s.userRepo.GetByID(ctx, post.AuthorID)
			if err != nil {
				if errors.Is(err, custom_errors.ErrUserNotFound) {
					s.log.Debug("Author not found", slog.Int64("author_id", post.AuthorID))
					return nil, custom_errors.ErrUserNotFound
				}
				s.log.Error("Failed to get author",
					slog.String("error", err.Error()),
					slog.Int64("author_id", post.AuthorID))
				return nil, custom_errors.ErrDatabaseQuery
			}
			authors[post.AuthorID] = author
		}

		result = append(result, &model.PostDetailed{Post: post, Author: author})
	}
	return result, nil
}
