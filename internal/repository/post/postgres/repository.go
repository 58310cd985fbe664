package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"blog-service/internal/custom_errors"
	"blog-service/internal/logger"
	"blog-service/internal/model"
	"blog-service/internal/repository/postgres/db"
)

type PostRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewPostRepository(db db.PgDB, log *logger.Logger) *PostRepository {
	return &PostRepository{db: db, log: log}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	now := pgtype.Timestamp{Time: time.Now(), Valid: true}

	args := pgx.NamedArgs{
		"author_id":  post.AuthorID,
		"title":      post.Title,
		"content":    post.Content,
		"published":  post.Published,
		"created_at": now,
		"updated_at": now,
	}

	query := `
		INSERT INTO posts (author_id, title, content, published, created_at, updated_at)
		VALUES (@author_id, @title, @content, @published, @created_at, @updated_at)
		RETURNING id, author_id, title, content, published, created_at, updated_at`

	var createdPost model.Post
	err := p.db.QueryRow(ctx, query, args).Scan(
		&createdPost.ID,
		&createdPost.AuthorID,
		&createdPost.Title,
		&createdPost.Content,
		&createdPost.Published,
		&createdPost.CreatedAt,
		&createdPost.UpdatedAt,
	)

	if err != nil {
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return &createdPost, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	args := pgx.NamedArgs{"id": id}
	query := `SELECT id, author_id, title, content, published, created_at, updated_at
				FROM posts WHERE id = @id`

	post := &model.Post{}
	err := p.db.QueryRow(ctx, query, args).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.Published,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.Int64("id", id), slog.String("error", err.Error()))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return post, nil
}

func (p *PostRepository) GetByAuthor(ctx context.Context, authorID int64) ([]*model.Post, error) {
	args := pgx.NamedArgs{"author_id": authorID}
	query := `SELECT id, author_id, title, content, published, created_at, updated_at
				FROM posts WHERE author_id = @author_id ORDER BY created_at DESC`

	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.log.Error("Error getting posts by author", slog.Int64("author_id", authorID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return p.scanPosts(rows)
}

func (p *PostRepository) GetPublished(ctx context.Context) ([]*model.Post, error) {
	query := `SELECT id, author_id, title, content, published, created_at, updated_at
				FROM posts WHERE published = TRUE ORDER BY created_at DESC`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		p.log.Error("Error getting published posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return p.scanPosts(rows)
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	args := pgx.NamedArgs{
		"id":         id,
		"title":      update.Title,
		"content":    update.Content,
		"published":  update.Published,
		"updated_at": pgtype.Timestamp{Time: time.Now(), Valid: true},
	}

	query := `
		UPDATE posts
		SET title = @title, content = @content, published = @published, updated_at = @updated_at
		WHERE id = @id
		RETURNING id, author_id, title, content, published, created_at, updated_at`

	var updatedPost model.Post
	err := p.db.QueryRow(ctx, query, args).Scan(
		&updatedPost.ID,
		&updatedPost.AuthorID,
		&updatedPost.Title,
		&updatedPost.Content,
		&updatedPost.Published,
		&updatedPost.CreatedAt,
		&updatedPost.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found for update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error updating post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &updatedPost, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	args := pgx.NamedArgs{"id": id}
	query := `DELETE FROM posts WHERE id = @id`

	tag, err := p.db.Exec(ctx, query, args)
	if err != nil {
		p.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if tag.RowsAffected() == 0 {
		p.log.Debug("Post not found for delete", slog.Int64("id", id))
		return custom_errors.ErrPostNotFound
	}
	return nil
}

func (p *PostRepository) scanPosts(rows pgx.Rows) ([]*model.Post, error) {
	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Title,
			&post.Content,
			&post.Published,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			p.log.Error("Error scanning post row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		p.log.Error("Error iterating post rows", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return posts, nil
}
