package user_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"blog-service/internal/custom_errors"
	"blog-service/internal/logger"
	"blog-service/internal/model"
	"blog-service/internal/repository/postgres/db"
)

const uniqueViolationCode = "23505"

type UserRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewUserRepository(db db.PgDB, log *logger.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

func (u *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	now := pgtype.Timestamp{Time: time.Now(), Valid: true}

	args := pgx.NamedArgs{
		"username":   user.Username,
		"email":      user.Email,
		"password":   user.Password,
		"created_at": now,
		"updated_at": now,
	}

	query := `
		INSERT INTO users (username, email, password, created_at, updated_at)
		VALUES (@username, @email, @password, @created_at, @updated_at)
		RETURNING id, username, email, password, created_at, updated_at`

	var createdUser model.User
	err := u.db.QueryRow(ctx, query, args).Scan(
		&createdUser.ID,
		&createdUser.Username,
		&createdUser.Email,
		&createdUser.Password,
		&createdUser.CreatedAt,
		&createdUser.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			u.log.Debug("Unique violation creating user",
				slog.String("constraint", pgErr.ConstraintName),
				slog.String("username", user.Username))
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, custom_errors.ErrEmailExists
			}
			return nil, custom_errors.ErrUsernameExists
		}
		u.log.Error("Error creating user", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return &createdUser, nil
}

func (u *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := pgx.NamedArgs{"id": id}
	query := `SELECT id, username, email, password, created_at, updated_at
				FROM users WHERE id = @id`

	return u.scanUser(ctx, query, args, slog.Int64("id", id))
}

func (u *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := pgx.NamedArgs{"email": email}
	query := `SELECT id, username, email, password, created_at, updated_at
				FROM users WHERE email = @email`

	return u.scanUser(ctx, query, args, slog.String("email", email))
}

func (u *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := pgx.NamedArgs{"username": username}
	query := `SELECT id, username, email, password, created_at, updated_at
				FROM users WHERE username = @username`

	return u.scanUser(ctx, query, args, slog.String("username", username))
}

func (u *UserRepository) scanUser(ctx context.Context, query string, args pgx.NamedArgs, attr slog.Attr) (*model.User, error) {
	user := &model.User{}
	err := u.db.QueryRow(ctx, query, args).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			u.log.Debug("User not found", attr)
			return nil, custom_errors.ErrUserNotFound
		}
		u.log.Error("Error getting user", attr, slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return user, nil
}
