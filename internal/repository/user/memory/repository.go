package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"blog-service/internal/custom_errors"
	"blog-service/internal/logger"
	"blog-service/internal/model"
)

type UserRepository struct {
	log    *logger.Logger
	mu     sync.RWMutex
	users  map[int64]*model.User
	nextID int64
}

func NewUserRepository(log *logger.Logger) *UserRepository {
	return &UserRepository{
		log:    log,
		users:  make(map[int64]*model.User),
		nextID: 1,
	}
}

func (u *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, existing := range u.users {
		if existing.Username == user.Username {
			return nil, custom_errors.ErrUsernameExists
		}
		if existing.Email == user.Email {
			return nil, custom_errors.ErrEmailExists
		}
	}

	now := pgtype.Timestamp{Time: time.Now(), Valid: true}

	newUser := &model.User{
		ID:        u.nextID,
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	u.nextID++

	u.users[newUser.ID] = newUser

	result := *newUser
	return &result, nil
}

func (u *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	user, exists := u.users[id]
	if !exists {
		u.log.Debug("User not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrUserNotFound
	}

	result := *user
	return &result, nil
}

func (u *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for _, user := range u.users {
		if user.Email == email {
			result := *user
			return &result, nil
		}
	}

	u.log.Debug("User not found by email", slog.String("email", email))
	return nil, custom_errors.ErrUserNotFound
}

func (u *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for _, user := range u.users {
		if user.Username == username {
			result := *user
			return &result, nil
		}
	}

	u.log.Debug("User not found by username", slog.String("username", username))
	return nil, custom_errors.ErrUserNotFound
}
