package user_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog-service/internal/auth"
	"blog-service/internal/custom_errors"
	"blog-service/internal/logger"
	"blog-service/internal/model"
	user_repository_mock "blog-service/mocks/user"
)

func newTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

func TestUserService_Register(t *testing.T) {
	log := logger.New("test")
	tests := []struct {
		name        string
		mocks       func(userRepo *user_repository_mock.Repository)
		input       *model.RegisterDTO
		wantErr     bool
		wantErrType error
	}{
		{
			name: "Success",
			mocks: func(userRepo *user_repository_mock.Repository) {
				userRepo.On("GetByUsername", mock.Anything, "alice").Return(nil, custom_errors.ErrUserNotFound)
				userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, custom_errors.ErrUserNotFound)
				userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(&model.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)
			},
			input: &model.RegisterDTO{Username: "alice", Email: "alice@example.com", Password: "secret1"},
		},
		{
			name: "Username taken",
			mocks: func(userRepo *user_repository_mock.Repository) {
				userRepo.On("GetByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)
			},
			input:       &model.RegisterDTO{Username: "alice", Email: "new@example.com", Password: "secret1"},
			wantErr:     true,
			wantErrType: custom_errors.ErrUsernameExists,
		},
		{
			name: "Email taken",
			mocks: func(userRepo *user_repository_mock.Repository) {
				userRepo.On("GetByUsername", mock.Anything, "newuser").Return(nil, custom_errors.ErrUserNotFound)
				userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&model.User{ID: 1, Email: "alice@example.com"}, nil)
			},
			input:       &model.RegisterDTO{Username: "newuser", Email: "alice@example.com", Password: "secret1"},
			wantErr:     true,
			wantErrType: custom_errors.ErrEmailExists,
		},
		{
			name: "Duplicate surfaces from insert",
			mocks: func(userRepo *user_repository_mock.Repository) {
				userRepo.On("GetByUsername", mock.Anything, "alice").Return(nil, custom_errors.ErrUserNotFound)
				userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, custom_errors.ErrUserNotFound)
				userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(nil, custom_errors.ErrEmailExists)
			},
			input:       &model.RegisterDTO{Username: "alice", Email: "alice@example.com", Password: "secret1"},
			wantErr:     true,
			wantErrType: custom_errors.ErrEmailExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(user_repository_mock.Repository)
			if tt.mocks != nil {
				tt.mocks(userRepo)
			}

			s := NewUserService(userRepo, newTokens(), log)
			got, err := s.Register(context.Background(), tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrType != nil {
					assert.True(t, errors.Is(err, tt.wantErrType), "expected error type %T, got %T", tt.wantErrType, err)
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, got.Token)
				assert.Equal(t, tt.input.Username, got.User.Username)
			}

			userRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Register_HashesPassword(t *testing.T) {
	log := logger.New("test")
	userRepo := new(user_repository_mock.Repository)

	userRepo.On("GetByUsername", mock.Anything, "alice").Return(nil, custom_errors.ErrUserNotFound)
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, custom_errors.ErrUserNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Password != "secret1" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")) == nil
	})).Return(&model.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)

	s := NewUserService(userRepo, newTokens(), log)
	_, err := s.Register(context.Background(), &model.RegisterDTO{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestUserService_Login(t *testing.T) {
	log := logger.New("test")
	tests := []struct {
		name        string
		mocks       func(t *testing.T, userRepo *user_repository_mock.Repository)
		input       *model.LoginDTO
		wantErr     bool
		wantErrType error
	}{
		{
			name: "Success",
			mocks: func(t *testing.T, userRepo *user_repository_mock.Repository) {
				userRepo.On("GetByEmail", mock.Anything, "alice@example.com").
					Return(&model.User{ID: 1, Username: "alice", Email: "alice@example.com", Password: hashed(t, "secret1")}, nil)
			},
			input: &model.LoginDTO{Email: "alice@example.com", Password: "secret1"},
		},
		{
			name: "Unknown email",
			mocks: func(t *testing.T, userRepo *user_repository_mock.Repository) {
				userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, custom_errors.ErrUserNotFound)
			},
			input:       &model.LoginDTO{Email: "ghost@example.com", Password: "secret1"},
			wantErr:     true,
			wantErrType: custom_errors.ErrInvalidCredentials,
		},
		{
			name: "Wrong password",
			mocks: func(t *testing.T, userRepo *user_repository_mock.Repository) {
				userRepo.On("GetByEmail", mock.Anything, "alice@example.com").
					Return(&model.User{ID: 1, Email: "alice@example.com", Password: hashed(t, "secret1")}, nil)
			},
			input:       &model.LoginDTO{Email: "alice@example.com", Password: "wrong"},
			wantErr:     true,
			wantErrType: custom_errors.ErrInvalidCredentials,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(user_repository_mock.Repository)
			if tt.mocks != nil {
				tt.mocks(t, userRepo)
			}

			tokens := newTokens()
			s := NewUserService(userRepo, tokens, log)
			got, err := s.Login(context.Background(), tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrType != nil {
					assert.True(t, errors.Is(err, tt.wantErrType))
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				userID, verifyErr := tokens.Verify(got.Token)
				require.NoError(t, verifyErr)
				assert.Equal(t, got.User.ID, userID)
			}

			userRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetByID(t *testing.T) {
	log := logger.New("test")
	t.Run("Success", func(t *testing.T) {
		userRepo := new(user_repository_mock.Repository)
		userRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)

		s := NewUserService(userRepo, newTokens(), log)
		got, err := s.GetByID(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("Not found", func(t *testing.T) {
		userRepo := new(user_repository_mock.Repository)
		userRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, custom_errors.ErrUserNotFound)

		s := NewUserService(userRepo, newTokens(), log)
		got, err := s.GetByID(context.Background(), 404)

		assert.Nil(t, got)
		assert.True(t, errors.Is(err, custom_errors.ErrUserNotFound))
	})
}
