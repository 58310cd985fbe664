package user_service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"blog-service/internal/auth"
	"blog-service/internal/custom_errors"
	"blog-service/internal/logger"
	"blog-service/internal/model"
	user_repository "blog-service/internal/repository/user"
)

type UserService struct {
	userRepo user_repository.Repository
	tokens   *auth.TokenManager
	log      *logger.Logger
}

func NewUserService(userRepo user_repository.Repository, tokens *auth.TokenManager, log *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

func (s *UserService) Register(ctx context.Context, input *model.RegisterDTO) (*model.AuthResponse, error) {
	if _, err := s.userRepo.GetByUsername(ctx, input.Username); err == nil {
		s.log.Debug("Username already taken", slog.String("username", input.Username))
		return nil, custom_errors.ErrUsernameExists
	} else if !errors.Is(err, custom_errors.ErrUserNotFound) {
		s.log.Error("Failed to check username", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		s.log.Debug("Email already taken", slog.String("email", input.Email))
		return nil, custom_errors.ErrEmailExists
	} else if !errors.Is(err, custom_errors.ErrUserNotFound) {
		s.log.Error("Failed to check email", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}

	newUser := &model.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hash),
	}
	createdUser, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrUsernameExists):
			return nil, custom_errors.ErrUsernameExists
		case errors.Is(err, custom_errors.ErrEmailExists):
			return nil, custom_errors.ErrEmailExists
		default:
			s.log.Error("Failed to create user", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	token, err := s.tokens.Generate(createdUser)
	if err != nil {
		s.log.Error("Failed to generate token", slog.String("error", err.Error()))
		return nil, err
	}

	s.log.Info("User registered",
		slog.Int64("id", createdUser.ID),
		slog.String("username", createdUser.Username))
	return &model.AuthResponse{Token: token, User: createdUser}, nil
}

func (s *UserService) Login(ctx context.Context, input *model.LoginDTO) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Login for unknown email", slog.String("email", input.Email))
			return nil, custom_errors.ErrInvalidCredentials
		}
		s.log.Error("Failed to get user by email", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		s.log.Debug("Password mismatch", slog.String("email", input.Email))
		return nil, custom_errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		s.log.Error("Failed to generate token", slog.String("error", err.Error()))
		return nil, err
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			return nil, custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to get user by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return user, nil
}
