package user_service

import (
	"context"

	"blog-service/internal/model"
)

//go:generate mockery --name Service --dir . --output ../../../mocks/user --outpkg mocks --filename UserService.go
type Service interface {
	Register(ctx context.Context, input *model.RegisterDTO) (*model.AuthResponse, error)
	Login(ctx context.Context, input *model.LoginDTO) (*model.AuthResponse, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
