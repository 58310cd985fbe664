package delivery_graphql

import (
	"context"
	"log/slog"

	"blog-service/internal/model"
)

type createUserInput struct {
	Username string
	Email    string
	Password string
}

type loginInput struct {
	Email    string
	Password string
}

type registerRequestInternal struct {
	Username string `validate:"required,min=3,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type loginRequestInternal struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (r *RootResolver) Register(ctx context.Context, args struct{ Input createUserInput }) (*authResponseResolver, error) {
	validationReq := &registerRequestInternal{
		Username: args.Input.Username,
		Email:    args.Input.Email,
		Password: args.Input.Password,
	}
	if err := validate.Struct(validationReq); err != nil {
		return nil, newAPIError(codeBadInput, "invalid registration input")
	}

	resp, err := r.userService.Register(ctx, &model.RegisterDTO{
		Username: args.Input.Username,
		Email:    args.Input.Email,
		Password: args.Input.Password,
	})
	if err != nil {
		r.log.Debug("Registration failed",
			slog.String("username", args.Input.Username),
			slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return &authResponseResolver{resp: resp}, nil
}

func (r *RootResolver) Login(ctx context.Context, args struct{ Input loginInput }) (*authResponseResolver, error) {
	validationReq := &loginRequestInternal{
		Email:    args.Input.Email,
		Password: args.Input.Password,
	}
	if err := validate.Struct(validationReq); err != nil {
		return nil, newAPIError(codeBadInput, "invalid login input")
	}

	resp, err := r.userService.Login(ctx, &model.LoginDTO{
		Email:    args.Input.Email,
		Password: args.Input.Password,
	})
	if err != nil {
		r.log.Debug("Login failed",
			slog.String("email", args.Input.Email),
			slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return &authResponseResolver{resp: resp}, nil
}
