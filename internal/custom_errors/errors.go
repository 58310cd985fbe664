package custom_errors

import "errors"

var (
	// Not found
	ErrPostNotFound = errors.New("post not found")
	ErrUserNotFound = errors.New("user not found")

	// Authentication / authorization
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")

	// Registration conflicts
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")

	// Input
	ErrValidation   = errors.New("validation failed")
	ErrInvalidInput = errors.New("invalid input")

	// Infrastructure
	ErrDatabaseQuery = errors.New("database query error")
	ErrDatabaseScan  = errors.New("database scan error")
	ErrCacheMiss     = errors.New("cache miss")
	ErrCacheInternal = errors.New("cache internal error")
)
