package delivery_graphql

import (
	"errors"

	"blog-service/internal/custom_errors"
)

const (
	codeNotFound     = "NOT_FOUND"
	codeForbidden    = "FORBIDDEN"
	codeUnauthorized = "UNAUTHORIZED"
	codeConflict     = "CONFLICT"
	codeBadInput     = "BAD_USER_INPUT"
	codeInternal     = "INTERNAL"
)

// apiError is what resolvers return to the transport; the code travels in
// the GraphQL error extensions.
type apiError struct {
	code    string
	message string
}

func (e *apiError) Error() string {
	return e.message
}

func (e *apiError) Extensions() map[string]any {
	return map[string]any{"code": e.code}
}

func newAPIError(code, message string) *apiError {
	return &apiError{code: code, message: message}
}

// mapError translates service sentinels into user-visible API errors.
func mapError(err error) error {
	switch {
	case errors.Is(err, custom_errors.ErrPostNotFound):
		return newAPIError(codeNotFound, "blog post not found")
	case errors.Is(err, custom_errors.ErrUserNotFound):
		return newAPIError(codeNotFound, "user not found")
	case errors.Is(err, custom_errors.ErrForbidden):
		return newAPIError(codeForbidden, "you can only modify your own blog posts")
	case errors.Is(err, custom_errors.ErrUnauthorized), errors.Is(err, custom_errors.ErrInvalidToken):
		return newAPIError(codeUnauthorized, "authentication required")
	case errors.Is(err, custom_errors.ErrInvalidCredentials):
		return newAPIError(codeUnauthorized, "invalid credentials")
	case errors.Is(err, custom_errors.ErrUsernameExists):
		return newAPIError(codeConflict, "username already exists")
	case errors.Is(err, custom_errors.ErrEmailExists):
		return newAPIError(codeConflict, "email already exists")
	case errors.Is(err, custom_errors.ErrValidation), errors.Is(err, custom_errors.ErrInvalidInput):
		return newAPIError(codeBadInput, "invalid input")
	default:
		return newAPIError(codeInternal, "internal error")
	}
}
