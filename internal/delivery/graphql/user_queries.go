package delivery_graphql

import (
	"context"
	"log/slog"
)

// Me returns the authenticated caller, letting clients restore a session
// from a stored token.
func (r *RootResolver) Me(ctx context.Context) (*userResolver, error) {
	userID, err := actingUser(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	user, err := r.userService.GetByID(ctx, userID)
	if err != nil {
		r.log.Error("Failed to load current user",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return &userResolver{user: user}, nil
}
