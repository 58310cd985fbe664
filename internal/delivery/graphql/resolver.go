package delivery_graphql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	graphql "github.com/graph-gophers/graphql-go"

	"blog-service/internal/auth"
	"blog-service/internal/custom_errors"
	"blog-service/internal/events"
	"blog-service/internal/logger"
	"blog-service/internal/metrics"
	"blog-service/internal/model"
	post_service "blog-service/internal/service/post"
	user_service "blog-service/internal/service/user"
)

var validate = validator.New()

// RootResolver is the root of the GraphQL schema: queries, mutations and the
// publish-notification subscription hang off it.
type RootResolver struct {
	postService post_service.Service
	userService user_service.Service
	bus         events.Bus[model.PublishedEvent]
	metrics     metrics.Provider
	log         *logger.Logger
}

func NewRootResolver(
	postService post_service.Service,
	userService user_service.Service,
	bus events.Bus[model.PublishedEvent],
	metricsProvider metrics.Provider,
	log *logger.Logger,
) *RootResolver {
	return &RootResolver{
		postService: postService,
		userService: userService,
		bus:         bus,
		metrics:     metricsProvider,
		log:         log,
	}
}

// actingUser returns the authenticated caller's id or ErrUnauthorized.
func actingUser(ctx context.Context) (int64, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return 0, custom_errors.ErrUnauthorized
	}
	return userID, nil
}

func parsePostID(id graphql.ID) (int64, error) {
	parsed, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed id %q", custom_errors.ErrInvalidInput, string(id))
	}
	return parsed, nil
}
