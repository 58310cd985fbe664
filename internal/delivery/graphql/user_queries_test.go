package delivery_graphql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-service/internal/auth"
	"blog-service/internal/custom_errors"
	"blog-service/internal/events"
	"blog-service/internal/logger"
	prometheus_metrics "blog-service/internal/metrics/prometheus"
	"blog-service/internal/model"
	user_service_mock "blog-service/mocks/user"
)

func newTestResolver(userService *user_service_mock.Service) *RootResolver {
	log := logger.New("test")
	bus := events.NewInMemoryBus[model.PublishedEvent](log)
	return NewRootResolver(nil, userService, bus, prometheus_metrics.NewPrometheusMetricsProvider(), log)
}

func TestMe(t *testing.T) {
	userService := new(user_service_mock.Service)
	userService.On("GetByID", mock.Anything, int64(7)).
		Return(&model.User{ID: 7, Username: "alice", Email: "alice@example.com"}, nil)

	r := newTestResolver(userService)
	ctx := auth.WithUserID(context.Background(), 7)

	got, err := r.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username())
	assert.Equal(t, "alice@example.com", got.Email())

	userService.AssertExpectations(t)
}

func TestMe_Unauthenticated(t *testing.T) {
	userService := new(user_service_mock.Service)
	r := newTestResolver(userService)

	got, err := r.Me(context.Background())
	assert.Nil(t, got)
	assert.Equal(t, codeUnauthorized, extensionCode(t, err))
	userService.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestMe_UserGone(t *testing.T) {
	userService := new(user_service_mock.Service)
	userService.On("GetByID", mock.Anything, int64(7)).Return(nil, custom_errors.ErrUserNotFound)

	r := newTestResolver(userService)
	ctx := auth.WithUserID(context.Background(), 7)

	got, err := r.Me(ctx)
	assert.Nil(t, got)
	assert.Equal(t, codeNotFound, extensionCode(t, err))
	userService.AssertExpectations(t)
}
