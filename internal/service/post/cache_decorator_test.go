package post_service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"blog-service/internal/custom_errors"
	"blog-service/internal/events"
	"blog-service/internal/logger"
	prometheus_metrics "blog-service/internal/metrics/prometheus"
	"blog-service/internal/model"
	cache_mock "blog-service/mocks/cache"
	post_repository_mock "blog-service/mocks/post"
	postgres_mock "blog-service/mocks/postgres"
	user_repository_mock "blog-service/mocks/user"
)

func newDecorated(postRepo *post_repository_mock.Repository, userRepo *user_repository_mock.Repository, uow *postgres_mock.UnitOfWork, postCache *cache_mock.PostCache) Service {
	log := logger.New("test")
	bus := events.NewInMemoryBus[model.PublishedEvent](log)
	inner := NewPostService(postRepo, userRepo, uow, bus, log)
	return NewPostServiceCacheDecorator(inner, postCache, log, prometheus_metrics.NewPrometheusMetricsProvider())
}

func TestCacheDecorator_GetPostByID_Hit(t *testing.T) {
	postRepo := new(post_repository_mock.Repository)
	userRepo := new(user_repository_mock.Repository)
	uow := new(postgres_mock.UnitOfWork)
	postCache := new(cache_mock.PostCache)

	cached := &model.PostDetailed{
		Post:   &model.Post{ID: 1, AuthorID: 1, Title: "Cached"},
		Author: &model.User{ID: 1, Username: "alice"},
	}
	postCache.On("GetPost", mock.Anything, int64(1)).Return(cached, nil)

	s := newDecorated(postRepo, userRepo, uow, postCache)
	got, err := s.GetPostByID(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, cached, got)
	// A hit never touches the repositories.
	postRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	postCache.AssertExpectations(t)
}

func TestCacheDecorator_GetPostByID_MissFillsCache(t *testing.T) {
	postRepo := new(post_repository_mock.Repository)
	userRepo := new(user_repository_mock.Repository)
	uow := new(postgres_mock.UnitOfWork)
	postCache := new(cache_mock.PostCache)

	postCache.On("GetPost", mock.Anything, int64(1)).Return(nil, custom_errors.ErrCacheMiss)
	postRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.Post{ID: 1, AuthorID: 1, Title: "Fresh"}, nil)
	userRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)
	postCache.On("SetPost", mock.Anything, mock.AnythingOfType("*model.PostDetailed")).Return(nil)

	s := newDecorated(postRepo, userRepo, uow, postCache)
	got, err := s.GetPostByID(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "Fresh", got.Post.Title)
	postCache.AssertExpectations(t)
	postRepo.AssertExpectations(t)
}

func TestCacheDecorator_GetPostByID_CacheFailureFallsThrough(t *testing.T) {
	postRepo := new(post_repository_mock.Repository)
	userRepo := new(user_repository_mock.Repository)
	uow := new(postgres_mock.UnitOfWork)
	postCache := new(cache_mock.PostCache)

	postCache.On("GetPost", mock.Anything, int64(1)).Return(nil, errors.New("redis down"))
	postRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.Post{ID: 1, AuthorID: 1, Title: "Fresh"}, nil)
	userRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)
	postCache.On("SetPost", mock.Anything, mock.AnythingOfType("*model.PostDetailed")).Return(errors.New("redis down"))

	s := newDecorated(postRepo, userRepo, uow, postCache)
	got, err := s.GetPostByID(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "Fresh", got.Post.Title)
}

func TestCacheDecorator_CreatePost_SeedsCache(t *testing.T) {
	postRepo := new(post_repository_mock.Repository)
	userRepo := new(user_repository_mock.Repository)
	uow := new(postgres_mock.UnitOfWork)
	postCache := new(cache_mock.PostCache)

	userRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)
	postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).
		Return(&model.Post{ID: 1, AuthorID: 1, Title: "Hi", Published: true}, nil)
	postCache.On("SetPost", mock.Anything, mock.AnythingOfType("*model.PostDetailed")).Return(nil)

	s := newDecorated(postRepo, userRepo, uow, postCache)
	_, err := s.CreatePost(context.Background(), &model.CreatePostDTO{AuthorID: 1, Title: "Hi", Content: "Body"})

	assert.NoError(t, err)
	postCache.AssertExpectations(t)
}

func TestCacheDecorator_UpdatePost_Invalidates(t *testing.T) {
	postRepo := new(post_repository_mock.Repository)
	userRepo := new(user_repository_mock.Repository)
	uow := new(postgres_mock.UnitOfWork)
	tx := new(postgres_mock.Transaction)
	postCache := new(cache_mock.PostCache)

	uow.On("Begin", mock.Anything).Return(tx, nil)
	tx.On("PostRepository").Return(postRepo)
	tx.On("UserRepository").Return(userRepo)
	postRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.Post{ID: 1, AuthorID: 1}, nil)
	postRepo.On("Update", mock.Anything, int64(1), mock.AnythingOfType("*model.UpdatePostDTO")).
		Return(&model.Post{ID: 1, AuthorID: 1, Title: "New", Published: false}, nil)
	userRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	postCache.On("DeletePost", mock.Anything, int64(1)).Return(nil)

	s := newDecorated(postRepo, userRepo, uow, postCache)
	_, err := s.UpdatePost(context.Background(), 1, 1, &model.UpdatePostDTO{Title: "New", Content: "Body", Published: false})

	assert.NoError(t, err)
	postCache.AssertExpectations(t)
}

func TestCacheDecorator_DeletePost_Invalidates(t *testing.T) {
	postRepo := new(post_repository_mock.Repository)
	userRepo := new(user_repository_mock.Repository)
	uow := new(postgres_mock.UnitOfWork)
	tx := new(postgres_mock.Transaction)
	postCache := new(cache_mock.PostCache)

	uow.On("Begin", mock.Anything).Return(tx, nil)
	tx.On("PostRepository").Return(postRepo)
	postRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.Post{ID: 1, AuthorID: 1}, nil)
	postRepo.On("Delete", mock.Anything, int64(1)).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	postCache.On("DeletePost", mock.Anything, int64(1)).Return(nil)

	s := newDecorated(postRepo, userRepo, uow, postCache)
	err := s.DeletePost(context.Background(), 1, 1)

	assert.NoError(t, err)
	postCache.AssertExpectations(t)
}
