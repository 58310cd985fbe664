package delivery_graphql

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-service/internal/auth"
	"blog-service/internal/logger"
	"blog-service/internal/model"
)

func TestAuthMiddleware_ValidToken(t *testing.T) {
	log := logger.New("test")
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	token, err := tokens.Generate(&model.User{ID: 7, Email: "alice@example.com"})
	require.NoError(t, err)

	var gotID int64
	var gotOK bool
	handler := Auth(tokens, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = auth.UserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, gotOK)
	assert.Equal(t, int64(7), gotID)
}

func TestAuthMiddleware_PassesThroughWithoutToken(t *testing.T) {
	log := logger.New("test")
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	var gotOK bool
	handler := Auth(tokens, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = auth.UserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.False(t, gotOK)
}

func TestAuthMiddleware_InvalidTokenIsAnonymous(t *testing.T) {
	log := logger.New("test")
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	otherTokens := auth.NewTokenManager("other-secret", time.Hour)
	forged, err := otherTokens.Generate(&model.User{ID: 7})
	require.NoError(t, err)

	status := http.StatusTeapot
	var gotOK bool
	handler := Auth(tokens, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = auth.UserID(r.Context())
		w.WriteHeader(status)
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// The request still reaches the handler, just unauthenticated.
	assert.False(t, gotOK)
	assert.Equal(t, status, rec.Code)
}

func TestOperationName(t *testing.T) {
	t.Run("Named operation", func(t *testing.T) {
		body := `{"operationName":"CreateBlogPost","query":"mutation CreateBlogPost { ... }"}`
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))

		assert.Equal(t, "CreateBlogPost", operationName(req))
	})

	t.Run("Anonymous operation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ blogPosts { id } }"}`))

		assert.Equal(t, "anonymous", operationName(req))
	})

	t.Run("Body restored for next handler", func(t *testing.T) {
		body := `{"operationName":"Login"}`
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))

		_ = operationName(req)

		buf := make([]byte, len(body))
		n, _ := req.Body.Read(buf)
		assert.Equal(t, body, string(buf[:n]))
	})

	t.Run("Oversized body passes through intact", func(t *testing.T) {
		padding := strings.Repeat("x", operationPeekLimit)
		body := `{"operationName":"` + padding + `"}`
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))

		// Only a bounded prefix is parsed, so the name is not extracted.
		assert.Equal(t, "anonymous", operationName(req))

		restored, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.Equal(t, body, string(restored))
	})

	t.Run("GET falls back to method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graphql", nil)

		assert.Equal(t, http.MethodGet, operationName(req))
	})
}
