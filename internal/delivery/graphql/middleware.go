package delivery_graphql

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"blog-service/internal/auth"
	"blog-service/internal/logger"
	"blog-service/internal/metrics"
)

// Auth attaches the acting user to the request context when a valid bearer
// token is present. It never rejects: unauthenticated access is allowed and
// resolvers that need a caller enforce it themselves.
func Auth(tokens *auth.TokenManager, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				log.Debug("Rejected bearer token", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// Logging logs every request and feeds the request counters, labeled with
// the GraphQL operation name when one is present in the request body.
func Logging(log *logger.Logger, metricsProvider metrics.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operation := operationName(r)
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			status := strconv.Itoa(rec.status)

			metricsProvider.IncrementGraphQLRequests(operation, status)
			metricsProvider.RecordGraphQLRequestDuration(operation, status, duration)

			log.Info("Handled request",
				slog.String("operation", operation),
				slog.String("status", status),
				slog.Duration("duration", duration))
		})
	}
}

// operationPeekLimit bounds how much of the body is buffered while looking
// for the operation name. Larger bodies pass through untouched.
const operationPeekLimit = 1 << 20

// operationName peeks at the request body for the GraphQL operation name,
// restoring the body for the actual handler.
func operationName(r *http.Request) string {
	if r.Method != http.MethodPost || r.Body == nil {
		return r.Method
	}

	peeked, err := io.ReadAll(io.LimitReader(r.Body, operationPeekLimit))
	if err != nil {
		return "unknown"
	}
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(peeked), r.Body))

	var payload struct {
		OperationName string `json:"operationName"`
	}
	if err := json.Unmarshal(peeked, &payload); err != nil || payload.OperationName == "" {
		return "anonymous"
	}
	return payload.OperationName
}
