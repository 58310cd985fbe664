package delivery_graphql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"

	"blog-service/internal/auth"
	"blog-service/internal/logger"
	"blog-service/internal/metrics"
)

// Server serves the GraphQL API over HTTP, with WebSocket upgrades on the
// same endpoint for subscriptions.
type Server struct {
	server   *http.Server
	resolver *RootResolver
	tokens   *auth.TokenManager
	metrics  metrics.Provider
	address  string
	port     int
	log      *logger.Logger
}

func NewServer(
	resolver *RootResolver,
	tokens *auth.TokenManager,
	metricsProvider metrics.Provider,
	address string,
	port int,
	log *logger.Logger,
) *Server {
	return &Server{
		resolver: resolver,
		tokens:   tokens,
		metrics:  metricsProvider,
		address:  address,
		port:     port,
		log:      log,
	}
}

func (s *Server) Run() error {
	schema := graphql.MustParseSchema(Schema, s.resolver)

	// graphqlws upgrades subscription requests to the graphql-ws protocol
	// and falls back to the relay handler for queries and mutations.
	graphqlHandler := graphqlws.NewHandlerFunc(schema, &relay.Handler{Schema: schema})

	handler := Logging(s.log, s.metrics)(
		Auth(s.tokens, s.log)(graphqlHandler),
	)

	mux := http.NewServeMux()
	mux.Handle("/graphql", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.address, s.port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.log.Info("Starting GraphQL server", slog.Int("port", s.port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		s.log.Info("Shutting down GraphQL server")
		return s.server.Shutdown(ctx)
	}
	return nil
}
