package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-service/internal/clients/notifications"
	"blog-service/internal/clients/subscription"
	"blog-service/internal/config"
	"blog-service/internal/logger"
)

// notifier tails the blogPostPublished subscription and keeps a short-lived
// notification feed on stdout.
func main() {
	url := flag.String("url", "ws://localhost:8080/graphql", "GraphQL WebSocket endpoint")
	flag.Parse()

	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := subscription.NewClient(*url, log)
	eventsCh, err := client.Connect(ctx)
	if err != nil {
		log.Error("Failed to connect", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := notifications.NewStore(cfg.Notifications.TTL, log)
	store.Start(eventsCh)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Notifications.TTL)
	defer ticker.Stop()

	log.Info("Listening for published posts", slog.String("url", *url))
	for {
		select {
		case <-quit:
			log.Info("Shutting down notifier")
			cancel()
			if err := client.Close(); err != nil {
				log.Debug("Close error", slog.String("error", err.Error()))
			}
			store.Stop()
			return
		case <-ticker.C:
			live := store.Notifications()
			log.Info("Notification feed",
				slog.Int("live", len(live)),
				slog.Int("posts_seen", len(store.Posts())))
			for _, n := range live {
				log.Info("Live notification",
					slog.String("message", n.Message),
					slog.Time("at", n.Timestamp))
			}
		}
	}
}
