package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atabekdeveloper/mini-course-api/internal/config"

	"github.com/jpillora/backoff"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultConnectTimeout  = 10 * time.Second
	defaultConnectAttempts = 3
)

// ConnectMongo connects and pings, retrying with exponential backoff. A
// client whose ping failed is disconnected before the next attempt; after the
// last attempt the error is returned.
func ConnectMongo(ctx context.Context, cfg config.MongoConfig, logger *slog.Logger) (*mongo.Client, error) {
	timeout := time.Duration(cfg.ConnectTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = defaultConnectAttempts
	}

	b := &backoff.Backoff{
		Min:    500 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		client, err := connectOnce(ctx, cfg.URI, timeout)
		if err == nil {
			logger.Info("connected successfully to mongo server", "attempt", attempt)
			return client, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		wait := b.Duration()
		logger.Warn("mongo connection failed, retrying",
			"attempt", attempt,
			"max_attempts", attempts,
			"retry_in", wait.String(),
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connecting to mongo: %w", ctx.Err())
		case <-time.After(wait):
		}
	}

	return nil, fmt.Errorf("connecting to mongo after %d attempts: %w", attempts, lastErr)
}

func connectOnce(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func MongoCollection(client *mongo.Client, cfg config.MongoConfig) *mongo.Collection {
	return client.Database(cfg.Database).Collection(cfg.Collection)
}
