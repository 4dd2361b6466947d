package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atabekdeveloper/mini-course-api/internal/config"
	"github.com/atabekdeveloper/mini-course-api/internal/course"
	"github.com/atabekdeveloper/mini-course-api/internal/db"
	"github.com/atabekdeveloper/mini-course-api/internal/metrics"
)

type closeFunc func(ctx context.Context) error

// newRepository builds the backend selected by storage.driver. The returned
// close function releases the underlying connection.
func newRepository(ctx context.Context, cfg config.StorageConfig, m *metrics.Metrics, logger *slog.Logger) (course.Repository, closeFunc, error) {
	var (
		repo    course.Repository
		closeFn closeFunc
	)

	switch cfg.Driver {
	case config.DriverMemory:
		repo = course.NewMemoryRepository()
		closeFn = func(context.Context) error { return nil }

	case config.DriverMongo:
		client, err := db.ConnectMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, nil, err
		}
		repo = course.NewMongoRepository(db.MongoCollection(client, cfg.Mongo))
		closeFn = client.Disconnect

	case config.DriverPostgres:
		database, err := db.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, database, course.BunModels()...); err != nil {
			database.Close()
			return nil, nil, err
		}
		if err := m.Database.RegisterDB(database.DB, m.Meter()); err != nil {
			logger.Warn("failed to register database pool metrics", "error", err)
		}
		repo = course.NewBunRepository(database)
		closeFn = func(context.Context) error { return database.Close() }

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	logger.Info("course storage ready", "driver", cfg.Driver)
	return course.NewInstrumentedRepository(repo, cfg.Driver, m.Database), closeFn, nil
}
