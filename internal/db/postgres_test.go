package db_test

import (
	"context"
	"testing"

	"github.com/atabekdeveloper/mini-course-api/internal/config"
	"github.com/atabekdeveloper/mini-course-api/internal/db"
	"github.com/atabekdeveloper/mini-course-api/internal/logger"
	"github.com/atabekdeveloper/mini-course-api/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := db.DSN(config.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "user",
		Password: "secret",
		DBName:   "courses",
	})
	assert.Equal(t, "postgres://user:secret@db:5432/courses?sslmode=disable", dsn)

	dsn = db.DSN(config.DatabaseConfig{
		Host:    "db",
		Port:    "5432",
		User:    "user",
		DBName:  "courses",
		SSLMode: "require",
	})
	assert.Contains(t, dsn, "sslmode=require")
}

func TestNewPostgres_Container(t *testing.T) {
	pgContainer := testdb.SetupPostgres(t)
	defer pgContainer.Cleanup(t)

	ctx := context.Background()
	database, err := db.NewPostgresWithDSN(ctx, pgContainer.DSN, logger.NewNop())
	require.NoError(t, err)
	defer database.Close()

	type migrationProbe struct {
		ID   int64  `bun:"id,pk,autoincrement"`
		Name string `bun:"name"`
	}

	require.NoError(t, db.RunMigrations(ctx, database, (*migrationProbe)(nil)))
	// Running twice must be harmless.
	require.NoError(t, db.RunMigrations(ctx, database, (*migrationProbe)(nil)))

	_, err = database.NewInsert().Model(&migrationProbe{Name: "probe"}).Exec(ctx)
	assert.NoError(t, err)
}
