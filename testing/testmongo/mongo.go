package testmongo

import (
	"context"
	"testing"

	"github.com/atabekdeveloper/mini-course-api/internal/config"
	"github.com/atabekdeveloper/mini-course-api/internal/db"
	"github.com/atabekdeveloper/mini-course-api/internal/logger"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoContainer struct {
	Container *mongodb.MongoDBContainer
	Client    *mongo.Client
	URI       string
}

// SetupMongo starts a MongoDB container for the calling test. The test is
// skipped under -short or when no container runtime is reachable.
//
// Usage:
//
//	func TestMyRepository(t *testing.T) {
//	    mongoContainer := testmongo.SetupMongo(t)
//	    defer mongoContainer.Cleanup(t)
//
//	    coll := mongoContainer.Collection("testdb", "courses")
//	    t.Run("Test1", func(t *testing.T) {
//	        testmongo.CleanupCollection(t, coll)
//	        // ... test
//	    })
//	}
func SetupMongo(t *testing.T) *MongoContainer {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping mongo container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := db.ConnectMongo(ctx, config.MongoConfig{
		URI:             uri,
		ConnectTimeout:  10,
		ConnectAttempts: 3,
	}, logger.NewNop())
	require.NoError(t, err)

	return &MongoContainer{
		Container: mongoContainer,
		Client:    client,
		URI:       uri,
	}
}

func (mc *MongoContainer) Collection(database, collection string) *mongo.Collection {
	return mc.Client.Database(database).Collection(collection)
}

func (mc *MongoContainer) Cleanup(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	if mc.Client != nil {
		if err := mc.Client.Disconnect(ctx); err != nil {
			t.Logf("failed to disconnect client: %s", err)
		}
	}

	if mc.Container != nil {
		if err := mc.Container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
}

func CleanupCollection(t *testing.T, coll *mongo.Collection) {
	t.Helper()

	_, err := coll.DeleteMany(context.Background(), bson.M{})
	require.NoError(t, err, "failed to clear collection: %s", coll.Name())
}
