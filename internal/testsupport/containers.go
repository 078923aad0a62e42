// Package testsupport starts throwaway Redis and MongoDB containers for
// integration tests. Tests are skipped under -short or without Docker.
package testsupport

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func skipWithoutDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
}

// Redis returns a client connected to a fresh redis:alpine container.
func Redis(t *testing.T) *redis.Client {
	t.Helper()
	skipWithoutDocker(t)

	ctx := context.Background()
	redisPort := "6379/tcp"

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:alpine",
			ExposedPorts: []string{redisPort},
			WaitingFor:   wait.ForListeningPort(nat.Port(redisPort)),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")

	mappedPort, err := container.MappedPort(ctx, nat.Port(redisPort))
	require.NoError(t, err, "Failed to get mapped port")
	host, err := container.Host(ctx)
	require.NoError(t, err, "Failed to get host")

	client := redis.NewClient(&redis.Options{Addr: host + ":" + mappedPort.Port()})
	require.NoError(t, client.Ping(ctx).Err(), "Failed to ping Redis")

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("Error closing Redis client: %v", err)
		}
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Error terminating Redis container: %v", err)
		}
	})

	return client
}

// Mongo returns a client connected to a fresh mongo:6.0 container.
func Mongo(t *testing.T) *mongo.Client {
	t.Helper()
	skipWithoutDocker(t)

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:6.0",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start MongoDB container")

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get MongoDB connection string")

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err, "Failed to connect to MongoDB")
	require.NoError(t, client.Ping(ctx, nil), "Failed to ping MongoDB")

	t.Cleanup(func() {
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Error disconnecting MongoDB client: %v", err)
		}
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Error terminating MongoDB container: %v", err)
		}
	})

	return client
}
