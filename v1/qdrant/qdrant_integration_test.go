package qdrant

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/logger"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/migrate"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/report"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

const qdrantImage = "qdrant/qdrant:v1.16.0"

// QdrantContainer represents a Qdrant container for testing
type QdrantContainer struct {
	testcontainers.Container
	Host string
	Port int
}

// setupQdrantContainer starts a Qdrant container with its gRPC port bound to
// a free host port.
func setupQdrantContainer(ctx context.Context) (*QdrantContainer, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portBindings := nat.PortMap{
		"6334/tcp": []nat.PortBinding{{HostPort: strconv.Itoa(port)}},
	}

	req := testcontainers.ContainerRequest{
		Image:        qdrantImage,
		ExposedPorts: []string{"6334/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForListeningPort("6334/tcp").WithStartupTimeout(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start qdrant container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	mapped, err := c.MappedPort(ctx, "6334")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	return &QdrantContainer{Container: c, Host: host, Port: mapped.Int()}, nil
}

// getFreePort gets a free port from the OS
func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = l.Close() }()

	return l.Addr().(*net.TCPAddr).Port, nil
}

func testLogger() *logger.Logger {
	return logger.NewFromZap(zap.NewNop(), false)
}

func testConfig(c *QdrantContainer) *Config {
	return FromEndpoint(c.Host).
		WithPort(c.Port).
		WithTimeout(30 * time.Second).
		WithConnectTimeout(10 * time.Second).
		WithCompatibilityCheck(false)
}

// seed creates a collection with n points and a keyword index on "city".
func seed(ctx context.Context, t *testing.T, c *Client, name string, n int) {
	t.Helper()

	require.NoError(t, c.CreateOrReplaceCollection(ctx, name, &rest.CreateCollection{
		Vectors:       &rest.VectorParams{Size: 4, Distance: rest.DistanceCosine},
		ShardNumber:   lo.ToPtr(uint32(1)),
		OnDiskPayload: lo.ToPtr(true),
	}))
	require.NoError(t, c.CreatePayloadIndex(ctx, name, "city", rest.PayloadSchemaKeyword))

	records := lo.Times(n, func(i int) rest.Record {
		return rest.Record{
			ID:     rest.PointNum(i + 1),
			Vector: rest.DenseVector{float32(i + 1), 1, 0, 0},
			Payload: rest.Payload{
				"city":  lo.Ternary(i%2 == 0, "Berlin", "Heidelberg"),
				"index": i,
			},
		}
	})
	for _, chunk := range lo.Chunk(records, 50) {
		require.NoError(t, c.Upload(ctx, name, chunk))
	}
}

func TestQdrantWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	qc, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := qc.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	var client *Client
	app := fxtest.New(t,
		fx.Supply(testLogger(), testConfig(qc)),
		FXModule,
		fx.Populate(&client),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, client)
	require.NotNil(t, client.SDK())

	t.Run("collection round trip", func(t *testing.T) {
		seed(ctx, t, client, "fx_docs", 10)

		names, err := client.ListCollections(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, "fx_docs")

		info, err := client.GetCollection(ctx, "fx_docs")
		require.NoError(t, err)
		params, ok := info.Config.Params.Vectors.(*rest.VectorParams)
		require.True(t, ok)
		assert.Equal(t, uint64(4), params.Size)
		require.Contains(t, info.PayloadSchema, "city")
		assert.Equal(t, rest.PayloadSchemaKeyword, info.PayloadSchema["city"].DataType)

		n, err := client.CountPoints(ctx, "fx_docs")
		require.NoError(t, err)
		assert.Equal(t, uint64(10), n)
	})

	t.Run("scroll pages", func(t *testing.T) {
		records, next, err := client.Scroll(ctx, "fx_docs", migrate.ScrollRequest{Limit: 4, WithPayload: true, WithVectors: true})
		require.NoError(t, err)
		assert.Len(t, records, 4)
		assert.Equal(t, rest.PointNum(5), next)

		records, next, err = client.Scroll(ctx, "fx_docs", migrate.ScrollRequest{Offset: rest.PointNum(9), Limit: 4})
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Nil(t, next)
	})

	t.Run("aliases", func(t *testing.T) {
		err := client.UpdateAliases(ctx, &rest.ChangeAliasesOperation{
			Actions: []rest.AliasOperation{
				&rest.CreateAliasOperation{CreateAlias: rest.CreateAlias{CollectionName: "fx_docs", AliasName: "docs"}},
			},
		})
		require.NoError(t, err)

		aliases, err := client.SDK().ListAliases(ctx)
		require.NoError(t, err)
		assert.True(t, lo.ContainsBy(aliases, func(a *qdrant.AliasDescription) bool {
			return a.GetAliasName() == "docs"
		}))
	})
}

func TestMigrateBetweenInstances(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containers := make([]*QdrantContainer, 2)
	g, gctx := errgroup.WithContext(ctx)
	for i := range containers {
		g.Go(func() error {
			c, err := setupQdrantContainer(gctx)
			containers[i] = c
			return err
		})
	}
	err := g.Wait()
	defer func() {
		for _, c := range containers {
			if c != nil {
				_ = c.Terminate(ctx)
			}
		}
	}()
	require.NoError(t, err)

	source, err := NewClient(testConfig(containers[0]), testLogger())
	require.NoError(t, err)
	defer source.Close()
	dest, err := NewClient(testConfig(containers[1]), testLogger())
	require.NoError(t, err)
	defer dest.Close()

	seed(ctx, t, source, "articles", 120)
	seed(ctx, t, source, "empty", 0)
	seed(ctx, t, dest, "empty", 3)

	m := migrate.NewMigrator(testLogger(), nil, nil)

	t.Run("raise on collision", func(t *testing.T) {
		_, err := m.Migrate(ctx, source, dest, migrate.DefaultOptions())
		assert.True(t, migrate.IsCollisionError(err))

		names, err := dest.ListCollections(ctx)
		require.NoError(t, err)
		assert.NotContains(t, names, "articles")
	})

	t.Run("recreate", func(t *testing.T) {
		rep, err := m.Migrate(ctx, source, dest, migrate.DefaultOptions().
			WithCollisionAction(migrate.Recreate).
			WithBatchSize(25))
		require.NoError(t, err)

		assert.Equal(t, 2, rep.Count(report.StatusMigrated))

		n, err := dest.CountPoints(ctx, "articles")
		require.NoError(t, err)
		assert.Equal(t, uint64(120), n)

		n, err = dest.CountPoints(ctx, "empty")
		require.NoError(t, err)
		assert.Zero(t, n)

		info, err := dest.GetCollection(ctx, "articles")
		require.NoError(t, err)
		assert.Contains(t, info.PayloadSchema, "city")
		assert.True(t, lo.FromPtr(info.Config.Params.OnDiskPayload))
	})
}
