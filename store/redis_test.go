package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	rediscon "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/dedalus-labs/viz-mcp-example/store"
	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

func Test_RedisStore(t *testing.T) {
	ctx := context.Background()
	redisContainer, err := rediscon.Run(ctx, "redis:7",
		testcontainers.WithConfigModifier(func(config *container.Config) {
			config.Env = []string{
				"ALLOW_EMPTY_PASSWORD=yes",
			}
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, redisContainer.Terminate(ctx))
	})

	state, err := redisContainer.State(ctx)
	require.NoError(t, err)
	require.True(t, state.Running)

	prefix := fmt.Sprintf("test-%d", time.Now().Unix())

	host, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err)

	options, err := redis.ParseURL(host)
	require.NoError(t, err)

	client := redis.NewClient(options)

	rs := client.Ping(ctx) // Ensure the connection is established
	require.NoError(t, rs.Err(), "failed to connect to Redis")

	st := store.NewRedisStore(client, prefix)

	// absent scope reads back empty
	ds, err := st.Read(ctx, "missing")
	require.NoError(t, err)
	require.NotNil(t, ds)
	assert.Equal(t, 0, ds.Count())

	// round-trip: structural equality including float values and labels
	written := sampleDataset(t)
	require.NoError(t, st.Write(ctx, "scope1", written))

	got, err := st.Read(ctx, "scope1")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(written, got))

	// scopes are independent under the same prefix
	other, err := st.Read(ctx, "scope2")
	require.NoError(t, err)
	assert.Equal(t, 0, other.Count())

	// whole-value overwrite
	require.NoError(t, st.Write(ctx, "scope1", vizmodel.NewDataset()))
	got, err = st.Read(ctx, "scope1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Count())
}
