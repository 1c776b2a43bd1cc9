package store

import (
	"context"
	"encoding/json"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"

	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

// The redis store implements the StateStore interface using Redis as the
// backend. Each dataset is stored as a single JSON value so that Write is a
// whole-value overwrite. The keys namespace is organized as follows:
// - `/<prefix>/vizstore/<scope>` for the dataset of a scope

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a StateStore backed by the given Redis client.
// The prefix namespaces all keys so that multiple deployments can share one
// Redis instance.
func NewRedisStore(client *redis.Client, prefix string) StateStore {
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *redisStore) key(scope string) string {
	return path.Join(s.prefix, "vizstore", scope)
}

func (s *redisStore) Read(ctx context.Context, scope string) (*vizmodel.Dataset, error) {
	data, err := s.client.Get(ctx, s.key(scope)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return vizmodel.NewDataset(), nil
		}
		logger.ContextKV(ctx, xlog.ERROR, "reason", "redis_get", "scope", scope, "err", err.Error())
		return nil, errors.Mark(errors.Wrap(err, "failed to read dataset from Redis"), vizmodel.ErrStoreUnavailable)
	}

	ds := vizmodel.NewDataset()
	if err := json.Unmarshal([]byte(data), ds); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to unmarshal dataset"), vizmodel.ErrStoreUnavailable)
	}
	return ds, nil
}

func (s *redisStore) Write(ctx context.Context, scope string, ds *vizmodel.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to marshal dataset"), vizmodel.ErrStoreUnavailable)
	}

	if err := s.client.Set(ctx, s.key(scope), data, 0).Err(); err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "redis_set", "scope", scope, "err", err.Error())
		return errors.Mark(errors.Wrap(err, "failed to store dataset in Redis"), vizmodel.ErrStoreUnavailable)
	}
	return nil
}
