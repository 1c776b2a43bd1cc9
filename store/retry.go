package store

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"

	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

// retryStore wraps another StateStore and retries failed operations with
// exponential backoff, transparently behind the same two-operation contract.
// Only backend failures are retried; anything else is permanent.
type retryStore struct {
	next            StateStore
	maxRetries      uint64
	initialInterval time.Duration
}

// NewRetryStore wraps next with up to maxRetries retries per operation.
// A zero initialInterval uses the backoff library default.
func NewRetryStore(next StateStore, maxRetries uint64, initialInterval time.Duration) StateStore {
	return &retryStore{
		next:            next,
		maxRetries:      maxRetries,
		initialInterval: initialInterval,
	}
}

func (s *retryStore) backoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if s.initialInterval > 0 {
		b.InitialInterval = s.initialInterval
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, s.maxRetries), ctx)
}

func (s *retryStore) retry(ctx context.Context, name string, op func() error) error {
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if !errors.Is(err, vizmodel.ErrStoreUnavailable) {
			return backoff.Permanent(err)
		}
		logger.ContextKV(ctx, xlog.WARNING, "reason", "retry", "op", name, "attempt", attempt, "err", err.Error())
		return err
	}, s.backoff(ctx))
}

func (s *retryStore) Read(ctx context.Context, scope string) (*vizmodel.Dataset, error) {
	var ds *vizmodel.Dataset
	err := s.retry(ctx, "read", func() error {
		var err error
		ds, err = s.next.Read(ctx, scope)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func (s *retryStore) Write(ctx context.Context, scope string, ds *vizmodel.Dataset) error {
	return s.retry(ctx, "write", func() error {
		return s.next.Write(ctx, scope, ds)
	})
}
