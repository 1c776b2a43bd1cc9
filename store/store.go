package store

import (
	"context"

	"github.com/effective-security/xlog"

	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

var logger = xlog.NewPackageLogger("github.com/dedalus-labs/viz-mcp-example", "store")

// StateStore is the pluggable persistence boundary for datasets. Any backend
// implementing these two operations can replace another without changing
// callers.
//
// Read returns an empty dataset when the scope is absent; a missing key is
// never an error. Write overwrites the whole dataset for the scope.
// Backend failures are marked with vizmodel.ErrStoreUnavailable and propagate
// to the caller unmodified; no backend retries internally, though a wrapping
// store may add its own retry policy behind the same contract.
type StateStore interface {
	Read(ctx context.Context, scope string) (*vizmodel.Dataset, error)
	Write(ctx context.Context, scope string, ds *vizmodel.Dataset) error
}
