package store

import (
	"context"
	"encoding/json"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v4"

	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

// BadgerStore implements StateStore on an embedded BadgerDB, so datasets
// survive process restarts without a network backend.
type BadgerStore struct {
	db     *badger.DB
	prefix string
}

var _ StateStore = (*BadgerStore)(nil)

// NewBadgerStore opens (or creates) a Badger database at dir.
// The caller owns the store and must Close it.
func NewBadgerStore(dir, prefix string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Badger's own logging is too chatty for a stdio server

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to open Badger database"), vizmodel.ErrStoreUnavailable)
	}
	return &BadgerStore{db: db, prefix: prefix}, nil
}

func (s *BadgerStore) key(scope string) []byte {
	return []byte(path.Join(s.prefix, "vizstore", scope))
}

func (s *BadgerStore) Read(_ context.Context, scope string) (*vizmodel.Dataset, error) {
	ds := vizmodel.NewDataset()
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(scope))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, ds)
		})
	})
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to read dataset from Badger"), vizmodel.ErrStoreUnavailable)
	}
	return ds, nil
}

func (s *BadgerStore) Write(_ context.Context, scope string, ds *vizmodel.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to marshal dataset"), vizmodel.ErrStoreUnavailable)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(scope), data)
	})
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to store dataset in Badger"), vizmodel.ErrStoreUnavailable)
	}
	return nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
