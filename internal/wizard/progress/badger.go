// internal/wizard/progress/badger.go
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"carrier-portal/internal/models"
)

// BadgerStore keeps progress records in an embedded Badger database, the
// single-node analog of the portal's device-local storage.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) the database at path. An empty path
// opens an in-memory database, which is what tests use.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(_ context.Context, key string) (*models.WizardProgress, error) {
	var p *models.WizardProgress
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			p = &models.WizardProgress{}
			return json.Unmarshal(val, p)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("badger get %s: %w", key, err)
	}
	return p, nil
}

func (s *BadgerStore) Put(_ context.Context, key string, p *models.WizardProgress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress record: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("badger delete %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
