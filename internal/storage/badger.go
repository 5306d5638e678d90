package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// badgerPrefix namespaces every key the tool writes
const badgerPrefix = "resume:"

// Badger stores state in an embedded Badger database
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a Badger database in dir.
// An empty dir opens an in-memory database.
func OpenBadger(dir string) (*Badger, error) {
	var options badger.Options
	if dir == "" {
		options = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &Error{Backend: BackendBadger, Message: fmt.Sprintf("failed to create database directory %s", dir), Cause: err}
		}
		options = badger.DefaultOptions(dir)
	}
	// Disable default badger logger
	options = options.WithLogger(nil)

	db, err := badger.Open(options)
	if err != nil {
		return nil, &Error{Backend: BackendBadger, Message: "failed to open badger database", Cause: err}
	}
	return &Badger{db: db}, nil
}

func (b *Badger) key(key string) []byte {
	return []byte(badgerPrefix + key)
}

func (b *Badger) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &Error{Backend: BackendBadger, Message: fmt.Sprintf("failed to get %s", key), Cause: err}
	}
	return value, nil
}

func (b *Badger) Set(_ context.Context, key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key(key), value)
	})
	if err != nil {
		return &Error{Backend: BackendBadger, Message: fmt.Sprintf("failed to set %s", key), Cause: err}
	}
	return nil
}

func (b *Badger) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(b.key(key))
	})
	if err != nil {
		return &Error{Backend: BackendBadger, Message: fmt.Sprintf("failed to delete %s", key), Cause: err}
	}
	return nil
}

// Clear drops every key under the tool's prefix
func (b *Badger) Clear(_ context.Context) error {
	if err := b.db.DropPrefix([]byte(badgerPrefix)); err != nil {
		return &Error{Backend: BackendBadger, Message: "failed to drop keys", Cause: err}
	}
	return nil
}

func (b *Badger) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
