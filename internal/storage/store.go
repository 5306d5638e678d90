// Package storage provides the key/value capability that persists editor state between runs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned by Get when a key has no value
var ErrNotFound = errors.New("key not found")

// Keys owned by the tool
const (
	KeySelectedPoints = "resume-selected-points"
	KeyLayoutSettings = "resume-layout-settings"
	KeyCustomPoints   = "resume-custom-points"
)

// Keys lists every key the tool persists
var Keys = []string{KeySelectedPoints, KeyLayoutSettings, KeyCustomPoints}

// Store is a small key/value capability
type Store interface {
	// Get returns the value of key or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key owned by the tool
	Clear(ctx context.Context) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendBadger   = "badger"
	BackendPostgres = "postgres"
)

// Backends lists every backend name
var Backends = []string{BackendMemory, BackendFile, BackendBadger, BackendPostgres}

// Options selects and configures a backend
type Options struct {
	Backend string
	// Path is the state file for "file" and the database directory for "badger"
	Path string
	// DatabaseURL is the connection string for "postgres"
	DatabaseURL string
	Logger      zerolog.Logger
}

// Error represents a failure of a storage backend
type Error struct {
	Backend string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s store: %s: %v", e.Backend, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s store: %s", e.Backend, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Open creates the store selected by opts
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case BackendMemory:
		return NewMemory(), nil
	case "", BackendFile:
		store, err := OpenFile(opts.Path, opts.Logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendBadger:
		store, err := OpenBadger(opts.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendPostgres:
		store, err := OpenPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, &Error{Backend: opts.Backend, Message: fmt.Sprintf("unknown backend (expected one of %s)", strings.Join(Backends, ", "))}
	}
}
