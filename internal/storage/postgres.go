package storage

import (
	"context"
	"errors"

	"github.com/jonathan/resume-builder/internal/db"
)

// Postgres stores state in the resume_state table
type Postgres struct {
	db *db.DB
}

// OpenPostgres connects to databaseURL and prepares the state table
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, &Error{Backend: BackendPostgres, Message: "database URL is required"}
	}
	conn, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, &Error{Backend: BackendPostgres, Message: "failed to open database", Cause: err}
	}
	return &Postgres{db: conn}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := p.db.GetState(ctx, key)
	if errors.Is(err, db.ErrNoState) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	return p.db.SetState(ctx, key, string(value))
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	return p.db.DeleteState(ctx, key)
}

func (p *Postgres) Clear(ctx context.Context) error {
	return p.db.ClearState(ctx)
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
