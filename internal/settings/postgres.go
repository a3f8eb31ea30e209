package settings

import (
	"context"

	"github.com/jonathan/resume-wizard/internal/db"
)

// Postgres stores settings in the shared database's settings table.
type Postgres struct {
	db *db.DB
}

// NewPostgres wraps an open database. Close does not close it.
func NewPostgres(d *db.DB) *Postgres {
	return &Postgres{db: d}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := p.db.GetSetting(ctx, key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNotFound
	}
	return v, nil
}

func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	return p.db.PutSetting(ctx, key, value)
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	return p.db.DeleteSetting(ctx, key)
}

func (p *Postgres) Close() error { return nil }
