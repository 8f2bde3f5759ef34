package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	portsrepo "github.com/judeotine/SpendWise/internal/core/ports/repositories"
)

// PgxKeyValueRepository stores durable string entries in the kv_store table.
type PgxKeyValueRepository struct {
	BaseRepository
}

// NewPgxKeyValueRepository creates a new repository for durable key-value entries.
func NewPgxKeyValueRepository(db DBTX) portsrepo.KeyValueStoreFacade {
	return &PgxKeyValueRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

// Ensure implementation matches interface
var _ portsrepo.KeyValueStoreFacade = (*PgxKeyValueRepository)(nil)

// Get returns the value for key, or found=false when the row does not exist.
func (r *PgxKeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM kv_store WHERE key = $1;`

	var value string
	err := r.DB.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the value for key. Last write wins.
func (r *PgxKeyValueRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := r.DB.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}
