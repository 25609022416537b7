package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/fsearch/internal/domain/repository"
	"github.com/bnema/fsearch/internal/infrastructure/persistence/sqlite/sqlc"
	"github.com/bnema/fsearch/internal/logging"
)

type storageRepo struct {
	queries *sqlc.Queries
}

// NewStorageRepository creates a key/value storage repository backed by the
// storage table.
func NewStorageRepository(db *sql.DB) repository.StorageRepository {
	return &storageRepo{queries: sqlc.New(db)}
}

func (r *storageRepo) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.queries.GetStorageValue(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get storage key %q: %w", key, err)
	}
	return []byte(value), nil
}

func (r *storageRepo) Set(ctx context.Context, key string, value []byte) error {
	logging.FromContext(ctx).Debug().Str("key", key).Int("bytes", len(value)).Msg("storage set")

	if err := r.queries.SetStorageValue(ctx, sqlc.SetStorageValueParams{Key: key, Value: string(value)}); err != nil {
		return fmt.Errorf("set storage key %q: %w", key, err)
	}
	return nil
}

func (r *storageRepo) Delete(ctx context.Context, key string) error {
	if err := r.queries.DeleteStorageValue(ctx, key); err != nil {
		return fmt.Errorf("delete storage key %q: %w", key, err)
	}
	return nil
}

func (r *storageRepo) Keys(ctx context.Context) ([]string, error) {
	keys, err := r.queries.ListStorageKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list storage keys: %w", err)
	}
	return keys, nil
}
