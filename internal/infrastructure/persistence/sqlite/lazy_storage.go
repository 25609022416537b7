package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/fsearch/internal/domain/repository"
	"github.com/bnema/fsearch/internal/logging"
)

// LazyStorage is a StorageRepository that opens the database on first use.
// Commands that never touch storage (config, version) skip the WASM
// compilation and migration cost entirely.
type LazyStorage struct {
	dbPath string
	db     *sql.DB
	repo   repository.StorageRepository
	err    error
	once   sync.Once
	mu     sync.RWMutex
}

var _ repository.StorageRepository = (*LazyStorage)(nil)

// NewLazyStorage creates a lazily opened storage repository for dbPath.
func NewLazyStorage(dbPath string) *LazyStorage {
	return &LazyStorage{dbPath: dbPath}
}

func (l *LazyStorage) open(ctx context.Context) (repository.StorageRepository, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("opening storage")

		db, err := NewConnection(ctx, l.dbPath)
		l.mu.Lock()
		defer l.mu.Unlock()
		if err != nil {
			l.err = err
			log.Error().Err(err).Msg("storage initialization failed")
			return
		}
		l.db = db
		l.repo = NewStorageRepository(db)
	})

	if l.err != nil {
		return nil, fmt.Errorf("storage initialization failed: %w", l.err)
	}
	return l.repo, nil
}

func (l *LazyStorage) Get(ctx context.Context, key string) ([]byte, error) {
	repo, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, key)
}

func (l *LazyStorage) Set(ctx context.Context, key string, value []byte) error {
	repo, err := l.open(ctx)
	if err != nil {
		return err
	}
	return repo.Set(ctx, key, value)
}

func (l *LazyStorage) Delete(ctx context.Context, key string) error {
	repo, err := l.open(ctx)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, key)
}

func (l *LazyStorage) Keys(ctx context.Context) ([]string, error) {
	repo, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Keys(ctx)
}

// Close closes the database if it was opened.
func (l *LazyStorage) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// IsInitialized reports whether the database has been opened.
func (l *LazyStorage) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyStorage) Path() string {
	return l.dbPath
}
