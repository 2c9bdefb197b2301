package storage

import (
	"context"
	"fmt"
	"strings"

	"MiniCart/internal/config"
)

// Open builds the backend selected by cfg.Storage.
func Open(ctx context.Context, cfg config.Config) (KV, error) {
	var (
		kv  KV
		err error
	)

	switch strings.ToLower(cfg.Storage) {
	case config.StorageMemory:
		kv = NewMemStore()
	case config.StorageFile:
		var fs *FileStore
		if fs, err = NewFileStore(cfg.StoragePath); err == nil {
			kv = fs
		}
	case config.StorageSQLite:
		var ss *SQLiteStore
		if ss, err = OpenSQLite(ctx, cfg.StoragePath); err == nil {
			kv = ss
		}
	case config.StoragePostgres:
		var ps *PostgresStore
		if ps, err = OpenPostgres(ctx, cfg.DatabaseURL); err == nil {
			kv = ps
		}
	default:
		err = fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	if err != nil {
		return nil, err
	}
	return kv, nil
}
