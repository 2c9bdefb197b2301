package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiniCart/internal/config"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()

	dir := t.TempDir()

	fs, err := NewFileStore(filepath.Join(dir, "nested", "cart.json"))
	require.NoError(t, err)

	ss, err := OpenSQLite(context.Background(), filepath.Join(dir, "cart.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	return map[string]KV{
		"memory": NewMemStore(),
		"file":   fs,
		"sqlite": ss,
	}
}

func checkGetMissing(t *testing.T, kv KV, key string) {
	t.Helper()

	v, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func checkLastWriteWins(t *testing.T, kv KV, key, other string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, key, []byte(`[{"id":1,"amount":1}]`)))
	require.NoError(t, kv.Put(ctx, key, []byte(`[]`)))
	require.NoError(t, kv.Put(ctx, other, []byte(`x`)))

	v, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(v))

	v, ok, err = kv.Get(ctx, other)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `x`, string(v))

	assert.NoError(t, kv.Ping(ctx))
}

func TestKV_GetMissing(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			checkGetMissing(t, kv, "cartItems")
		})
	}
}

func TestKV_PutGetLastWriteWins(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			checkLastWriteWins(t, kv, "cartItems", "other")
		})
	}
}

// The database may be shared, so keys are unique per run and removed after.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	s, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	suffix := uuid.NewString()
	key, other := "cartItems-"+suffix, "other-"+suffix
	t.Cleanup(func() {
		for _, k := range []string{key, other} {
			_, _ = s.db.ExecContext(context.Background(), `DELETE FROM kv WHERE key = $1`, k)
		}
	})

	t.Run("get missing", func(t *testing.T) { checkGetMissing(t, s, key) })
	t.Run("last write wins", func(t *testing.T) { checkLastWriteWins(t, s, key, other) })
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cart.json")

	a, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, a.Put(ctx, "cartItems", []byte(`[{"id":7,"amount":2}]`)))

	b, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := b.Get(ctx, "cartItems")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":7,"amount":2}]`, string(v))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestFileStore_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, _, err = s.Get(ctx, "cartItems")
	require.Error(t, err)

	require.NoError(t, s.Put(ctx, "cartItems", []byte(`[]`)))
	v, ok, err := s.Get(ctx, "cartItems")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(v))
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cart.db")

	a, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, a.Put(ctx, "cartItems", []byte(`[{"id":1,"amount":3}]`)))
	require.NoError(t, a.Close())

	b, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer b.Close()

	v, ok, err := b.Get(ctx, "cartItems")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":1,"amount":3}]`, string(v))
}

func TestMemStore_Closed(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Close())

	ctx := context.Background()
	assert.ErrorIs(t, s.Put(ctx, "k", nil), ErrClosed)
	_, _, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Ping(ctx), ErrClosed)
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := Open(ctx, config.Config{Storage: config.StorageMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemStore{}, kv)

	kv, err = Open(ctx, config.Config{Storage: config.StorageFile, StoragePath: filepath.Join(dir, "c.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, kv)

	kv, err = Open(ctx, config.Config{Storage: "SQLite", StoragePath: filepath.Join(dir, "c.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, kv)
	require.NoError(t, kv.Close())

	_, err = Open(ctx, config.Config{Storage: "redis"})
	assert.Error(t, err)
}
