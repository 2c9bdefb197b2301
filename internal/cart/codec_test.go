package cart

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiniCart/internal/storage"
)

func TestEncode_EmptyCartIsEmptyArray(t *testing.T) {
	raw, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestEncode_FlatLineItems(t *testing.T) {
	raw, err := Encode(Cart{line(p2, 2)})
	require.NoError(t, err)

	assert.JSONEq(t, `[{
		"id": 2,
		"category": "electronics",
		"description": "desc",
		"image": "https://example.com/img.jpg",
		"price": "22.3",
		"title": "product",
		"amount": 2
	}]`, string(raw))
}

func TestDecode_AcceptsNumericPrices(t *testing.T) {
	c, err := Decode([]byte(`[{"id":1,"category":"c","description":"d","image":"i","price":109.95,"title":"t","amount":2}]`))
	require.NoError(t, err)
	require.Len(t, c, 1)

	assert.Equal(t, 2, c[0].Amount)
	assert.Equal(t, "109.95", c[0].Price.String())
}

func TestDecode_Corrupt(t *testing.T) {
	for name, raw := range map[string]string{
		"garbage":      `{not json`,
		"object":       `{"id":1}`,
		"null":         `null`,
		"zero amount":  `[{"id":1,"amount":0}]`,
		"negative":     `[{"id":1,"amount":-2}]`,
		"duplicate id": `[{"id":1,"amount":1},{"id":1,"amount":2}]`,
		"empty":        ``,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(raw))
			assert.ErrorIs(t, err, ErrCorruptSnapshot)
		})
	}
}

func kvBackends(t *testing.T) map[string]storage.KV {
	t.Helper()

	fs, err := storage.NewFileStore(filepath.Join(t.TempDir(), "cart.json"))
	require.NoError(t, err)

	ss, err := storage.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "cart.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	return map[string]storage.KV{
		"memory": storage.NewMemStore(),
		"file":   fs,
		"sqlite": ss,
	}
}

func TestKVStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	want := Cart{line(p1, 3), line(p2, 1), line(p3, 7)}

	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			st := NewKVStorage(kv)

			_, ok, err := st.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok, "nothing stored yet")

			require.NoError(t, st.Save(ctx, want))

			got, ok, err := st.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			requireCart(t, want, got)

			require.NoError(t, st.Save(ctx, Cart{}))
			raw, found, err := kv.Get(ctx, StorageKey)
			require.NoError(t, err)
			require.True(t, found, "empty cart keeps the key")
			assert.Equal(t, "[]", string(raw))
		})
	}
}

func TestKVStorage_CorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemStore()
	require.NoError(t, kv.Put(ctx, StorageKey, []byte("][")))

	c, ok, err := NewKVStorage(kv).Load(ctx)
	assert.False(t, ok)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, ErrCorruptSnapshot))
}
