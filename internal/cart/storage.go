package cart

import (
	"context"
	"sync"

	"MiniCart/internal/storage"
)

// StorageKey is the single key the cart snapshot lives under.
const StorageKey = "cartItems"

// Storage is the persistence port of the cart store. Load reports ok=false
// when there is no usable snapshot.
type Storage interface {
	Load(ctx context.Context) (c Cart, ok bool, err error)
	Save(ctx context.Context, c Cart) error
}

// KVStorage persists the cart as JSON under StorageKey in a key/value backend.
type KVStorage struct {
	kv  storage.KV
	key string
}

func NewKVStorage(kv storage.KV) *KVStorage {
	return &KVStorage{kv: kv, key: StorageKey}
}

func (s *KVStorage) Load(ctx context.Context) (Cart, bool, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil || !ok {
		return nil, false, err
	}

	c, err := Decode(raw)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

func (s *KVStorage) Save(ctx context.Context, c Cart) error {
	raw, err := Encode(c)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, s.key, raw)
}

// MemStorage is an in-memory Storage that counts every save.
type MemStorage struct {
	mu    sync.Mutex
	cart  Cart
	ok    bool
	saves int

	LoadErr error
	SaveErr error
}

// NewMemStorage returns a MemStorage holding c. A nil c means nothing has
// been stored yet.
func NewMemStorage(c Cart) *MemStorage {
	return &MemStorage{cart: clone(c), ok: c != nil}
}

func (m *MemStorage) Load(ctx context.Context) (Cart, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, false, m.LoadErr
	}
	return clone(m.cart), m.ok, nil
}

func (m *MemStorage) Save(ctx context.Context, c Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.cart, m.ok = clone(c), true
	return nil
}

// Saved returns the last stored snapshot and how many saves were attempted.
func (m *MemStorage) Saved() (Cart, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.cart), m.saves
}

func clone(c Cart) Cart {
	if c == nil {
		return nil
	}
	return append(Cart{}, c...)
}
