package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"MiniCart/internal/catalog"
)

// Command is a user action applied to the cart.
type Command interface {
	Name() string
	apply(Cart) Cart
}

type AddItemCmd struct {
	Product catalog.Product
}

func (AddItemCmd) Name() string { return "add_item" }

func (c AddItemCmd) apply(in Cart) Cart { return AddItem(in, c.Product) }

type RemoveItemCmd struct {
	ID int
}

func (RemoveItemCmd) Name() string { return "remove_item" }

func (c RemoveItemCmd) apply(in Cart) Cart { return RemoveItem(in, c.ID) }

// Store owns the session's cart. Commands are applied one at a time and every
// mutation is followed by a write of the full snapshot.
type Store struct {
	mu      sync.Mutex
	items   Cart
	storage Storage
	log     *zap.Logger
	metrics *Metrics
}

type Option func(*Store)

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// Open loads the cart from st and writes the loaded value straight back.
// Missing, unreadable or corrupt snapshots start an empty cart.
func Open(ctx context.Context, st Storage, opts ...Option) *Store {
	s := &Store{storage: st, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}

	items, ok, err := st.Load(ctx)
	switch {
	case err != nil:
		s.log.Warn("cart snapshot unusable, starting empty", zap.Error(err))
		s.metrics.storageError("load")
		items = Cart{}
	case !ok:
		s.log.Debug("no cart snapshot, starting empty")
		items = Cart{}
	}
	s.items = items
	_ = s.persist(ctx)

	return s
}

// Dispatch applies cmd and persists the result. The mutation is kept even
// when the write fails; the write error is returned.
func (s *Store) Dispatch(ctx context.Context, cmd Command) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dispatchLocked(ctx, cmd)
}

// Increase adds one more unit of a line already in the cart, reusing the
// product data held by that line. ok is false, and nothing is written, when
// id is not in the cart.
func (s *Store) Increase(ctx context.Context, id int) (c Cart, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, found := s.items.Find(id)
	if !found {
		return clone(s.items), false, nil
	}
	c, err = s.dispatchLocked(ctx, AddItemCmd{Product: it.Product})
	return c, true, err
}

func (s *Store) dispatchLocked(ctx context.Context, cmd Command) (Cart, error) {
	s.items = cmd.apply(s.items)
	s.metrics.command(cmd.Name())
	s.log.Debug("cart command applied",
		zap.String("command", cmd.Name()),
		zap.Int("lines", len(s.items)),
		zap.Int("total_count", TotalCount(s.items)),
	)

	err := s.persist(ctx)
	return clone(s.items), err
}

func (s *Store) Add(ctx context.Context, p catalog.Product) (Cart, error) {
	return s.Dispatch(ctx, AddItemCmd{Product: p})
}

func (s *Store) Remove(ctx context.Context, id int) (Cart, error) {
	return s.Dispatch(ctx, RemoveItemCmd{ID: id})
}

// Items returns a copy of the current cart.
func (s *Store) Items() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

func (s *Store) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TotalCount(s.items)
}

func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TotalPrice(s.items)
}

func (s *Store) persist(ctx context.Context) error {
	s.metrics.observe(s.items)

	if err := s.storage.Save(ctx, s.items); err != nil {
		s.log.Error("cart snapshot write failed", zap.Error(err))
		s.metrics.storageError("save")
		return err
	}
	return nil
}
