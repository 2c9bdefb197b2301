package catalog

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"
)

type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is what the rest of the program observes of the catalog fetch.
// Products is set only when Status is StatusReady, Err only when StatusFailed.
type State struct {
	Status   Status
	Products []Product
	Err      error
}

type Fetcher interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// Loader fetches the catalog exactly once per session. Once settled its
// state never changes.
type Loader struct {
	fetcher Fetcher
	log     *zap.Logger

	once sync.Once
	done chan struct{}

	mu    sync.RWMutex
	state State
	byID  map[int]Product
}

func NewLoader(f Fetcher, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		fetcher: f,
		log:     log,
		done:    make(chan struct{}),
		state:   State{Status: StatusLoading},
	}
}

// Start launches the fetch in the background. Only the first call has an
// effect.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go l.run(ctx)
	})
}

// Load runs the fetch synchronously (or waits for a fetch already started)
// and returns the settled state.
func (l *Loader) Load(ctx context.Context) State {
	l.once.Do(func() { l.run(ctx) })
	st, _ := l.Wait(ctx)
	return st
}

func (l *Loader) run(ctx context.Context) {
	defer close(l.done)

	products, err := l.fetcher.ListProducts(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.log.Warn("catalog fetch failed", zap.Error(err))
		l.state = State{Status: StatusFailed, Err: err}
		return
	}

	l.byID = make(map[int]Product, len(products))
	for _, p := range products {
		l.byID[p.ID] = p
	}
	l.state = State{Status: StatusReady, Products: products}
	l.log.Info("catalog loaded", zap.Int("products", len(products)))
}

func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()

	st := l.state
	st.Products = slices.Clone(st.Products)
	return st
}

// Wait blocks until the fetch has settled or ctx is done.
func (l *Loader) Wait(ctx context.Context) (State, error) {
	select {
	case <-l.done:
		return l.State(), nil
	case <-ctx.Done():
		return l.State(), ctx.Err()
	}
}

// Product looks up a product in settled data.
func (l *Loader) Product(id int) (Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.byID[id]
	return p, ok
}
