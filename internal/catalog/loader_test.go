package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	calls    atomic.Int32
	products []Product
	err      error
	release  chan struct{}
}

func (f *fakeFetcher) ListProducts(ctx context.Context) ([]Product, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.products, f.err
}

func TestLoader_StartsLoadingThenReady(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := &fakeFetcher{products: SeedProducts(), release: make(chan struct{})}
	l := NewLoader(f, zap.NewNop())

	assert.Equal(t, StatusLoading, l.State().Status)

	l.Start(context.Background())
	assert.Equal(t, StatusLoading, l.State().Status)
	_, ok := l.Product(1)
	assert.False(t, ok, "no data before settling")

	close(f.release)
	st, err := l.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusReady, st.Status)
	assert.Len(t, st.Products, len(SeedProducts()))
	assert.NoError(t, st.Err)

	p, ok := l.Product(5)
	require.True(t, ok)
	assert.Equal(t, "jewelery", p.Category)
}

func TestLoader_FetchesExactlyOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := &fakeFetcher{products: SeedProducts()}
	l := NewLoader(f, nil)

	l.Start(context.Background())
	l.Start(context.Background())
	st := l.Load(context.Background())
	_ = l.Load(context.Background())

	assert.Equal(t, StatusReady, st.Status)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestLoader_FailureIsTerminal(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	f := &fakeFetcher{err: boom}
	l := NewLoader(f, zap.NewNop())

	st := l.Load(context.Background())
	assert.Equal(t, StatusFailed, st.Status)
	assert.ErrorIs(t, st.Err, boom)
	assert.Empty(t, st.Products)

	l.Start(context.Background())
	assert.Equal(t, StatusFailed, l.State().Status)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestLoader_WaitHonoursContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := &fakeFetcher{release: make(chan struct{})}
	l := NewLoader(f, zap.NewNop())

	runCtx, stop := context.WithCancel(context.Background())
	l.Start(runCtx)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	st, err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StatusLoading, st.Status)

	stop()
	st, err = l.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, st.Status)
}

func TestLoader_ReadyWithEmptyCatalog(t *testing.T) {
	f := &fakeFetcher{products: []Product{}}
	st := NewLoader(f, zap.NewNop()).Load(context.Background())

	assert.Equal(t, StatusReady, st.Status)
	assert.NotNil(t, st.Products)
	assert.Empty(t, st.Products)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "ready", StatusReady.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(42).String())
}
