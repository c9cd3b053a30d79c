package autosave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// slowStore delays every write so queued operations overlap.
type slowStore struct {
	*MemoryStore
	delay time.Duration

	mu     sync.Mutex
	writes int
}

func (s *slowStore) Set(ctx context.Context, key string, value []byte) error {
	time.Sleep(s.delay)

	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
	return s.MemoryStore.Set(ctx, key, value)
}

func TestWriterClearWinsOverEarlierSaves(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &slowStore{MemoryStore: NewMemoryStore(), delay: 20 * time.Millisecond}
	w := NewWriter(New(store, zap.NewNop()), zap.NewNop())

	for _, company := range []string{"A", "Ac", "Acm", "Acme"} {
		w.Save(ctx, Values{"company_name": company})
	}
	w.Clear(ctx)
	w.Wait()

	_, err := store.Get(ctx, Key)
	require.ErrorIs(t, err, ErrNotFound)
	require.LessOrEqual(t, store.writes, 1)
}

func TestWriterKeepsLatestSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := New(&slowStore{MemoryStore: NewMemoryStore(), delay: 5 * time.Millisecond}, zap.NewNop())
	w := NewWriter(a, zap.NewNop())

	for _, company := range []string{"A", "Ac", "Acm", "Acme"} {
		w.Save(ctx, Values{"company_name": company})
	}
	w.Wait()

	values, err := a.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, Values{"company_name": "Acme"}, values)

	// A save queued after a clear is kept.
	w.Clear(ctx)
	w.Save(ctx, Values{"company_name": "Beta"})
	w.Wait()

	values, err = a.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, Values{"company_name": "Beta"}, values)
}
