package inflight

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGuard_RejectsSecondAcquire(t *testing.T) {
	g := NewMemoryGuard()
	ctx := context.Background()

	release, err := g.Acquire(ctx, "interest:1:confirm")
	require.NoError(t, err)

	_, err = g.Acquire(ctx, "interest:1:confirm")
	assert.ErrorIs(t, err, ErrBusy)

	// другой ключ не блокируется
	releaseOther, err := g.Acquire(ctx, "interest:1:propose")
	require.NoError(t, err)
	releaseOther()

	release()

	again, err := g.Acquire(ctx, "interest:1:confirm")
	require.NoError(t, err)
	again()
}

func TestMemoryGuard_ReleaseIsIdempotent(t *testing.T) {
	g := NewMemoryGuard()
	ctx := context.Background()

	release, err := g.Acquire(ctx, "k")
	require.NoError(t, err)
	release()

	second, err := g.Acquire(ctx, "k")
	require.NoError(t, err)

	// повторный вызов старого release не должен снять чужой захват
	release()
	_, err = g.Acquire(ctx, "k")
	assert.ErrorIs(t, err, ErrBusy)

	second()
}

func TestMemoryGuard_ConcurrentAcquireHasSingleWinner(t *testing.T) {
	g := NewMemoryGuard()
	ctx := context.Background()

	var winners int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := g.Acquire(ctx, "same"); err == nil {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners)
}
