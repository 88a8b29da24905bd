package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingPoller struct {
	calls int32
}

func (p *countingPoller) Poll(context.Context) {
	atomic.AddInt32(&p.calls, 1)
}

func TestWatcher_PollsUntilStopped(t *testing.T) {
	poller := &countingPoller{}
	w := NewWatcher(poller, 5*time.Millisecond, zap.NewNop())

	w.Start(context.Background())
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&poller.calls) >= 3
	}, time.Second, time.Millisecond)

	w.Stop()
	stopped := atomic.LoadInt32(&poller.calls)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&poller.calls))

	w.Stop()
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	poller := &countingPoller{}
	w := NewWatcher(poller, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	cancel()

	select {
	case <-w.done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&poller.calls))
}

func TestWatcher_NonPositiveIntervalFallsBack(t *testing.T) {
	poller := &countingPoller{}
	w := NewWatcher(poller, 0, zap.NewNop())
	assert.Equal(t, DefaultWatchInterval, w.interval)

	ctx, cancel := context.WithCancel(context.Background())
	assert.NotPanics(t, func() { w.Start(ctx) })
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&poller.calls) == 1
	}, time.Second, time.Millisecond)
	cancel()
	<-w.done
}
