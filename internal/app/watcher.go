package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Poller один проход фоновой проверки
type Poller interface {
	Poll(ctx context.Context)
}

// Watcher периодически опрашивает бэкенд и рассылает уведомления
type Watcher struct {
	poller   Poller
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// DefaultWatchInterval период опроса, если передан неположительный интервал
const DefaultWatchInterval = 2 * time.Minute

// NewWatcher создаёт фоновый наблюдатель
func NewWatcher(poller Poller, interval time.Duration, logger *zap.Logger) *Watcher {
	if interval <= 0 {
		logger.Warn("Non-positive watch interval, using default",
			zap.Duration("interval", interval),
			zap.Duration("default", DefaultWatchInterval))
		interval = DefaultWatchInterval
	}
	return &Watcher{
		poller:   poller,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновую задачу
func (w *Watcher) Start(ctx context.Context) {
	w.logger.Info("Starting interest watcher", zap.Duration("interval", w.interval))
	go w.run(ctx)
}

// Stop останавливает фоновую задачу и ждёт завершения текущего прохода
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping interest watcher")
		close(w.stopChan)
	})
	<-w.done
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	// Первый проход сразу при старте
	w.poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.poll(ctx)
		case <-w.stopChan:
			w.logger.Info("Interest watcher stopped")
			return
		case <-ctx.Done():
			w.logger.Info("Interest watcher cancelled")
			return
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	started := time.Now()
	w.poller.Poll(ctx)
	w.logger.Debug("Interest poll completed", zap.Duration("took", time.Since(started)))
}
