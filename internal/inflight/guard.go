package inflight

import (
	"context"
	"errors"
	"sync"
)

// ErrBusy действие с этим ключом уже выполняется
var ErrBusy = errors.New("action already in flight")

// Guard защищает действие от повторной отправки, пока предыдущая не завершилась
type Guard interface {
	// Acquire захватывает ключ. release обязательно вызывать после завершения действия.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// MemoryGuard guard в памяти процесса
type MemoryGuard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

// NewMemoryGuard создаёт guard в памяти
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{busy: make(map[string]struct{})}
}

// Acquire захватывает ключ или возвращает ErrBusy
func (g *MemoryGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.busy[key]; ok {
		return nil, ErrBusy
	}
	g.busy[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, nil
}
