package scheduling

import (
	"sync"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/model"
)

// Board хранит открытое представление заявки для каждого пользователя.
// Открытие новой карточки закрывает предыдущую.
type Board struct {
	mu    sync.Mutex
	views map[int64]*View // telegramID -> View
	loc   *time.Location
	opts  []ViewOption
}

// NewBoard создаёт реестр представлений
func NewBoard(loc *time.Location, opts ...ViewOption) *Board {
	return &Board{
		views: make(map[int64]*View),
		loc:   loc,
		opts:  opts,
	}
}

// Location зона, в которой строятся слоты
func (b *Board) Location() *time.Location {
	return b.loc
}

// Open открывает карточку заявки для пользователя
func (b *Board) Open(viewerID int64, req *model.InterestRequest) *View {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.views[viewerID]; ok {
		old.Close()
	}

	v := NewView(req, b.loc, b.opts...)
	b.views[viewerID] = v
	return v
}

// Get возвращает открытую карточку, если она относится к заявке id
func (b *Board) Get(viewerID int64, id model.ID) (*View, bool) {
	b.mu.Lock()
	v, ok := b.views[viewerID]
	b.mu.Unlock()

	if !ok || v.Closed() || v.ID() != id {
		return nil, false
	}
	return v, true
}

// Close закрывает карточку пользователя
func (b *Board) Close(viewerID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok := b.views[viewerID]; ok {
		v.Close()
		delete(b.views, viewerID)
	}
}
