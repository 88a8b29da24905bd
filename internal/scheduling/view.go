package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/inflight"
	"github.com/Freeeeeet/rental_bot/internal/model"
)

var (
	ErrInvalidTransition = errors.New("transition is not allowed in current phase")
	ErrInFlight          = inflight.ErrBusy
	ErrViewClosed        = errors.New("view is closed")
	ErrSlotNotOffered    = errors.New("slot is not part of the proposal")
	ErrEmptyResponse     = errors.New("backend returned empty request")
)

// Action действие пользователя над заявкой
type Action string

const (
	ActionPropose Action = "propose"
	ActionConfirm Action = "confirm"
)

// ProposeFunc отправляет окно доступности на бэкенд
type ProposeFunc func(ctx context.Context, id model.ID, p Proposal) (*model.InterestRequest, error)

// ConfirmFunc отправляет выбранный слот на бэкенд
type ConfirmFunc func(ctx context.Context, id model.ID, slot time.Time) (*model.InterestRequest, error)

// View представление одной заявки, открытое одним пользователем.
// Состояние меняется только после успешного ответа бэкенда и заменяется им целиком.
type View struct {
	mu         sync.Mutex
	req        *model.InterestRequest
	loc        *time.Location
	guard      inflight.Guard
	now        func() time.Time
	submitting map[Action]bool
	closed     bool
}

// ViewOption настройка View
type ViewOption func(*View)

// WithGuard добавляет межпроцессный guard поверх локального флага отправки
func WithGuard(g inflight.Guard) ViewOption {
	return func(v *View) {
		v.guard = g
	}
}

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) ViewOption {
	return func(v *View) {
		v.now = now
	}
}

// NewView создаёт представление заявки
func NewView(req *model.InterestRequest, loc *time.Location, opts ...ViewOption) *View {
	v := &View{
		req:        req.Clone(),
		loc:        loc,
		now:        time.Now,
		submitting: make(map[Action]bool),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Request копия текущего состояния заявки
func (v *View) Request() *model.InterestRequest {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.req.Clone()
}

// ID идентификатор заявки
func (v *View) ID() model.ID {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.req.ID
}

// Phase текущая фаза согласования
func (v *View) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return PhaseOf(v.req)
}

// Slots слоты из сохранённых параметров заявки
func (v *View) Slots() (Slots, error) {
	v.mu.Lock()
	req := v.req.Clone()
	v.mu.Unlock()
	return SlotsOf(req, v.loc)
}

// Submitting сообщает, что действие сейчас отправляется
func (v *View) Submitting(a Action) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.submitting[a]
}

// Closed сообщает, что представление закрыто
func (v *View) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// Close закрывает представление. Ответы, пришедшие после закрытия, отбрасываются.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

// Replace обновляет заявку данными, заново полученными с бэкенда
func (v *View) Replace(req *model.InterestRequest) error {
	if req == nil || req.ID.IsZero() {
		return ErrEmptyResponse
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrViewClosed
	}
	v.req = req.Clone()
	return nil
}

// Propose переводит заявку NoProposal -> Proposed
func (v *View) Propose(ctx context.Context, p Proposal, submit ProposeFunc) (*model.InterestRequest, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	id, release, err := v.begin(ctx, ActionPropose, func(req *model.InterestRequest) error {
		if PhaseOf(req) != PhaseNoProposal {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	defer release()

	resp, err := submit(ctx, id, p)
	return v.finish(resp, err)
}

// Confirm переводит заявку Proposed -> Confirmed выбранным слотом
func (v *View) Confirm(ctx context.Context, slot time.Time, submit ConfirmFunc) (*model.InterestRequest, error) {
	id, release, err := v.begin(ctx, ActionConfirm, func(req *model.InterestRequest) error {
		if PhaseOf(req) != PhaseProposed {
			return ErrInvalidTransition
		}
		if err := CheckSlot(slot, v.now()); err != nil {
			return err
		}
		slots, err := SlotsOf(req, v.loc)
		if err != nil {
			return err
		}
		if !slots.Contains(slot) {
			return ErrSlotNotOffered
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	defer release()

	resp, err := submit(ctx, id, slot)
	return v.finish(resp, err)
}

// begin проверяет переход и поднимает флаг отправки действия
func (v *View) begin(ctx context.Context, a Action, check func(req *model.InterestRequest) error) (model.ID, func(), error) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return "", nil, ErrViewClosed
	}
	if v.req.Status.IsTerminal() {
		v.mu.Unlock()
		return "", nil, ErrInvalidTransition
	}
	if err := check(v.req); err != nil {
		v.mu.Unlock()
		return "", nil, err
	}
	if v.submitting[a] {
		v.mu.Unlock()
		return "", nil, ErrInFlight
	}
	v.submitting[a] = true
	id := v.req.ID
	v.mu.Unlock()

	release := func() {
		v.mu.Lock()
		delete(v.submitting, a)
		v.mu.Unlock()
	}

	if v.guard == nil {
		return id, release, nil
	}

	unlock, err := v.guard.Acquire(ctx, fmt.Sprintf("interest:%s:%s", id, a))
	if err != nil {
		release()
		if errors.Is(err, inflight.ErrBusy) {
			return "", nil, ErrInFlight
		}
		return "", nil, fmt.Errorf("acquire in-flight guard: %w", err)
	}

	return id, func() {
		unlock()
		release()
	}, nil
}

// finish применяет ответ бэкенда, если представление ещё открыто
func (v *View) finish(resp *model.InterestRequest, err error) (*model.InterestRequest, error) {
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.ID.IsZero() {
		return nil, ErrEmptyResponse
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil, ErrViewClosed
	}
	v.req = resp.Clone()
	return resp.Clone(), nil
}
