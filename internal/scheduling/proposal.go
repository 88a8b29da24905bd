package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/model"
)

var (
	ErrInvalidDateRange = errors.New("start date is after end date")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrNoProposal       = errors.New("request has no availability proposal")
)

// Длительности слотов, которые предлагает форма владельца
var SlotDurations = []int{15, 30, 45, 60}

// Значения формы по умолчанию
var (
	DefaultStartTime = TimeOfDay{Hour: 9}
	DefaultEndTime   = TimeOfDay{Hour: 17}
)

const DefaultDurationMinutes = 30

// Proposal окно доступности, которое владелец отправляет студенту
type Proposal struct {
	Window
	Message string
}

// Validate проверяет окно до обращения к бэкенду
func (p Proposal) Validate() error {
	if p.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return ErrInvalidDate
	}
	if p.StartDate.After(p.EndDate) {
		return ErrInvalidDateRange
	}
	if !p.StartTime.Before(p.EndTime) {
		return ErrInvalidTimeRange
	}
	return nil
}

// WindowOf восстанавливает окно из сохранённых в заявке параметров
func WindowOf(req *model.InterestRequest, loc *time.Location) (Window, error) {
	if !req.HasProposal() {
		return Window{}, ErrNoProposal
	}

	startDate, err := ParseDate(req.AvailabilityStartDate, loc)
	if err != nil {
		return Window{}, fmt.Errorf("start date: %w", err)
	}
	endDate, err := ParseDate(req.AvailabilityEndDate, loc)
	if err != nil {
		return Window{}, fmt.Errorf("end date: %w", err)
	}
	startTime, err := ParseTimeOfDay(req.AvailabilityStartTime)
	if err != nil {
		return Window{}, fmt.Errorf("start time: %w", err)
	}
	endTime, err := ParseTimeOfDay(req.AvailabilityEndTime)
	if err != nil {
		return Window{}, fmt.Errorf("end time: %w", err)
	}

	return Window{
		StartDate:       startDate,
		EndDate:         endDate,
		StartTime:       startTime,
		EndTime:         endTime,
		DurationMinutes: req.SlotDurationMinutes,
	}, nil
}

// SlotsOf генерирует слоты из параметров заявки
func SlotsOf(req *model.InterestRequest, loc *time.Location) (Slots, error) {
	w, err := WindowOf(req, loc)
	if err != nil {
		return nil, err
	}
	return Generate(w, loc)
}

// Phase фаза согласования визита
type Phase int

const (
	PhaseNoProposal Phase = iota
	PhaseProposed
	PhaseConfirmed
)

// PhaseOf определяет фазу по состоянию заявки
func PhaseOf(req *model.InterestRequest) Phase {
	switch {
	case req.AppointmentConfirmedByStudent:
		return PhaseConfirmed
	case req.HasProposal():
		return PhaseProposed
	default:
		return PhaseNoProposal
	}
}

func (p Phase) String() string {
	switch p {
	case PhaseNoProposal:
		return "no_proposal"
	case PhaseProposed:
		return "proposed"
	case PhaseConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}
