package model

import "time"

// InterestStatus статус заявки студента на объявление
type InterestStatus string

const (
	InterestStatusPending   InterestStatus = "PENDING"
	InterestStatusInContact InterestStatus = "IN_CONTACT"
	InterestStatusAccepted  InterestStatus = "ACCEPTED"
	InterestStatusRejected  InterestStatus = "REJECTED"
	InterestStatusClosed    InterestStatus = "CLOSED"
)

// IsTerminal сообщает, что бэкенд закрыл заявку и переходы больше невозможны
func (s InterestStatus) IsTerminal() bool {
	return s == InterestStatusRejected || s == InterestStatusClosed
}

// InterestRequest заявка на объявление, которая превращается в визит
type InterestRequest struct {
	ID           ID             `json:"id"`
	Status       InterestStatus `json:"status"`
	PostID       ID             `json:"postId,omitempty"`
	PostTitle    string         `json:"postTitle,omitempty"`
	StudentName  string         `json:"studentName,omitempty"`
	StudentEmail string         `json:"studentEmail,omitempty"`
	Message      string         `json:"message,omitempty"`

	// Окно доступности, которое предлагает владелец
	AvailabilityStartDate string `json:"availabilityStartDate,omitempty"` // YYYY-MM-DD
	AvailabilityEndDate   string `json:"availabilityEndDate,omitempty"`   // YYYY-MM-DD
	AvailabilityStartTime string `json:"availabilityStartTime,omitempty"` // HH:MM
	AvailabilityEndTime   string `json:"availabilityEndTime,omitempty"`   // HH:MM
	SlotDurationMinutes   int    `json:"slotDurationMinutes,omitempty"`

	AppointmentConfirmedByStudent bool   `json:"appointmentConfirmedByStudent"`
	AppointmentDateTime           string `json:"appointmentDateTime,omitempty"`
}

// HasProposal сообщает, что владелец уже предложил окно доступности
func (r *InterestRequest) HasProposal() bool {
	return r.AvailabilityStartDate != "" && r.AvailabilityEndDate != ""
}

// Clone возвращает независимую копию заявки
func (r *InterestRequest) Clone() *InterestRequest {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

var appointmentLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// AppointmentTime разбирает время визита.
// Значение без зоны трактуется как локальное время loc.
func (r *InterestRequest) AppointmentTime(loc *time.Location) (time.Time, bool) {
	if r.AppointmentDateTime == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339Nano, r.AppointmentDateTime); err == nil {
		return t.In(loc), true
	}

	for _, layout := range appointmentLayouts {
		if t, err := time.ParseInLocation(layout, r.AppointmentDateTime, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
