package model

import "time"

// InterestSnapshot последнее известное боту состояние заявки.
// Используется фоновым наблюдателем, чтобы заметить изменения.
type InterestSnapshot struct {
	TelegramID  int64          `json:"telegram_id"`
	InterestID  ID             `json:"interest_id"`
	Status      InterestStatus `json:"status"`
	HasProposal bool           `json:"has_proposal"`
	Confirmed   bool           `json:"confirmed"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// SnapshotOf снимает состояние заявки для пользователя
func SnapshotOf(telegramID int64, req *InterestRequest) *InterestSnapshot {
	return &InterestSnapshot{
		TelegramID:  telegramID,
		InterestID:  req.ID,
		Status:      req.Status,
		HasProposal: req.HasProposal(),
		Confirmed:   req.AppointmentConfirmedByStudent,
	}
}
