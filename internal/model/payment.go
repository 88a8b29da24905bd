package model

// PaymentStatus статус симулированного платежа
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "PAID"
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
)

// Payment платёж студента за объявление
type Payment struct {
	ID                ID            `json:"id"`
	InterestRequestID ID            `json:"interestRequestId,omitempty"`
	PostID            ID            `json:"postId,omitempty"`
	PostTitle         string        `json:"postTitle,omitempty"`
	StudentName       string        `json:"studentName,omitempty"`
	Amount            float64       `json:"amount"`
	Status            PaymentStatus `json:"status"`
}

// IsPaid сообщает, что платёж уже проведён
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}
