package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"go.uber.org/zap"
)

// Card данные карты из симулированной формы оплаты
type Card struct {
	Number string
	Holder string
	Expiry string
	CVC    string
}

// Validate все поля формы обязательны
func (c Card) Validate() error {
	for _, field := range []string{c.Number, c.Holder, c.Expiry, c.CVC} {
		if strings.TrimSpace(field) == "" {
			return ErrInvalidCard
		}
	}
	return nil
}

// PaymentService симулированные платежи за аренду
type PaymentService struct {
	api    *api.Client
	logger *zap.Logger
}

func NewPaymentService(client *api.Client, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		api:    client,
		logger: logger,
	}
}

// List платежи пользователя: выставленные владельцем или выставленные студенту
func (s *PaymentService) List(ctx context.Context, role model.Role) ([]*model.Payment, error) {
	switch role {
	case model.RoleOwner:
		return s.api.OwnerPayments(ctx)
	case model.RoleStudent:
		return s.api.MyPayments(ctx)
	default:
		return nil, fmt.Errorf("list payments: %w", model.ErrUnknownRole)
	}
}

// Request владелец выставляет платёж по принятой заявке
func (s *PaymentService) Request(ctx context.Context, role model.Role, interestID model.ID) (*model.Payment, error) {
	if role != model.RoleOwner {
		return nil, ErrOwnerOnly
	}

	payment, err := s.api.CreatePayment(ctx, interestID)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.logger.Info("Payment requested",
		zap.String("payment_id", payment.ID.String()),
		zap.String("interest_id", interestID.String()))

	return payment, nil
}

// Pay студент оплачивает платёж
func (s *PaymentService) Pay(ctx context.Context, role model.Role, payment *model.Payment, card Card) (*model.Payment, error) {
	if role != model.RoleStudent {
		return nil, ErrStudentOnly
	}
	if payment.IsPaid() {
		return nil, ErrAlreadyPaid
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}

	paid, err := s.api.ConfirmPayment(ctx, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	s.logger.Info("Payment confirmed", zap.String("payment_id", payment.ID.String()))
	return paid, nil
}

// Regenerate выставляет следующий платёж на основе оплаченного
func (s *PaymentService) Regenerate(ctx context.Context, role model.Role, payment *model.Payment) (*model.Payment, error) {
	if role != model.RoleOwner {
		return nil, ErrOwnerOnly
	}
	if !payment.IsPaid() {
		return nil, ErrNotPaid
	}

	next, err := s.api.RegeneratePayment(ctx, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("regenerate payment: %w", err)
	}
	return next, nil
}

// Find ищет платёж пользователя по id
func (s *PaymentService) Find(ctx context.Context, role model.Role, id model.ID) (*model.Payment, error) {
	payments, err := s.List(ctx, role)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, api.ErrNotFound
}
