package service

import "errors"

// Ошибки проверки ввода, возвращаются до обращения к бэкенду
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrNameRequired       = errors.New("first and last name are required")
	ErrOwnerOnly          = errors.New("action is available to owners only")
	ErrStudentOnly        = errors.New("action is available to students only")
	ErrViewNotOpen        = errors.New("request card is not open")
	ErrInvalidRoom        = errors.New("invalid room data")
	ErrInvalidPost        = errors.New("invalid post data")
	ErrInvalidCard        = errors.New("invalid card data")
	ErrAlreadyPaid        = errors.New("payment is already paid")
	ErrNotPaid            = errors.New("payment is not paid yet")
)
