package handlers

import "time"

// Ограничения текстовых шагов диалогов
const (
	// Регистрация
	NameMaxLength = 50

	// Объявление
	PostMaxPrice    = 100_000
	LeaseTermMaxLen = 40

	// Симулированная карта
	CardNumberMinDigits = 12
	CardNumberMaxDigits = 19

	// Сообщение к предложению доступности
	ProposalMessageMaxLength = 500
)

// Загрузка фото объявления из Telegram
const (
	photoDownloadTimeout = 30 * time.Second
	photoMaxBytes        = 10 << 20
)
