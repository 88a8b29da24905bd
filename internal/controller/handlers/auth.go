package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/account"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// handleLoginEmail обрабатывает ввод почты при входе
func (h *Handlers) handleLoginEmail(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	if err := service.ValidateEmail(email); err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err)+"\n\nInténtalo de nuevo:")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyEmail, email)
	h.stateManager.SetState(telegramID, state.StateLoginPassword)
	h.sendMessage(ctx, b, update.Message.Chat.ID, account.PromptPassword, nil)
}

// handleLoginPassword выполняет вход
func (h *Handlers) handleLoginPassword(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text
	h.deleteSecret(ctx, b, update)

	email := h.stateManager.GetString(telegramID, state.KeyEmail)
	if email == "" {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	sess, err := h.authService.Login(ctx, telegramID, email, password)
	if err != nil {
		h.logger.Warn("Login failed",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.stateManager.Start(telegramID, state.StateLoginEmail)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\n"+account.PromptEmail)
		return
	}

	h.stateManager.ClearState(telegramID)
	text, kb := common.BuildMainMenu(sess)
	h.sendMessage(ctx, b, chatID, "✅ ¡Sesión iniciada!\n\n"+text, kb)
}

// handleRegisterFirstName обрабатывает ввод имени
func (h *Handlers) handleRegisterFirstName(ctx context.Context, b *bot.Bot, update *models.Update) {
	name, ok := h.readName(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetData(telegramID, state.KeyFirstName, name)
	h.stateManager.SetState(telegramID, state.StateRegisterLastName)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "👤 Escribe tu apellido:", nil)
}

// handleRegisterLastName обрабатывает ввод фамилии
func (h *Handlers) handleRegisterLastName(ctx context.Context, b *bot.Bot, update *models.Update) {
	name, ok := h.readName(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetData(telegramID, state.KeyLastName, name)
	h.stateManager.SetState(telegramID, state.StateRegisterEmail)
	h.sendMessage(ctx, b, update.Message.Chat.ID, account.PromptEmail, nil)
}

// handleRegisterEmail обрабатывает ввод почты при регистрации
func (h *Handlers) handleRegisterEmail(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	if err := service.ValidateEmail(email); err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err)+"\n\nInténtalo de nuevo:")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyEmail, email)
	h.stateManager.SetState(telegramID, state.StateRegisterPassword)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "🔒 Elige una contraseña (mínimo 6 caracteres):", nil)
}

// handleRegisterPassword регистрирует пользователя и сразу выполняет вход
func (h *Handlers) handleRegisterPassword(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text
	h.deleteSecret(ctx, b, update)

	if len(password) < service.PasswordMinLength {
		h.sendError(ctx, b, chatID, common.ErrorMessage(service.ErrPasswordTooShort)+"\n\nInténtalo de nuevo:")
		return
	}

	raw, _ := h.stateManager.GetData(telegramID, state.KeyRole)
	role, _ := raw.(model.Role)
	in := service.RegisterInput{
		FirstName: h.stateManager.GetString(telegramID, state.KeyFirstName),
		LastName:  h.stateManager.GetString(telegramID, state.KeyLastName),
		Email:     h.stateManager.GetString(telegramID, state.KeyEmail),
		Password:  password,
		Role:      role,
	}

	if err := h.authService.Register(ctx, in); err != nil {
		h.stateManager.ClearState(telegramID)
		h.handleError(ctx, b, update, err, "register")
		return
	}
	h.stateManager.ClearState(telegramID)

	sess, err := h.authService.Login(ctx, telegramID, in.Email, in.Password)
	if err != nil {
		h.logger.Warn("Login after registration failed",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendMessage(ctx, b, chatID, "✅ Cuenta creada. Inicia sesión con /login", nil)
		return
	}

	text, kb := common.BuildMainMenu(sess)
	h.sendMessage(ctx, b, chatID, "🎉 ¡Cuenta creada!\n\n"+text, kb)
}

// readName проверяет имя или фамилию
func (h *Handlers) readName(ctx context.Context, b *bot.Bot, update *models.Update) (string, bool) {
	name := strings.TrimSpace(update.Message.Text)
	if name == "" || len([]rune(name)) > NameMaxLength {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(service.ErrNameRequired)+"\n\nInténtalo de nuevo:")
		return "", false
	}
	return name, true
}

// deleteSecret удаляет из чата сообщение с паролем или данными карты
func (h *Handlers) deleteSecret(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    update.Message.Chat.ID,
		MessageID: update.Message.ID,
	})
	if err != nil {
		h.logger.Debug("Failed to delete secret message", zap.Error(err))
	}
}
