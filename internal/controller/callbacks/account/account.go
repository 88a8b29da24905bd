package account

import (
	"context"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Тексты шагов входа и регистрации
const (
	PromptEmail     = "📧 Escribe tu correo electrónico:"
	PromptPassword  = "🔒 Escribe tu contraseña:"
	PromptFirstName = "👤 Escribe tu nombre:"
)

// ========================
// Login & Registration
// ========================

// HandleLogin начинает вход
func HandleLogin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	hc.StartState(state.StateLoginEmail)

	hc.EditMessage("🔑 <b>Iniciar sesión</b>\n\n"+PromptEmail, nil)
	hc.Answer("")
}

// HandleRegister предлагает выбрать роль
func HandleRegister(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	hc.ClearState()

	text, kb := BuildRoleChoice()
	hc.EditMessage(text, kb)
	hc.Answer("")
}

// HandleRole сохраняет роль и начинает регистрацию
func HandleRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	args, err := common.ParseArgs(callback.Data, common.RegisterAsRole, 1)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}
	role, err := model.RoleFromString(args[0])
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	hc.StartState(state.StateRegisterFirstName)
	hc.SetData(state.KeyRole, role)

	hc.EditMessage("📝 <b>Registro</b>\n\n"+PromptFirstName, nil)
	hc.Answer("")
}

// BuildRoleChoice выбор роли при регистрации
func BuildRoleChoice() (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🎓 Soy estudiante", common.RegisterAsRole+model.RoleStudent.String())).
		Row(keyboard.Button("🏠 Soy propietario", common.RegisterAsRole+model.RoleOwner.String())).
		Row(keyboard.BackToMainButton()).
		Build()
	return "📝 <b>Registro</b>\n\n¿Cómo usarás Rental Bot?", kb
}
