package controller

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/rental_bot/internal/controller/handlers"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Services сервисы, которые нужны обработчикам бота
type Services struct {
	Auth     *service.AuthService
	Interest *service.InterestService
	Room     *service.RoomService
	Post     *service.PostService
	Payment  *service.PaymentService
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	services Services,
	loc *time.Location,
	logger *zap.Logger,
) *BotController {
	// Общий менеджер состояний для команд и кнопок
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		services.Auth,
		services.Interest,
		services.Room,
		services.Post,
		services.Payment,
		stateManager,
		loc,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		services.Auth,
		services.Interest,
		services.Room,
		services.Post,
		services.Payment,
		stateManager,
		loc,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	commands := map[string]bot.HandlerFunc{
		"/start":    c.handlers.HandleStart,
		"/help":     c.handlers.HandleHelp,
		"/cancel":   c.handlers.HandleCancel,
		"/login":    c.handlers.HandleLogin,
		"/register": c.handlers.HandleRegister,
		"/logout":   c.handlers.HandleLogout,
		"/posts":    c.handlers.HandlePosts,
		"/rooms":    c.handlers.HandleRooms,
		"/requests": c.handlers.HandleRequests,
		"/payments": c.handlers.HandlePayments,

		// Команды владельца
		"/myrooms": c.handlers.HandleMyRooms,
		"/myposts": c.handlers.HandleMyPosts,
		"/newroom": c.handlers.HandleNewRoom,
		"/newpost": c.handlers.HandleNewPost,
	}
	for pattern, handler := range commands {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, pattern, bot.MatchTypeExact, handler)
	}

	// Фото для нового объявления
	c.bot.RegisterHandlerMatchFunc(isPhoto, c.handlers.HandlePhoto)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandlerMatchFunc(isDialogText, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

func isPhoto(update *models.Update) bool {
	return update.Message != nil && len(update.Message.Photo) > 0
}

// isDialogText текст без команды, ответ на шаг диалога
func isDialogText(update *models.Update) bool {
	return update.Message != nil &&
		update.Message.Text != "" &&
		!strings.HasPrefix(update.Message.Text, "/")
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Menú principal"},
		{Command: "help", Description: "❓ Ayuda"},
		{Command: "login", Description: "🔑 Iniciar sesión"},
		{Command: "register", Description: "📝 Crear cuenta"},
		{Command: "posts", Description: "📢 Anuncios"},
		{Command: "rooms", Description: "🛏 Habitaciones"},
		{Command: "requests", Description: "📩 Mis solicitudes"},
		{Command: "payments", Description: "💳 Pagos"},
		{Command: "myrooms", Description: "🏠 Mis habitaciones (propietario)"},
		{Command: "myposts", Description: "📋 Mis anuncios (propietario)"},
		{Command: "newroom", Description: "➕ Nueva habitación (propietario)"},
		{Command: "newpost", Description: "➕ Nuevo anuncio (propietario)"},
		{Command: "cancel", Description: "✖️ Cancelar la acción actual"},
		{Command: "logout", Description: "🚪 Cerrar sesión"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// DefaultHandler обработчик апдейтов, для которых нет своего handler
func (c *BotController) DefaultHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	c.handlers.HandleDefault(ctx, b, update)
}

// Start запускает бота и блокируется до отмены контекста
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
