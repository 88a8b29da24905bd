package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/account"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	h.interestService.Close(telegramID)

	sess, _ := h.authService.Session(telegramID)
	text, kb := common.BuildMainMenu(sess)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 <b>Ayuda</b>\n\n" +
		"/start - Menú principal\n" +
		"/login - Iniciar sesión\n" +
		"/register - Crear una cuenta\n" +
		"/logout - Cerrar sesión\n" +
		"/posts - Ver anuncios\n" +
		"/rooms - Ver habitaciones\n" +
		"/requests - Solicitudes y citas\n" +
		"/payments - Pagos\n" +
		"/cancel - Cancelar la operación actual\n\n" +
		"<b>Para propietarios:</b>\n" +
		"/myrooms - Mis habitaciones\n" +
		"/myposts - Mis anuncios\n" +
		"/newroom - Nueva habitación\n" +
		"/newpost - Nuevo anuncio"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ No hay ninguna operación activa.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Operación cancelada.\n\nUsa /help para ver los comandos.", nil)
}

// HandleLogin обрабатывает команду /login
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	h.stateManager.Start(update.Message.From.ID, state.StateLoginEmail)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "🔑 <b>Iniciar sesión</b>\n\n"+account.PromptEmail, nil)
}

// HandleRegister обрабатывает команду /register
func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	h.stateManager.ClearState(update.Message.From.ID)
	text, kb := account.BuildRoleChoice()
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	h.interestService.Close(telegramID)

	if err := h.authService.Logout(ctx, telegramID); err != nil {
		h.handleError(ctx, b, update, err, "logout")
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 Sesión cerrada. Usa /login para volver a entrar.", nil)
}

// HandlePosts обрабатывает команду /posts
func (h *Handlers) HandlePosts(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}

	posts, err := h.postService.List(ctx)
	if err != nil {
		h.handleError(ctx, b, update, err, "list_posts")
		return
	}

	text, kb := common.BuildPostListScreen("🏘 <b>Anuncios</b>", posts, 0, common.PostList, common.PostView)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleRooms обрабатывает команду /rooms
func (h *Handlers) HandleRooms(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}

	rooms, err := h.roomService.List(ctx)
	if err != nil {
		h.handleError(ctx, b, update, err, "list_rooms")
		return
	}

	text, kb := common.BuildRoomListScreen("🛏 <b>Habitaciones</b>", rooms, 0, common.RoomList, common.RoomView)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleRequests обрабатывает команду /requests: полученные или отправленные заявки по роли
func (h *Handlers) HandleRequests(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	h.interestService.Close(sess.TelegramID)
	reqs, err := h.interestService.List(ctx, sess.Role)
	if err != nil {
		h.handleError(ctx, b, update, err, "list_interests")
		return
	}

	text, kb := common.BuildInterestListScreen(sess.Role, reqs, 0)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandlePayments обрабатывает команду /payments
func (h *Handlers) HandlePayments(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	payments, err := h.paymentService.List(ctx, sess.Role)
	if err != nil {
		h.handleError(ctx, b, update, err, "list_payments")
		return
	}

	text, kb := common.BuildPaymentListScreen(sess.Role, payments)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMyRooms обрабатывает команду /myrooms
func (h *Handlers) HandleMyRooms(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireOwner(ctx, b, update)
	if !ok {
		return
	}

	rooms, err := h.roomService.Mine(ctx, sess.Role)
	if err != nil {
		h.handleError(ctx, b, update, err, "my_rooms")
		return
	}

	text, kb := common.BuildRoomListScreen("🛏 <b>Mis habitaciones</b>", rooms, 0, common.MyRoomList, common.MyRoomView)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMyPosts обрабатывает команду /myposts
func (h *Handlers) HandleMyPosts(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireOwner(ctx, b, update)
	if !ok {
		return
	}

	posts, err := h.postService.Mine(ctx, sess.Role)
	if err != nil {
		h.handleError(ctx, b, update, err, "my_posts")
		return
	}

	text, kb := common.BuildPostListScreen("📢 <b>Mis anuncios</b>", posts, 0, common.MyPostList, common.MyPostView)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleNewRoom обрабатывает команду /newroom
func (h *Handlers) HandleNewRoom(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireOwner(ctx, b, update)
	if !ok {
		return
	}

	h.stateManager.Start(sess.TelegramID, state.StateNewRoomDescription)
	h.stateManager.SetData(sess.TelegramID, state.KeyRoom, &model.Room{Available: true})

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🛏 <b>Nueva habitación</b>\n\n"+
			"Paso 1: describe la habitación (mínimo 10 caracteres).\n\n"+
			"Para cancelar usa /cancel", nil)
}

// HandleNewPost обрабатывает команду /newpost
func (h *Handlers) HandleNewPost(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireOwner(ctx, b, update)
	if !ok {
		return
	}

	rooms, err := h.roomService.Mine(ctx, sess.Role)
	if err != nil {
		h.handleError(ctx, b, update, err, "new_post")
		return
	}

	h.stateManager.Start(sess.TelegramID, state.StateNewPostRoom)
	h.stateManager.SetData(sess.TelegramID, state.KeyPost, &api.PostInput{Status: model.PostStatusAvailable})

	text, kb := common.BuildRoomPicker(rooms)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🤔 No entendí. Usa /help para ver los comandos.", nil)

	// Вход и регистрация
	case state.StateLoginEmail:
		h.handleLoginEmail(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPassword(ctx, b, update)
	case state.StateRegisterFirstName:
		h.handleRegisterFirstName(ctx, b, update)
	case state.StateRegisterLastName:
		h.handleRegisterLastName(ctx, b, update)
	case state.StateRegisterEmail:
		h.handleRegisterEmail(ctx, b, update)
	case state.StateRegisterPassword:
		h.handleRegisterPassword(ctx, b, update)

	// Комната
	case state.StateNewRoomDescription:
		h.handleNewRoomDescription(ctx, b, update)
	case state.StateNewRoomAddress:
		h.handleNewRoomAddress(ctx, b, update)
	case state.StateNewRoomArea:
		h.handleNewRoomArea(ctx, b, update)
	case state.StateNewRoomAmenities:
		h.handleNewRoomAmenities(ctx, b, update)

	// Объявление
	case state.StateNewPostTitle:
		h.handleNewPostTitle(ctx, b, update)
	case state.StateNewPostPrice:
		h.handleNewPostPrice(ctx, b, update)
	case state.StateNewPostDeposit:
		h.handleNewPostDeposit(ctx, b, update)
	case state.StateNewPostMinTerm:
		h.handleNewPostMinTerm(ctx, b, update)
	case state.StateNewPostMaxTerm:
		h.handleNewPostMaxTerm(ctx, b, update)

	// Правка опубликованных комнат и объявлений
	case state.StateEditRoomField:
		h.handleEditRoomField(ctx, b, update)
	case state.StateEditPostField:
		h.handleEditPostField(ctx, b, update)

	// Предложение доступности
	case state.StateProposalMessage:
		h.handleProposalMessage(ctx, b, update)

	// Оплата
	case state.StatePayCardNumber:
		h.handlePayCardNumber(ctx, b, update)
	case state.StatePayCardHolder:
		h.handlePayCardHolder(ctx, b, update)
	case state.StatePayCardExpiry:
		h.handlePayCardExpiry(ctx, b, update)
	case state.StatePayCardCVC:
		h.handlePayCardCVC(ctx, b, update)

	default:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "👆 Usa los botones del mensaje anterior o /cancel.", nil)
	}
}

// HandleDefault отвечает на неизвестные команды и прочие апдейты
func (h *Handlers) HandleDefault(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	if strings.HasPrefix(update.Message.Text, "/") {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❓ Comando desconocido. Usa /help para ver los comandos.", nil)
	}
}
