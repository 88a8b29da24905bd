package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Вход
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"

	// Регистрация (роль выбирается кнопкой до первого шага)
	StateRegisterFirstName UserState = "register_first_name"
	StateRegisterLastName  UserState = "register_last_name"
	StateRegisterEmail     UserState = "register_email"
	StateRegisterPassword  UserState = "register_password"

	// Создание комнаты
	StateNewRoomDescription UserState = "new_room_description"
	StateNewRoomAddress     UserState = "new_room_address"
	StateNewRoomArea        UserState = "new_room_area"
	StateNewRoomChoices     UserState = "new_room_choices" // санузел, кухня, мебель кнопками
	StateNewRoomAmenities   UserState = "new_room_amenities"

	// Создание объявления
	StateNewPostRoom    UserState = "new_post_room"
	StateNewPostTitle   UserState = "new_post_title"
	StateNewPostPrice   UserState = "new_post_price"
	StateNewPostDeposit UserState = "new_post_deposit"
	StateNewPostMinTerm UserState = "new_post_min_term"
	StateNewPostMaxTerm UserState = "new_post_max_term"
	StateNewPostImages  UserState = "new_post_images"
	StateNewPostPreview UserState = "new_post_preview"

	// Правка одного поля опубликованной комнаты или объявления
	StateEditRoomField UserState = "edit_room_field"
	StateEditPostField UserState = "edit_post_field"

	// Предложение доступности (даты, время и длительность выбираются кнопками)
	StateProposal        UserState = "proposal"
	StateProposalMessage UserState = "proposal_message"

	// Симулированная оплата картой
	StatePayCardNumber UserState = "pay_card_number"
	StatePayCardHolder UserState = "pay_card_holder"
	StatePayCardExpiry UserState = "pay_card_expiry"
	StatePayCardCVC    UserState = "pay_card_cvc"
)

// Ключи временных данных диалогов
const (
	KeyEmail     = "email"
	KeyFirstName = "first_name"
	KeyLastName  = "last_name"
	KeyRole      = "role"

	KeyRoom   = "room"   // *model.Room в процессе создания
	KeyPost   = "post"   // *api.PostInput в процессе создания
	KeyImages = "images" // []api.Image

	KeyEditID    = "edit_id"    // model.ID
	KeyEditField = "edit_field" // код поля, см. common.RoomField*/PostField*

	KeyInterestID = "interest_id"
	KeyProposal   = "proposal" // *scheduling.Proposal

	KeyPaymentID = "payment_id"
	KeyCard      = "card" // *service.Card
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
