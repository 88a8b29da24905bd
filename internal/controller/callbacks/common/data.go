package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/model"
)

// ========================
// Callback Data Patterns
// ========================

// Заявки
const (
	InterestList    = "int:list:"    // int:list:page
	InterestOpen    = "int:open:"    // int:open:id
	InterestRefresh = "int:refresh:" // int:refresh:id
)

// Владелец: предложение доступности
const (
	ProposalStart     = "prop:start:" // prop:start:interest_id
	ProposalStartDate = "prop:sd:"    // prop:sd:2025-06-10
	ProposalEndDate   = "prop:ed:"    // prop:ed:2025-06-12
	ProposalStartTime = "prop:st:"    // prop:st:0900
	ProposalEndTime   = "prop:et:"    // prop:et:1700
	ProposalDuration  = "prop:dur:"   // prop:dur:30
	ProposalSkipMsg   = "prop:skip"
	ProposalSend      = "prop:send"
	ProposalCancel    = "prop:cancel"
)

// Студент: выбор слота
const (
	SlotDays    = "slot:days:" // slot:days:interest_id
	SlotDay     = "slot:day:"  // slot:day:interest_id:2025-06-10
	SlotPick    = "slot:pick:" // slot:pick:interest_id:unix
	SlotConfirm = "slot:ok:"   // slot:ok:interest_id:unix
	SlotImage   = "slot:img:"  // slot:img:interest_id
)

// Объявления
const (
	PostList       = "post:list:"     // post:list:page
	PostView       = "post:view:"     // post:view:id
	PostInterest   = "post:interest:" // post:interest:id
	PostMessage    = "post:msg:"      // post:msg:id
	MyPostList     = "mypost:list:"   // mypost:list:page
	MyPostView     = "mypost:view:"   // mypost:view:id
	MyPostStatus   = "mypost:status:" // mypost:status:id:DISPONIBLE
	MyPostEditMenu = "mypost:edits:"  // mypost:edits:id
	MyPostEdit     = "mypost:edit:"   // mypost:edit:id:field
	MyPostEditStop = "mypost:editx:"  // mypost:editx:id
	MyPostDelete   = "mypost:del:"    // mypost:del:id
	MyPostDeleteOK = "mypost:delok:"  // mypost:delok:id
	NewPostRoom    = "newpost:room:"  // newpost:room:room_id
	NewPostNoImage = "newpost:noimg"
	NewPostSave    = "newpost:save"
	NewPostCancel  = "newpost:cancel"
)

// Комнаты
const (
	RoomList       = "room:list:"     // room:list:page
	RoomView       = "room:view:"     // room:view:id
	MyRoomList     = "myroom:list:"   // myroom:list:page
	MyRoomView     = "myroom:view:"   // myroom:view:id
	MyRoomToggle   = "myroom:toggle:" // myroom:toggle:id
	MyRoomEditMenu = "myroom:edits:"  // myroom:edits:id
	MyRoomEdit     = "myroom:edit:"   // myroom:edit:id:field
	MyRoomEditStop = "myroom:editx:"  // myroom:editx:id
	MyRoomDelete   = "myroom:del:"    // myroom:del:id
	MyRoomDeleteOK = "myroom:delok:"  // myroom:delok:id
	NewRoomBath    = "newroom:bath:"  // newroom:bath:index
	NewRoomKitchen = "newroom:kit:"   // newroom:kit:index
	NewRoomFurnish = "newroom:furn:"  // newroom:furn:1
	NewRoomSave    = "newroom:save"
	NewRoomCancel  = "newroom:cancel"
)

// Редактируемые поля
const (
	RoomFieldDescription = "desc"
	RoomFieldAddress     = "addr"
	RoomFieldArea        = "area"
	RoomFieldAmenities   = "amen"

	PostFieldTitle   = "title"
	PostFieldPrice   = "price"
	PostFieldDeposit = "dep"
	PostFieldMinTerm = "min"
	PostFieldMaxTerm = "max"
)

// Платежи
const (
	PaymentList       = "pay:list"
	PaymentAccepted   = "pay:accepted"
	PaymentRequest    = "pay:req:"   // pay:req:interest_id
	PaymentRegenerate = "pay:regen:" // pay:regen:payment_id
	PaymentCard       = "pay:card:"  // pay:card:payment_id
	PaymentConfirm    = "pay:ok:"    // pay:ok:payment_id
	PaymentCancel     = "pay:cancel"
)

// Вход и регистрация
const (
	AuthLogin      = "auth:login"
	AuthRegister   = "auth:register"
	RegisterAsRole = "auth:role:" // auth:role:owner
)

// ParseArgs разбирает аргументы после префикса
// Например: ParseArgs("slot:day:7:2025-06-10", "slot:day:", 2) -> ["7", "2025-06-10"]
func ParseArgs(data, prefix string, n int) ([]string, error) {
	if !strings.HasPrefix(data, prefix) {
		return nil, ErrInvalidFormat
	}
	args := strings.SplitN(strings.TrimPrefix(data, prefix), ":", n)
	if len(args) != n {
		return nil, ErrInvalidFormat
	}
	for _, a := range args {
		if a == "" {
			return nil, ErrInvalidFormat
		}
	}
	return args, nil
}

// ParseID извлекает идентификатор после префикса
// Например: "int:open:123" -> "123"
func ParseID(data, prefix string) (model.ID, error) {
	args, err := ParseArgs(data, prefix, 1)
	if err != nil {
		return "", err
	}
	return model.ID(args[0]), nil
}

// ParsePage извлекает номер страницы после префикса
func ParsePage(data, prefix string) int {
	args, err := ParseArgs(data, prefix, 1)
	if err != nil {
		return 0
	}
	page, err := strconv.Atoi(args[0])
	if err != nil {
		return 0
	}
	return page
}

// EncodeSlot кодирует слот для callback data
func EncodeSlot(id model.ID, slot time.Time) string {
	return fmt.Sprintf("%s:%d", id, slot.Unix())
}

// ParseSlot разбирает "id:unix" в зоне loc
func ParseSlot(data, prefix string, loc *time.Location) (model.ID, time.Time, error) {
	args, err := ParseArgs(data, prefix, 2)
	if err != nil {
		return "", time.Time{}, err
	}
	unix, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return "", time.Time{}, ErrInvalidFormat
	}
	return model.ID(args[0]), time.Unix(unix, 0).In(loc), nil
}
