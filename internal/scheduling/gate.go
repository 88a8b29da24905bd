package scheduling

import (
	"errors"
	"time"
)

// ErrSlotInPast выбранный слот уже начался или прошёл
var ErrSlotInPast = errors.New("slot is in the past")

// CheckSlot пропускает только слоты, которые начинаются позже now.
// Проверка выполняется в момент нажатия, а не при генерации.
func CheckSlot(slot, now time.Time) error {
	if !slot.After(now) {
		return ErrSlotInPast
	}
	return nil
}
