package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// DateLayout формат календарной даты в ключах и в API
const DateLayout = "2006-01-02"

var (
	ErrInvalidDuration = errors.New("slot duration must be positive")
	ErrInvalidTime     = errors.New("invalid time of day")
	ErrInvalidDate     = errors.New("invalid date")
)

// TimeOfDay время суток без даты
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay разбирает HH:MM (секунды HH:MM:SS допускаются и отбрасываются)
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

// Minutes минуты от начала суток
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before сравнивает два времени суток
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// on ставит время суток на дату day
func (t TimeOfDay) on(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// ParseDate разбирает YYYY-MM-DD как полночь в loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// Window окно доступности: диапазон дат и одинаковые для всех дней границы времени
type Window struct {
	StartDate       time.Time
	EndDate         time.Time
	StartTime       TimeOfDay
	EndTime         TimeOfDay
	DurationMinutes int
}

// Slots слоты по датам: YYYY-MM-DD -> моменты начала по возрастанию
type Slots map[string][]time.Time

// Generate разворачивает окно в слоты.
// Слот выпускается, если его начало строго раньше конца окна дня;
// длительность последнего слота может выходить за границу.
func Generate(w Window, loc *time.Location) (Slots, error) {
	if w.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	step := time.Duration(w.DurationMinutes) * time.Minute
	first := dateIn(w.StartDate, loc)
	last := dateIn(w.EndDate, loc)

	slots := make(Slots)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		limit := w.EndTime.on(day)

		daySlots := make([]time.Time, 0)
		for cursor := w.StartTime.on(day); cursor.Before(limit); cursor = cursor.Add(step) {
			daySlots = append(daySlots, cursor)
		}
		slots[day.Format(DateLayout)] = daySlots
	}

	return slots, nil
}

// dateIn возвращает полночь календарной даты t в loc
func dateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Dates отсортированные даты
func (s Slots) Dates() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// UpcomingDates даты, которые не раньше сегодняшнего дня и содержат слоты
func (s Slots) UpcomingDates(now time.Time) []string {
	today := now.In(s.location()).Format(DateLayout)

	var dates []string
	for _, d := range s.Dates() {
		if d >= today && len(s[d]) > 0 {
			dates = append(dates, d)
		}
	}
	return dates
}

// Contains проверяет, что момент есть среди слотов
func (s Slots) Contains(t time.Time) bool {
	for _, slot := range s[t.In(s.location()).Format(DateLayout)] {
		if slot.Equal(t) {
			return true
		}
	}
	return false
}

// location зона, в которой построены слоты
func (s Slots) location() *time.Location {
	for _, daySlots := range s {
		if len(daySlots) > 0 {
			return daySlots[0].Location()
		}
	}
	return time.Local
}

// Count общее число слотов
func (s Slots) Count() int {
	total := 0
	for _, daySlots := range s {
		total += len(daySlots)
	}
	return total
}
