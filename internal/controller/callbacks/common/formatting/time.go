package formatting

import (
	"fmt"
	"time"
)

var weekdayNames = []string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

var weekdayShortNames = []string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

var monthNames = map[time.Month]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format("15:04"), end.Format("15:04"))
}

// FormatDayLong "martes 10 de junio"
func FormatDayLong(t time.Time) string {
	return fmt.Sprintf("%s %d de %s", lower(GetWeekdayName(t.Weekday())), t.Day(), monthNames[t.Month()])
}

// FormatDayShort "Mar 10/06"
func FormatDayShort(t time.Time) string {
	return fmt.Sprintf("%s %s", GetWeekdayShort(t.Weekday()), t.Format("02/01"))
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, mins)
}

// GetWeekdayName название дня недели
func GetWeekdayName(weekday time.Weekday) string {
	return weekdayNames[weekday]
}

// GetWeekdayShort короткое название дня недели
func GetWeekdayShort(weekday time.Weekday) string {
	return weekdayShortNames[weekday]
}

// GetMonthName название месяца
func GetMonthName(month time.Month) string {
	return monthNames[month]
}

func lower(s string) string {
	runes := []rune(s)
	if len(runes) > 0 && runes[0] >= 'A' && runes[0] <= 'Z' {
		runes[0] += 'a' - 'A'
	}
	return string(runes)
}
