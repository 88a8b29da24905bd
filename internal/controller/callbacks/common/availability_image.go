package common

import (
	"bytes"
	"image/color"
	"sync"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// MaxImageDays сколько дней помещается на одной картинке
const MaxImageDays = 7

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 130
	leftLabelsWidth  = 80
	dayPaddingX      = 8
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
)

// Константы шрифтов
const (
	titleFontSize     = 28.0
	dayFontSize       = 24.0
	hourLabelFontSize = 18.0
	slotTimeFontSize  = 16.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	slotFreeColor   = color.RGBA{133, 193, 85, 220}
	slotPastColor   = color.RGBA{158, 158, 158, 200}
	slotTextColor   = color.RGBA{20, 24, 28, 230}
	slotShadowColor = color.RGBA{0, 0, 0, 20}
)

type fontStyle int

const (
	fontRegular fontStyle = iota
	fontBold
)

var (
	fontsOnce   sync.Once
	parsedFonts map[fontStyle]*opentype.Font
)

func parseFonts() {
	parsedFonts = make(map[fontStyle]*opentype.Font, 2)
	for style, data := range map[fontStyle][]byte{fontRegular: goregular.TTF, fontBold: gobold.TTF} {
		if f, err := opentype.Parse(data); err == nil {
			parsedFonts[style] = f
		}
	}
}

// loadFont ставит шрифт Go нужного размера или basicfont как fallback
func loadFont(dc *gg.Context, size float64, style fontStyle) {
	fontsOnce.Do(parseFonts)

	if f, ok := parsedFonts[style]; ok {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// hourRange диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

// GenerateAvailabilityImage рисует календарь окна доступности.
// Показываются дни начиная с from (не больше MaxImageDays), прошедшие слоты серые.
func GenerateAvailabilityImage(title string, slots scheduling.Slots, durationMinutes int, from string, now time.Time) ([]byte, error) {
	days := imageDays(slots, from)
	hours := slotHourRange(slots, days, durationMinutes)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	columns := len(days)
	if columns == 0 {
		columns = 1
	}
	dayWidth := (imageWidth - leftLabelsWidth) / columns
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawTitle(dc, title)
	drawHourLabels(dc, hours, cellHeight)

	for i, key := range days {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i)
		if len(slots[key]) > 0 {
			drawDayHeader(dc, slots[key][0], x, y, dayWidth)
		}
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, slot := range slots[key] {
			drawSlot(dc, slot, durationMinutes, !slot.After(now), x, y, dayWidth, hours, cellHeight)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// imageDays даты для картинки начиная с from
func imageDays(slots scheduling.Slots, from string) []string {
	var days []string
	for _, key := range slots.Dates() {
		if key < from {
			continue
		}
		days = append(days, key)
		if len(days) == MaxImageDays {
			break
		}
	}
	return days
}

// slotHourRange определяет диапазон часов по слотам выбранных дней
func slotHourRange(slots scheduling.Slots, days []string, durationMinutes int) hourRange {
	minHour, maxHour := 24, 0
	for _, key := range days {
		for _, slot := range slots[key] {
			end := slot.Add(time.Duration(durationMinutes) * time.Minute)
			if slot.Hour() < minHour {
				minHour = slot.Hour()
			}
			endHour := end.Hour()
			switch {
			case end.Day() != slot.Day():
				endHour = 24
			case end.Minute() > 0:
				endHour++
			}
			if endHour > maxHour {
				maxHour = endHour
			}
		}
	}

	if minHour == 24 {
		minHour = scheduling.DefaultStartTime.Hour
		maxHour = scheduling.DefaultEndTime.Hour
	}
	if maxHour <= minHour {
		maxHour = minHour + 1
	}

	return hourRange{start: minHour, end: maxHour, total: maxHour - minHour}
}

// drawTitle рисует заголовок
func drawTitle(dc *gg.Context, title string) {
	loadFont(dc, titleFontSize, fontBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(imageWidth)/2, float64(headerHeight)/4, 0.5, 0.5)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, fontRegular)
	dc.SetColor(hourLabelColor)

	for i := 0; i <= hours.total; i++ {
		y := float64(headerHeight) + float64(i)*cellHeight
		label := scheduling.TimeOfDay{Hour: hours.start + i}.String()
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int) {
	if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует день недели и дату
func drawDayHeader(dc *gg.Context, day time.Time, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, fontBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(day.Format("02/01"), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(formatting.GetWeekdayShort(day.Weekday()), x+float64(dayWidth)/2, y, 0.5, -0.2)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for i := 0; i <= hours.total; i++ {
		hy := y + float64(i)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawSlot рисует один слот
func drawSlot(dc *gg.Context, slot time.Time, durationMinutes int, past bool, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	startHour := float64(slot.Hour()) + float64(slot.Minute())/60.0
	endHour := startHour + float64(durationMinutes)/60.0
	if endHour > float64(hours.end) {
		endHour = float64(hours.end)
	}

	slotY := y + (startHour-float64(hours.start))*cellHeight
	slotHeight := (endHour - startHour) * cellHeight
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}

	fillColor := slotFreeColor
	if past {
		fillColor = slotPastColor
	}
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Stroke()

	if slotHeight >= slotTimeFontSize+4 {
		loadFont(dc, slotTimeFontSize, fontRegular)
		dc.SetColor(slotTextColor)
		dc.DrawStringAnchored(formatting.FormatTime(slot), x+float64(dayWidth)/2, slotY+slotHeight/2, 0.5, 0.5)
	}
}

// darkenColor затемняет цвет на коэффициент factor
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
