package common

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlots(t *testing.T, days int) scheduling.Slots {
	t.Helper()
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	slots, err := scheduling.Generate(scheduling.Window{
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, days-1),
		StartTime:       scheduling.TimeOfDay{Hour: 9},
		EndTime:         scheduling.TimeOfDay{Hour: 11},
		DurationMinutes: 30,
	}, time.UTC)
	require.NoError(t, err)
	return slots
}

func TestGenerateAvailabilityImage(t *testing.T) {
	slots := testSlots(t, 3)
	now := time.Date(2025, 6, 10, 9, 45, 0, 0, time.UTC)

	data, err := GenerateAvailabilityImage("Visita", slots, 30, "2025-06-10", now)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestImageDays(t *testing.T) {
	slots := testSlots(t, 10)

	days := imageDays(slots, "2025-06-12")
	require.Len(t, days, MaxImageDays)
	assert.Equal(t, "2025-06-12", days[0])
	assert.Equal(t, "2025-06-18", days[MaxImageDays-1])

	assert.Empty(t, imageDays(slots, "2025-07-01"))
}

func TestSlotHourRange(t *testing.T) {
	slots := testSlots(t, 1)

	hours := slotHourRange(slots, []string{"2025-06-10"}, 30)
	assert.Equal(t, 9, hours.start)
	assert.Equal(t, 11, hours.end)
	assert.Equal(t, 2, hours.total)

	empty := slotHourRange(scheduling.Slots{}, nil, 30)
	assert.Equal(t, scheduling.DefaultStartTime.Hour, empty.start)
	assert.Equal(t, scheduling.DefaultEndTime.Hour, empty.end)
}
