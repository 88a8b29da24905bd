package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid(t *testing.T) {
	kb := NewBuilder().Grid(2,
		Button("a", "a"), Button("b", "b"), Button("c", "c"),
	).Build()

	assert.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[1], 1)
}

func TestPage(t *testing.T) {
	start, end, current, pages := Page(13, 5)
	assert.Equal(t, 12, start)
	assert.Equal(t, 13, end)
	assert.Equal(t, 2, current)
	assert.Equal(t, 3, pages)

	start, end, current, pages = Page(0, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
	assert.Equal(t, 0, current)
	assert.Equal(t, 1, pages)
}

func TestPaginationButtons(t *testing.T) {
	assert.Nil(t, PaginationButtons("p:", 0, 1))

	buttons := PaginationButtons("p:", 1, 3)
	assert.Len(t, buttons, 3)
	assert.Equal(t, "p:0", buttons[0].CallbackData)
	assert.Equal(t, "p:2", buttons[2].CallbackData)
}
