package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/model"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12.5", 12.5, false},
		{"12,5", 12.5, false},
		{" 1 200 ", 1200, false},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList("-"))
	assert.Nil(t, parseList("  "))
	assert.Equal(t, []string{"WiFi", "Lavadora"}, parseList("WiFi, Lavadora,"))
}

func TestNormalizeCardNumber(t *testing.T) {
	got, ok := normalizeCardNumber("4242 4242-4242 4242")
	assert.True(t, ok)
	assert.Equal(t, "4242424242424242", got)

	_, ok = normalizeCardNumber("4242")
	assert.False(t, ok)

	_, ok = normalizeCardNumber("4242 4242 4242 424x")
	assert.False(t, ok)

	_, ok = normalizeCardNumber("12345678901234567890")
	assert.False(t, ok)
}

func TestCardPatterns(t *testing.T) {
	assert.True(t, expiryPattern.MatchString("09/27"))
	assert.False(t, expiryPattern.MatchString("13/27"))
	assert.False(t, expiryPattern.MatchString("9/27"))

	assert.True(t, cvcPattern.MatchString("123"))
	assert.True(t, cvcPattern.MatchString("1234"))
	assert.False(t, cvcPattern.MatchString("12a"))
}

func TestRoomFieldEdit(t *testing.T) {
	room := &model.Room{Description: "Cuarto iluminado", Address: "Colonia Escalón", SquareFootage: 18}

	edit, err := roomFieldEdit(common.RoomFieldArea, " 20,5 ")
	require.NoError(t, err)
	edit(room)
	assert.Equal(t, 20.5, room.SquareFootage)
	assert.Equal(t, "Cuarto iluminado", room.Description)

	edit, err = roomFieldEdit(common.RoomFieldAmenities, "WiFi, Agua")
	require.NoError(t, err)
	edit(room)
	assert.Equal(t, []string{"WiFi", "Agua"}, room.Amenities)

	_, err = roomFieldEdit(common.RoomFieldDescription, "corta")
	assert.ErrorIs(t, err, errInvalidValue)
	_, err = roomFieldEdit(common.RoomFieldArea, "-3")
	assert.ErrorIs(t, err, errInvalidValue)
	_, err = roomFieldEdit("color", "azul")
	assert.ErrorIs(t, err, common.ErrInvalidFormat)
}

func TestPostFieldEdit(t *testing.T) {
	in := &api.PostInput{Title: "Cuarto amplio", Price: 150, MinimumLeaseTerm: "3 meses"}

	edit, err := postFieldEdit(common.PostFieldPrice, "175")
	require.NoError(t, err)
	edit(in)
	assert.Equal(t, 175.0, in.Price)

	edit, err = postFieldEdit(common.PostFieldMinTerm, "-")
	require.NoError(t, err)
	edit(in)
	assert.Empty(t, in.MinimumLeaseTerm)

	edit, err = postFieldEdit(common.PostFieldMaxTerm, "1 año")
	require.NoError(t, err)
	edit(in)
	assert.Equal(t, "1 año", in.MaximumLeaseTerm)
	assert.Equal(t, "Cuarto amplio", in.Title)

	tests := []struct {
		field string
		text  string
	}{
		{common.PostFieldTitle, "Casa"},
		{common.PostFieldPrice, "0"},
		{common.PostFieldDeposit, "-1"},
		{common.PostFieldMaxTerm, strings.Repeat("x", LeaseTermMaxLen+1)},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := postFieldEdit(tt.field, tt.text)
			assert.ErrorIs(t, err, errInvalidValue)
		})
	}
}
