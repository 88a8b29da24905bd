package controller

import (
	"testing"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatChange(t *testing.T) {
	req := &model.InterestRequest{
		ID:          "15",
		PostID:      "3",
		PostTitle:   "Cuarto <centro>",
		StudentName: "Ana",
		Status:      model.InterestStatusAccepted,
	}

	tests := []struct {
		name   string
		change service.Change
		want   string
	}{
		{"new request", service.Change{Kind: service.ChangeNewRequest, Request: req}, "Nueva solicitud"},
		{"proposal", service.Change{Kind: service.ChangeProposal, Request: req}, "propuso horarios"},
		{"confirmed", service.Change{Kind: service.ChangeConfirmed, Request: req}, "Visita confirmada"},
		{"status", service.Change{
			Kind:     service.ChangeStatus,
			Request:  req,
			Previous: &model.InterestSnapshot{Status: model.InterestStatusPending},
		}, "Cambio de estado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, kb := FormatChange(tt.change)
			assert.Contains(t, text, tt.want)
			assert.Contains(t, text, "Cuarto &lt;centro&gt;")

			require.NotNil(t, kb)
			require.Len(t, kb.InlineKeyboard, 1)
			assert.Equal(t, common.InterestOpen+"15", kb.InlineKeyboard[0][0].CallbackData)
		})
	}
}

func TestFormatChange_UntitledPost(t *testing.T) {
	text, _ := FormatChange(service.Change{
		Kind:    service.ChangeProposal,
		Request: &model.InterestRequest{ID: "1", PostID: "9"},
	})
	assert.Contains(t, text, "Anuncio #9")
}
