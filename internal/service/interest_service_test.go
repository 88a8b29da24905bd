package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
)

func TestInterestService_ListDispatchesOnRole(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/interests/received":
			_, _ = io.WriteString(w, `[{"id":1,"status":"PENDING"}]`)
		case "/interests/mine":
			_, _ = io.WriteString(w, `[{"id":2,"status":"IN_CONTACT"},{"id":3,"status":"ACCEPTED"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	svc := NewInterestService(env.client, scheduling.NewBoard(time.UTC), zap.NewNop())

	ownerCtx := env.login(t, 1, "ROLE_PROPIETARIO")
	received, err := svc.List(ownerCtx, model.RoleOwner)
	require.NoError(t, err)
	assert.Len(t, received, 1)

	studentCtx := env.login(t, 2, "ROLE_ESTUDIANTE")
	mine, err := svc.List(studentCtx, model.RoleStudent)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = svc.List(studentCtx, model.Role("admin"))
	assert.ErrorIs(t, err, model.ErrUnknownRole)
}

func TestInterestService_ProposeThroughOpenCard(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/interests/7":
			_, _ = io.WriteString(w, `{"id":7,"status":"PENDING","postTitle":"Cuarto"}`)
		case r.Method == http.MethodPatch && r.URL.Path == "/interests/7/availability":
			var body api.AvailabilityRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id":                    7,
				"status":                "IN_CONTACT",
				"availabilityStartDate": body.AvailabilityStartDate,
				"availabilityEndDate":   body.AvailabilityEndDate,
				"availabilityStartTime": body.AvailabilityStartTime,
				"availabilityEndTime":   body.AvailabilityEndTime,
				"slotDurationMinutes":   body.SlotDurationMinutes,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	svc := NewInterestService(env.client, scheduling.NewBoard(time.UTC), zap.NewNop())
	ctx := env.login(t, 1, "ROLE_PROPIETARIO")

	_, err := svc.Propose(ctx, 1, "7", scheduling.Proposal{})
	assert.ErrorIs(t, err, ErrViewNotOpen)

	v, err := svc.Open(ctx, 1, "7")
	require.NoError(t, err)
	assert.Equal(t, scheduling.PhaseNoProposal, v.Phase())

	day := time.Now().UTC().AddDate(0, 0, 1)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	p := scheduling.Proposal{Window: scheduling.Window{
		StartDate:       start,
		EndDate:         start,
		StartTime:       scheduling.TimeOfDay{Hour: 9},
		EndTime:         scheduling.TimeOfDay{Hour: 10},
		DurationMinutes: 30,
	}}

	req, err := svc.Propose(ctx, 1, "7", p)
	require.NoError(t, err)
	assert.Equal(t, model.InterestStatusInContact, req.Status)
	assert.Equal(t, scheduling.PhaseProposed, v.Phase())

	slots, err := v.Slots()
	require.NoError(t, err)
	assert.Equal(t, 2, slots.Count())
}

func TestInterestService_ConfirmOnlyOfferedSlot(t *testing.T) {
	day := time.Now().UTC().AddDate(0, 0, 2).Format(scheduling.DateLayout)
	var confirms int32

	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id":                    9,
				"status":                "IN_CONTACT",
				"availabilityStartDate": day,
				"availabilityEndDate":   day,
				"availabilityStartTime": "09:00",
				"availabilityEndTime":   "10:00",
				"slotDurationMinutes":   30,
			})
		case r.Method == http.MethodPatch:
			atomic.AddInt32(&confirms, 1)
			_, _ = io.WriteString(w, `{"id":9,"status":"ACCEPTED","appointmentConfirmedByStudent":true}`)
		}
	})
	svc := NewInterestService(env.client, scheduling.NewBoard(time.UTC), zap.NewNop())
	ctx := env.login(t, 5, "ROLE_ESTUDIANTE")

	v, err := svc.Open(ctx, 5, "9")
	require.NoError(t, err)

	slots, err := v.Slots()
	require.NoError(t, err)
	first := slots[day][0]

	_, err = svc.Confirm(ctx, 5, "9", first.Add(5*time.Minute))
	assert.ErrorIs(t, err, scheduling.ErrSlotNotOffered)
	assert.Zero(t, atomic.LoadInt32(&confirms))

	req, err := svc.Confirm(ctx, 5, "9", first)
	require.NoError(t, err)
	assert.True(t, req.AppointmentConfirmedByStudent)
	assert.Equal(t, scheduling.PhaseConfirmed, v.Phase())
	assert.Equal(t, int32(1), atomic.LoadInt32(&confirms))
}

func TestInterestService_ConfirmWithEmptyBodyReloads(t *testing.T) {
	day := time.Now().UTC().AddDate(0, 0, 2).Format(scheduling.DateLayout)
	var confirmed int32

	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			body := map[string]interface{}{
				"id":                    9,
				"status":                "IN_CONTACT",
				"availabilityStartDate": day,
				"availabilityEndDate":   day,
				"availabilityStartTime": "09:00",
				"availabilityEndTime":   "10:00",
				"slotDurationMinutes":   30,
			}
			if atomic.LoadInt32(&confirmed) == 1 {
				body["status"] = "ACCEPTED"
				body["appointmentConfirmedByStudent"] = true
				body["appointmentDateTime"] = day + "T09:00:00"
			}
			_ = json.NewEncoder(w).Encode(body)
		case http.MethodPatch:
			atomic.StoreInt32(&confirmed, 1)
			w.WriteHeader(http.StatusOK)
		}
	})
	svc := NewInterestService(env.client, scheduling.NewBoard(time.UTC), zap.NewNop())
	ctx := env.login(t, 5, "ROLE_ESTUDIANTE")

	v, err := svc.Open(ctx, 5, "9")
	require.NoError(t, err)
	slots, err := v.Slots()
	require.NoError(t, err)

	req, err := svc.Confirm(ctx, 5, "9", slots[day][0])
	require.NoError(t, err)
	assert.Equal(t, model.ID("9"), req.ID)
	assert.True(t, req.AppointmentConfirmedByStudent)

	// карточка осталась открытой и показывает подтверждённый визит
	v, err = svc.View(5, "9")
	require.NoError(t, err)
	assert.Equal(t, scheduling.PhaseConfirmed, v.Phase())
}

func TestInterestService_ExpressRequiresStudent(t *testing.T) {
	svc := NewInterestService(nil, scheduling.NewBoard(time.UTC), zap.NewNop())

	_, err := svc.Express(context.Background(), model.RoleOwner, "1")
	assert.ErrorIs(t, err, ErrStudentOnly)

	_, err = svc.Accepted(context.Background(), model.RoleStudent)
	assert.ErrorIs(t, err, ErrOwnerOnly)
}

func TestInterestService_SessionRequired(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without session")
	})
	svc := NewInterestService(env.client, scheduling.NewBoard(time.UTC), zap.NewNop())

	_, err := svc.List(context.Background(), model.RoleOwner)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}
