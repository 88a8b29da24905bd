package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/inflight"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRequest() *model.InterestRequest {
	return &model.InterestRequest{ID: "7", Status: model.InterestStatusPending}
}

func proposedRequest() *model.InterestRequest {
	return &model.InterestRequest{
		ID:                    "7",
		Status:                model.InterestStatusInContact,
		AvailabilityStartDate: "2024-06-10",
		AvailabilityEndDate:   "2024-06-10",
		AvailabilityStartTime: "09:00",
		AvailabilityEndTime:   "10:00",
		SlotDurationMinutes:   30,
	}
}

func validProposal(t *testing.T) Proposal {
	return Proposal{
		Window: Window{
			StartDate:       day(t, "2024-06-10"),
			EndDate:         day(t, "2024-06-10"),
			StartTime:       tod(t, "09:00"),
			EndTime:         tod(t, "10:00"),
			DurationMinutes: 30,
		},
		Message: "Los espero",
	}
}

func fixedNow() time.Time {
	return at(2024, 6, 9, 18, 0)
}

func TestView_ProposeReplacesStateWithServerResponse(t *testing.T) {
	v := NewView(pendingRequest(), testLoc, WithClock(fixedNow))
	require.Equal(t, PhaseNoProposal, v.Phase())

	var sentID model.ID
	resp, err := v.Propose(context.Background(), validProposal(t), func(ctx context.Context, id model.ID, p Proposal) (*model.InterestRequest, error) {
		sentID = id
		assert.True(t, v.Submitting(ActionPropose))
		server := proposedRequest()
		server.Message = p.Message
		return server, nil
	})
	require.NoError(t, err)

	assert.Equal(t, model.ID("7"), sentID)
	assert.Equal(t, PhaseProposed, v.Phase())
	assert.Equal(t, model.InterestStatusInContact, resp.Status)
	assert.Equal(t, "Los espero", v.Request().Message)
	assert.False(t, v.Submitting(ActionPropose))
}

func TestView_ProposeValidationFailsWithoutCallingBackend(t *testing.T) {
	v := NewView(pendingRequest(), testLoc)

	bad := validProposal(t)
	bad.EndTime = tod(t, "08:00")

	called := false
	_, err := v.Propose(context.Background(), bad, func(context.Context, model.ID, Proposal) (*model.InterestRequest, error) {
		called = true
		return nil, nil
	})

	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.False(t, called)
	assert.Equal(t, PhaseNoProposal, v.Phase())
}

func TestProposal_Validate(t *testing.T) {
	base := validProposal(t)

	noDuration := base
	noDuration.DurationMinutes = 0
	assert.ErrorIs(t, noDuration.Validate(), ErrInvalidDuration)

	inverted := base
	inverted.StartDate = day(t, "2024-06-12")
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidDateRange)

	noDate := base
	noDate.StartDate = time.Time{}
	assert.ErrorIs(t, noDate.Validate(), ErrInvalidDate)

	assert.NoError(t, base.Validate())
}

func TestView_FailedSubmitLeavesStateUnchanged(t *testing.T) {
	v := NewView(pendingRequest(), testLoc)
	backendErr := errors.New("backend down")

	_, err := v.Propose(context.Background(), validProposal(t), func(context.Context, model.ID, Proposal) (*model.InterestRequest, error) {
		return nil, backendErr
	})

	assert.ErrorIs(t, err, backendErr)
	assert.Equal(t, PhaseNoProposal, v.Phase())
	assert.False(t, v.Submitting(ActionPropose))

	// после ошибки можно повторить
	_, err = v.Propose(context.Background(), validProposal(t), func(context.Context, model.ID, Proposal) (*model.InterestRequest, error) {
		return proposedRequest(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, PhaseProposed, v.Phase())
}

func TestView_ProposeOnlyFromNoProposal(t *testing.T) {
	v := NewView(proposedRequest(), testLoc)

	_, err := v.Propose(context.Background(), validProposal(t), func(context.Context, model.ID, Proposal) (*model.InterestRequest, error) {
		t.Fatal("must not submit")
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestView_TerminalStatusBlocksTransitions(t *testing.T) {
	req := pendingRequest()
	req.Status = model.InterestStatusRejected
	v := NewView(req, testLoc)

	_, err := v.Propose(context.Background(), validProposal(t), func(context.Context, model.ID, Proposal) (*model.InterestRequest, error) {
		return proposedRequest(), nil
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestView_ConfirmOnlyGeneratedSlots(t *testing.T) {
	v := NewView(proposedRequest(), testLoc, WithClock(fixedNow))

	_, err := v.Confirm(context.Background(), at(2024, 6, 10, 9, 15), func(context.Context, model.ID, time.Time) (*model.InterestRequest, error) {
		t.Fatal("must not submit")
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrSlotNotOffered)

	var sent time.Time
	resp, err := v.Confirm(context.Background(), at(2024, 6, 10, 9, 30), func(_ context.Context, _ model.ID, slot time.Time) (*model.InterestRequest, error) {
		sent = slot
		server := proposedRequest()
		server.AppointmentConfirmedByStudent = true
		server.AppointmentDateTime = "2024-06-10T09:30:00"
		return server, nil
	})
	require.NoError(t, err)

	assert.True(t, sent.Equal(at(2024, 6, 10, 9, 30)))
	assert.True(t, resp.AppointmentConfirmedByStudent)
	assert.Equal(t, PhaseConfirmed, v.Phase())

	// подтверждённая заявка больше не меняется
	_, err = v.Confirm(context.Background(), at(2024, 6, 10, 9, 0), func(context.Context, model.ID, time.Time) (*model.InterestRequest, error) {
		t.Fatal("must not submit")
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestView_ConfirmRejectsPastSlot(t *testing.T) {
	now := func() time.Time { return at(2024, 6, 11, 8, 0) }
	v := NewView(proposedRequest(), testLoc, WithClock(now))

	called := false
	_, err := v.Confirm(context.Background(), at(2024, 6, 10, 9, 0), func(context.Context, model.ID, time.Time) (*model.InterestRequest, error) {
		called = true
		return nil, nil
	})

	assert.ErrorIs(t, err, ErrSlotInPast)
	assert.False(t, called)
	assert.Equal(t, PhaseProposed, v.Phase())
}

func TestView_ConfirmWithoutProposal(t *testing.T) {
	v := NewView(pendingRequest(), testLoc, WithClock(fixedNow))

	_, err := v.Confirm(context.Background(), at(2024, 6, 10, 9, 0), func(context.Context, model.ID, time.Time) (*model.InterestRequest, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestView_RejectsResubmitWhileInFlight(t *testing.T) {
	v := NewView(proposedRequest(), testLoc, WithClock(fixedNow))

	started := make(chan struct{})
	unblock := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := v.Confirm(context.Background(), at(2024, 6, 10, 9, 0), func(context.Context, model.ID, time.Time) (*model.InterestRequest, error) {
			close(started)
			<-unblock
			return nil, errors.New("conflict")
		})
		done <- err
	}()

	<-started
	_, err := v.Confirm(context.Background(), at(2024, 6, 10, 9, 30), func(context.Context, model.ID, time.Time) (*model.InterestRequest, error) {
		t.Fatal("must not submit while in flight")
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrInFlight)

	close(unblock)
	require.Error(t, <-done)
	assert.False(t, v.Submitting(ActionConfirm))
}

func TestView_SharedGuardBlocksSecondView(t *testing.T) {
	guard := inflight.NewMemoryGuard()
	first := NewView(proposedRequest(), testLoc, WithClock(fixedNow), WithGuard(guard))
	second := NewView(proposedRequest(), testLoc, WithClock(fixedNow), WithGuard(guard))

	release, err := guard.Acquire(context.Background(), "interest:7:confirm")
	require.NoError(t, err)

	_, err = first.Confirm(context.Background(), at(2024, 6, 10, 9, 0), func(context.Context, model.ID, time.Time) (*model.InterestRequest, error) {
		t.Fatal("must not submit")
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrInFlight)
	assert.False(t, first.Submitting(ActionConfirm))

	release()

	_, err = second.Confirm(context.Background(), at(2024, 6, 10, 9, 0), func(context.Context, model.ID, time.Time) (*model.InterestRequest, error) {
		confirmed := proposedRequest()
		confirmed.AppointmentConfirmedByStudent = true
		return confirmed, nil
	})
	require.NoError(t, err)
}

func TestView_ResultAfterCloseIsDiscarded(t *testing.T) {
	v := NewView(pendingRequest(), testLoc)

	_, err := v.Propose(context.Background(), validProposal(t), func(context.Context, model.ID, Proposal) (*model.InterestRequest, error) {
		v.Close()
		return proposedRequest(), nil
	})

	assert.ErrorIs(t, err, ErrViewClosed)
	assert.Equal(t, PhaseNoProposal, v.Phase())
	assert.ErrorIs(t, v.Replace(proposedRequest()), ErrViewClosed)
}

func TestView_EmptyResponse(t *testing.T) {
	v := NewView(pendingRequest(), testLoc)

	_, err := v.Propose(context.Background(), validProposal(t), func(context.Context, model.ID, Proposal) (*model.InterestRequest, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, PhaseNoProposal, v.Phase())
}

func TestView_DecodedEmptyBodyLeavesStateUnchanged(t *testing.T) {
	v := NewView(proposedRequest(), testLoc, WithClock(fixedNow))
	slot := at(2024, 6, 10, 9, 30)

	_, err := v.Confirm(context.Background(), slot, func(context.Context, model.ID, time.Time) (*model.InterestRequest, error) {
		return &model.InterestRequest{}, nil
	})
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, model.ID("7"), v.ID())
	assert.Equal(t, PhaseProposed, v.Phase())
	assert.False(t, v.Submitting(ActionConfirm))
	assert.ErrorIs(t, v.Replace(&model.InterestRequest{}), ErrEmptyResponse)
}

func TestView_RequestReturnsCopy(t *testing.T) {
	v := NewView(pendingRequest(), testLoc)

	req := v.Request()
	req.Status = model.InterestStatusClosed

	assert.Equal(t, model.InterestStatusPending, v.Request().Status)
}

func TestBoard_OpenClosesPreviousView(t *testing.T) {
	b := NewBoard(testLoc)

	first := b.Open(100, pendingRequest())
	other := proposedRequest()
	other.ID = "8"
	second := b.Open(100, other)

	assert.True(t, first.Closed())
	assert.False(t, second.Closed())

	_, ok := b.Get(100, "7")
	assert.False(t, ok)

	got, ok := b.Get(100, "8")
	require.True(t, ok)
	assert.Same(t, second, got)

	// у другого пользователя своя карточка
	b.Open(200, pendingRequest())
	_, ok = b.Get(200, "7")
	assert.True(t, ok)

	b.Close(100)
	assert.True(t, second.Closed())
	_, ok = b.Get(100, "8")
	assert.False(t, ok)
}

func TestPhaseOf(t *testing.T) {
	assert.Equal(t, PhaseNoProposal, PhaseOf(pendingRequest()))
	assert.Equal(t, PhaseProposed, PhaseOf(proposedRequest()))

	confirmed := proposedRequest()
	confirmed.AppointmentConfirmedByStudent = true
	assert.Equal(t, PhaseConfirmed, PhaseOf(confirmed))
}
