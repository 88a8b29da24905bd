package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/session"
)

type fakeLister struct {
	mu      sync.Mutex
	results map[int64][]*model.InterestRequest
	err     error
}

func (f *fakeLister) List(ctx context.Context, _ model.Role) ([]*model.InterestRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	telegramID, _ := session.TelegramIDFrom(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results[telegramID], nil
}

type fakeSessions struct {
	sessions []*model.Session
	cleared  []int64
}

func (f *fakeSessions) All() []*model.Session { return f.sessions }

func (f *fakeSessions) Clear(_ context.Context, telegramID int64) error {
	f.cleared = append(f.cleared, telegramID)
	return nil
}

type memorySnapshots struct {
	data map[int64]map[model.ID]*model.InterestSnapshot
}

func (m *memorySnapshots) ListByUser(_ context.Context, telegramID int64) (map[model.ID]*model.InterestSnapshot, error) {
	out := make(map[model.ID]*model.InterestSnapshot)
	for id, s := range m.data[telegramID] {
		out[id] = s
	}
	return out, nil
}

func (m *memorySnapshots) Replace(_ context.Context, telegramID int64, snapshots []*model.InterestSnapshot) error {
	set := make(map[model.ID]*model.InterestSnapshot, len(snapshots))
	for _, s := range snapshots {
		set[s.InterestID] = s
	}
	m.data[telegramID] = set
	return nil
}

type recordingNotifier struct {
	changes []Change
	expired []int64
}

func (n *recordingNotifier) NotifyChange(_ context.Context, _ int64, change Change) error {
	n.changes = append(n.changes, change)
	return nil
}

func (n *recordingNotifier) NotifySessionExpired(_ context.Context, telegramID int64) error {
	n.expired = append(n.expired, telegramID)
	return nil
}

func proposed(id model.ID) *model.InterestRequest {
	return &model.InterestRequest{
		ID:                    id,
		Status:                model.InterestStatusInContact,
		AvailabilityStartDate: "2025-06-10",
		AvailabilityEndDate:   "2025-06-10",
		AvailabilityStartTime: "09:00",
		AvailabilityEndTime:   "10:00",
		SlotDurationMinutes:   30,
	}
}

func TestDetectChanges(t *testing.T) {
	pending := &model.InterestRequest{ID: "1", Status: model.InterestStatusPending}
	previous := map[model.ID]*model.InterestSnapshot{
		"1": model.SnapshotOf(1, pending),
	}

	t.Run("student sees proposal", func(t *testing.T) {
		changes := DetectChanges(model.RoleStudent, previous, []*model.InterestRequest{proposed("1")})
		require.Len(t, changes, 1)
		assert.Equal(t, ChangeProposal, changes[0].Kind)
	})

	t.Run("owner sees new request", func(t *testing.T) {
		changes := DetectChanges(model.RoleOwner, previous, []*model.InterestRequest{
			pending,
			{ID: "2", Status: model.InterestStatusPending},
		})
		require.Len(t, changes, 1)
		assert.Equal(t, ChangeNewRequest, changes[0].Kind)
		assert.Equal(t, model.ID("2"), changes[0].Request.ID)
	})

	t.Run("student does not get new request notice", func(t *testing.T) {
		changes := DetectChanges(model.RoleStudent, previous, []*model.InterestRequest{
			pending,
			{ID: "2", Status: model.InterestStatusPending},
		})
		assert.Empty(t, changes)
	})

	t.Run("owner sees confirmation", func(t *testing.T) {
		confirmed := proposed("1")
		confirmed.Status = model.InterestStatusAccepted
		confirmed.AppointmentConfirmedByStudent = true

		prev := map[model.ID]*model.InterestSnapshot{"1": model.SnapshotOf(1, proposed("1"))}
		changes := DetectChanges(model.RoleOwner, prev, []*model.InterestRequest{confirmed})
		require.Len(t, changes, 1)
		assert.Equal(t, ChangeConfirmed, changes[0].Kind)
	})

	t.Run("status change", func(t *testing.T) {
		rejected := &model.InterestRequest{ID: "1", Status: model.InterestStatusRejected}
		changes := DetectChanges(model.RoleStudent, previous, []*model.InterestRequest{rejected})
		require.Len(t, changes, 1)
		assert.Equal(t, ChangeStatus, changes[0].Kind)
		assert.Equal(t, model.InterestStatusPending, changes[0].Previous.Status)
	})

	t.Run("no change", func(t *testing.T) {
		assert.Empty(t, DetectChanges(model.RoleOwner, previous, []*model.InterestRequest{pending}))
	})
}

func TestWatchService_PollBaselineThenNotify(t *testing.T) {
	lister := &fakeLister{results: map[int64][]*model.InterestRequest{
		10: {{ID: "1", Status: model.InterestStatusPending}},
	}}
	sessions := &fakeSessions{sessions: []*model.Session{{TelegramID: 10, Role: model.RoleStudent}}}
	snapshots := &memorySnapshots{data: make(map[int64]map[model.ID]*model.InterestSnapshot)}
	notifier := &recordingNotifier{}

	svc := NewWatchService(lister, sessions, snapshots, notifier, zap.NewNop())

	svc.Poll(context.Background())
	assert.Empty(t, notifier.changes)
	assert.Len(t, snapshots.data[10], 1)

	lister.results[10] = []*model.InterestRequest{proposed("1")}
	svc.Poll(context.Background())
	require.Len(t, notifier.changes, 1)
	assert.Equal(t, ChangeProposal, notifier.changes[0].Kind)

	svc.Poll(context.Background())
	assert.Len(t, notifier.changes, 1)
}

func TestWatchService_ExpiredSession(t *testing.T) {
	lister := &fakeLister{err: &api.Error{Status: 401, Message: "expired"}}
	sessions := &fakeSessions{sessions: []*model.Session{{TelegramID: 10, Role: model.RoleOwner}}}
	snapshots := &memorySnapshots{data: make(map[int64]map[model.ID]*model.InterestSnapshot)}
	notifier := &recordingNotifier{}

	svc := NewWatchService(lister, sessions, snapshots, notifier, zap.NewNop())
	svc.Poll(context.Background())

	assert.Equal(t, []int64{10}, sessions.cleared)
	assert.Equal(t, []int64{10}, notifier.expired)
	assert.Empty(t, notifier.changes)
}
