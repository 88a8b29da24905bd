package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDraft struct {
	Title string
	Price float64
}

func TestManager_Dialog(t *testing.T) {
	sm := NewManager()
	assert.Equal(t, StateNone, sm.GetState(1))

	sm.Start(1, StateLoginEmail)
	sm.SetData(1, KeyEmail, "ana@uni.edu")
	sm.SetState(1, StateLoginPassword)

	assert.Equal(t, StateLoginPassword, sm.GetState(1))
	assert.Equal(t, "ana@uni.edu", sm.GetString(1, KeyEmail))

	sm.Start(1, StateRegisterFirstName)
	assert.Empty(t, sm.GetString(1, KeyEmail))

	sm.ClearState(1)
	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok := sm.GetData(1, KeyEmail)
	assert.False(t, ok)
}

func TestManager_UsersAreIsolated(t *testing.T) {
	sm := NewManager()
	sm.Start(1, StateProposal)
	sm.SetData(2, KeyInterestID, "9")

	assert.Equal(t, StateNone, sm.GetState(2))
	assert.Empty(t, sm.GetString(1, KeyInterestID))
	assert.Equal(t, "9", sm.GetString(2, KeyInterestID))
}

func TestDraft_ReturnsCopy(t *testing.T) {
	sm := NewManager()
	stored := &testDraft{Title: "Cuarto"}
	sm.Start(1, StateNewPostTitle)
	sm.SetData(1, KeyPost, stored)

	draft, ok := Draft[testDraft](sm, 1, KeyPost)
	require.True(t, ok)
	draft.Price = 150

	assert.Zero(t, stored.Price)

	sm.SetData(1, KeyPost, draft)
	saved, ok := Draft[testDraft](sm, 1, KeyPost)
	require.True(t, ok)
	assert.Equal(t, 150.0, saved.Price)
	assert.Equal(t, "Cuarto", saved.Title)
}

func TestDraft_MissingOrWrongType(t *testing.T) {
	sm := NewManager()
	_, ok := Draft[testDraft](sm, 1, KeyPost)
	assert.False(t, ok)

	sm.SetData(1, KeyPost, "not a draft")
	_, ok = Draft[testDraft](sm, 1, KeyPost)
	assert.False(t, ok)

	sm.SetData(1, KeyPost, (*testDraft)(nil))
	_, ok = Draft[testDraft](sm, 1, KeyPost)
	assert.False(t, ok)
}

func TestDraft_ConcurrentEditsDoNotShareValue(t *testing.T) {
	sm := NewManager()
	sm.Start(1, StateNewPostPrice)
	sm.SetData(1, KeyPost, &testDraft{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			draft, ok := Draft[testDraft](sm, 1, KeyPost)
			if !ok {
				return
			}
			draft.Price = float64(i)
			draft.Title = "edit"
			sm.SetData(1, KeyPost, draft)
		}(i)
	}
	wg.Wait()

	saved, ok := Draft[testDraft](sm, 1, KeyPost)
	require.True(t, ok)
	assert.Equal(t, "edit", saved.Title)
}
