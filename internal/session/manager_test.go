package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryStore struct {
	mu       sync.Mutex
	sessions map[int64]*model.Session
	saveErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[int64]*model.Session)}
}

func (s *memoryStore) Save(_ context.Context, sess *model.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *sess
	s.sessions[sess.TelegramID] = &c
	return nil
}

func (s *memoryStore) Delete(_ context.Context, telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, telegramID)
	return nil
}

func (s *memoryStore) List(_ context.Context) ([]*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*model.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		c := *sess
		result = append(result, &c)
	}
	return result, nil
}

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestManager(store Store) *Manager {
	m := NewManager(store, zap.NewNop())
	m.now = func() time.Time { return testNow }
	return m
}

func TestParseClaims(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":   "ana@uni.edu",
		"roles": []string{"ROLE_PROPIETARIO"},
		"exp":   testNow.Add(time.Hour).Unix(),
	})

	claims, err := ParseClaims(token)
	require.NoError(t, err)

	assert.Equal(t, "ana@uni.edu", claims.Email)
	assert.Equal(t, model.RoleOwner, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, testNow.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestParseClaims_RoleVariants(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   model.Role
	}{
		{name: "rol string", claims: jwt.MapClaims{"sub": "a", "rol": "role_estudiante"}, want: model.RoleStudent},
		{name: "authorities", claims: jwt.MapClaims{"sub": "a", "roles": []map[string]string{{"authority": "ROLE_PROPIETARIO"}}}, want: model.RoleOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ParseClaims(signToken(t, tt.claims))
			require.NoError(t, err)
			assert.Equal(t, tt.want, claims.Role)
			assert.Nil(t, claims.ExpiresAt)
		})
	}
}

func TestParseClaims_Invalid(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseClaims(signToken(t, jwt.MapClaims{"sub": "a", "roles": []string{"ROLE_ADMIN"}}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_SetGetClear(t *testing.T) {
	store := newMemoryStore()
	m := newTestManager(store)
	ctx := context.Background()

	token := signToken(t, jwt.MapClaims{
		"sub":   "luis@uni.edu",
		"roles": []string{"ROLE_ESTUDIANTE"},
		"exp":   testNow.Add(time.Hour).Unix(),
	})

	s, err := m.Set(ctx, 42, token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, s.Role)
	assert.Contains(t, store.sessions, int64(42))

	got, ok := m.Get(42)
	require.True(t, ok)
	assert.Equal(t, token, got.Token)

	bearer, ok := m.Bearer(WithTelegramID(ctx, 42))
	require.True(t, ok)
	assert.Equal(t, token, bearer)

	_, ok = m.Bearer(ctx)
	assert.False(t, ok, "no identity in context")

	require.NoError(t, m.Clear(ctx, 42))
	_, ok = m.Get(42)
	assert.False(t, ok)
	assert.NotContains(t, store.sessions, int64(42))
}

func TestManager_SetRejectsExpiredToken(t *testing.T) {
	m := newTestManager(newMemoryStore())

	token := signToken(t, jwt.MapClaims{
		"sub":   "luis@uni.edu",
		"roles": []string{"ROLE_ESTUDIANTE"},
		"exp":   testNow.Add(-time.Minute).Unix(),
	})

	_, err := m.Set(context.Background(), 42, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, ok := m.Get(42)
	assert.False(t, ok)
}

func TestManager_SetKeepsStateOnStoreError(t *testing.T) {
	store := newMemoryStore()
	store.saveErr = errors.New("db down")
	m := newTestManager(store)

	token := signToken(t, jwt.MapClaims{"sub": "a", "roles": []string{"ROLE_ESTUDIANTE"}})

	_, err := m.Set(context.Background(), 1, token)
	require.Error(t, err)

	_, ok := m.Get(1)
	assert.False(t, ok)
}

func TestManager_InitRestoresAndDropsExpired(t *testing.T) {
	store := newMemoryStore()
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)
	store.sessions[1] = &model.Session{TelegramID: 1, Token: "a", Role: model.RoleOwner, ExpiresAt: &future}
	store.sessions[2] = &model.Session{TelegramID: 2, Token: "b", Role: model.RoleStudent, ExpiresAt: &past}
	store.sessions[3] = &model.Session{TelegramID: 3, Token: "c", Role: model.RoleStudent}

	m := newTestManager(store)
	require.NoError(t, m.Init(context.Background()))

	_, ok := m.Get(1)
	assert.True(t, ok)
	_, ok = m.Get(2)
	assert.False(t, ok)
	_, ok = m.Get(3)
	assert.True(t, ok)

	assert.Len(t, m.All(), 2)
	assert.NotContains(t, store.sessions, int64(2))
}
