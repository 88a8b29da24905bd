package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/session"
)

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*model.Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[int64]*model.Session)}
}

func (s *memorySessionStore) Save(_ context.Context, sess *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *sess
	s.sessions[sess.TelegramID] = &c
	return nil
}

func (s *memorySessionStore) Delete(_ context.Context, telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, telegramID)
	return nil
}

func (s *memorySessionStore) List(context.Context) ([]*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		c := *sess
		out = append(out, &c)
	}
	return out, nil
}

func tokenFor(t *testing.T, email, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   email,
		"roles": []string{role},
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

type testEnv struct {
	client   *api.Client
	sessions *session.Manager
	store    *memorySessionStore
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := newMemorySessionStore()
	sessions := session.NewManager(store, zap.NewNop())
	client := api.NewClient(api.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, sessions, zap.NewNop())

	return &testEnv{client: client, sessions: sessions, store: store}
}

// login открывает сессию и возвращает контекст с пользователем
func (e *testEnv) login(t *testing.T, telegramID int64, role string) context.Context {
	t.Helper()
	_, err := e.sessions.Set(context.Background(), telegramID, tokenFor(t, "user@uni.edu", role))
	require.NoError(t, err)
	return session.WithTelegramID(context.Background(), telegramID)
}
