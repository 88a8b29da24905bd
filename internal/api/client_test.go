package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
)

type staticAuth struct {
	token string
}

func (a staticAuth) Bearer(context.Context) (string, bool) {
	return a.token, a.token != ""
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		BaseURL:   srv.URL + "/api/",
		Timeout:   2 * time.Second,
		Retries:   2,
		RetryBase: time.Millisecond,
	}, staticAuth{token: token}, zap.NewNop())
}

func TestClient_SendsBearerAndUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/interests/42", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = io.WriteString(w, `{"data":{"id":42,"status":"IN_CONTACT","postTitle":"Cuarto"}}`)
	}, "tok")

	req, err := client.GetInterest(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, model.ID("42"), req.ID)
	assert.Equal(t, model.InterestStatusInContact, req.Status)
	assert.Equal(t, "Cuarto", req.PostTitle)
}

func TestClient_PlainBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"status":"PENDING"},{"id":2,"status":"ACCEPTED"}]`)
	}, "tok")

	list, err := client.ReceivedInterests(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, model.InterestStatusAccepted, list[1].Status)
}

func TestClient_MissingTokenSkipsNetwork(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}, "")

	_, err := client.MyInterests(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
		msg    string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"Token expirado"}`, ErrUnauthorized, "Token expirado"},
		{"forbidden", http.StatusForbidden, `{"error":"Sin permiso"}`, ErrForbidden, "Sin permiso"},
		{"not found", http.StatusNotFound, ``, ErrNotFound, "Not Found"},
		{"plain text", http.StatusConflict, `ya existe`, nil, "ya existe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, "tok")

			err := client.DeletePost(context.Background(), "7")
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)

			msg, ok := Message(err)
			assert.True(t, ok)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestClient_RetriesGetOnServerError(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}, "tok")

	_, err := client.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_DoesNotRetryMutations(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, "tok")

	_, err := client.CreateInterest(context.Background(), "5")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}, "tok")

	_, err := client.GetPost(context.Background(), "5")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_ConfirmAppointmentSendsUTCSlot(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)
	slot := time.Date(2025, 6, 10, 9, 30, 0, 0, loc)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/interests/9/appointment/confirm", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2025-06-10T15:30:00.000Z", body["chosenSlot"])

		_, _ = io.WriteString(w, `{"id":9,"status":"ACCEPTED","appointmentConfirmedByStudent":true}`)
	}, "tok")

	req, err := client.ConfirmAppointment(context.Background(), "9", slot)
	require.NoError(t, err)
	assert.True(t, req.AppointmentConfirmedByStudent)
}

func TestClient_ProposeAvailabilityBody(t *testing.T) {
	loc := time.UTC
	start, err := scheduling.ParseDate("2025-06-10", loc)
	require.NoError(t, err)
	end, err := scheduling.ParseDate("2025-06-12", loc)
	require.NoError(t, err)

	p := scheduling.Proposal{
		Window: scheduling.Window{
			StartDate:       start,
			EndDate:         end,
			StartTime:       scheduling.TimeOfDay{Hour: 9},
			EndTime:         scheduling.TimeOfDay{Hour: 11, Minute: 30},
			DurationMinutes: 45,
		},
		Message: "Hola",
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/interests/3/availability", r.URL.Path)

		var body AvailabilityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, NewAvailabilityRequest(p), body)
		assert.Equal(t, "09:00", body.AvailabilityStartTime)
		assert.Equal(t, "2025-06-12", body.AvailabilityEndDate)

		_, _ = io.WriteString(w, `{"id":3,"status":"IN_CONTACT"}`)
	}, "tok")

	req, err := client.ProposeAvailability(context.Background(), "3", p)
	require.NoError(t, err)
	assert.Equal(t, model.InterestStatusInContact, req.Status)
}

func TestClient_LoginIsPublic(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"token":"jwt"}`)
	}, "")

	token, err := client.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", token)
}

func TestClient_LoginWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}, "")

	_, err := client.Login(context.Background(), "a@b.c", "secret")
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestClient_CreatePostMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		meta, header, err := r.FormFile("postData")
		require.NoError(t, err)
		defer meta.Close()
		assert.Equal(t, "application/json", header.Header.Get("Content-Type"))

		var in PostInput
		require.NoError(t, json.NewDecoder(meta).Decode(&in))
		assert.Equal(t, "Cuarto amplio", in.Title)

		files := r.MultipartForm.File["images"]
		require.Len(t, files, 1)
		assert.Equal(t, "foto.jpg", files[0].Filename)

		_, _ = io.WriteString(w, `{"postId":11,"title":"Cuarto amplio","status":"DISPONIBLE"}`)
	}, "tok")

	post, err := client.CreatePost(context.Background(), PostInput{
		Title:  "Cuarto amplio",
		Price:  150,
		Status: model.PostStatusAvailable,
		RoomID: "4",
	}, []Image{{Name: "foto.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}}})
	require.NoError(t, err)
	assert.Equal(t, model.ID("11"), post.Key())
}
