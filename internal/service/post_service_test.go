package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/model"
)

func validPost() api.PostInput {
	return api.PostInput{
		Title:  "Cuarto amplio en Escalón",
		Price:  180,
		Status: model.PostStatusAvailable,
		RoomID: "4",
	}
}

func TestValidatePost(t *testing.T) {
	assert.NoError(t, ValidatePost(validPost(), nil))

	tests := []struct {
		name   string
		mutate func(*api.PostInput)
		images int
	}{
		{"short title", func(p *api.PostInput) { p.Title = "Casa" }, 0},
		{"zero price", func(p *api.PostInput) { p.Price = 0 }, 0},
		{"negative deposit", func(p *api.PostInput) { p.SecurityDeposit = -1 }, 0},
		{"no room", func(p *api.PostInput) { p.RoomID = "" }, 0},
		{"unknown status", func(p *api.PostInput) { p.Status = "VENDIDO" }, 0},
		{"too many images", func(*api.PostInput) {}, PostMaxImages + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validPost()
			tt.mutate(&in)
			images := make([]api.Image, tt.images)
			assert.ErrorIs(t, ValidatePost(in, images), ErrInvalidPost)
		})
	}
}

func TestPostService_ChangeStatusKeepsFields(t *testing.T) {
	var updated api.PostInput
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `{"postId":7,"title":"Cuarto amplio","price":150,"securityDeposit":50,"status":"DISPONIBLE","minimumLeaseTerm":"3 meses"}`)
		case http.MethodPut:
			require.NoError(t, r.ParseMultipartForm(1<<20))
			meta, _, err := r.FormFile("postData")
			require.NoError(t, err)
			defer meta.Close()
			require.NoError(t, json.NewDecoder(meta).Decode(&updated))
			_, _ = io.WriteString(w, `{"postId":7,"title":"Cuarto amplio","status":"ALQUILADO"}`)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})
	ctx := env.login(t, 1, "ROLE_PROPIETARIO")
	svc := NewPostService(env.client, zap.NewNop())

	post, err := svc.ChangeStatus(ctx, model.RoleOwner, "7", model.PostStatusRented)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusRented, post.Status)

	assert.Equal(t, model.PostStatusRented, updated.Status)
	assert.Equal(t, "Cuarto amplio", updated.Title)
	assert.Equal(t, 50.0, updated.SecurityDeposit)
	assert.Equal(t, "3 meses", updated.MinimumLeaseTerm)
}

func TestPostService_OwnerOnly(t *testing.T) {
	env := newTestEnv(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("backend must not be called")
	})
	svc := NewPostService(env.client, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Mine(ctx, model.RoleStudent)
	assert.ErrorIs(t, err, ErrOwnerOnly)

	_, err = svc.Create(ctx, model.RoleStudent, validPost(), nil)
	assert.ErrorIs(t, err, ErrOwnerOnly)

	_, err = svc.ChangeStatus(ctx, model.RoleStudent, "7", model.PostStatusPaused)
	assert.ErrorIs(t, err, ErrOwnerOnly)

	assert.ErrorIs(t, svc.Delete(ctx, model.RoleStudent, "7"), ErrOwnerOnly)
}

func TestPostService_EditKeepsStatusAndValidates(t *testing.T) {
	var updated api.PostInput
	var puts int32
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `{"postId":7,"title":"Cuarto amplio","price":150,"securityDeposit":50,"status":"PAUSADO","maximumLeaseTerm":"1 año"}`)
		case http.MethodPut:
			atomic.AddInt32(&puts, 1)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			meta, _, err := r.FormFile("postData")
			require.NoError(t, err)
			defer meta.Close()
			require.NoError(t, json.NewDecoder(meta).Decode(&updated))
			_, _ = io.WriteString(w, `{"postId":7,"title":"Cuarto amplio","price":175,"status":"PAUSADO"}`)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})
	ctx := env.login(t, 1, "ROLE_PROPIETARIO")
	svc := NewPostService(env.client, zap.NewNop())

	post, err := svc.Edit(ctx, model.RoleOwner, "7", func(in *api.PostInput) { in.Price = 175 })
	require.NoError(t, err)
	assert.Equal(t, 175.0, post.Price)

	assert.Equal(t, 175.0, updated.Price)
	assert.Equal(t, model.PostStatusPaused, updated.Status)
	assert.Equal(t, "Cuarto amplio", updated.Title)
	assert.Equal(t, "1 año", updated.MaximumLeaseTerm)

	_, err = svc.Edit(ctx, model.RoleOwner, "7", func(in *api.PostInput) { in.Title = "Casa" })
	assert.ErrorIs(t, err, ErrInvalidPost)
	assert.Equal(t, int32(1), atomic.LoadInt32(&puts))
}
