package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scott-daily/time-tracker-api/internal/model"
)

type fakeProvisioner struct {
	provisionFunc func(ctx context.Context, user *model.User) error
}

func (f *fakeProvisioner) Provision(ctx context.Context, user *model.User) error {
	return f.provisionFunc(ctx, user)
}

func hookRequest(secret string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(http.MethodPost, "/hooks/user-created", &buf)
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Hook-Secret", secret)
	}
	return req
}

func TestUserCreated_Provisions(t *testing.T) {
	t.Parallel()

	var provisioned *model.User
	h := NewHookHandler(&fakeProvisioner{
		provisionFunc: func(_ context.Context, user *model.User) error {
			provisioned = user
			return nil
		},
	}, "hook-secret")

	rr := httptest.NewRecorder()
	h.UserCreated(rr, hookRequest("hook-secret", map[string]string{
		"uid":   "uid-1",
		"name":  "Alice",
		"email": "alice@example.com",
	}))

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, provisioned)
	assert.Equal(t, "uid-1", provisioned.UID)
	assert.Equal(t, "Alice", provisioned.Name)
	assert.Equal(t, "alice@example.com", provisioned.Email)
	assert.False(t, provisioned.CreatedAt.IsZero())
}

func TestUserCreated_WrongSecret(t *testing.T) {
	t.Parallel()

	h := NewHookHandler(&fakeProvisioner{
		provisionFunc: func(context.Context, *model.User) error {
			t.Error("provision should not run with a bad secret")
			return nil
		},
	}, "hook-secret")

	rr := httptest.NewRecorder()
	h.UserCreated(rr, hookRequest("wrong", map[string]string{"uid": "uid-1"}))

	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, rr)["error"])
}

func TestUserCreated_MissingSecret(t *testing.T) {
	t.Parallel()

	h := NewHookHandler(&fakeProvisioner{
		provisionFunc: func(context.Context, *model.User) error {
			t.Error("provision should not run without a secret")
			return nil
		},
	}, "hook-secret")

	rr := httptest.NewRecorder()
	h.UserCreated(rr, hookRequest("", map[string]string{"uid": "uid-1"}))

	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestUserCreated_MissingUID(t *testing.T) {
	t.Parallel()

	h := NewHookHandler(&fakeProvisioner{}, "hook-secret")

	rr := httptest.NewRecorder()
	h.UserCreated(rr, hookRequest("hook-secret", map[string]string{"name": "Alice"}))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Must not be empty", decodeBody(t, rr)["uid"])
}

func TestUserCreated_StoreError(t *testing.T) {
	t.Parallel()

	// 500 tells the identity provider to redeliver the event.
	h := NewHookHandler(&fakeProvisioner{
		provisionFunc: func(context.Context, *model.User) error {
			return errors.New("store unavailable")
		},
	}, "hook-secret")

	rr := httptest.NewRecorder()
	h.UserCreated(rr, hookRequest("hook-secret", map[string]string{"uid": "uid-1"}))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "store unavailable", decodeBody(t, rr)["error"])
}
