package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scott-daily/time-tracker-api/internal/model"
)

type fakeUserRepo struct {
	listFunc func(ctx context.Context) ([]*model.User, error)
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*model.User, error) {
	return f.listFunc(ctx)
}

func TestListUsers_Projection(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{
		listFunc: func(context.Context) ([]*model.User, error) {
			return []*model.User{
				{
					ID:        "abc",
					UID:       "uid-1",
					Name:      "Alice",
					Email:     "alice@example.com",
					CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
				},
			}, nil
		},
	}
	h := NewUserHandler(repo)

	rr := httptest.NewRecorder()
	h.List(rr, authedRequest(http.MethodGet, "/users", "user-1", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var users []map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&users))
	require.Len(t, users, 1)

	assert.Equal(t, "abc", users[0]["userId"])
	assert.Equal(t, "uid-1", users[0]["uid"])

	// jobs is a legacy key that must be present and always null
	jobs, ok := users[0]["jobs"]
	require.True(t, ok, "jobs key must be present")
	assert.Nil(t, jobs)

	// name and email are not part of the list projection
	assert.NotContains(t, users[0], "name")
	assert.NotContains(t, users[0], "email")
}

func TestListUsers_Empty(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{
		listFunc: func(context.Context) ([]*model.User, error) {
			return []*model.User{}, nil
		},
	}
	h := NewUserHandler(repo)

	rr := httptest.NewRecorder()
	h.List(rr, authedRequest(http.MethodGet, "/users", "user-1", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestListUsers_StoreError(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{
		listFunc: func(context.Context) ([]*model.User, error) {
			return nil, errors.New("query timeout")
		},
	}
	h := NewUserHandler(repo)

	rr := httptest.NewRecorder()
	h.List(rr, authedRequest(http.MethodGet, "/users", "user-1", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "query timeout", decodeBody(t, rr)["error"])
}
