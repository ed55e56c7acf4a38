package handler

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/scott-daily/time-tracker-api/internal/model"
)

// UserProvisioner interface for the hook handler
type UserProvisioner interface {
	Provision(ctx context.Context, user *model.User) error
}

// HookHandler receives webhook events from the identity provider.
type HookHandler struct {
	userRepo UserProvisioner
	secret   string
}

// NewHookHandler creates a new hook handler
func NewHookHandler(userRepo UserProvisioner, secret string) *HookHandler {
	return &HookHandler{userRepo: userRepo, secret: secret}
}

// UserCreated handles POST /hooks/user-created - provision a user record
// for a freshly registered account. The upsert keyed by uid makes redelivery
// of the same event harmless.
func (h *HookHandler) UserCreated(w http.ResponseWriter, r *http.Request) {
	got := r.Header.Get("X-Hook-Secret")
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		WriteError(w, http.StatusForbidden, "Unauthorized")
		return
	}

	var req model.ProvisionUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		WriteJSON(w, http.StatusBadRequest, errs)
		return
	}

	user := &model.User{
		UID:       req.UID,
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}

	// 500 here makes the provider redeliver the event.
	if err := h.userRepo.Provision(r.Context(), user); err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteMessage(w, http.StatusOK, "user provisioned")
}
