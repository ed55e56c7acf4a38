package handler

import (
	"context"
	"net/http"

	"github.com/scott-daily/time-tracker-api/internal/model"
)

// UserRepository interface for the handler
type UserRepository interface {
	List(ctx context.Context) ([]*model.User, error)
}

// UserHandler handles user HTTP requests
type UserHandler struct {
	userRepo UserRepository
}

// NewUserHandler creates a new user handler
func NewUserHandler(userRepo UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// List handles GET /users - list all registered users, newest first
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]*model.UserListItem, 0, len(users))
	for _, user := range users {
		items = append(items, user.ToListItem())
	}

	WriteJSON(w, http.StatusOK, items)
}
