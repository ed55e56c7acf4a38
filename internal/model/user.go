package model

import (
	"strings"
	"time"
)

// User represents a provisioned user account. Users are created exactly once
// by the provisioning hook when the identity provider reports a new identity,
// keyed by the provider-assigned uid. This service never updates or deletes
// them.
type User struct {
	ID        string    `json:"userId"`
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserListItem is the projection returned by GET /users. Jobs is a legacy
// field from when jobs were embedded on the user document; it is always null
// now that the job sub-collection is the single source of truth.
type UserListItem struct {
	UserID    string      `json:"userId"`
	Jobs      interface{} `json:"jobs"`
	UID       string      `json:"uid"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ToListItem converts a User to its list projection.
func (u *User) ToListItem() *UserListItem {
	return &UserListItem{
		UserID:    u.ID,
		UID:       u.UID,
		CreatedAt: u.CreatedAt,
	}
}

// ProvisionUserRequest is the payload delivered by the identity provider's
// user-created webhook.
type ProvisionUserRequest struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate returns a map of field name to message for each invalid field.
func (r *ProvisionUserRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.UID) == "" {
		errs["uid"] = "Must not be empty"
	}
	return errs
}
