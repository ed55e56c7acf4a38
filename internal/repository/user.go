package repository

import (
	"context"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/scott-daily/time-tracker-api/internal/model"
)

// UserRepository handles user data access.
type UserRepository struct {
	store Store
}

// NewUserRepository creates a new user repository.
func NewUserRepository(store Store) *UserRepository {
	return &UserRepository{store: store}
}

// List returns all users ordered by creation time descending. An empty store
// yields an empty slice, not an error.
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	records, err := r.store.ListOrdered(ctx, Users(), "created_at", Descending)
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(records))
	for _, rec := range records {
		users = append(users, userFromRecord(rec))
	}
	return users, nil
}

// Provision writes the initial record for a newly created identity, keyed by
// the provider uid. The write is an upsert: a repeated event for the same uid
// overwrites the record instead of duplicating it.
func (r *UserRepository) Provision(ctx context.Context, user *model.User) error {
	record := Record{
		"uid":        user.UID,
		"name":       user.Name,
		"email":      user.Email,
		"created_at": models.CustomDateTime{Time: user.CreatedAt},
	}
	return r.store.Put(ctx, Users(), user.UID, record)
}

func userFromRecord(rec Record) *model.User {
	return &model.User{
		ID:        recordKey(rec["id"]),
		UID:       parseString(rec["uid"]),
		Name:      parseString(rec["name"]),
		Email:     parseString(rec["email"]),
		CreatedAt: parseTime(rec["created_at"]),
	}
}
