package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/scott-daily/time-tracker-api/internal/database"
	"github.com/scott-daily/time-tracker-api/internal/model"
)

type fakeStore struct {
	listFunc   func(col Collection, orderField string, dir Direction) ([]Record, error)
	addFunc    func(col Collection, record Record) (string, error)
	putFunc    func(col Collection, id string, record Record) error
	getFunc    func(col Collection, id string) (Record, error)
	updateFunc func(col Collection, id string, partial Record) error
	deleteFunc func(col Collection, id string) error
}

func (f *fakeStore) ListOrdered(_ context.Context, col Collection, orderField string, dir Direction) ([]Record, error) {
	return f.listFunc(col, orderField, dir)
}

func (f *fakeStore) Add(_ context.Context, col Collection, record Record) (string, error) {
	return f.addFunc(col, record)
}

func (f *fakeStore) Put(_ context.Context, col Collection, id string, record Record) error {
	return f.putFunc(col, id, record)
}

func (f *fakeStore) GetByID(_ context.Context, col Collection, id string) (Record, error) {
	return f.getFunc(col, id)
}

func (f *fakeStore) Update(_ context.Context, col Collection, id string, partial Record) error {
	return f.updateFunc(col, id, partial)
}

func (f *fakeStore) Delete(_ context.Context, col Collection, id string) error {
	return f.deleteFunc(col, id)
}

func TestJobList_MapsRecords(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		listFunc: func(col Collection, orderField string, dir Direction) ([]Record, error) {
			if col.Path() != "users/u1/jobs" {
				t.Errorf("expected job collection for u1, got %s", col.Path())
			}
			if orderField != "created_at" || dir != Descending {
				t.Errorf("expected created_at DESC, got %s %s", orderField, dir)
			}
			return []Record{
				{
					"id":         "job:abc",
					"owner_uid":  "u1",
					"title":      "Consulting",
					"rate":       int64(85),
					"created_at": models.CustomDateTime{Time: created},
				},
			}, nil
		},
	}
	repo := NewJobRepository(store)

	jobs, err := repo.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}

	job := jobs[0]
	if job.ID != "abc" {
		t.Errorf("expected bare id abc, got %q", job.ID)
	}
	if job.OwnerUID != "u1" {
		t.Errorf("expected owner u1, got %q", job.OwnerUID)
	}
	if job.Rate != 85 {
		t.Errorf("expected rate 85, got %v", job.Rate)
	}
	if !job.CreatedAt.Equal(created) {
		t.Errorf("expected created_at %v, got %v", created, job.CreatedAt)
	}
}

func TestJobGet_NotFoundIsNil(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		getFunc: func(Collection, string) (Record, error) {
			return nil, database.ErrNotFound
		},
	}
	repo := NewJobRepository(store)

	job, err := repo.Get(context.Background(), "u1", "nope")
	if err != nil {
		t.Fatalf("expected nil error for missing job, got %v", err)
	}
	if job != nil {
		t.Errorf("expected nil job, got %+v", job)
	}
}

func TestJobGet_StoreErrorPassesThrough(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		getFunc: func(Collection, string) (Record, error) {
			return nil, database.ErrConnection
		},
	}
	repo := NewJobRepository(store)

	if _, err := repo.Get(context.Background(), "u1", "a"); !errors.Is(err, database.ErrConnection) {
		t.Errorf("expected ErrConnection, got %v", err)
	}
}

func TestJobCreate_ScopedToOwner(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		addFunc: func(col Collection, record Record) (string, error) {
			if col.Path() != "users/u1/jobs" {
				t.Errorf("expected job collection for u1, got %s", col.Path())
			}
			if record["title"] != "Consulting" {
				t.Errorf("expected title Consulting, got %v", record["title"])
			}
			return "new-id", nil
		},
	}
	repo := NewJobRepository(store)

	id, err := repo.Create(context.Background(), &model.Job{
		OwnerUID:  "u1",
		Title:     "Consulting",
		Rate:      85,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != "new-id" {
		t.Errorf("expected new-id, got %q", id)
	}
}

func TestUserList_MapsRecords(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		listFunc: func(col Collection, orderField string, dir Direction) ([]Record, error) {
			if col.Path() != "users" {
				t.Errorf("expected user collection, got %s", col.Path())
			}
			return []Record{
				{
					"id":         "user:uid1",
					"uid":        "uid1",
					"name":       "Alice",
					"email":      "alice@example.com",
					"created_at": "2024-03-01T12:00:00Z",
				},
			}, nil
		},
	}
	repo := NewUserRepository(store)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].ID != "uid1" {
		t.Errorf("expected bare id uid1, got %q", users[0].ID)
	}
	if users[0].Name != "Alice" {
		t.Errorf("expected name Alice, got %q", users[0].Name)
	}
	if users[0].CreatedAt.IsZero() {
		t.Error("expected created_at parsed from RFC3339 string")
	}
}

func TestUserProvision_UpsertKeyedByUID(t *testing.T) {
	t.Parallel()

	var gotID string
	store := &fakeStore{
		putFunc: func(col Collection, id string, record Record) error {
			gotID = id
			if record["uid"] != "uid1" {
				t.Errorf("expected uid written, got %v", record["uid"])
			}
			return nil
		},
	}
	repo := NewUserRepository(store)

	err := repo.Provision(context.Background(), &model.User{
		UID:       "uid1",
		Name:      "Alice",
		Email:     "alice@example.com",
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if gotID != "uid1" {
		t.Errorf("expected record keyed by uid, got %q", gotID)
	}
}
