package repository

import (
	"context"
	"errors"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/scott-daily/time-tracker-api/internal/database"
	"github.com/scott-daily/time-tracker-api/internal/model"
)

// JobRepository handles job data access. Every method operates inside a
// single owner's sub-collection; the owner uid must come from the validated
// token, never from request input.
type JobRepository struct {
	store Store
}

// NewJobRepository creates a new job repository.
func NewJobRepository(store Store) *JobRepository {
	return &JobRepository{store: store}
}

// List returns the owner's jobs ordered by creation time descending.
func (r *JobRepository) List(ctx context.Context, ownerUID string) ([]*model.Job, error) {
	records, err := r.store.ListOrdered(ctx, Jobs(ownerUID), "created_at", Descending)
	if err != nil {
		return nil, err
	}

	jobs := make([]*model.Job, 0, len(records))
	for _, rec := range records {
		jobs = append(jobs, jobFromRecord(rec))
	}
	return jobs, nil
}

// Create inserts a job into the owner's sub-collection and returns the
// store-assigned id.
func (r *JobRepository) Create(ctx context.Context, job *model.Job) (string, error) {
	record := Record{
		"title":      job.Title,
		"rate":       job.Rate,
		"created_at": models.CustomDateTime{Time: job.CreatedAt},
	}
	return r.store.Add(ctx, Jobs(job.OwnerUID), record)
}

// Get fetches one job by id under the owner's scope. Returns (nil, nil) when
// the job does not exist or belongs to a different owner.
func (r *JobRepository) Get(ctx context.Context, ownerUID, jobID string) (*model.Job, error) {
	rec, err := r.store.GetByID(ctx, Jobs(ownerUID), jobID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return jobFromRecord(rec), nil
}

// Update merges changes into the job under the owner's scope. Returns
// database.ErrNotFound when the job does not exist or belongs to a different
// owner.
func (r *JobRepository) Update(ctx context.Context, ownerUID, jobID string, changes map[string]interface{}) error {
	return r.store.Update(ctx, Jobs(ownerUID), jobID, Record(changes))
}

// Delete removes the job under the owner's scope. Returns
// database.ErrNotFound when the job does not exist or belongs to a different
// owner, so deleting the same id twice fails the second time.
func (r *JobRepository) Delete(ctx context.Context, ownerUID, jobID string) error {
	return r.store.Delete(ctx, Jobs(ownerUID), jobID)
}

func jobFromRecord(rec Record) *model.Job {
	return &model.Job{
		ID:        recordKey(rec["id"]),
		OwnerUID:  parseString(rec["owner_uid"]),
		Title:     parseString(rec["title"]),
		Rate:      parseFloat(rec["rate"]),
		CreatedAt: parseTime(rec["created_at"]),
	}
}
