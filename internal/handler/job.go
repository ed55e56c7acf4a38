package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/scott-daily/time-tracker-api/internal/database"
	"github.com/scott-daily/time-tracker-api/internal/middleware"
	"github.com/scott-daily/time-tracker-api/internal/model"
)

// JobRepository interface for the handler
type JobRepository interface {
	List(ctx context.Context, ownerUID string) ([]*model.Job, error)
	Create(ctx context.Context, job *model.Job) (string, error)
	Get(ctx context.Context, ownerUID, jobID string) (*model.Job, error)
	Update(ctx context.Context, ownerUID, jobID string, changes map[string]interface{}) error
	Delete(ctx context.Context, ownerUID, jobID string) error
}

// JobHandler handles job HTTP requests. Every route operates on the
// calling user's jobs only; a job owned by someone else is treated the
// same as a missing one.
type JobHandler struct {
	jobRepo JobRepository
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobRepo JobRepository) *JobHandler {
	return &JobHandler{jobRepo: jobRepo}
}

// List handles GET /jobs - list the caller's jobs, newest first
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetCallerUID(ctx)

	jobs, err := h.jobRepo.List(ctx, uid)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, jobs)
}

// Get handles GET /jobs/{jobId} - fetch one of the caller's jobs
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetCallerUID(ctx)
	jobID := r.PathValue("jobId")

	job, err := h.jobRepo.Get(ctx, uid, jobID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if job == nil {
		WriteError(w, http.StatusBadRequest, "No document found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"data": job})
}

// Create handles POST /jobs - create a job for the caller
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetCallerUID(ctx)

	var req model.CreateJobRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		WriteJSON(w, http.StatusBadRequest, errs)
		return
	}

	job := &model.Job{
		OwnerUID:  uid,
		Title:     req.Title,
		Rate:      *req.Rate,
		CreatedAt: time.Now().UTC(),
	}

	id, err := h.jobRepo.Create(ctx, job)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteMessage(w, http.StatusOK, fmt.Sprintf("job %s created successfully", id))
}

// Update handles PUT /editjob/{jobId} - update title and rate of a job
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetCallerUID(ctx)
	jobID := r.PathValue("jobId")

	var req model.EditJobRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.jobRepo.Update(ctx, uid, jobID, req.Changes())
	if errors.Is(err, database.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteMessage(w, http.StatusOK, "Updated successfully")
}

// Delete handles DELETE /deletejob/{jobId} - delete one of the caller's jobs
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetCallerUID(ctx)
	jobID := r.PathValue("jobId")

	err := h.jobRepo.Delete(ctx, uid, jobID)
	if errors.Is(err, database.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteMessage(w, http.StatusOK, "Deletion successful")
}
