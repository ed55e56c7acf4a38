package model

import (
	"strings"
	"time"
)

// Job represents a billable work item stored in the owning user's
// sub-collection (users/{ownerUid}/jobs/{jobId}). OwnerUID is always set
// server-side from the validated token, never from request input.
type Job struct {
	ID        string    `json:"jobId"`
	OwnerUID  string    `json:"uid"`
	Title     string    `json:"title"`
	Rate      float64   `json:"rate"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateJobRequest is the payload for POST /jobs. Rate is a pointer so that
// an absent or null rate can be distinguished from a legitimate zero rate.
type CreateJobRequest struct {
	Title string   `json:"title"`
	Rate  *float64 `json:"rate"`
}

// Validate returns a map of field name to message for each invalid field.
// A rate of zero is valid; only an absent or null rate is rejected.
func (r *CreateJobRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Title) == "" {
		errs["title"] = "Must not be empty"
	}
	if r.Rate == nil {
		errs["rate"] = "Must not be empty"
	}
	return errs
}

// EditJobRequest is the payload for PUT /editjob/{jobId}. Only the title and
// rate of a job can be changed; fields left out of the request are left
// untouched.
type EditJobRequest struct {
	NewTitle *string  `json:"newTitle"`
	NewRate  *float64 `json:"newRate"`
}

// Changes returns the partial record to merge into the stored job. An empty
// map means the request named no updatable field.
func (r *EditJobRequest) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if r.NewTitle != nil {
		changes["title"] = *r.NewTitle
	}
	if r.NewRate != nil {
		changes["rate"] = *r.NewRate
	}
	return changes
}
