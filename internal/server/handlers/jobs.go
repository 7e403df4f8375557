package handlers

import (
	"errors"
	"net/http"

	"poolplane/internal/jobs"
	"poolplane/pkg/api"
)

// GetJob handles GET /jobs/{id}. Callers poll it until the job reaches a
// terminal state.
func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	job, err := h.jobs.Get(jobID)
	if errors.Is(err, jobs.ErrJobNotFound) {
		h.httpError(w, "Job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("job lookup failed", "job_id", jobID, "error", err)
		h.httpError(w, "Failed to look up job", http.StatusInternalServerError)
		return
	}

	h.respondJson(w, http.StatusOK, api.JobStatusResponse{
		ID:         job.ID,
		Name:       job.Name,
		OwnerKey:   job.OwnerKey,
		Status:     string(job.Status),
		CreatedAt:  job.CreatedAt,
		StartedAt:  job.StartedAt,
		FinishedAt: job.FinishedAt,
		Result:     job.Result,
		Error:      job.ErrorMessage,
	})
}
