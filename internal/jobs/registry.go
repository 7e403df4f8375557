package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry is the process-wide store of refresh jobs. It is constructed at
// service start and owns every RefreshJob record; the dispatcher only
// inserts and reads. A single mutex covers both the job table and the
// per-owner active index, so check-and-create is atomic under concurrent
// dispatch.
type Registry struct {
	mu     sync.Mutex
	jobs   map[string]*RefreshJob
	active map[string]string // owner key -> active job id
}

// NewRegistry creates an empty job registry.
func NewRegistry() *Registry {
	return &Registry{
		jobs:   make(map[string]*RefreshJob),
		active: make(map[string]string),
	}
}

// Create allocates a new QUEUED job for the owner. It fails with
// ErrActiveJobExists if the owner already has a QUEUED or RUNNING job.
func (r *Registry) Create(ownerKey string) (*RefreshJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.active[ownerKey]; ok {
		return nil, ErrActiveJobExists
	}

	job := &RefreshJob{
		ID:        uuid.NewString(),
		OwnerKey:  ownerKey,
		Name:      jobName(ownerKey),
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	r.jobs[job.ID] = job
	r.active[ownerKey] = job.ID

	return copyJob(job), nil
}

// Get returns a snapshot of the job with the given id, or ErrJobNotFound.
func (r *Registry) Get(jobID string) (*RefreshJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return nil, ErrJobNotFound
	}
	return copyJob(job), nil
}

// ListActiveForOwner returns the owner's QUEUED/RUNNING jobs. The at-most-one
// invariant means the result has at most one element.
func (r *Registry) ListActiveForOwner(ownerKey string) []*RefreshJob {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.active[ownerKey]
	if !ok {
		return nil
	}
	return []*RefreshJob{copyJob(r.jobs[id])}
}

// Discard removes a QUEUED job that was never handed to the execution
// substrate, releasing the owner for a later dispatch. Once a job is
// RUNNING or terminal it can no longer be discarded.
func (r *Registry) Discard(jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	if job.Status != StatusQueued {
		return ErrInvalidTransition
	}

	delete(r.jobs, jobID)
	if r.active[job.OwnerKey] == jobID {
		delete(r.active, job.OwnerKey)
	}
	return nil
}

// ActiveCount returns the number of owners with an in-flight job.
func (r *Registry) ActiveCount() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.active))
}

// Transition moves a job through the QUEUED -> RUNNING -> {FINISHED, FAILED}
// state machine. The result argument carries the success payload for
// FINISHED and the error message for FAILED; it is ignored for RUNNING.
// Any out-of-order or terminal-to-nonterminal attempt fails with
// ErrInvalidTransition.
func (r *Registry) Transition(jobID string, next Status, result string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}

	switch {
	case job.Status == StatusQueued && next == StatusRunning:
		now := time.Now().UTC()
		job.StartedAt = &now
	case job.Status == StatusRunning && next == StatusFinished:
		now := time.Now().UTC()
		job.FinishedAt = &now
		job.Result = result
	case job.Status == StatusRunning && next == StatusFailed:
		now := time.Now().UTC()
		job.FinishedAt = &now
		job.ErrorMessage = result
	default:
		return ErrInvalidTransition
	}

	job.Status = next
	if next.Terminal() {
		delete(r.active, job.OwnerKey)
	}
	return nil
}

func copyJob(job *RefreshJob) *RefreshJob {
	c := *job
	if job.StartedAt != nil {
		t := *job.StartedAt
		c.StartedAt = &t
	}
	if job.FinishedAt != nil {
		t := *job.FinishedAt
		c.FinishedAt = &t
	}
	return &c
}
