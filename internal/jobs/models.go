// Package jobs contains the refresh job registry, the dispatcher that turns
// resolved owners into jobs, and the worker pool that executes them.
package jobs

import (
	"fmt"
	"time"
)

// Status represents the state of a refresh job.
type Status string

const (
	StatusQueued   Status = "QUEUED"
	StatusRunning  Status = "RUNNING"
	StatusFinished Status = "FINISHED"
	StatusFailed   Status = "FAILED"
)

// Terminal reports whether the status is final. Terminal jobs are immutable.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusFailed
}

// RefreshJob represents one asynchronous pool recomputation for one owner.
type RefreshJob struct {
	ID           string
	OwnerKey     string
	Name         string
	Status       Status
	CreatedAt    time.Time
	StartedAt    *time.Time
	FinishedAt   *time.Time
	Result       string
	ErrorMessage string
}

// jobName builds the human-readable job name surfaced in handles.
func jobName(ownerKey string) string {
	return fmt.Sprintf("Refresh Pools for Owner: %s", ownerKey)
}
