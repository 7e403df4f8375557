package jobs

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"poolplane/internal/pools"
)

// Pool is the execution substrate for refresh jobs: a fixed-size set of
// workers draining a buffered task channel. Completion order between owners
// is unspecified; the registry's active index guarantees no two tasks for
// the same owner are ever in flight together.
type Pool struct {
	registry  *Registry
	refresher pools.Refresher
	tasks     chan Task
	workers   int
	logger    *slog.Logger
	wg        sync.WaitGroup
}

// NewPool creates a worker pool with the given concurrency and queue depth.
func NewPool(reg *Registry, r pools.Refresher, workers, queueDepth int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueDepth <= 0 {
		queueDepth = 64
	}
	return &Pool{
		registry:  reg,
		refresher: r,
		tasks:     make(chan Task, queueDepth),
		workers:   workers,
		logger:    logger,
	}
}

// Submit enqueues a task without waiting for it to run.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Depth returns the number of tasks waiting for a worker.
func (p *Pool) Depth() int64 {
	return int64(len(p.tasks))
}

// Start launches the workers. They stop when ctx is cancelled; Wait blocks
// until in-flight tasks have finished.
func (p *Pool) Start(ctx context.Context) {
	p.logger.Info("worker pool starting", "workers", p.workers)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case task := <-p.tasks:
					p.execute(ctx, task)
				}
			}
		}()
	}
}

// Wait blocks until every worker has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// execute runs one refresh job to a terminal state. One job's failure is
// isolated; it never affects other owners' jobs.
func (p *Pool) execute(ctx context.Context, task Task) {
	ctx, span := otel.Tracer("poolplane-worker").Start(ctx, "RefreshPools")
	defer span.End()
	span.SetAttributes(
		attribute.String("job.id", task.JobID),
		attribute.String("owner.key", task.OwnerKey),
	)

	if err := p.registry.Transition(task.JobID, StatusRunning, ""); err != nil {
		p.logger.Error("cannot start refresh job", "job_id", task.JobID, "error", err)
		return
	}

	result, err := p.refresher.RefreshPools(ctx, task.OwnerKey)
	if err != nil {
		p.logger.Warn("refresh job failed", "job_id", task.JobID, "owner", task.OwnerKey, "error", err)
		if terr := p.registry.Transition(task.JobID, StatusFailed, err.Error()); terr != nil {
			p.logger.Error("cannot fail refresh job", "job_id", task.JobID, "error", terr)
		}
		return
	}

	if err := p.registry.Transition(task.JobID, StatusFinished, result); err != nil {
		p.logger.Error("cannot finish refresh job", "job_id", task.JobID, "error", err)
		return
	}
	p.logger.Info("refresh job finished", "job_id", task.JobID, "owner", task.OwnerKey)
}
