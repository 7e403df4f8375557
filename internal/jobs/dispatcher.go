package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"poolplane/internal/resolver"
)

// Task is the unit of work handed to the execution substrate: the job to
// run and the owner whose pools it recomputes.
type Task struct {
	JobID    string
	OwnerKey string
}

// Sink accepts tasks for asynchronous execution. Submit must not wait for
// the task to complete.
type Sink interface {
	Submit(ctx context.Context, task Task) error
}

// Dispatcher turns a set of product identifiers into one refresh job per
// affected owner and enqueues the new ones for asynchronous execution.
type Dispatcher struct {
	resolver *resolver.Resolver
	registry *Registry
	sink     Sink
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(r *resolver.Resolver, reg *Registry, sink Sink, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{resolver: r, registry: reg, sink: sink, logger: logger}
}

// RefreshOwnersWithProduct resolves the owners affected by productIDs and
// returns one job handle per owner. Owners with a job already in flight get
// the existing handle back instead of a duplicate; everyone else gets a
// fresh QUEUED job submitted to the sink. The call returns as soon as the
// jobs are enqueued.
func (d *Dispatcher) RefreshOwnersWithProduct(ctx context.Context, productIDs []string) ([]*RefreshJob, error) {
	ctx, span := otel.Tracer("poolplane-dispatcher").Start(ctx, "RefreshOwnersWithProduct")
	defer span.End()

	owners, err := d.resolver.ResolveOwners(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("owners.matched", len(owners)))

	handles := make([]*RefreshJob, 0, len(owners))
	for _, owner := range owners {
		job, created, err := d.createOrReuse(owner.Key)
		if err != nil {
			return nil, err
		}
		if created {
			// Only freshly created jobs get submitted; reused handles
			// are already in the sink or running.
			if err := d.sink.Submit(ctx, Task{JobID: job.ID, OwnerKey: owner.Key}); err != nil {
				// The job never reached a worker, so it must not stay in
				// the active index where later dispatches would reuse it.
				if derr := d.registry.Discard(job.ID); derr != nil {
					d.logger.Error("cannot discard unsubmitted job", "job_id", job.ID, "error", derr)
				}
				return nil, fmt.Errorf("submit refresh for %s: %w", owner.Key, err)
			}
			d.logger.Info("refresh job enqueued", "job_id", job.ID, "owner", owner.Key)
		}
		handles = append(handles, job)
	}
	return handles, nil
}

// createOrReuse performs the conflict-tolerant create step: Create either
// succeeds or reports an active job, in which case the active handle is
// reused. A conflict is never surfaced to the caller; when the active job
// reaches a terminal state between the two registry calls the conflict is
// stale and the create is simply retried.
func (d *Dispatcher) createOrReuse(ownerKey string) (*RefreshJob, bool, error) {
	for {
		job, err := d.registry.Create(ownerKey)
		if err == nil {
			return job, true, nil
		}
		if !errors.Is(err, ErrActiveJobExists) {
			return nil, false, err
		}
		if active := d.registry.ListActiveForOwner(ownerKey); len(active) > 0 {
			d.logger.Debug("reusing active refresh job", "job_id", active[0].ID, "owner", ownerKey)
			return active[0], false, nil
		}
	}
}
