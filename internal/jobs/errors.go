package jobs

import "errors"

// ErrJobNotFound is returned on status lookups for unknown job ids.
var ErrJobNotFound = errors.New("job not found")

// ErrActiveJobExists signals that an owner already has a QUEUED or RUNNING
// job. It is internal to the dispatcher/registry handshake; external callers
// receive the existing job's handle instead.
var ErrActiveJobExists = errors.New("owner already has an active job")

// ErrInvalidTransition signals an out-of-order status change. The state
// machine never regresses, so hitting this is a programming bug.
var ErrInvalidTransition = errors.New("invalid job status transition")
