package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Job is one unit of background work in the Postgres-backed queue.
type Job struct {
	ID          string
	JobType     string
	Queue       string
	Payload     json.RawMessage
	RetryCount  int32
	MaxRetries  int32
	ScheduledAt time.Time
}

// EnqueueJobParams describes a job to enqueue.
type EnqueueJobParams struct {
	JobType     string
	Queue       string
	Payload     json.RawMessage
	MaxRetries  int32
	ScheduledAt time.Time
}

// JobStore is the queue's persistence contract. ClaimNext must hand each
// job to exactly one worker even with several workers polling.
type JobStore interface {
	Enqueue(ctx context.Context, params EnqueueJobParams) error

	// ClaimNext claims the next due job for the given worker.
	// Returns (nil, nil) when the queue is empty.
	ClaimNext(ctx context.Context, workerID string, queue string) (*Job, error)

	Complete(ctx context.Context, jobID string) error
	Fail(ctx context.Context, jobID string, errMsg string) error
}
