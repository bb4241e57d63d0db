package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamsashop/lamsa/internal/domain"
)

// JobStore implements domain.JobStore on PostgreSQL. Claiming uses
// FOR UPDATE SKIP LOCKED so concurrent workers never grab the same job.
type JobStore struct {
	db *pgxpool.Pool
}

var _ domain.JobStore = (*JobStore)(nil)

// NewJobStore creates a PostgreSQL-backed job queue.
func NewJobStore(db *pgxpool.Pool) *JobStore {
	return &JobStore{db: db}
}

// Enqueue adds a job to the queue.
func (s *JobStore) Enqueue(ctx context.Context, params domain.EnqueueJobParams) error {
	scheduledAt := params.ScheduledAt
	if scheduledAt.IsZero() {
		scheduledAt = time.Now().UTC()
	}
	maxRetries := params.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO jobs (job_type, queue, payload, status, retry_count, max_retries, scheduled_at)
		VALUES ($1, $2, $3, 'pending', 0, $4, $5)`,
		params.JobType, params.Queue, params.Payload, maxRetries, scheduledAt,
	)
	if err != nil {
		return domain.Internal(err, "job.enqueue", "failed to enqueue job")
	}
	return nil
}

// ClaimNext claims the next due job for the given worker.
func (s *JobStore) ClaimNext(ctx context.Context, workerID string, queue string) (*domain.Job, error) {
	var job domain.Job
	err := s.db.QueryRow(ctx, `
		UPDATE jobs SET status = 'running', worker_id = $1, started_at = now()
		WHERE id = (
			SELECT id FROM jobs
			WHERE status = 'pending' AND queue = $2 AND scheduled_at <= now()
			ORDER BY scheduled_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, job_type, queue, payload, retry_count, max_retries, scheduled_at`,
		workerID, queue,
	).Scan(&job.ID, &job.JobType, &job.Queue, &job.Payload,
		&job.RetryCount, &job.MaxRetries, &job.ScheduledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Internal(err, "job.claim", "failed to claim job")
	}
	return &job, nil
}

// Complete marks a job as done.
func (s *JobStore) Complete(ctx context.Context, jobID string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE jobs SET status = 'completed', finished_at = now() WHERE id = $1`, jobID)
	if err != nil {
		return domain.Internal(err, "job.complete", "failed to complete job")
	}
	return nil
}

// Fail records a job failure. Jobs with retries left go back to pending
// with exponential backoff; exhausted jobs land in failed.
func (s *JobStore) Fail(ctx context.Context, jobID string, errMsg string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE jobs SET
			retry_count = retry_count + 1,
			last_error = $2,
			status = CASE WHEN retry_count + 1 >= max_retries THEN 'failed' ELSE 'pending' END,
			scheduled_at = now() + (interval '1 minute' * power(2, retry_count)),
			finished_at = CASE WHEN retry_count + 1 >= max_retries THEN now() ELSE NULL END
		WHERE id = $1`,
		jobID, errMsg,
	)
	if err != nil {
		return domain.Internal(err, "job.fail", "failed to record job failure")
	}
	return nil
}
