// Package worker polls the Postgres-backed job queue and runs jobs.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/jobs"
	"github.com/lamsashop/lamsa/internal/telemetry"
)

// Config holds worker configuration
type Config struct {
	// WorkerID uniquely identifies this worker instance
	WorkerID string

	// PollInterval is how often to check for new jobs
	PollInterval time.Duration

	// MaxConcurrency is the maximum number of jobs to process concurrently
	MaxConcurrency int

	// Queue name to process
	Queue string

	// JobTimeout bounds a single job's execution
	JobTimeout time.Duration
}

// Worker processes background jobs
type Worker struct {
	config  Config
	queue   domain.JobStore
	cleaner *jobs.Cleaner
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger

	wg sync.WaitGroup
}

// NewWorker creates a new background job worker
func NewWorker(queue domain.JobStore, cleaner *jobs.Cleaner, metrics *telemetry.BusinessMetrics, config Config, logger *slog.Logger) *Worker {
	if config.WorkerID == "" {
		config.WorkerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}
	if config.PollInterval == 0 {
		config.PollInterval = 10 * time.Second
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.JobTimeout == 0 {
		config.JobTimeout = time.Minute
	}
	if config.Queue == "" {
		config.Queue = jobs.CleanupQueue
	}

	return &Worker{
		config:  config,
		queue:   queue,
		cleaner: cleaner,
		metrics: metrics,
		logger:  logger,
	}
}

// Start begins processing jobs until the context is cancelled. In-flight
// jobs are drained before returning.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("worker starting",
		"worker_id", w.config.WorkerID,
		"queue", w.config.Queue,
		"poll_interval", w.config.PollInterval,
		"max_concurrency", w.config.MaxConcurrency,
	)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.config.MaxConcurrency)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down", "worker_id", w.config.WorkerID)
			w.wg.Wait()
			return ctx.Err()

		case <-ticker.C:
			select {
			case sem <- struct{}{}:
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }()
					w.claimAndProcess(ctx)
				}()
			default:
				// At max concurrency, skip this poll.
			}
		}
	}
}

// claimAndProcess claims a single job and processes it. A nil job means
// the queue is empty.
func (w *Worker) claimAndProcess(ctx context.Context) {
	job, err := w.queue.ClaimNext(ctx, w.config.WorkerID, w.config.Queue)
	if err != nil {
		w.logger.Error("failed to claim job", "error", err)
		return
	}
	if job == nil {
		return
	}
	w.process(ctx, job)
}

// process runs one job and records the outcome.
func (w *Worker) process(ctx context.Context, job *domain.Job) {
	w.logger.Info("processing job",
		"job_id", job.ID,
		"job_type", job.JobType,
		"retry_count", job.RetryCount,
	)

	jobCtx, cancel := context.WithTimeout(ctx, w.config.JobTimeout)
	defer cancel()

	start := time.Now()
	err := w.run(jobCtx, job)
	duration := time.Since(start)

	if w.metrics != nil {
		w.metrics.JobDuration.WithLabelValues(job.JobType).Observe(duration.Seconds())
	}

	if err != nil {
		w.logger.Error("job failed",
			"job_id", job.ID,
			"job_type", job.JobType,
			"error", err,
		)
		if w.metrics != nil {
			w.metrics.JobsFailed.WithLabelValues(job.JobType).Inc()
		}
		if failErr := w.queue.Fail(ctx, job.ID, err.Error()); failErr != nil {
			w.logger.Error("failed to record job failure", "job_id", job.ID, "error", failErr)
		}
		return
	}

	w.logger.Info("job completed",
		"job_id", job.ID,
		"job_type", job.JobType,
		"duration_ms", duration.Milliseconds(),
	)
	if w.metrics != nil {
		w.metrics.JobsProcessed.WithLabelValues(job.JobType).Inc()
	}
	if err := w.queue.Complete(ctx, job.ID); err != nil {
		w.logger.Error("failed to mark job complete", "job_id", job.ID, "error", err)
	}
}

// run dispatches a job to its processor.
func (w *Worker) run(ctx context.Context, job *domain.Job) error {
	if jobs.IsCleanupJob(job.JobType) {
		return w.cleaner.Process(ctx, job)
	}
	return fmt.Errorf("unknown job type: %s", job.JobType)
}

// Schedule enqueues the recurring cleanup jobs on a fixed interval until
// the context is cancelled. Run it alongside Start.
func (w *Worker) Schedule(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := jobs.EnqueueCleanupExpiredSessions(ctx, w.queue); err != nil {
				w.logger.Error("failed to enqueue session cleanup", "error", err)
			} else if w.metrics != nil {
				w.metrics.JobsEnqueued.WithLabelValues(jobs.JobTypeCleanupExpiredSessions).Inc()
			}
			if err := jobs.EnqueueCleanupOrphanedProofs(ctx, w.queue); err != nil {
				w.logger.Error("failed to enqueue proof cleanup", "error", err)
			} else if w.metrics != nil {
				w.metrics.JobsEnqueued.WithLabelValues(jobs.JobTypeCleanupOrphanedProofs).Inc()
			}
		}
	}
}
