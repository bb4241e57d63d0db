// Package jobs defines the background job types and their processors.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/storage"
)

// Job type constants for cleanup jobs
const (
	// JobTypeCleanupExpiredSessions removes login sessions past their
	// lifetime. Scheduled periodically by the server.
	JobTypeCleanupExpiredSessions = "cleanup:expired_sessions"

	// JobTypeCleanupOrphanedProofs removes payment proof files in storage
	// that no order references. Proof attachment uploads the file before
	// recording the URL, so a crash between the two leaves an orphan.
	JobTypeCleanupOrphanedProofs = "cleanup:orphaned_proofs"
)

// CleanupQueue is the queue cleanup jobs run on.
const CleanupQueue = "cleanup"

// EnqueueCleanupExpiredSessions schedules a session sweep.
func EnqueueCleanupExpiredSessions(ctx context.Context, queue domain.JobStore) error {
	return queue.Enqueue(ctx, domain.EnqueueJobParams{
		JobType:    JobTypeCleanupExpiredSessions,
		Queue:      CleanupQueue,
		Payload:    []byte("{}"),
		MaxRetries: 1,
	})
}

// EnqueueCleanupOrphanedProofs schedules an orphaned-upload sweep.
func EnqueueCleanupOrphanedProofs(ctx context.Context, queue domain.JobStore) error {
	return queue.Enqueue(ctx, domain.EnqueueJobParams{
		JobType:    JobTypeCleanupOrphanedProofs,
		Queue:      CleanupQueue,
		Payload:    []byte("{}"),
		MaxRetries: 1,
	})
}

// SessionSweeper deletes expired sessions.
type SessionSweeper interface {
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// ProofURLLister returns the proof URLs referenced by orders.
type ProofURLLister interface {
	ListProofURLs(ctx context.Context) ([]string, error)
}

// Cleaner processes the cleanup job types.
type Cleaner struct {
	sessions SessionSweeper
	orders   ProofURLLister
	proofs   storage.Storage
	logger   *slog.Logger
}

// NewCleaner creates a Cleaner.
func NewCleaner(sessions SessionSweeper, orders ProofURLLister, proofs storage.Storage, logger *slog.Logger) *Cleaner {
	return &Cleaner{
		sessions: sessions,
		orders:   orders,
		proofs:   proofs,
		logger:   logger,
	}
}

// Process runs a cleanup job.
func (c *Cleaner) Process(ctx context.Context, job *domain.Job) error {
	switch job.JobType {
	case JobTypeCleanupExpiredSessions:
		return c.sweepSessions(ctx)
	case JobTypeCleanupOrphanedProofs:
		return c.sweepOrphanedProofs(ctx)
	default:
		return fmt.Errorf("unknown cleanup job type: %s", job.JobType)
	}
}

// IsCleanupJob checks if a job type is a cleanup job
func IsCleanupJob(jobType string) bool {
	switch jobType {
	case JobTypeCleanupExpiredSessions, JobTypeCleanupOrphanedProofs:
		return true
	}
	return false
}

func (c *Cleaner) sweepSessions(ctx context.Context) error {
	deleted, err := c.sessions.DeleteExpiredSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	if deleted > 0 {
		c.logger.Info("expired sessions removed", "count", deleted)
	}
	return nil
}

// sweepOrphanedProofs deletes stored proof files that no order references.
func (c *Cleaner) sweepOrphanedProofs(ctx context.Context) error {
	referenced, err := c.orders.ListProofURLs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list referenced proofs: %w", err)
	}

	keys, err := c.proofs.List(ctx, "proofs/")
	if err != nil {
		return fmt.Errorf("failed to list stored proofs: %w", err)
	}

	var removed int
	for _, key := range keys {
		if isReferenced(key, referenced) {
			continue
		}
		if err := c.proofs.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete orphaned proof %s: %w", key, err)
		}
		removed++
	}
	if removed > 0 {
		c.logger.Info("orphaned proofs removed", "count", removed)
	}
	return nil
}

// isReferenced matches a storage key against recorded proof URLs. URLs
// embed the key, so suffix matching covers both local and R2 layouts.
func isReferenced(key string, urls []string) bool {
	for _, u := range urls {
		if strings.HasSuffix(u, key) {
			return true
		}
	}
	return false
}
