package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/jobs"
)

type fakeSessions struct {
	deleted int64
}

func (f *fakeSessions) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	return f.deleted, nil
}

type fakeOrders struct {
	urls []string
}

func (f *fakeOrders) ListProofURLs(ctx context.Context) ([]string, error) {
	return f.urls, nil
}

type fakeStorage struct {
	keys    []string
	removed []string
}

func (f *fakeStorage) Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	return "/uploads/" + key, nil
}

func (f *fakeStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

func (f *fakeStorage) URL(key string) string { return "/uploads/" + key }

func (f *fakeStorage) List(ctx context.Context, prefix string) ([]string, error) {
	return f.keys, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCleanerSweepsOrphanedProofs(t *testing.T) {
	store := &fakeStorage{keys: []string{
		"proofs/o1/a.jpg",
		"proofs/o2/b.png",
		"proofs/o3/c.jpg",
	}}
	orders := &fakeOrders{urls: []string{
		"/uploads/proofs/o1/a.jpg",
		"https://cdn.example.com/proofs/o3/c.jpg",
	}}

	cleaner := jobs.NewCleaner(&fakeSessions{}, orders, store, discard())
	err := cleaner.Process(context.Background(), &domain.Job{JobType: jobs.JobTypeCleanupOrphanedProofs})
	require.NoError(t, err)

	// Only the unreferenced upload goes away.
	assert.Equal(t, []string{"proofs/o2/b.png"}, store.removed)
}

func TestCleanerSweepsSessions(t *testing.T) {
	cleaner := jobs.NewCleaner(&fakeSessions{deleted: 7}, &fakeOrders{}, &fakeStorage{}, discard())
	err := cleaner.Process(context.Background(), &domain.Job{JobType: jobs.JobTypeCleanupExpiredSessions})
	assert.NoError(t, err)
}

func TestCleanerRejectsUnknownType(t *testing.T) {
	cleaner := jobs.NewCleaner(&fakeSessions{}, &fakeOrders{}, &fakeStorage{}, discard())
	err := cleaner.Process(context.Background(), &domain.Job{JobType: "email:welcome"})
	assert.Error(t, err)
	assert.False(t, jobs.IsCleanupJob("email:welcome"))
	assert.True(t, jobs.IsCleanupJob(jobs.JobTypeCleanupExpiredSessions))
}
