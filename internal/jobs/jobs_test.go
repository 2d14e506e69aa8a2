package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingJob struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingJob) Run() {
	b.started <- struct{}{}
	<-b.release
}

func TestTaskExecutor_RunOnce(t *testing.T) {
	job := &blockingJob{started: make(chan struct{}, 1), release: make(chan struct{})}
	executor := NewTaskExecutor([]Job{job}, nil)

	done := make(chan bool)
	go func() { done <- executor.runOnce(job) }()
	<-job.started

	// a second run while the first is in progress is skipped
	assert.False(t, executor.runOnce(job))

	close(job.release)
	assert.True(t, <-done)

	// the job can run again once finished
	go func() { <-job.started }()
	assert.True(t, executor.runOnce(job))
}

type fakeCloser struct {
	today time.Time
	moved int64
	err   error
}

func (f *fakeCloser) CloseExpiredJobPosts(ctx context.Context, today time.Time) (int64, error) {
	f.today = today
	return f.moved, f.err
}

func TestClosedPostSweeper(t *testing.T) {
	closer := &fakeCloser{moved: 3}
	sweeper := NewClosedPostSweeper("@hourly", closer)
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.FixedZone("IST", 19800))
	sweeper.now = func() time.Time { return now }

	assert.Equal(t, "@hourly", sweeper.Schedule())
	assert.Equal(t, "closed_post_sweeper", name(sweeper))

	sweeper.Run()
	assert.True(t, now.Equal(closer.today))
	assert.Equal(t, time.UTC, closer.today.Location())

	closer.err = errors.New("db down")
	sweeper.Run()
}

type fakeRevisionStore struct {
	keep int
}

func (f *fakeRevisionStore) PruneRevisions(ctx context.Context, keep int) (int64, error) {
	f.keep = keep
	return 0, nil
}

func TestRevisionPruner(t *testing.T) {
	store := &fakeRevisionStore{}
	pruner := NewRevisionPruner("@daily", 10, store)
	pruner.Run()
	assert.Equal(t, 10, store.keep)
}

func TestTaskExecutor_InvalidSchedule(t *testing.T) {
	executor := NewTaskExecutor(nil, []CronJob{NewRevisionPruner("not a schedule", 1, &fakeRevisionStore{})})
	err := executor.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revision_pruner")
}
