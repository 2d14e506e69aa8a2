package jobs

import (
	"fmt"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type Job interface {
	Run()
}

type CronJob interface {
	Schedule() string
	Job
}

// Named jobs are logged by name.
type Named interface {
	Name() string
}

type TaskExecutor struct {
	cron     *cron.Cron
	jobs     []Job
	cronJobs []CronJob
	running  mapset.Set[Job]
	mu       sync.Mutex
}

func NewTaskExecutor(jobs []Job, cronJobs []CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:     cron.New(),
		jobs:     jobs,
		cronJobs: cronJobs,
		running:  mapset.NewSet[Job](),
	}
}

// Run schedules the cron jobs on their schedule and the plain jobs every
// second, then starts the cron in its own goroutine. A job never overlaps
// with a previous run of itself.
func (t *TaskExecutor) Run() error {
	for _, job := range t.cronJobs {
		job := job
		err := t.cron.AddFunc(job.Schedule(), func() {
			t.runOnce(job)
		})
		if err != nil {
			return fmt.Errorf("failed to add task %s to cron: %w", name(job), err)
		}
		logrus.Infof("scheduled task %s: %s", name(job), job.Schedule())
	}

	for _, job := range t.jobs {
		job := job
		err := t.cron.AddFunc("@every 1s", func() {
			t.runOnce(job)
		})
		if err != nil {
			return fmt.Errorf("failed to add task %s to cron: %w", name(job), err)
		}
	}

	t.cron.Start()
	return nil
}

// runOnce runs job unless a previous run of it is still in progress.
func (t *TaskExecutor) runOnce(job Job) bool {
	t.mu.Lock()
	if t.running.Contains(job) {
		t.mu.Unlock()
		logrus.Warnf("task %s is already running", name(job))
		return false
	}
	t.running.Add(job)
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.running.Remove(job)
	}()

	job.Run()
	return true
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all tasks")
	t.cron.Stop()
}

func name(job Job) string {
	if n, ok := job.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", job)
}
