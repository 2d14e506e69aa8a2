package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const taskTimeout = 5 * time.Minute

// PostCloser moves expired posts out of the latest jobs feed.
type PostCloser interface {
	CloseExpiredJobPosts(ctx context.Context, today time.Time) (int64, error)
}

var _ CronJob = (*ClosedPostSweeper)(nil)

// ClosedPostSweeper moves latest job posts whose last date has passed into
// closed posts.
type ClosedPostSweeper struct {
	posts    PostCloser
	schedule string
	now      func() time.Time
}

func NewClosedPostSweeper(schedule string, posts PostCloser) *ClosedPostSweeper {
	return &ClosedPostSweeper{
		posts:    posts,
		schedule: schedule,
		now:      time.Now,
	}
}

func (s *ClosedPostSweeper) Name() string {
	return "closed_post_sweeper"
}

func (s *ClosedPostSweeper) Schedule() string {
	return s.schedule
}

func (s *ClosedPostSweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	moved, err := s.posts.CloseExpiredJobPosts(ctx, s.now().UTC())
	if err != nil {
		logrus.Errorf("error closing expired job posts: %v", err)
		return
	}

	if moved > 0 {
		logrus.Infof("moved %d expired job posts to closed posts", moved)
	}
}
