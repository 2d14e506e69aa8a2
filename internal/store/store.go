package store

import (
	"context"
	"errors"

	"github.com/emrgen/jobpost/internal/model"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

type Store interface {
	JobPostStore
	JobPostRevisionStore
	SchemeStore
	QuickLinkStore
	DailyQuizStore
	SimpleJobStore
	HomeCardStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type JobPostStore interface {
	// CreateJobPost creates a new job post.
	CreateJobPost(ctx context.Context, post *model.JobPost) error
	// GetJobPost retrieves a job post by ID.
	GetJobPost(ctx context.Context, id uint) (*model.JobPost, error)
	// ListJobPosts retrieves job posts, newest first, optionally filtered by
	// category. A non empty query keeps posts whose name contains it.
	ListJobPosts(ctx context.Context, category *string, query string) ([]*model.JobPost, error)
	// ListAdmitCardPosts retrieves posts in the admit card category or carrying an admit card url.
	ListAdmitCardPosts(ctx context.Context, admitCardCategory string, query string) ([]*model.JobPost, error)
	// ListSyllabusPosts retrieves posts carrying a syllabus url.
	ListSyllabusPosts(ctx context.Context) ([]*model.JobPost, error)
	// ListExpiredJobPosts retrieves posts of a category whose last date is before the given day.
	ListExpiredJobPosts(ctx context.Context, category string, before string) ([]*model.JobPost, error)
	// UpdateJobPost overwrites a job post.
	UpdateJobPost(ctx context.Context, post *model.JobPost) error
	// MoveJobPosts changes the category of the given posts.
	MoveJobPosts(ctx context.Context, ids []uint, category string) (int64, error)
	// DeleteJobPost deletes a job post by ID.
	DeleteJobPost(ctx context.Context, id uint) error
}

type JobPostRevisionStore interface {
	// CreateJobPostRevision stores a snapshot of a post.
	CreateJobPostRevision(ctx context.Context, revision *model.JobPostRevision) error
	// ListJobPostRevisions retrieves the revisions of a post, newest first.
	ListJobPostRevisions(ctx context.Context, postID uint) ([]*model.JobPostRevision, error)
	// GetJobPostRevision retrieves the revision of a post at a version.
	GetJobPostRevision(ctx context.Context, postID uint, version int64) (*model.JobPostRevision, error)
	// DeleteJobPostRevisions deletes every revision of a post.
	DeleteJobPostRevisions(ctx context.Context, postID uint) error
	// PruneJobPostRevisions keeps the newest keep revisions of every post and
	// returns the number of revisions removed.
	PruneJobPostRevisions(ctx context.Context, keep int) (int64, error)
}

type SchemeStore interface {
	CreateScheme(ctx context.Context, scheme *model.Scheme) error
	GetScheme(ctx context.Context, id uint) (*model.Scheme, error)
	ListSchemes(ctx context.Context) ([]*model.Scheme, error)
	CountSchemes(ctx context.Context) (int64, error)
	UpdateScheme(ctx context.Context, scheme *model.Scheme) error
	DeleteScheme(ctx context.Context, id uint) error
}

type QuickLinkStore interface {
	CreateQuickLink(ctx context.Context, link *model.QuickLink) error
	GetQuickLink(ctx context.Context, id uint) (*model.QuickLink, error)
	// ListQuickLinks retrieves links ordered by position, optionally filtered by section.
	ListQuickLinks(ctx context.Context, section *string) ([]*model.QuickLink, error)
	UpdateQuickLink(ctx context.Context, link *model.QuickLink) error
	DeleteQuickLink(ctx context.Context, id uint) error
}

type DailyQuizStore interface {
	// SaveDailyQuiz replaces the published quiz.
	SaveDailyQuiz(ctx context.Context, quiz *model.DailyQuiz) error
	// GetDailyQuiz retrieves the published quiz or ErrNotFound.
	GetDailyQuiz(ctx context.Context) (*model.DailyQuiz, error)
	// DeleteDailyQuiz removes the published quiz.
	DeleteDailyQuiz(ctx context.Context) error
}

type SimpleJobStore interface {
	CreateSimpleJob(ctx context.Context, job *model.SimpleJob) error
	// ListSimpleJobs retrieves jobs, newest first, optionally filtered by region.
	ListSimpleJobs(ctx context.Context, region *string) ([]*model.SimpleJob, error)
	DeleteSimpleJob(ctx context.Context, id uint) error
}

type HomeCardStore interface {
	CreateHomeCard(ctx context.Context, card *model.HomeCard) error
	GetHomeCard(ctx context.Context, id uint) (*model.HomeCard, error)
	// ListHomeCards retrieves cards ordered by position, optionally filtered by category.
	ListHomeCards(ctx context.Context, category *string) ([]*model.HomeCard, error)
	// MaxHomeCardPosition returns the largest position in use, 0 when there are no cards.
	MaxHomeCardPosition(ctx context.Context) (int, error)
	UpdateHomeCard(ctx context.Context, card *model.HomeCard) error
	DeleteHomeCard(ctx context.Context, id uint) error
}
