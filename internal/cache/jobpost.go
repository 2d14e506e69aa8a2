package cache

import (
	"context"

	v1 "github.com/emrgen/jobpost/apis/v1"
)

// JobPostCache is a read-through cache for job posts and their rendered bodies.
type JobPostCache interface {
	// GetJobPost gets a post from the cache. A miss returns nil and no error.
	GetJobPost(ctx context.Context, id uint64) (*v1.JobPost, error)
	// SetJobPost stores a post in the cache.
	SetJobPost(ctx context.Context, post *v1.JobPost) error
	// GetRendered gets a rendered body of the given post version.
	GetRendered(ctx context.Context, id uint64, version int64, format v1.RenderFormat) (string, bool, error)
	// SetRendered stores a rendered body of the given post version.
	SetRendered(ctx context.Context, id uint64, version int64, format v1.RenderFormat, content string) error
	// DeleteJobPost drops the post and every rendered body of it.
	DeleteJobPost(ctx context.Context, id uint64) error
}

var _ JobPostCache = (*NopJobPostCache)(nil)

// NopJobPostCache always misses.
type NopJobPostCache struct{}

func NewNopJobPostCache() *NopJobPostCache {
	return &NopJobPostCache{}
}

func (n *NopJobPostCache) GetJobPost(ctx context.Context, id uint64) (*v1.JobPost, error) {
	return nil, nil
}

func (n *NopJobPostCache) SetJobPost(ctx context.Context, post *v1.JobPost) error {
	return nil
}

func (n *NopJobPostCache) GetRendered(ctx context.Context, id uint64, version int64, format v1.RenderFormat) (string, bool, error) {
	return "", false, nil
}

func (n *NopJobPostCache) SetRendered(ctx context.Context, id uint64, version int64, format v1.RenderFormat, content string) error {
	return nil
}

func (n *NopJobPostCache) DeleteJobPost(ctx context.Context, id uint64) error {
	return nil
}
