package service

import (
	"context"
	"fmt"
	"strings"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/block"
	"github.com/emrgen/jobpost/internal/model"
	"github.com/emrgen/jobpost/internal/store"
	"github.com/sirupsen/logrus"
)

// NewSimpleJobService creates a new SimpleJobService.
func NewSimpleJobService(store store.Store) *SimpleJobService {
	return &SimpleJobService{store: store}
}

// SimpleJobService manages the one line job notices of the regional lists.
// Notices have no blocks; a notice that needs details becomes a job post.
type SimpleJobService struct {
	store store.Store
}

func validateSimpleJob(in *v1.SimpleJobInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if !in.Region.Valid() {
		return fmt.Errorf("%w: unknown region %q", ErrInvalidArgument, in.Region)
	}
	link := strings.TrimSpace(in.NotificationLink)
	if link != "" && !block.SafeURL(link) {
		return fmt.Errorf("%w: invalid notification link %q", ErrInvalidArgument, link)
	}
	return nil
}

func (s *SimpleJobService) CreateSimpleJob(ctx context.Context, in *v1.SimpleJobInput) (*v1.SimpleJob, error) {
	if err := validateSimpleJob(in); err != nil {
		return nil, err
	}

	job := &model.SimpleJob{
		Title:            strings.TrimSpace(in.Title),
		Region:           string(in.Region),
		LastDate:         strings.TrimSpace(in.LastDate),
		NotificationLink: strings.TrimSpace(in.NotificationLink),
	}
	if err := s.store.CreateSimpleJob(ctx, job); err != nil {
		return nil, err
	}
	logrus.Infof("created simple job id: %v", job.ID)

	return toSimpleJob(job), nil
}

// ListSimpleJobs lists notices newest first, optionally only those of region.
func (s *SimpleJobService) ListSimpleJobs(ctx context.Context, region *v1.Region) (*v1.ListSimpleJobsResponse, error) {
	var filter *string
	if region != nil {
		if !region.Valid() {
			return nil, fmt.Errorf("%w: unknown region %q", ErrInvalidArgument, *region)
		}
		r := string(*region)
		filter = &r
	}

	jobs, err := s.store.ListSimpleJobs(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := &v1.ListSimpleJobsResponse{Jobs: make([]*v1.SimpleJob, 0, len(jobs))}
	for _, job := range jobs {
		res.Jobs = append(res.Jobs, toSimpleJob(job))
	}
	return res, nil
}

func (s *SimpleJobService) DeleteSimpleJob(ctx context.Context, id uint64) error {
	return s.store.DeleteSimpleJob(ctx, uint(id))
}

func toSimpleJob(job *model.SimpleJob) *v1.SimpleJob {
	return &v1.SimpleJob{
		ID:               uint64(job.ID),
		Title:            job.Title,
		Region:           v1.Region(job.Region),
		LastDate:         job.LastDate,
		NotificationLink: job.NotificationLink,
		Status:           Status(job.NotificationLink),
	}
}
