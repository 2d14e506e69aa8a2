package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/block"
	"github.com/emrgen/jobpost/block/editor"
	"github.com/emrgen/jobpost/block/render"
	"github.com/emrgen/jobpost/internal/cache"
	"github.com/emrgen/jobpost/internal/compress"
	"github.com/emrgen/jobpost/internal/eligibility"
	"github.com/emrgen/jobpost/internal/model"
	"github.com/emrgen/jobpost/internal/module"
	"github.com/emrgen/jobpost/internal/queue"
	"github.com/emrgen/jobpost/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SnippetLength is the length of the plain text preview on listing cards.
const SnippetLength = 160

// NewJobPostService creates a new JobPostService.
func NewJobPostService(compress compress.Compress, store store.Store, cache cache.JobPostCache, queue queue.JobPostQueue) *JobPostService {
	return &JobPostService{
		compress: compress,
		store:    store,
		cache:    cache,
		queue:    queue,
	}
}

// JobPostService manages job posts and their block documents.
type JobPostService struct {
	compress compress.Compress
	store    store.Store
	cache    cache.JobPostCache
	queue    queue.JobPostQueue
}

// CreateJobPost creates a new job post.
func (s *JobPostService) CreateJobPost(ctx context.Context, request *v1.CreateJobPostRequest) (*v1.CreateJobPostResponse, error) {
	if err := validateInput(&request.JobPostInput); err != nil {
		return nil, err
	}

	post := &model.JobPost{}
	if err := applyInput(post, &request.JobPostInput, s.compress); err != nil {
		return nil, err
	}

	if err := s.store.CreateJobPost(ctx, post); err != nil {
		return nil, err
	}
	logrus.Infof("created job post id: %v, category: %v", post.ID, post.Category)

	res, err := toJobPost(post)
	if err != nil {
		return nil, err
	}

	return &v1.CreateJobPostResponse{JobPost: res}, nil
}

// GetJobPost retrieves a job post, reading through the cache.
func (s *JobPostService) GetJobPost(ctx context.Context, request *v1.GetJobPostRequest) (*v1.GetJobPostResponse, error) {
	cached, err := s.cache.GetJobPost(ctx, request.ID)
	if err != nil {
		logrus.Warnf("job post cache read failed for id %v: %v", request.ID, err)
	}
	if cached != nil {
		return &v1.GetJobPostResponse{JobPost: cached}, nil
	}

	post, err := s.store.GetJobPost(ctx, uint(request.ID))
	if err != nil {
		return nil, err
	}

	res, err := toJobPost(post)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJobPost(ctx, res); err != nil {
		logrus.Warnf("job post cache write failed for id %v: %v", request.ID, err)
	}

	return &v1.GetJobPostResponse{JobPost: res}, nil
}

// ListJobPosts lists job posts, newest first, optionally filtered by category
// and by a case insensitive name query.
func (s *JobPostService) ListJobPosts(ctx context.Context, request *v1.ListJobPostsRequest) (*v1.ListJobPostsResponse, error) {
	var category *string
	if request.Category != nil {
		if !request.Category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, *request.Category)
		}
		c := string(*request.Category)
		category = &c
	}

	posts, err := s.store.ListJobPosts(ctx, category, request.Query)
	if err != nil {
		return nil, err
	}

	return toListResponse(posts)
}

// ListAdmitCardPosts lists posts in the admit card category or carrying an admit card link.
func (s *JobPostService) ListAdmitCardPosts(ctx context.Context, request *v1.ListAdmitCardPostsRequest) (*v1.ListJobPostsResponse, error) {
	posts, err := s.store.ListAdmitCardPosts(ctx, string(v1.CategoryAdmitCards), request.Query)
	if err != nil {
		return nil, err
	}

	return toListResponse(posts)
}

// ListSyllabusRepository lists posts carrying a syllabus link.
func (s *JobPostService) ListSyllabusRepository(ctx context.Context) (*v1.ListJobPostsResponse, error) {
	posts, err := s.store.ListSyllabusPosts(ctx)
	if err != nil {
		return nil, err
	}

	return toListResponse(posts)
}

// ListJobPostSummaries lists listing cards with a plain text preview of the body.
func (s *JobPostService) ListJobPostSummaries(ctx context.Context, request *v1.ListJobPostsRequest) (*v1.ListJobPostSummariesResponse, error) {
	list, err := s.ListJobPosts(ctx, request)
	if err != nil {
		return nil, err
	}

	summaries := make([]*v1.JobPostSummary, 0, len(list.JobPosts))
	for _, post := range list.JobPosts {
		summaries = append(summaries, &v1.JobPostSummary{
			ID:        post.ID,
			Name:      post.Name,
			Category:  post.Category,
			LastDate:  post.ImportantDates.LastDate,
			Snippet:   render.Snippet(post.Blocks, SnippetLength),
			UpdatedAt: post.UpdatedAt,
		})
	}

	return &v1.ListJobPostSummariesResponse{Summaries: summaries}, nil
}

func toListResponse(posts []*model.JobPost) (*v1.ListJobPostsResponse, error) {
	res := make([]*v1.JobPost, 0, len(posts))
	for _, post := range posts {
		p, err := toJobPost(post)
		if err != nil {
			logrus.Errorf("skipping job post id %v: %v", post.ID, err)
			continue
		}
		res = append(res, p)
	}

	return &v1.ListJobPostsResponse{JobPosts: res}, nil
}

// UpdateJobPost replaces a job post. The previous record is kept as a revision.
func (s *JobPostService) UpdateJobPost(ctx context.Context, request *v1.UpdateJobPostRequest) (*v1.UpdateJobPostResponse, error) {
	if err := validateInput(&request.JobPostInput); err != nil {
		return nil, err
	}

	var updated *model.JobPost
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		post, err := tx.GetJobPost(ctx, uint(request.ID))
		if err != nil {
			return err
		}

		if request.Version != 0 && request.Version != post.Version {
			logrus.Infof("old version: %v, provided version: %v", post.Version, request.Version)
			return fmt.Errorf("%w: current version %d, provided version %d", ErrVersionConflict, post.Version, request.Version)
		}

		if err := s.snapshot(ctx, tx, post); err != nil {
			return err
		}

		if err := applyInput(post, &request.JobPostInput, s.compress); err != nil {
			return err
		}

		post.Version = post.Version + 1
		logrus.Infof("updating job post id: %v, version: %v", post.ID, post.Version)

		if err := tx.UpdateJobPost(ctx, post); err != nil {
			return err
		}

		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, uint64(updated.ID), updated.Version, queue.ChangeUpdated)

	res, err := toJobPost(updated)
	if err != nil {
		return nil, err
	}

	return &v1.UpdateJobPostResponse{JobPost: res}, nil
}

// snapshot stores the current state of post as a revision.
func (s *JobPostService) snapshot(ctx context.Context, tx store.Store, post *model.JobPost) error {
	current, err := toJobPost(post)
	if err != nil {
		return err
	}

	data, err := json.Marshal(current)
	if err != nil {
		return err
	}

	encoded, err := s.compress.Encode(data)
	if err != nil {
		return err
	}

	logrus.Infof("creating revision for job post id: %v, version: %v", post.ID, post.Version)

	return tx.CreateJobPostRevision(ctx, &model.JobPostRevision{
		ID:          uuid.New().String(),
		JobPostID:   post.ID,
		Version:     post.Version,
		Snapshot:    encoded,
		Compression: s.compress.Name(),
		UpdatedBy:   module.Subject(ctx),
	})
}

// DeleteJobPost deletes a job post together with its revisions.
func (s *JobPostService) DeleteJobPost(ctx context.Context, request *v1.DeleteJobPostRequest) (*v1.DeleteJobPostResponse, error) {
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.DeleteJobPost(ctx, uint(request.ID)); err != nil {
			return err
		}

		return tx.DeleteJobPostRevisions(ctx, uint(request.ID))
	})
	if err != nil {
		return nil, err
	}
	logrus.Infof("deleted job post id: %v", request.ID)

	s.publish(ctx, request.ID, 0, queue.ChangeDeleted)

	return &v1.DeleteJobPostResponse{ID: request.ID}, nil
}

// RenderJobPost renders the block document of a post.
func (s *JobPostService) RenderJobPost(ctx context.Context, request *v1.RenderJobPostRequest) (*v1.RenderJobPostResponse, error) {
	format := request.Format
	if format == "" {
		format = v1.RenderFormatHTML
	}

	renderFn, err := renderer(format)
	if err != nil {
		return nil, err
	}

	got, err := s.GetJobPost(ctx, &v1.GetJobPostRequest{ID: request.ID})
	if err != nil {
		return nil, err
	}
	post := got.JobPost

	content, ok, err := s.cache.GetRendered(ctx, post.ID, post.Version, format)
	if err != nil {
		logrus.Warnf("render cache read failed for id %v: %v", post.ID, err)
	}
	if !ok {
		content = renderFn(post.Blocks)
		if err := s.cache.SetRendered(ctx, post.ID, post.Version, format, content); err != nil {
			logrus.Warnf("render cache write failed for id %v: %v", post.ID, err)
		}
	}

	return &v1.RenderJobPostResponse{
		ID:      post.ID,
		Format:  format,
		Content: content,
	}, nil
}

// RenderBlocks renders a document that is not stored, used by editor previews.
func (s *JobPostService) RenderBlocks(ctx context.Context, request *v1.RenderBlocksRequest) (*v1.RenderBlocksResponse, error) {
	format := request.Format
	if format == "" {
		format = v1.RenderFormatHTML
	}

	renderFn, err := renderer(format)
	if err != nil {
		return nil, err
	}

	return &v1.RenderBlocksResponse{
		Format:  format,
		Content: renderFn(request.Blocks),
	}, nil
}

func renderer(format v1.RenderFormat) (func(block.Document) string, error) {
	switch format {
	case v1.RenderFormatHTML:
		return render.HTML, nil
	case v1.RenderFormatMarkdown:
		return render.Markdown, nil
	}
	return nil, fmt.Errorf("%w: unknown render format %q", ErrInvalidArgument, format)
}

// ApplyBlockOps runs editor operations on a document and returns the result.
func (s *JobPostService) ApplyBlockOps(ctx context.Context, request *v1.ApplyBlockOpsRequest) (*v1.ApplyBlockOpsResponse, error) {
	doc, err := editor.Apply(request.Blocks, request.Ops)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	if err := block.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	return &v1.ApplyBlockOpsResponse{Blocks: doc}, nil
}

// ListJobPostRevisions lists the stored revisions of a post, newest first.
func (s *JobPostService) ListJobPostRevisions(ctx context.Context, request *v1.GetJobPostRequest) (*v1.ListJobPostRevisionsResponse, error) {
	if _, err := s.store.GetJobPost(ctx, uint(request.ID)); err != nil {
		return nil, err
	}

	revisions, err := s.store.ListJobPostRevisions(ctx, uint(request.ID))
	if err != nil {
		return nil, err
	}

	res := &v1.ListJobPostRevisionsResponse{
		Revisions: make([]*v1.JobPostRevision, 0, len(revisions)),
	}
	for _, revision := range revisions {
		r, err := toRevision(revision)
		if err != nil {
			logrus.Errorf("skipping revision %v of job post %v: %v", revision.ID, revision.JobPostID, err)
			continue
		}
		res.Revisions = append(res.Revisions, r)
	}

	return res, nil
}

// RestoreJobPostRevision overwrites a post with one of its revisions. The
// overwritten state becomes a revision itself, so a restore can be undone.
func (s *JobPostService) RestoreJobPostRevision(ctx context.Context, request *v1.RestoreJobPostRevisionRequest) (*v1.UpdateJobPostResponse, error) {
	revision, err := s.store.GetJobPostRevision(ctx, uint(request.ID), request.Version)
	if err != nil {
		return nil, err
	}

	snapshot, err := toRevision(revision)
	if err != nil {
		return nil, err
	}
	logrus.Infof("restoring job post id: %v to version: %v", request.ID, request.Version)

	return s.UpdateJobPost(ctx, &v1.UpdateJobPostRequest{
		ID:           request.ID,
		JobPostInput: inputOf(snapshot.JobPost),
	})
}

func toRevision(revision *model.JobPostRevision) (*v1.JobPostRevision, error) {
	codec, err := compress.New(revision.Compression)
	if err != nil {
		return nil, err
	}

	data, err := codec.Decode(revision.Snapshot)
	if err != nil {
		return nil, err
	}

	post := &v1.JobPost{}
	if err := json.Unmarshal(data, post); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJobPostCorrupted, err)
	}

	return &v1.JobPostRevision{
		ID:        revision.ID,
		JobPostID: uint64(revision.JobPostID),
		Version:   revision.Version,
		JobPost:   post,
		CreatedAt: revision.CreatedAt,
	}, nil
}

// CloseExpiredJobPosts moves latest job posts whose last date is before today
// into closed posts and returns how many moved.
func (s *JobPostService) CloseExpiredJobPosts(ctx context.Context, today time.Time) (int64, error) {
	posts, err := s.store.ListExpiredJobPosts(ctx, string(v1.CategoryLatestJobs), today.Format(eligibility.DateLayout))
	if err != nil {
		return 0, err
	}
	if len(posts) == 0 {
		return 0, nil
	}

	ids := make([]uint, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}

	moved, err := s.store.MoveJobPosts(ctx, ids, string(v1.CategoryClosedPosts))
	if err != nil {
		return 0, err
	}

	for _, post := range posts {
		s.publish(ctx, uint64(post.ID), post.Version, queue.ChangeUpdated)
	}

	return moved, nil
}

// PruneRevisions keeps the newest keep revisions of every post.
func (s *JobPostService) PruneRevisions(ctx context.Context, keep int) (int64, error) {
	return s.store.PruneJobPostRevisions(ctx, keep)
}

// Invalidate drops a post from the local cache. It is called for changes
// published by other instances.
func (s *JobPostService) Invalidate(ctx context.Context, change *queue.Change) {
	if err := s.cache.DeleteJobPost(ctx, change.ID); err != nil {
		logrus.Warnf("job post cache invalidation failed for id %v: %v", change.ID, err)
	}
}

// publish invalidates the cache entry of a post and announces the change.
func (s *JobPostService) publish(ctx context.Context, id uint64, version int64, kind queue.ChangeKind) {
	change := &queue.Change{ID: id, Version: version, Kind: kind}
	s.Invalidate(ctx, change)

	if err := s.queue.PublishChange(ctx, change); err != nil {
		logrus.Warnf("job post change publish failed for id %v: %v", id, err)
	}
}
