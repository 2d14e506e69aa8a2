package service

import (
	"context"
	"testing"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/block"
	"github.com/emrgen/jobpost/block/editor"
	"github.com/emrgen/jobpost/internal/cache"
	"github.com/emrgen/jobpost/internal/compress"
	"github.com/emrgen/jobpost/internal/module"
	"github.com/emrgen/jobpost/internal/queue"
	"github.com/emrgen/jobpost/internal/store"
	"github.com/emrgen/jobpost/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobPostService(codec compress.Compress) *JobPostService {
	tester.ResetDB()
	return NewJobPostService(codec, store.NewGormStore(tester.TestDB()), cache.NewNopJobPostCache(), queue.NewLocalJobPostQueue())
}

func sampleInput(name string, category v1.Category) v1.JobPostInput {
	return v1.JobPostInput{
		Name:     name,
		Category: category,
		ImportantDates: v1.ImportantDates{
			ApplicationBegin: block.String("2024-06-01"),
			LastDate:         block.String("2024-06-30"),
		},
		Fees:      []v1.FeeCategory{{Name: "General", Amount: "100"}},
		Vacancies: []v1.VacancyDetail{{PostName: "Clerk", Eligibility: "Graduate", TotalPosts: 120}},
		Links:     v1.Links{ApplyOnline: block.String("https://example.gov.in/apply")},
		Blocks: block.Document{
			block.Title{Text: "Notice", IsMainHeading: true},
			block.Paragraph{Text: "Apply before the last date."},
			block.Link{LinkText: "Apply", URL: "https://example.gov.in/apply"},
			block.Table{Rows: [][]string{{"Post", "Seats"}, {"Clerk", "120"}}},
		},
	}
}

func TestJobPostService_CreateJobPost(t *testing.T) {
	tests := []struct {
		name  string
		codec compress.Compress
	}{
		{name: "nop", codec: compress.NewNop()},
		{name: "gzip", codec: compress.NewGZip()},
		{name: "brotli", codec: compress.NewBrotli()},
		{name: "lz4", codec: compress.NewLZ4()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.TODO()
			svc := newJobPostService(tt.codec)
			in := sampleInput("SSC CGL", v1.CategoryLatestJobs)

			res, err := svc.CreateJobPost(ctx, &v1.CreateJobPostRequest{JobPostInput: in})
			require.NoError(t, err)
			assert.NotZero(t, res.JobPost.ID)
			assert.Equal(t, int64(0), res.JobPost.Version)

			got, err := svc.GetJobPost(ctx, &v1.GetJobPostRequest{ID: res.JobPost.ID})
			require.NoError(t, err)
			assert.Equal(t, in.Name, got.JobPost.Name)
			assert.Equal(t, in.Category, got.JobPost.Category)
			assert.Equal(t, in.Fees, got.JobPost.Fees)
			assert.Equal(t, in.Vacancies, got.JobPost.Vacancies)
			assert.Equal(t, in.ImportantDates, got.JobPost.ImportantDates)
			assert.Equal(t, in.Blocks, got.JobPost.Blocks)
		})
	}
}

func TestJobPostService_CreateJobPost_Invalid(t *testing.T) {
	svc := newJobPostService(compress.NewNop())

	noName := sampleInput("  ", v1.CategoryLatestJobs)
	badCategory := sampleInput("x", v1.Category("archived"))
	emptyTable := sampleInput("x", v1.CategoryResults)
	emptyTable.Blocks = block.Document{block.Table{Rows: [][]string{}}}
	min, max := int64(30), int64(18)
	badAge := sampleInput("x", v1.CategoryResults)
	badAge.AgeLimit = &v1.AgeLimit{MinAge: &min, MaxAge: &max}

	for _, in := range []v1.JobPostInput{noName, badCategory, emptyTable, badAge} {
		_, err := svc.CreateJobPost(context.TODO(), &v1.CreateJobPostRequest{JobPostInput: in})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestJobPostService_GetJobPost_NotFound(t *testing.T) {
	svc := newJobPostService(compress.NewNop())
	_, err := svc.GetJobPost(context.TODO(), &v1.GetJobPostRequest{ID: 9999})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobPostService_ListJobPosts(t *testing.T) {
	ctx := context.TODO()
	svc := newJobPostService(compress.NewGZip())

	latest := sampleInput("Latest", v1.CategoryLatestJobs)
	result := sampleInput("Result", v1.CategoryResults)
	admit := sampleInput("Admit", v1.CategoryAdmitCards)
	withAdmitURL := sampleInput("Latest with admit card", v1.CategoryLatestJobs)
	withAdmitURL.AdmitCardURL = block.String("https://example.gov.in/admit")
	withSyllabus := sampleInput("Syllabus", v1.CategoryResults)
	withSyllabus.SyllabusURL = block.String("https://example.gov.in/syllabus.pdf")
	blankSyllabus := sampleInput("Blank syllabus", v1.CategoryResults)
	blankSyllabus.SyllabusURL = block.String("")

	for _, in := range []v1.JobPostInput{latest, result, admit, withAdmitURL, withSyllabus, blankSyllabus} {
		_, err := svc.CreateJobPost(ctx, &v1.CreateJobPostRequest{JobPostInput: in})
		require.NoError(t, err)
	}

	all, err := svc.ListJobPosts(ctx, &v1.ListJobPostsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.JobPosts, 6)

	category := v1.CategoryLatestJobs
	latestOnly, err := svc.ListJobPosts(ctx, &v1.ListJobPostsRequest{Category: &category})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Latest", "Latest with admit card"}, names(latestOnly.JobPosts))

	admits, err := svc.ListAdmitCardPosts(ctx, &v1.ListAdmitCardPostsRequest{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Admit", "Latest with admit card"}, names(admits.JobPosts))

	syllabus, err := svc.ListSyllabusRepository(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Syllabus"}, names(syllabus.JobPosts))

	bad := v1.Category("archived")
	_, err = svc.ListJobPosts(ctx, &v1.ListJobPostsRequest{Category: &bad})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	summaries, err := svc.ListJobPostSummaries(ctx, &v1.ListJobPostsRequest{Category: &category})
	require.NoError(t, err)
	require.Len(t, summaries.Summaries, 2)
	assert.Equal(t, "Notice Apply before the last date.", summaries.Summaries[0].Snippet)

	named, err := svc.ListJobPosts(ctx, &v1.ListJobPostsRequest{Category: &category, Query: "ADMIT"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Latest with admit card"}, names(named.JobPosts))

	admits, err = svc.ListAdmitCardPosts(ctx, &v1.ListAdmitCardPostsRequest{Query: "latest"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Latest with admit card"}, names(admits.JobPosts))
}

func names(posts []*v1.JobPost) []string {
	res := make([]string, 0, len(posts))
	for _, p := range posts {
		res = append(res, p.Name)
	}
	return res
}

func TestJobPostService_UpdateJobPost(t *testing.T) {
	ctx := module.WithSubject(context.TODO(), "editor@example.com")
	svc := newJobPostService(compress.NewGZip())

	created, err := svc.CreateJobPost(ctx, &v1.CreateJobPostRequest{JobPostInput: sampleInput("Draft", v1.CategoryLatestJobs)})
	require.NoError(t, err)
	id := created.JobPost.ID

	in := sampleInput("Final", v1.CategoryResults)
	in.Blocks = block.Document{block.Paragraph{Text: "Result declared"}}
	updated, err := svc.UpdateJobPost(ctx, &v1.UpdateJobPostRequest{ID: id, JobPostInput: in})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.JobPost.Version)
	assert.Equal(t, "Final", updated.JobPost.Name)
	assert.Equal(t, in.Blocks, updated.JobPost.Blocks)

	// stale version
	_, err = svc.UpdateJobPost(ctx, &v1.UpdateJobPostRequest{ID: id, Version: 5, JobPostInput: in})
	assert.ErrorIs(t, err, ErrVersionConflict)

	// matching version
	_, err = svc.UpdateJobPost(ctx, &v1.UpdateJobPostRequest{ID: id, Version: 1, JobPostInput: in})
	require.NoError(t, err)

	revisions, err := svc.ListJobPostRevisions(ctx, &v1.GetJobPostRequest{ID: id})
	require.NoError(t, err)
	require.Len(t, revisions.Revisions, 2)
	assert.Equal(t, int64(1), revisions.Revisions[0].Version)
	assert.Equal(t, int64(0), revisions.Revisions[1].Version)
	assert.Equal(t, "Draft", revisions.Revisions[1].JobPost.Name)

	_, err = svc.UpdateJobPost(ctx, &v1.UpdateJobPostRequest{ID: 9999, JobPostInput: in})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobPostService_RestoreJobPostRevision(t *testing.T) {
	ctx := context.TODO()
	svc := newJobPostService(compress.NewLZ4())

	created, err := svc.CreateJobPost(ctx, &v1.CreateJobPostRequest{JobPostInput: sampleInput("Original", v1.CategoryLatestJobs)})
	require.NoError(t, err)
	id := created.JobPost.ID

	_, err = svc.UpdateJobPost(ctx, &v1.UpdateJobPostRequest{ID: id, JobPostInput: sampleInput("Changed", v1.CategoryLatestJobs)})
	require.NoError(t, err)

	restored, err := svc.RestoreJobPostRevision(ctx, &v1.RestoreJobPostRevisionRequest{ID: id, Version: 0})
	require.NoError(t, err)
	assert.Equal(t, "Original", restored.JobPost.Name)
	assert.Equal(t, int64(2), restored.JobPost.Version)
	assert.Equal(t, created.JobPost.Blocks, restored.JobPost.Blocks)

	// the overwritten state is kept
	revisions, err := svc.ListJobPostRevisions(ctx, &v1.GetJobPostRequest{ID: id})
	require.NoError(t, err)
	assert.Len(t, revisions.Revisions, 2)
	assert.Equal(t, "Changed", revisions.Revisions[0].JobPost.Name)

	_, err = svc.RestoreJobPostRevision(ctx, &v1.RestoreJobPostRevisionRequest{ID: id, Version: 42})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobPostService_DeleteJobPost(t *testing.T) {
	ctx := context.TODO()
	svc := newJobPostService(compress.NewNop())

	created, err := svc.CreateJobPost(ctx, &v1.CreateJobPostRequest{JobPostInput: sampleInput("Gone", v1.CategoryLatestJobs)})
	require.NoError(t, err)
	id := created.JobPost.ID
	_, err = svc.UpdateJobPost(ctx, &v1.UpdateJobPostRequest{ID: id, JobPostInput: sampleInput("Gone", v1.CategoryLatestJobs)})
	require.NoError(t, err)

	res, err := svc.DeleteJobPost(ctx, &v1.DeleteJobPostRequest{ID: id})
	require.NoError(t, err)
	assert.Equal(t, id, res.ID)

	_, err = svc.GetJobPost(ctx, &v1.GetJobPostRequest{ID: id})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.DeleteJobPost(ctx, &v1.DeleteJobPostRequest{ID: id})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobPostService_DeleteJobPost_PublishesChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tester.ResetDB()
	q := queue.NewLocalJobPostQueue()
	changes, err := q.Subscribe(ctx)
	require.NoError(t, err)
	svc := NewJobPostService(compress.NewNop(), store.NewGormStore(tester.TestDB()), cache.NewNopJobPostCache(), q)

	created, err := svc.CreateJobPost(ctx, &v1.CreateJobPostRequest{JobPostInput: sampleInput("Gone", v1.CategoryLatestJobs)})
	require.NoError(t, err)
	_, err = svc.DeleteJobPost(ctx, &v1.DeleteJobPostRequest{ID: created.JobPost.ID})
	require.NoError(t, err)

	select {
	case change := <-changes:
		assert.Equal(t, created.JobPost.ID, change.ID)
		assert.Equal(t, queue.ChangeDeleted, change.Kind)
	case <-time.After(time.Second):
		t.Fatal("change not published")
	}
}

func TestJobPostService_RenderJobPost(t *testing.T) {
	ctx := context.TODO()
	svc := newJobPostService(compress.NewGZip())

	in := sampleInput("Render", v1.CategoryLatestJobs)
	in.Blocks = block.Document{
		block.Title{Text: "Heading", IsMainHeading: true},
		block.Link{LinkText: "Soon", URL: ""},
	}
	created, err := svc.CreateJobPost(ctx, &v1.CreateJobPostRequest{JobPostInput: in})
	require.NoError(t, err)

	html, err := svc.RenderJobPost(ctx, &v1.RenderJobPostRequest{ID: created.JobPost.ID})
	require.NoError(t, err)
	assert.Equal(t, v1.RenderFormatHTML, html.Format)
	assert.Contains(t, html.Content, `<h2 class="block-title">Heading</h2>`)
	assert.Contains(t, html.Content, "Link Activate Soon")

	md, err := svc.RenderJobPost(ctx, &v1.RenderJobPostRequest{ID: created.JobPost.ID, Format: v1.RenderFormatMarkdown})
	require.NoError(t, err)
	assert.Equal(t, "## Heading\n\nSoon (Link Activate Soon)", md.Content)

	_, err = svc.RenderJobPost(ctx, &v1.RenderJobPostRequest{ID: created.JobPost.ID, Format: "pdf"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.RenderJobPost(ctx, &v1.RenderJobPostRequest{ID: 9999})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobPostService_RenderBlocks(t *testing.T) {
	svc := newJobPostService(compress.NewNop())

	res, err := svc.RenderBlocks(context.TODO(), &v1.RenderBlocksRequest{})
	require.NoError(t, err)
	assert.Equal(t, "", res.Content)

	res, err = svc.RenderBlocks(context.TODO(), &v1.RenderBlocksRequest{
		Blocks: block.Document{block.Paragraph{Text: "a"}},
		Format: v1.RenderFormatMarkdown,
	})
	require.NoError(t, err)
	assert.Equal(t, "a", res.Content)
}

func TestJobPostService_ApplyBlockOps(t *testing.T) {
	svc := newJobPostService(compress.NewNop())

	res, err := svc.ApplyBlockOps(context.TODO(), &v1.ApplyBlockOpsRequest{
		Ops: []editor.Op{
			{Op: editor.OpInsert, Kind: block.KindTitle},
			{Op: editor.OpInsert, Kind: block.KindParagraph},
			{Op: editor.OpMoveUp, Index: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Blocks, 2)
	assert.Equal(t, block.KindParagraph, res.Blocks[0].Kind())
	assert.Equal(t, block.KindTitle, res.Blocks[1].Kind())

	_, err = svc.ApplyBlockOps(context.TODO(), &v1.ApplyBlockOpsRequest{
		Ops: []editor.Op{{Op: editor.OpDelete, Index: 3}},
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestJobPostService_CloseExpiredJobPosts(t *testing.T) {
	ctx := context.TODO()
	svc := newJobPostService(compress.NewNop())

	expired := sampleInput("Expired", v1.CategoryLatestJobs)
	expired.ImportantDates.LastDate = block.String("2024-06-30")
	open := sampleInput("Open", v1.CategoryLatestJobs)
	open.ImportantDates.LastDate = block.String("2024-07-01")
	undated := sampleInput("Undated", v1.CategoryLatestJobs)
	undated.ImportantDates.LastDate = block.String("to be announced")
	result := sampleInput("Result", v1.CategoryResults)
	result.ImportantDates.LastDate = block.String("2020-01-01")

	for _, in := range []v1.JobPostInput{expired, open, undated, result} {
		_, err := svc.CreateJobPost(ctx, &v1.CreateJobPostRequest{JobPostInput: in})
		require.NoError(t, err)
	}

	today := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	moved, err := svc.CloseExpiredJobPosts(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), moved)

	closed := v1.CategoryClosedPosts
	list, err := svc.ListJobPosts(ctx, &v1.ListJobPostsRequest{Category: &closed})
	require.NoError(t, err)
	assert.Equal(t, []string{"Expired"}, names(list.JobPosts))

	moved, err = svc.CloseExpiredJobPosts(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(0), moved)
}

func TestJobPostService_PruneRevisions(t *testing.T) {
	ctx := context.TODO()
	svc := newJobPostService(compress.NewNop())

	created, err := svc.CreateJobPost(ctx, &v1.CreateJobPostRequest{JobPostInput: sampleInput("Busy", v1.CategoryLatestJobs)})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := svc.UpdateJobPost(ctx, &v1.UpdateJobPostRequest{ID: created.JobPost.ID, JobPostInput: sampleInput("Busy", v1.CategoryLatestJobs)})
		require.NoError(t, err)
	}

	removed, err := svc.PruneRevisions(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	revisions, err := svc.ListJobPostRevisions(ctx, &v1.GetJobPostRequest{ID: created.JobPost.ID})
	require.NoError(t, err)
	require.Len(t, revisions.Revisions, 2)
	assert.Equal(t, int64(4), revisions.Revisions[0].Version)
	assert.Equal(t, int64(3), revisions.Revisions[1].Version)
}
