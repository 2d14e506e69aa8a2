package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/emrgen/jobpost/internal/model"
	"github.com/emrgen/jobpost/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newStore() *GormStore {
	tester.ResetDB()
	return NewGormStore(tester.TestDB())
}

func createPost(t *testing.T, s *GormStore, name, category string, lastDate *string) *model.JobPost {
	post := &model.JobPost{Name: name, Category: category, LastDate: lastDate, Compression: "none"}
	require.NoError(t, s.CreateJobPost(context.TODO(), post))
	return post
}

func date(s string) *string { return &s }

func TestGormStore_NotFound(t *testing.T) {
	s := newStore()
	ctx := context.TODO()

	_, err := s.GetJobPost(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteJobPost(ctx, 42), ErrNotFound)
	assert.ErrorIs(t, s.DeleteScheme(ctx, 42), ErrNotFound)
	assert.ErrorIs(t, s.DeleteQuickLink(ctx, 42), ErrNotFound)
	assert.ErrorIs(t, s.DeleteSimpleJob(ctx, 42), ErrNotFound)
	assert.ErrorIs(t, s.DeleteHomeCard(ctx, 42), ErrNotFound)

	_, err = s.GetHomeCard(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetJobPostRevision(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetDailyQuiz(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_ListExpiredAndMove(t *testing.T) {
	s := newStore()
	ctx := context.TODO()

	old := createPost(t, s, "old", "latestJobs", date("2024-01-31"))
	createPost(t, s, "open", "latestJobs", date("2024-03-01"))
	createPost(t, s, "undated", "latestJobs", nil)
	createPost(t, s, "result", "results", date("2023-12-01"))

	expired, err := s.ListExpiredJobPosts(ctx, "latestJobs", "2024-02-15")
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, old.ID, expired[0].ID)

	moved, err := s.MoveJobPosts(ctx, []uint{old.ID}, "closedPosts")
	require.NoError(t, err)
	assert.Equal(t, int64(1), moved)

	closed := "closedPosts"
	posts, err := s.ListJobPosts(ctx, &closed, "")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "old", posts[0].Name)

	moved, err = s.MoveJobPosts(ctx, nil, "closedPosts")
	require.NoError(t, err)
	assert.Zero(t, moved)
}

func TestGormStore_ListByName(t *testing.T) {
	s := newStore()
	ctx := context.TODO()

	createPost(t, s, "SSC CGL 2024", "latestJobs", nil)
	createPost(t, s, "SSC GD Admit Card", "admitCards", nil)
	createPost(t, s, "RPSC 100% Quota", "latestJobs", nil)
	createPost(t, s, "RPSC 1000 Posts", "latestJobs", nil)
	admit := &model.JobPost{Name: "Patwari Exam", Category: "results", AdmitCardURL: date("https://example.gov.in/admit"), Compression: "none"}
	require.NoError(t, s.CreateJobPost(ctx, admit))

	latest := "latestJobs"
	tests := []struct {
		name     string
		category *string
		query    string
		want     []string
	}{
		{name: "empty query", category: &latest, query: "", want: []string{"SSC CGL 2024", "RPSC 100% Quota", "RPSC 1000 Posts"}},
		{name: "ignores case", query: "ssc", want: []string{"SSC CGL 2024", "SSC GD Admit Card"}},
		{name: "with category", category: &latest, query: "ssc", want: []string{"SSC CGL 2024"}},
		{name: "percent is literal", query: "100%", want: []string{"RPSC 100% Quota"}},
		{name: "trims spaces", query: "  patwari ", want: []string{"Patwari Exam"}},
		{name: "no match", query: "upsc", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := s.ListJobPosts(ctx, tt.category, tt.query)
			require.NoError(t, err)
			got := make([]string, 0, len(posts))
			for _, post := range posts {
				got = append(got, post.Name)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}

	admits, err := s.ListAdmitCardPosts(ctx, "admitCards", "exam")
	require.NoError(t, err)
	require.Len(t, admits, 1)
	assert.Equal(t, admit.ID, admits[0].ID)

	admits, err = s.ListAdmitCardPosts(ctx, "admitCards", "ssc")
	require.NoError(t, err)
	require.Len(t, admits, 1)
	assert.Equal(t, "SSC GD Admit Card", admits[0].Name)
}

func TestGormStore_PruneJobPostRevisions(t *testing.T) {
	s := newStore()
	ctx := context.TODO()

	first := createPost(t, s, "first", "latestJobs", nil)
	second := createPost(t, s, "second", "latestJobs", nil)

	for v := int64(0); v < 5; v++ {
		require.NoError(t, s.CreateJobPostRevision(ctx, &model.JobPostRevision{ID: uuid.NewString(), JobPostID: first.ID, Version: v}))
	}
	require.NoError(t, s.CreateJobPostRevision(ctx, &model.JobPostRevision{ID: uuid.NewString(), JobPostID: second.ID, Version: 0}))

	removed, err := s.PruneJobPostRevisions(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	revisions, err := s.ListJobPostRevisions(ctx, first.ID)
	require.NoError(t, err)
	var versions []int64
	for _, r := range revisions {
		versions = append(versions, r.Version)
	}
	assert.Equal(t, []int64{4, 3}, versions)

	revisions, err = s.ListJobPostRevisions(ctx, second.ID)
	require.NoError(t, err)
	assert.Len(t, revisions, 1)
}

func TestGormStore_Transaction(t *testing.T) {
	s := newStore()
	ctx := context.TODO()

	post := createPost(t, s, "tx", "results", nil)

	err := s.Transaction(ctx, func(tx Store) error {
		got, err := tx.GetJobPost(ctx, post.ID)
		if err != nil {
			return err
		}
		got.Name = "changed"
		if err := tx.UpdateJobPost(ctx, got); err != nil {
			return err
		}
		return fmt.Errorf("rollback")
	})
	require.EqualError(t, err, "rollback")

	got, err := s.GetJobPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "tx", got.Name)
}

func TestGormStore_DailyQuiz(t *testing.T) {
	s := newStore()
	ctx := context.TODO()

	require.NoError(t, s.SaveDailyQuiz(ctx, &model.DailyQuiz{Question: "first", CorrectAnswer: "A"}))
	require.NoError(t, s.SaveDailyQuiz(ctx, &model.DailyQuiz{Question: "second", CorrectAnswer: "C"}))

	quiz, err := s.GetDailyQuiz(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", quiz.Question)
	assert.Equal(t, "C", quiz.CorrectAnswer)

	require.NoError(t, s.DeleteDailyQuiz(ctx))
	_, err = s.GetDailyQuiz(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_QuickLinkOrder(t *testing.T) {
	s := newStore()
	ctx := context.TODO()

	require.NoError(t, s.CreateQuickLink(ctx, &model.QuickLink{Section: "studyCorner", Label: "b", Position: 2}))
	require.NoError(t, s.CreateQuickLink(ctx, &model.QuickLink{Section: "studyCorner", Label: "a", Position: 1}))
	require.NoError(t, s.CreateQuickLink(ctx, &model.QuickLink{Section: "officialLinks", Label: "c", Position: 0}))

	section := "studyCorner"
	links, err := s.ListQuickLinks(ctx, &section)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "a", links[0].Label)
	assert.Equal(t, "b", links[1].Label)

	all, err := s.ListQuickLinks(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGormStore_SimpleJobs(t *testing.T) {
	s := newStore()
	ctx := context.TODO()

	for _, job := range []*model.SimpleJob{
		{Title: "Patwari", Region: "Rajasthan"},
		{Title: "SSC GD", Region: "India"},
		{Title: "VDO", Region: "Rajasthan"},
	} {
		require.NoError(t, s.CreateSimpleJob(ctx, job))
	}

	region := "Rajasthan"
	jobs, err := s.ListSimpleJobs(ctx, &region)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "VDO", jobs[0].Title)

	all, err := s.ListSimpleJobs(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGormStore_HomeCards(t *testing.T) {
	s := newStore()
	ctx := context.TODO()

	top, err := s.MaxHomeCardPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, top)

	require.NoError(t, s.CreateHomeCard(ctx, &model.HomeCard{Category: "results", Title: "b", Position: 2}))
	require.NoError(t, s.CreateHomeCard(ctx, &model.HomeCard{Category: "results", Title: "a", Position: 1}))
	require.NoError(t, s.CreateHomeCard(ctx, &model.HomeCard{Category: "admitCards", Title: "c", Position: 3}))

	category := "results"
	cards, err := s.ListHomeCards(ctx, &category)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "a", cards[0].Title)

	top, err = s.MaxHomeCardPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, top)
}

func TestMigrate_SeedsHomeCardsOnce(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "seed.db")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	s := NewGormStore(db)
	ctx := context.TODO()

	require.NoError(t, s.Migrate())
	cards, err := s.ListHomeCards(ctx, nil)
	require.NoError(t, err)
	require.Len(t, cards, len(model.DefaultHomeCards()))
	assert.Equal(t, "Rajasthan Police Constable 2026", cards[0].Title)

	require.NoError(t, s.DeleteHomeCard(ctx, cards[0].ID))
	require.NoError(t, s.Migrate())
	cards, err = s.ListHomeCards(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, cards, len(model.DefaultHomeCards())-1)
}
