package service

import (
	"context"
	"testing"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/block"
	"github.com/emrgen/jobpost/internal/store"
	"github.com/emrgen/jobpost/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemeService(t *testing.T) {
	ctx := context.TODO()
	tester.ResetDB()
	svc := NewSchemeService(store.NewGormStore(tester.TestDB()))

	count, err := svc.CountSchemes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count.Count)

	created, err := svc.CreateScheme(ctx, &v1.SchemeInput{Name: "PM Kisan", Category: "Agriculture", Link: block.String("https://pmkisan.gov.in")})
	require.NoError(t, err)
	_, err = svc.CreateScheme(ctx, &v1.SchemeInput{Name: "Ayushman Bharat", Category: "Health"})
	require.NoError(t, err)

	_, err = svc.CreateScheme(ctx, &v1.SchemeInput{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.CreateScheme(ctx, &v1.SchemeInput{Name: "Bad", Link: block.String("javascript:alert(1)")})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	count, err = svc.CountSchemes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count.Count)

	updated, err := svc.UpdateScheme(ctx, created.ID, &v1.SchemeInput{Name: "PM Kisan Samman Nidhi", Category: "Agriculture"})
	require.NoError(t, err)
	assert.Nil(t, updated.Link)

	got, err := svc.GetScheme(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PM Kisan Samman Nidhi", got.Name)

	list, err := svc.ListSchemes(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Schemes, 2)

	require.NoError(t, svc.DeleteScheme(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteScheme(ctx, created.ID), ErrNotFound)
	_, err = svc.GetScheme(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		url  string
		want v1.LinkStatus
	}{
		{url: "", want: v1.LinkStatus{Label: "Link Activate Soon"}},
		{url: "   ", want: v1.LinkStatus{Label: "Link Activate Soon"}},
		{url: "javascript:void(0)", want: v1.LinkStatus{Label: "Link Activate Soon"}},
		{url: "https://ssc.gov.in", want: v1.LinkStatus{IsAvailable: true, Label: "Available"}},
		{url: "/syllabus", want: v1.LinkStatus{IsAvailable: true, Label: "Available"}},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.url))
		})
	}
}

func TestQuickLinkService(t *testing.T) {
	ctx := context.TODO()
	tester.ResetDB()
	svc := NewQuickLinkService(store.NewGormStore(tester.TestDB()))

	inputs := []v1.QuickLinkInput{
		{Section: v1.SectionOfficialLinks, Label: "UPSC", URL: "https://upsc.gov.in", Position: 2},
		{Section: v1.SectionOfficialLinks, Label: "SSC", URL: "https://ssc.gov.in", Position: 1, Highlighted: true},
		{Section: v1.SectionStudyCorner, Label: "Notes", URL: ""},
	}
	var ids []uint64
	for i := range inputs {
		link, err := svc.CreateQuickLink(ctx, &inputs[i])
		require.NoError(t, err)
		ids = append(ids, link.ID)
	}

	_, err := svc.CreateQuickLink(ctx, &v1.QuickLinkInput{Section: "footer", Label: "x"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.CreateQuickLink(ctx, &v1.QuickLinkInput{Section: v1.SectionStudyCorner})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	section := v1.SectionOfficialLinks
	official, err := svc.ListQuickLinks(ctx, &section)
	require.NoError(t, err)
	require.Len(t, official.Links, 2)
	assert.Equal(t, "SSC", official.Links[0].Label)
	assert.True(t, official.Links[0].Highlighted)
	assert.True(t, official.Links[0].Status.IsAvailable)

	all, err := svc.ListQuickLinks(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all.Links, 3)

	notes, err := svc.GetQuickLink(ctx, ids[2])
	require.NoError(t, err)
	assert.False(t, notes.Status.IsAvailable)
	assert.Equal(t, "Link Activate Soon", notes.Status.Label)

	notes, err = svc.UpdateQuickLink(ctx, ids[2], &v1.QuickLinkInput{Section: v1.SectionStudyCorner, Label: "Notes", URL: "https://example.com/notes"})
	require.NoError(t, err)
	assert.True(t, notes.Status.IsAvailable)

	require.NoError(t, svc.DeleteQuickLink(ctx, ids[0]))
	assert.ErrorIs(t, svc.DeleteQuickLink(ctx, ids[0]), ErrNotFound)
}

func TestQuizService(t *testing.T) {
	ctx := context.TODO()
	tester.ResetDB()
	svc := NewQuizService(store.NewGormStore(tester.TestDB()))
	now := time.Date(2024, 7, 1, 6, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	got, err := svc.GetDailyQuiz(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.Quiz)

	request := &v1.PublishDailyQuizRequest{
		Question:      "Capital of India?",
		OptionA:       "Mumbai",
		OptionB:       "New Delhi",
		OptionC:       "Kolkata",
		OptionD:       "Chennai",
		CorrectAnswer: v1.AnswerB,
		Explanation:   "New Delhi is the capital.",
	}
	published, err := svc.PublishDailyQuiz(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, now, published.Quiz.PublishedAt)

	// publishing again replaces the live quiz
	request.Question = "Largest state by area?"
	request.CorrectAnswer = v1.AnswerA
	_, err = svc.PublishDailyQuiz(ctx, request)
	require.NoError(t, err)

	got, err = svc.GetDailyQuiz(ctx)
	require.NoError(t, err)
	require.NotNil(t, got.Quiz)
	assert.Equal(t, "Largest state by area?", got.Quiz.Question)
	assert.Equal(t, v1.AnswerA, got.Quiz.CorrectAnswer)

	bad := *request
	bad.CorrectAnswer = "E"
	_, err = svc.PublishDailyQuiz(ctx, &bad)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	bad = *request
	bad.OptionC = " "
	_, err = svc.PublishDailyQuiz(ctx, &bad)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, svc.ClearDailyQuiz(ctx))
	got, err = svc.GetDailyQuiz(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.Quiz)
}

func TestSimpleJobService(t *testing.T) {
	ctx := context.TODO()
	tester.ResetDB()
	svc := NewSimpleJobService(store.NewGormStore(tester.TestDB()))

	patwari, err := svc.CreateSimpleJob(ctx, &v1.SimpleJobInput{Title: "Patwari Bharti", Region: v1.RegionRajasthan, LastDate: "15 Mar"})
	require.NoError(t, err)
	assert.False(t, patwari.Status.IsAvailable)
	assert.Equal(t, "Link Activate Soon", patwari.Status.Label)

	gd, err := svc.CreateSimpleJob(ctx, &v1.SimpleJobInput{Title: "SSC GD", Region: v1.RegionIndia, NotificationLink: "https://ssc.gov.in/gd.pdf"})
	require.NoError(t, err)
	assert.True(t, gd.Status.IsAvailable)

	_, err = svc.CreateSimpleJob(ctx, &v1.SimpleJobInput{Title: "x", Region: "Gujarat"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.CreateSimpleJob(ctx, &v1.SimpleJobInput{Region: v1.RegionIndia})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.CreateSimpleJob(ctx, &v1.SimpleJobInput{Title: "x", Region: v1.RegionIndia, NotificationLink: "javascript:alert(1)"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	region := v1.RegionRajasthan
	rajasthan, err := svc.ListSimpleJobs(ctx, &region)
	require.NoError(t, err)
	require.Len(t, rajasthan.Jobs, 1)
	assert.Equal(t, "Patwari Bharti", rajasthan.Jobs[0].Title)

	all, err := svc.ListSimpleJobs(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all.Jobs, 2)
	assert.Equal(t, gd.ID, all.Jobs[0].ID)

	bad := v1.Region("Gujarat")
	_, err = svc.ListSimpleJobs(ctx, &bad)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, svc.DeleteSimpleJob(ctx, patwari.ID))
	assert.ErrorIs(t, svc.DeleteSimpleJob(ctx, patwari.ID), ErrNotFound)
}

func TestHomeCardService(t *testing.T) {
	ctx := context.TODO()
	tester.ResetDB()
	svc := NewHomeCardService(store.NewGormStore(tester.TestDB()))

	first, err := svc.CreateHomeCard(ctx, &v1.HomeCardInput{Category: v1.CardResults, Title: "SSC GD Final Result", LastDate: "30 Feb"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Position)

	second, err := svc.CreateHomeCard(ctx, &v1.HomeCardInput{Category: v1.CardLatestJobs, Title: "SSC CGL 2026"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)

	_, err = svc.CreateHomeCard(ctx, &v1.HomeCardInput{Category: "closedPosts", Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.CreateHomeCard(ctx, &v1.HomeCardInput{Category: v1.CardResults, Title: " "})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	updated, err := svc.UpdateHomeCard(ctx, first.ID, &v1.HomeCardInput{Category: v1.CardAdmitCards, Title: "SSC GD Admit Card", LastDate: "1 Mar"})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Position)
	assert.Equal(t, v1.CardAdmitCards, updated.Category)

	category := v1.CardAdmitCards
	admits, err := svc.ListHomeCards(ctx, &category)
	require.NoError(t, err)
	require.Len(t, admits.Cards, 1)
	assert.Equal(t, "SSC GD Admit Card", admits.Cards[0].Title)

	all, err := svc.ListHomeCards(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all.Cards, 2)
	assert.Equal(t, first.ID, all.Cards[0].ID)

	_, err = svc.UpdateHomeCard(ctx, 9999, &v1.HomeCardInput{Category: v1.CardResults, Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeleteHomeCard(ctx, second.ID))
	assert.ErrorIs(t, svc.DeleteHomeCard(ctx, second.ID), ErrNotFound)
}

func TestHomeCardService_Reset(t *testing.T) {
	ctx := context.TODO()
	tester.ResetDB()
	svc := NewHomeCardService(store.NewGormStore(tester.TestDB()))

	_, err := svc.CreateHomeCard(ctx, &v1.HomeCardInput{Category: v1.CardResults, Title: "custom"})
	require.NoError(t, err)

	res, err := svc.ResetHomeCards(ctx)
	require.NoError(t, err)
	require.Len(t, res.Cards, 9)
	assert.Equal(t, "Rajasthan Police Constable 2026", res.Cards[0].Title)
	for _, card := range res.Cards {
		assert.NotEqual(t, "custom", card.Title)
	}

	results := v1.CardResults
	list, err := svc.ListHomeCards(ctx, &results)
	require.NoError(t, err)
	assert.Len(t, list.Cards, 2)
}
