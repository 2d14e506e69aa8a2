// Package v1 is the typed request/response contract of the job post service.
package v1

import (
	"time"

	"github.com/emrgen/jobpost/block"
	"github.com/emrgen/jobpost/block/editor"
)

// Category groups job posts on the home feed.
type Category string

const (
	CategoryLatestJobs  Category = "latestJobs"
	CategoryResults     Category = "results"
	CategoryClosedPosts Category = "closedPosts"
	CategoryAdmitCards  Category = "admitCards"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryLatestJobs, CategoryResults, CategoryClosedPosts, CategoryAdmitCards:
		return true
	}
	return false
}

type ImportantDates struct {
	ApplicationBegin   *string `json:"applicationBegin,omitempty"`
	LastDate           *string `json:"lastDate,omitempty"`
	FeePaymentLastDate *string `json:"feePaymentLastDate,omitempty"`
	ExamDate           *string `json:"examDate,omitempty"`
}

type FeeCategory struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type AgeLimit struct {
	MinAge     *int64  `json:"minAge,omitempty"`
	MaxAge     *int64  `json:"maxAge,omitempty"`
	Relaxation bool    `json:"relaxation"`
	Notes      *string `json:"notes,omitempty"`
}

type VacancyDetail struct {
	PostName    string `json:"postName"`
	Eligibility string `json:"eligibility"`
	TotalPosts  int64  `json:"totalPosts"`
}

type Links struct {
	ApplyOnline     *string `json:"applyOnline,omitempty"`
	Notification    *string `json:"notification,omitempty"`
	OfficialWebsite *string `json:"officialWebsite,omitempty"`
}

// JobPost is a job posting together with its block document body.
type JobPost struct {
	ID               uint64          `json:"id"`
	Name             string          `json:"name"`
	PosterImage      *string         `json:"posterImage,omitempty"`
	ImportantDates   ImportantDates  `json:"importantDates"`
	Fees             []FeeCategory   `json:"fees"`
	AgeLimit         *AgeLimit       `json:"ageLimit,omitempty"`
	Vacancies        []VacancyDetail `json:"vacancies"`
	SelectionProcess *string         `json:"selectionProcess,omitempty"`
	SyllabusURL      *string         `json:"syllabusUrl,omitempty"`
	AdmitCardURL     *string         `json:"admitCardUrl,omitempty"`
	Category         Category        `json:"category"`
	Links            Links           `json:"links"`
	Blocks           block.Document  `json:"blocks"`
	Version          int64           `json:"version"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// JobPostInput is the editable part of a job post, sent on create and update.
type JobPostInput struct {
	Name             string          `json:"name"`
	PosterImage      *string         `json:"posterImage,omitempty"`
	ImportantDates   ImportantDates  `json:"importantDates"`
	Fees             []FeeCategory   `json:"fees"`
	AgeLimit         *AgeLimit       `json:"ageLimit,omitempty"`
	Vacancies        []VacancyDetail `json:"vacancies"`
	SelectionProcess *string         `json:"selectionProcess,omitempty"`
	SyllabusURL      *string         `json:"syllabusUrl,omitempty"`
	AdmitCardURL     *string         `json:"admitCardUrl,omitempty"`
	Category         Category        `json:"category"`
	Links            Links           `json:"links"`
	Blocks           block.Document  `json:"blocks"`
}

// JobPostSummary is a listing card.
type JobPostSummary struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	LastDate  *string   `json:"lastDate,omitempty"`
	Snippet   string    `json:"snippet"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateJobPostRequest struct {
	JobPostInput
}

type CreateJobPostResponse struct {
	JobPost *JobPost `json:"jobPost"`
}

type GetJobPostRequest struct {
	ID uint64 `json:"id"`
}

type GetJobPostResponse struct {
	JobPost *JobPost `json:"jobPost"`
}

type ListJobPostsRequest struct {
	// Category filters the listing; nil lists every post.
	Category *Category `json:"category,omitempty"`
	// Query keeps posts whose name contains it, ignoring case.
	Query string `json:"q,omitempty"`
}

type ListAdmitCardPostsRequest struct {
	Query string `json:"q,omitempty"`
}

type ListJobPostsResponse struct {
	JobPosts []*JobPost `json:"jobPosts"`
}

type UpdateJobPostRequest struct {
	ID uint64 `json:"id"`
	// Version, when set, must match the stored version or the update is rejected.
	Version int64 `json:"version,omitempty"`
	JobPostInput
}

type ListJobPostSummariesResponse struct {
	Summaries []*JobPostSummary `json:"summaries"`
}

type UpdateJobPostResponse struct {
	JobPost *JobPost `json:"jobPost"`
}

type DeleteJobPostRequest struct {
	ID uint64 `json:"id"`
}

type DeleteJobPostResponse struct {
	ID uint64 `json:"id"`
}

// RenderFormat selects the renderer used for a post body.
type RenderFormat string

const (
	RenderFormatHTML     RenderFormat = "html"
	RenderFormatMarkdown RenderFormat = "markdown"
)

type RenderJobPostRequest struct {
	ID     uint64       `json:"id"`
	Format RenderFormat `json:"format"`
}

type RenderJobPostResponse struct {
	ID      uint64       `json:"id"`
	Format  RenderFormat `json:"format"`
	Content string       `json:"content"`
}

type RenderBlocksRequest struct {
	Blocks block.Document `json:"blocks"`
	Format RenderFormat   `json:"format"`
}

type RenderBlocksResponse struct {
	Format  RenderFormat `json:"format"`
	Content string       `json:"content"`
}

type ApplyBlockOpsRequest struct {
	Blocks block.Document `json:"blocks"`
	Ops    []editor.Op    `json:"ops"`
}

type ApplyBlockOpsResponse struct {
	Blocks block.Document `json:"blocks"`
}

// JobPostRevision is a snapshot of a post taken before an update.
type JobPostRevision struct {
	ID        string    `json:"id"`
	JobPostID uint64    `json:"jobPostId"`
	Version   int64     `json:"version"`
	JobPost   *JobPost  `json:"jobPost"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListJobPostRevisionsResponse struct {
	Revisions []*JobPostRevision `json:"revisions"`
}

type RestoreJobPostRevisionRequest struct {
	ID      uint64 `json:"id"`
	Version int64  `json:"version"`
}
