package model

import (
	"encoding/json"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobPost is a job posting. The block document is stored encoded by the
// codec named in Compression; the remaining structured fields live in Meta.
type JobPost struct {
	gorm.Model
	Version      int64
	Name         string  `gorm:"not null"`
	Category     string  `gorm:"index;not null"`
	LastDate     *string `gorm:"index"` // YYYY-MM-DD, copied from Meta for the sweeper
	SyllabusURL  *string
	AdmitCardURL *string
	Meta         datatypes.JSONType[JobPostMeta]
	Blocks       []byte
	Compression  string // the compression algorithm used to encode Blocks
}

func (JobPost) TableName() string {
	return "job_posts"
}

// JobPostMeta holds the structured fields of a post that are never queried.
type JobPostMeta struct {
	PosterImage      *string            `json:"posterImage,omitempty"`
	ImportantDates   v1.ImportantDates  `json:"importantDates"`
	Fees             []v1.FeeCategory   `json:"fees"`
	AgeLimit         *v1.AgeLimit       `json:"ageLimit,omitempty"`
	Vacancies        []v1.VacancyDetail `json:"vacancies"`
	SelectionProcess *string            `json:"selectionProcess,omitempty"`
	Links            v1.Links           `json:"links"`
}

func (p *JobPost) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}

// JobPostRevision is a snapshot of a post taken before it was overwritten.
// Revisions are pruned periodically, keeping the newest few per post.
type JobPostRevision struct {
	ID          string `gorm:"primaryKey;uuid"`
	JobPostID   uint   `gorm:"index;not null"`
	Version     int64  `gorm:"not null"`
	Snapshot    []byte // encoded v1.JobPost
	Compression string
	UpdatedBy   string
	CreatedAt   time.Time
}

func (JobPostRevision) TableName() string {
	return "job_post_revisions"
}
