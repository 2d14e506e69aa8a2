package service

import (
	"encoding/json"
	"fmt"
	"strings"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/block"
	"github.com/emrgen/jobpost/internal/compress"
	"github.com/emrgen/jobpost/internal/eligibility"
	"github.com/emrgen/jobpost/internal/model"
	"gorm.io/datatypes"
)

// validateInput checks the editable fields of a post before they are stored.
func validateInput(in *v1.JobPostInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, in.Category)
	}

	if limit := in.AgeLimit; limit != nil && limit.MinAge != nil && limit.MaxAge != nil && *limit.MinAge > *limit.MaxAge {
		return fmt.Errorf("%w: minimum age %d is above maximum age %d", ErrInvalidArgument, *limit.MinAge, *limit.MaxAge)
	}

	if err := block.Validate(in.Blocks); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	return nil
}

// applyInput writes in onto post, encoding the blocks with codec.
func applyInput(post *model.JobPost, in *v1.JobPostInput, codec compress.Compress) error {
	blocks, err := json.Marshal(in.Blocks)
	if err != nil {
		return err
	}

	data, err := codec.Encode(blocks)
	if err != nil {
		return err
	}

	post.Name = strings.TrimSpace(in.Name)
	post.Category = string(in.Category)
	post.LastDate = sweepDate(in.ImportantDates.LastDate)
	post.SyllabusURL = nonEmpty(in.SyllabusURL)
	post.AdmitCardURL = nonEmpty(in.AdmitCardURL)
	post.Meta = datatypes.NewJSONType(model.JobPostMeta{
		PosterImage:      in.PosterImage,
		ImportantDates:   in.ImportantDates,
		Fees:             in.Fees,
		AgeLimit:         in.AgeLimit,
		Vacancies:        in.Vacancies,
		SelectionProcess: in.SelectionProcess,
		Links:            in.Links,
	})
	post.Blocks = data
	post.Compression = codec.Name()

	return nil
}

// toJobPost decodes a stored post. The codec is the one recorded on the row.
func toJobPost(post *model.JobPost) (*v1.JobPost, error) {
	codec, err := compress.New(post.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJobPostCorrupted, err)
	}

	blocks := block.Document{}
	if len(post.Blocks) > 0 {
		data, err := codec.Decode(post.Blocks)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrJobPostCorrupted, err)
		}

		if err := json.Unmarshal(data, &blocks); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrJobPostCorrupted, err)
		}
	}

	meta := post.Meta.Data()
	fees := meta.Fees
	if fees == nil {
		fees = []v1.FeeCategory{}
	}
	vacancies := meta.Vacancies
	if vacancies == nil {
		vacancies = []v1.VacancyDetail{}
	}

	return &v1.JobPost{
		ID:               uint64(post.ID),
		Name:             post.Name,
		PosterImage:      meta.PosterImage,
		ImportantDates:   meta.ImportantDates,
		Fees:             fees,
		AgeLimit:         meta.AgeLimit,
		Vacancies:        vacancies,
		SelectionProcess: meta.SelectionProcess,
		SyllabusURL:      post.SyllabusURL,
		AdmitCardURL:     post.AdmitCardURL,
		Category:         v1.Category(post.Category),
		Links:            meta.Links,
		Blocks:           blocks,
		Version:          post.Version,
		CreatedAt:        post.CreatedAt,
		UpdatedAt:        post.UpdatedAt,
	}, nil
}

// inputOf returns the editable part of a post.
func inputOf(post *v1.JobPost) v1.JobPostInput {
	return v1.JobPostInput{
		Name:             post.Name,
		PosterImage:      post.PosterImage,
		ImportantDates:   post.ImportantDates,
		Fees:             post.Fees,
		AgeLimit:         post.AgeLimit,
		Vacancies:        post.Vacancies,
		SelectionProcess: post.SelectionProcess,
		SyllabusURL:      post.SyllabusURL,
		AdmitCardURL:     post.AdmitCardURL,
		Category:         post.Category,
		Links:            post.Links,
		Blocks:           post.Blocks,
	}
}

// sweepDate returns the canonical last date when it is a calendar date.
// Free form dates ("to be announced") are kept in Meta only and never swept.
func sweepDate(s *string) *string {
	if s == nil {
		return nil
	}
	t, err := eligibility.ParseDate(*s)
	if err != nil {
		return nil
	}
	d := t.Format(eligibility.DateLayout)
	return &d
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
