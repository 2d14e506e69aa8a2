package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/internal/eligibility"
)

// NewEligibilityService creates a new EligibilityService.
func NewEligibilityService(posts *JobPostService) *EligibilityService {
	return &EligibilityService{posts: posts, now: time.Now}
}

// EligibilityService answers age questions of candidates.
type EligibilityService struct {
	posts *JobPostService
	now   func() time.Time
}

func (s *EligibilityService) CalculateAge(ctx context.Context, request *v1.CalculateAgeRequest) (*v1.CalculateAgeResponse, error) {
	age, err := eligibility.AgeFromStrings(request.DateOfBirth, request.AsOf)
	if err != nil {
		return nil, ageError(err)
	}

	return &v1.CalculateAgeResponse{Age: age}, nil
}

// CheckEligibility checks a candidate against the age limit of a post. The
// age is taken at AsOf, else at the post's last date, else today.
func (s *EligibilityService) CheckEligibility(ctx context.Context, request *v1.CheckEligibilityRequest) (*v1.CheckEligibilityResponse, error) {
	got, err := s.posts.GetJobPost(ctx, &v1.GetJobPostRequest{ID: request.ID})
	if err != nil {
		return nil, err
	}
	post := got.JobPost

	dob, err := eligibility.ParseDate(request.DateOfBirth)
	if err != nil {
		return nil, ageError(err)
	}

	asOf := s.now().UTC()
	switch {
	case request.AsOf != "":
		asOf, err = eligibility.ParseDate(request.AsOf)
		if err != nil {
			return nil, ageError(err)
		}
	case post.ImportantDates.LastDate != nil:
		if last, err := eligibility.ParseDate(*post.ImportantDates.LastDate); err == nil {
			asOf = last
		}
	}

	age, err := eligibility.Age(dob, asOf)
	if err != nil {
		return nil, ageError(err)
	}

	eligible, reason := eligibility.Check(age, post.AgeLimit)

	return &v1.CheckEligibilityResponse{
		Age:      age,
		Eligible: eligible,
		Reason:   reason,
	}, nil
}

// ageError marks date errors as caller mistakes.
func ageError(err error) error {
	if errors.Is(err, eligibility.ErrMissingDate) ||
		errors.Is(err, eligibility.ErrInvalidDate) ||
		errors.Is(err, eligibility.ErrBirthAfterRef) {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return err
}
