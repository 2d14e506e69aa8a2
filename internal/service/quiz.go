package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/internal/model"
	"github.com/emrgen/jobpost/internal/store"
	"github.com/sirupsen/logrus"
)

// NewQuizService creates a new QuizService.
func NewQuizService(store store.Store) *QuizService {
	return &QuizService{store: store, now: time.Now}
}

// QuizService publishes the quiz of the day. Only one quiz is live at a time.
type QuizService struct {
	store store.Store
	now   func() time.Time
}

func (s *QuizService) PublishDailyQuiz(ctx context.Context, request *v1.PublishDailyQuizRequest) (*v1.GetDailyQuizResponse, error) {
	required := []struct{ name, value string }{
		{"question", request.Question},
		{"optionA", request.OptionA},
		{"optionB", request.OptionB},
		{"optionC", request.OptionC},
		{"optionD", request.OptionD},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidArgument, field.name)
		}
	}
	if !request.CorrectAnswer.Valid() {
		return nil, fmt.Errorf("%w: correct answer must be one of A, B, C, D", ErrInvalidArgument)
	}

	quiz := &model.DailyQuiz{
		Question:      request.Question,
		OptionA:       request.OptionA,
		OptionB:       request.OptionB,
		OptionC:       request.OptionC,
		OptionD:       request.OptionD,
		CorrectAnswer: string(request.CorrectAnswer),
		Explanation:   request.Explanation,
		PublishedAt:   s.now().UTC(),
	}
	if err := s.store.SaveDailyQuiz(ctx, quiz); err != nil {
		return nil, err
	}
	logrus.Infof("published daily quiz at %v", quiz.PublishedAt)

	return &v1.GetDailyQuizResponse{Quiz: toDailyQuiz(quiz)}, nil
}

// GetDailyQuiz returns the live quiz. Quiz is nil when nothing is published.
func (s *QuizService) GetDailyQuiz(ctx context.Context) (*v1.GetDailyQuizResponse, error) {
	quiz, err := s.store.GetDailyQuiz(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return &v1.GetDailyQuizResponse{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &v1.GetDailyQuizResponse{Quiz: toDailyQuiz(quiz)}, nil
}

func (s *QuizService) ClearDailyQuiz(ctx context.Context) error {
	return s.store.DeleteDailyQuiz(ctx)
}

func toDailyQuiz(quiz *model.DailyQuiz) *v1.DailyQuiz {
	return &v1.DailyQuiz{
		Question:      quiz.Question,
		OptionA:       quiz.OptionA,
		OptionB:       quiz.OptionB,
		OptionC:       quiz.OptionC,
		OptionD:       quiz.OptionD,
		CorrectAnswer: v1.Answer(quiz.CorrectAnswer),
		Explanation:   quiz.Explanation,
		PublishedAt:   quiz.PublishedAt,
	}
}
