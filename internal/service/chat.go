package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/internal/cache"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const (
	// ChatPromptPrefix asks the model to answer in Hindi.
	ChatPromptPrefix = "Answer this in Hindi: "
	// DefaultChatModel is used when no model is configured.
	DefaultChatModel = "gemini-2.0-flash"

	chatAnswerTTL = 6 * time.Hour
)

// Generator produces a text answer for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var _ Generator = (*GenAIGenerator)(nil)

// GenAIGenerator generates answers with Google's Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a Gemini backed generator.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, ErrChatNotConfigured
	}

	if model == "" {
		model = DefaultChatModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIGenerator{client: client, model: model}, nil
}

func (g *GenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return resp.Text(), nil
}

// NewChatService creates a ChatService. A nil generator leaves chat disabled.
func NewChatService(gen Generator, kv cache.KV) *ChatService {
	if kv == nil {
		kv = cache.NopKV{}
	}
	return &ChatService{gen: gen, kv: kv}
}

// ChatService answers visitor questions with a generative model. Answers to
// identical questions are cached for a few hours.
type ChatService struct {
	gen Generator
	kv  cache.KV
}

func (s *ChatService) Ask(ctx context.Context, request *v1.AskRequest) (*v1.AskResponse, error) {
	if s.gen == nil {
		return nil, ErrChatNotConfigured
	}

	question := strings.TrimSpace(request.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidArgument)
	}

	key := chatKey(question)
	var cached string
	ok, err := s.kv.Get(ctx, key, &cached)
	if err != nil {
		logrus.Warnf("chat cache read failed: %v", err)
	}
	if ok && cached != "" {
		return &v1.AskResponse{Answer: cached}, nil
	}

	answer, err := s.gen.Generate(ctx, ChatPromptPrefix+question)
	if err != nil {
		logrus.Errorf("chat generation failed: %v", err)
		return nil, err
	}

	if err := s.kv.Set(ctx, key, answer, chatAnswerTTL); err != nil {
		logrus.Warnf("chat cache write failed: %v", err)
	}

	return &v1.AskResponse{Answer: answer}, nil
}

// chatKey names the cached answer of a question, ignoring case.
func chatKey(question string) string {
	return "chat:answer:" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(question))).String()
}
