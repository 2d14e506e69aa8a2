package service

import (
	"context"
	"errors"
	"testing"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	prompts []string
	answer  string
	err     error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

type memoryKV map[string]string

func (m memoryKV) Get(ctx context.Context, k string, v any) (bool, error) {
	s, ok := m[k]
	if ok {
		*(v.(*string)) = s
	}
	return ok, nil
}

func (m memoryKV) Set(ctx context.Context, k string, v any, ttl time.Duration) error {
	m[k] = v.(string)
	return nil
}

func TestChatService_Ask(t *testing.T) {
	gen := &fakeGenerator{answer: "नमस्ते"}
	svc := NewChatService(gen, memoryKV{})

	res, err := svc.Ask(context.TODO(), &v1.AskRequest{Question: " What is SSC? "})
	require.NoError(t, err)
	assert.Equal(t, "नमस्ते", res.Answer)
	assert.Equal(t, []string{"Answer this in Hindi: What is SSC?"}, gen.prompts)

	// answered from the cache
	res, err = svc.Ask(context.TODO(), &v1.AskRequest{Question: "what is ssc?"})
	require.NoError(t, err)
	assert.Equal(t, "नमस्ते", res.Answer)
	assert.Len(t, gen.prompts, 1)

	_, err = svc.Ask(context.TODO(), &v1.AskRequest{Question: "  "})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestChatService_Errors(t *testing.T) {
	_, err := NewChatService(nil, nil).Ask(context.TODO(), &v1.AskRequest{Question: "hi"})
	assert.ErrorIs(t, err, ErrChatNotConfigured)

	boom := errors.New("quota exceeded")
	_, err = NewChatService(&fakeGenerator{err: boom}, nil).Ask(context.TODO(), &v1.AskRequest{Question: "hi"})
	assert.ErrorIs(t, err, boom)

	_, err = NewGenAIGenerator(context.TODO(), "", "")
	assert.ErrorIs(t, err, ErrChatNotConfigured)
}
