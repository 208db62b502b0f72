package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/genai"
)

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeModels struct {
	mu      sync.Mutex
	queue   []fakeResponse
	models  []string
	prompts []string
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.models = append(f.models, model)
	for _, content := range contents {
		for _, part := range content.Parts {
			f.prompts = append(f.prompts, part.Text)
		}
	}

	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	return res.resp, res.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()

	var delays []time.Duration
	original := sleep
	sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	t.Cleanup(func() { sleep = original })
	return &delays
}

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	delays := stubSleep(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(nil, genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"})
	models.enqueue(textResponse("retry ok"), nil)

	core, logs := observer.New(zapcore.WarnLevel)
	g := newGenerator(models, "gemini-pro", 3, zap.New(core))

	output, err := g.GenerateContent(context.Background(), "  prompt  ")
	require.NoError(t, err)
	assert.Equal(t, "retry ok", output)

	assert.Equal(t, []string{"gemini-pro", "gemini-pro", "gemini-pro"}, models.models)
	assert.Equal(t, []string{"prompt", "prompt", "prompt"}, models.prompts)
	assert.Equal(t, []time.Duration{retryBackoff, 2 * retryBackoff}, *delays)

	retries := logs.FilterMessage("gemini request failed, retrying").All()
	require.Len(t, retries, 2)
	assert.Equal(t, "gemini", retries[0].ContextMap()["ai_provider"])
	assert.Equal(t, "gemini-pro", retries[0].ContextMap()["ai_model"])
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	stubSleep(t)

	tempErr := genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	models := &fakeModels{}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	g := newGenerator(models, "gemini-pro", 2, nil)

	_, err := g.GenerateContent(context.Background(), "prompt")
	require.Error(t, err)

	var apiErr genai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Code)
	assert.Len(t, models.models, 2)
}

func TestGeneratorDoesNotRetryClientErrors(t *testing.T) {
	delays := stubSleep(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	g := newGenerator(models, "", 5, nil)

	_, err := g.GenerateContent(context.Background(), "prompt")
	require.Error(t, err)
	assert.Len(t, models.models, 1)
	assert.Equal(t, defaultModel, models.models[0])
	assert.Empty(t, *delays)
}

func TestGeneratorStopsWhenContextDone(t *testing.T) {
	original := sleep
	t.Cleanup(func() { sleep = original })
	sleep = func(context.Context, time.Duration) error { return context.Canceled }

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError})

	_, err := newGenerator(models, "m", 3, nil).GenerateContent(context.Background(), "prompt")
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, models.models, 1)
}

func TestGeneratorJoinsParts(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(textResponse(" first ", "", "second"), nil)

	output, err := newGenerator(models, "m", 1, nil).GenerateContent(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", output)
}

func TestGeneratorEmptyResponse(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(textResponse("   "), nil)

	_, err := newGenerator(models, "m", 1, nil).GenerateContent(context.Background(), "prompt")
	require.Error(t, err)
}

func TestGeneratorRejectsEmptyPrompt(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	_, err := newGenerator(models, "m", 1, nil).GenerateContent(context.Background(), " \n ")
	require.Error(t, err)
	assert.Empty(t, models.models)

	var g *Generator
	_, err = g.GenerateContent(context.Background(), "prompt")
	require.Error(t, err)
	assert.Empty(t, g.Model())
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(context.Background(), "  ", "", 0, nil)
	require.Error(t, err)
}

func TestIsTemporary(t *testing.T) {
	t.Parallel()

	assert.True(t, isTemporary(genai.APIError{Code: http.StatusTooManyRequests}))
	assert.True(t, isTemporary(genai.APIError{Code: http.StatusBadGateway}))
	assert.False(t, isTemporary(genai.APIError{Code: http.StatusNotFound}))
	assert.False(t, isTemporary(errors.New("boom")))
}
