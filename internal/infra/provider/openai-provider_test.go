package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"interview-coach/internal/config"
	"interview-coach/internal/domain/apperr"
	"interview-coach/internal/infra/logger"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-3.5-turbo",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestProvider(t *testing.T, handler http.HandlerFunc, mutate func(*config.LLMConfig)) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.LLMConfig{
		APIKey:       "sk-test",
		Model:        "gpt-3.5-turbo",
		BaseURL:      srv.URL + "/v1",
		Temperature:  0.7,
		Timeout:      2 * time.Second,
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	base, _ := test.NewNullLogger()
	p := NewOpenAIProvider(logger.FromLogrus(base), cfg)
	p.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	return p
}

func TestCompleteSendsPromptAsUserMessage(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, completionBody("  What is a goroutine?\n"))
	}, nil)

	text, err := p.Complete(context.Background(), "ask about go")
	require.NoError(t, err)

	assert.Equal(t, "What is a goroutine?", text)
	assert.Equal(t, "gpt-3.5-turbo", got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "ask about go", got.Messages[0].Content)
}

func TestCompleteWithoutAPIKeyIsConfigurationError(t *testing.T) {
	base, _ := test.NewNullLogger()
	p := NewOpenAIProvider(logger.FromLogrus(base), config.LLMConfig{Timeout: time.Second})

	_, err := p.Complete(context.Background(), "hi")
	assert.True(t, apperr.Is(err, apperr.KindConfiguration))
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestCompleteRetriesTransientFailures(t *testing.T) {
	var calls int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"error": map[string]any{"message": "overloaded", "type": "server_error"},
			})
			return
		}
		writeJSON(w, http.StatusOK, completionBody("third time lucky"))
	}, nil)

	text, err := p.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "third time lucky", text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestCompleteGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{"message": "rate limited", "type": "requests"},
		})
	}, func(c *config.LLMConfig) { c.MaxRetries = 1 })

	_, err := p.Complete(context.Background(), "p")
	assert.True(t, apperr.Is(err, apperr.KindProvider))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCompleteDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error": map[string]any{"message": "bad key", "type": "invalid_request_error"},
		})
	}, nil)

	_, err := p.Complete(context.Background(), "p")
	assert.True(t, apperr.Is(err, apperr.KindProvider))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCompleteTimeout(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, func(c *config.LLMConfig) { c.Timeout = 50 * time.Millisecond })

	_, err := p.Complete(context.Background(), "p")
	assert.True(t, apperr.Is(err, apperr.KindProviderTimeout))
}

func TestCompleteEmptyChoicesIsProviderError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		body := completionBody("")
		body["choices"] = []any{}
		writeJSON(w, http.StatusOK, body)
	}, nil)

	_, err := p.Complete(context.Background(), "p")
	assert.True(t, apperr.Is(err, apperr.KindProvider))
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider()

	q, err := m.Complete(context.Background(), "opening question please")
	require.NoError(t, err)
	assert.Contains(t, q, "#1")

	s, err := m.Complete(context.Background(), "... SCORE: X/10 ...")
	require.NoError(t, err)
	assert.Contains(t, s, "SCORE: 7/10")
}
