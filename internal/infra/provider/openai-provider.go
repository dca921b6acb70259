package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"interview-coach/internal/config"
	"interview-coach/internal/domain/apperr"
	"interview-coach/internal/infra/logger"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const maxRetryBackoff = 10 * time.Second

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAIProvider struct {
	Logger *logger.Logger
	cfg    config.LLMConfig
	client chatCompleter
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewOpenAIProvider builds the chat completion provider. An empty API key is
// accepted here and reported as a configuration error on the first call.
func NewOpenAIProvider(logger *logger.Logger, cfg config.LLMConfig) *OpenAIProvider {
	p := &OpenAIProvider{Logger: logger, cfg: cfg, sleep: sleepContext}
	if cfg.APIKey != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
		p.client = openai.NewClientWithConfig(clientConfig)
	}
	return p
}

// Complete sends prompt as a single user message. Each attempt is bounded by
// the configured timeout; rate limits and server errors are retried with
// exponential backoff up to MaxRetries times.
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	const op = "openai.Complete"

	if p.client == nil {
		return "", apperr.New(apperr.KindConfiguration, op, "OPENAI_API_KEY environment variable is required")
	}

	req := openai.ChatCompletionRequest{
		Model: p.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: p.cfg.Temperature,
	}

	backoff := p.cfg.RetryBackoff
	var lastErr error
	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			p.Logger.Warn(fmt.Sprintf("Retrying completion after transient error: %v", lastErr), logrus.Fields{
				"attempt": attempt,
				"backoff": backoff.String(),
			})
			if err := p.sleep(ctx, backoff); err != nil {
				return "", apperr.Wrap(apperr.KindProvider, op, err, "completion cancelled")
			}
			backoff = nextBackoff(backoff)
		}

		text, err := p.completeOnce(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperr.Wrap(apperr.KindProviderTimeout, op, err, fmt.Sprintf("completion timed out after %s", p.cfg.Timeout))
		}
		if !isTransient(err) || ctx.Err() != nil {
			break
		}
	}

	return "", apperr.Wrap(apperr.KindProvider, op, lastErr, "completion failed")
}

func (p *OpenAIProvider) completeOnce(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("completion returned empty content")
	}
	return text, nil
}

func isTransient(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}
	return false
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxRetryBackoff {
		return maxRetryBackoff
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
