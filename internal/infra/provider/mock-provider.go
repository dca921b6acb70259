package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockProvider answers without calling a model. Used for local runs with
// USE_MOCK_LLM=true.
type MockProvider struct {
	mu    sync.Mutex
	calls int
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.calls++
	n := m.calls
	m.mu.Unlock()

	if strings.Contains(prompt, "SCORE: X/10") {
		return "INTERVIEW SUMMARY:\n- Mock evaluation of the conversation.\n\nSCORE: 7/10 (mock provider)", nil
	}
	return fmt.Sprintf("Mock question #%d: can you walk me through a recent project?", n), nil
}
