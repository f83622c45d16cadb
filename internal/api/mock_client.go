package api

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of ReplyClient for testing
type MockClient struct {
	mu sync.Mutex

	// Mock return values
	Base      string
	ReplyVal  string
	ReplyErr  error
	HealthVal HealthStatus
	HealthErr error

	// ReplyFunc, when set, replaces ReplyVal/ReplyErr
	ReplyFunc func(ctx context.Context, text string) (string, error)

	// Call recorders
	Prompts     []string
	HealthCalls int
}

// Ensure MockClient implements ReplyClient
var _ ReplyClient = (*MockClient)(nil)

func (m *MockClient) BaseURL() string {
	return m.Base
}

func (m *MockClient) Offline() bool {
	return m.Base == ""
}

func (m *MockClient) FetchReply(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, text)
	fn := m.ReplyFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}
	return m.ReplyVal, m.ReplyErr
}

func (m *MockClient) CheckHealth(ctx context.Context) (HealthStatus, error) {
	m.mu.Lock()
	m.HealthCalls++
	m.mu.Unlock()
	return m.HealthVal, m.HealthErr
}

// PromptCount returns how many replies were requested
func (m *MockClient) PromptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
