// Package testutil provides shared test helpers: a deterministic mock
// model for Genkit and canned upstream news payloads.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// MockLLM provides deterministic model responses for testing.
// It matches user message content against registered patterns
// and returns the corresponding response.
//
// Thread-safe for concurrent use.
type MockLLM struct {
	mu        sync.Mutex
	responses []mockRule
	fallback  string
	err       error
	calls     []MockCall
	entered   chan struct{}
	gate      chan struct{}
}

type mockRule struct {
	pattern  string // substring match in user message
	response string
}

// MockCall records a single call to the mock model.
type MockCall struct {
	System      string // system message text
	UserMessage string // last user message text
	NumMessages int    // total messages in the request
	Response    string // response text returned
}

// NewMockLLM creates a mock model with the given fallback response.
// The fallback is returned when no pattern matches.
func NewMockLLM(fallback string) *MockLLM {
	return &MockLLM{fallback: fallback}
}

// AddResponse registers a pattern-response pair.
// When a user message contains the pattern (case-insensitive), the response is returned.
// Patterns are checked in registration order; first match wins.
func (m *MockLLM) AddResponse(pattern, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockRule{
		pattern:  strings.ToLower(pattern),
		response: response,
	})
}

// SetError makes every subsequent call fail with err. Pass nil to
// restore normal behavior.
func (m *MockLLM) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Gate makes the next model call suspend until release is called.
// entered is closed when the call reaches the model, so a test can
// synchronize with an in-flight completion. One-shot: later calls run
// normally.
func (m *MockLLM) Gate() (entered <-chan struct{}, release func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entered = make(chan struct{})
	m.gate = make(chan struct{})
	gate := m.gate
	return m.entered, func() { close(gate) }
}

// Calls returns a copy of all recorded calls.
func (m *MockLLM) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]MockCall, len(m.calls))
	copy(cp, m.calls)
	return cp
}

// Reset clears all recorded calls (keeps registered responses).
func (m *MockLLM) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// RegisterModel registers the mock as a Genkit model and returns a reference.
// The model name will be "mock/test-model".
func (m *MockLLM) RegisterModel(g *genkit.Genkit) ai.Model {
	return genkit.DefineModel(g, "mock/test-model", &ai.ModelOptions{
		Label: "Mock Test Model",
		Supports: &ai.ModelSupports{
			Multiturn:  true,
			SystemRole: true,
		},
	}, m.generate)
}

// generate is the Genkit model function.
func (m *MockLLM) generate(_ context.Context, req *ai.ModelRequest, _ ai.ModelStreamCallback) (*ai.ModelResponse, error) {
	var systemText, userText string
	numMessages := len(req.Messages)
	for i := len(req.Messages) - 1; i >= 0; i-- {
		switch req.Messages[i].Role {
		case ai.RoleUser:
			if userText == "" {
				userText = req.Messages[i].Text()
			}
		case ai.RoleSystem:
			systemText = req.Messages[i].Text()
		}
	}

	// The gate is waited on outside the mutex so Calls and friends stay
	// usable while a call is suspended.
	m.mu.Lock()
	entered, gate := m.entered, m.gate
	m.entered, m.gate = nil, nil
	m.mu.Unlock()
	if entered != nil {
		close(entered)
	}
	if gate != nil {
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	responseText := m.fallback
	lower := strings.ToLower(userText)
	for i := range m.responses {
		if strings.Contains(lower, m.responses[i].pattern) {
			responseText = m.responses[i].response
			break
		}
	}

	m.calls = append(m.calls, MockCall{
		System:      systemText,
		UserMessage: userText,
		NumMessages: numMessages,
		Response:    responseText,
	})

	return &ai.ModelResponse{
		Request: req,
		Message: &ai.Message{
			Role:    ai.RoleModel,
			Content: []*ai.Part{ai.NewTextPart(responseText)},
		},
	}, nil
}
