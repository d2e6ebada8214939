package genai

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is a scriptable Client for testing. Responses are consumed
// in FIFO order; once the queue is empty a generic text reply is returned.
type MockClient struct {
	mu        sync.Mutex
	responses []*GenerateResponse
	err       error

	// Requests records every request received, in order.
	Requests []*GenerateRequest
}

// NewMockClient creates a new mock client with an empty response queue.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements the Client interface.
var _ Client = (*MockClient)(nil)

// Enqueue adds a canned response to the queue.
func (m *MockClient) Enqueue(resp *GenerateResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// EnqueueText adds a plain text model reply to the queue.
func (m *MockClient) EnqueueText(text string) {
	m.Enqueue(&GenerateResponse{
		Candidates: []Candidate{{
			Content: Content{
				Role:  "model",
				Parts: []Part{{Text: text}},
			},
			FinishReason: "STOP",
		}},
	})
}

// EnqueueFunctionCalls adds a model turn consisting of the given calls.
func (m *MockClient) EnqueueFunctionCalls(calls ...FunctionCall) {
	parts := make([]Part, 0, len(calls))
	for i := range calls {
		call := calls[i]
		parts = append(parts, Part{FunctionCall: &call})
	}
	m.Enqueue(&GenerateResponse{
		Candidates: []Candidate{{
			Content: Content{
				Role:  "model",
				Parts: parts,
			},
			FinishReason: "STOP",
		}},
	})
}

// SetError makes every subsequent call fail with err until cleared.
func (m *MockClient) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// GenerateContent returns the next queued response.
func (m *MockClient) GenerateContent(ctx context.Context, model string, req *GenerateRequest) (*GenerateResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)

	if m.err != nil {
		return nil, m.err
	}

	if len(m.responses) > 0 {
		resp := m.responses[0]
		m.responses = m.responses[1:]
		return resp, nil
	}

	return &GenerateResponse{
		Candidates: []Candidate{{
			Content: Content{
				Role:  "model",
				Parts: []Part{{Text: fmt.Sprintf("[MOCK] response from %s", model)}},
			},
			FinishReason: "STOP",
		}},
	}, nil
}
