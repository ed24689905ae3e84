package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
)

// MockResponse is a canned reply for the MockGateway.
type MockResponse struct {
	Status int
	Body   json.RawMessage
	Err    error
}

// MockGateway is a deterministic Gateway for testing.
// It returns canned responses in FIFO order and records all requests.
type MockGateway struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockGateway creates a MockGateway with the given canned responses.
func NewMockGateway(responses ...MockResponse) *MockGateway {
	return &MockGateway{responses: responses}
}

// Do returns the next canned response, or a 503 *Error when the queue is
// empty.
func (m *MockGateway) Do(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	op := OperationFrom(ctx)

	if len(m.responses) == 0 {
		return nil, &Error{Op: op, Status: http.StatusServiceUnavailable, Message: "no canned response"}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if status < 200 || status > 299 {
		return nil, statusError(op, status, resp.Body)
	}
	return &Response{Status: status, Body: resp.Body}, nil
}

// Endpoint returns "mock".
func (m *MockGateway) Endpoint() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockGateway) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Do calls made.
func (m *MockGateway) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, if any.
func (m *MockGateway) LastCall() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
