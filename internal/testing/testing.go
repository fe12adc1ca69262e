// package testing contains shared testing utilities
package testing

import (
	"errors"
	"net/http"
	"sync"

	"topspot/internal/services"
)

// MemoryTokenStore is an in-memory test double for [services.TokenStore]
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[services.TokenKind]string

	GetErr   error
	SetErr   error
	ClearErr error
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[services.TokenKind]string)}
}

func (m *MemoryTokenStore) Get(kind services.TokenKind) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	return m.tokens[kind], nil
}

func (m *MemoryTokenStore) Set(kind services.TokenKind, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.tokens[kind] = value
	return nil
}

func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.tokens = make(map[services.TokenKind]string)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
