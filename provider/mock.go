package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZaguanLabs/i18nsync"
)

// MockProvider is a mock translation provider for testing and dry runs.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	Unsupported  map[string]bool   // Target codes rejected as unsupported
	Err          error             // Returned for every supported code when set

	mu       sync.Mutex
	requests []TranslateRequest
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":                "Hola",
			"World":                "Mundo",
			"Hello World":          "Hola Mundo",
			"Welcome to our site.": "Bienvenido a nuestro sitio.",
		},
		Unsupported: map[string]bool{},
	}
}

// Translate returns the configured translation, or the text prefixed with
// the target code when none is configured.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Unsupported[req.TargetLang] {
		return "", &i18nsync.UnsupportedLanguageError{Lang: req.TargetLang}
	}
	if m.Err != nil {
		return "", m.Err
	}
	if translation, ok := m.Translations[req.Text]; ok {
		return translation, nil
	}
	return fmt.Sprintf("[%s] %s", req.TargetLang, req.Text), nil
}

// CallCount returns the number of Translate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of the requests received so far.
func (m *MockProvider) Requests() []TranslateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TranslateRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Reset clears the recorded requests.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	m.requests = nil
	m.mu.Unlock()
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
