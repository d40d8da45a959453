package i18nsync

import (
	"errors"
	"fmt"
	"testing"
)

func TestTranslationError(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &TranslationError{Message: "translation failed", Key: "title", Lang: "de", Cause: cause}

	want := "translation failed (key 'title', language 'de'): quota exceeded"
	if err.Error() != want {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}

	// Without key or cause
	err2 := &TranslationError{Message: "simple error"}
	if err2.Error() != "simple error" {
		t.Errorf("unexpected error message: %s", err2.Error())
	}
}

func TestProviderError(t *testing.T) {
	err := &ProviderError{Message: "rate limited", Retryable: true}

	if err.Error() != "provider error: rate limited" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	if !err.Retryable {
		t.Error("error should be retryable")
	}
}

func TestCacheError(t *testing.T) {
	err := &CacheError{Message: "connection failed"}

	if err.Error() != "cache error: connection failed" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestProcessorError(t *testing.T) {
	err := &ProcessorError{Message: "parse failed", ContentType: "html"}
	if err.Error() != "processor error (html): parse failed" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	err = &ProcessorError{Message: "parse failed", ContentType: "html", Path: "index.html"}
	if err.Error() != "processor error (html index.html): parse failed" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestNotFoundErrors(t *testing.T) {
	if got := (&DirectoryNotFoundError{Path: "public"}).Error(); got != "directory 'public' not found" {
		t.Errorf("unexpected error message: %s", got)
	}
	if got := (&DictionaryNotFoundError{Path: "de.json"}).Error(); got != "JSON file 'de.json' not found" {
		t.Errorf("unexpected error message: %s", got)
	}
}

func TestLoadError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &LoadError{Path: "locales/de.json", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("LoadError should unwrap to its cause")
	}
	if err.Error() != "loading dictionary 'locales/de.json': unexpected EOF" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestIsUnsupportedLanguage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"direct", &UnsupportedLanguageError{Lang: "pt-br"}, true},
		{"wrapped", fmt.Errorf("google: %w", &UnsupportedLanguageError{Lang: "xx"}), true},
		{"provider error", &ProviderError{Message: "boom"}, false},
		{"plain", errors.New("not supported"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnsupportedLanguage(tt.err); got != tt.expected {
				t.Errorf("IsUnsupportedLanguage(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}
