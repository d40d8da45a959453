package i18nsync

import (
	"errors"
	"fmt"
)

// DirectoryNotFoundError indicates the markup root directory does not exist.
// It halts the whole run.
type DirectoryNotFoundError struct {
	Path string
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("directory '%s' not found", e.Path)
}

// DictionaryNotFoundError indicates an explicitly requested dictionary file
// could not be located.
type DictionaryNotFoundError struct {
	Path string
}

func (e *DictionaryNotFoundError) Error() string {
	return fmt.Sprintf("JSON file '%s' not found", e.Path)
}

// LoadError indicates a dictionary file is missing or not a flat JSON object
// of strings. It is fatal for that file only.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("loading dictionary '%s': %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("loading dictionary '%s'", e.Path)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// UnsupportedLanguageError indicates the translation service does not accept
// a language code. Callers may retry with a fallback code.
type UnsupportedLanguageError struct {
	Lang  string
	Cause error
}

func (e *UnsupportedLanguageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("language '%s' not supported: %v", e.Lang, e.Cause)
	}
	return fmt.Sprintf("language '%s' not supported", e.Lang)
}

func (e *UnsupportedLanguageError) Unwrap() error {
	return e.Cause
}

// IsUnsupportedLanguage reports whether err signals an unsupported language.
func IsUnsupportedLanguage(err error) bool {
	var unsupported *UnsupportedLanguageError
	return errors.As(err, &unsupported)
}

// TranslationError is a translation failure that aborts the addition pass of
// one dictionary.
type TranslationError struct {
	Message string
	Key     string
	Lang    string
	Cause   error
}

func (e *TranslationError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = fmt.Sprintf("%s (key '%s', language '%s')", msg, e.Key, e.Lang)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a translation provider failure (API error, rate limit, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a markup document could not be processed.
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string // The type of content that failed to process
	Path        string // Document path, when known
}

func (e *ProcessorError) Error() string {
	where := e.ContentType
	if e.Path != "" {
		where = e.ContentType + " " + e.Path
	}
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", where, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}
