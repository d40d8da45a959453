// Package provider defines the translation provider interface and implementations.
package provider

import (
	"strings"

	"github.com/ZaguanLabs/i18nsync"
)

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = i18nsync.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = i18nsync.TranslateRequest

var retryablePatterns = []string{
	"rate limit",
	"too many requests",
	"timeout",
	"connection refused",
	"connection reset",
	"temporary",
	"503",
	"502",
	"429",
}

func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
